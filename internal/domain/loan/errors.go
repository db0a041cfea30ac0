package loan

import "errors"

var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrNoOpenLoan          = errors.New("no open loan for employee")
	ErrLoanFullyRepaid     = errors.New("loan has no remaining installments")
	ErrInvalidInstallments = errors.New("remaining installments cannot exceed total installments")
)
