package loan

import "context"

type LoanRepository interface {
	Create(ctx context.Context, newLoan Loan) (Loan, error)
	GetByID(ctx context.Context, id string) (Loan, error)
	List(ctx context.Context, activeOnly bool) ([]Loan, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Loan, error)
	Update(ctx context.Context, req UpdateLoanRequest) error
	Delete(ctx context.Context, id string) error
	// GetOpenByEmployee returns the oldest active loan with remaining
	// installments, ErrNoOpenLoan when none qualifies. One loan is deducted
	// per payroll cycle.
	GetOpenByEmployee(ctx context.Context, employeeID string) (Loan, error)
	// ApplyInstallment decrements the remaining installment count and
	// deactivates the loan when it reaches zero.
	ApplyInstallment(ctx context.Context, id string) error
}
