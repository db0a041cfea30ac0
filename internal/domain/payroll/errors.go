package payroll

import "errors"

var (
	ErrSettingsNotFound         = errors.New("payroll settings not found")
	ErrInvalidSettings          = errors.New("invalid payroll settings")
	ErrPayrollRecordNotFound    = errors.New("payroll record not found")
	ErrPayrollRecordExists      = errors.New("payroll record already exists for this period")
	ErrInvalidPeriod            = errors.New("invalid payroll period")
	ErrNoActiveEmployees        = errors.New("no active employees to calculate")
	ErrPayrollRecordAlreadyPaid = errors.New("payroll record already paid")
)
