package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeCodeExists   = errors.New("employee code already exists")
	ErrNationalIDExists     = errors.New("national id already registered")
	ErrEmployeeHasPayroll   = errors.New("employee has payroll records, deactivate instead of delete")
	ErrEmployeeInactive     = errors.New("employee is not active")
	ErrInvalidBaseSalary    = errors.New("base salary must be positive")
	ErrInvalidAllowanceRate = errors.New("allowance rate must be between 0 and 1")
)
