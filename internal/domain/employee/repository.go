package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	// Delete removes an employee with no payroll history; it fails with
	// ErrEmployeeHasPayroll when payroll records reference the employee.
	Delete(ctx context.Context, id string) error
	ExistsByCodeOrNationalID(ctx context.Context, employeeCode, nationalID string) (bool, error)
}
