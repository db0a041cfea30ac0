package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_code, first_name, last_name, national_id, hire_date,
	position, base_salary, housing_allowance_rate, family_allowance_rate,
	children_count, is_active, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.NationalID, &e.HireDate,
		&e.Position, &e.BaseSalary, &e.HousingAllowanceRate, &e.FamilyAllowanceRate,
		&e.ChildrenCount, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO personnel (
			employee_code, first_name, last_name, national_id, hire_date,
			position, base_salary, housing_allowance_rate, family_allowance_rate,
			children_count, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns

	e, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.EmployeeCode, newEmployee.FirstName, newEmployee.LastName,
		newEmployee.NationalID, newEmployee.HireDate, newEmployee.Position,
		newEmployee.BaseSalary, newEmployee.HousingAllowanceRate,
		newEmployee.FamilyAllowanceRate, newEmployee.ChildrenCount, newEmployee.IsActive,
	))
	if err != nil {
		if strings.Contains(err.Error(), "personnel_employee_code_key") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if strings.Contains(err.Error(), "personnel_national_id_key") {
			return employee.Employee{}, employee.ErrNationalIDExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM personnel WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM personnel WHERE employee_code = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, employeeCode))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM personnel`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY employee_code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return r.List(ctx, true)
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.FirstName != nil {
		setParts = append(setParts, fmt.Sprintf("first_name = $%d", argIdx))
		args = append(args, *req.FirstName)
		argIdx++
	}
	if req.LastName != nil {
		setParts = append(setParts, fmt.Sprintf("last_name = $%d", argIdx))
		args = append(args, *req.LastName)
		argIdx++
	}
	if req.Position != nil {
		setParts = append(setParts, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, *req.Position)
		argIdx++
	}
	if req.BaseSalary != nil {
		setParts = append(setParts, fmt.Sprintf("base_salary = $%d", argIdx))
		args = append(args, *req.BaseSalary)
		argIdx++
	}
	if req.HousingAllowanceRate != nil {
		setParts = append(setParts, fmt.Sprintf("housing_allowance_rate = $%d", argIdx))
		args = append(args, *req.HousingAllowanceRate)
		argIdx++
	}
	if req.FamilyAllowanceRate != nil {
		setParts = append(setParts, fmt.Sprintf("family_allowance_rate = $%d", argIdx))
		args = append(args, *req.FamilyAllowanceRate)
		argIdx++
	}
	if req.ChildrenCount != nil {
		setParts = append(setParts, fmt.Sprintf("children_count = $%d", argIdx))
		args = append(args, *req.ChildrenCount)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE personnel
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var payrollCount int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll WHERE personnel_id = $1`, id).Scan(&payrollCount)
	if err != nil {
		return fmt.Errorf("failed to check payroll references: %w", err)
	}
	if payrollCount > 0 {
		return employee.ErrEmployeeHasPayroll
	}

	var deletedID string
	err = q.QueryRow(ctx, `DELETE FROM personnel WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) ExistsByCodeOrNationalID(ctx context.Context, employeeCode, nationalID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM personnel WHERE employee_code = $1 OR national_id = $2
		)
	`, employeeCode, nationalID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}

	return exists, nil
}
