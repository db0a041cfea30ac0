package memory

import (
	"context"
	"sort"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/google/uuid"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	for _, e := range r.store.employees {
		if e.EmployeeCode == newEmployee.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if e.NationalID == newEmployee.NationalID {
			return employee.Employee{}, employee.ErrNationalIDExists
		}
	}

	now := time.Now()
	newEmployee.ID = uuid.NewString()
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.store.employees[newEmployee.ID] = newEmployee

	return newEmployee, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	e, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	for _, e := range r.store.employees {
		if e.EmployeeCode == employeeCode {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var employees []employee.Employee
	for _, e := range r.store.employees {
		if activeOnly && !e.IsActive {
			continue
		}
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].EmployeeCode < employees[j].EmployeeCode
	})

	return employees, nil
}

func (r *employeeRepository) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return r.List(ctx, true)
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	e, ok := r.store.employees[req.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}

	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		e.LastName = *req.LastName
	}
	if req.Position != nil {
		e.Position = req.Position
	}
	if req.BaseSalary != nil {
		e.BaseSalary = *req.BaseSalary
	}
	if req.HousingAllowanceRate != nil {
		e.HousingAllowanceRate = *req.HousingAllowanceRate
	}
	if req.FamilyAllowanceRate != nil {
		e.FamilyAllowanceRate = *req.FamilyAllowanceRate
	}
	if req.ChildrenCount != nil {
		e.ChildrenCount = *req.ChildrenCount
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	e.UpdatedAt = time.Now()
	r.store.employees[e.ID] = e

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	for _, rec := range r.store.records {
		if rec.EmployeeID == id {
			return employee.ErrEmployeeHasPayroll
		}
	}
	delete(r.store.employees, id)

	return nil
}

func (r *employeeRepository) ExistsByCodeOrNationalID(ctx context.Context, employeeCode, nationalID string) (bool, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	for _, e := range r.store.employees {
		if e.EmployeeCode == employeeCode || e.NationalID == nationalID {
			return true, nil
		}
	}
	return false, nil
}
