package employee

import (
	"context"

	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)

	newEmployee := employee.Employee{
		EmployeeCode:         req.EmployeeCode,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		NationalID:           req.NationalID,
		Position:             req.Position,
		HireDate:             hireDate,
		BaseSalary:           req.BaseSalary,
		HousingAllowanceRate: decimal.NewFromFloat(0.25),
		FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
		ChildrenCount:        req.ChildrenCount,
		IsActive:             true,
	}
	if req.HousingAllowanceRate != nil {
		newEmployee.HousingAllowanceRate = *req.HousingAllowanceRate
	}
	if req.FamilyAllowanceRate != nil {
		newEmployee.FamilyAllowanceRate = *req.FamilyAllowanceRate
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(created), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(e), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toResponse(e))
	}

	return responses, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.employeeRepo.Delete(ctx, id)
}

func toResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:                   e.ID,
		EmployeeCode:         e.EmployeeCode,
		FirstName:            e.FirstName,
		LastName:             e.LastName,
		NationalID:           e.NationalID,
		Position:             e.Position,
		HireDate:             e.HireDate.Format("2006-01-02"),
		BaseSalary:           e.BaseSalary,
		HousingAllowanceRate: e.HousingAllowanceRate,
		FamilyAllowanceRate:  e.FamilyAllowanceRate,
		ChildrenCount:        e.ChildrenCount,
		IsActive:             e.IsActive,
	}
}
