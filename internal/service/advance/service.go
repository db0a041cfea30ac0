package advance

import (
	"context"

	"github.com/faranhr/payroll-backend-go/internal/domain/advance"
	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/pkg/validator"
)

type AdvanceServiceImpl struct {
	advanceRepo  advance.AdvanceRepository
	employeeRepo employee.EmployeeRepository
}

func NewAdvanceService(advanceRepo advance.AdvanceRepository, employeeRepo employee.EmployeeRepository) advance.AdvanceService {
	return &AdvanceServiceImpl{
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *AdvanceServiceImpl) Create(ctx context.Context, req advance.CreateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return advance.AdvanceResponse{}, err
	}

	advanceDate, _ := validator.IsValidDate(req.AdvanceDate)

	created, err := s.advanceRepo.Create(ctx, advance.Advance{
		EmployeeID:  req.EmployeeID,
		Amount:      req.Amount,
		AdvanceDate: advanceDate,
		Note:        req.Note,
		IsSettled:   false,
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	return toResponse(created), nil
}

func (s *AdvanceServiceImpl) Get(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	a, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return toResponse(a), nil
}

func (s *AdvanceServiceImpl) List(ctx context.Context, unsettledOnly bool) ([]advance.AdvanceResponse, error) {
	advances, err := s.advanceRepo.List(ctx, unsettledOnly)
	if err != nil {
		return nil, err
	}
	return toResponses(advances), nil
}

func (s *AdvanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]advance.AdvanceResponse, error) {
	advances, err := s.advanceRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(advances), nil
}

func (s *AdvanceServiceImpl) Update(ctx context.Context, req advance.UpdateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	if err := s.advanceRepo.Update(ctx, req); err != nil {
		return advance.AdvanceResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

func (s *AdvanceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.advanceRepo.Delete(ctx, id)
}

func toResponse(a advance.Advance) advance.AdvanceResponse {
	resp := advance.AdvanceResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Amount:      a.Amount,
		AdvanceDate: a.AdvanceDate.Format("2006-01-02"),
		Note:        a.Note,
		IsSettled:   a.IsSettled,
	}
	if a.EmployeeCode != nil {
		resp.EmployeeCode = *a.EmployeeCode
	}
	if a.EmployeeName != nil {
		resp.EmployeeName = *a.EmployeeName
	}
	return resp
}

func toResponses(advances []advance.Advance) []advance.AdvanceResponse {
	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		responses = append(responses, toResponse(a))
	}
	return responses
}
