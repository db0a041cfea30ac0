package loan

import (
	"context"

	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/faranhr/payroll-backend-go/internal/pkg/validator"
)

type LoanServiceImpl struct {
	loanRepo     loan.LoanRepository
	employeeRepo employee.EmployeeRepository
}

func NewLoanService(loanRepo loan.LoanRepository, employeeRepo employee.EmployeeRepository) loan.LoanService {
	return &LoanServiceImpl{
		loanRepo:     loanRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *LoanServiceImpl) Create(ctx context.Context, req loan.CreateLoanRequest) (loan.LoanResponse, error) {
	if err := req.Validate(); err != nil {
		return loan.LoanResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return loan.LoanResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)

	created, err := s.loanRepo.Create(ctx, loan.Loan{
		EmployeeID:            req.EmployeeID,
		LoanAmount:            req.LoanAmount,
		InstallmentAmount:     req.InstallmentAmount,
		RemainingInstallments: req.TotalInstallments,
		TotalInstallments:     req.TotalInstallments,
		StartDate:             startDate,
		Note:                  req.Note,
		IsActive:              true,
	})
	if err != nil {
		return loan.LoanResponse{}, err
	}

	return toResponse(created), nil
}

func (s *LoanServiceImpl) Get(ctx context.Context, id string) (loan.LoanResponse, error) {
	l, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		return loan.LoanResponse{}, err
	}
	return toResponse(l), nil
}

func (s *LoanServiceImpl) List(ctx context.Context, activeOnly bool) ([]loan.LoanResponse, error) {
	loans, err := s.loanRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return toResponses(loans), nil
}

func (s *LoanServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]loan.LoanResponse, error) {
	loans, err := s.loanRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(loans), nil
}

func (s *LoanServiceImpl) Update(ctx context.Context, req loan.UpdateLoanRequest) (loan.LoanResponse, error) {
	if err := req.Validate(); err != nil {
		return loan.LoanResponse{}, err
	}

	if err := s.loanRepo.Update(ctx, req); err != nil {
		return loan.LoanResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

func (s *LoanServiceImpl) Delete(ctx context.Context, id string) error {
	return s.loanRepo.Delete(ctx, id)
}

func toResponse(l loan.Loan) loan.LoanResponse {
	resp := loan.LoanResponse{
		ID:                    l.ID,
		EmployeeID:            l.EmployeeID,
		LoanAmount:            l.LoanAmount,
		InstallmentAmount:     l.InstallmentAmount,
		RemainingInstallments: l.RemainingInstallments,
		TotalInstallments:     l.TotalInstallments,
		StartDate:             l.StartDate.Format("2006-01-02"),
		Note:                  l.Note,
		IsActive:              l.IsActive,
	}
	if l.EmployeeCode != nil {
		resp.EmployeeCode = *l.EmployeeCode
	}
	if l.EmployeeName != nil {
		resp.EmployeeName = *l.EmployeeName
	}
	return resp
}

func toResponses(loans []loan.Loan) []loan.LoanResponse {
	responses := make([]loan.LoanResponse, 0, len(loans))
	for _, l := range loans {
		responses = append(responses, toResponse(l))
	}
	return responses
}
