package loan

import "context"

type LoanService interface {
	Create(ctx context.Context, req CreateLoanRequest) (LoanResponse, error)
	Get(ctx context.Context, id string) (LoanResponse, error)
	List(ctx context.Context, activeOnly bool) ([]LoanResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LoanResponse, error)
	Update(ctx context.Context, req UpdateLoanRequest) (LoanResponse, error)
	Delete(ctx context.Context, id string) error
}
