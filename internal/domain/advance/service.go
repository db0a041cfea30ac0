package advance

import "context"

type AdvanceService interface {
	Create(ctx context.Context, req CreateAdvanceRequest) (AdvanceResponse, error)
	Get(ctx context.Context, id string) (AdvanceResponse, error)
	List(ctx context.Context, unsettledOnly bool) ([]AdvanceResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]AdvanceResponse, error)
	Update(ctx context.Context, req UpdateAdvanceRequest) (AdvanceResponse, error)
	Delete(ctx context.Context, id string) error
}
