package advance

import "context"

type AdvanceRepository interface {
	Create(ctx context.Context, newAdvance Advance) (Advance, error)
	GetByID(ctx context.Context, id string) (Advance, error)
	List(ctx context.Context, unsettledOnly bool) ([]Advance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Advance, error)
	Update(ctx context.Context, req UpdateAdvanceRequest) error
	Delete(ctx context.Context, id string) error
	// GetOpenByEmployee returns the oldest unsettled advance,
	// ErrNoOpenAdvance when none exists. One advance is deducted per
	// payroll cycle, in full.
	GetOpenByEmployee(ctx context.Context, employeeID string) (Advance, error)
	MarkSettled(ctx context.Context, id string) error
}
