package memory

import (
	"context"
	"sort"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/advance"
	"github.com/google/uuid"
)

type advanceRepository struct {
	store *Store
}

func NewAdvanceRepository(store *Store) advance.AdvanceRepository {
	return &advanceRepository{store: store}
}

func (r *advanceRepository) joinEmployee(a advance.Advance) advance.Advance {
	if e, ok := r.store.employees[a.EmployeeID]; ok {
		code := e.EmployeeCode
		name := e.FullName()
		a.EmployeeCode = &code
		a.EmployeeName = &name
	}
	return a
}

func sortAdvances(advances []advance.Advance) {
	sort.Slice(advances, func(i, j int) bool {
		if !advances[i].AdvanceDate.Equal(advances[j].AdvanceDate) {
			return advances[i].AdvanceDate.Before(advances[j].AdvanceDate)
		}
		return advances[i].CreatedAt.Before(advances[j].CreatedAt)
	})
}

func (r *advanceRepository) Create(ctx context.Context, newAdvance advance.Advance) (advance.Advance, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	newAdvance.ID = uuid.NewString()
	newAdvance.CreatedAt = time.Now()
	r.store.advances[newAdvance.ID] = newAdvance

	return r.joinEmployee(newAdvance), nil
}

func (r *advanceRepository) GetByID(ctx context.Context, id string) (advance.Advance, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	a, ok := r.store.advances[id]
	if !ok {
		return advance.Advance{}, advance.ErrAdvanceNotFound
	}
	return r.joinEmployee(a), nil
}

func (r *advanceRepository) List(ctx context.Context, unsettledOnly bool) ([]advance.Advance, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var advances []advance.Advance
	for _, a := range r.store.advances {
		if unsettledOnly && a.IsSettled {
			continue
		}
		advances = append(advances, r.joinEmployee(a))
	}
	sortAdvances(advances)

	return advances, nil
}

func (r *advanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]advance.Advance, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var advances []advance.Advance
	for _, a := range r.store.advances {
		if a.EmployeeID != employeeID {
			continue
		}
		advances = append(advances, r.joinEmployee(a))
	}
	sortAdvances(advances)

	return advances, nil
}

func (r *advanceRepository) Update(ctx context.Context, req advance.UpdateAdvanceRequest) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	a, ok := r.store.advances[req.ID]
	if !ok {
		return advance.ErrAdvanceNotFound
	}

	if req.Amount != nil {
		a.Amount = *req.Amount
	}
	if req.Note != nil {
		a.Note = req.Note
	}
	if req.IsSettled != nil {
		a.IsSettled = *req.IsSettled
	}
	r.store.advances[a.ID] = a

	return nil
}

func (r *advanceRepository) Delete(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.advances[id]; !ok {
		return advance.ErrAdvanceNotFound
	}
	delete(r.store.advances, id)

	return nil
}

func (r *advanceRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (advance.Advance, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var open []advance.Advance
	for _, a := range r.store.advances {
		if a.EmployeeID == employeeID && !a.IsSettled {
			open = append(open, a)
		}
	}
	if len(open) == 0 {
		return advance.Advance{}, advance.ErrNoOpenAdvance
	}
	sortAdvances(open)

	return r.joinEmployee(open[0]), nil
}

func (r *advanceRepository) MarkSettled(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	a, ok := r.store.advances[id]
	if !ok {
		return advance.ErrAdvanceNotFound
	}
	if a.IsSettled {
		return advance.ErrAlreadySettled
	}

	a.IsSettled = true
	r.store.advances[a.ID] = a

	return nil
}
