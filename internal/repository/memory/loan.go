package memory

import (
	"context"
	"sort"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/google/uuid"
)

type loanRepository struct {
	store *Store
}

func NewLoanRepository(store *Store) loan.LoanRepository {
	return &loanRepository{store: store}
}

func (r *loanRepository) joinEmployee(l loan.Loan) loan.Loan {
	if e, ok := r.store.employees[l.EmployeeID]; ok {
		code := e.EmployeeCode
		name := e.FullName()
		l.EmployeeCode = &code
		l.EmployeeName = &name
	}
	return l
}

func sortLoans(loans []loan.Loan) {
	sort.Slice(loans, func(i, j int) bool {
		if !loans[i].StartDate.Equal(loans[j].StartDate) {
			return loans[i].StartDate.Before(loans[j].StartDate)
		}
		return loans[i].CreatedAt.Before(loans[j].CreatedAt)
	})
}

func (r *loanRepository) Create(ctx context.Context, newLoan loan.Loan) (loan.Loan, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	newLoan.ID = uuid.NewString()
	newLoan.CreatedAt = time.Now()
	r.store.loans[newLoan.ID] = newLoan

	return r.joinEmployee(newLoan), nil
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (loan.Loan, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	l, ok := r.store.loans[id]
	if !ok {
		return loan.Loan{}, loan.ErrLoanNotFound
	}
	return r.joinEmployee(l), nil
}

func (r *loanRepository) List(ctx context.Context, activeOnly bool) ([]loan.Loan, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var loans []loan.Loan
	for _, l := range r.store.loans {
		if activeOnly && !l.IsActive {
			continue
		}
		loans = append(loans, r.joinEmployee(l))
	}
	sortLoans(loans)

	return loans, nil
}

func (r *loanRepository) ListByEmployee(ctx context.Context, employeeID string) ([]loan.Loan, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var loans []loan.Loan
	for _, l := range r.store.loans {
		if l.EmployeeID != employeeID {
			continue
		}
		loans = append(loans, r.joinEmployee(l))
	}
	sortLoans(loans)

	return loans, nil
}

func (r *loanRepository) Update(ctx context.Context, req loan.UpdateLoanRequest) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	l, ok := r.store.loans[req.ID]
	if !ok {
		return loan.ErrLoanNotFound
	}

	if req.InstallmentAmount != nil {
		l.InstallmentAmount = *req.InstallmentAmount
	}
	if req.RemainingInstallments != nil {
		l.RemainingInstallments = *req.RemainingInstallments
	}
	if req.Note != nil {
		l.Note = req.Note
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
	r.store.loans[l.ID] = l

	return nil
}

func (r *loanRepository) Delete(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.loans[id]; !ok {
		return loan.ErrLoanNotFound
	}
	delete(r.store.loans, id)

	return nil
}

func (r *loanRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (loan.Loan, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var open []loan.Loan
	for _, l := range r.store.loans {
		if l.EmployeeID == employeeID && l.IsActive && l.RemainingInstallments > 0 {
			open = append(open, l)
		}
	}
	if len(open) == 0 {
		return loan.Loan{}, loan.ErrNoOpenLoan
	}
	sortLoans(open)

	return r.joinEmployee(open[0]), nil
}

func (r *loanRepository) ApplyInstallment(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	l, ok := r.store.loans[id]
	if !ok {
		return loan.ErrLoanNotFound
	}
	if l.RemainingInstallments <= 0 {
		return loan.ErrLoanFullyRepaid
	}

	l.RemainingInstallments--
	l.IsActive = l.RemainingInstallments > 0
	r.store.loans[l.ID] = l

	return nil
}
