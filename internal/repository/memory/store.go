// Package memory backs the API with an in-process store so the server can
// run in demo mode without a PostgreSQL instance.
package memory

import (
	"context"
	"sync"

	"github.com/faranhr/payroll-backend-go/internal/domain/advance"
	"github.com/faranhr/payroll-backend-go/internal/domain/attendance"
	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
)

type txKey struct{}

// Store holds every table as a map keyed by id. All entity types are value
// types; writers replace whole values and never mutate stored ones in place,
// which keeps snapshots cheap.
type Store struct {
	mu sync.Mutex

	employees  map[string]employee.Employee
	attendance map[string]attendance.Attendance
	loans      map[string]loan.Loan
	advances   map[string]advance.Advance
	records    map[string]payroll.PayrollRecord
	settings   *payroll.Settings
}

func NewStore() *Store {
	return &Store{
		employees:  make(map[string]employee.Employee),
		attendance: make(map[string]attendance.Attendance),
		loans:      make(map[string]loan.Loan),
		advances:   make(map[string]advance.Advance),
		records:    make(map[string]payroll.PayrollRecord),
	}
}

// lock acquires the store mutex unless ctx is already inside a transaction,
// which holds the mutex for its whole scope. Returns the matching unlock.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	employees  map[string]employee.Employee
	attendance map[string]attendance.Attendance
	loans      map[string]loan.Loan
	advances   map[string]advance.Advance
	records    map[string]payroll.PayrollRecord
	settings   *payroll.Settings
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		employees:  make(map[string]employee.Employee, len(s.employees)),
		attendance: make(map[string]attendance.Attendance, len(s.attendance)),
		loans:      make(map[string]loan.Loan, len(s.loans)),
		advances:   make(map[string]advance.Advance, len(s.advances)),
		records:    make(map[string]payroll.PayrollRecord, len(s.records)),
	}
	for k, v := range s.employees {
		snap.employees[k] = v
	}
	for k, v := range s.attendance {
		snap.attendance[k] = v
	}
	for k, v := range s.loans {
		snap.loans[k] = v
	}
	for k, v := range s.advances {
		snap.advances[k] = v
	}
	for k, v := range s.records {
		snap.records[k] = v
	}
	if s.settings != nil {
		cp := *s.settings
		snap.settings = &cp
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.employees = snap.employees
	s.attendance = snap.attendance
	s.loans = snap.loans
	s.advances = snap.advances
	s.records = snap.records
	s.settings = snap.settings
}

// WithinTransaction holds the store mutex across fn and rolls the maps back
// to a pre-fn snapshot on error or panic. Nested calls run in the outer
// transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	txCtx := context.WithValue(ctx, txKey{}, struct{}{})

	var err error
	func() {
		defer func() {
			if p := recover(); p != nil {
				s.restore(snap)
				panic(p)
			}
		}()
		err = fn(txCtx)
	}()
	if err != nil {
		s.restore(snap)
		return err
	}

	return nil
}
