package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// Settings (single row)
	GetSettings(ctx context.Context) (Settings, error)
	UpsertSettings(ctx context.Context, settings Settings) (Settings, error)

	// Records
	// Upsert writes the computed fields keyed by (employee, year, month).
	// An existing record keeps its is_paid flag and payment date; the
	// returned bool reports whether a new record was inserted.
	Upsert(ctx context.Context, record PayrollRecord) (PayrollRecord, bool, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (PayrollRecord, error)
	ListByPeriod(ctx context.Context, year, month int) ([]PayrollRecord, error)
	DeleteByID(ctx context.Context, id string) error

	// Settlement
	// MarkPaid reports whether the record transitioned to paid; false means
	// it was already paid (not an error).
	MarkPaid(ctx context.Context, id string, paymentDate time.Time) (bool, error)
	// MarkAllPaidForPeriod settles every unpaid record of the period in one
	// statement and returns how many rows changed.
	MarkAllPaidForPeriod(ctx context.Context, year, month int, paymentDate time.Time) (int64, error)

	// Aggregations
	GetSummary(ctx context.Context, year, month int) (Summary, error)
}

// Transactor runs fn atomically against the underlying store. The engine
// wraps each employee's resolve-calculate-upsert sequence in one
// transaction so a crash mid-batch never leaves a half-written record.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
