package payroll

import "context"

type PayrollService interface {
	// Settings
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// Calculation
	// GeneratePayroll computes one record per active employee for the
	// period. Recomputation overwrites computed fields and preserves
	// payment status. Individual employee failures are skipped and
	// reported; an invalid rate configuration aborts before any write.
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (RunResult, error)

	// Records
	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListRecords(ctx context.Context, year, month int) ([]PayrollRecordResponse, error)
	GetSummary(ctx context.Context, year, month int) (SummaryResponse, error)
	// DeleteRecord removes an unpaid record; a paid record is kept for the
	// payment history and the call fails with ErrPayrollRecordAlreadyPaid.
	DeleteRecord(ctx context.Context, id string) error

	// Settlement
	PaySalary(ctx context.Context, id string) error
	PayAllForPeriod(ctx context.Context, year, month int) (int64, error)
}
