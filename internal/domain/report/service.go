package report

import "context"

type ReportService interface {
	PayrollReport(ctx context.Context, year, month int) (PayrollReport, error)
	AttendanceReport(ctx context.Context, year, month int) (AttendanceReport, error)
	YearlySummary(ctx context.Context, year int) (YearlySummary, error)
	SalaryDistribution(ctx context.Context) ([]SalaryBucket, error)
}
