package report

import "context"

type ReportRepository interface {
	PayrollReportRows(ctx context.Context, year, month int) ([]PayrollReportRow, error)
	AttendanceReportRows(ctx context.Context, year, month int) ([]AttendanceReportRow, error)
	MonthlySummaryRows(ctx context.Context, year int) ([]MonthlySummaryRow, error)
	SalaryDistribution(ctx context.Context) ([]SalaryBucket, error)
}
