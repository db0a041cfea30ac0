package report

import (
	"context"

	"github.com/faranhr/payroll-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{reportRepo: reportRepo}
}

func (s *ReportServiceImpl) PayrollReport(ctx context.Context, year, month int) (report.PayrollReport, error) {
	rows, err := s.reportRepo.PayrollReportRows(ctx, year, month)
	if err != nil {
		return report.PayrollReport{}, err
	}

	totals := report.PayrollReportTotals{
		TotalBase:       decimal.Zero,
		TotalAllowances: decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
	}
	for _, row := range rows {
		totals.EmployeeCount++
		if row.IsPaid {
			totals.PaidCount++
		}
		totals.TotalBase = totals.TotalBase.Add(row.BaseSalary)
		totals.TotalAllowances = totals.TotalAllowances.Add(row.TotalAllowances)
		totals.TotalDeductions = totals.TotalDeductions.Add(row.TotalDeductions)
		totals.TotalNet = totals.TotalNet.Add(row.NetSalary)
	}

	return report.PayrollReport{
		Year:   year,
		Month:  month,
		Rows:   rows,
		Totals: totals,
	}, nil
}

func (s *ReportServiceImpl) AttendanceReport(ctx context.Context, year, month int) (report.AttendanceReport, error) {
	rows, err := s.reportRepo.AttendanceReportRows(ctx, year, month)
	if err != nil {
		return report.AttendanceReport{}, err
	}

	return report.AttendanceReport{
		Year:  year,
		Month: month,
		Rows:  rows,
	}, nil
}

func (s *ReportServiceImpl) YearlySummary(ctx context.Context, year int) (report.YearlySummary, error) {
	months, err := s.reportRepo.MonthlySummaryRows(ctx, year)
	if err != nil {
		return report.YearlySummary{}, err
	}

	return report.YearlySummary{
		Year:   year,
		Months: months,
	}, nil
}

func (s *ReportServiceImpl) SalaryDistribution(ctx context.Context) ([]report.SalaryBucket, error) {
	return s.reportRepo.SalaryDistribution(ctx)
}
