package memory

import (
	"context"
	"sort"

	"github.com/faranhr/payroll-backend-go/internal/domain/attendance"
	"github.com/faranhr/payroll-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

type reportRepository struct {
	store *Store
}

func NewReportRepository(store *Store) report.ReportRepository {
	return &reportRepository{store: store}
}

func (r *reportRepository) PayrollReportRows(ctx context.Context, year, month int) ([]report.PayrollReportRow, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var rows []report.PayrollReportRow
	for _, rec := range r.store.records {
		if rec.Year != year || rec.Month != month {
			continue
		}
		e, ok := r.store.employees[rec.EmployeeID]
		if !ok {
			continue
		}

		row := report.PayrollReportRow{
			EmployeeCode: e.EmployeeCode,
			FullName:     e.FullName(),
			BaseSalary:   rec.BaseSalary,
			TotalAllowances: rec.HousingAllowance.
				Add(rec.FamilyAllowance).
				Add(rec.ChildAllowance).
				Add(rec.OvertimeAmount).
				Add(rec.OtherAllowances),
			TotalDeductions: rec.TotalDeductions(),
			NetSalary:       rec.NetSalary,
			IsPaid:          rec.IsPaid,
		}
		if rec.PaymentDate != nil {
			d := rec.PaymentDate.Format("2006-01-02")
			row.PaymentDate = &d
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].EmployeeCode < rows[j].EmployeeCode
	})

	return rows, nil
}

func (r *reportRepository) AttendanceReportRows(ctx context.Context, year, month int) ([]report.AttendanceReportRow, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	rowsByEmployee := make(map[string]*report.AttendanceReportRow)
	for _, e := range r.store.employees {
		if !e.IsActive {
			continue
		}
		rowsByEmployee[e.ID] = &report.AttendanceReportRow{
			EmployeeCode:  e.EmployeeCode,
			FullName:      e.FullName(),
			OvertimeHours: decimal.Zero,
		}
	}

	for _, record := range r.store.attendance {
		row, ok := rowsByEmployee[record.EmployeeID]
		if !ok {
			continue
		}
		if record.Date.Year() != year || int(record.Date.Month()) != month {
			continue
		}
		switch record.Status {
		case attendance.StatusPresent:
			row.PresentDays++
		case attendance.StatusSickLeave:
			row.SickLeaveDays++
		case attendance.StatusAnnualLeave:
			row.AnnualLeave++
		case attendance.StatusAbsent:
			row.AbsentDays++
		case attendance.StatusHoliday:
			row.HolidayDays++
		}
		row.OvertimeHours = row.OvertimeHours.Add(record.OvertimeHours)
	}

	rows := make([]report.AttendanceReportRow, 0, len(rowsByEmployee))
	for _, row := range rowsByEmployee {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].EmployeeCode < rows[j].EmployeeCode
	})

	return rows, nil
}

func (r *reportRepository) MonthlySummaryRows(ctx context.Context, year int) ([]report.MonthlySummaryRow, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	byMonth := make(map[int]*report.MonthlySummaryRow)
	for _, rec := range r.store.records {
		if rec.Year != year {
			continue
		}
		row, ok := byMonth[rec.Month]
		if !ok {
			row = &report.MonthlySummaryRow{
				Month:                  rec.Month,
				TotalBaseSalary:        decimal.Zero,
				TotalGrossSalary:       decimal.Zero,
				TotalNetSalary:         decimal.Zero,
				TotalInsuranceEmployee: decimal.Zero,
				TotalInsuranceEmployer: decimal.Zero,
				TotalTax:               decimal.Zero,
			}
			byMonth[rec.Month] = row
		}
		row.EmployeeCount++
		if rec.IsPaid {
			row.PaidCount++
		}
		row.TotalBaseSalary = row.TotalBaseSalary.Add(rec.BaseSalary)
		row.TotalGrossSalary = row.TotalGrossSalary.Add(rec.GrossSalary)
		row.TotalNetSalary = row.TotalNetSalary.Add(rec.NetSalary)
		row.TotalInsuranceEmployee = row.TotalInsuranceEmployee.Add(rec.InsuranceEmployee)
		row.TotalInsuranceEmployer = row.TotalInsuranceEmployer.Add(rec.InsuranceEmployer)
		row.TotalTax = row.TotalTax.Add(rec.TaxAmount)
	}

	rows := make([]report.MonthlySummaryRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Month < rows[j].Month
	})

	return rows, nil
}

var salaryBands = []struct {
	name  string
	below string
}{
	{name: "under_30m", below: "30000000"},
	{name: "30m_to_50m", below: "50000000"},
	{name: "50m_to_80m", below: "80000000"},
	{name: "over_80m", below: ""},
}

func salaryBand(salary decimal.Decimal) string {
	for _, band := range salaryBands {
		if band.below == "" {
			return band.name
		}
		if salary.LessThan(decimal.RequireFromString(band.below)) {
			return band.name
		}
	}
	return salaryBands[len(salaryBands)-1].name
}

func (r *reportRepository) SalaryDistribution(ctx context.Context) ([]report.SalaryBucket, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	type agg struct {
		count int
		sum   decimal.Decimal
		min   decimal.Decimal
		max   decimal.Decimal
	}
	byBand := make(map[string]*agg)
	for _, e := range r.store.employees {
		if !e.IsActive {
			continue
		}
		band := salaryBand(e.BaseSalary)
		a, ok := byBand[band]
		if !ok {
			a = &agg{sum: decimal.Zero, min: e.BaseSalary, max: e.BaseSalary}
			byBand[band] = a
		}
		a.count++
		a.sum = a.sum.Add(e.BaseSalary)
		if e.BaseSalary.LessThan(a.min) {
			a.min = e.BaseSalary
		}
		if e.BaseSalary.GreaterThan(a.max) {
			a.max = e.BaseSalary
		}
	}

	var buckets []report.SalaryBucket
	for _, band := range salaryBands {
		a, ok := byBand[band.name]
		if !ok {
			continue
		}
		buckets = append(buckets, report.SalaryBucket{
			Range:         band.name,
			EmployeeCount: a.count,
			AverageSalary: a.sum.DivRound(decimal.NewFromInt(int64(a.count)), 2),
			MinSalary:     a.min,
			MaxSalary:     a.max,
		})
	}

	return buckets, nil
}
