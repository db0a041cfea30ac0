package postgresql

import (
	"context"
	"fmt"

	"github.com/faranhr/payroll-backend-go/internal/domain/report"
	"github.com/faranhr/payroll-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) PayrollReportRows(ctx context.Context, year, month int) ([]report.PayrollReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.employee_code,
			   p.first_name || ' ' || p.last_name,
			   pr.base_salary,
			   (pr.housing_allowance + pr.family_allowance + pr.child_allowance +
				pr.overtime_amount + pr.other_allowances),
			   (pr.insurance_employee + pr.tax_amount + pr.loan_deduction +
				pr.advance_deduction + pr.other_deductions),
			   pr.net_salary,
			   pr.is_paid,
			   pr.payment_date::text
		FROM payroll pr
		JOIN personnel p ON pr.personnel_id = p.id
		WHERE pr.year = $1 AND pr.month = $2
		ORDER BY p.employee_code
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll report: %w", err)
	}
	defer rows.Close()

	var result []report.PayrollReportRow
	for rows.Next() {
		var row report.PayrollReportRow
		err := rows.Scan(
			&row.EmployeeCode, &row.FullName, &row.BaseSalary,
			&row.TotalAllowances, &row.TotalDeductions, &row.NetSalary,
			&row.IsPaid, &row.PaymentDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll report row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (r *reportRepository) AttendanceReportRows(ctx context.Context, year, month int) ([]report.AttendanceReportRow, error) {
	q := GetQuerier(ctx, r.db)

	// Active employees with no records for the month still get a zero row.
	query := `
		SELECT p.employee_code,
			   p.first_name || ' ' || p.last_name,
			   COUNT(CASE WHEN a.status = 'present' THEN 1 END),
			   COUNT(CASE WHEN a.status = 'sick_leave' THEN 1 END),
			   COUNT(CASE WHEN a.status = 'annual_leave' THEN 1 END),
			   COUNT(CASE WHEN a.status = 'absent' THEN 1 END),
			   COUNT(CASE WHEN a.status = 'holiday' THEN 1 END),
			   COALESCE(SUM(a.overtime_hours), 0)
		FROM personnel p
		LEFT JOIN attendance a ON p.id = a.personnel_id
			AND EXTRACT(YEAR FROM a.date) = $1
			AND EXTRACT(MONTH FROM a.date) = $2
		WHERE p.is_active = TRUE
		GROUP BY p.id, p.employee_code, p.first_name, p.last_name
		ORDER BY p.employee_code
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance report: %w", err)
	}
	defer rows.Close()

	var result []report.AttendanceReportRow
	for rows.Next() {
		var row report.AttendanceReportRow
		err := rows.Scan(
			&row.EmployeeCode, &row.FullName,
			&row.PresentDays, &row.SickLeaveDays, &row.AnnualLeave,
			&row.AbsentDays, &row.HolidayDays, &row.OvertimeHours,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance report row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (r *reportRepository) MonthlySummaryRows(ctx context.Context, year int) ([]report.MonthlySummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT month,
			   COUNT(*),
			   COUNT(CASE WHEN is_paid THEN 1 END),
			   SUM(base_salary),
			   SUM(gross_salary),
			   SUM(net_salary),
			   SUM(insurance_employee),
			   SUM(insurance_employer),
			   SUM(tax_amount)
		FROM payroll
		WHERE year = $1
		GROUP BY month
		ORDER BY month
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query yearly summary: %w", err)
	}
	defer rows.Close()

	var result []report.MonthlySummaryRow
	for rows.Next() {
		var row report.MonthlySummaryRow
		err := rows.Scan(
			&row.Month, &row.EmployeeCount, &row.PaidCount,
			&row.TotalBaseSalary, &row.TotalGrossSalary, &row.TotalNetSalary,
			&row.TotalInsuranceEmployee, &row.TotalInsuranceEmployer, &row.TotalTax,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan yearly summary row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (r *reportRepository) SalaryDistribution(ctx context.Context) ([]report.SalaryBucket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT CASE
				   WHEN base_salary < 30000000 THEN 'under_30m'
				   WHEN base_salary < 50000000 THEN '30m_to_50m'
				   WHEN base_salary < 80000000 THEN '50m_to_80m'
				   ELSE 'over_80m'
			   END AS salary_range,
			   COUNT(*),
			   AVG(base_salary),
			   MIN(base_salary),
			   MAX(base_salary)
		FROM personnel
		WHERE is_active = TRUE
		GROUP BY salary_range
		ORDER BY MIN(base_salary)
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary distribution: %w", err)
	}
	defer rows.Close()

	var result []report.SalaryBucket
	for rows.Next() {
		var bucket report.SalaryBucket
		err := rows.Scan(
			&bucket.Range, &bucket.EmployeeCount,
			&bucket.AverageSalary, &bucket.MinSalary, &bucket.MaxSalary,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary bucket: %w", err)
		}
		result = append(result, bucket)
	}

	return result, rows.Err()
}
