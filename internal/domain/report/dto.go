package report

import "github.com/shopspring/decimal"

// PayrollReportRow - one employee line of the period payroll report, with
// allowances and deductions rolled up.
type PayrollReportRow struct {
	EmployeeCode    string          `json:"employee_code"`
	FullName        string          `json:"full_name"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	IsPaid          bool            `json:"is_paid"`
	PaymentDate     *string         `json:"payment_date,omitempty"`
}

type PayrollReportTotals struct {
	EmployeeCount   int             `json:"employee_count"`
	PaidCount       int             `json:"paid_count"`
	TotalBase       decimal.Decimal `json:"total_base"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
}

type PayrollReport struct {
	Year   int                 `json:"year"`
	Month  int                 `json:"month"`
	Rows   []PayrollReportRow  `json:"rows"`
	Totals PayrollReportTotals `json:"totals"`
}

// AttendanceReportRow - per-employee attendance-type counts and overtime
// for one month. Active employees with no records still appear with zeros.
type AttendanceReportRow struct {
	EmployeeCode  string          `json:"employee_code"`
	FullName      string          `json:"full_name"`
	PresentDays   int             `json:"present_days"`
	SickLeaveDays int             `json:"sick_leave_days"`
	AnnualLeave   int             `json:"annual_leave_days"`
	AbsentDays    int             `json:"absent_days"`
	HolidayDays   int             `json:"holiday_days"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
}

type AttendanceReport struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Rows  []AttendanceReportRow `json:"rows"`
}

// MonthlySummaryRow - one month of the yearly payroll summary.
type MonthlySummaryRow struct {
	Month                  int             `json:"month"`
	EmployeeCount          int             `json:"employee_count"`
	PaidCount              int             `json:"paid_count"`
	TotalBaseSalary        decimal.Decimal `json:"total_base_salary"`
	TotalGrossSalary       decimal.Decimal `json:"total_gross_salary"`
	TotalNetSalary         decimal.Decimal `json:"total_net_salary"`
	TotalInsuranceEmployee decimal.Decimal `json:"total_insurance_employee"`
	TotalInsuranceEmployer decimal.Decimal `json:"total_insurance_employer"`
	TotalTax               decimal.Decimal `json:"total_tax"`
}

type YearlySummary struct {
	Year   int                 `json:"year"`
	Months []MonthlySummaryRow `json:"months"`
}

// SalaryBucket - base-salary distribution band over active employees.
type SalaryBucket struct {
	Range         string          `json:"range"`
	EmployeeCount int             `json:"employee_count"`
	AverageSalary decimal.Decimal `json:"average_salary"`
	MinSalary     decimal.Decimal `json:"min_salary"`
	MaxSalary     decimal.Decimal `json:"max_salary"`
}
