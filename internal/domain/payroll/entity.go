package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings - rate configuration for payroll calculation. A single row,
// editable from the settings screen, read once per batch run.
type Settings struct {
	// ReferenceBaseSalary anchors the overtime hourly rate. The hourly rate
	// is derived from this configured amount, not from each employee's own
	// base salary.
	ReferenceBaseSalary   decimal.Decimal
	HousingAllowanceRate  decimal.Decimal
	FamilyAllowanceRate   decimal.Decimal
	ChildAllowanceAmount  decimal.Decimal
	InsuranceEmployeeRate decimal.Decimal
	InsuranceEmployerRate decimal.Decimal
	TaxThreshold          decimal.Decimal
	UpdatedAt             time.Time
}

// PeriodInputs are the attendance and deduction aggregates the resolver
// gathers for one employee and one (year, month) period.
type PeriodInputs struct {
	OvertimeHours   decimal.Decimal
	LoanID          *string
	LoanInstallment decimal.Decimal
	AdvanceID       *string
	AdvanceAmount   decimal.Decimal
	OtherAllowances decimal.Decimal
	OtherDeductions decimal.Decimal
}

// PayrollRecord - one itemized computation per employee per period.
type PayrollRecord struct {
	ID                string
	EmployeeID        string
	Year              int
	Month             int
	BaseSalary        decimal.Decimal
	HousingAllowance  decimal.Decimal
	FamilyAllowance   decimal.Decimal
	ChildAllowance    decimal.Decimal
	OvertimeAmount    decimal.Decimal
	OtherAllowances   decimal.Decimal
	GrossSalary       decimal.Decimal
	InsuranceEmployee decimal.Decimal
	InsuranceEmployer decimal.Decimal
	TaxAmount         decimal.Decimal
	LoanDeduction     decimal.Decimal
	AdvanceDeduction  decimal.Decimal
	OtherDeductions   decimal.Decimal
	NetSalary         decimal.Decimal
	IsPaid            bool
	PaymentDate       *time.Time
	CreatedAt         time.Time

	// Joined fields
	EmployeeCode *string
	EmployeeName *string
}

// TotalDeductions is everything withheld from gross salary. Employer
// insurance is informational and not part of it.
func (r PayrollRecord) TotalDeductions() decimal.Decimal {
	return r.InsuranceEmployee.
		Add(r.TaxAmount).
		Add(r.LoanDeduction).
		Add(r.AdvanceDeduction).
		Add(r.OtherDeductions)
}

// Summary - period totals for the overview cards.
type Summary struct {
	EmployeeCount int
	PaidCount     int
	TotalNet      decimal.Decimal
	PaidNet       decimal.Decimal
	UnpaidNet     decimal.Decimal
}

// SkippedEmployee names one employee left out of a batch run and why.
type SkippedEmployee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	Reason       string `json:"reason"`
}

// RunResult reports a batch calculation: "Succeeded of Total" with the
// skipped employees enumerated.
type RunResult struct {
	Year      int               `json:"year"`
	Month     int               `json:"month"`
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Skipped   []SkippedEmployee `json:"skipped,omitempty"`
}
