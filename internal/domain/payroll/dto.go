package payroll

import (
	"github.com/faranhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTINGS DTOs ==========

type SettingsResponse struct {
	ReferenceBaseSalary   decimal.Decimal `json:"reference_base_salary"`
	HousingAllowanceRate  decimal.Decimal `json:"housing_allowance_rate"`
	FamilyAllowanceRate   decimal.Decimal `json:"family_allowance_rate"`
	ChildAllowanceAmount  decimal.Decimal `json:"child_allowance_amount"`
	InsuranceEmployeeRate decimal.Decimal `json:"insurance_employee_rate"`
	InsuranceEmployerRate decimal.Decimal `json:"insurance_employer_rate"`
	TaxThreshold          decimal.Decimal `json:"tax_threshold"`
}

type UpdateSettingsRequest struct {
	ReferenceBaseSalary   *decimal.Decimal `json:"reference_base_salary,omitempty"`
	HousingAllowanceRate  *decimal.Decimal `json:"housing_allowance_rate,omitempty"`
	FamilyAllowanceRate   *decimal.Decimal `json:"family_allowance_rate,omitempty"`
	ChildAllowanceAmount  *decimal.Decimal `json:"child_allowance_amount,omitempty"`
	InsuranceEmployeeRate *decimal.Decimal `json:"insurance_employee_rate,omitempty"`
	InsuranceEmployerRate *decimal.Decimal `json:"insurance_employer_rate,omitempty"`
	TaxThreshold          *decimal.Decimal `json:"tax_threshold,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ReferenceBaseSalary != nil && !r.ReferenceBaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "reference_base_salary", Message: "must be positive"})
	}
	if r.HousingAllowanceRate != nil && !validator.IsRate(*r.HousingAllowanceRate) {
		errs = append(errs, validator.ValidationError{Field: "housing_allowance_rate", Message: "must be between 0 and 1"})
	}
	if r.FamilyAllowanceRate != nil && !validator.IsRate(*r.FamilyAllowanceRate) {
		errs = append(errs, validator.ValidationError{Field: "family_allowance_rate", Message: "must be between 0 and 1"})
	}
	if r.ChildAllowanceAmount != nil && r.ChildAllowanceAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "child_allowance_amount", Message: "must be non-negative"})
	}
	if r.InsuranceEmployeeRate != nil && !validator.IsRate(*r.InsuranceEmployeeRate) {
		errs = append(errs, validator.ValidationError{Field: "insurance_employee_rate", Message: "must be between 0 and 1"})
	}
	if r.InsuranceEmployerRate != nil && !validator.IsRate(*r.InsuranceEmployerRate) {
		errs = append(errs, validator.ValidationError{Field: "insurance_employer_rate", Message: "must be between 0 and 1"})
	}
	if r.TaxThreshold != nil && r.TaxThreshold.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "tax_threshold", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks a full settings value at the engine boundary. A batch run
// aborts before any writes when this fails.
func (s Settings) Validate() error {
	var errs validator.ValidationErrors

	if !s.ReferenceBaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "reference_base_salary", Message: "must be positive"})
	}
	if !validator.IsRate(s.HousingAllowanceRate) {
		errs = append(errs, validator.ValidationError{Field: "housing_allowance_rate", Message: "must be between 0 and 1"})
	}
	if !validator.IsRate(s.FamilyAllowanceRate) {
		errs = append(errs, validator.ValidationError{Field: "family_allowance_rate", Message: "must be between 0 and 1"})
	}
	if s.ChildAllowanceAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "child_allowance_amount", Message: "must be non-negative"})
	}
	if !validator.IsRate(s.InsuranceEmployeeRate) {
		errs = append(errs, validator.ValidationError{Field: "insurance_employee_rate", Message: "must be between 0 and 1"})
	}
	if !validator.IsRate(s.InsuranceEmployerRate) {
		errs = append(errs, validator.ValidationError{Field: "insurance_employer_rate", Message: "must be between 0 and 1"})
	}
	if s.TaxThreshold.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "tax_threshold", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RECORD DTOs ==========

type GeneratePayrollRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a plausible Gregorian year"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeCode      string          `json:"employee_code,omitempty"`
	EmployeeName      string          `json:"employee_name,omitempty"`
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	HousingAllowance  decimal.Decimal `json:"housing_allowance"`
	FamilyAllowance   decimal.Decimal `json:"family_allowance"`
	ChildAllowance    decimal.Decimal `json:"child_allowance"`
	OvertimeAmount    decimal.Decimal `json:"overtime_amount"`
	OtherAllowances   decimal.Decimal `json:"other_allowances"`
	GrossSalary       decimal.Decimal `json:"gross_salary"`
	InsuranceEmployee decimal.Decimal `json:"insurance_employee"`
	InsuranceEmployer decimal.Decimal `json:"insurance_employer"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	LoanDeduction     decimal.Decimal `json:"loan_deduction"`
	AdvanceDeduction  decimal.Decimal `json:"advance_deduction"`
	OtherDeductions   decimal.Decimal `json:"other_deductions"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	NetSalary         decimal.Decimal `json:"net_salary"`
	IsPaid            bool            `json:"is_paid"`
	PaymentDate       *string         `json:"payment_date,omitempty"`
}

type SummaryResponse struct {
	EmployeeCount int             `json:"employee_count"`
	PaidCount     int             `json:"paid_count"`
	TotalNet      decimal.Decimal `json:"total_net"`
	PaidNet       decimal.Decimal `json:"paid_net"`
	UnpaidNet     decimal.Decimal `json:"unpaid_net"`
}
