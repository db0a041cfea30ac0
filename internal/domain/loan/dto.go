package loan

import (
	"github.com/faranhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLoanRequest struct {
	EmployeeID        string          `json:"employee_id"`
	LoanAmount        decimal.Decimal `json:"loan_amount"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	TotalInstallments int             `json:"total_installments"`
	StartDate         string          `json:"start_date"`
	Note              *string         `json:"note,omitempty"`
}

func (r *CreateLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.LoanAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "loan_amount", Message: "must be positive"})
	}
	if !r.InstallmentAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "installment_amount", Message: "must be positive"})
	}
	if r.TotalInstallments <= 0 {
		errs = append(errs, validator.ValidationError{Field: "total_installments", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLoanRequest struct {
	ID                    string
	InstallmentAmount     *decimal.Decimal `json:"installment_amount,omitempty"`
	RemainingInstallments *int             `json:"remaining_installments,omitempty"`
	Note                  *string          `json:"note,omitempty"`
	IsActive              *bool            `json:"is_active,omitempty"`
}

func (r *UpdateLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.InstallmentAmount != nil && !r.InstallmentAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "installment_amount", Message: "must be positive"})
	}
	if r.RemainingInstallments != nil && *r.RemainingInstallments < 0 {
		errs = append(errs, validator.ValidationError{Field: "remaining_installments", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoanResponse struct {
	ID                    string          `json:"id"`
	EmployeeID            string          `json:"employee_id"`
	EmployeeCode          string          `json:"employee_code,omitempty"`
	EmployeeName          string          `json:"employee_name,omitempty"`
	LoanAmount            decimal.Decimal `json:"loan_amount"`
	InstallmentAmount     decimal.Decimal `json:"installment_amount"`
	RemainingInstallments int             `json:"remaining_installments"`
	TotalInstallments     int             `json:"total_installments"`
	StartDate             string          `json:"start_date"`
	Note                  *string         `json:"note,omitempty"`
	IsActive              bool            `json:"is_active"`
}
