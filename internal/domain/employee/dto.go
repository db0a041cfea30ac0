package employee

import (
	"github.com/faranhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode         string           `json:"employee_code"`
	FirstName            string           `json:"first_name"`
	LastName             string           `json:"last_name"`
	NationalID           string           `json:"national_id"`
	Position             *string          `json:"position,omitempty"`
	HireDate             string           `json:"hire_date"`
	BaseSalary           decimal.Decimal  `json:"base_salary"`
	HousingAllowanceRate *decimal.Decimal `json:"housing_allowance_rate,omitempty"`
	FamilyAllowanceRate  *decimal.Decimal `json:"family_allowance_rate,omitempty"`
	ChildrenCount        int              `json:"children_count"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if !validator.IsValidNationalID(r.NationalID) {
		errs = append(errs, validator.ValidationError{Field: "national_id", Message: "must be exactly 10 digits"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !r.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be positive"})
	}
	if r.HousingAllowanceRate != nil && !validator.IsRate(*r.HousingAllowanceRate) {
		errs = append(errs, validator.ValidationError{Field: "housing_allowance_rate", Message: "must be between 0 and 1"})
	}
	if r.FamilyAllowanceRate != nil && !validator.IsRate(*r.FamilyAllowanceRate) {
		errs = append(errs, validator.ValidationError{Field: "family_allowance_rate", Message: "must be between 0 and 1"})
	}
	if r.ChildrenCount < 0 {
		errs = append(errs, validator.ValidationError{Field: "children_count", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                   string
	FirstName            *string          `json:"first_name,omitempty"`
	LastName             *string          `json:"last_name,omitempty"`
	Position             *string          `json:"position,omitempty"`
	BaseSalary           *decimal.Decimal `json:"base_salary,omitempty"`
	HousingAllowanceRate *decimal.Decimal `json:"housing_allowance_rate,omitempty"`
	FamilyAllowanceRate  *decimal.Decimal `json:"family_allowance_rate,omitempty"`
	ChildrenCount        *int             `json:"children_count,omitempty"`
	IsActive             *bool            `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BaseSalary != nil && !r.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be positive"})
	}
	if r.HousingAllowanceRate != nil && !validator.IsRate(*r.HousingAllowanceRate) {
		errs = append(errs, validator.ValidationError{Field: "housing_allowance_rate", Message: "must be between 0 and 1"})
	}
	if r.FamilyAllowanceRate != nil && !validator.IsRate(*r.FamilyAllowanceRate) {
		errs = append(errs, validator.ValidationError{Field: "family_allowance_rate", Message: "must be between 0 and 1"})
	}
	if r.ChildrenCount != nil && *r.ChildrenCount < 0 {
		errs = append(errs, validator.ValidationError{Field: "children_count", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                   string          `json:"id"`
	EmployeeCode         string          `json:"employee_code"`
	FirstName            string          `json:"first_name"`
	LastName             string          `json:"last_name"`
	NationalID           string          `json:"national_id"`
	Position             *string         `json:"position,omitempty"`
	HireDate             string          `json:"hire_date"`
	BaseSalary           decimal.Decimal `json:"base_salary"`
	HousingAllowanceRate decimal.Decimal `json:"housing_allowance_rate"`
	FamilyAllowanceRate  decimal.Decimal `json:"family_allowance_rate"`
	ChildrenCount        int             `json:"children_count"`
	IsActive             bool            `json:"is_active"`
}
