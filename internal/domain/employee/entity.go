package employee

import (
	"time"

	"github.com/faranhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                   string
	EmployeeCode         string
	FirstName            string
	LastName             string
	NationalID           string
	Position             *string
	HireDate             time.Time
	BaseSalary           decimal.Decimal
	HousingAllowanceRate decimal.Decimal
	FamilyAllowanceRate  decimal.Decimal
	ChildrenCount        int
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Validate checks the compensation fields a payroll calculation depends on.
// Stored rows can predate the request-level rules, so the engine re-checks
// before calculating.
func (e Employee) Validate() error {
	if !e.BaseSalary.IsPositive() {
		return ErrInvalidBaseSalary
	}
	if !validator.IsRate(e.HousingAllowanceRate) || !validator.IsRate(e.FamilyAllowanceRate) {
		return ErrInvalidAllowanceRate
	}
	return nil
}
