package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Loan struct {
	ID                    string
	EmployeeID            string
	LoanAmount            decimal.Decimal
	InstallmentAmount     decimal.Decimal
	RemainingInstallments int
	TotalInstallments     int
	StartDate             time.Time
	Note                  *string
	IsActive              bool
	CreatedAt             time.Time

	// Joined fields
	EmployeeCode *string
	EmployeeName *string
}
