package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Advance struct {
	ID          string
	EmployeeID  string
	Amount      decimal.Decimal
	AdvanceDate time.Time
	Note        *string
	IsSettled   bool
	CreatedAt   time.Time

	// Joined fields
	EmployeeCode *string
	EmployeeName *string
}
