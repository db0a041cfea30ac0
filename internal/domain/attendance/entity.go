package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status tags one calendar day of attendance.
type Status string

const (
	StatusPresent     Status = "present"
	StatusSickLeave   Status = "sick_leave"
	StatusAnnualLeave Status = "annual_leave"
	StatusAbsent      Status = "absent"
	StatusHoliday     Status = "holiday"
)

func ValidStatuses() []string {
	return []string{
		string(StatusPresent),
		string(StatusSickLeave),
		string(StatusAnnualLeave),
		string(StatusAbsent),
		string(StatusHoliday),
	}
}

type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	EntryTime     *string
	ExitTime      *string
	OvertimeHours decimal.Decimal
	Status        Status
	Note          *string
	CreatedAt     time.Time

	// Joined fields
	EmployeeCode *string
	EmployeeName *string
}
