package attendance

import (
	"context"

	"github.com/shopspring/decimal"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	// ListByPeriod returns records for a Gregorian (year, month); employeeID
	// narrows the result to one employee when non-empty.
	ListByPeriod(ctx context.Context, employeeID string, year, month int) ([]Attendance, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) error
	Delete(ctx context.Context, id string) error
	// SumOvertimeHours aggregates overtime over the employee's calendar month.
	// No matching rows means zero, not an error.
	SumOvertimeHours(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error)
}
