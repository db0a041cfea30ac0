package attendance

import (
	"github.com/faranhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAttendanceRequest struct {
	EmployeeID    string           `json:"employee_id"`
	Date          string           `json:"date"`
	EntryTime     *string          `json:"entry_time,omitempty"`
	ExitTime      *string          `json:"exit_time,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	Status        string           `json:"status"`
	Note          *string          `json:"note,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EntryTime != nil && !validator.IsValidTimeOfDay(*r.EntryTime) {
		errs = append(errs, validator.ValidationError{Field: "entry_time", Message: "must be a valid time (HH:MM)"})
	}
	if r.ExitTime != nil && !validator.IsValidTimeOfDay(*r.ExitTime) {
		errs = append(errs, validator.ValidationError{Field: "exit_time", Message: "must be a valid time (HH:MM)"})
	}
	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}
	if !validator.IsInSlice(r.Status, ValidStatuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: present, sick_leave, annual_leave, absent, holiday"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	ID            string
	EntryTime     *string          `json:"entry_time,omitempty"`
	ExitTime      *string          `json:"exit_time,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	Status        *string          `json:"status,omitempty"`
	Note          *string          `json:"note,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EntryTime != nil && !validator.IsValidTimeOfDay(*r.EntryTime) {
		errs = append(errs, validator.ValidationError{Field: "entry_time", Message: "must be a valid time (HH:MM)"})
	}
	if r.ExitTime != nil && !validator.IsValidTimeOfDay(*r.ExitTime) {
		errs = append(errs, validator.ValidationError{Field: "exit_time", Message: "must be a valid time (HH:MM)"})
	}
	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, ValidStatuses()) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: present, sick_leave, annual_leave, absent, holiday"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeCode  string          `json:"employee_code,omitempty"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	Date          string          `json:"date"`
	EntryTime     *string         `json:"entry_time,omitempty"`
	ExitTime      *string         `json:"exit_time,omitempty"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Status        string          `json:"status"`
	Note          *string         `json:"note,omitempty"`
}
