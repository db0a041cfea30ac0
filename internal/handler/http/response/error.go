package response

import (
	"errors"
	"net/http"

	"github.com/faranhr/payroll-backend-go/internal/domain/advance"
	"github.com/faranhr/payroll-backend-go/internal/domain/attendance"
	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/faranhr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrNationalIDExists):
		Conflict(w, "National ID already registered")
	case errors.Is(err, employee.ErrEmployeeHasPayroll):
		Conflict(w, "Employee has payroll history and cannot be deleted")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Loan domain errors
	case errors.Is(err, loan.ErrLoanNotFound):
		NotFound(w, "Loan not found")
	case errors.Is(err, loan.ErrLoanFullyRepaid):
		Conflict(w, "Loan is already fully repaid")

	// Advance domain errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, advance.ErrAlreadySettled):
		Conflict(w, "Advance is already settled")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Conflict(w, "Payroll record is already paid")
	case errors.Is(err, payroll.ErrInvalidSettings):
		BadRequest(w, "Payroll settings are invalid", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrNoActiveEmployees):
		BadRequest(w, "No active employees to calculate", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
