package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/faranhr/payroll-backend-go/internal/handler/http/response"
	"github.com/faranhr/payroll-backend-go/internal/repository/memory"
	advanceService "github.com/faranhr/payroll-backend-go/internal/service/advance"
	attendanceService "github.com/faranhr/payroll-backend-go/internal/service/attendance"
	employeeService "github.com/faranhr/payroll-backend-go/internal/service/employee"
	loanService "github.com/faranhr/payroll-backend-go/internal/service/loan"
	payrollService "github.com/faranhr/payroll-backend-go/internal/service/payroll"
	reportService "github.com/faranhr/payroll-backend-go/internal/service/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the full API against the in-memory store, the same
// assembly demo mode uses.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	employeeRepo := memory.NewEmployeeRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	loanRepo := memory.NewLoanRepository(store)
	advanceRepo := memory.NewAdvanceRepository(store)
	payrollRepo := memory.NewPayrollRepository(store)
	reportRepo := memory.NewReportRepository(store)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handlers := Handlers{
		Employee:   NewEmployeeHandler(employeeService.NewEmployeeService(employeeRepo)),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)),
		Loan:       NewLoanHandler(loanService.NewLoanService(loanRepo, employeeRepo)),
		Advance:    NewAdvanceHandler(advanceService.NewAdvanceService(advanceRepo, employeeRepo)),
		Payroll: NewPayrollHandler(payrollService.NewPayrollService(
			payrollRepo, employeeRepo, attendanceRepo, loanRepo, advanceRepo, store, logger,
		)),
		Report: NewReportHandler(reportService.NewReportService(reportRepo)),
	}

	return NewRouter(logger, handlers)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func createEmployeeRequest(code string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeCode: code,
		FirstName:    "Test",
		LastName:     code,
		NationalID:   code + "000000",
		HireDate:     "2023-01-01",
		BaseSalary:   decimal.NewFromInt(56000000),
	}
}

func createTestEmployee(t *testing.T, router http.Handler, code string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/employees", createEmployeeRequest(code))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	id, ok := data["id"].(string)
	require.True(t, ok)
	return id
}

func TestEmployeeHandler_Create(t *testing.T) {
	router := newTestRouter(t)

	t.Run("success", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/employees", createEmployeeRequest("1001"))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		req := createEmployeeRequest("1001")
		req.NationalID = "9999999999"
		rec := doJSON(t, router, http.MethodPost, "/api/v1/employees", req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid payload fails validation", func(t *testing.T) {
		req := createEmployeeRequest("1002")
		req.NationalID = "123"
		rec := doJSON(t, router, http.MethodPost, "/api/v1/employees", req)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Details, "national_id")
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEmployeeHandler_Get(t *testing.T) {
	router := newTestRouter(t)
	id := createTestEmployee(t, router, "1001")

	t.Run("success", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/employees/"+id, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "1001", data["employee_code"])
	})

	t.Run("missing employee is not found", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/employees/no-such-id", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPayrollHandler_GenerateAndPay(t *testing.T) {
	router := newTestRouter(t)
	createTestEmployee(t, router, "1001")
	createTestEmployee(t, router, "1002")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/payroll/generate", payroll.GeneratePayrollRequest{Year: 2024, Month: 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["total"])
	assert.Equal(t, float64(2), data["succeeded"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/payroll/records?year=2024&month=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp = decodeResponse(t, rec)
	records, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, records, 2)

	first, ok := records[0].(map[string]interface{})
	require.True(t, ok)
	recordID, ok := first["id"].(string)
	require.True(t, ok)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/payroll/records/%s/pay", recordID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/payroll/records/summary?year=2024&month=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp = decodeResponse(t, rec)
	summary, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), summary["employee_count"])
	assert.Equal(t, float64(1), summary["paid_count"])
}

func TestPayrollHandler_Generate_NoEmployees(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/payroll/generate", payroll.GeneratePayrollRequest{Year: 2024, Month: 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayrollHandler_Settings(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/payroll/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	settings, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "56000000", settings["reference_base_salary"])

	threshold := decimal.NewFromInt(60000000)
	rec = doJSON(t, router, http.MethodPut, "/api/v1/payroll/settings", payroll.UpdateSettingsRequest{TaxThreshold: &threshold})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp = decodeResponse(t, rec)
	settings, ok = resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "60000000", settings["tax_threshold"])
}

func TestReportHandler_SalaryDistribution(t *testing.T) {
	router := newTestRouter(t)
	createTestEmployee(t, router, "1001")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/reports/salary-distribution", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
