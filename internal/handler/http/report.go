package http

import (
	"net/http"
	"strconv"

	"github.com/faranhr/payroll-backend-go/internal/domain/report"
	"github.com/faranhr/payroll-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	PayrollReport(w http.ResponseWriter, r *http.Request)
	AttendanceReport(w http.ResponseWriter, r *http.Request)
	YearlySummary(w http.ResponseWriter, r *http.Request)
	SalaryDistribution(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) PayrollReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := periodFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.PayrollReport(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	year, month, err := periodFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.AttendanceReport(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) YearlySummary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "query parameter 'year' must be an integer", nil)
		return
	}

	result, err := h.reportService.YearlySummary(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) SalaryDistribution(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.SalaryDistribution(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
