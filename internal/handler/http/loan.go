package http

import (
	"encoding/json"
	"net/http"

	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/faranhr/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LoanHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type loanHandlerImpl struct {
	loanService loan.LoanService
}

func NewLoanHandler(loanService loan.LoanService) LoanHandler {
	return &loanHandlerImpl{loanService: loanService}
}

func (h *loanHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req loan.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.loanService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Loan created", result)
}

func (h *loanHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.loanService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *loanHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		result, err := h.loanService.ListByEmployee(r.Context(), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	result, err := h.loanService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *loanHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req loan.UpdateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.loanService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Loan updated", result)
}

func (h *loanHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.loanService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Loan deleted", nil)
}
