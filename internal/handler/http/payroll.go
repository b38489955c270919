package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Month configuration
	GetMonthConfig(w http.ResponseWriter, r *http.Request)
	UpdateMonthConfig(w http.ResponseWriter, r *http.Request)

	// Runs
	CreateRun(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	ListRuns(w http.ResponseWriter, r *http.Request)
	DeleteRun(w http.ResponseWriter, r *http.Request)
	CalculateRun(w http.ResponseWriter, r *http.Request)
	FinalizeRun(w http.ResponseWriter, r *http.Request)
	ListLines(w http.ResponseWriter, r *http.Request)

	// Exports
	ExportXLSX(w http.ResponseWriter, r *http.Request)
	ExportPDF(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== MONTH CONFIGURATION ==========

// GetMonthConfig handles GET /month-configs/{year}/{month}
func (h *payrollHandlerImpl) GetMonthConfig(w http.ResponseWriter, r *http.Request) {
	year, month := getPeriodURLParams(r)

	result, err := h.payrollService.GetMonthConfig(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMonthConfig handles PUT /month-configs/{year}/{month}
func (h *payrollHandlerImpl) UpdateMonthConfig(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateMonthConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Year, req.Month = getPeriodURLParams(r)

	result, err := h.payrollService.UpdateMonthConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month configuration updated", result)
}

// ========== RUNS ==========

func (h *payrollHandlerImpl) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run created", result)
}

func (h *payrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll run ID is required", nil)
		return
	}

	result, err := h.payrollService.GetRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListRuns handles GET /payroll/runs?year=&status=
func (h *payrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	filter := payroll.RunFilter{
		Year: getOptionalIntQueryParam(r, "year"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := payroll.RunStatus(s)
		filter.Status = &status
	}

	result, err := h.payrollService.ListRuns(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteRun(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run deleted", nil)
}

// CalculateRun handles POST /payroll/runs/{id}/calculate
func (h *payrollHandlerImpl) CalculateRun(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.CalculateRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll calculated", result)
}

// FinalizeRun handles POST /payroll/runs/{id}/finalize
func (h *payrollHandlerImpl) FinalizeRun(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.FinalizeRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run finalized", result)
}

func (h *payrollHandlerImpl) ListLines(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListLines(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== EXPORTS ==========

func (h *payrollHandlerImpl) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.payrollService.ExportRunXLSX(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, contentTypeXLSX, filename, data)
}

func (h *payrollHandlerImpl) ExportPDF(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.payrollService.ExportRunPDF(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, contentTypePDF, filename, data)
}
