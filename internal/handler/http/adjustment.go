package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AdjustmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// adjustmentHandlerImpl serves one adjustment kind. Bonuses and prepaids are mounted separately.
type adjustmentHandlerImpl struct {
	adjustmentService payroll.AdjustmentService
	kind              payroll.AdjustmentKind
}

func NewAdjustmentHandler(adjustmentService payroll.AdjustmentService, kind payroll.AdjustmentKind) AdjustmentHandler {
	return &adjustmentHandlerImpl{
		adjustmentService: adjustmentService,
		kind:              kind,
	}
}

func (h *adjustmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Kind = h.kind

	result, err := h.adjustmentService.CreateAdjustment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment created", result)
}

func (h *adjustmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.adjustmentService.GetAdjustment(r.Context(), h.kind, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET ?employee_id=&year=&month=
func (h *adjustmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payroll.AdjustmentFilter{
		EmployeeID: getOptionalStringQueryParam(r, "employee_id"),
		Year:       getOptionalIntQueryParam(r, "year"),
		Month:      getOptionalIntQueryParam(r, "month"),
	}

	result, err := h.adjustmentService.ListAdjustments(r.Context(), h.kind, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *adjustmentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.Kind = h.kind

	result, err := h.adjustmentService.UpdateAdjustment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment updated", result)
}

func (h *adjustmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.adjustmentService.DeleteAdjustment(r.Context(), h.kind, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Adjustment deleted", nil)
}
