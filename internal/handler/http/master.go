package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/position"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	// Department handlers
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	GetDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	// Position handlers
	CreatePosition(w http.ResponseWriter, r *http.Request)
	GetPosition(w http.ResponseWriter, r *http.Request)
	ListPositions(w http.ResponseWriter, r *http.Request)
	UpdatePosition(w http.ResponseWriter, r *http.Request)
	DeletePosition(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== DEPARTMENT HANDLERS ====================

func (h *masterHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", result)
}

func (h *masterHandlerImpl) GetDepartment(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetDepartment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.UpdateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated successfully", result)
}

func (h *masterHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteDepartment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

// ==================== POSITION HANDLERS ====================

func (h *masterHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreatePosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position created successfully", result)
}

func (h *masterHandlerImpl) GetPosition(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetPosition(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListPositions(r.Context(), r.URL.Query().Get("department_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.UpdatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdatePosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position updated successfully", result)
}

func (h *masterHandlerImpl) DeletePosition(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeletePosition(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position deleted successfully", nil)
}
