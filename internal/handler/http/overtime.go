package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type OvertimeHandler interface {
	ListEntries(w http.ResponseWriter, r *http.Request)
	SetHours(w http.ResponseWriter, r *http.Request)

	GetGrid(w http.ResponseWriter, r *http.Request)
	SaveGrid(w http.ResponseWriter, r *http.Request)
	ExportGrid(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

func overtimeGridQuery(r *http.Request) overtime.GridQuery {
	return overtime.GridQuery{
		Year:         getIntQueryParam(r, "year", 0),
		Month:        getIntQueryParam(r, "month", 0),
		DepartmentID: r.URL.Query().Get("department_id"),
	}
}

// ListEntries handles GET /overtime?year=&month=&employee_id=
func (h *overtimeHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter := overtime.EntryFilter{
		Year:       getIntQueryParam(r, "year", 0),
		Month:      getIntQueryParam(r, "month", 0),
		EmployeeID: r.URL.Query().Get("employee_id"),
	}

	result, err := h.overtimeService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetHours handles PUT /overtime. Zero or missing hours delete the entry.
func (h *overtimeHandlerImpl) SetHours(w http.ResponseWriter, r *http.Request) {
	var req overtime.SetOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.overtimeService.SetHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result == nil {
		response.SuccessWithMessage(w, "Overtime entry removed", nil)
		return
	}
	response.SuccessWithMessage(w, "Overtime entry saved", result)
}

// GetGrid handles GET /overtime/grid?year=&month=&department_id=
func (h *overtimeHandlerImpl) GetGrid(w http.ResponseWriter, r *http.Request) {
	result, err := h.overtimeService.GetGrid(r.Context(), overtimeGridQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveGrid handles POST /overtime/grid
func (h *overtimeHandlerImpl) SaveGrid(w http.ResponseWriter, r *http.Request) {
	var req overtime.SaveGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.overtimeService.SaveGrid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime grid saved", result)
}

// ExportGrid handles GET /overtime/export?year=&month=&department_id=
func (h *overtimeHandlerImpl) ExportGrid(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.overtimeService.ExportGrid(r.Context(), overtimeGridQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, contentTypeXLSX, filename, data)
}
