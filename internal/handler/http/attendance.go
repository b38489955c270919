package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ListExceptions(w http.ResponseWriter, r *http.Request)
	UpsertException(w http.ResponseWriter, r *http.Request)
	DeleteException(w http.ResponseWriter, r *http.Request)

	GetGrid(w http.ResponseWriter, r *http.Request)
	SaveGrid(w http.ResponseWriter, r *http.Request)
	ExportGrid(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func gridQuery(r *http.Request) attendance.GridQuery {
	return attendance.GridQuery{
		Year:         getIntQueryParam(r, "year", 0),
		Month:        getIntQueryParam(r, "month", 0),
		DepartmentID: r.URL.Query().Get("department_id"),
	}
}

// ListExceptions handles GET /attendance?year=&month=&employee_id=&department_id=
func (h *attendanceHandlerImpl) ListExceptions(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ExceptionFilter{
		Year:         getIntQueryParam(r, "year", 0),
		Month:        getIntQueryParam(r, "month", 0),
		EmployeeID:   r.URL.Query().Get("employee_id"),
		DepartmentID: r.URL.Query().Get("department_id"),
	}

	result, err := h.attendanceService.ListExceptions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpsertException handles PUT /attendance
func (h *attendanceHandlerImpl) UpsertException(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpsertExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.UpsertException(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance exception saved", result)
}

// DeleteException handles DELETE /attendance/{id}
func (h *attendanceHandlerImpl) DeleteException(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.DeleteException(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance exception deleted", nil)
}

// GetGrid handles GET /attendance/grid?year=&month=&department_id=
func (h *attendanceHandlerImpl) GetGrid(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetGrid(r.Context(), gridQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveGrid handles POST /attendance/grid
func (h *attendanceHandlerImpl) SaveGrid(w http.ResponseWriter, r *http.Request) {
	var req attendance.SaveGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.SaveGrid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance grid saved", result)
}

// ExportGrid handles GET /attendance/export?year=&month=&department_id=
func (h *attendanceHandlerImpl) ExportGrid(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.attendanceService.ExportGrid(r.Context(), gridQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, contentTypeXLSX, filename, data)
}
