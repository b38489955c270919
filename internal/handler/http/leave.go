package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	// Leave types
	CreateType(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	// Balances
	ListBalances(w http.ResponseWriter, r *http.Request)

	// Entries
	PreviewEntry(w http.ResponseWriter, r *http.Request)
	CreateEntry(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
	PreviewRevert(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveType, err := l.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", leaveType)
}

// GetType implements LeaveHandler.
func (l *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	leaveType, err := l.leaveService.GetLeaveType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveType)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	leaveTypes, err := l.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveTypes)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	leaveType, err := l.leaveService.UpdateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", leaveType)
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	if err := l.leaveService.DeleteLeaveType(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// ListBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	filter := leave.BalanceFilter{
		EmployeeID:  getOptionalStringQueryParam(r, "employee_id"),
		LeaveTypeID: getOptionalStringQueryParam(r, "leave_type_id"),
		Year:        getOptionalIntQueryParam(r, "year"),
	}

	balances, err := l.leaveService.ListBalances(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// PreviewEntry implements LeaveHandler. Nothing is written.
func (l *LeaveHandlerImpl) PreviewEntry(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	preview, err := l.leaveService.PreviewEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, preview)
}

// CreateEntry implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := l.leaveService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave entry created successfully", entry)
}

// ListEntries implements LeaveHandler.
func (l *LeaveHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter := leave.EntryFilter{
		EmployeeID:  getOptionalStringQueryParam(r, "employee_id"),
		LeaveTypeID: getOptionalStringQueryParam(r, "leave_type_id"),
		Year:        getOptionalIntQueryParam(r, "year"),
		Month:       getOptionalIntQueryParam(r, "month"),
	}

	entries, err := l.leaveService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// PreviewRevert implements LeaveHandler.
func (l *LeaveHandlerImpl) PreviewRevert(w http.ResponseWriter, r *http.Request) {
	preview, err := l.leaveService.PreviewRevert(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, preview)
}

// DeleteEntry implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	reversal, err := l.leaveService.DeleteEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave entry deleted successfully", reversal)
}
