package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/position"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Calendar and period errors
	case errors.Is(err, payroll.ErrInvalidPeriod), errors.Is(err, jalali.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)

	// Organization errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department with this name already exists")
	case errors.Is(err, department.ErrDepartmentInUse):
		Conflict(w, err.Error())
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, position.ErrPositionNameExists):
		Conflict(w, "Position with this name already exists in the department")
	case errors.Is(err, position.ErrPositionInUse):
		Conflict(w, err.Error())
	case errors.Is(err, position.ErrDepartmentNotFound):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInUse):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrInvalidReference), errors.Is(err, employee.ErrPositionDepartment),
		errors.Is(err, employee.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Attendance and overtime errors
	case errors.Is(err, attendance.ErrExceptionNotFound):
		NotFound(w, "Attendance exception not found")
	case errors.Is(err, attendance.ErrWeeklyHoliday), errors.Is(err, attendance.ErrEmployeeNotInGrid),
		errors.Is(err, attendance.ErrDayOutsidePeriod), errors.Is(err, overtime.ErrDayOutsideMonth):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, overtime.ErrOvertimeNotFound):
		NotFound(w, "Overtime entry not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveEntryNotFound):
		NotFound(w, "Leave entry not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrLeaveTypeNameExists):
		Conflict(w, "Leave type name already exists")
	case errors.Is(err, leave.ErrLeaveTypeInUse):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrBalanceConflict):
		Conflict(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrAdjustmentNotFound):
		NotFound(w, "Adjustment not found")
	case errors.Is(err, payroll.ErrRunAlreadyExists), errors.Is(err, payroll.ErrRunFinalized),
		errors.Is(err, payroll.ErrRunNotCalculated), errors.Is(err, payroll.ErrPrepaidExists):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidAdjustment):
		BadRequest(w, err.Error(), nil)

	// Storage errors
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
