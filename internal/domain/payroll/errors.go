package payroll

import "errors"

var (
	// ErrInvalidPeriod wraps calendar rejections of a year/month.
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrRunNotFound          = errors.New("payroll run not found")
	ErrRunAlreadyExists     = errors.New("payroll run already exists for this period")
	ErrRunFinalized         = errors.New("payroll run is final and cannot be modified")
	ErrRunNotCalculated     = errors.New("payroll run has not been calculated")
	ErrAdjustmentNotFound   = errors.New("adjustment not found")
	ErrPrepaidExists        = errors.New("a prepaid with this note already exists for the employee and period")
	ErrInvalidAdjustment    = errors.New("invalid adjustment kind")
	ErrInvalidDailyHours    = errors.New("daily work hours must be greater than zero")
	ErrNegativeOvertimeRate = errors.New("overtime rate cannot be negative")
	ErrNegativeLeaveCap     = errors.New("monthly paid leave cap cannot be negative")
	ErrEmployeeNotFound     = errors.New("employee not found")
)
