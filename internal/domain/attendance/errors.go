package attendance

import "errors"

var (
	ErrExceptionNotFound = errors.New("attendance exception not found")
	ErrWeeklyHoliday     = errors.New("fridays are weekly holidays and cannot carry attendance exceptions")
	ErrInvalidStatus     = errors.New("status must be ABSENT, SHIFT_OFF, HOLIDAY or LEAVE")
	ErrEmployeeNotInGrid = errors.New("employee is not a working employee of the selected department")
	ErrDayOutsidePeriod  = errors.New("day is outside the jalali month")
)
