package overtime

import "errors"

var (
	ErrOvertimeNotFound = errors.New("overtime entry not found")
	ErrNegativeHours    = errors.New("overtime hours cannot be negative")
	ErrTooManyHours     = errors.New("overtime hours cannot exceed 24 per day")
	ErrDayOutsideMonth  = errors.New("day is outside the jalali month")
)
