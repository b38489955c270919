package attendance

import "time"

// Status of a stored attendance exception. A date with no exception is PRESENT.
type Status string

const (
	StatusAbsent   Status = "ABSENT"
	StatusShiftOff Status = "SHIFT_OFF"
	StatusHoliday  Status = "HOLIDAY"
	StatusLeave    Status = "LEAVE"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAbsent, StatusShiftOff, StatusHoliday, StatusLeave:
		return true
	}
	return false
}

// Exception is one (employee, date) deviation from PRESENT. Fridays never carry one.
type Exception struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}
