package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType is a leave category. At most one paid type is expected to auto-cover absences.
type LeaveType struct {
	ID               string
	Name             string
	YearlyLimitDays  int
	IsPaid           bool
	AutoCoverAbsence bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CoversAbsence reports whether the payroll reconciler may consume this type for absences.
func (t LeaveType) CoversAbsence() bool {
	return t.IsPaid && t.AutoCoverAbsence
}

// YearBalance is the remaining days of one leave type for an employee in a Jalali year.
// RemainingDays never goes below zero.
type YearBalance struct {
	ID            string
	EmployeeID    string
	Year          int
	LeaveTypeID   string
	RemainingDays decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	LeaveTypeName *string
}

// Entry is a leave taken from DateFrom to DateTo inclusive.
type Entry struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	DateFrom    time.Time
	DateTo      time.Time
	DaysCount   decimal.Decimal
	ExcessDays  decimal.Decimal
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName  *string
	LeaveTypeName *string
}

// Overlaps reports whether the entry intersects [from, to], both inclusive.
func (e Entry) Overlaps(from, to time.Time) bool {
	return !e.DateFrom.After(to) && !e.DateTo.Before(from)
}

// Application is the planned effect of saving an entry, computed before anything is written.
type Application struct {
	DateTo       time.Time
	BalanceYear  int
	Taken        decimal.Decimal
	ExcessDays   decimal.Decimal
	NewRemaining decimal.Decimal
	// LeaveDates are the non-Friday dates that receive a LEAVE attendance row.
	LeaveDates []time.Time
	Note       string
}

// Reversal is the planned effect of deleting an entry.
type Reversal struct {
	// LeaveDates are the LEAVE rows to remove. Dates still covered by another entry are kept.
	LeaveDates []time.Time
	// Retained are the dates skipped because another entry still covers them.
	Retained []time.Time
}
