package leave

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== LEAVE TYPE DTOs ==========

type CreateLeaveTypeRequest struct {
	Name             string `json:"name"`
	YearlyLimitDays  int    `json:"yearly_limit_days"`
	IsPaid           bool   `json:"is_paid"`
	AutoCoverAbsence bool   `json:"auto_cover_absence"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if !validator.MaxLen(r.Name, 100) {
		errs.Add("name", "name must not exceed 100 characters")
	}
	if r.YearlyLimitDays < 0 {
		errs.Add("yearly_limit_days", ErrNegativeYearlyLimit.Error())
	}

	return errs.OrNil()
}

type UpdateLeaveTypeRequest struct {
	ID               string  `json:"-"`
	Name             *string `json:"name,omitempty"`
	YearlyLimitDays  *int    `json:"yearly_limit_days,omitempty"`
	IsPaid           *bool   `json:"is_paid,omitempty"`
	AutoCoverAbsence *bool   `json:"auto_cover_absence,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name cannot be empty")
		} else if !validator.MaxLen(*r.Name, 100) {
			errs.Add("name", "name must not exceed 100 characters")
		}
	}
	if r.YearlyLimitDays != nil && *r.YearlyLimitDays < 0 {
		errs.Add("yearly_limit_days", ErrNegativeYearlyLimit.Error())
	}

	return errs.OrNil()
}

type LeaveTypeResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	YearlyLimitDays  int    `json:"yearly_limit_days"`
	IsPaid           bool   `json:"is_paid"`
	AutoCoverAbsence bool   `json:"auto_cover_absence"`
}

// ========== BALANCE DTOs ==========

type BalanceFilter struct {
	EmployeeID  *string
	LeaveTypeID *string
	Year        *int
}

type BalanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Year          int             `json:"year"`
	LeaveTypeID   string          `json:"leave_type_id"`
	LeaveTypeName *string         `json:"leave_type_name,omitempty"`
	RemainingDays decimal.Decimal `json:"remaining_days"`
}

// ========== ENTRY DTOs ==========

type CreateEntryRequest struct {
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	DateFrom    string          `json:"date_from"`
	DaysCount   decimal.Decimal `json:"days_count"`
	Note        string          `json:"note"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs.Add("leave_type_id", "leave_type_id is required")
	}
	if _, ok := validator.IsValidDate(r.DateFrom); !ok {
		errs.Add("date_from", "date_from must be in YYYY-MM-DD format")
	}
	if !ValidDaysCount(r.DaysCount) {
		errs.Add("days_count", ErrInvalidDaysCount.Error())
	}
	if !validator.MaxLen(r.Note, 255) {
		errs.Add("note", "note must not exceed 255 characters")
	}

	return errs.OrNil()
}

// ValidDaysCount reports days >= 1 with at most 2 decimals.
func ValidDaysCount(days decimal.Decimal) bool {
	return !days.LessThan(decimal.NewFromInt(1)) && money.HasAtMostPlaces(days, money.Places)
}

type EntryFilter struct {
	EmployeeID  *string
	LeaveTypeID *string
	Year        *int
	Month       *int
}

type EntryResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   *string         `json:"employee_name,omitempty"`
	LeaveTypeID    string          `json:"leave_type_id"`
	LeaveTypeName  *string         `json:"leave_type_name,omitempty"`
	DateFrom       string          `json:"date_from"`
	DateTo         string          `json:"date_to"`
	DateFromJalali string          `json:"date_from_jalali"`
	DateToJalali   string          `json:"date_to_jalali"`
	DaysCount      decimal.Decimal `json:"days_count"`
	ExcessDays     decimal.Decimal `json:"excess_days"`
	Note           string          `json:"note,omitempty"`
}

type ApplicationPreview struct {
	DateTo           string          `json:"date_to"`
	BalanceYear      int             `json:"balance_year"`
	CurrentRemaining decimal.Decimal `json:"current_remaining"`
	Taken            decimal.Decimal `json:"taken"`
	ExcessDays       decimal.Decimal `json:"excess_days"`
	NewRemaining     decimal.Decimal `json:"new_remaining"`
	LeaveDates       []string        `json:"leave_dates"`
}

type ReversalPreview struct {
	EntryID    string   `json:"entry_id"`
	LeaveDates []string `json:"leave_dates"`
	Retained   []string `json:"retained"`
}
