package overtime

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var maxDailyHours = decimal.NewFromInt(24)

// SetOvertimeRequest writes one day. Zero or missing hours delete the entry.
type SetOvertimeRequest struct {
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	Hours      *decimal.Decimal `json:"hours"`
	Note       string           `json:"note"`
}

func (r *SetOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if err := validateHours(r.Hours); err != nil {
		errs.Add("hours", err.Error())
	}
	if !validator.MaxLen(r.Note, 255) {
		errs.Add("note", "note must not exceed 255 characters")
	}

	return errs.OrNil()
}

func validateHours(h *decimal.Decimal) error {
	if h == nil {
		return nil
	}
	if !validator.IsNonNegative(*h) {
		return ErrNegativeHours
	}
	if h.GreaterThan(maxDailyHours) {
		return ErrTooManyHours
	}
	return nil
}

type EntryFilter struct {
	Year       int
	Month      int
	EmployeeID string
}

func (f *EntryFilter) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidPeriod(f.Year, f.Month) {
		errs.Add("period", "year/month is not a valid jalali month")
	}
	return errs.OrNil()
}

type EntryResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Date         string          `json:"date"`
	JalaliDate   string          `json:"jalali_date"`
	Hours        decimal.Decimal `json:"hours"`
	Note         string          `json:"note,omitempty"`
}

// ========== GRID DTOs ==========

type GridQuery struct {
	Year         int
	Month        int
	DepartmentID string
}

func (q *GridQuery) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidPeriod(q.Year, q.Month) {
		errs.Add("period", "year/month is not a valid jalali month")
	}
	return errs.OrNil()
}

type GridRow struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeName string            `json:"employee_name"`
	Hours        []decimal.Decimal `json:"hours"` // one per day of the month
	TotalHours   decimal.Decimal   `json:"total_hours"`
}

type GridResponse struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	MonthName string    `json:"month_name"`
	DayCount  int       `json:"day_count"`
	Rows      []GridRow `json:"rows"`
}

type GridCell struct {
	EmployeeID string           `json:"employee_id"`
	Day        int              `json:"day"`
	Hours      *decimal.Decimal `json:"hours"`
}

type SaveGridRequest struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Cells []GridCell `json:"cells"`
}

func (r *SaveGridRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Year, r.Month) {
		errs.Add("period", "year/month is not a valid jalali month")
	}
	for _, c := range r.Cells {
		if validator.IsEmpty(c.EmployeeID) {
			errs.Add("cells", "every cell needs an employee_id")
			break
		}
		if err := validateHours(c.Hours); err != nil {
			errs.Add("cells", err.Error())
			break
		}
	}

	return errs.OrNil()
}

type SaveGridResponse struct {
	Written int `json:"written"`
	Deleted int `json:"deleted"`
}
