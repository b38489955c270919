package attendance

import (
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type UpsertExceptionRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // Gregorian YYYY-MM-DD
	Status     string `json:"status"`
	Note       string `json:"note"`
}

func (r *UpsertExceptionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if !Status(r.Status).IsValid() {
		errs.Add("status", ErrInvalidStatus.Error())
	}
	if !validator.MaxLen(r.Note, 255) {
		errs.Add("note", "note must not exceed 255 characters")
	}

	return errs.OrNil()
}

type ExceptionFilter struct {
	Year         int
	Month        int
	EmployeeID   string
	DepartmentID string
}

func (f *ExceptionFilter) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidPeriod(f.Year, f.Month) {
		errs.Add("period", "year/month is not a valid jalali month")
	}
	return errs.OrNil()
}

type ExceptionResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	JalaliDate   string  `json:"jalali_date"`
	Status       string  `json:"status"`
	Note         string  `json:"note,omitempty"`
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

type GridDay struct {
	Day             int    `json:"day"`
	Date            string `json:"date"`
	Weekday         string `json:"weekday"`
	WeekdayDari     string `json:"weekday_dari"`
	IsWeeklyHoliday bool   `json:"is_weekly_holiday"`
}

type GridRow struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Cells        []string `json:"cells"` // one per day; "" means present, Fridays are always ""
}

type GridResponse struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	MonthName string    `json:"month_name"`
	Days      []GridDay `json:"days"`
	Rows      []GridRow `json:"rows"`
}

type GridCell struct {
	EmployeeID string `json:"employee_id"`
	Day        int    `json:"day"`
	Status     string `json:"status"` // blank means present
}

type SaveGridRequest struct {
	Year         int        `json:"year"`
	Month        int        `json:"month"`
	DepartmentID string     `json:"department_id,omitempty"`
	Cells        []GridCell `json:"cells"`
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
		status := strings.TrimSpace(c.Status)
		if status != "" && !Status(status).IsValid() {
			errs.Add("cells", ErrInvalidStatus.Error())
			break
		}
	}

	return errs.OrNil()
}

type SaveGridResponse struct {
	Written        int `json:"written"`
	Deleted        int `json:"deleted"`
	SkippedFridays int `json:"skipped_fridays"`
}
