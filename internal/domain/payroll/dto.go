package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/money"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const periodMessage = "year/month is not a valid jalali month"

// ========== RUN DTOs ==========

type CreateRunRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidPeriod(r.Year, r.Month) {
		errs.Add("period", periodMessage)
	}
	return errs.OrNil()
}

type RunFilter struct {
	Year   *int
	Status *RunStatus
}

type PeriodResponse struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Label     string `json:"label"`
	MonthName string `json:"month_name"`
	Start     string `json:"start"`
	End       string `json:"end"`
	DayCount  int    `json:"day_count"`
}

type RunResponse struct {
	ID           string     `json:"id"`
	Year         int        `json:"year"`
	Month        int        `json:"month"`
	Label        string     `json:"label"`
	MonthName    string     `json:"month_name"`
	Status       RunStatus  `json:"status"`
	CalculatedAt *time.Time `json:"calculated_at,omitempty"`
	FinalizedAt  *time.Time `json:"finalized_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CalculateResult is reported once per calculated run.
type CalculateResult struct {
	RunID      string         `json:"run_id"`
	Period     PeriodResponse `json:"period"`
	LinesCount int            `json:"lines_count"`
	Totals     Totals         `json:"totals"`
	Warnings   []string       `json:"warnings"`
}

type LineResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        string          `json:"employee_name"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	AttendanceDeduction decimal.Decimal `json:"attendance_deduction"`
	Salary              decimal.Decimal `json:"salary"`
	BonusAmount         decimal.Decimal `json:"bonus_amount"`
	OvertimeAmount      decimal.Decimal `json:"overtime_amount"`
	Total               decimal.Decimal `json:"total"`
	TaxAmount           decimal.Decimal `json:"tax_amount"`
	PrepaidAmount       decimal.Decimal `json:"prepaid_amount"`
	AmountToPay         decimal.Decimal `json:"amount_to_pay"`
	AbsentDays          decimal.Decimal `json:"absent_days"`
	AutoPaidLeaveDays   decimal.Decimal `json:"auto_paid_leave_days"`
	UnpaidAbsentDays    decimal.Decimal `json:"unpaid_absent_days"`
	OvertimeHours       decimal.Decimal `json:"overtime_hours"`
}

type LinesResponse struct {
	Run    RunResponse    `json:"run"`
	Lines  []LineResponse `json:"lines"`
	Totals Totals         `json:"totals"`
}

type ArchivedFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

type FinalizeResponse struct {
	Run   RunResponse    `json:"run"`
	Files []ArchivedFile `json:"files"`
}

// ========== MONTH CONFIG DTOs ==========

type MonthConfigResponse struct {
	Year                int             `json:"year"`
	Month               int             `json:"month"`
	DailyWorkHours      decimal.Decimal `json:"daily_work_hours"`
	OvertimeRate        decimal.Decimal `json:"overtime_rate"`
	MonthlyPaidLeaveCap int             `json:"monthly_paid_leave_cap"`
}

type UpdateMonthConfigRequest struct {
	Year                int              `json:"-"`
	Month               int              `json:"-"`
	DailyWorkHours      *decimal.Decimal `json:"daily_work_hours,omitempty"`
	OvertimeRate        *decimal.Decimal `json:"overtime_rate,omitempty"`
	MonthlyPaidLeaveCap *int             `json:"monthly_paid_leave_cap,omitempty"`
}

func (r *UpdateMonthConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Year, r.Month) {
		errs.Add("period", periodMessage)
	}
	if r.DailyWorkHours != nil && !r.DailyWorkHours.IsPositive() {
		errs.Add("daily_work_hours", ErrInvalidDailyHours.Error())
	}
	if r.OvertimeRate != nil && !validator.IsNonNegative(*r.OvertimeRate) {
		errs.Add("overtime_rate", ErrNegativeOvertimeRate.Error())
	}
	if r.MonthlyPaidLeaveCap != nil && *r.MonthlyPaidLeaveCap < 0 {
		errs.Add("monthly_paid_leave_cap", ErrNegativeLeaveCap.Error())
	}

	return errs.OrNil()
}

// ========== ADJUSTMENT DTOs ==========

type CreateAdjustmentRequest struct {
	Kind       AdjustmentKind  `json:"-"`
	EmployeeID string          `json:"employee_id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

func (r *CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Kind != AdjustmentBonus && r.Kind != AdjustmentPrepaid {
		errs.Add("kind", ErrInvalidAdjustment.Error())
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if !validator.IsValidPeriod(r.Year, r.Month) {
		errs.Add("period", periodMessage)
	}
	if !money.HasAtMostPlaces(r.Amount, money.Places) {
		errs.Add("amount", "amount must have at most 2 decimal places")
	}
	if !validator.MaxLen(r.Note, 255) {
		errs.Add("note", "note must not exceed 255 characters")
	}

	return errs.OrNil()
}

type UpdateAdjustmentRequest struct {
	ID     string           `json:"-"`
	Kind   AdjustmentKind   `json:"-"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Note   *string          `json:"note,omitempty"`
}

func (r *UpdateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Amount != nil && !money.HasAtMostPlaces(*r.Amount, money.Places) {
		errs.Add("amount", "amount must have at most 2 decimal places")
	}
	if r.Note != nil && !validator.MaxLen(*r.Note, 255) {
		errs.Add("note", "note must not exceed 255 characters")
	}

	return errs.OrNil()
}

type AdjustmentFilter struct {
	EmployeeID *string
	Year       *int
	Month      *int
}

type AdjustmentResponse struct {
	ID           string          `json:"id"`
	Kind         AdjustmentKind  `json:"kind"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
}
