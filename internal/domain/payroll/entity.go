package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkingDays is the fixed number of paid days a monthly base salary is divided by.
const WorkingDays = 26

// MonthConfig - per-period work parameters
type MonthConfig struct {
	ID                  string
	Year                int
	Month               int
	DailyWorkHours      decimal.Decimal
	OvertimeRate        decimal.Decimal
	MonthlyPaidLeaveCap int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultMonthConfig is the configuration used when a period has none stored.
func DefaultMonthConfig(year, month int) MonthConfig {
	return MonthConfig{
		Year:                year,
		Month:               month,
		DailyWorkHours:      decimal.NewFromInt(8),
		OvertimeRate:        decimal.NewFromInt(1),
		MonthlyPaidLeaveCap: 5,
	}
}

// RunStatus enum
type RunStatus string

const (
	RunStatusDraft RunStatus = "DRAFT"
	RunStatusFinal RunStatus = "FINAL"
)

// Run - one payroll computation for a Jalali month
type Run struct {
	ID           string
	Year         int
	Month        int
	Status       RunStatus
	CalculatedAt *time.Time
	FinalizedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Line - computed pay breakdown of one employee in a run
type Line struct {
	ID                  string
	RunID               string
	EmployeeID          string
	BaseSalary          decimal.Decimal
	AttendanceDeduction decimal.Decimal
	Salary              decimal.Decimal
	BonusAmount         decimal.Decimal
	OvertimeAmount      decimal.Decimal
	Total               decimal.Decimal
	TaxAmount           decimal.Decimal
	PrepaidAmount       decimal.Decimal
	AmountToPay         decimal.Decimal

	// Audit inputs
	AbsentDays        decimal.Decimal
	AutoPaidLeaveDays decimal.Decimal
	UnpaidAbsentDays  decimal.Decimal
	OvertimeHours     decimal.Decimal

	CreatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// AdjustmentKind enum
type AdjustmentKind string

const (
	AdjustmentBonus   AdjustmentKind = "bonus"
	AdjustmentPrepaid AdjustmentKind = "prepaid"
)

// Adjustment - bonus or prepaid amount for an employee and period
type Adjustment struct {
	ID         string
	Kind       AdjustmentKind
	EmployeeID string
	Year       int
	Month      int
	Amount     decimal.Decimal
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

// LeaveCoverage records the balance days a run consumed to cover absences.
type LeaveCoverage struct {
	ID          string
	RunID       string
	EmployeeID  string
	LeaveTypeID string
	Year        int
	Days        decimal.Decimal
	CreatedAt   time.Time
}

// Totals is the column-wise sum of a run's lines.
type Totals struct {
	BaseSalary          decimal.Decimal `json:"base_salary"`
	AttendanceDeduction decimal.Decimal `json:"attendance_deduction"`
	Salary              decimal.Decimal `json:"salary"`
	BonusAmount         decimal.Decimal `json:"bonus_amount"`
	OvertimeAmount      decimal.Decimal `json:"overtime_amount"`
	Total               decimal.Decimal `json:"total"`
	TaxAmount           decimal.Decimal `json:"tax_amount"`
	PrepaidAmount       decimal.Decimal `json:"prepaid_amount"`
	AmountToPay         decimal.Decimal `json:"amount_to_pay"`
}

// Add accumulates one line into the totals.
func (t *Totals) Add(l Line) {
	t.BaseSalary = t.BaseSalary.Add(l.BaseSalary)
	t.AttendanceDeduction = t.AttendanceDeduction.Add(l.AttendanceDeduction)
	t.Salary = t.Salary.Add(l.Salary)
	t.BonusAmount = t.BonusAmount.Add(l.BonusAmount)
	t.OvertimeAmount = t.OvertimeAmount.Add(l.OvertimeAmount)
	t.Total = t.Total.Add(l.Total)
	t.TaxAmount = t.TaxAmount.Add(l.TaxAmount)
	t.PrepaidAmount = t.PrepaidAmount.Add(l.PrepaidAmount)
	t.AmountToPay = t.AmountToPay.Add(l.AmountToPay)
}

// TotalsOf sums lines.
func TotalsOf(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		t.Add(l)
	}
	return t
}
