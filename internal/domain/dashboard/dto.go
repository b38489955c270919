package dashboard

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// PeriodDashboardResponse is the combined response for one Jalali month
type PeriodDashboardResponse struct {
	Period           payroll.PeriodResponse `json:"period"`
	WorkingEmployees int64                  `json:"working_employees"`
	Attendance       AttendanceSummary      `json:"attendance"`
	OvertimeHours    decimal.Decimal        `json:"overtime_hours"`
	BonusTotal       decimal.Decimal        `json:"bonus_total"`
	PrepaidTotal     decimal.Decimal        `json:"prepaid_total"`
	Run              *RunSummaryResponse    `json:"run"` // null when no run exists for the period
}

type AttendanceSummary struct {
	AbsentDays   int64 `json:"absent_days"`
	ShiftOffDays int64 `json:"shift_off_days"`
	HolidayDays  int64 `json:"holiday_days"`
	LeaveDays    int64 `json:"leave_days"`
}

type RunSummaryResponse struct {
	ID                string            `json:"id"`
	Status            payroll.RunStatus `json:"status"`
	Calculated        bool              `json:"calculated"`
	LinesCount        int64             `json:"lines_count"`
	AutoPaidLeaveDays decimal.Decimal   `json:"auto_paid_leave_days"`
	Totals            payroll.Totals    `json:"totals"`
}
