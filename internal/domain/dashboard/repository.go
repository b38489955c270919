package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// AttendanceStats counts stored exceptions by status in a date range
type AttendanceStats struct {
	Absent   int64
	ShiftOff int64
	Holiday  int64
	Leave    int64
}

// AdjustmentTotals sums bonuses and prepaids of a period
type AdjustmentTotals struct {
	Bonus   decimal.Decimal
	Prepaid decimal.Decimal
}

// RunSummary is the run of a period with its aggregated lines
type RunSummary struct {
	RunID             string
	Status            payroll.RunStatus
	CalculatedAt      *time.Time
	LinesCount        int64
	AutoPaidLeaveDays decimal.Decimal
	Totals            payroll.Totals
}

type DashboardRepository interface {
	CountWorkingEmployees(ctx context.Context) (int64, error)
	GetAttendanceStats(ctx context.Context, from, to time.Time) (AttendanceStats, error)
	SumOvertimeHours(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	GetAdjustmentTotals(ctx context.Context, year, month int) (AdjustmentTotals, error)
	// GetRunSummary returns nil when the period has no run.
	GetRunSummary(ctx context.Context, year, month int) (*RunSummary, error)
}
