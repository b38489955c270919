package dashboard

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
	}
}

// GetPeriodDashboard returns the combined dashboard of a Jalali month using parallel goroutines.
// Each goroutine runs one query.
func (s *DashboardServiceImpl) GetPeriodDashboard(ctx context.Context, year, month int) (*dashboard.PeriodDashboardResponse, error) {
	period, err := jalali.ResolvePeriod(year, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", payroll.ErrInvalidPeriod, err)
	}

	var (
		working     int64
		attendance  dashboard.AttendanceStats
		overtime    decimal.Decimal
		adjustments dashboard.AdjustmentTotals
		run         *dashboard.RunSummary
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Working headcount
	g.Go(func() error {
		n, err := s.CountWorkingEmployees(gCtx)
		if err != nil {
			return err
		}
		working = n
		return nil
	})

	// 2. Attendance exceptions by status
	g.Go(func() error {
		stats, err := s.GetAttendanceStats(gCtx, period.Start, period.End)
		if err != nil {
			return err
		}
		attendance = stats
		return nil
	})

	// 3. Overtime hours
	g.Go(func() error {
		hours, err := s.SumOvertimeHours(gCtx, period.Start, period.End)
		if err != nil {
			return err
		}
		overtime = hours
		return nil
	})

	// 4. Bonus and prepaid totals
	g.Go(func() error {
		totals, err := s.GetAdjustmentTotals(gCtx, period.Year, period.Month)
		if err != nil {
			return err
		}
		adjustments = totals
		return nil
	})

	// 5. Run with line totals
	g.Go(func() error {
		summary, err := s.GetRunSummary(gCtx, period.Year, period.Month)
		if err != nil {
			return err
		}
		run = summary
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	response := &dashboard.PeriodDashboardResponse{
		Period: payroll.PeriodResponse{
			Year:      period.Year,
			Month:     period.Month,
			Label:     period.Label(),
			MonthName: jalali.MonthName(period.Month),
			Start:     period.Start.Format("2006-01-02"),
			End:       period.End.Format("2006-01-02"),
			DayCount:  period.DayCount,
		},
		WorkingEmployees: working,
		Attendance: dashboard.AttendanceSummary{
			AbsentDays:   attendance.Absent,
			ShiftOffDays: attendance.ShiftOff,
			HolidayDays:  attendance.Holiday,
			LeaveDays:    attendance.Leave,
		},
		OvertimeHours: overtime,
		BonusTotal:    adjustments.Bonus,
		PrepaidTotal:  adjustments.Prepaid,
	}

	if run != nil {
		response.Run = &dashboard.RunSummaryResponse{
			ID:                run.RunID,
			Status:            run.Status,
			Calculated:        run.CalculatedAt != nil,
			LinesCount:        run.LinesCount,
			AutoPaidLeaveDays: run.AutoPaidLeaveDays,
			Totals:            run.Totals,
		}
	}

	return response, nil
}
