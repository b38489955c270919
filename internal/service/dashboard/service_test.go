package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
)

type stubRepo struct {
	run       *dashboard.RunSummary
	statsErr  error
	lastRange [2]time.Time
}

func (s *stubRepo) CountWorkingEmployees(context.Context) (int64, error) { return 7, nil }

func (s *stubRepo) GetAttendanceStats(_ context.Context, from, to time.Time) (dashboard.AttendanceStats, error) {
	s.lastRange = [2]time.Time{from, to}
	return dashboard.AttendanceStats{Absent: 3, Leave: 2}, s.statsErr
}

func (s *stubRepo) SumOvertimeHours(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.RequireFromString("12.5"), nil
}

func (s *stubRepo) GetAdjustmentTotals(context.Context, int, int) (dashboard.AdjustmentTotals, error) {
	return dashboard.AdjustmentTotals{Bonus: decimal.NewFromInt(500), Prepaid: decimal.NewFromInt(100)}, nil
}

func (s *stubRepo) GetRunSummary(context.Context, int, int) (*dashboard.RunSummary, error) {
	return s.run, nil
}

func TestGetPeriodDashboard(t *testing.T) {
	now := time.Now()
	repo := &stubRepo{run: &dashboard.RunSummary{RunID: "run-1", Status: payroll.RunStatusDraft, CalculatedAt: &now, LinesCount: 7}}
	svc := NewDashboardService(repo)

	resp, err := svc.GetPeriodDashboard(context.Background(), 1403, 1)
	require.NoError(t, err)

	assert.Equal(t, "1403-01", resp.Period.Label)
	assert.Equal(t, "2024-03-20", resp.Period.Start)
	assert.Equal(t, int64(7), resp.WorkingEmployees)
	assert.Equal(t, int64(3), resp.Attendance.AbsentDays)
	assert.True(t, resp.OvertimeHours.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, resp.BonusTotal.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, resp.Run)
	assert.True(t, resp.Run.Calculated)
	assert.Equal(t, time.Date(2024, time.April, 19, 0, 0, 0, 0, time.UTC), repo.lastRange[1])
}

func TestGetPeriodDashboard_NoRunAndErrors(t *testing.T) {
	svc := NewDashboardService(&stubRepo{})
	resp, err := svc.GetPeriodDashboard(context.Background(), 1403, 2)
	require.NoError(t, err)
	assert.Nil(t, resp.Run)

	_, err = svc.GetPeriodDashboard(context.Background(), 1403, 13)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	boom := errors.New("boom")
	_, err = NewDashboardService(&stubRepo{statsErr: boom}).GetPeriodDashboard(context.Background(), 1403, 1)
	assert.ErrorIs(t, err, boom)
}
