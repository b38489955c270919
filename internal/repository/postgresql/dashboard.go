package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountWorkingEmployees returns the payable headcount
func (r *dashboardRepositoryImpl) CountWorkingEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE status = 'WORKING'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count working employees: %w", err)
	}
	return count, nil
}

// GetAttendanceStats returns exception counts per status in single query
func (r *dashboardRepositoryImpl) GetAttendanceStats(ctx context.Context, from, to time.Time) (dashboard.AttendanceStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'ABSENT' THEN 1 ELSE 0 END), 0) AS absent,
			COALESCE(SUM(CASE WHEN status = 'SHIFT_OFF' THEN 1 ELSE 0 END), 0) AS shift_off,
			COALESCE(SUM(CASE WHEN status = 'HOLIDAY' THEN 1 ELSE 0 END), 0) AS holiday,
			COALESCE(SUM(CASE WHEN status = 'LEAVE' THEN 1 ELSE 0 END), 0) AS leave
		FROM attendance_exceptions
		WHERE date BETWEEN $1 AND $2
	`

	var stats dashboard.AttendanceStats
	if err := q.QueryRow(ctx, query, from, to).Scan(&stats.Absent, &stats.ShiftOff, &stats.Holiday, &stats.Leave); err != nil {
		return dashboard.AttendanceStats{}, fmt.Errorf("failed to get attendance stats: %w", err)
	}
	return stats, nil
}

// SumOvertimeHours returns total overtime hours in a date range
func (r *dashboardRepositoryImpl) SumOvertimeHours(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var total decimal.Decimal
	err := q.QueryRow(ctx, `SELECT COALESCE(SUM(hours), 0) FROM overtime_entries WHERE date BETWEEN $1 AND $2`, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum overtime hours: %w", err)
	}
	return total, nil
}

// GetAdjustmentTotals returns bonus and prepaid sums of a period in single query
func (r *dashboardRepositoryImpl) GetAdjustmentTotals(ctx context.Context, year, month int) (dashboard.AdjustmentTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM bonus_entries WHERE jalali_year = $1 AND jalali_month = $2),
			(SELECT COALESCE(SUM(amount), 0) FROM prepaid_entries WHERE jalali_year = $1 AND jalali_month = $2)
	`

	var totals dashboard.AdjustmentTotals
	if err := q.QueryRow(ctx, query, year, month).Scan(&totals.Bonus, &totals.Prepaid); err != nil {
		return dashboard.AdjustmentTotals{}, fmt.Errorf("failed to get adjustment totals: %w", err)
	}
	return totals, nil
}

// GetRunSummary returns the period's run with its line sums, nil when no run exists
func (r *dashboardRepositoryImpl) GetRunSummary(ctx context.Context, year, month int) (*dashboard.RunSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			r.id, r.status, r.calculated_at,
			COUNT(l.id),
			COALESCE(SUM(l.auto_paid_leave_days), 0),
			COALESCE(SUM(l.base_salary), 0),
			COALESCE(SUM(l.attendance_deduction), 0),
			COALESCE(SUM(l.salary), 0),
			COALESCE(SUM(l.bonus_amount), 0),
			COALESCE(SUM(l.overtime_amount), 0),
			COALESCE(SUM(l.total), 0),
			COALESCE(SUM(l.tax_amount), 0),
			COALESCE(SUM(l.prepaid_amount), 0),
			COALESCE(SUM(l.amount_to_pay), 0)
		FROM payroll_runs r
		LEFT JOIN payroll_lines l ON l.run_id = r.id
		WHERE r.jalali_year = $1 AND r.jalali_month = $2
		GROUP BY r.id, r.status, r.calculated_at
	`

	var s dashboard.RunSummary
	err := q.QueryRow(ctx, query, year, month).Scan(
		&s.RunID, &s.Status, &s.CalculatedAt,
		&s.LinesCount,
		&s.AutoPaidLeaveDays,
		&s.Totals.BaseSalary,
		&s.Totals.AttendanceDeduction,
		&s.Totals.Salary,
		&s.Totals.BonusAmount,
		&s.Totals.OvertimeAmount,
		&s.Totals.Total,
		&s.Totals.TaxAmount,
		&s.Totals.PrepaidAmount,
		&s.Totals.AmountToPay,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run summary: %w", err)
	}
	return &s, nil
}
