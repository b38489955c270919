package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// ========== MONTH CONFIG ==========

type monthConfigRepository struct {
	db *database.DB
}

func NewMonthConfigRepository(db *database.DB) payroll.MonthConfigRepository {
	return &monthConfigRepository{db: db}
}

const monthConfigColumns = `
	id, jalali_year, jalali_month, daily_work_hours, overtime_rate, monthly_paid_leave_cap, created_at, updated_at
`

func scanMonthConfig(row pgx.Row) (payroll.MonthConfig, error) {
	var c payroll.MonthConfig
	err := row.Scan(
		&c.ID, &c.Year, &c.Month, &c.DailyWorkHours, &c.OvertimeRate, &c.MonthlyPaidLeaveCap,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// GetOrCreate implements payroll.MonthConfigRepository.
func (r *monthConfigRepository) GetOrCreate(ctx context.Context, year, month int) (payroll.MonthConfig, error) {
	q := GetQuerier(ctx, r.db)

	defaults := payroll.DefaultMonthConfig(year, month)

	// The no-op update makes RETURNING yield the stored row when it already exists.
	query := `
		INSERT INTO month_configs (
			id, jalali_year, jalali_month, daily_work_hours, overtime_rate, monthly_paid_leave_cap, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (jalali_year, jalali_month) DO UPDATE SET jalali_year = EXCLUDED.jalali_year
		RETURNING ` + monthConfigColumns

	c, err := scanMonthConfig(q.QueryRow(ctx, query,
		newID(), year, month, defaults.DailyWorkHours, defaults.OvertimeRate, defaults.MonthlyPaidLeaveCap,
	))
	if err != nil {
		return payroll.MonthConfig{}, fmt.Errorf("failed to get month config: %w", err)
	}

	return c, nil
}

// Upsert implements payroll.MonthConfigRepository.
func (r *monthConfigRepository) Upsert(ctx context.Context, cfg payroll.MonthConfig) (payroll.MonthConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO month_configs (
			id, jalali_year, jalali_month, daily_work_hours, overtime_rate, monthly_paid_leave_cap, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (jalali_year, jalali_month) DO UPDATE SET
			daily_work_hours = EXCLUDED.daily_work_hours,
			overtime_rate = EXCLUDED.overtime_rate,
			monthly_paid_leave_cap = EXCLUDED.monthly_paid_leave_cap,
			updated_at = NOW()
		RETURNING ` + monthConfigColumns

	c, err := scanMonthConfig(q.QueryRow(ctx, query,
		newID(), cfg.Year, cfg.Month, cfg.DailyWorkHours, cfg.OvertimeRate, cfg.MonthlyPaidLeaveCap,
	))
	if err != nil {
		return payroll.MonthConfig{}, fmt.Errorf("failed to upsert month config: %w", err)
	}

	return c, nil
}

// ========== RUNS ==========

type payrollRunRepository struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.RunRepository {
	return &payrollRunRepository{db: db}
}

const runColumns = `id, jalali_year, jalali_month, status, calculated_at, finalized_at, created_at, updated_at`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	err := row.Scan(
		&run.ID, &run.Year, &run.Month, &run.Status, &run.CalculatedAt, &run.FinalizedAt,
		&run.CreatedAt, &run.UpdatedAt,
	)
	return run, err
}

func (r *payrollRunRepository) getOne(ctx context.Context, query string, args ...any) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	run, err := scanRun(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

// Create implements payroll.RunRepository.
func (r *payrollRunRepository) Create(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (id, jalali_year, jalali_month, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query, newID(), run.Year, run.Month, payroll.RunStatusDraft))
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Run{}, payroll.ErrRunAlreadyExists
		}
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

// GetByID implements payroll.RunRepository.
func (r *payrollRunRepository) GetByID(ctx context.Context, id string) (payroll.Run, error) {
	return r.getOne(ctx, `SELECT `+runColumns+` FROM payroll_runs WHERE id = $1`, id)
}

// GetByIDForUpdate implements payroll.RunRepository.
func (r *payrollRunRepository) GetByIDForUpdate(ctx context.Context, id string) (payroll.Run, error) {
	return r.getOne(ctx, `SELECT `+runColumns+` FROM payroll_runs WHERE id = $1 FOR UPDATE`, id)
}

// GetByPeriod implements payroll.RunRepository.
func (r *payrollRunRepository) GetByPeriod(ctx context.Context, year, month int) (payroll.Run, error) {
	return r.getOne(ctx, `SELECT `+runColumns+` FROM payroll_runs WHERE jalali_year = $1 AND jalali_month = $2`, year, month)
}

// List implements payroll.RunRepository.
func (r *payrollRunRepository) List(ctx context.Context, filter payroll.RunFilter) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("jalali_year = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
	}

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY jalali_year DESC, jalali_month DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return runs, nil
}

// MarkCalculated implements payroll.RunRepository.
func (r *payrollRunRepository) MarkCalculated(ctx context.Context, id string, at time.Time) error {
	return r.exec(ctx, `UPDATE payroll_runs SET calculated_at = $1, updated_at = NOW() WHERE id = $2`, at, id)
}

// MarkFinal implements payroll.RunRepository.
func (r *payrollRunRepository) MarkFinal(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE payroll_runs
		SET status = $1, finalized_at = $2, updated_at = NOW()
		WHERE id = $3
	`
	return r.exec(ctx, query, payroll.RunStatusFinal, at, id)
}

// Delete implements payroll.RunRepository. Lines and coverage rows cascade.
func (r *payrollRunRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM payroll_runs WHERE id = $1`, id)
}

func (r *payrollRunRepository) exec(ctx context.Context, query string, args ...any) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to write payroll run: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

// ========== LINES ==========

type payrollLineRepository struct {
	db *database.DB
}

func NewPayrollLineRepository(db *database.DB) payroll.LineRepository {
	return &payrollLineRepository{db: db}
}

// CreateBatch implements payroll.LineRepository.
func (r *payrollLineRepository) CreateBatch(ctx context.Context, lines []payroll.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_lines (
			id, run_id, employee_id, base_salary, attendance_deduction, salary, bonus_amount,
			overtime_amount, total, tax_amount, prepaid_amount, amount_to_pay,
			absent_days, auto_paid_leave_days, unpaid_absent_days, overtime_hours, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
	`

	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			newID(), l.RunID, l.EmployeeID, l.BaseSalary, l.AttendanceDeduction, l.Salary, l.BonusAmount,
			l.OvertimeAmount, l.Total, l.TaxAmount, l.PrepaidAmount, l.AmountToPay,
			l.AbsentDays, l.AutoPaidLeaveDays, l.UnpaidAbsentDays, l.OvertimeHours,
		)
	}

	results := q.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to create payroll line: %w", err)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to create payroll lines: %w", err)
	}

	return nil
}

// DeleteByRun implements payroll.LineRepository.
func (r *payrollLineRepository) DeleteByRun(ctx context.Context, runID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM payroll_lines WHERE run_id = $1`, runID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payroll lines: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

// ListByRun implements payroll.LineRepository.
func (r *payrollLineRepository) ListByRun(ctx context.Context, runID string) ([]payroll.Line, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			l.id, l.run_id, l.employee_id, l.base_salary, l.attendance_deduction, l.salary, l.bonus_amount,
			l.overtime_amount, l.total, l.tax_amount, l.prepaid_amount, l.amount_to_pay,
			l.absent_days, l.auto_paid_leave_days, l.unpaid_absent_days, l.overtime_hours, l.created_at,
			TRIM(e.first_name || ' ' || e.father_name) AS employee_name
		FROM payroll_lines l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.run_id = $1
		ORDER BY e.first_name ASC, e.father_name ASC
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.Line
	for rows.Next() {
		var l payroll.Line
		err := rows.Scan(
			&l.ID, &l.RunID, &l.EmployeeID, &l.BaseSalary, &l.AttendanceDeduction, &l.Salary, &l.BonusAmount,
			&l.OvertimeAmount, &l.Total, &l.TaxAmount, &l.PrepaidAmount, &l.AmountToPay,
			&l.AbsentDays, &l.AutoPaidLeaveDays, &l.UnpaidAbsentDays, &l.OvertimeHours, &l.CreatedAt,
			&l.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll line: %w", err)
		}
		lines = append(lines, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return lines, nil
}

// ========== LEAVE COVERAGE ==========

type leaveCoverageRepository struct {
	db *database.DB
}

func NewLeaveCoverageRepository(db *database.DB) payroll.CoverageRepository {
	return &leaveCoverageRepository{db: db}
}

// Create implements payroll.CoverageRepository.
func (r *leaveCoverageRepository) Create(ctx context.Context, c payroll.LeaveCoverage) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_leave_coverages (id, run_id, employee_id, leave_type_id, jalali_year, days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	if _, err := q.Exec(ctx, query, newID(), c.RunID, c.EmployeeID, c.LeaveTypeID, c.Year, c.Days); err != nil {
		return fmt.Errorf("failed to record leave coverage: %w", err)
	}

	return nil
}

// ListByRun implements payroll.CoverageRepository.
func (r *leaveCoverageRepository) ListByRun(ctx context.Context, runID string) ([]payroll.LeaveCoverage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, run_id, employee_id, leave_type_id, jalali_year, days, created_at
		FROM payroll_leave_coverages
		WHERE run_id = $1
		ORDER BY employee_id ASC, leave_type_id ASC
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave coverages: %w", err)
	}
	defer rows.Close()

	var coverages []payroll.LeaveCoverage
	for rows.Next() {
		var c payroll.LeaveCoverage
		if err := rows.Scan(&c.ID, &c.RunID, &c.EmployeeID, &c.LeaveTypeID, &c.Year, &c.Days, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave coverage: %w", err)
		}
		coverages = append(coverages, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return coverages, nil
}

// DeleteByRun implements payroll.CoverageRepository.
func (r *leaveCoverageRepository) DeleteByRun(ctx context.Context, runID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM payroll_leave_coverages WHERE run_id = $1`, runID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leave coverages: %w", err)
	}

	return commandTag.RowsAffected(), nil
}
