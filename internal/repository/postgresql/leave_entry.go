package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type leaveEntryRepositoryImpl struct {
	db *database.DB
}

func NewLeaveEntryRepository(db *database.DB) leave.EntryRepository {
	return &leaveEntryRepositoryImpl{db: db}
}

const leaveEntrySelect = `
	SELECT
		le.id, le.employee_id, le.leave_type_id, le.date_from, le.date_to, le.days_count,
		le.excess_days, le.note, le.created_at, le.updated_at,
		TRIM(e.first_name || ' ' || e.father_name) AS employee_name,
		lt.name AS leave_type_name
	FROM leave_entries le
	JOIN employees e ON e.id = le.employee_id
	JOIN leave_types lt ON lt.id = le.leave_type_id
`

func scanLeaveEntry(row pgx.Row) (leave.Entry, error) {
	var le leave.Entry
	err := row.Scan(
		&le.ID, &le.EmployeeID, &le.LeaveTypeID, &le.DateFrom, &le.DateTo, &le.DaysCount,
		&le.ExcessDays, &le.Note, &le.CreatedAt, &le.UpdatedAt,
		&le.EmployeeName, &le.LeaveTypeName,
	)
	return le, err
}

func (r *leaveEntryRepositoryImpl) queryEntries(ctx context.Context, query string, args ...any) ([]leave.Entry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave entries: %w", err)
	}
	defer rows.Close()

	var entries []leave.Entry
	for rows.Next() {
		le, err := scanLeaveEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave entry: %w", err)
		}
		entries = append(entries, le)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

// Create implements leave.EntryRepository.
func (r *leaveEntryRepositoryImpl) Create(ctx context.Context, entry leave.Entry) (leave.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_entries (
			id, employee_id, leave_type_id, date_from, date_to, days_count, excess_days, note, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		newID(), entry.EmployeeID, entry.LeaveTypeID, entry.DateFrom, entry.DateTo,
		entry.DaysCount, entry.ExcessDays, entry.Note,
	).Scan(&id)
	if err != nil {
		return leave.Entry{}, fmt.Errorf("failed to create leave entry: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements leave.EntryRepository.
func (r *leaveEntryRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Entry, error) {
	q := GetQuerier(ctx, r.db)

	le, err := scanLeaveEntry(q.QueryRow(ctx, leaveEntrySelect+` WHERE le.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Entry{}, leave.ErrLeaveEntryNotFound
		}
		return leave.Entry{}, fmt.Errorf("failed to get leave entry: %w", err)
	}

	return le, nil
}

// Delete implements leave.EntryRepository.
func (r *leaveEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave entry: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveEntryNotFound
	}

	return nil
}

// List implements leave.EntryRepository. Year and Month select entries overlapping that Jalali period.
func (r *leaveEntryRepositoryImpl) List(ctx context.Context, filter leave.EntryFilter) ([]leave.Entry, error) {
	conditions := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("le.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.LeaveTypeID != nil && *filter.LeaveTypeID != "" {
		conditions = append(conditions, fmt.Sprintf("le.leave_type_id = $%d", argIdx))
		args = append(args, *filter.LeaveTypeID)
		argIdx++
	}
	if from, to, ok := entryFilterRange(filter); ok {
		conditions = append(conditions, fmt.Sprintf("le.date_from <= $%d AND le.date_to >= $%d", argIdx, argIdx+1))
		args = append(args, to, from)
	}

	query := leaveEntrySelect + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY le.date_from DESC, employee_name ASC"
	return r.queryEntries(ctx, query, args...)
}

// entryFilterRange resolves the Jalali year, or year and month, of the filter into a date range.
func entryFilterRange(filter leave.EntryFilter) (time.Time, time.Time, bool) {
	if filter.Year == nil {
		return time.Time{}, time.Time{}, false
	}
	if filter.Month != nil {
		p, err := jalali.ResolvePeriod(*filter.Year, *filter.Month)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		return p.Start, p.End, true
	}
	first, err := jalali.ResolvePeriod(*filter.Year, 1)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	last, err := jalali.ResolvePeriod(*filter.Year, 12)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return first.Start, last.End, true
}

// ListOverlapping implements leave.EntryRepository.
func (r *leaveEntryRepositoryImpl) ListOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Entry, error) {
	query := leaveEntrySelect + `
		WHERE le.employee_id = $1 AND le.date_from <= $2 AND le.date_to >= $3
		ORDER BY le.date_from ASC
	`
	return r.queryEntries(ctx, query, employeeID, to, from)
}

// SumDaysOverlapping implements leave.EntryRepository.
func (r *leaveEntryRepositoryImpl) SumDaysOverlapping(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(days_count), 0)
		FROM leave_entries
		WHERE employee_id = $1 AND leave_type_id = $2 AND date_from <= $3 AND date_to >= $4
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, leaveTypeID, to, from).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum leave days: %w", err)
	}

	return total, nil
}
