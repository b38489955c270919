package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepository{db: db}
}

// Upsert implements overtime.OvertimeRepository.
func (r *overtimeRepository) Upsert(ctx context.Context, entry overtime.Entry) (overtime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_entries (id, employee_id, date, hours, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET
			hours = EXCLUDED.hours,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, employee_id, date, hours, note, created_at, updated_at
	`

	var result overtime.Entry
	err := q.QueryRow(ctx, query, newID(), entry.EmployeeID, entry.Date, entry.Hours, entry.Note).Scan(
		&result.ID, &result.EmployeeID, &result.Date, &result.Hours, &result.Note, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return overtime.Entry{}, fmt.Errorf("failed to upsert overtime entry: %w", err)
	}

	return result, nil
}

// DeleteByEmployeeDate implements overtime.OvertimeRepository.
func (r *overtimeRepository) DeleteByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM overtime_entries WHERE employee_id = $1 AND date = $2`, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to delete overtime entry: %w", err)
	}

	return commandTag.RowsAffected() > 0, nil
}

// ListByRange implements overtime.OvertimeRepository.
func (r *overtimeRepository) ListByRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]overtime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"o.date BETWEEN $1 AND $2"}
	args := []any{from, to}
	if len(employeeIDs) > 0 {
		conditions = append(conditions, "o.employee_id = ANY($3::uuid[])")
		args = append(args, employeeIDs)
	}

	query := `
		SELECT o.id, o.employee_id, o.date, o.hours, o.note, o.created_at, o.updated_at,
			TRIM(e.first_name || ' ' || e.father_name)
		FROM overtime_entries o
		JOIN employees e ON e.id = o.employee_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.first_name ASC, e.father_name ASC, o.date ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime entries: %w", err)
	}
	defer rows.Close()

	var entries []overtime.Entry
	for rows.Next() {
		var o overtime.Entry
		if err := rows.Scan(&o.ID, &o.EmployeeID, &o.Date, &o.Hours, &o.Note, &o.CreatedAt, &o.UpdatedAt, &o.EmployeeName); err != nil {
			return nil, fmt.Errorf("failed to scan overtime entry: %w", err)
		}
		entries = append(entries, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

// SumHours implements overtime.OvertimeRepository.
func (r *overtimeRepository) SumHours(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(hours), 0)
		FROM overtime_entries
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum overtime hours: %w", err)
	}

	return total, nil
}
