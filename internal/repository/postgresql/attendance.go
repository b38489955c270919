package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const exceptionColumns = `a.id, a.employee_id, a.date, a.status, a.note, a.created_at, a.updated_at`

func scanException(row pgx.Row, withName bool) (attendance.Exception, error) {
	var ex attendance.Exception
	dest := []any{&ex.ID, &ex.EmployeeID, &ex.Date, &ex.Status, &ex.Note, &ex.CreatedAt, &ex.UpdatedAt}
	if withName {
		dest = append(dest, &ex.EmployeeName)
	}
	err := row.Scan(dest...)
	return ex, err
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, ex attendance.Exception) (attendance.Exception, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_exceptions AS a (id, employee_id, date, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING ` + exceptionColumns

	result, err := scanException(q.QueryRow(ctx, query, newID(), ex.EmployeeID, ex.Date, ex.Status, ex.Note), false)
	if err != nil {
		switch pgErrorCode(err) {
		case codeCheckViolation:
			return attendance.Exception{}, attendance.ErrWeeklyHoliday
		case codeForeignKeyViolation:
			return attendance.Exception{}, attendance.ErrEmployeeNotInGrid
		}
		return attendance.Exception{}, fmt.Errorf("failed to upsert attendance exception: %w", err)
	}

	return result, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Exception, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + exceptionColumns + ` FROM attendance_exceptions a WHERE a.id = $1`

	result, err := scanException(q.QueryRow(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Exception{}, attendance.ErrExceptionNotFound
		}
		return attendance.Exception{}, fmt.Errorf("failed to get attendance exception: %w", err)
	}

	return result, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_exceptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance exception: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrExceptionNotFound
	}

	return nil
}

// DeleteByEmployeeDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx,
		`DELETE FROM attendance_exceptions WHERE employee_id = $1 AND date = $2`,
		employeeID, date,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete attendance exception: %w", err)
	}

	return commandTag.RowsAffected() > 0, nil
}

// ListByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]attendance.Exception, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"a.date BETWEEN $1 AND $2"}
	args := []any{from, to}
	if len(employeeIDs) > 0 {
		conditions = append(conditions, "a.employee_id = ANY($3::uuid[])")
		args = append(args, employeeIDs)
	}

	query := `
		SELECT ` + exceptionColumns + `, TRIM(e.first_name || ' ' || e.father_name)
		FROM attendance_exceptions a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.first_name ASC, e.father_name ASC, a.date ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance exceptions: %w", err)
	}
	defer rows.Close()

	var exceptions []attendance.Exception
	for rows.Next() {
		ex, err := scanException(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance exception: %w", err)
		}
		exceptions = append(exceptions, ex)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return exceptions, nil
}

// CountByStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByStatus(ctx context.Context, employeeID string, from, to time.Time, status attendance.Status) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_exceptions
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND status = $4
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, from, to, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance exceptions: %w", err)
	}

	return count, nil
}

// DeleteLeaveDates implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteLeaveDates(ctx context.Context, employeeID string, dates []time.Time) (int64, error) {
	if len(dates) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		DELETE FROM attendance_exceptions
		WHERE employee_id = $1 AND status = $2 AND date = ANY($3::date[])
	`

	commandTag, err := q.Exec(ctx, query, employeeID, attendance.StatusLeave, dates)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leave attendance rows: %w", err)
	}

	return commandTag.RowsAffected(), nil
}
