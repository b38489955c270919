package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `id, name, yearly_limit_days, is_paid, auto_cover_absence, created_at, updated_at`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(&lt.ID, &lt.Name, &lt.YearlyLimitDays, &lt.IsPaid, &lt.AutoCoverAbsence, &lt.CreatedAt, &lt.UpdatedAt)
	return lt, err
}

func (l *leaveTypeRepositoryImpl) queryLeaveTypes(ctx context.Context, query string, args ...any) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var leaveTypes []leave.LeaveType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		leaveTypes = append(leaveTypes, lt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return leaveTypes, nil
}

// Create implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_types (id, name, yearly_limit_days, is_paid, auto_cover_absence, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + leaveTypeColumns

	created, err := scanLeaveType(q.QueryRow(ctx, query,
		newID(), leaveType.Name, leaveType.YearlyLimitDays, leaveType.IsPaid, leaveType.AutoCoverAbsence,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	lt, err := scanLeaveType(q.QueryRow(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	return lt, nil
}

// List implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) List(ctx context.Context) ([]leave.LeaveType, error) {
	return l.queryLeaveTypes(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types ORDER BY name ASC`)
}

// ListAutoCover implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) ListAutoCover(ctx context.Context) ([]leave.LeaveType, error) {
	query := `
		SELECT ` + leaveTypeColumns + `
		FROM leave_types
		WHERE is_paid AND auto_cover_absence
		ORDER BY name ASC, id ASC
	`
	return l.queryLeaveTypes(ctx, query)
}

// Update implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Update(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_types
		SET name = COALESCE($1, name),
			yearly_limit_days = COALESCE($2, yearly_limit_days),
			is_paid = COALESCE($3, is_paid),
			auto_cover_absence = COALESCE($4, auto_cover_absence),
			updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, req.Name, req.YearlyLimitDays, req.IsPaid, req.AutoCoverAbsence, req.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return leave.ErrLeaveTypeNameExists
		}
		return fmt.Errorf("failed to update leave type: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}

// Delete implements leave.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, l.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return leave.ErrLeaveTypeInUse
		}
		return fmt.Errorf("failed to delete leave type: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}
