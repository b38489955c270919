package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const balanceColumns = `
	b.id, b.employee_id, b.jalali_year, b.leave_type_id, b.remaining_days, b.created_at, b.updated_at
`

func scanBalance(row pgx.Row, dest ...any) (leave.YearBalance, error) {
	var b leave.YearBalance
	targets := append([]any{&b.ID, &b.EmployeeID, &b.Year, &b.LeaveTypeID, &b.RemainingDays, &b.CreatedAt, &b.UpdatedAt}, dest...)
	err := row.Scan(targets...)
	return b, err
}

// GetOrCreateForUpdate implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetOrCreateForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int, initialDays decimal.Decimal) (leave.YearBalance, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO leave_year_balances (id, employee_id, jalali_year, leave_type_id, remaining_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (employee_id, jalali_year, leave_type_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, newID(), employeeID, year, leaveTypeID, initialDays); err != nil {
		if isConcurrencyConflict(err) {
			return leave.YearBalance{}, leave.ErrBalanceConflict
		}
		return leave.YearBalance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_year_balances b
		WHERE b.employee_id = $1 AND b.jalali_year = $2 AND b.leave_type_id = $3
		FOR UPDATE
	`

	balance, err := scanBalance(q.QueryRow(ctx, query, employeeID, year, leaveTypeID))
	if err != nil {
		if isConcurrencyConflict(err) {
			return leave.YearBalance{}, leave.ErrBalanceConflict
		}
		return leave.YearBalance{}, fmt.Errorf("failed to lock leave balance: %w", err)
	}

	return balance, nil
}

// GetByKey implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.YearBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_year_balances b
		WHERE b.employee_id = $1 AND b.jalali_year = $2 AND b.leave_type_id = $3
	`

	balance, err := scanBalance(q.QueryRow(ctx, query, employeeID, year, leaveTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.YearBalance{}, leave.ErrBalanceNotFound
		}
		return leave.YearBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

// UpdateRemaining implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) UpdateRemaining(ctx context.Context, id string, remaining decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_year_balances
		SET remaining_days = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, remaining, id)
	if err != nil {
		if isConcurrencyConflict(err) {
			return leave.ErrBalanceConflict
		}
		return fmt.Errorf("failed to update leave balance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}

// List implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) List(ctx context.Context, filter leave.BalanceFilter) ([]leave.YearBalance, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("b.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.LeaveTypeID != nil && *filter.LeaveTypeID != "" {
		conditions = append(conditions, fmt.Sprintf("b.leave_type_id = $%d", argIdx))
		args = append(args, *filter.LeaveTypeID)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("b.jalali_year = $%d", argIdx))
		args = append(args, *filter.Year)
	}

	query := `
		SELECT ` + balanceColumns + `, lt.name
		FROM leave_year_balances b
		JOIN leave_types lt ON lt.id = b.leave_type_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY b.jalali_year DESC, lt.name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.YearBalance
	for rows.Next() {
		var name string
		b, err := scanBalance(rows, &name)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		b.LeaveTypeName = &name
		balances = append(balances, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return balances, nil
}
