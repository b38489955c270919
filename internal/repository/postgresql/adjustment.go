package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// adjustmentRepository serves bonus_entries and prepaid_entries, which share one shape.
type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) payroll.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

func adjustmentTable(kind payroll.AdjustmentKind) (string, error) {
	switch kind {
	case payroll.AdjustmentBonus:
		return "bonus_entries", nil
	case payroll.AdjustmentPrepaid:
		return "prepaid_entries", nil
	}
	return "", payroll.ErrInvalidAdjustment
}

func scanAdjustment(row pgx.Row, kind payroll.AdjustmentKind, withName bool) (payroll.Adjustment, error) {
	a := payroll.Adjustment{Kind: kind}
	dest := []any{&a.ID, &a.EmployeeID, &a.Year, &a.Month, &a.Amount, &a.Note, &a.CreatedAt, &a.UpdatedAt}
	if withName {
		dest = append(dest, &a.EmployeeName)
	}
	err := row.Scan(dest...)
	return a, err
}

const adjustmentColumns = `a.id, a.employee_id, a.jalali_year, a.jalali_month, a.amount, a.note, a.created_at, a.updated_at`

// Create implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) Create(ctx context.Context, adj payroll.Adjustment) (payroll.Adjustment, error) {
	table, err := adjustmentTable(adj.Kind)
	if err != nil {
		return payroll.Adjustment{}, err
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO ` + table + ` AS a (id, employee_id, jalali_year, jalali_month, amount, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + adjustmentColumns

	created, err := scanAdjustment(q.QueryRow(ctx, query,
		newID(), adj.EmployeeID, adj.Year, adj.Month, adj.Amount, adj.Note,
	), adj.Kind, false)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return payroll.Adjustment{}, payroll.ErrPrepaidExists
		case isForeignKeyViolation(err):
			return payroll.Adjustment{}, payroll.ErrEmployeeNotFound
		}
		return payroll.Adjustment{}, fmt.Errorf("failed to create %s: %w", adj.Kind, err)
	}

	return created, nil
}

// GetByID implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) GetByID(ctx context.Context, kind payroll.AdjustmentKind, id string) (payroll.Adjustment, error) {
	table, err := adjustmentTable(kind)
	if err != nil {
		return payroll.Adjustment{}, err
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + adjustmentColumns + `, TRIM(e.first_name || ' ' || e.father_name)
		FROM ` + table + ` a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	adj, err := scanAdjustment(q.QueryRow(ctx, query, id), kind, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Adjustment{}, payroll.ErrAdjustmentNotFound
		}
		return payroll.Adjustment{}, fmt.Errorf("failed to get %s: %w", kind, err)
	}

	return adj, nil
}

// Update implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) Update(ctx context.Context, req payroll.UpdateAdjustmentRequest) error {
	table, err := adjustmentTable(req.Kind)
	if err != nil {
		return err
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE ` + table + `
		SET amount = COALESCE($1, amount),
			note = COALESCE($2, note),
			updated_at = NOW()
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, req.Amount, req.Note, req.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.ErrPrepaidExists
		}
		return fmt.Errorf("failed to update %s: %w", req.Kind, err)
	}

	if commandTag.RowsAffected() == 0 {
		return payroll.ErrAdjustmentNotFound
	}

	return nil
}

// Delete implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) Delete(ctx context.Context, kind payroll.AdjustmentKind, id string) error {
	table, err := adjustmentTable(kind)
	if err != nil {
		return err
	}

	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	if commandTag.RowsAffected() == 0 {
		return payroll.ErrAdjustmentNotFound
	}

	return nil
}

// List implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) List(ctx context.Context, kind payroll.AdjustmentKind, filter payroll.AdjustmentFilter) ([]payroll.Adjustment, error) {
	table, err := adjustmentTable(kind)
	if err != nil {
		return nil, err
	}

	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("a.jalali_year = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("a.jalali_month = $%d", argIdx))
		args = append(args, *filter.Month)
	}

	query := `
		SELECT ` + adjustmentColumns + `, TRIM(e.first_name || ' ' || e.father_name)
		FROM ` + table + ` a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY a.jalali_year DESC, a.jalali_month DESC, e.first_name ASC, e.father_name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s entries: %w", kind, err)
	}
	defer rows.Close()

	var adjustments []payroll.Adjustment
	for rows.Next() {
		adj, err := scanAdjustment(rows, kind, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		adjustments = append(adjustments, adj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return adjustments, nil
}

// SumByEmployee implements payroll.AdjustmentRepository.
func (r *adjustmentRepository) SumByEmployee(ctx context.Context, kind payroll.AdjustmentKind, employeeID string, year, month int) (decimal.Decimal, error) {
	table, err := adjustmentTable(kind)
	if err != nil {
		return decimal.Zero, err
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ` + table + `
		WHERE employee_id = $1 AND jalali_year = $2 AND jalali_month = $3
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, year, month).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s for employee: %w", kind, err)
	}

	return total, nil
}
