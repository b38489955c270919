package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, name, has_head, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, has_head, created_at, updated_at
	`

	var result department.Department
	err := q.QueryRow(ctx, query, newID(), d.Name, d.HasHead).Scan(
		&result.ID,
		&result.Name,
		&result.HasHead,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return result, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, has_head, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var result department.Department
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.HasHead,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	return result, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, has_head, created_at, updated_at
		FROM departments
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.HasHead, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return departments, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = COALESCE($1, name),
			has_head = COALESCE($2, has_head),
			updated_at = NOW()
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, req.Name, req.HasHead, req.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return department.ErrDepartmentNameExists
		}
		return fmt.Errorf("failed to update department: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return department.ErrDepartmentInUse
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}
