package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/position"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

const positionColumns = `
	p.id, p.department_id, p.name, p.created_at, p.updated_at, d.name
`

func scanPosition(row pgx.Row) (position.Position, error) {
	var p position.Position
	err := row.Scan(
		&p.ID,
		&p.DepartmentID,
		&p.Name,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DepartmentName,
	)
	return p, err
}

// Create implements position.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO positions (id, department_id, name, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING id, department_id, name, created_at, updated_at
		)
		SELECT ` + positionColumns + `
		FROM inserted p
		JOIN departments d ON d.id = p.department_id
	`

	result, err := scanPosition(q.QueryRow(ctx, query, newID(), p.DepartmentID, p.Name))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return position.Position{}, position.ErrPositionNameExists
		case isForeignKeyViolation(err):
			return position.Position{}, position.ErrDepartmentNotFound
		}
		return position.Position{}, fmt.Errorf("failed to create position: %w", err)
	}

	return result, nil
}

// GetByID implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + positionColumns + `
		FROM positions p
		JOIN departments d ON d.id = p.department_id
		WHERE p.id = $1
	`

	result, err := scanPosition(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	return result, nil
}

// List implements position.PositionRepository.
func (r *positionRepositoryImpl) List(ctx context.Context, departmentID string) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + positionColumns + `
		FROM positions p
		JOIN departments d ON d.id = p.department_id
		WHERE ($1 = '' OR p.department_id::text = $1)
		ORDER BY d.name ASC, p.name ASC
	`

	rows, err := q.Query(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return positions, nil
}

// Update implements position.PositionRepository.
func (r *positionRepositoryImpl) Update(ctx context.Context, req position.UpdatePositionRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions
		SET department_id = COALESCE($1::uuid, department_id),
			name = COALESCE($2, name),
			updated_at = NOW()
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, req.DepartmentID, req.Name, req.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return position.ErrPositionNameExists
		case isForeignKeyViolation(err):
			return position.ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to update position: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}

// Delete implements position.PositionRepository.
func (r *positionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return position.ErrPositionInUse
		}
		return fmt.Errorf("failed to delete position: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}
