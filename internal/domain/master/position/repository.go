package position

import "context"

type PositionRepository interface {
	Create(ctx context.Context, position Position) (Position, error)
	GetByID(ctx context.Context, id string) (Position, error)
	// List returns positions ordered by department name then name. An empty departmentID lists all.
	List(ctx context.Context, departmentID string) ([]Position, error)
	Update(ctx context.Context, req UpdatePositionRequest) error
	Delete(ctx context.Context, id string) error
}
