package attendance

import "context"

type AttendanceService interface {
	UpsertException(ctx context.Context, req UpsertExceptionRequest) (ExceptionResponse, error)
	DeleteException(ctx context.Context, id string) error
	ListExceptions(ctx context.Context, filter ExceptionFilter) ([]ExceptionResponse, error)

	// Monthly grid
	GetGrid(ctx context.Context, req GridQuery) (GridResponse, error)
	SaveGrid(ctx context.Context, req SaveGridRequest) (SaveGridResponse, error)
	ExportGrid(ctx context.Context, req GridQuery) ([]byte, string, error)
}
