package overtime

import "context"

type OvertimeService interface {
	SetHours(ctx context.Context, req SetOvertimeRequest) (*EntryResponse, error)
	ListEntries(ctx context.Context, filter EntryFilter) ([]EntryResponse, error)

	GetGrid(ctx context.Context, req GridQuery) (GridResponse, error)
	SaveGrid(ctx context.Context, req SaveGridRequest) (SaveGridResponse, error)
	ExportGrid(ctx context.Context, req GridQuery) ([]byte, string, error)
}
