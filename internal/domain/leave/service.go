package leave

import "context"

type LeaveService interface {
	// Leave types
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (*LeaveTypeResponse, error)
	GetLeaveType(ctx context.Context, id string) (*LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	UpdateLeaveType(ctx context.Context, req UpdateLeaveTypeRequest) (*LeaveTypeResponse, error)
	DeleteLeaveType(ctx context.Context, id string) error

	// Balances
	ListBalances(ctx context.Context, filter BalanceFilter) ([]BalanceResponse, error)

	// Entries
	PreviewEntry(ctx context.Context, req CreateEntryRequest) (*ApplicationPreview, error)
	CreateEntry(ctx context.Context, req CreateEntryRequest) (*EntryResponse, error)
	ListEntries(ctx context.Context, filter EntryFilter) ([]EntryResponse, error)
	PreviewRevert(ctx context.Context, id string) (*ReversalPreview, error)
	DeleteEntry(ctx context.Context, id string) (*ReversalPreview, error)
}
