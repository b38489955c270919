package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest) error
	Delete(ctx context.Context, id string) error
	// ListAutoCover returns paid auto-cover types ordered by name.
	ListAutoCover(ctx context.Context) ([]LeaveType, error)
}

type BalanceRepository interface {
	// GetOrCreateForUpdate locks the balance row, creating it with initialDays when absent.
	// Must run inside a transaction.
	GetOrCreateForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int, initialDays decimal.Decimal) (YearBalance, error)
	GetByKey(ctx context.Context, employeeID, leaveTypeID string, year int) (YearBalance, error)
	UpdateRemaining(ctx context.Context, id string, remaining decimal.Decimal) error
	List(ctx context.Context, filter BalanceFilter) ([]YearBalance, error)
}

type EntryRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, id string) (Entry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EntryFilter) ([]Entry, error)
	// ListOverlapping returns the employee's entries intersecting [from, to].
	ListOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]Entry, error)
	// SumDaysOverlapping sums days_count of one type's entries intersecting [from, to].
	SumDaysOverlapping(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) (decimal.Decimal, error)
}
