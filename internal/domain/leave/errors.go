package leave

import "errors"

var (
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrLeaveTypeNameExists = errors.New("leave type name already exists")
	ErrLeaveTypeInUse      = errors.New("leave type is referenced by leave entries or balances")
	ErrLeaveEntryNotFound  = errors.New("leave entry not found")
	ErrBalanceNotFound     = errors.New("leave balance not found")
	ErrInvalidDaysCount    = errors.New("days count must be at least 1 with at most 2 decimals")
	ErrNegativeYearlyLimit = errors.New("yearly limit days cannot be negative")
	// ErrBalanceConflict means a concurrent writer holds or changed the balance. Retry the operation.
	ErrBalanceConflict = errors.New("leave balance was modified concurrently, retry the operation")
)
