package overtime

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OvertimeRepository interface {
	Upsert(ctx context.Context, entry Entry) (Entry, error)
	DeleteByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	ListByRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Entry, error)
	SumHours(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)
}
