package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type MonthConfigRepository interface {
	// GetOrCreate returns the stored config, inserting DefaultMonthConfig when none exists.
	GetOrCreate(ctx context.Context, year, month int) (MonthConfig, error)
	Upsert(ctx context.Context, cfg MonthConfig) (MonthConfig, error)
}

type RunRepository interface {
	Create(ctx context.Context, run Run) (Run, error)
	GetByID(ctx context.Context, id string) (Run, error)
	// GetByIDForUpdate locks the run row for the remainder of the transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Run, error)
	GetByPeriod(ctx context.Context, year, month int) (Run, error)
	List(ctx context.Context, filter RunFilter) ([]Run, error)
	MarkCalculated(ctx context.Context, id string, at time.Time) error
	MarkFinal(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type LineRepository interface {
	CreateBatch(ctx context.Context, lines []Line) error
	DeleteByRun(ctx context.Context, runID string) (int64, error)
	// ListByRun returns lines ordered by employee name.
	ListByRun(ctx context.Context, runID string) ([]Line, error)
}

type CoverageRepository interface {
	Create(ctx context.Context, coverage LeaveCoverage) error
	ListByRun(ctx context.Context, runID string) ([]LeaveCoverage, error)
	DeleteByRun(ctx context.Context, runID string) (int64, error)
}

type AdjustmentRepository interface {
	Create(ctx context.Context, adj Adjustment) (Adjustment, error)
	GetByID(ctx context.Context, kind AdjustmentKind, id string) (Adjustment, error)
	Update(ctx context.Context, req UpdateAdjustmentRequest) error
	Delete(ctx context.Context, kind AdjustmentKind, id string) error
	List(ctx context.Context, kind AdjustmentKind, filter AdjustmentFilter) ([]Adjustment, error)
	SumByEmployee(ctx context.Context, kind AdjustmentKind, employeeID string, year, month int) (decimal.Decimal, error)
}
