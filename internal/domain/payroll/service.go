package payroll

import "context"

type PayrollService interface {
	// Runs
	CreateRun(ctx context.Context, req CreateRunRequest) (*RunResponse, error)
	GetRun(ctx context.Context, id string) (*RunResponse, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]RunResponse, error)
	DeleteRun(ctx context.Context, id string) error

	// CalculateRun replaces every line of the run in one transaction.
	CalculateRun(ctx context.Context, id string) (*CalculateResult, error)
	FinalizeRun(ctx context.Context, id string) (*FinalizeResponse, error)
	ListLines(ctx context.Context, runID string) (*LinesResponse, error)

	// Exports
	ExportRunXLSX(ctx context.Context, runID string) ([]byte, string, error)
	ExportRunPDF(ctx context.Context, runID string) ([]byte, string, error)

	// Month configuration
	GetMonthConfig(ctx context.Context, year, month int) (*MonthConfigResponse, error)
	UpdateMonthConfig(ctx context.Context, req UpdateMonthConfigRequest) (*MonthConfigResponse, error)
}

type AdjustmentService interface {
	CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) (*AdjustmentResponse, error)
	GetAdjustment(ctx context.Context, kind AdjustmentKind, id string) (*AdjustmentResponse, error)
	ListAdjustments(ctx context.Context, kind AdjustmentKind, filter AdjustmentFilter) ([]AdjustmentResponse, error)
	UpdateAdjustment(ctx context.Context, req UpdateAdjustmentRequest) (*AdjustmentResponse, error)
	DeleteAdjustment(ctx context.Context, kind AdjustmentKind, id string) error
}
