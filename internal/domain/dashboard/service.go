package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetPeriodDashboard loads the independent aggregates of a period concurrently
	GetPeriodDashboard(ctx context.Context, year, month int) (*PeriodDashboardResponse, error)
}
