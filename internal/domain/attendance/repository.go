package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Upsert writes the exception for (employee, date), replacing any existing one.
	Upsert(ctx context.Context, exception Exception) (Exception, error)
	GetByID(ctx context.Context, id string) (Exception, error)
	Delete(ctx context.Context, id string) error
	DeleteByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	// ListByRange returns exceptions in [from, to]. An empty employeeIDs means all employees.
	ListByRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Exception, error)
	CountByStatus(ctx context.Context, employeeID string, from, to time.Time, status Status) (int, error)
	// DeleteLeaveDates removes LEAVE rows of employee on the given dates only.
	DeleteLeaveDates(ctx context.Context, employeeID string, dates []time.Time) (int64, error)
}
