package position

import "time"

type Position struct {
	ID           string
	DepartmentID string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	DepartmentName string
}
