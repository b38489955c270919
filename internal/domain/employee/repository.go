package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	// ListWorking returns WORKING employees ordered by first name then father name.
	// An empty departmentID means every department.
	ListWorking(ctx context.Context, departmentID string) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	Delete(ctx context.Context, id string) error
}
