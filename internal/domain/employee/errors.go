package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInvalidEmployeeType = errors.New("employee type must be PERMANENT, CONTRACT, DAILY or FIXED_TERM")
	ErrInvalidStatus       = errors.New("status must be WORKING, SUSPENDED, RESIGNED or TERMINATED")
	ErrEmployeeInUse       = errors.New("employee has payroll lines and cannot be deleted")
	ErrInvalidReference    = errors.New("department or position does not exist")
	ErrPositionDepartment  = errors.New("position does not belong to the department")
)
