package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	FirstName    string
	FatherName   string
	DepartmentID string
	PositionID   string
	EmployeeType EmployeeType
	BaseSalary   decimal.Decimal
	Phone        string
	Address      string
	DateHired    time.Time
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	DepartmentName *string
	PositionName   *string
}

// FullName is the display name used on grids, lines and exports.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.FatherName)
}

type EmployeeType string

const (
	EmployeeTypePermanent EmployeeType = "PERMANENT"
	EmployeeTypeContract  EmployeeType = "CONTRACT"
	EmployeeTypeDaily     EmployeeType = "DAILY"
	EmployeeTypeFixedTerm EmployeeType = "FIXED_TERM"
)

func (t EmployeeType) IsValid() bool {
	switch t {
	case EmployeeTypePermanent, EmployeeTypeContract, EmployeeTypeDaily, EmployeeTypeFixedTerm:
		return true
	}
	return false
}

// Status of employment. Only WORKING employees are paid.
type Status string

const (
	StatusWorking    Status = "WORKING"
	StatusSuspended  Status = "SUSPENDED"
	StatusResigned   Status = "RESIGNED"
	StatusTerminated Status = "TERMINATED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusWorking, StatusSuspended, StatusResigned, StatusTerminated:
		return true
	}
	return false
}
