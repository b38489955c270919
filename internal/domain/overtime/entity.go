package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the overtime hours worked by an employee on one date.
type Entry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Hours      decimal.Decimal
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}
