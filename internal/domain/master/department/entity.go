package department

import "time"

type Department struct {
	ID        string
	Name      string
	HasHead   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
