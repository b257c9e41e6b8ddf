package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the minimal profile this subsystem reads: identification for
// session ownership and the hourly rate snapshotted into payroll records.
type Employee struct {
	ID         string
	Email      string
	FullName   string
	HourlyRate *decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
