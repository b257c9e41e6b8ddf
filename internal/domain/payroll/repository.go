package payroll

import (
	"context"
	"time"
)

// Repository defines data access methods for payroll records. Records are
// only ever inserted and status-advanced, never deleted.
type Repository interface {
	// Create inserts a new record (status pending). The unique
	// (employee, period_start, period_end) constraint backs idempotency;
	// a duplicate insert returns ErrAlreadyGenerated.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id string) (Record, error)

	// ExistsForPeriod reports whether a record already covers this
	// (employee, period) triple.
	ExistsForPeriod(ctx context.Context, employeeEmail string, periodStart, periodEnd time.Time) (bool, error)

	// List retrieves records with filters and pagination, newest period first
	List(ctx context.Context, filter Filter) ([]Record, int64, error)

	// AdvanceStatus moves a record from fromStatus to toStatus, guarded on
	// the row still holding fromStatus. Returns ErrInvalidTransition when the
	// guard fails. paidDate and actor are written alongside when non-nil.
	AdvanceStatus(ctx context.Context, id string, fromStatus, toStatus Status, actor string, paidDate *time.Time) (Record, error)
}
