package shift

import (
	"context"
	"time"
)

// Repository defines data access methods for shift sessions.
type Repository interface {
	// Create inserts a new session (status CLOCKED_IN)
	Create(ctx context.Context, session Session) (Session, error)

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id string) (Session, error)

	// GetActiveByEmployee returns the employee's open session, if any.
	// Used to enforce the one-open-session-per-employee invariant.
	GetActiveByEmployee(ctx context.Context, employeeEmail string) (*Session, error)

	// ListRecentByEmployee returns the employee's sessions ordered by
	// clock_in_time descending, up to limit rows.
	ListRecentByEmployee(ctx context.Context, employeeEmail string, limit int) ([]Session, int64, error)

	// ListOnBreak returns every session currently in ON_BREAK status.
	// Consumed by the break timeout monitor.
	ListOnBreak(ctx context.Context) ([]Session, error)

	// ListClosedInPeriod returns CLOCKED_OUT sessions for the employee whose
	// clock_out_time falls within [periodStart, periodEnd] inclusive.
	ListClosedInPeriod(ctx context.Context, employeeEmail string, periodStart, periodEnd time.Time) ([]Session, error)

	// UpdateTransition applies the session's new field values, guarded on the
	// row still holding fromStatus. Returns ErrConflict when the guard fails,
	// which means a concurrent transition won the race.
	UpdateTransition(ctx context.Context, session Session, fromStatus Status) error
}
