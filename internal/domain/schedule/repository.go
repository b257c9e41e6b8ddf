package schedule

import "context"

// Repository defines read-only access to the planned shift roster.
type Repository interface {
	// ListByEmployee returns the employee's roster entries matching any of
	// the given statuses, ordered by date descending. An empty result is not
	// an error.
	ListByEmployee(ctx context.Context, employeeEmail string, statuses []ShiftStatus) ([]ScheduledShift, error)
}
