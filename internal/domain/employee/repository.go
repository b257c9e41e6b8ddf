package employee

import "context"

// Repository defines read access to employee profiles. Profile management
// lives in the surrounding portal; this subsystem only looks employees up.
type Repository interface {
	// GetByEmail retrieves an employee by email
	GetByEmail(ctx context.Context, email string) (Employee, error)
}
