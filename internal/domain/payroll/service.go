package payroll

import (
	"context"
)

// Service defines business logic for payroll generation and lifecycle.
// All operations are administrator-scoped.
type Service interface {
	// Generate aggregates the employee's closed sessions over the period
	// into a pending payroll record. Idempotent per (employee, period).
	Generate(ctx context.Context, req GenerateRequest) (RecordResponse, error)

	// Approve advances a pending record to approved
	Approve(ctx context.Context, req ApproveRequest) (RecordResponse, error)

	// MarkPaid advances an approved record to paid and stamps paid_date
	MarkPaid(ctx context.Context, req MarkPaidRequest) (RecordResponse, error)

	// List retrieves payroll records with filters
	List(ctx context.Context, filter Filter) (ListResponse, error)
}
