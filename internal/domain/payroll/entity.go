package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

var StatusValues = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusPaid),
}

// Record - generated payroll result for one employee over one pay period.
// Exactly one record may exist per (employee, period_start, period_end);
// records are never regenerated or deleted once created.
type Record struct {
	ID            string
	EmployeeEmail string
	PeriodStart   time.Time // inclusive
	PeriodEnd     time.Time // inclusive
	TotalHours    decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	// HourlyRate is snapshotted at generation time; later profile rate
	// changes must not alter existing records.
	HourlyRate decimal.Decimal
	GrossPay   decimal.Decimal
	Deductions decimal.Decimal
	NetPay     decimal.Decimal
	Status     Status
	PaidDate   *time.Time
	// Administrative audit trail
	GeneratedBy string
	ApprovedBy  *string
	PaidBy      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
}
