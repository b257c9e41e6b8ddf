package notification

import (
	"time"
)

// Type represents the kind of event a notification carries
type Type string

const (
	TypeShiftClockedIn      Type = "shift_clocked_in"
	TypeShiftClockedOut     Type = "shift_clocked_out"
	TypeShiftAutoClockedOut Type = "shift_auto_clocked_out"
	TypePayrollGenerated    Type = "payroll_generated"
	TypePayrollApproved     Type = "payroll_approved"
	TypePayrollPaid         Type = "payroll_paid"
)

// Notification is a persisted event addressed to one employee. Delivery is
// best effort; failing to deliver never fails the operation that raised it.
type Notification struct {
	ID             string
	RecipientEmail string
	Type           Type
	Title          string
	Message        string
	Data           map[string]interface{}
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}
