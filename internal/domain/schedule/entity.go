package schedule

import "time"

// ShiftStatus enum for planned roster entries
type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusConfirmed ShiftStatus = "confirmed"
)

var ShiftStatusValues = []string{
	string(ShiftStatusScheduled),
	string(ShiftStatusConfirmed),
}

// ScheduledShift is a planned roster entry. This subsystem only reads the
// roster for reporting; it never creates or mutates entries.
type ScheduledShift struct {
	ID            string
	EmployeeEmail string
	Date          time.Time
	StartTime     time.Time
	EndTime       time.Time
	Department    string
	Status        ShiftStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
