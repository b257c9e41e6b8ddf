package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a shift session.
type Status string

const (
	StatusClockedIn  Status = "CLOCKED_IN"
	StatusOnBreak    Status = "ON_BREAK"
	StatusClockedOut Status = "CLOCKED_OUT" // terminal
)

var StatusValues = []string{
	string(StatusClockedIn),
	string(StatusOnBreak),
	string(StatusClockedOut),
}

// EndedBy records who closed a session, for audit purposes.
type EndedBy string

const (
	EndedByEmployee EndedBy = "employee"
	EndedBySystem   EndedBy = "system" // break timeout monitor
)

// Session is one continuous clock-in to clock-out work period, possibly
// containing a break. Only the most recent break window is kept: a new
// StartBreak overwrites BreakStart/BreakEnd.
type Session struct {
	ID            string
	EmployeeEmail string
	ClockInTime   time.Time
	BreakStart    *time.Time
	BreakEnd      *time.Time
	ClockOutTime  *time.Time
	Status        Status
	// TotalHours is set exactly once when the session closes:
	// (clock_out - clock_in) in hours, rounded to 2 decimals.
	TotalHours *decimal.Decimal
	EndedBy    *EndedBy
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Open reports whether the session is still in a non-terminal state.
func (s Session) Open() bool {
	return s.Status == StatusClockedIn || s.Status == StatusOnBreak
}

// WorkedHours computes the wall-clock duration between clock-in and the
// given close time, in hours rounded to 2 decimals.
func WorkedHours(clockIn, clockOut time.Time) decimal.Decimal {
	return decimal.NewFromFloat(clockOut.Sub(clockIn).Hours()).Round(2)
}
