package shift

import (
	"context"
)

// Service defines business logic for shift session transitions. All
// transitions on one employee's session are serialized; Clock in/out,
// break start/end come from the employee, AutoTimeout from the monitor.
type Service interface {
	// ClockIn opens a new session for the caller. Fails with
	// ErrAlreadyClockedIn when an open session exists.
	ClockIn(ctx context.Context) (SessionResponse, error)

	// StartBreak moves a CLOCKED_IN session to ON_BREAK
	StartBreak(ctx context.Context, req StartBreakRequest) (SessionResponse, error)

	// EndBreak moves an ON_BREAK session back to CLOCKED_IN
	EndBreak(ctx context.Context, req EndBreakRequest) (SessionResponse, error)

	// ClockOut closes a CLOCKED_IN or ON_BREAK session and freezes total hours
	ClockOut(ctx context.Context, req ClockOutRequest) (SessionResponse, error)

	// AutoTimeout is the system-initiated equivalent of ClockOut, valid only
	// while the session is ON_BREAK and the break has exceeded the allowed
	// duration. Invoked by the break timeout monitor, never by a client.
	AutoTimeout(ctx context.Context, sessionID string) error

	// GetActiveSession returns the caller's open session, or nil
	GetActiveSession(ctx context.Context) (*SessionResponse, error)

	// ListRecentSessions returns the caller's sessions, newest clock-in first
	ListRecentSessions(ctx context.Context, filter RecentSessionsFilter) (ListSessionsResponse, error)
}
