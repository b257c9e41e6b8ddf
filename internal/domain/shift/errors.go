package shift

import "errors"

// Shift domain errors
var (
	// Transition precondition violations
	ErrAlreadyClockedIn = errors.New("you already have an open shift session")
	ErrInvalidState     = errors.New("session is not in a valid state for this transition")

	// General errors
	ErrSessionNotFound = errors.New("shift session not found")
	ErrNotSessionOwner = errors.New("you do not own this shift session")
	ErrConflict        = errors.New("session was modified concurrently, please retry")
)
