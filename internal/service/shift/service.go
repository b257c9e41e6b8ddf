package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/domain/notification"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/shift"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/identity"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/lock"
)

type ShiftServiceImpl struct {
	repo             shift.Repository
	locks            *lock.KeyedMutex
	notificationSvc  notification.Service
	breakMaxDuration time.Duration

	// overridable for tests
	now func() time.Time
}

func NewShiftService(
	repo shift.Repository,
	locks *lock.KeyedMutex,
	notificationSvc notification.Service,
	breakMaxDuration time.Duration,
) *ShiftServiceImpl {
	return &ShiftServiceImpl{
		repo:             repo,
		locks:            locks,
		notificationSvc:  notificationSvc,
		breakMaxDuration: breakMaxDuration,
		now:              time.Now,
	}
}

// ClockIn implements shift.Service.
func (s *ShiftServiceImpl) ClockIn(ctx context.Context) (shift.SessionResponse, error) {
	caller, err := identity.CurrentUser(ctx)
	if err != nil {
		return shift.SessionResponse{}, err
	}

	unlock := s.locks.Lock(caller.Email)
	defer unlock()

	active, err := s.repo.GetActiveByEmployee(ctx, caller.Email)
	if err != nil {
		return shift.SessionResponse{}, fmt.Errorf("failed to check for open session: %w", err)
	}
	if active != nil {
		return shift.SessionResponse{}, shift.ErrAlreadyClockedIn
	}

	session := shift.Session{
		EmployeeEmail: caller.Email,
		ClockInTime:   s.now().UTC(),
		Status:        shift.StatusClockedIn,
	}

	created, err := s.repo.Create(ctx, session)
	if err != nil {
		return shift.SessionResponse{}, fmt.Errorf("failed to create shift session: %w", err)
	}

	s.notify(notification.Notify{
		RecipientEmail: caller.Email,
		Type:           notification.TypeShiftClockedIn,
		Title:          "Clocked In",
		Message:        fmt.Sprintf("Shift started at %s", created.ClockInTime.Format("15:04")),
		Data:           map[string]interface{}{"session_id": created.ID},
	})

	return shift.NewSessionResponse(created), nil
}

// StartBreak implements shift.Service.
func (s *ShiftServiceImpl) StartBreak(ctx context.Context, req shift.StartBreakRequest) (shift.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.SessionResponse{}, err
	}

	caller, err := identity.CurrentUser(ctx)
	if err != nil {
		return shift.SessionResponse{}, err
	}

	session, err := s.transition(ctx, req.SessionID, &caller, func(sess *shift.Session) (shift.Status, error) {
		if sess.Status != shift.StatusClockedIn {
			return "", shift.ErrInvalidState
		}
		now := s.now().UTC()
		// Only the latest break window is tracked; a repeated break
		// overwrites the previous one
		sess.BreakStart = &now
		sess.BreakEnd = nil
		sess.Status = shift.StatusOnBreak
		return shift.StatusClockedIn, nil
	})
	if err != nil {
		return shift.SessionResponse{}, err
	}

	return shift.NewSessionResponse(session), nil
}

// EndBreak implements shift.Service.
func (s *ShiftServiceImpl) EndBreak(ctx context.Context, req shift.EndBreakRequest) (shift.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.SessionResponse{}, err
	}

	caller, err := identity.CurrentUser(ctx)
	if err != nil {
		return shift.SessionResponse{}, err
	}

	session, err := s.transition(ctx, req.SessionID, &caller, func(sess *shift.Session) (shift.Status, error) {
		if sess.Status != shift.StatusOnBreak {
			return "", shift.ErrInvalidState
		}
		now := s.now().UTC()
		sess.BreakEnd = &now
		sess.Status = shift.StatusClockedIn
		return shift.StatusOnBreak, nil
	})
	if err != nil {
		return shift.SessionResponse{}, err
	}

	return shift.NewSessionResponse(session), nil
}

// ClockOut implements shift.Service.
func (s *ShiftServiceImpl) ClockOut(ctx context.Context, req shift.ClockOutRequest) (shift.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.SessionResponse{}, err
	}

	caller, err := identity.CurrentUser(ctx)
	if err != nil {
		return shift.SessionResponse{}, err
	}

	session, err := s.transition(ctx, req.SessionID, &caller, func(sess *shift.Session) (shift.Status, error) {
		return s.close(sess, shift.EndedByEmployee)
	})
	if err != nil {
		return shift.SessionResponse{}, err
	}

	s.notify(notification.Notify{
		RecipientEmail: session.EmployeeEmail,
		Type:           notification.TypeShiftClockedOut,
		Title:          "Clocked Out",
		Message:        fmt.Sprintf("Shift closed with %s hours worked", session.TotalHours.StringFixed(2)),
		Data:           map[string]interface{}{"session_id": session.ID},
	})

	return shift.NewSessionResponse(session), nil
}

// AutoTimeout implements shift.Service. System-initiated: no caller identity,
// valid only while the session is ON_BREAK with the break past the limit.
func (s *ShiftServiceImpl) AutoTimeout(ctx context.Context, sessionID string) error {
	session, err := s.transition(ctx, sessionID, nil, func(sess *shift.Session) (shift.Status, error) {
		if sess.Status != shift.StatusOnBreak || sess.BreakStart == nil {
			return "", shift.ErrInvalidState
		}
		if s.now().Sub(*sess.BreakStart) < s.breakMaxDuration {
			return "", shift.ErrInvalidState
		}
		return s.close(sess, shift.EndedBySystem)
	})
	if err != nil {
		return err
	}

	s.notify(notification.Notify{
		RecipientEmail: session.EmployeeEmail,
		Type:           notification.TypeShiftAutoClockedOut,
		Title:          "Shift Auto-Closed",
		Message: fmt.Sprintf("Your break exceeded the %d-minute limit, so your shift was clocked out automatically",
			int(s.breakMaxDuration.Minutes())),
		Data: map[string]interface{}{"session_id": session.ID},
	})

	return nil
}

// GetActiveSession implements shift.Service.
func (s *ShiftServiceImpl) GetActiveSession(ctx context.Context) (*shift.SessionResponse, error) {
	caller, err := identity.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.GetActiveByEmployee(ctx, caller.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	if active == nil {
		return nil, nil
	}

	resp := shift.NewSessionResponse(*active)
	return &resp, nil
}

// ListRecentSessions implements shift.Service.
func (s *ShiftServiceImpl) ListRecentSessions(ctx context.Context, filter shift.RecentSessionsFilter) (shift.ListSessionsResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListSessionsResponse{}, err
	}

	caller, err := identity.CurrentUser(ctx)
	if err != nil {
		return shift.ListSessionsResponse{}, err
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}

	sessions, total, err := s.repo.ListRecentByEmployee(ctx, caller.Email, limit)
	if err != nil {
		return shift.ListSessionsResponse{}, fmt.Errorf("failed to list recent sessions: %w", err)
	}

	responses := make([]shift.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		responses = append(responses, shift.NewSessionResponse(sess))
	}

	return shift.ListSessionsResponse{
		TotalCount: total,
		Sessions:   responses,
	}, nil
}

// close finalizes a session: clock-out timestamp, frozen total hours, audit
// tag. Valid from CLOCKED_IN or ON_BREAK.
func (s *ShiftServiceImpl) close(sess *shift.Session, endedBy shift.EndedBy) (shift.Status, error) {
	if !sess.Open() {
		return "", shift.ErrInvalidState
	}
	fromStatus := sess.Status

	now := s.now().UTC()
	hours := shift.WorkedHours(sess.ClockInTime, now)

	sess.ClockOutTime = &now
	sess.TotalHours = &hours
	sess.Status = shift.StatusClockedOut
	sess.EndedBy = &endedBy

	return fromStatus, nil
}

// transition runs one serialized read-modify-write against a session. The
// apply callback validates the current state and mutates the session,
// returning the status the row must still hold for the write to land. A
// stale write is retried once against a fresh read, then surfaced as
// ErrConflict. caller non-nil enforces session ownership.
func (s *ShiftServiceImpl) transition(
	ctx context.Context,
	sessionID string,
	caller *identity.User,
	apply func(sess *shift.Session) (shift.Status, error),
) (shift.Session, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return shift.Session{}, err
	}
	if caller != nil && session.EmployeeEmail != caller.Email {
		return shift.Session{}, shift.ErrNotSessionOwner
	}

	unlock := s.locks.Lock(session.EmployeeEmail)
	defer unlock()

	for attempt := 0; attempt < 2; attempt++ {
		session, err = s.repo.GetByID(ctx, sessionID)
		if err != nil {
			return shift.Session{}, err
		}

		fromStatus, err := apply(&session)
		if err != nil {
			return shift.Session{}, err
		}

		err = s.repo.UpdateTransition(ctx, session, fromStatus)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, shift.ErrConflict) {
			return shift.Session{}, fmt.Errorf("failed to apply shift transition: %w", err)
		}
	}

	return shift.Session{}, shift.ErrConflict
}

// notify is fire-and-forget; a nil notifier or delivery failure never
// affects the transition that raised the event.
func (s *ShiftServiceImpl) notify(n notification.Notify) {
	if s.notificationSvc == nil {
		return
	}
	s.notificationSvc.Queue(n)
}
