package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/domain/shift"
)

// TimeclockJobs owns the background half of the shift state machine: the
// break timeout monitor that force-closes sessions whose break has run past
// the allowed duration, regardless of whether the employee's client is
// still connected.
type TimeclockJobs struct {
	shiftRepo        shift.Repository
	shiftSvc         shift.Service
	breakMaxDuration time.Duration
	now              func() time.Time
}

func NewTimeclockJobs(
	shiftRepo shift.Repository,
	shiftSvc shift.Service,
	breakMaxDuration time.Duration,
) *TimeclockJobs {
	return &TimeclockJobs{
		shiftRepo:        shiftRepo,
		shiftSvc:         shiftSvc,
		breakMaxDuration: breakMaxDuration,
		now:              time.Now,
	}
}

func (j *TimeclockJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("break_timeout_monitor", interval, j.EnforceBreakTimeouts)
}

// EnforceBreakTimeouts scans every ON_BREAK session and auto-clocks-out the
// ones whose break has reached the limit. One session failing never aborts
// the rest of the scan; losing an EndBreak race is expected and benign.
func (j *TimeclockJobs) EnforceBreakTimeouts(ctx context.Context) error {
	sessions, err := j.shiftRepo.ListOnBreak(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions on break: %w", err)
	}

	if len(sessions) == 0 {
		return nil
	}

	now := j.now()
	timedOut := 0

	for _, session := range sessions {
		if session.BreakStart == nil {
			// ON_BREAK rows always carry break_start; flag and move on
			slog.Error("Cron: ON_BREAK session has no break_start",
				"session_id", session.ID,
				"employee", session.EmployeeEmail)
			continue
		}

		elapsed := now.Sub(*session.BreakStart)
		if elapsed < j.breakMaxDuration {
			continue
		}

		if err := j.shiftSvc.AutoTimeout(ctx, session.ID); err != nil {
			if errors.Is(err, shift.ErrInvalidState) || errors.Is(err, shift.ErrConflict) {
				// Employee ended the break or clocked out between the scan
				// and the timeout
				slog.Debug("Cron: break timeout lost race to manual transition",
					"session_id", session.ID,
					"employee", session.EmployeeEmail)
				continue
			}
			slog.Error("Cron: failed to auto clock out session",
				"session_id", session.ID,
				"employee", session.EmployeeEmail,
				"error", err)
			continue
		}

		timedOut++
		slog.Info("Cron: break exceeded limit, session auto clocked out",
			"session_id", session.ID,
			"employee", session.EmployeeEmail,
			"break_elapsed", elapsed)
	}

	if timedOut > 0 {
		slog.Info("Cron: break timeout sweep done", "timed_out", timedOut, "scanned", len(sessions))
	}
	return nil
}
