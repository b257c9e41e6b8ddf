package schedule

import (
	"context"
	"log/slog"

	"github.com/fleetdesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/identity"
)

type ScheduleServiceImpl struct {
	scheduleRepo schedule.Repository
}

func NewScheduleService(scheduleRepo schedule.Repository) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{scheduleRepo: scheduleRepo}
}

// ListUpcomingShifts implements schedule.Service. Repository failures degrade
// to an empty list so a roster outage never breaks the clock-in screen.
func (s *ScheduleServiceImpl) ListUpcomingShifts(ctx context.Context) (schedule.ListScheduledShiftsResponse, error) {
	caller, err := identity.CurrentUser(ctx)
	if err != nil {
		return schedule.ListScheduledShiftsResponse{}, err
	}

	statuses := []schedule.ShiftStatus{
		schedule.ShiftStatusScheduled,
		schedule.ShiftStatusConfirmed,
	}

	shifts, err := s.scheduleRepo.ListByEmployee(ctx, caller.Email, statuses)
	if err != nil {
		slog.Warn("failed to load scheduled shifts, returning empty roster",
			slog.String("employee_email", caller.Email),
			slog.Any("error", err))
		return schedule.ListScheduledShiftsResponse{
			Shifts: []schedule.ScheduledShiftResponse{},
		}, nil
	}

	responses := make([]schedule.ScheduledShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, schedule.NewScheduledShiftResponse(sh))
	}

	return schedule.ListScheduledShiftsResponse{Shifts: responses}, nil
}
