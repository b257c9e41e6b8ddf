package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScheduleRepo struct {
	shifts []schedule.ScheduledShift
	err    error

	gotEmail    string
	gotStatuses []schedule.ShiftStatus
}

func (s *stubScheduleRepo) ListByEmployee(_ context.Context, employeeEmail string, statuses []schedule.ShiftStatus) ([]schedule.ScheduledShift, error) {
	s.gotEmail = employeeEmail
	s.gotStatuses = statuses
	return s.shifts, s.err
}

func employeeContext(t *testing.T, email string) context.Context {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", "15m")
	tokenString, _, err := jwtService.GenerateAccessToken(email, "employee", false)
	require.NoError(t, err)
	token, err := jwtService.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestScheduleService_ListUpcomingShifts(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	repo := &stubScheduleRepo{shifts: []schedule.ScheduledShift{
		{
			ID:            "b",
			EmployeeEmail: "worker@example.com",
			Date:          day.AddDate(0, 0, 1),
			StartTime:     day.AddDate(0, 0, 1).Add(9 * time.Hour),
			EndTime:       day.AddDate(0, 0, 1).Add(17 * time.Hour),
			Department:    "warehouse",
			Status:        schedule.ShiftStatusConfirmed,
		},
		{
			ID:            "a",
			EmployeeEmail: "worker@example.com",
			Date:          day,
			StartTime:     day.Add(9 * time.Hour),
			EndTime:       day.Add(17 * time.Hour),
			Department:    "warehouse",
			Status:        schedule.ShiftStatusScheduled,
		},
	}}
	svc := NewScheduleService(repo)

	result, err := svc.ListUpcomingShifts(employeeContext(t, "worker@example.com"))

	require.NoError(t, err)
	require.Len(t, result.Shifts, 2)
	assert.Equal(t, "b", result.Shifts[0].ID)
	assert.Equal(t, "2026-03-10", result.Shifts[0].Date)
	assert.Equal(t, string(schedule.ShiftStatusConfirmed), result.Shifts[0].Status)

	assert.Equal(t, "worker@example.com", repo.gotEmail)
	assert.ElementsMatch(t, []schedule.ShiftStatus{
		schedule.ShiftStatusScheduled,
		schedule.ShiftStatusConfirmed,
	}, repo.gotStatuses)
}

func TestScheduleService_ListUpcomingShifts_EmptyRoster(t *testing.T) {
	svc := NewScheduleService(&stubScheduleRepo{})

	result, err := svc.ListUpcomingShifts(employeeContext(t, "worker@example.com"))

	require.NoError(t, err)
	assert.NotNil(t, result.Shifts)
	assert.Empty(t, result.Shifts)
}

// A roster lookup failure degrades to an empty list instead of failing the
// request.
func TestScheduleService_ListUpcomingShifts_RepoFailure(t *testing.T) {
	svc := NewScheduleService(&stubScheduleRepo{err: errors.New("db down")})

	result, err := svc.ListUpcomingShifts(employeeContext(t, "worker@example.com"))

	require.NoError(t, err)
	assert.Empty(t, result.Shifts)
}

func TestScheduleService_ListUpcomingShifts_RequiresIdentity(t *testing.T) {
	svc := NewScheduleService(&stubScheduleRepo{})

	_, err := svc.ListUpcomingShifts(context.Background())
	assert.Error(t, err)
}
