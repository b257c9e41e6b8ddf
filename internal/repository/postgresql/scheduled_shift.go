package postgresql

import (
	"context"
	"fmt"

	"github.com/fleetdesk/timeclock-backend-go/internal/domain/schedule"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/database"
)

type scheduledShiftRepository struct {
	db *database.DB
}

// NewScheduledShiftRepository creates a new scheduled shift repository
func NewScheduledShiftRepository(db *database.DB) schedule.Repository {
	return &scheduledShiftRepository{db: db}
}

// ListByEmployee implements schedule.Repository.
func (r *scheduledShiftRepository) ListByEmployee(ctx context.Context, employeeEmail string, statuses []schedule.ShiftStatus) ([]schedule.ScheduledShift, error) {
	q := GetQuerier(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query := `
		SELECT id, employee_email, date, start_time, end_time, department,
			   status, created_at, updated_at
		FROM scheduled_shifts
		WHERE employee_email = $1
		  AND status = ANY($2)
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, employeeEmail, statusStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled shifts: %w", err)
	}
	defer rows.Close()

	shifts := []schedule.ScheduledShift{}
	for rows.Next() {
		var sh schedule.ScheduledShift
		err := rows.Scan(
			&sh.ID, &sh.EmployeeEmail, &sh.Date, &sh.StartTime, &sh.EndTime,
			&sh.Department, &sh.Status, &sh.CreatedAt, &sh.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled shift: %w", err)
		}
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scheduled shifts: %w", err)
	}

	return shifts, nil
}
