package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/domain/shift"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

// NewShiftRepository creates a new shift session repository
func NewShiftRepository(db *database.DB) shift.Repository {
	return &shiftRepository{db: db}
}

const shiftColumns = `id, employee_email, clock_in_time, break_start, break_end,
	   clock_out_time, status, total_hours, ended_by, created_at, updated_at`

func scanShift(row pgx.Row) (shift.Session, error) {
	var s shift.Session
	err := row.Scan(
		&s.ID, &s.EmployeeEmail, &s.ClockInTime, &s.BreakStart, &s.BreakEnd,
		&s.ClockOutTime, &s.Status, &s.TotalHours, &s.EndedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements shift.Repository.
func (r *shiftRepository) Create(ctx context.Context, session shift.Session) (shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_sessions (employee_email, clock_in_time, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.EmployeeEmail,
		session.ClockInTime,
		string(session.Status),
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return shift.Session{}, fmt.Errorf("failed to create shift session: %w", err)
	}

	return session, nil
}

// GetByID implements shift.Repository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_sessions
		WHERE id = $1
	`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Session{}, shift.ErrSessionNotFound
		}
		return shift.Session{}, fmt.Errorf("failed to get shift session by ID: %w", err)
	}

	return s, nil
}

// GetActiveByEmployee implements shift.Repository.
func (r *shiftRepository) GetActiveByEmployee(ctx context.Context, employeeEmail string) (*shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_sessions
		WHERE employee_email = $1
		  AND status IN ('CLOCKED_IN', 'ON_BREAK')
		ORDER BY clock_in_time DESC
		LIMIT 1
	`

	s, err := scanShift(q.QueryRow(ctx, query, employeeEmail))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no open session
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}

	return &s, nil
}

// ListRecentByEmployee implements shift.Repository.
func (r *shiftRepository) ListRecentByEmployee(ctx context.Context, employeeEmail string, limit int) ([]shift.Session, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	countQuery := `SELECT COUNT(*) FROM shift_sessions WHERE employee_email = $1`
	if err := q.QueryRow(ctx, countQuery, employeeEmail).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shift sessions: %w", err)
	}

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_sessions
		WHERE employee_email = $1
		ORDER BY clock_in_time DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeEmail, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shift sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := collectShifts(rows)
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// ListOnBreak implements shift.Repository.
func (r *shiftRepository) ListOnBreak(ctx context.Context) ([]shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_sessions
		WHERE status = 'ON_BREAK'
		ORDER BY break_start ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions on break: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// ListClosedInPeriod implements shift.Repository.
func (r *shiftRepository) ListClosedInPeriod(ctx context.Context, employeeEmail string, periodStart, periodEnd time.Time) ([]shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_sessions
		WHERE employee_email = $1
		  AND status = 'CLOCKED_OUT'
		  AND clock_out_time >= $2
		  AND clock_out_time <= $3
		ORDER BY clock_out_time ASC
	`

	rows, err := q.Query(ctx, query, employeeEmail, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed sessions: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// UpdateTransition implements shift.Repository. The status guard in the WHERE
// clause makes concurrent transitions on the same session lose cleanly: the
// losing update matches zero rows and surfaces shift.ErrConflict.
func (r *shiftRepository) UpdateTransition(ctx context.Context, session shift.Session, fromStatus shift.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_sessions
		SET break_start = $1,
			break_end = $2,
			clock_out_time = $3,
			status = $4,
			total_hours = $5,
			ended_by = $6,
			updated_at = NOW()
		WHERE id = $7
		  AND status = $8
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		session.BreakStart,
		session.BreakEnd,
		session.ClockOutTime,
		string(session.Status),
		session.TotalHours,
		session.EndedBy,
		session.ID,
		string(fromStatus),
	).Scan(&id)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ErrConflict
		}
		return fmt.Errorf("failed to update shift session: %w", err)
	}

	return nil
}

func collectShifts(rows pgx.Rows) ([]shift.Session, error) {
	sessions := []shift.Session{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift sessions: %w", err)
	}
	return sessions, nil
}
