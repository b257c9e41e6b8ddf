package shift

import (
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT SESSION DTOs
// ========================================

type StartBreakRequest struct {
	SessionID string `json:"-"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session_id is required",
		})
	} else if !validator.IsValidUUID(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EndBreakRequest struct {
	SessionID string `json:"-"`
}

func (r *EndBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session_id is required",
		})
	} else if !validator.IsValidUUID(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	SessionID string `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session_id is required",
		})
	} else if !validator.IsValidUUID(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecentSessionsFilter struct {
	Limit int
}

func (f *RecentSessionsFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not be negative",
		})
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionResponse struct {
	ID            string   `json:"id"`
	EmployeeEmail string   `json:"employee_email"`
	ClockInTime   string   `json:"clock_in_time"`
	BreakStart    *string  `json:"break_start,omitempty"`
	BreakEnd      *string  `json:"break_end,omitempty"`
	ClockOutTime  *string  `json:"clock_out_time,omitempty"`
	Status        string   `json:"status"`
	TotalHours    *string  `json:"total_hours,omitempty"`
	EndedBy       *string  `json:"ended_by,omitempty"`
	BreakMinutes  *float64 `json:"break_minutes,omitempty"`
}

// NewSessionResponse maps a Session entity to its response shape.
func NewSessionResponse(s Session) SessionResponse {
	resp := SessionResponse{
		ID:            s.ID,
		EmployeeEmail: s.EmployeeEmail,
		ClockInTime:   s.ClockInTime.UTC().Format(time.RFC3339),
		Status:        string(s.Status),
	}

	resp.BreakStart = timePtrToString(s.BreakStart)
	resp.BreakEnd = timePtrToString(s.BreakEnd)
	resp.ClockOutTime = timePtrToString(s.ClockOutTime)

	if s.TotalHours != nil {
		hours := s.TotalHours.StringFixed(2)
		resp.TotalHours = &hours
	}
	if s.EndedBy != nil {
		endedBy := string(*s.EndedBy)
		resp.EndedBy = &endedBy
	}
	// Break analytics only cover the latest break window
	if s.BreakStart != nil && s.BreakEnd != nil {
		mins := s.BreakEnd.Sub(*s.BreakStart).Minutes()
		resp.BreakMinutes = &mins
	}

	return resp
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

type ListSessionsResponse struct {
	TotalCount int64             `json:"total_count"`
	Sessions   []SessionResponse `json:"sessions"`
}
