package schedule

import (
	"context"
	"time"
)

// ========================================
// SCHEDULE DTOs
// ========================================

type ScheduledShiftResponse struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

func NewScheduledShiftResponse(s ScheduledShift) ScheduledShiftResponse {
	return ScheduledShiftResponse{
		ID:         s.ID,
		Date:       s.Date.Format("2006-01-02"),
		StartTime:  s.StartTime.UTC().Format(time.RFC3339),
		EndTime:    s.EndTime.UTC().Format(time.RFC3339),
		Department: s.Department,
		Status:     string(s.Status),
	}
}

type ListScheduledShiftsResponse struct {
	Shifts []ScheduledShiftResponse `json:"shifts"`
}

// Service defines the read-only schedule matcher.
type Service interface {
	// ListUpcomingShifts returns the caller's scheduled and confirmed roster
	// entries, date descending. Lookup failures are an empty result, never
	// an error.
	ListUpcomingShifts(ctx context.Context) (ListScheduledShiftsResponse, error)
}
