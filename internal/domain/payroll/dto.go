package payroll

import (
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// PAYROLL DTOs
// ========================================

type GenerateRequest struct {
	EmployeeEmail string `json:"employee_email"`
	PeriodStart   string `json:"period_start"` // YYYY-MM-DD
	PeriodEnd     string `json:"period_end"`   // YYYY-MM-DD
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_email",
			Message: "employee_email is required",
		})
	} else if !validator.IsValidEmail(r.EmployeeEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_email",
			Message: "employee_email must be a valid email address",
		})
	}

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	if end.Before(start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Period returns the parsed inclusive date range. Validate must have passed.
func (r *GenerateRequest) Period() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.PeriodStart)
	end, _ := validator.IsValidDate(r.PeriodEnd)
	return start, end
}

type ApproveRequest struct {
	ID string `json:"-"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidRequest struct {
	ID string `json:"-"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	EmployeeEmail *string
	Status        *string
	Page          int
	Limit         int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, paid",
		})
	}
	if f.Page < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be at least 1",
		})
	}
	if f.Limit < 1 || f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID            string  `json:"id"`
	EmployeeEmail string  `json:"employee_email"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	PeriodStart   string  `json:"period_start"`
	PeriodEnd     string  `json:"period_end"`
	TotalHours    string  `json:"total_hours"`
	RegularHours  string  `json:"regular_hours"`
	OvertimeHours string  `json:"overtime_hours"`
	HourlyRate    string  `json:"hourly_rate"`
	GrossPay      string  `json:"gross_pay"`
	Deductions    string  `json:"deductions"`
	NetPay        string  `json:"net_pay"`
	Status        string  `json:"status"`
	PaidDate      *string `json:"paid_date,omitempty"`
	GeneratedBy   string  `json:"generated_by"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	PaidBy        *string `json:"paid_by,omitempty"`
}

// NewRecordResponse maps a Record entity to its response shape.
func NewRecordResponse(rec Record) RecordResponse {
	resp := RecordResponse{
		ID:            rec.ID,
		EmployeeEmail: rec.EmployeeEmail,
		EmployeeName:  rec.EmployeeName,
		PeriodStart:   rec.PeriodStart.Format("2006-01-02"),
		PeriodEnd:     rec.PeriodEnd.Format("2006-01-02"),
		TotalHours:    rec.TotalHours.StringFixed(2),
		RegularHours:  rec.RegularHours.StringFixed(2),
		OvertimeHours: rec.OvertimeHours.StringFixed(2),
		HourlyRate:    rec.HourlyRate.StringFixed(2),
		GrossPay:      rec.GrossPay.StringFixed(2),
		Deductions:    rec.Deductions.StringFixed(2),
		NetPay:        rec.NetPay.StringFixed(2),
		Status:        string(rec.Status),
		GeneratedBy:   rec.GeneratedBy,
		ApprovedBy:    rec.ApprovedBy,
		PaidBy:        rec.PaidBy,
	}
	if rec.PaidDate != nil {
		paid := rec.PaidDate.Format("2006-01-02")
		resp.PaidDate = &paid
	}
	return resp
}

type ListResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}
