package payroll

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/config"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/employee"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/notification"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/payroll"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/shift"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/database"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/identity"
	"github.com/fleetdesk/timeclock-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db              *database.DB
	payrollRepo     payroll.Repository
	shiftRepo       shift.Repository
	employeeRepo    employee.Repository
	notificationSvc notification.Service
	policy          config.PayrollConfig

	// overridable for tests
	now     func() time.Time
	runInTx func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.Repository,
	shiftRepo shift.Repository,
	employeeRepo employee.Repository,
	notificationSvc notification.Service,
	policy config.PayrollConfig,
) *PayrollServiceImpl {
	s := &PayrollServiceImpl{
		db:              db,
		payrollRepo:     payrollRepo,
		shiftRepo:       shiftRepo,
		employeeRepo:    employeeRepo,
		notificationSvc: notificationSvc,
		policy:          policy,
		now:             time.Now,
	}
	s.runInTx = func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			return fn(context.WithValue(ctx, "tx", tx))
		})
	}
	return s
}

// Generate implements payroll.Service. Aggregates the employee's closed
// sessions over the inclusive period into a pending record; exactly one
// record may exist per (employee, period), and the employee's current
// hourly rate is snapshotted into it.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	caller, err := identity.CurrentUser(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	periodStart, periodEnd := req.Period()

	emp, err := s.employeeRepo.GetByEmail(ctx, req.EmployeeEmail)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.RecordResponse{}, employee.ErrEmployeeNotFound
		}
		return payroll.RecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.HourlyRate == nil || emp.HourlyRate.LessThanOrEqual(decimal.Zero) {
		return payroll.RecordResponse{}, payroll.ErrMissingHourlyRate
	}

	// Sessions count toward the period their clock-out lands in; the
	// period end is inclusive through end of day
	sessions, err := s.shiftRepo.ListClosedInPeriod(ctx, req.EmployeeEmail, periodStart, endOfDay(periodEnd))
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("failed to list closed sessions: %w", err)
	}

	totalHours := decimal.Zero
	for _, sess := range sessions {
		if sess.TotalHours != nil {
			totalHours = totalHours.Add(*sess.TotalHours)
		}
	}

	record := s.compute(totalHours, *emp.HourlyRate, periodStart, periodEnd)
	record.EmployeeEmail = req.EmployeeEmail
	record.Status = payroll.StatusPending
	record.GeneratedBy = caller.Email

	// The duplicate check and the insert share a transaction so two admins
	// generating the same period cannot both pass the check
	var created payroll.Record
	err = s.runInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.payrollRepo.ExistsForPeriod(txCtx, req.EmployeeEmail, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to check for existing payroll record: %w", err)
		}
		if exists {
			return payroll.ErrAlreadyGenerated
		}

		created, err = s.payrollRepo.Create(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to create payroll record: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, payroll.ErrAlreadyGenerated) {
			return payroll.RecordResponse{}, payroll.ErrAlreadyGenerated
		}
		return payroll.RecordResponse{}, err
	}

	s.notify(notification.Notify{
		RecipientEmail: req.EmployeeEmail,
		Type:           notification.TypePayrollGenerated,
		Title:          "Payroll Generated",
		Message: fmt.Sprintf("Payroll for %s to %s is awaiting approval",
			req.PeriodStart, req.PeriodEnd),
		Data: map[string]interface{}{"payroll_id": created.ID},
	})

	return payroll.NewRecordResponse(created), nil
}

// Approve implements payroll.Service.
func (s *PayrollServiceImpl) Approve(ctx context.Context, req payroll.ApproveRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	caller, err := identity.CurrentUser(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	record, err := s.payrollRepo.AdvanceStatus(ctx, req.ID, payroll.StatusPending, payroll.StatusApproved, caller.Email, nil)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	s.notify(notification.Notify{
		RecipientEmail: record.EmployeeEmail,
		Type:           notification.TypePayrollApproved,
		Title:          "Payroll Approved",
		Message:        fmt.Sprintf("Your payroll of %s has been approved", record.NetPay.StringFixed(2)),
		Data:           map[string]interface{}{"payroll_id": record.ID},
	})

	return payroll.NewRecordResponse(record), nil
}

// MarkPaid implements payroll.Service.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	caller, err := identity.CurrentUser(ctx)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	paidDate := s.now().UTC().Truncate(24 * time.Hour)
	record, err := s.payrollRepo.AdvanceStatus(ctx, req.ID, payroll.StatusApproved, payroll.StatusPaid, caller.Email, &paidDate)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	s.notify(notification.Notify{
		RecipientEmail: record.EmployeeEmail,
		Type:           notification.TypePayrollPaid,
		Title:          "Payroll Paid",
		Message:        fmt.Sprintf("Your net pay of %s was marked paid", record.NetPay.StringFixed(2)),
		Data:           map[string]interface{}{"payroll_id": record.ID},
	})

	return payroll.NewRecordResponse(record), nil
}

// List implements payroll.Service.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.Filter) (payroll.ListResponse, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if err := filter.Validate(); err != nil {
		return payroll.ListResponse{}, err
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, payroll.NewRecordResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return payroll.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}

// compute splits total hours into regular and overtime buckets and applies
// the pay formulas. The regular baseline scales with period length: weekly
// regular hours times the number of started 7-day blocks, so the canonical
// two-week period caps at 80 regular hours.
func (s *PayrollServiceImpl) compute(totalHours, hourlyRate decimal.Decimal, periodStart, periodEnd time.Time) payroll.Record {
	periodDays := int(periodEnd.Sub(periodStart).Hours()/24) + 1
	weeks := (periodDays + 6) / 7
	baseline := decimal.NewFromFloat(s.policy.WeeklyRegularHours).Mul(decimal.NewFromInt(int64(weeks)))

	regular := decimal.Min(totalHours, baseline)
	overtime := decimal.Max(totalHours.Sub(baseline), decimal.Zero)

	overtimeMultiplier := decimal.NewFromFloat(s.policy.OvertimeMultiplier)
	gross := regular.Mul(hourlyRate).Add(overtime.Mul(hourlyRate).Mul(overtimeMultiplier)).Round(2)
	deductions := gross.Mul(decimal.NewFromFloat(s.policy.DeductionRate)).Round(2)
	net := gross.Sub(deductions)

	return payroll.Record{
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		TotalHours:    totalHours,
		RegularHours:  regular,
		OvertimeHours: overtime,
		HourlyRate:    hourlyRate,
		GrossPay:      gross,
		Deductions:    deductions,
		NetPay:        net,
	}
}

func endOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), day.Location())
}

func (s *PayrollServiceImpl) notify(n notification.Notify) {
	if s.notificationSvc == nil {
		return
	}
	s.notificationSvc.Queue(n)
}
