package payroll

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/config"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/employee"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/notification"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/payroll"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/shift"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWorkerEmail = "worker@example.com"
	testAdminEmail  = "admin@example.com"
)

var testPolicy = config.PayrollConfig{
	WeeklyRegularHours: 40,
	OvertimeMultiplier: 1.5,
	DeductionRate:      0.20,
}

type fakePayrollRepo struct {
	mu      sync.Mutex
	records map[string]payroll.Record
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.Record)}
}

func (f *fakePayrollRepo) Create(_ context.Context, record payroll.Record) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.records {
		if existing.EmployeeEmail == record.EmployeeEmail &&
			existing.PeriodStart.Equal(record.PeriodStart) &&
			existing.PeriodEnd.Equal(record.PeriodEnd) {
			return payroll.Record{}, payroll.ErrAlreadyGenerated
		}
	}
	record.ID = uuid.Must(uuid.NewV7()).String()
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	f.records[record.ID] = record
	return record, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakePayrollRepo) ExistsForPeriod(_ context.Context, employeeEmail string, periodStart, periodEnd time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.EmployeeEmail == employeeEmail &&
			rec.PeriodStart.Equal(periodStart) &&
			rec.PeriodEnd.Equal(periodEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayrollRepo) List(_ context.Context, filter payroll.Filter) ([]payroll.Record, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []payroll.Record
	for _, rec := range f.records {
		if filter.EmployeeEmail != nil && rec.EmployeeEmail != *filter.EmployeeEmail {
			continue
		}
		if filter.Status != nil && string(rec.Status) != *filter.Status {
			continue
		}
		result = append(result, rec)
	}
	return result, int64(len(result)), nil
}

func (f *fakePayrollRepo) AdvanceStatus(_ context.Context, id string, fromStatus, toStatus payroll.Status, actor string, paidDate *time.Time) (payroll.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	if rec.Status != fromStatus {
		return payroll.Record{}, payroll.ErrInvalidTransition
	}
	rec.Status = toStatus
	switch toStatus {
	case payroll.StatusApproved:
		rec.ApprovedBy = &actor
	case payroll.StatusPaid:
		rec.PaidBy = &actor
		rec.PaidDate = paidDate
	}
	f.records[id] = rec
	return rec, nil
}

// fakeSessionSource serves pre-closed sessions; only ListClosedInPeriod is
// exercised by the payroll aggregator.
type fakeSessionSource struct {
	sessions []shift.Session
}

func (f *fakeSessionSource) Create(context.Context, shift.Session) (shift.Session, error) {
	panic("not used")
}
func (f *fakeSessionSource) GetByID(context.Context, string) (shift.Session, error) {
	panic("not used")
}
func (f *fakeSessionSource) GetActiveByEmployee(context.Context, string) (*shift.Session, error) {
	panic("not used")
}
func (f *fakeSessionSource) ListRecentByEmployee(context.Context, string, int) ([]shift.Session, int64, error) {
	panic("not used")
}
func (f *fakeSessionSource) ListOnBreak(context.Context) ([]shift.Session, error) {
	panic("not used")
}
func (f *fakeSessionSource) UpdateTransition(context.Context, shift.Session, shift.Status) error {
	panic("not used")
}

func (f *fakeSessionSource) ListClosedInPeriod(_ context.Context, employeeEmail string, periodStart, periodEnd time.Time) ([]shift.Session, error) {
	var result []shift.Session
	for _, s := range f.sessions {
		if s.EmployeeEmail != employeeEmail || s.ClockOutTime == nil {
			continue
		}
		if s.ClockOutTime.Before(periodStart) || s.ClockOutTime.After(periodEnd) {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	emp, ok := f.employees[email]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	queued []notification.Notify
}

func (f *fakeNotifier) Queue(n notification.Notify) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, n)
}

func (f *fakeNotifier) List(context.Context, string, int) (notification.ListResponse, error) {
	return notification.ListResponse{}, nil
}

func (f *fakeNotifier) MarkRead(context.Context, string, []string) error { return nil }

func (f *fakeNotifier) Stop() {}

func adminContext(t *testing.T) context.Context {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", "15m")
	tokenString, _, err := jwtService.GenerateAccessToken(testAdminEmail, "admin", true)
	require.NoError(t, err)
	token, err := jwtService.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// closedSession builds a CLOCKED_OUT session with the given worked hours,
// ending on the given day.
func closedSession(email string, day time.Time, hours float64) shift.Session {
	clockOut := day.Add(17 * time.Hour)
	clockIn := clockOut.Add(-time.Duration(hours * float64(time.Hour)))
	total := decimal.NewFromFloat(hours).Round(2)
	endedBy := shift.EndedByEmployee
	return shift.Session{
		ID:            uuid.Must(uuid.NewV7()).String(),
		EmployeeEmail: email,
		ClockInTime:   clockIn,
		ClockOutTime:  &clockOut,
		Status:        shift.StatusClockedOut,
		TotalHours:    &total,
		EndedBy:       &endedBy,
	}
}

func newTestPayrollService(sessions []shift.Session, rate *decimal.Decimal) (*PayrollServiceImpl, *fakePayrollRepo, *fakeNotifier) {
	payrollRepo := newFakePayrollRepo()
	notifier := &fakeNotifier{}
	empRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testWorkerEmail: {
			ID:         uuid.Must(uuid.NewV7()).String(),
			Email:      testWorkerEmail,
			FullName:   "Test Worker",
			HourlyRate: rate,
			IsActive:   true,
		},
	}}
	svc := NewPayrollService(nil, payrollRepo, &fakeSessionSource{sessions: sessions}, empRepo, notifier, testPolicy)
	// no live database in these tests, run the transactional section inline
	svc.runInTx = func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return fn(ctx)
	}
	return svc, payrollRepo, notifier
}

// 85 hours over a two-week period at $20/h: 80 regular + 5 overtime at 1.5x
// gives a gross of 1750, 20% deductions of 350, net 1400.
func TestPayrollService_Generate_OvertimeSplit(t *testing.T) {
	periodStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var sessions []shift.Session
	// 10 sessions of 8.5h spread across the period: 85 total
	for i := 0; i < 10; i++ {
		day := periodStart.AddDate(0, 0, i)
		sessions = append(sessions, closedSession(testWorkerEmail, day, 8.5))
	}
	rate := decimal.NewFromInt(20)
	svc, _, notifier := newTestPayrollService(sessions, &rate)

	resp, err := svc.Generate(adminContext(t), payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-14",
	})

	require.NoError(t, err)
	assert.Equal(t, "85.00", resp.TotalHours)
	assert.Equal(t, "80.00", resp.RegularHours)
	assert.Equal(t, "5.00", resp.OvertimeHours)
	assert.Equal(t, "20.00", resp.HourlyRate)
	assert.Equal(t, "1750.00", resp.GrossPay)
	assert.Equal(t, "350.00", resp.Deductions)
	assert.Equal(t, "1400.00", resp.NetPay)
	assert.Equal(t, string(payroll.StatusPending), resp.Status)
	assert.Equal(t, testAdminEmail, resp.GeneratedBy)

	require.Len(t, notifier.queued, 1)
	assert.Equal(t, notification.TypePayrollGenerated, notifier.queued[0].Type)
	assert.Equal(t, testWorkerEmail, notifier.queued[0].RecipientEmail)
}

func TestPayrollService_Generate_NoOvertimeUnderBaseline(t *testing.T) {
	periodStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := []shift.Session{
		closedSession(testWorkerEmail, periodStart, 8),
		closedSession(testWorkerEmail, periodStart.AddDate(0, 0, 1), 8),
	}
	rate := decimal.NewFromInt(25)
	svc, _, _ := newTestPayrollService(sessions, &rate)

	resp, err := svc.Generate(adminContext(t), payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-07",
	})

	require.NoError(t, err)
	assert.Equal(t, "16.00", resp.TotalHours)
	assert.Equal(t, "16.00", resp.RegularHours)
	assert.Equal(t, "0.00", resp.OvertimeHours)
	assert.Equal(t, "400.00", resp.GrossPay)
	assert.Equal(t, "80.00", resp.Deductions)
	assert.Equal(t, "320.00", resp.NetPay)
}

func TestPayrollService_Generate_EmptyPeriod(t *testing.T) {
	rate := decimal.NewFromInt(20)
	svc, _, _ := newTestPayrollService(nil, &rate)

	resp, err := svc.Generate(adminContext(t), payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-14",
	})

	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.TotalHours)
	assert.Equal(t, "0.00", resp.GrossPay)
	assert.Equal(t, "0.00", resp.NetPay)
}

func TestPayrollService_Generate_AlreadyGenerated(t *testing.T) {
	rate := decimal.NewFromInt(20)
	svc, _, _ := newTestPayrollService(nil, &rate)
	req := payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-14",
	}

	_, err := svc.Generate(adminContext(t), req)
	require.NoError(t, err)

	_, err = svc.Generate(adminContext(t), req)
	assert.ErrorIs(t, err, payroll.ErrAlreadyGenerated)
}

func TestPayrollService_Generate_MissingHourlyRate(t *testing.T) {
	svc, _, _ := newTestPayrollService(nil, nil)

	_, err := svc.Generate(adminContext(t), payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-14",
	})

	assert.ErrorIs(t, err, payroll.ErrMissingHourlyRate)
}

func TestPayrollService_Generate_UnknownEmployee(t *testing.T) {
	rate := decimal.NewFromInt(20)
	svc, _, _ := newTestPayrollService(nil, &rate)

	_, err := svc.Generate(adminContext(t), payroll.GenerateRequest{
		EmployeeEmail: "ghost@example.com",
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-14",
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollService_Generate_InvalidPeriod(t *testing.T) {
	rate := decimal.NewFromInt(20)
	svc, _, _ := newTestPayrollService(nil, &rate)

	_, err := svc.Generate(adminContext(t), payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-14",
		PeriodEnd:     "2026-03-01",
	})

	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestPayrollService_Lifecycle(t *testing.T) {
	rate := decimal.NewFromInt(20)
	svc, _, notifier := newTestPayrollService(nil, &rate)
	ctx := adminContext(t)

	created, err := svc.Generate(ctx, payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-14",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, payroll.ApproveRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, testAdminEmail, *approved.ApprovedBy)

	paid, err := svc.MarkPaid(ctx, payroll.MarkPaidRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusPaid), paid.Status)
	require.NotNil(t, paid.PaidDate)
	require.NotNil(t, paid.PaidBy)

	types := make([]notification.Type, 0, len(notifier.queued))
	for _, n := range notifier.queued {
		types = append(types, n.Type)
	}
	assert.Contains(t, types, notification.TypePayrollApproved)
	assert.Contains(t, types, notification.TypePayrollPaid)
}

func TestPayrollService_Approve_OnlyFromPending(t *testing.T) {
	rate := decimal.NewFromInt(20)
	svc, _, _ := newTestPayrollService(nil, &rate)
	ctx := adminContext(t)

	created, err := svc.Generate(ctx, payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-14",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, payroll.ApproveRequest{ID: created.ID})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, payroll.ApproveRequest{ID: created.ID})
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestPayrollService_MarkPaid_OnlyFromApproved(t *testing.T) {
	rate := decimal.NewFromInt(20)
	svc, _, _ := newTestPayrollService(nil, &rate)
	ctx := adminContext(t)

	created, err := svc.Generate(ctx, payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-14",
	})
	require.NoError(t, err)

	// Still pending, not approved
	_, err = svc.MarkPaid(ctx, payroll.MarkPaidRequest{ID: created.ID})
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestPayrollService_Approve_NotFound(t *testing.T) {
	rate := decimal.NewFromInt(20)
	svc, _, _ := newTestPayrollService(nil, &rate)

	_, err := svc.Approve(adminContext(t), payroll.ApproveRequest{ID: uuid.Must(uuid.NewV7()).String()})
	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)
}

func TestPayrollService_List_FilterByStatus(t *testing.T) {
	rate := decimal.NewFromInt(20)
	svc, _, _ := newTestPayrollService(nil, &rate)
	ctx := adminContext(t)

	first, err := svc.Generate(ctx, payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-01",
		PeriodEnd:     "2026-03-14",
	})
	require.NoError(t, err)
	_, err = svc.Generate(ctx, payroll.GenerateRequest{
		EmployeeEmail: testWorkerEmail,
		PeriodStart:   "2026-03-15",
		PeriodEnd:     "2026-03-28",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, payroll.ApproveRequest{ID: first.ID})
	require.NoError(t, err)

	status := string(payroll.StatusApproved)
	result, err := svc.List(ctx, payroll.Filter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Records, 1)
	assert.Equal(t, first.ID, result.Records[0].ID)
}
