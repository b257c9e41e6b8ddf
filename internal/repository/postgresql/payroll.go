package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/domain/payroll"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRepository struct {
	db *database.DB
}

// NewPayrollRepository creates a new payroll record repository
func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

const payrollColumns = `p.id, p.employee_email, p.period_start, p.period_end,
	   p.total_hours, p.regular_hours, p.overtime_hours, p.hourly_rate,
	   p.gross_pay, p.deductions, p.net_pay, p.status, p.paid_date,
	   p.generated_by, p.approved_by, p.paid_by, p.created_at, p.updated_at`

func scanPayroll(row pgx.Row, withName bool) (payroll.Record, error) {
	var rec payroll.Record
	dest := []interface{}{
		&rec.ID, &rec.EmployeeEmail, &rec.PeriodStart, &rec.PeriodEnd,
		&rec.TotalHours, &rec.RegularHours, &rec.OvertimeHours, &rec.HourlyRate,
		&rec.GrossPay, &rec.Deductions, &rec.NetPay, &rec.Status, &rec.PaidDate,
		&rec.GeneratedBy, &rec.ApprovedBy, &rec.PaidBy, &rec.CreatedAt, &rec.UpdatedAt,
	}
	if withName {
		dest = append(dest, &rec.EmployeeName)
	}
	err := row.Scan(dest...)
	return rec, err
}

// Create implements payroll.Repository. The unique index on
// (employee_email, period_start, period_end) backs generation idempotency.
func (r *payrollRepository) Create(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_email, period_start, period_end,
			total_hours, regular_hours, overtime_hours, hourly_rate,
			gross_pay, deductions, net_pay, status, generated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeEmail,
		record.PeriodStart,
		record.PeriodEnd,
		record.TotalHours,
		record.RegularHours,
		record.OvertimeHours,
		record.HourlyRate,
		record.GrossPay,
		record.Deductions,
		record.NetPay,
		string(record.Status),
		record.GeneratedBy,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Record{}, payroll.ErrAlreadyGenerated
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return record, nil
}

// GetByID implements payroll.Repository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `,
			   e.full_name AS employee_name
		FROM payroll_records p
		LEFT JOIN employees e ON e.email = p.employee_email
		WHERE p.id = $1
	`

	rec, err := scanPayroll(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record by ID: %w", err)
	}

	return rec, nil
}

// ExistsForPeriod implements payroll.Repository.
func (r *payrollRepository) ExistsForPeriod(ctx context.Context, employeeEmail string, periodStart, periodEnd time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_records
			WHERE employee_email = $1
			  AND period_start = $2
			  AND period_end = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeEmail, periodStart, periodEnd).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payroll record existence: %w", err)
	}

	return exists, nil
}

// List implements payroll.Repository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeEmail != nil && *filter.EmployeeEmail != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_email = $%d", argIdx)
		args = append(args, *filter.EmployeeEmail)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM payroll_records p WHERE " + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+payrollColumns+`,
			   e.full_name AS employee_name
		FROM payroll_records p
		LEFT JOIN employees e ON e.email = p.employee_email
		WHERE %s
		ORDER BY p.period_end DESC, p.employee_email ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	records := []payroll.Record{}
	for rows.Next() {
		rec, err := scanPayroll(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, total, nil
}

// AdvanceStatus implements payroll.Repository. The status guard keeps the
// lifecycle forward-only: a row not in fromStatus matches nothing and the
// caller gets ErrInvalidTransition.
func (r *payrollRepository) AdvanceStatus(ctx context.Context, id string, fromStatus, toStatus payroll.Status, actor string, paidDate *time.Time) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	switch toStatus {
	case payroll.StatusApproved:
		query = `
			UPDATE payroll_records
			SET status = $1, approved_by = $2, updated_at = NOW()
			WHERE id = $3 AND status = $4
			RETURNING id
		`
	case payroll.StatusPaid:
		query = `
			UPDATE payroll_records
			SET status = $1, paid_by = $2, paid_date = $5, updated_at = NOW()
			WHERE id = $3 AND status = $4
			RETURNING id
		`
	default:
		return payroll.Record{}, fmt.Errorf("unsupported status transition to %s", toStatus)
	}

	args := []interface{}{string(toStatus), actor, id, string(fromStatus)}
	if toStatus == payroll.StatusPaid {
		args = append(args, paidDate)
	}

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			// Distinguish a missing record from one in the wrong state
			if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, payroll.ErrRecordNotFound) {
				return payroll.Record{}, payroll.ErrRecordNotFound
			}
			return payroll.Record{}, payroll.ErrInvalidTransition
		}
		return payroll.Record{}, fmt.Errorf("failed to advance payroll status: %w", err)
	}

	return r.GetByID(ctx, id)
}
