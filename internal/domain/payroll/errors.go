package payroll

import "errors"

var (
	ErrRecordNotFound    = errors.New("payroll record not found")
	ErrAlreadyGenerated  = errors.New("payroll record already exists for this employee and period")
	ErrMissingHourlyRate = errors.New("employee has no hourly rate configured")
	ErrInvalidTransition = errors.New("payroll status transition not allowed")
	ErrInvalidPeriod     = errors.New("invalid pay period")
)
