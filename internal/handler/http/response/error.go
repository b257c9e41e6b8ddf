package response

import (
	"errors"
	"net/http"

	"github.com/fleetdesk/timeclock-backend-go/internal/domain/employee"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/payroll"
	"github.com/fleetdesk/timeclock-backend-go/internal/domain/shift"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/identity"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, identity.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, identity.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")

	// Shift domain errors
	case errors.Is(err, shift.ErrAlreadyClockedIn):
		Conflict(w, "An open shift session already exists")
	case errors.Is(err, shift.ErrInvalidState):
		Conflict(w, "Session is not in a valid state for this transition")
	case errors.Is(err, shift.ErrConflict):
		Conflict(w, "Session was modified concurrently, please retry")
	case errors.Is(err, shift.ErrSessionNotFound):
		NotFound(w, "Shift session not found")
	case errors.Is(err, shift.ErrNotSessionOwner):
		Forbidden(w, "Session belongs to another employee")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrAlreadyGenerated):
		Conflict(w, "Payroll already generated for this period")
	case errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, "Payroll record is not in a valid state for this transition")
	case errors.Is(err, payroll.ErrMissingHourlyRate):
		BadRequest(w, "Employee has no hourly rate configured", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
