package response

import (
	"errors"
	"net/http"

	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/auth"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/employee"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/user"
	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/validator"
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
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Email not verified")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrExternalIDExists):
		Conflict(w, "Biometric external ID already registered")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrDuplicateWeekday):
		Conflict(w, "Shift already has a time slot for this weekday")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift is still assigned to employees")
	case errors.Is(err, shift.ErrNoShiftAssignment):
		BadRequest(w, "Employee has no shift assigned", nil)

	// Timeclock domain errors
	case errors.Is(err, timeclock.ErrSessionNotFound):
		NotFound(w, "Clock session not found")
	case errors.Is(err, timeclock.ErrSessionAlreadyClosed):
		Conflict(w, "Clock session is already closed")
	case errors.Is(err, timeclock.ErrSessionStillOpen):
		Conflict(w, "Clock session is still open")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
