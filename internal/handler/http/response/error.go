package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Anything unrecognised is logged and hidden behind a 500.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Authentication
	case errors.Is(err, auth.ErrMissingToken):
		Unauthorized(w, "Missing bearer token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, user.ErrNoUserInContext):
		Unauthorized(w, "Invalid token")

	// Authorization
	case errors.Is(err, user.ErrUnknownProfile), errors.Is(err, user.ErrInactiveUser):
		Forbidden(w, "No active profile for this identity")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Not found
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")

	// Conflicts
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Not checked in")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrOvertimeAlreadyReviewed):
		Conflict(w, "Overtime already reviewed")
	case errors.Is(err, attendance.ErrNoOvertime):
		Conflict(w, "No overtime to review")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Conflict(w, "Payroll record already paid")

	// Input the validators report as plain errors
	case errors.Is(err, attendance.ErrInvalidDayCredit),
		errors.Is(err, calendar.ErrNotSaturday),
		errors.Is(err, calendar.ErrOutsideMonth):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, payroll.ErrInvalidPeriod):
		InvalidPeriod(w, "No working days in period")

	// Default
	default:
		slog.ErrorContext(r.Context(), "Unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
