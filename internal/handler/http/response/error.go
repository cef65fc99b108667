package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-portal/internal/domain/auth"
	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Authorization
	case errors.Is(err, user.ErrReviewScopeRequired):
		Forbidden(w, "Manager or admin access required")
	case errors.Is(err, user.ErrInsufficientPermissions), errors.Is(err, user.ErrInvalidRole):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, leave.ErrNotAuthorizedToReview):
		Forbidden(w, "You can only review leave requests from your department")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
