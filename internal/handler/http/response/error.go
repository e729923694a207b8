package response

import (
	"errors"
	"net/http"

	"github.com/communityroots/volunteer-backend-go/internal/domain/application"
	"github.com/communityroots/volunteer-backend-go/internal/domain/attendance"
	"github.com/communityroots/volunteer-backend-go/internal/domain/auth"
	"github.com/communityroots/volunteer-backend-go/internal/domain/group"
	"github.com/communityroots/volunteer-backend-go/internal/domain/hourlog"
	"github.com/communityroots/volunteer-backend-go/internal/domain/profile"
	"github.com/communityroots/volunteer-backend-go/internal/domain/shift"
	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/validator"
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
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountDeactivated):
		Forbidden(w, "Account has been deactivated")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account has been deactivated")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftNotOpen):
		Conflict(w, "Shift is not open for signups")
	case errors.Is(err, shift.ErrShiftAlreadyBegun):
		Conflict(w, "Shift has already started")
	case errors.Is(err, shift.ErrCapacityExceeded):
		Conflict(w, "Shift is already at full capacity")
	case errors.Is(err, shift.ErrAlreadySignedUp):
		Conflict(w, "Already signed up for this shift")
	case errors.Is(err, shift.ErrSignupNotFound):
		NotFound(w, "Signup not found")
	case errors.Is(err, shift.ErrInvalidTimeWindow):
		BadRequest(w, "Shift must end after it starts", nil)
	case errors.Is(err, shift.ErrShiftNotCancelable):
		Conflict(w, "Shift has already completed or been cancelled")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotSignedUp):
		Forbidden(w, "Not signed up for this shift")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "An open check-in session already exists")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Session has already been checked out")
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, attendance.ErrNotSessionOwner):
		Forbidden(w, "Not authorized to access this session")
	case errors.Is(err, attendance.ErrShiftNotActive):
		Conflict(w, "Shift is cancelled or completed")

	// Hour log domain errors
	case errors.Is(err, hourlog.ErrEntryNotFound):
		NotFound(w, "Hour log entry not found")
	case errors.Is(err, hourlog.ErrAlreadyApproved):
		Conflict(w, "Hour log entry has already been approved")
	case errors.Is(err, hourlog.ErrNotGroupMember):
		Forbidden(w, "Not a member of the referenced group")

	// Application domain errors
	case errors.Is(err, application.ErrApplicationNotFound):
		NotFound(w, "Application not found")
	case errors.Is(err, application.ErrApplicationExists):
		Conflict(w, "An application already exists for this user")
	case errors.Is(err, application.ErrNotPending):
		Conflict(w, "Application is not in a pending state")
	case errors.Is(err, application.ErrNotDraft):
		Conflict(w, "Application has already been submitted")
	case errors.Is(err, application.ErrNotApplicationOwner):
		Forbidden(w, "Not authorized to access this application")

	// Group domain errors
	case errors.Is(err, group.ErrGroupNotFound):
		NotFound(w, "Group not found")
	case errors.Is(err, group.ErrGroupNameExists):
		Conflict(w, "A group with this name already exists")
	case errors.Is(err, group.ErrAlreadyMember):
		Conflict(w, "User is already a member of this group")
	case errors.Is(err, group.ErrMembershipNotFound):
		NotFound(w, "User is not a member of this group")
	case errors.Is(err, group.ErrNotGroupAdmin):
		Forbidden(w, "Group admin access required")

	// Profile domain errors
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Profile not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
