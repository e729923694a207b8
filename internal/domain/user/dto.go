package user

import (
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// UpdateRoleRequest represents an admin changing a user's role
type UpdateRoleRequest struct {
	UserID string `json:"-"`
	Role   string `json:"role"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user id is required",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !validator.IsInSlice(r.Role, ValidRoles()) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "invalid role",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SetActiveRequest represents an admin activating or deactivating a user
type SetActiveRequest struct {
	UserID string `json:"-"`
	Active bool   `json:"active"`
}
