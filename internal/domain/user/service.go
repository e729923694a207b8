package user

import "context"

// UserService defines business logic for account administration
type UserService interface {
	// Me returns the authenticated user's own account
	Me(ctx context.Context) (UserResponse, error)

	// ListUsers lists accounts, optionally filtered by role (admin)
	ListUsers(ctx context.Context, role *Role) ([]UserResponse, error)

	// GetUser retrieves any account by ID (admin)
	GetUser(ctx context.Context, id string) (UserResponse, error)

	// UpdateRole changes an account's role (admin)
	UpdateRole(ctx context.Context, req UpdateRoleRequest) (UserResponse, error)

	// SetActive activates or deactivates an account (admin). Deactivation
	// revokes all refresh tokens.
	SetActive(ctx context.Context, req SetActiveRequest) (UserResponse, error)
}
