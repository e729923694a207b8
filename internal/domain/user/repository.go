package user

import "context"

// UserRepository - interface for users table
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, role *Role) ([]User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	SetActive(ctx context.Context, id string, active bool) error
	CountByRole(ctx context.Context, role Role) (int64, error)
}
