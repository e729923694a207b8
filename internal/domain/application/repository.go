package application

import "context"

// ApplicationRepository - interface for applications table
type ApplicationRepository interface {
	Create(ctx context.Context, a Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	GetByUserID(ctx context.Context, userID string) (Application, error)
	ListByStatus(ctx context.Context, status Status) ([]Application, error)
	Update(ctx context.Context, a Application) error
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
