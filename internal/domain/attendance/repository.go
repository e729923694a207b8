package attendance

import "context"

// SessionRepository - interface for attendance_sessions table
type SessionRepository interface {
	Create(ctx context.Context, s Session) (Session, error)
	GetByID(ctx context.Context, id string) (Session, error)
	// GetOpenByVolunteer returns the volunteer's open session, if any.
	GetOpenByVolunteer(ctx context.Context, volunteerID string) (Session, error)
	CountOpenByShift(ctx context.Context, shiftID string) (int64, error)
	ListByVolunteer(ctx context.Context, volunteerID string) ([]Session, error)
	ListByShift(ctx context.Context, shiftID string) ([]Session, error)
	// Close sets check_out_at, duration and notes. Fails if the session is
	// already closed.
	Close(ctx context.Context, s Session) (Session, error)
}
