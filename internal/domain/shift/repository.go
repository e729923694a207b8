package shift

import (
	"context"
	"time"
)

// ShiftRepository - interface for shifts table
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	// GetByIDForUpdate locks the shift row for the duration of the enclosing
	// transaction. Used to serialise capacity checks.
	GetByIDForUpdate(ctx context.Context, id string) (Shift, error)
	List(ctx context.Context, filter ListShiftsFilter) ([]Shift, error)
	ListEndedWithStatus(ctx context.Context, status Status, before time.Time) ([]Shift, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]Shift, error)
	Update(ctx context.Context, s Shift) error
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// SignupRepository - interface for signups table
type SignupRepository interface {
	Create(ctx context.Context, s Signup) (Signup, error)
	GetByVolunteerAndShift(ctx context.Context, volunteerID, shiftID string) (Signup, error)
	CountByShift(ctx context.Context, shiftID string) (int64, error)
	ListByShift(ctx context.Context, shiftID string) ([]Signup, error)
	ListByVolunteer(ctx context.Context, volunteerID string) ([]Signup, error)
	ListUnremindedByShift(ctx context.Context, shiftID string) ([]Signup, error)
	MarkReminderSent(ctx context.Context, id string) error
	Delete(ctx context.Context, volunteerID, shiftID string) error
}
