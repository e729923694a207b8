package hourlog

import "context"

// EntryRepository - interface for hour_log_entries table
type EntryRepository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	GetByID(ctx context.Context, id string) (Entry, error)
	ListByVolunteer(ctx context.Context, volunteerID string) ([]Entry, error)
	ListPending(ctx context.Context) ([]Entry, error)
	Approve(ctx context.Context, id, approvedBy string) error
}
