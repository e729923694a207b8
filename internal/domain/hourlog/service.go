package hourlog

import "context"

// HourLogService defines business logic for the hour accrual recorder
type HourLogService interface {
	// LogManualHours records untracked time for the authenticated volunteer
	LogManualHours(ctx context.Context, req LogHoursRequest) (EntryResponse, error)

	// AggregateHours sums a volunteer's entries, normalising minute overflow.
	// All entries count regardless of approval state.
	AggregateHours(ctx context.Context, volunteerID string) (TotalResponse, error)

	// Approve marks an entry approved (admin). There is no reject path;
	// entries that are never approved simply stay pending.
	Approve(ctx context.Context, entryID string) (EntryResponse, error)

	// MyEntries lists the authenticated volunteer's entries
	MyEntries(ctx context.Context) ([]EntryResponse, error)

	// PendingEntries lists unapproved entries across volunteers (admin)
	PendingEntries(ctx context.Context) ([]EntryResponse, error)
}
