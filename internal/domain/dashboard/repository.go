package dashboard

import "context"

// DashboardRepository aggregates counts straight from the database
type DashboardRepository interface {
	ActiveVolunteerCount(ctx context.Context) (int64, error)
	PendingApplicationCount(ctx context.Context) (int64, error)
	UpcomingShiftCount(ctx context.Context) (int64, error)
	OpenSessionCount(ctx context.Context) (int64, error)
	PendingHourEntryCount(ctx context.Context) (int64, error)
	HoursApprovedThisMonth(ctx context.Context) (int64, error)
}
