package postgresql

import (
	"context"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/dashboard"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to aggregate dashboard count: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) ActiveVolunteerCount(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE role IN ('volunteer', 'group_admin') AND active`)
}

func (r *dashboardRepository) PendingApplicationCount(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications WHERE status = 'pending'`)
}

func (r *dashboardRepository) UpcomingShiftCount(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM shifts WHERE status IN ('open', 'full') AND starts_at > NOW()`)
}

func (r *dashboardRepository) OpenSessionCount(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM attendance_sessions WHERE check_out_at IS NULL`)
}

func (r *dashboardRepository) PendingHourEntryCount(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM hour_log_entries WHERE NOT approved`)
}

// HoursApprovedThisMonth sums whole hours approved since the start of the
// current calendar month, minutes included.
func (r *dashboardRepository) HoursApprovedThisMonth(ctx context.Context) (int64, error) {
	return r.count(ctx, `
		SELECT COALESCE(SUM(hours * 60 + minutes), 0) / 60
		FROM hour_log_entries
		WHERE approved AND approved_at >= date_trunc('month', NOW())
	`)
}
