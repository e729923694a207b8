package dashboard

import "context"

type DashboardService interface {
	// AdminDashboard returns organisation-wide counts (admin)
	AdminDashboard(ctx context.Context) (AdminDashboardResponse, error)

	// VolunteerDashboard returns the authenticated volunteer's summary
	VolunteerDashboard(ctx context.Context) (VolunteerDashboardResponse, error)
}
