package dashboard

// AdminDashboardResponse summarises organisation-wide state for staff
type AdminDashboardResponse struct {
	ActiveVolunteers    int64 `json:"active_volunteers"`
	PendingApplications int64 `json:"pending_applications"`
	UpcomingShifts      int64 `json:"upcoming_shifts"`
	OpenSessions        int64 `json:"open_sessions"`
	PendingHourEntries  int64 `json:"pending_hour_entries"`
	HoursApprovedMonth  int64 `json:"hours_approved_this_month"`
}

// VolunteerDashboardResponse summarises the caller's own activity
type VolunteerDashboardResponse struct {
	UpcomingShifts []UpcomingShift `json:"upcoming_shifts"`
	OpenSessionID  *string         `json:"open_session_id,omitempty"`
	TotalHours     int             `json:"total_hours"`
	TotalMinutes   int             `json:"total_minutes"`
}

type UpcomingShift struct {
	ShiftID  string `json:"shift_id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}
