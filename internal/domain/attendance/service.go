package attendance

import "context"

// AttendanceService defines business logic for check-in / check-out
type AttendanceService interface {
	// CheckIn opens a session for the authenticated volunteer. Requires an
	// existing signup; fails if the volunteer already has an open session.
	CheckIn(ctx context.Context, req CheckInRequest) (SessionResponse, error)

	// CheckOut closes a session, computes the duration and records an
	// unapproved hour log entry. Only the session owner or an admin may
	// check out. If the shift has ended and no other open sessions remain,
	// the shift transitions to completed.
	CheckOut(ctx context.Context, req CheckOutRequest) (SessionResponse, error)

	// MySessions lists the authenticated volunteer's sessions
	MySessions(ctx context.Context) ([]SessionResponse, error)

	// ShiftSessions lists all sessions for a shift (admin)
	ShiftSessions(ctx context.Context, shiftID string) ([]SessionResponse, error)
}
