package attendance

import "time"

// Session is the open/close record bounding a volunteer's presence at a
// shift. At most one open session (check_out_at IS NULL) may exist per
// volunteer at any time.
type Session struct {
	ID              string
	VolunteerID     string
	ShiftID         string
	CheckInAt       time.Time
	CheckOutAt      *time.Time
	DurationMinutes *int
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join / DTO
	ShiftTitle    *string
	VolunteerName *string
}

// IsOpen reports whether the session has not been checked out yet.
func (s *Session) IsOpen() bool {
	return s.CheckOutAt == nil
}

// Duration computes whole elapsed minutes between check-in and checkout,
// floored, never negative.
func Duration(checkIn, checkOut time.Time) int {
	minutes := int(checkOut.Sub(checkIn).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}
