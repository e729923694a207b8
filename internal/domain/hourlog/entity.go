package hourlog

import "time"

type Source string

const (
	SourceAttendance Source = "attendance"
	SourceManual     Source = "manual"
)

// Entry is an approvable record of volunteer time, either derived from a
// closed attendance session or submitted manually.
type Entry struct {
	ID          string
	VolunteerID string
	Date        time.Time
	Hours       int
	Minutes     int
	Description string
	Source      Source
	GroupID     *string
	Approved    bool
	ApprovedBy  *string
	ApprovedAt  *time.Time
	CreatedAt   time.Time

	// Join / DTO
	VolunteerName *string
	GroupName     *string
}

// Total is an aggregate of logged time with minutes normalised to 0-59.
type Total struct {
	Hours   int
	Minutes int
}

// Add accumulates hours and minutes, carrying minute overflow into hours.
func (t Total) Add(hours, minutes int) Total {
	t.Hours += hours
	t.Minutes += minutes
	t.Hours += t.Minutes / 60
	t.Minutes = t.Minutes % 60
	return t
}

// FromMinutes decomposes a whole-minute duration into hours and minutes.
func FromMinutes(durationMinutes int) (hours, minutes int) {
	return durationMinutes / 60, durationMinutes % 60
}
