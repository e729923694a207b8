package shift

import "time"

type Status string

const (
	StatusOpen      Status = "open"
	StatusFull      Status = "full"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Shift entity
type Shift struct {
	ID          string
	Title       string
	Location    string
	Description *string
	StartsAt    time.Time
	EndsAt      time.Time
	Capacity    int
	Status      Status
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join / DTO
	SignupCount *int64
}

// IsTerminal reports whether the shift can no longer change state.
func (s *Shift) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled
}

// AcceptsSignups reports whether a volunteer may still reserve a slot.
func (s *Shift) AcceptsSignups(now time.Time) bool {
	return s.Status == StatusOpen && now.Before(s.StartsAt)
}

// Signup reserves one capacity slot on a shift for a volunteer.
// Unique per (volunteer, shift) pair.
type Signup struct {
	ID           string
	VolunteerID  string
	ShiftID      string
	ReminderSent bool
	CreatedAt    time.Time

	// Join / DTO
	VolunteerName *string
	VolunteerMail *string
}
