package application

import "time"

type Status string

const (
	// StatusIncomplete is a pre-submission draft, outside the
	// pending -> approved/rejected transition.
	StatusIncomplete Status = "incomplete"
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
)

// Application is a prospective volunteer's intake submission, gating
// promotion to active volunteer status.
type Application struct {
	ID     string
	UserID string

	Phone            string
	AddressLine1     string
	AddressLine2     *string
	City             string
	Postcode         string
	EmergencyContact string
	EmergencyPhone   string

	Motivation    string
	Experience    *string
	Availability  *string
	HasConviction bool

	Status          Status
	SubmittedAt     *time.Time
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join / DTO
	ApplicantName  *string
	ApplicantEmail *string
}

// IsTerminal reports whether the application can no longer change state.
func (a *Application) IsTerminal() bool {
	return a.Status == StatusApproved || a.Status == StatusRejected
}
