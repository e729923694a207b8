package notification

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

type Template string

const (
	TemplateApplicationApproved Template = "application_approved"
	TemplateApplicationRejected Template = "application_rejected"
	TemplateShiftReminder       Template = "shift_reminder"
)

// Notification is an outbox row. Core transactions only ever enqueue; the
// dispatcher job delivers committed rows so a delivery failure can never
// fail the operation that triggered it.
type Notification struct {
	ID        string
	Recipient string
	Template  Template
	Payload   map[string]string
	Status    Status
	Attempts  int
	LastError *string
	CreatedAt time.Time
	SentAt    *time.Time
}
