package profile

import "time"

// Profile holds a volunteer's contact details, created from their approved
// application.
type Profile struct {
	UserID           string
	Phone            string
	AddressLine1     string
	AddressLine2     *string
	City             string
	Postcode         string
	EmergencyContact string
	EmergencyPhone   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
