package hourlog

import (
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/pkg/validator"
)

// LogHoursRequest represents a volunteer manually logging untracked time
type LogHoursRequest struct {
	Hours       int     `json:"hours"`
	Minutes     int     `json:"minutes"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	GroupID     *string `json:"group_id,omitempty"`

	// Resolved by Validate
	ParsedDate time.Time `json:"-"`
}

func (r *LogHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Hours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must not be negative",
		})
	}
	if r.Minutes < 0 || r.Minutes > 59 {
		errs = append(errs, validator.ValidationError{
			Field:   "minutes",
			Message: "minutes must be between 0 and 59",
		})
	}
	if r.Hours == 0 && r.Minutes == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "logged time must be greater than zero",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	} else if len(r.Description) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 1000 characters",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else if d.After(time.Now().UTC()) {
		// Parsed dates sit at midnight UTC, so today always passes
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must not be in the future",
		})
	} else {
		r.ParsedDate = d
	}

	if r.GroupID != nil && !validator.IsValidUUID(*r.GroupID) {
		errs = append(errs, validator.ValidationError{
			Field:   "group_id",
			Message: "group_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EntryResponse represents an hour log entry in API responses
type EntryResponse struct {
	ID            string  `json:"id"`
	VolunteerID   string  `json:"volunteer_id"`
	Date          string  `json:"date"`
	Hours         int     `json:"hours"`
	Minutes       int     `json:"minutes"`
	Description   string  `json:"description"`
	Source        string  `json:"source"`
	GroupID       *string `json:"group_id,omitempty"`
	Approved      bool    `json:"approved"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	VolunteerName *string `json:"volunteer_name,omitempty"`
	GroupName     *string `json:"group_name,omitempty"`
}

func ToResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:            e.ID,
		VolunteerID:   e.VolunteerID,
		Date:          e.Date.Format("2006-01-02"),
		Hours:         e.Hours,
		Minutes:       e.Minutes,
		Description:   e.Description,
		Source:        string(e.Source),
		GroupID:       e.GroupID,
		Approved:      e.Approved,
		ApprovedBy:    e.ApprovedBy,
		VolunteerName: e.VolunteerName,
		GroupName:     e.GroupName,
	}
	if e.ApprovedAt != nil {
		formatted := e.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &formatted
	}
	return resp
}

// TotalResponse is the aggregate of a volunteer's logged time
type TotalResponse struct {
	VolunteerID string `json:"volunteer_id"`
	Hours       int    `json:"hours"`
	Minutes     int    `json:"minutes"`
	EntryCount  int    `json:"entry_count"`
}
