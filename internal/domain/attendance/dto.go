package attendance

import (
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/pkg/validator"
)

// CheckInRequest opens a session for the authenticated volunteer
type CheckInRequest struct {
	ShiftID string `json:"shift_id"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	} else if !validator.IsValidUUID(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckOutRequest closes an open session
type CheckOutRequest struct {
	SessionID string  `json:"-"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SessionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "session_id",
			Message: "session id is required",
		})
	}

	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SessionResponse represents an attendance session in API responses
type SessionResponse struct {
	ID              string  `json:"id"`
	VolunteerID     string  `json:"volunteer_id"`
	ShiftID         string  `json:"shift_id"`
	CheckInAt       string  `json:"check_in_at"`
	CheckOutAt      *string `json:"check_out_at,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	ShiftTitle      *string `json:"shift_title,omitempty"`
	VolunteerName   *string `json:"volunteer_name,omitempty"`
}

func ToResponse(s Session) SessionResponse {
	resp := SessionResponse{
		ID:              s.ID,
		VolunteerID:     s.VolunteerID,
		ShiftID:         s.ShiftID,
		CheckInAt:       s.CheckInAt.Format(time.RFC3339),
		DurationMinutes: s.DurationMinutes,
		Notes:           s.Notes,
		ShiftTitle:      s.ShiftTitle,
		VolunteerName:   s.VolunteerName,
	}
	if s.CheckOutAt != nil {
		formatted := s.CheckOutAt.Format(time.RFC3339)
		resp.CheckOutAt = &formatted
	}
	return resp
}
