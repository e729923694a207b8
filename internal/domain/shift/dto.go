package shift

import (
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/pkg/validator"
)

// CreateShiftRequest represents an admin creating a shift
type CreateShiftRequest struct {
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Description *string `json:"description,omitempty"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
	Capacity    int     `json:"capacity"`

	// Resolved by Validate
	ParsedStartsAt time.Time `json:"-"`
	ParsedEndsAt   time.Time `json:"-"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	} else if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}

	if validator.IsEmpty(r.StartsAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "starts_at",
			Message: "starts_at is required",
		})
	} else if t, ok := validator.IsValidDateTime(r.StartsAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "starts_at",
			Message: "starts_at must be an ISO8601 timestamp",
		})
	} else {
		r.ParsedStartsAt = t
	}

	if validator.IsEmpty(r.EndsAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "ends_at",
			Message: "ends_at is required",
		})
	} else if t, ok := validator.IsValidDateTime(r.EndsAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "ends_at",
			Message: "ends_at must be an ISO8601 timestamp",
		})
	} else {
		r.ParsedEndsAt = t
	}

	if !r.ParsedStartsAt.IsZero() && !r.ParsedEndsAt.IsZero() && !r.ParsedEndsAt.After(r.ParsedStartsAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "ends_at",
			Message: "ends_at must be after starts_at",
		})
	}

	if r.Capacity < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "capacity",
			Message: "capacity must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateShiftRequest represents an admin editing shift details
type UpdateShiftRequest struct {
	ShiftID     string  `json:"-"`
	Title       *string `json:"title,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift id is required",
		})
	}

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}
	if r.Location != nil && validator.IsEmpty(*r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must not be empty",
		})
	}
	if r.Capacity != nil && *r.Capacity < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "capacity",
			Message: "capacity must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListShiftsFilter filters the shift listing
type ListShiftsFilter struct {
	Status *Status
	From   *time.Time
	To     *time.Time
}

// ShiftResponse represents shift data in API responses
type ShiftResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Description *string `json:"description,omitempty"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
	Capacity    int     `json:"capacity"`
	Status      string  `json:"status"`
	SignupCount int64   `json:"signup_count"`
}

func ToResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:          s.ID,
		Title:       s.Title,
		Location:    s.Location,
		Description: s.Description,
		StartsAt:    s.StartsAt.Format(time.RFC3339),
		EndsAt:      s.EndsAt.Format(time.RFC3339),
		Capacity:    s.Capacity,
		Status:      string(s.Status),
	}
	if s.SignupCount != nil {
		resp.SignupCount = *s.SignupCount
	}
	return resp
}

// SignupResponse represents a signup in API responses
type SignupResponse struct {
	ID            string  `json:"id"`
	VolunteerID   string  `json:"volunteer_id"`
	ShiftID       string  `json:"shift_id"`
	CreatedAt     string  `json:"created_at"`
	VolunteerName *string `json:"volunteer_name,omitempty"`
}

func ToSignupResponse(s Signup) SignupResponse {
	return SignupResponse{
		ID:            s.ID,
		VolunteerID:   s.VolunteerID,
		ShiftID:       s.ShiftID,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		VolunteerName: s.VolunteerName,
	}
}
