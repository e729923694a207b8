package application

import (
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/pkg/validator"
)

// SubmitApplicationRequest carries the intake form. Saved drafts stay
// incomplete; submission moves the application to pending.
type SubmitApplicationRequest struct {
	Phone            string  `json:"phone"`
	AddressLine1     string  `json:"address_line1"`
	AddressLine2     *string `json:"address_line2,omitempty"`
	City             string  `json:"city"`
	Postcode         string  `json:"postcode"`
	EmergencyContact string  `json:"emergency_contact"`
	EmergencyPhone   string  `json:"emergency_phone"`
	Motivation       string  `json:"motivation"`
	Experience       *string `json:"experience,omitempty"`
	Availability     *string `json:"availability,omitempty"`
	HasConviction    bool    `json:"has_conviction"`
}

func (r *SubmitApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone is required",
		})
	} else if !validator.IsValidPhoneNumber(r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}

	if validator.IsEmpty(r.AddressLine1) {
		errs = append(errs, validator.ValidationError{
			Field:   "address_line1",
			Message: "address_line1 is required",
		})
	}
	if validator.IsEmpty(r.City) {
		errs = append(errs, validator.ValidationError{
			Field:   "city",
			Message: "city is required",
		})
	}
	if validator.IsEmpty(r.Postcode) {
		errs = append(errs, validator.ValidationError{
			Field:   "postcode",
			Message: "postcode is required",
		})
	}

	if validator.IsEmpty(r.EmergencyContact) {
		errs = append(errs, validator.ValidationError{
			Field:   "emergency_contact",
			Message: "emergency_contact is required",
		})
	}
	if validator.IsEmpty(r.EmergencyPhone) {
		errs = append(errs, validator.ValidationError{
			Field:   "emergency_phone",
			Message: "emergency_phone is required",
		})
	} else if !validator.IsValidPhoneNumber(r.EmergencyPhone) {
		errs = append(errs, validator.ValidationError{
			Field:   "emergency_phone",
			Message: "emergency_phone must be a valid phone number",
		})
	}

	if validator.IsEmpty(r.Motivation) {
		errs = append(errs, validator.ValidationError{
			Field:   "motivation",
			Message: "motivation is required",
		})
	} else if len(r.Motivation) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "motivation",
			Message: "motivation must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RejectApplicationRequest carries an optional rejection reason
type RejectApplicationRequest struct {
	ApplicationID string  `json:"-"`
	Reason        *string `json:"reason,omitempty"`
}

// ApplicationResponse represents an application in API responses
type ApplicationResponse struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	Phone            string  `json:"phone"`
	AddressLine1     string  `json:"address_line1"`
	AddressLine2     *string `json:"address_line2,omitempty"`
	City             string  `json:"city"`
	Postcode         string  `json:"postcode"`
	EmergencyContact string  `json:"emergency_contact"`
	EmergencyPhone   string  `json:"emergency_phone"`
	Motivation       string  `json:"motivation"`
	Experience       *string `json:"experience,omitempty"`
	Availability     *string `json:"availability,omitempty"`
	HasConviction    bool    `json:"has_conviction"`
	Status           string  `json:"status"`
	SubmittedAt      *string `json:"submitted_at,omitempty"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
	ApplicantName    *string `json:"applicant_name,omitempty"`
	ApplicantEmail   *string `json:"applicant_email,omitempty"`
}

func ToResponse(a Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		Phone:            a.Phone,
		AddressLine1:     a.AddressLine1,
		AddressLine2:     a.AddressLine2,
		City:             a.City,
		Postcode:         a.Postcode,
		EmergencyContact: a.EmergencyContact,
		EmergencyPhone:   a.EmergencyPhone,
		Motivation:       a.Motivation,
		Experience:       a.Experience,
		Availability:     a.Availability,
		HasConviction:    a.HasConviction,
		Status:           string(a.Status),
		ApprovedBy:       a.ApprovedBy,
		RejectionReason:  a.RejectionReason,
		ApplicantName:    a.ApplicantName,
		ApplicantEmail:   a.ApplicantEmail,
	}
	if a.SubmittedAt != nil {
		formatted := a.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &formatted
	}
	if a.ApprovedAt != nil {
		formatted := a.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &formatted
	}
	return resp
}
