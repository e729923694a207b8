package profile

import "github.com/communityroots/volunteer-backend-go/internal/pkg/validator"

type UpdateProfileRequest struct {
	Phone            *string `json:"phone,omitempty"`
	AddressLine1     *string `json:"address_line1,omitempty"`
	AddressLine2     *string `json:"address_line2,omitempty"`
	City             *string `json:"city,omitempty"`
	Postcode         *string `json:"postcode,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	EmergencyPhone   *string `json:"emergency_phone,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}
	if r.EmergencyPhone != nil && !validator.IsValidPhoneNumber(*r.EmergencyPhone) {
		errs = append(errs, validator.ValidationError{
			Field:   "emergency_phone",
			Message: "emergency_phone must be a valid phone number",
		})
	}
	if r.AddressLine1 != nil && validator.IsEmpty(*r.AddressLine1) {
		errs = append(errs, validator.ValidationError{
			Field:   "address_line1",
			Message: "address_line1 must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProfileResponse struct {
	UserID           string  `json:"user_id"`
	Phone            string  `json:"phone"`
	AddressLine1     string  `json:"address_line1"`
	AddressLine2     *string `json:"address_line2,omitempty"`
	City             string  `json:"city"`
	Postcode         string  `json:"postcode"`
	EmergencyContact string  `json:"emergency_contact"`
	EmergencyPhone   string  `json:"emergency_phone"`
}

func ToResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		UserID:           p.UserID,
		Phone:            p.Phone,
		AddressLine1:     p.AddressLine1,
		AddressLine2:     p.AddressLine2,
		City:             p.City,
		Postcode:         p.Postcode,
		EmergencyContact: p.EmergencyContact,
		EmergencyPhone:   p.EmergencyPhone,
	}
}
