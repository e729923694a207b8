package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/profile"
	"github.com/go-chi/jwtauth/v5"
)

type ProfileServiceImpl struct {
	profile.ProfileRepository
}

func NewProfileService(profileRepo profile.ProfileRepository) profile.ProfileService {
	return &ProfileServiceImpl{
		ProfileRepository: profileRepo,
	}
}

func callerID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// MyProfile implements profile.ProfileService.
func (s *ProfileServiceImpl) MyProfile(ctx context.Context) (profile.ProfileResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return s.GetProfile(ctx, userID)
}

// UpdateMyProfile implements profile.ProfileService. Absent fields keep
// their stored value; a missing profile starts from zero values.
func (s *ProfileServiceImpl) UpdateMyProfile(ctx context.Context, req profile.UpdateProfileRequest) (profile.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	userID, err := callerID(ctx)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	existing, err := s.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			return profile.ProfileResponse{}, err
		}
		existing = profile.Profile{UserID: userID}
	}

	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.AddressLine1 != nil {
		existing.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		existing.AddressLine2 = req.AddressLine2
	}
	if req.City != nil {
		existing.City = *req.City
	}
	if req.Postcode != nil {
		existing.Postcode = *req.Postcode
	}
	if req.EmergencyContact != nil {
		existing.EmergencyContact = *req.EmergencyContact
	}
	if req.EmergencyPhone != nil {
		existing.EmergencyPhone = *req.EmergencyPhone
	}

	updated, err := s.ProfileRepository.Upsert(ctx, existing)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return profile.ToResponse(updated), nil
}

// GetProfile implements profile.ProfileService.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID string) (profile.ProfileResponse, error) {
	found, err := s.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return profile.ToResponse(found), nil
}
