package profile

import "context"

// ProfileService defines business logic for volunteer contact details
type ProfileService interface {
	// MyProfile returns the authenticated user's profile
	MyProfile(ctx context.Context) (ProfileResponse, error)

	// UpdateMyProfile updates the authenticated user's profile fields
	UpdateMyProfile(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)

	// GetProfile retrieves any user's profile (admin)
	GetProfile(ctx context.Context, userID string) (ProfileResponse, error)
}
