package profile

import "context"

// ProfileRepository - interface for profiles table
type ProfileRepository interface {
	// Upsert creates the profile or overwrites existing fields, keyed by
	// user id.
	Upsert(ctx context.Context, p Profile) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
}
