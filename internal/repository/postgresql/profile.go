package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/profile"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type profileRepository struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) profile.ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert implements profile.ProfileRepository.
func (r *profileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles
			(user_id, phone, address_line1, address_line2, city, postcode, emergency_contact, emergency_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			phone = EXCLUDED.phone,
			address_line1 = EXCLUDED.address_line1,
			address_line2 = EXCLUDED.address_line2,
			city = EXCLUDED.city,
			postcode = EXCLUDED.postcode,
			emergency_contact = EXCLUDED.emergency_contact,
			emergency_phone = EXCLUDED.emergency_phone,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.UserID, p.Phone, p.AddressLine1, p.AddressLine2, p.City, p.Postcode,
		p.EmergencyContact, p.EmergencyPhone,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return p, nil
}

// GetByUserID implements profile.ProfileRepository.
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, phone, address_line1, address_line2, city, postcode,
			   emergency_contact, emergency_phone, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var p profile.Profile
	err := q.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Phone, &p.AddressLine1, &p.AddressLine2, &p.City, &p.Postcode,
		&p.EmergencyContact, &p.EmergencyPhone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}
