package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/application"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const applicationColumns = `id, user_id, phone, address_line1, address_line2, city, postcode,
	emergency_contact, emergency_phone, motivation, experience, availability, has_conviction,
	status, submitted_at, approved_by, approved_at, rejection_reason, created_at, updated_at`

type applicationRepository struct {
	db *database.DB
}

func NewApplicationRepository(db *database.DB) application.ApplicationRepository {
	return &applicationRepository{db: db}
}

func scanApplication(row pgx.Row) (application.Application, error) {
	var a application.Application
	err := row.Scan(
		&a.ID, &a.UserID, &a.Phone, &a.AddressLine1, &a.AddressLine2, &a.City, &a.Postcode,
		&a.EmergencyContact, &a.EmergencyPhone, &a.Motivation, &a.Experience, &a.Availability,
		&a.HasConviction, &a.Status, &a.SubmittedAt, &a.ApprovedBy, &a.ApprovedAt,
		&a.RejectionReason, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements application.ApplicationRepository. One application per
// user, enforced by the unique constraint on user_id.
func (r *applicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query := `
		INSERT INTO applications
			(id, user_id, phone, address_line1, address_line2, city, postcode,
			 emergency_contact, emergency_phone, motivation, experience, availability,
			 has_conviction, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID, a.UserID, a.Phone, a.AddressLine1, a.AddressLine2, a.City, a.Postcode,
		a.EmergencyContact, a.EmergencyPhone, a.Motivation, a.Experience, a.Availability,
		a.HasConviction, a.Status, a.SubmittedAt,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return application.Application{}, application.ErrApplicationExists
		}
		return application.Application{}, fmt.Errorf("failed to create application: %w", err)
	}

	return a, nil
}

// GetByID implements application.ApplicationRepository.
func (r *applicationRepository) GetByID(ctx context.Context, id string) (application.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1`, applicationColumns)

	a, err := scanApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrApplicationNotFound
		}
		return application.Application{}, fmt.Errorf("failed to get application: %w", err)
	}

	return a, nil
}

// GetByUserID implements application.ApplicationRepository.
func (r *applicationRepository) GetByUserID(ctx context.Context, userID string) (application.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM applications WHERE user_id = $1`, applicationColumns)

	a, err := scanApplication(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrApplicationNotFound
		}
		return application.Application{}, fmt.Errorf("failed to get application by user: %w", err)
	}

	return a, nil
}

// ListByStatus implements application.ApplicationRepository.
func (r *applicationRepository) ListByStatus(ctx context.Context, status application.Status) ([]application.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.user_id, a.phone, a.address_line1, a.address_line2, a.city, a.postcode,
			   a.emergency_contact, a.emergency_phone, a.motivation, a.experience, a.availability,
			   a.has_conviction, a.status, a.submitted_at, a.approved_by, a.approved_at,
			   a.rejection_reason, a.created_at, a.updated_at,
			   u.first_name || ' ' || u.last_name, u.email
		FROM applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.status = $1
		ORDER BY a.submitted_at ASC NULLS LAST
	`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []application.Application
	for rows.Next() {
		var a application.Application
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Phone, &a.AddressLine1, &a.AddressLine2, &a.City, &a.Postcode,
			&a.EmergencyContact, &a.EmergencyPhone, &a.Motivation, &a.Experience, &a.Availability,
			&a.HasConviction, &a.Status, &a.SubmittedAt, &a.ApprovedBy, &a.ApprovedAt,
			&a.RejectionReason, &a.CreatedAt, &a.UpdatedAt,
			&a.ApplicantName, &a.ApplicantEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, a)
	}

	return applications, rows.Err()
}

// Update implements application.ApplicationRepository.
func (r *applicationRepository) Update(ctx context.Context, a application.Application) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE applications
		SET phone = $2, address_line1 = $3, address_line2 = $4, city = $5, postcode = $6,
			emergency_contact = $7, emergency_phone = $8, motivation = $9, experience = $10,
			availability = $11, has_conviction = $12, status = $13, submitted_at = $14,
			approved_by = $15, approved_at = $16, rejection_reason = $17, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		a.ID, a.Phone, a.AddressLine1, a.AddressLine2, a.City, a.Postcode,
		a.EmergencyContact, a.EmergencyPhone, a.Motivation, a.Experience,
		a.Availability, a.HasConviction, a.Status, a.SubmittedAt,
		a.ApprovedBy, a.ApprovedAt, a.RejectionReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return application.ErrApplicationNotFound
	}

	return nil
}

// CountByStatus implements application.ApplicationRepository.
func (r *applicationRepository) CountByStatus(ctx context.Context, status application.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}

	return count, nil
}
