package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/shift"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type signupRepository struct {
	db *database.DB
}

func NewSignupRepository(db *database.DB) shift.SignupRepository {
	return &signupRepository{db: db}
}

// Create implements shift.SignupRepository.
func (r *signupRepository) Create(ctx context.Context, s shift.Signup) (shift.Signup, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO signups (id, volunteer_id, shift_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, s.ID, s.VolunteerID, s.ShiftID).Scan(&s.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.Signup{}, shift.ErrAlreadySignedUp
		}
		return shift.Signup{}, fmt.Errorf("failed to create signup: %w", err)
	}

	return s, nil
}

// GetByVolunteerAndShift implements shift.SignupRepository.
func (r *signupRepository) GetByVolunteerAndShift(ctx context.Context, volunteerID, shiftID string) (shift.Signup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, volunteer_id, shift_id, reminder_sent, created_at
		FROM signups
		WHERE volunteer_id = $1 AND shift_id = $2
	`

	var s shift.Signup
	err := q.QueryRow(ctx, query, volunteerID, shiftID).Scan(
		&s.ID, &s.VolunteerID, &s.ShiftID, &s.ReminderSent, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Signup{}, shift.ErrSignupNotFound
		}
		return shift.Signup{}, fmt.Errorf("failed to get signup: %w", err)
	}

	return s, nil
}

// CountByShift implements shift.SignupRepository.
func (r *signupRepository) CountByShift(ctx context.Context, shiftID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM signups WHERE shift_id = $1`, shiftID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count signups: %w", err)
	}

	return count, nil
}

// ListByShift implements shift.SignupRepository.
func (r *signupRepository) ListByShift(ctx context.Context, shiftID string) ([]shift.Signup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT su.id, su.volunteer_id, su.shift_id, su.reminder_sent, su.created_at,
			   u.first_name || ' ' || u.last_name, u.email
		FROM signups su
		JOIN users u ON u.id = su.volunteer_id
		WHERE su.shift_id = $1
		ORDER BY su.created_at ASC
	`

	rows, err := q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list signups for shift: %w", err)
	}
	defer rows.Close()

	var signups []shift.Signup
	for rows.Next() {
		var s shift.Signup
		if err := rows.Scan(&s.ID, &s.VolunteerID, &s.ShiftID, &s.ReminderSent, &s.CreatedAt, &s.VolunteerName, &s.VolunteerMail); err != nil {
			return nil, fmt.Errorf("failed to scan signup: %w", err)
		}
		signups = append(signups, s)
	}

	return signups, rows.Err()
}

// ListByVolunteer implements shift.SignupRepository.
func (r *signupRepository) ListByVolunteer(ctx context.Context, volunteerID string) ([]shift.Signup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, volunteer_id, shift_id, reminder_sent, created_at
		FROM signups
		WHERE volunteer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list signups for volunteer: %w", err)
	}
	defer rows.Close()

	var signups []shift.Signup
	for rows.Next() {
		var s shift.Signup
		if err := rows.Scan(&s.ID, &s.VolunteerID, &s.ShiftID, &s.ReminderSent, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan signup: %w", err)
		}
		signups = append(signups, s)
	}

	return signups, rows.Err()
}

// ListUnremindedByShift implements shift.SignupRepository.
func (r *signupRepository) ListUnremindedByShift(ctx context.Context, shiftID string) ([]shift.Signup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, volunteer_id, shift_id, reminder_sent, created_at
		FROM signups
		WHERE shift_id = $1 AND NOT reminder_sent
	`

	rows, err := q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unreminded signups: %w", err)
	}
	defer rows.Close()

	var signups []shift.Signup
	for rows.Next() {
		var s shift.Signup
		if err := rows.Scan(&s.ID, &s.VolunteerID, &s.ShiftID, &s.ReminderSent, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan signup: %w", err)
		}
		signups = append(signups, s)
	}

	return signups, rows.Err()
}

// MarkReminderSent implements shift.SignupRepository.
func (r *signupRepository) MarkReminderSent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE signups SET reminder_sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	return nil
}

// Delete implements shift.SignupRepository.
func (r *signupRepository) Delete(ctx context.Context, volunteerID, shiftID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM signups WHERE volunteer_id = $1 AND shift_id = $2`, volunteerID, shiftID)
	if err != nil {
		return fmt.Errorf("failed to delete signup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrSignupNotFound
	}

	return nil
}
