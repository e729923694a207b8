package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/attendance"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const sessionColumns = `id, volunteer_id, shift_id, check_in_at, check_out_at, duration_minutes, notes, created_at, updated_at`

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}

func scanSession(row pgx.Row) (attendance.Session, error) {
	var s attendance.Session
	err := row.Scan(
		&s.ID, &s.VolunteerID, &s.ShiftID, &s.CheckInAt, &s.CheckOutAt,
		&s.DurationMinutes, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements attendance.SessionRepository. The partial unique index
// on open sessions rejects a second concurrent check-in for the same
// volunteer.
func (r *sessionRepository) Create(ctx context.Context, s attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_sessions (id, volunteer_id, shift_id, check_in_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.ID, s.VolunteerID, s.ShiftID, s.CheckInAt).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Session{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return s, nil
}

// GetByID implements attendance.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM attendance_sessions WHERE id = $1`, sessionColumns)

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get attendance session: %w", err)
	}

	return s, nil
}

// GetOpenByVolunteer implements attendance.SessionRepository.
func (r *sessionRepository) GetOpenByVolunteer(ctx context.Context, volunteerID string) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM attendance_sessions
		WHERE volunteer_id = $1 AND check_out_at IS NULL
	`, sessionColumns)

	s, err := scanSession(q.QueryRow(ctx, query, volunteerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get open attendance session: %w", err)
	}

	return s, nil
}

// CountOpenByShift implements attendance.SessionRepository.
func (r *sessionRepository) CountOpenByShift(ctx context.Context, shiftID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendance_sessions
		WHERE shift_id = $1 AND check_out_at IS NULL
	`, shiftID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open sessions: %w", err)
	}

	return count, nil
}

// ListByVolunteer implements attendance.SessionRepository.
func (r *sessionRepository) ListByVolunteer(ctx context.Context, volunteerID string) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.volunteer_id, s.shift_id, s.check_in_at, s.check_out_at,
			   s.duration_minutes, s.notes, s.created_at, s.updated_at, sh.title
		FROM attendance_sessions s
		JOIN shifts sh ON sh.id = s.shift_id
		WHERE s.volunteer_id = $1
		ORDER BY s.check_in_at DESC
	`

	rows, err := q.Query(ctx, query, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for volunteer: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		var s attendance.Session
		if err := rows.Scan(
			&s.ID, &s.VolunteerID, &s.ShiftID, &s.CheckInAt, &s.CheckOutAt,
			&s.DurationMinutes, &s.Notes, &s.CreatedAt, &s.UpdatedAt, &s.ShiftTitle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// ListByShift implements attendance.SessionRepository.
func (r *sessionRepository) ListByShift(ctx context.Context, shiftID string) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.volunteer_id, s.shift_id, s.check_in_at, s.check_out_at,
			   s.duration_minutes, s.notes, s.created_at, s.updated_at,
			   u.first_name || ' ' || u.last_name
		FROM attendance_sessions s
		JOIN users u ON u.id = s.volunteer_id
		WHERE s.shift_id = $1
		ORDER BY s.check_in_at ASC
	`

	rows, err := q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for shift: %w", err)
	}
	defer rows.Close()

	var sessions []attendance.Session
	for rows.Next() {
		var s attendance.Session
		if err := rows.Scan(
			&s.ID, &s.VolunteerID, &s.ShiftID, &s.CheckInAt, &s.CheckOutAt,
			&s.DurationMinutes, &s.Notes, &s.CreatedAt, &s.UpdatedAt, &s.VolunteerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// Close implements attendance.SessionRepository.
func (r *sessionRepository) Close(ctx context.Context, s attendance.Session) (attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET check_out_at = $2, duration_minutes = $3, notes = $4, updated_at = NOW()
		WHERE id = $1 AND check_out_at IS NULL
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, s.ID, s.CheckOutAt, s.DurationMinutes, s.Notes).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Session{}, fmt.Errorf("failed to close attendance session: %w", err)
	}

	return s, nil
}
