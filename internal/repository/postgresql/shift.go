package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/domain/shift"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `s.id, s.title, s.location, s.description, s.starts_at, s.ends_at,
	   s.capacity, s.status, s.created_by, s.created_at, s.updated_at`

func scanShift(row pgx.Row, withCount bool) (shift.Shift, error) {
	var s shift.Shift
	dest := []interface{}{
		&s.ID, &s.Title, &s.Location, &s.Description, &s.StartsAt, &s.EndsAt,
		&s.Capacity, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	}
	if withCount {
		dest = append(dest, &s.SignupCount)
	}
	err := row.Scan(dest...)
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, newShift shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	if newShift.ID == "" {
		newShift.ID = uuid.NewString()
	}

	query := `
		INSERT INTO shifts (id, title, location, description, starts_at, ends_at, capacity, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newShift.ID,
		newShift.Title,
		newShift.Location,
		newShift.Description,
		newShift.StartsAt,
		newShift.EndsAt,
		newShift.Capacity,
		newShift.Status,
		newShift.CreatedBy,
	).Scan(&newShift.CreatedAt, &newShift.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return newShift, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `,
			   (SELECT COUNT(*) FROM signups WHERE shift_id = s.id) AS signup_count
		FROM shifts s
		WHERE s.id = $1
	`

	s, err := scanShift(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// GetByIDForUpdate implements shift.ShiftRepository. Must run inside a
// transaction; the row lock serialises concurrent capacity checks.
func (r *shiftRepository) GetByIDForUpdate(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts s
		WHERE s.id = $1
		FOR UPDATE
	`

	s, err := scanShift(q.QueryRow(ctx, query, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to lock shift: %w", err)
	}

	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context, filter shift.ListShiftsFilter) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `,
			   (SELECT COUNT(*) FROM signups WHERE shift_id = s.id) AS signup_count
		FROM shifts s
		WHERE 1=1
	`
	args := []interface{}{}
	idx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND s.status = $%d", idx)
		args = append(args, *filter.Status)
		idx++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND s.starts_at >= $%d", idx)
		args = append(args, *filter.From)
		idx++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND s.starts_at <= $%d", idx)
		args = append(args, *filter.To)
		idx++
	}

	query += " ORDER BY s.starts_at ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// ListEndedWithStatus implements shift.ShiftRepository.
func (r *shiftRepository) ListEndedWithStatus(ctx context.Context, status shift.Status, before time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `,
			   (SELECT COUNT(*) FROM signups WHERE shift_id = s.id) AS signup_count
		FROM shifts s
		WHERE s.status = $1 AND s.ends_at < $2
		ORDER BY s.ends_at ASC
	`

	rows, err := q.Query(ctx, query, status, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list ended shifts: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// ListStartingBetween implements shift.ShiftRepository.
func (r *shiftRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `,
			   (SELECT COUNT(*) FROM signups WHERE shift_id = s.id) AS signup_count
		FROM shifts s
		WHERE s.starts_at >= $1 AND s.starts_at <= $2
		ORDER BY s.starts_at ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts starting soon: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET title = $1, location = $2, description = $3, capacity = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query, s.Title, s.Location, s.Description, s.Capacity, s.Status, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// UpdateStatus implements shift.ShiftRepository.
func (r *shiftRepository) UpdateStatus(ctx context.Context, id string, status shift.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE shifts SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update shift status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

func collectShifts(rows pgx.Rows) ([]shift.Shift, error) {
	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}
