package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/hourlog"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type hourLogRepository struct {
	db *database.DB
}

func NewHourLogRepository(db *database.DB) hourlog.EntryRepository {
	return &hourLogRepository{db: db}
}

// Create implements hourlog.EntryRepository.
func (r *hourLogRepository) Create(ctx context.Context, e hourlog.Entry) (hourlog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query := `
		INSERT INTO hour_log_entries
			(id, volunteer_id, date, hours, minutes, description, source, group_id, approved, approved_by, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.VolunteerID, e.Date, e.Hours, e.Minutes, e.Description,
		e.Source, e.GroupID, e.Approved, e.ApprovedBy, e.ApprovedAt,
	).Scan(&e.CreatedAt)
	if err != nil {
		return hourlog.Entry{}, fmt.Errorf("failed to create hour log entry: %w", err)
	}

	return e, nil
}

// GetByID implements hourlog.EntryRepository.
func (r *hourLogRepository) GetByID(ctx context.Context, id string) (hourlog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, volunteer_id, date, hours, minutes, description, source,
			   group_id, approved, approved_by, approved_at, created_at
		FROM hour_log_entries
		WHERE id = $1
	`

	var e hourlog.Entry
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.VolunteerID, &e.Date, &e.Hours, &e.Minutes, &e.Description,
		&e.Source, &e.GroupID, &e.Approved, &e.ApprovedBy, &e.ApprovedAt, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return hourlog.Entry{}, hourlog.ErrEntryNotFound
		}
		return hourlog.Entry{}, fmt.Errorf("failed to get hour log entry: %w", err)
	}

	return e, nil
}

// ListByVolunteer implements hourlog.EntryRepository.
func (r *hourLogRepository) ListByVolunteer(ctx context.Context, volunteerID string) ([]hourlog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.volunteer_id, e.date, e.hours, e.minutes, e.description, e.source,
			   e.group_id, e.approved, e.approved_by, e.approved_at, e.created_at, g.name
		FROM hour_log_entries e
		LEFT JOIN groups g ON g.id = e.group_id
		WHERE e.volunteer_id = $1
		ORDER BY e.date DESC, e.created_at DESC
	`

	rows, err := q.Query(ctx, query, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hour log entries: %w", err)
	}
	defer rows.Close()

	var entries []hourlog.Entry
	for rows.Next() {
		var e hourlog.Entry
		if err := rows.Scan(
			&e.ID, &e.VolunteerID, &e.Date, &e.Hours, &e.Minutes, &e.Description, &e.Source,
			&e.GroupID, &e.Approved, &e.ApprovedBy, &e.ApprovedAt, &e.CreatedAt, &e.GroupName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan hour log entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListPending implements hourlog.EntryRepository.
func (r *hourLogRepository) ListPending(ctx context.Context) ([]hourlog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.volunteer_id, e.date, e.hours, e.minutes, e.description, e.source,
			   e.group_id, e.approved, e.approved_by, e.approved_at, e.created_at,
			   u.first_name || ' ' || u.last_name, g.name
		FROM hour_log_entries e
		JOIN users u ON u.id = e.volunteer_id
		LEFT JOIN groups g ON g.id = e.group_id
		WHERE NOT e.approved
		ORDER BY e.created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending hour log entries: %w", err)
	}
	defer rows.Close()

	var entries []hourlog.Entry
	for rows.Next() {
		var e hourlog.Entry
		if err := rows.Scan(
			&e.ID, &e.VolunteerID, &e.Date, &e.Hours, &e.Minutes, &e.Description, &e.Source,
			&e.GroupID, &e.Approved, &e.ApprovedBy, &e.ApprovedAt, &e.CreatedAt,
			&e.VolunteerName, &e.GroupName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan hour log entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Approve implements hourlog.EntryRepository. Approving twice is rejected so
// the caller can report the conflict.
func (r *hourLogRepository) Approve(ctx context.Context, id, approvedBy string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE hour_log_entries
		SET approved = TRUE, approved_by = $2, approved_at = NOW()
		WHERE id = $1 AND NOT approved
	`, id, approvedBy)
	if err != nil {
		return fmt.Errorf("failed to approve hour log entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return hourlog.ErrAlreadyApproved
	}

	return nil
}
