package postgresql

import (
	"context"
	"fmt"

	"github.com/communityroots/volunteer-backend-go/internal/domain/notification"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type outboxRepository struct {
	db *database.DB
}

func NewOutboxRepository(db *database.DB) notification.OutboxRepository {
	return &outboxRepository{db: db}
}

// Enqueue implements notification.OutboxRepository. Called inside the same
// transaction as the state change that triggers the notification.
func (r *outboxRepository) Enqueue(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Status == "" {
		n.Status = notification.StatusPending
	}
	if n.Payload == nil {
		n.Payload = map[string]string{}
	}

	query := `
		INSERT INTO notification_outbox (id, recipient, template, payload, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, n.ID, n.Recipient, n.Template, n.Payload, n.Status).Scan(&n.CreatedAt)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to enqueue notification: %w", err)
	}

	return n, nil
}

// ListPending implements notification.OutboxRepository.
func (r *outboxRepository) ListPending(ctx context.Context, maxAttempts, limit int) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, recipient, template, payload, status, attempts, last_error, created_at, sent_at
		FROM notification_outbox
		WHERE status = $1 AND attempts < $2
		ORDER BY created_at ASC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, notification.StatusPending, maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(
			&n.ID, &n.Recipient, &n.Template, &n.Payload, &n.Status,
			&n.Attempts, &n.LastError, &n.CreatedAt, &n.SentAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkSent implements notification.OutboxRepository.
func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notification_outbox
		SET status = $2, sent_at = NOW(), attempts = attempts + 1, last_error = NULL
		WHERE id = $1
	`, id, notification.StatusSent)
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}

	return nil
}

// MarkFailed implements notification.OutboxRepository. The row stays pending
// so the next sweep can retry it.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, attempts int, lastError string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE notification_outbox
		SET attempts = $2, last_error = $3
		WHERE id = $1
	`, id, attempts, lastError)
	if err != nil {
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}

	return nil
}

// FailExhausted implements notification.OutboxRepository.
func (r *outboxRepository) FailExhausted(ctx context.Context, maxAttempts int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE notification_outbox
		SET status = $1
		WHERE status = $2 AND attempts >= $3
	`, notification.StatusFailed, notification.StatusPending, maxAttempts)
	if err != nil {
		return 0, fmt.Errorf("failed to retire exhausted notifications: %w", err)
	}

	return tag.RowsAffected(), nil
}
