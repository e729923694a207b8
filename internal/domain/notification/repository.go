package notification

import "context"

// OutboxRepository - interface for notification_outbox table
type OutboxRepository interface {
	Enqueue(ctx context.Context, n Notification) (Notification, error)
	// ListPending returns pending rows with fewer than maxAttempts attempts,
	// oldest first.
	ListPending(ctx context.Context, maxAttempts, limit int) ([]Notification, error)
	MarkSent(ctx context.Context, id string) error
	// MarkFailed records a delivery failure. The row stays pending until
	// FailExhausted retires it.
	MarkFailed(ctx context.Context, id string, attempts int, lastError string) error
	// FailExhausted moves pending rows at or over maxAttempts to failed and
	// returns how many were retired.
	FailExhausted(ctx context.Context, maxAttempts int) (int64, error)
}
