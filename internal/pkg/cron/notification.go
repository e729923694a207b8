package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/config"
	"github.com/communityroots/volunteer-backend-go/internal/domain/notification"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/email"
)

const dispatchBatchSize = 50

// NotificationJobs delivers committed outbox rows. Delivery failures only
// ever mark the row failed; they never propagate to the operation that
// enqueued the notification.
type NotificationJobs struct {
	outboxRepo notification.OutboxRepository
	emailSvc   email.EmailService
	cfg        config.JobsConfig
}

func NewNotificationJobs(outboxRepo notification.OutboxRepository, emailSvc email.EmailService, cfg config.JobsConfig) *NotificationJobs {
	return &NotificationJobs{
		outboxRepo: outboxRepo,
		emailSvc:   emailSvc,
		cfg:        cfg,
	}
}

func (j *NotificationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("dispatch_notification_outbox", j.cfg.OutboxInterval, j.DispatchOutbox)
}

// DispatchOutbox sends pending notifications, oldest first.
func (j *NotificationJobs) DispatchOutbox(ctx context.Context) error {
	pending, err := j.outboxRepo.ListPending(ctx, j.cfg.OutboxMaxAttempts, dispatchBatchSize)
	if err != nil {
		return fmt.Errorf("list pending notifications: %w", err)
	}

	for _, n := range pending {
		if err := j.deliver(n); err != nil {
			slog.Error("Notification delivery failed",
				"notification_id", n.ID,
				"template", n.Template,
				"attempt", n.Attempts+1,
				"error", err,
			)
			if markErr := j.outboxRepo.MarkFailed(ctx, n.ID, n.Attempts+1, err.Error()); markErr != nil {
				slog.Error("Failed to mark notification failed", "notification_id", n.ID, "error", markErr)
			}
			continue
		}

		if err := j.outboxRepo.MarkSent(ctx, n.ID); err != nil {
			slog.Error("Failed to mark notification sent", "notification_id", n.ID, "error", err)
		}
	}

	retired, err := j.outboxRepo.FailExhausted(ctx, j.cfg.OutboxMaxAttempts)
	if err != nil {
		return fmt.Errorf("retire exhausted notifications: %w", err)
	}
	if retired > 0 {
		slog.Warn("Retired undeliverable notifications", "count", retired)
	}

	return nil
}

func (j *NotificationJobs) deliver(n notification.Notification) error {
	switch n.Template {
	case notification.TemplateApplicationApproved:
		return j.emailSvc.SendApplicationApproved(n.Recipient, n.Payload["volunteer_name"])
	case notification.TemplateApplicationRejected:
		return j.emailSvc.SendApplicationRejected(n.Recipient, n.Payload["volunteer_name"], n.Payload["reason"])
	case notification.TemplateShiftReminder:
		startsAt := n.Payload["starts_at"]
		if t, err := time.Parse(time.RFC3339, startsAt); err == nil {
			startsAt = t.Format("Monday, 2 January 2006 at 15:04")
		}
		return j.emailSvc.SendShiftReminder(
			n.Recipient,
			n.Payload["volunteer_name"],
			n.Payload["shift_title"],
			n.Payload["shift_location"],
			startsAt,
		)
	default:
		return fmt.Errorf("unknown notification template: %s", n.Template)
	}
}
