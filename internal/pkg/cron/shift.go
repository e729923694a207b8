package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/config"
	"github.com/communityroots/volunteer-backend-go/internal/domain/attendance"
	"github.com/communityroots/volunteer-backend-go/internal/domain/notification"
	"github.com/communityroots/volunteer-backend-go/internal/domain/shift"
	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
)

// ShiftJobs covers the periodic shift housekeeping: reminding signed-up
// volunteers before a shift starts, and completing shifts whose end time
// passed with every session already closed.
type ShiftJobs struct {
	shiftRepo   shift.ShiftRepository
	signupRepo  shift.SignupRepository
	sessionRepo attendance.SessionRepository
	userRepo    user.UserRepository
	outboxRepo  notification.OutboxRepository
	cfg         config.JobsConfig
}

func NewShiftJobs(
	shiftRepo shift.ShiftRepository,
	signupRepo shift.SignupRepository,
	sessionRepo attendance.SessionRepository,
	userRepo user.UserRepository,
	outboxRepo notification.OutboxRepository,
	cfg config.JobsConfig,
) *ShiftJobs {
	return &ShiftJobs{
		shiftRepo:   shiftRepo,
		signupRepo:  signupRepo,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
		cfg:         cfg,
	}
}

func (j *ShiftJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("enqueue_shift_reminders", j.cfg.ReminderInterval, j.EnqueueReminders)
	scheduler.AddJob("complete_ended_shifts", j.cfg.CompletionSweep, j.CompleteEndedShifts)
}

// EnqueueReminders finds shifts starting within the reminder window and
// enqueues one outbox reminder per signup that has not been reminded yet.
func (j *ShiftJobs) EnqueueReminders(ctx context.Context) error {
	now := time.Now().UTC()
	shifts, err := j.shiftRepo.ListStartingBetween(ctx, now, now.Add(j.cfg.ReminderWindow))
	if err != nil {
		return fmt.Errorf("list shifts starting soon: %w", err)
	}

	for _, s := range shifts {
		if s.Status == shift.StatusCancelled {
			continue
		}

		signups, err := j.signupRepo.ListUnremindedByShift(ctx, s.ID)
		if err != nil {
			slog.Error("Cron: failed to list unreminded signups", "shift_id", s.ID, "error", err)
			continue
		}

		for _, su := range signups {
			volunteer, err := j.userRepo.GetByID(ctx, su.VolunteerID)
			if err != nil {
				slog.Error("Cron: failed to load volunteer for reminder", "volunteer_id", su.VolunteerID, "error", err)
				continue
			}

			_, err = j.outboxRepo.Enqueue(ctx, notification.Notification{
				Recipient: volunteer.Email,
				Template:  notification.TemplateShiftReminder,
				Payload: map[string]string{
					"volunteer_name": volunteer.FullName(),
					"shift_title":    s.Title,
					"shift_location": s.Location,
					"starts_at":      s.StartsAt.Format(time.RFC3339),
				},
			})
			if err != nil {
				slog.Error("Cron: failed to enqueue reminder", "signup_id", su.ID, "error", err)
				continue
			}

			if err := j.signupRepo.MarkReminderSent(ctx, su.ID); err != nil {
				slog.Error("Cron: failed to mark reminder sent", "signup_id", su.ID, "error", err)
			}
		}
	}

	return nil
}

// CompleteEndedShifts transitions shifts to completed once their end time
// has passed and no open sessions remain. Covers shifts whose last session
// was closed before the end time, which the check-out path cannot complete.
func (j *ShiftJobs) CompleteEndedShifts(ctx context.Context) error {
	now := time.Now().UTC()

	for _, status := range []shift.Status{shift.StatusOpen, shift.StatusFull} {
		ended, err := j.shiftRepo.ListEndedWithStatus(ctx, status, now)
		if err != nil {
			return fmt.Errorf("list ended shifts: %w", err)
		}

		for _, s := range ended {
			openCount, err := j.sessionRepo.CountOpenByShift(ctx, s.ID)
			if err != nil {
				slog.Error("Cron: failed to count open sessions", "shift_id", s.ID, "error", err)
				continue
			}
			if openCount > 0 {
				continue
			}

			if err := j.shiftRepo.UpdateStatus(ctx, s.ID, shift.StatusCompleted); err != nil {
				slog.Error("Cron: failed to complete shift", "shift_id", s.ID, "error", err)
				continue
			}
			slog.Info("Cron: shift completed", "shift_id", s.ID)
		}
	}

	return nil
}
