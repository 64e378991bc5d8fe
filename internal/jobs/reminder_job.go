package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/openshop-kr/journey-api/internal/config"
	"go.uber.org/zap"
)

// ReminderJobName is the scheduler name of the pending-payment reminder job
const ReminderJobName = "payment_reminders"

// DefaultReminderBatch bounds how many requests one run reminds.
const DefaultReminderBatch = 500

// PaymentReminder is the part of the payment service the job drives.
type PaymentReminder interface {
	RemindStale(ctx context.Context, now time.Time, age, cooldown time.Duration, limit int) (int, error)
}

// ReminderJob nudges consumers about payment requests left PENDING. It only
// emits REMINDER notifications and never changes a request's status.
type ReminderJob struct {
	reminder PaymentReminder
	logger   *zap.Logger
	age      time.Duration
	cooldown time.Duration
	batch    int
	now      func() time.Time
}

func NewReminderJob(reminder PaymentReminder, cfg *config.RemindersConfig, logger *zap.Logger) *ReminderJob {
	return &ReminderJob{
		reminder: reminder,
		logger:   logger,
		age:      cfg.PendingPaymentAgeDuration(),
		cooldown: cfg.CooldownDuration(),
		batch:    DefaultReminderBatch,
		now:      time.Now,
	}
}

// Run executes one reminder pass.
func (j *ReminderJob) Run(ctx context.Context) error {
	sent, err := j.reminder.RemindStale(ctx, j.now().UTC(), j.age, j.cooldown, j.batch)
	if err != nil {
		return fmt.Errorf("payment reminders stopped after %d: %w", sent, err)
	}

	j.logger.Info("payment reminder job completed",
		zap.Int("sent", sent),
		zap.Duration("pending_age", j.age),
		zap.Duration("cooldown", j.cooldown))
	return nil
}

// RegisterReminderJob registers the reminder job when reminders are enabled.
func RegisterReminderJob(scheduler *Scheduler, reminder PaymentReminder, cfg *config.RemindersConfig, logger *zap.Logger, timeout time.Duration) error {
	if !cfg.Enabled {
		logger.Info("payment reminders disabled")
		return nil
	}
	job := NewReminderJob(reminder, cfg, logger)
	return scheduler.AddJob(ReminderJobName, cfg.Schedule, timeout, job.Run)
}
