package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/openshop-kr/journey-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReminder struct {
	mu       sync.Mutex
	calls    int
	now      time.Time
	age      time.Duration
	cooldown time.Duration
	limit    int
	err      error
}

func (f *fakeReminder) RemindStale(ctx context.Context, now time.Time, age, cooldown time.Duration, limit int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.now, f.age, f.cooldown, f.limit = now, age, cooldown, limit
	if f.err != nil {
		return 1, f.err
	}
	return 2, nil
}

func remindersConfig() *config.RemindersConfig {
	return &config.RemindersConfig{
		Enabled:           true,
		Schedule:          "0 0 10 * * *",
		PendingPaymentAge: 72,
		Cooldown:          24,
	}
}

func TestReminderJob_RunPassesWindow(t *testing.T) {
	fake := &fakeReminder{}
	job := NewReminderJob(fake, remindersConfig(), zap.NewNop())
	fixed := time.Date(2026, 3, 2, 10, 0, 0, 0, time.FixedZone("KST", 9*60*60))
	job.now = func() time.Time { return fixed }

	require.NoError(t, job.Run(context.Background()))

	require.Equal(t, 1, fake.calls)
	assert.True(t, fixed.Equal(fake.now))
	assert.Equal(t, time.UTC, fake.now.Location())
	assert.Equal(t, 72*time.Hour, fake.age)
	assert.Equal(t, 24*time.Hour, fake.cooldown)
	assert.Equal(t, DefaultReminderBatch, fake.limit)
}

func TestReminderJob_RunReportsErrors(t *testing.T) {
	fake := &fakeReminder{err: errors.New("db down")}
	job := NewReminderJob(fake, remindersConfig(), zap.NewNop())

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 1")
	assert.Equal(t, 1, fake.calls)
}

func TestRegisterReminderJob(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	require.NoError(t, RegisterReminderJob(s, &fakeReminder{}, remindersConfig(), zap.NewNop(), time.Minute))
	assert.Equal(t, []string{ReminderJobName}, s.JobNames())

	err := RegisterReminderJob(s, &fakeReminder{}, remindersConfig(), zap.NewNop(), time.Minute)
	assert.Error(t, err, "duplicate job names are rejected")
}

func TestRegisterReminderJob_Disabled(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	cfg := remindersConfig()
	cfg.Enabled = false

	require.NoError(t, RegisterReminderJob(s, &fakeReminder{}, cfg, zap.NewNop(), time.Minute))
	assert.Empty(t, s.JobNames())
}

func TestScheduler_RejectsBadExpression(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	noop := func(context.Context) error { return nil }
	err := s.AddJob("bad", "not a cron", time.Second, noop)
	assert.Error(t, err)

	require.NoError(t, s.AddJob("tick", "@every 1h", time.Second, noop))
	require.NoError(t, s.AddJob("audit", "@every 1h", time.Second, noop))
	assert.Equal(t, []string{"audit", "tick"}, s.JobNames())
	require.NoError(t, s.RemoveJob("tick"))
	assert.Error(t, s.RemoveJob("tick"))
}

func TestScheduler_RunBoundsJobContext(t *testing.T) {
	s := NewScheduler(zap.NewNop())

	var deadline time.Time
	var hasDeadline bool
	s.run("probe", 50*time.Millisecond, func(ctx context.Context) error {
		deadline, hasDeadline = ctx.Deadline()
		return nil
	})
	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now(), deadline, time.Second)

	assert.NotPanics(t, func() {
		s.run("failing", time.Second, func(context.Context) error { return errors.New("boom") })
	})
}

func TestScheduler_StopCancelsRunningJobs(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	s.Start()

	done := make(chan error, 1)
	go s.run("long", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("job was not cancelled")
	}
}
