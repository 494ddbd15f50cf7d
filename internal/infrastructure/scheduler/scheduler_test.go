package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingExecutor struct {
	mu    sync.Mutex
	jobs  []*Job
	fails int // fail this many executions before succeeding
}

func (e *recordingExecutor) Execute(_ context.Context, job *Job) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.jobs = append(e.jobs, job)
	if e.fails > 0 {
		e.fails--
		return errors.New("execution failed")
	}
	return nil
}

func (e *recordingExecutor) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.jobs)
}

func testConfig() SchedulerConfig {
	cfg := DefaultSchedulerConfig()
	cfg.MaxConcurrentJobs = 1
	cfg.JobTimeout = time.Second
	cfg.RetryAttempts = 2
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestScheduler_ExecutesSubmittedJob(t *testing.T) {
	executor := &recordingExecutor{}
	s := NewScheduler(testConfig(), executor, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	job := NewJob(JobTypeCloseDay, "2026-03-14", 0)
	require.NoError(t, s.SubmitJob(job))

	waitFor(t, func() bool { return executor.count() == 1 })
	waitFor(t, func() bool { return job.Status == JobStatusSuccess })
	assert.NotNil(t, job.StartedAt)
	assert.NotNil(t, job.CompletedAt)
}

func TestScheduler_RetriesFailedJob(t *testing.T) {
	executor := &recordingExecutor{fails: 1}
	s := NewScheduler(testConfig(), executor, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	job := NewJob(JobTypeCloseDay, "2026-03-14", 2)
	require.NoError(t, s.SubmitJob(job))

	// First attempt fails, the retry succeeds
	waitFor(t, func() bool { return job.Status == JobStatusSuccess })
	assert.GreaterOrEqual(t, executor.count(), 2)
	assert.Equal(t, 1, job.RetryCount)
}

func TestScheduler_SubmitWhenStopped(t *testing.T) {
	s := NewScheduler(testConfig(), &recordingExecutor{}, zap.NewNop())

	err := s.SubmitJob(NewJob(JobTypeCloseDay, "2026-03-14", 0))
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestScheduler_ScheduleCloseDay(t *testing.T) {
	executor := &recordingExecutor{}
	s := NewScheduler(testConfig(), executor, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	require.NoError(t, s.ScheduleCloseDay("2026-03-14"))

	waitFor(t, func() bool { return executor.count() == 1 })
	executor.mu.Lock()
	defer executor.mu.Unlock()
	assert.Equal(t, JobTypeCloseDay, executor.jobs[0].Type)
	assert.Equal(t, "2026-03-14", executor.jobs[0].Date)
}

func TestScheduler_StartIdempotent(t *testing.T) {
	s := NewScheduler(testConfig(), &recordingExecutor{}, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
}

func TestJob_RetryBookkeeping(t *testing.T) {
	job := NewJob(JobTypeCloseDay, "2026-03-14", 2)
	assert.Equal(t, JobStatusPending, job.Status)

	job.Start()
	assert.Equal(t, JobStatusRunning, job.Status)

	job.Fail("boom")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "boom", job.Error)
	assert.True(t, job.ShouldRetry())

	job.ScheduleRetry(time.Minute)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	assert.NotNil(t, job.NextRetryAt)
	assert.Empty(t, job.Error)

	job.Fail("boom again")
	job.ScheduleRetry(time.Minute)
	job.Fail("boom a third time")
	assert.False(t, job.ShouldRetry())
}

func TestParseCronSchedule(t *testing.T) {
	tests := []struct {
		name       string
		expr       string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{"empty uses defaults", "", 0, 30, false},
		{"standard spec", "30 0 * * *", 0, 30, false},
		{"early morning", "0 2 * * *", 2, 0, false},
		{"midday", "15 12 * * *", 12, 15, false},
		{"wildcards use defaults", "* * * * *", 0, 30, false},
		{"too few fields uses defaults", "30", 0, 30, false},
		{"minute out of range", "75 2 * * *", 0, 30, true},
		{"hour out of range", "0 25 * * *", 0, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseCronSchedule(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

func TestCronTriggerConfigFromSpec(t *testing.T) {
	cfg, err := CronTriggerConfigFromSpec("45 23 * * *")
	require.NoError(t, err)
	assert.Equal(t, 23, cfg.CloseDayHour)
	assert.Equal(t, 45, cfg.CloseDayMinute)
	assert.Equal(t, time.Minute, cfg.CheckInterval)
}

func TestCronTrigger_ManualTrigger(t *testing.T) {
	executor := &recordingExecutor{}
	s := NewScheduler(testConfig(), executor, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	trigger := NewCronTrigger(DefaultCronTriggerConfig(), s, zap.NewNop())
	require.NoError(t, trigger.TriggerManual("2026-03-14"))

	waitFor(t, func() bool { return executor.count() == 1 })
}

func TestCronTrigger_StartStop(t *testing.T) {
	s := NewScheduler(testConfig(), &recordingExecutor{}, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	cfg := DefaultCronTriggerConfig()
	cfg.CheckInterval = 10 * time.Millisecond
	trigger := NewCronTrigger(cfg, s, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, trigger.Start(ctx))
	require.NoError(t, trigger.Start(ctx)) // idempotent
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, trigger.Stop(ctx))
	require.NoError(t, trigger.Stop(ctx))
}

func TestCloseDayExecutor_RejectsUnknownJobType(t *testing.T) {
	executor := NewCloseDayExecutor(nil, nil)
	err := executor.Execute(context.Background(), &Job{Type: "UNKNOWN"})
	assert.ErrorIs(t, err, ErrInvalidJobType)
}
