package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rently/backend/internal/infrastructure/config"
)

type fakeRunner struct {
	mu    sync.Mutex
	runs  int
	err   error
	block chan struct{}
}

func (r *fakeRunner) RunAll(ctx context.Context) error {
	r.mu.Lock()
	r.runs++
	r.mu.Unlock()
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return r.err
}

func (r *fakeRunner) runCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

func waitForRuns(t *testing.T, runner *fakeRunner, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if runner.runCount() >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected at least %d runs, got %d", want, runner.runCount())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func newTestScheduler(runner ScanRunner) *TriggerScheduler {
	cfg := config.SchedulerConfig{
		Enabled:      true,
		ScanInterval: 20 * time.Millisecond,
		ScanTimeout:  time.Second,
	}
	return NewTriggerScheduler(cfg, runner, NewLocalScanLock(), zap.NewNop())
}

func TestTriggerScheduler_RunsImmediatelyAndOnTicks(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestScheduler(runner)

	require.NoError(t, s.Start(context.Background()))
	waitForRuns(t, runner, 2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestTriggerScheduler_StartIsIdempotent(t *testing.T) {
	runner := &fakeRunner{}
	s := newTestScheduler(runner)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))

	waitForRuns(t, runner, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
}

func TestTriggerScheduler_StopCancelsInFlightScan(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	s := newTestScheduler(runner)

	require.NoError(t, s.Start(context.Background()))
	waitForRuns(t, runner, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestTriggerScheduler_KeepsTickingAfterScanError(t *testing.T) {
	runner := &fakeRunner{err: assert.AnError}
	s := newTestScheduler(runner)

	require.NoError(t, s.Start(context.Background()))
	waitForRuns(t, runner, 2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestTriggerScheduler_DefaultsMissingIntervals(t *testing.T) {
	s := NewTriggerScheduler(config.SchedulerConfig{}, &fakeRunner{}, NewLocalScanLock(), zap.NewNop())

	assert.Equal(t, 24*time.Hour, s.config.ScanInterval)
	assert.Equal(t, 10*time.Minute, s.config.ScanTimeout)
}

func TestLocalScanLock_AcquireAndRelease(t *testing.T) {
	lock := NewLocalScanLock()
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)

	again, err := lock.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, again)

	require.NoError(t, lock.Release(ctx))

	acquired, err = lock.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, lock.Release(ctx))
}

func TestTriggerScheduler_SkipsWhenLockHeld(t *testing.T) {
	runner := &fakeRunner{}
	lock := NewLocalScanLock()

	held, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	require.True(t, held)

	cfg := config.SchedulerConfig{ScanInterval: time.Hour, ScanTimeout: time.Second}
	s := NewTriggerScheduler(cfg, runner, lock, zap.NewNop())
	s.runScan(context.Background())

	assert.Equal(t, 0, runner.runCount())
	require.NoError(t, lock.Release(context.Background()))
}
