// Package scheduler runs the periodic notification scan that records
// lease expiration and overdue payment alerts.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rently/backend/internal/infrastructure/config"
)

// ScanRunner executes one full notification scan.
type ScanRunner interface {
	RunAll(ctx context.Context) error
}

// TriggerScheduler periodically runs a ScanRunner under a ScanLock.
type TriggerScheduler struct {
	config config.SchedulerConfig
	runner ScanRunner
	lock   ScanLock
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewTriggerScheduler creates a scheduler. Missing intervals fall back to
// one scan per day with a ten minute timeout.
func NewTriggerScheduler(
	cfg config.SchedulerConfig,
	runner ScanRunner,
	lock ScanLock,
	logger *zap.Logger,
) *TriggerScheduler {
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = 24 * time.Hour
	}
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = 10 * time.Minute
	}
	return &TriggerScheduler{
		config: cfg,
		runner: runner,
		lock:   lock,
		logger: logger,
	}
}

// Start launches the scan loop. It runs one scan immediately so a freshly
// started instance does not wait a full interval before alerting.
func (s *TriggerScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Trigger scheduler started",
		zap.Duration("scan_interval", s.config.ScanInterval),
		zap.Duration("scan_timeout", s.config.ScanTimeout),
	)

	return nil
}

// Stop cancels the scan loop and waits for an in-flight scan to finish.
func (s *TriggerScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Trigger scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *TriggerScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	s.runScan(ctx)

	ticker := time.NewTicker(s.config.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runScan(ctx)
		}
	}
}

// runScan runs one scan if the lock is free. A held lock means another
// instance is already scanning, so the run is skipped rather than queued.
func (s *TriggerScheduler) runScan(ctx context.Context) {
	acquired, err := s.lock.Acquire(ctx)
	if err != nil {
		s.logger.Error("Failed to acquire scan lock", zap.Error(err))
		return
	}
	if !acquired {
		s.logger.Debug("Scan lock held elsewhere, skipping run")
		return
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			s.logger.Error("Failed to release scan lock", zap.Error(err))
		}
	}()

	scanCtx, cancel := context.WithTimeout(ctx, s.config.ScanTimeout)
	defer cancel()

	start := time.Now()
	if err := s.runner.RunAll(scanCtx); err != nil {
		s.logger.Error("Notification scan failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return
	}

	s.logger.Info("Notification scan completed",
		zap.Duration("duration", time.Since(start)),
	)
}
