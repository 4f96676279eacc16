package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"compass_sync/internal/domain"
)

// Sweeper defines the interface for backfill sweeps.
type Sweeper interface {
	Sweep(ctx context.Context) (*domain.SweepStats, error)
}

type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

func NewScheduler(sweeper Sweeper, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "timeout", s.timeout)

	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *Scheduler) runSweep(ctx context.Context) {
	sweepCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		sweepCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	_, err := s.sweeper.Sweep(sweepCtx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSweepInProgress):
		s.logger.Debug("sweep skipped, previous sweep still running")
	default:
		s.logger.Error("sweep failed", "error", err)
	}
}
