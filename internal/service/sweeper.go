package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"compass_sync/internal/config"
	"compass_sync/internal/domain"
	"compass_sync/internal/pacing"
)

// Sweeper backfills financial records for cached answers that were
// promised one but never received it. At most one sweep runs at a time.
type Sweeper struct {
	cache       Cache
	source      Source
	pace        time.Duration
	maxInFlight int
	sweeping    atomic.Bool
	logger      *slog.Logger
}

func NewSweeper(cache Cache, source Source, logger *slog.Logger, cfg config.SweepConfig) *Sweeper {
	maxInFlight := cfg.MaxInFlight
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Sweeper{
		cache:       cache,
		source:      source,
		pace:        cfg.Pace,
		maxInFlight: maxInFlight,
		logger:      logger.With("component", "sweeper", "source", source.ID()),
	}
}

// Sweep attempts every candidate once and reports the counts. A call made
// while another sweep is running returns ErrSweepInProgress immediately.
func (s *Sweeper) Sweep(ctx context.Context) (*domain.SweepStats, error) {
	if !s.sweeping.CompareAndSwap(false, true) {
		sweepRunsTotal.WithLabelValues("skipped").Inc()
		s.logger.Debug("sweep already in progress, skipping")
		return nil, domain.ErrSweepInProgress
	}
	defer s.sweeping.Store(false)

	startTime := time.Now()

	topics, err := s.cache.MissingFinancialTopics(ctx)
	if err != nil {
		sweepRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("list missing financial: %w", err)
	}

	stats := &domain.SweepStats{Candidates: len(topics)}
	if len(topics) == 0 {
		sweepRunsTotal.WithLabelValues("completed").Inc()
		s.logger.Info("no missing financial contributions found")
		return stats, nil
	}

	s.logger.Info("starting sweep", "candidates", len(topics), "pace", s.pace)

	limit := rate.Inf
	if s.pace > 0 {
		limit = rate.Every(s.pace)
	}
	limiter := rate.NewLimiter(limit, 1)
	pacedCtx := pacing.WithLimiter(ctx, limiter)

	var succeeded, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.maxInFlight)

	var waitErr error
	for i, topic := range topics {
		if waitErr = limiter.Wait(ctx); waitErr != nil {
			failed.Add(int64(len(topics) - i))
			break
		}

		topic := topic
		g.Go(func() error {
			if s.backfill(pacedCtx, topic) {
				succeeded.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	stats.Succeeded = int(succeeded.Load())
	stats.Failed = int(failed.Load())
	stats.Duration = time.Since(startTime)

	sweepItemsTotal.WithLabelValues("succeeded").Add(float64(stats.Succeeded))
	sweepItemsTotal.WithLabelValues("failed").Add(float64(stats.Failed))
	sweepDuration.Observe(stats.Duration.Seconds())

	s.logger.Info("sweep completed",
		"candidates", stats.Candidates,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"duration", stats.Duration,
	)

	if waitErr != nil {
		sweepRunsTotal.WithLabelValues("cancelled").Inc()
		return stats, fmt.Errorf("sweep interrupted: %w", waitErr)
	}
	sweepRunsTotal.WithLabelValues("completed").Inc()
	return stats, nil
}

// Running reports whether a sweep is in flight.
func (s *Sweeper) Running() bool {
	return s.sweeping.Load()
}

func (s *Sweeper) backfill(ctx context.Context, topic string) bool {
	rec, err := s.source.GetFinancialContributions(ctx, topic)
	if err != nil {
		s.logger.Warn("failed to fetch financial contributions", "topic", topic, "error", err)
		return false
	}

	res, err := s.cache.AttachFinancial(ctx, topic, rec)
	if err != nil {
		s.logger.Warn("failed to attach financial contributions", "topic", topic, "error", err)
		return false
	}
	if res.Orphaned {
		s.logger.Warn("answer disappeared during sweep", "topic", topic)
		return false
	}

	s.logger.Debug("backfilled financial contributions", "topic", topic)
	return true
}
