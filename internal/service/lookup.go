package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"compass_sync/internal/domain"
)

// LookupService runs user-triggered lookups: it fetches the leaning record,
// caches it and, when the backend promises financial data, fetches and
// attaches that in the background. Only the most recent lookup may write;
// completions of superseded lookups are discarded.
type LookupService struct {
	source           Source
	cache            Cache
	financialTimeout time.Duration
	generation       atomic.Uint64
	background       sync.WaitGroup
	logger           *slog.Logger
}

func NewLookupService(source Source, cache Cache, logger *slog.Logger, financialTimeout time.Duration) *LookupService {
	return &LookupService{
		source:           source,
		cache:            cache,
		financialTimeout: financialTimeout,
		logger:           logger.With("component", "lookup", "source", source.ID()),
	}
}

// Lookup fetches and caches the answer for topic. It returns ErrEmptyTopic
// for blank input and ErrStaleLookup when a newer lookup started before
// this one completed.
func (s *LookupService) Lookup(ctx context.Context, topic string) (*domain.LookupResult, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, domain.ErrEmptyTopic
	}

	gen := s.generation.Add(1)

	rec, err := s.source.GetPoliticalLeaning(ctx, topic)
	if err != nil {
		lookupTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("lookup %q: %w", topic, err)
	}

	if s.generation.Load() != gen {
		lookupTotal.WithLabelValues("stale").Inc()
		s.logger.Debug("discarding stale lookup", "topic", topic, "generation", gen)
		return nil, domain.ErrStaleLookup
	}

	answer, err := s.cache.UpsertPrimary(ctx, topic, rec)
	if err != nil {
		lookupTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("cache %q: %w", topic, err)
	}
	lookupTotal.WithLabelValues("ok").Inc()

	if answer.NeedsFinancial() {
		s.fetchFinancial(context.WithoutCancel(ctx), topic)
	}

	return &domain.LookupResult{Answer: answer, Generation: gen}, nil
}

// Wait blocks until background financial fetches have finished.
func (s *LookupService) Wait() {
	s.background.Wait()
}

func (s *LookupService) fetchFinancial(ctx context.Context, topic string) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()

		if s.financialTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.financialTimeout)
			defer cancel()
		}

		rec, err := s.source.GetFinancialContributions(ctx, topic)
		if err != nil {
			s.logger.Warn("failed to fetch financial contributions", "topic", topic, "error", err)
			return
		}

		if _, err := s.cache.AttachFinancial(ctx, topic, rec); err != nil {
			s.logger.Warn("failed to attach financial contributions", "topic", topic, "error", err)
		}
	}()
}
