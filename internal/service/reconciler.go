package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"compass_sync/internal/config"
	"compass_sync/internal/domain"
)

// Reconciler keeps one cached answer per topic while primary and financial
// records arrive independently.
type Reconciler struct {
	answers    AnswerStore
	financials FinancialStore
	txManager  TransactionManager
	publisher  Publisher
	orphans    *orphanBuffer
	locks      *topicLocks
	logger     *slog.Logger
	now        func() time.Time
}

func NewReconciler(
	answers AnswerStore,
	financials FinancialStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.CacheConfig,
) *Reconciler {
	r := &Reconciler{
		answers:    answers,
		financials: financials,
		txManager:  txManager,
		publisher:  publisher,
		locks:      newTopicLocks(),
		logger:     logger.With("component", "reconciler"),
		now:        time.Now,
	}
	if cfg.OrphanTTL > 0 {
		r.orphans = newOrphanBuffer(cfg.OrphanTTL, func() time.Time { return r.now() })
	}
	return r
}

// UpsertPrimary creates or overwrites the primary fields of the answer for
// topic. An already attached financial record is kept. A buffered orphan
// for topic is attached in the same transaction.
func (r *Reconciler) UpsertPrimary(ctx context.Context, topic string, rec *domain.LeaningRecord) (*domain.CachedAnswer, error) {
	unlock := r.locks.lock(topic)
	defer unlock()

	primary := *rec
	primary.Topic = topic

	var pending orphan
	var hasPending bool
	if r.orphans != nil {
		pending, hasPending = r.orphans.take(topic)
	}

	var (
		answer  *domain.CachedAnswer
		created bool
	)
	err := r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		answer, created, err = r.answers.UpsertPrimary(txCtx, &primary, r.now())
		if err != nil {
			return fmt.Errorf("upsert answer: %w", err)
		}

		if hasPending {
			if err := r.financials.Replace(txCtx, answer.ID, pending.rec); err != nil {
				return fmt.Errorf("replay orphaned financial: %w", err)
			}
			answer.Financial = pending.rec
			return nil
		}

		financials, err := r.financials.GetByAnswerIDs(txCtx, []int64{answer.ID})
		if err != nil {
			return fmt.Errorf("load financial: %w", err)
		}
		answer.Financial = financials[answer.ID]
		return nil
	})
	reconcileTotal.WithLabelValues("upsert_primary", outcome(err)).Inc()
	if err != nil {
		if hasPending {
			r.orphans.restore(topic, pending)
		}
		return nil, err
	}

	r.logger.Debug("upserted primary record",
		"topic", topic,
		"created", created,
		"replayed_orphan", hasPending,
	)
	r.publish(ctx, domain.ActionPrimaryUpserted, topic, answer)
	if hasPending {
		r.publish(ctx, domain.ActionFinancialAttached, topic, answer)
	}

	return answer, nil
}

// AttachFinancial attaches rec to the answer for topic, replacing any
// earlier financial record, all-or-nothing. With no primary record the
// attach is a logged no-op (or buffered, when enabled) and not an error.
func (r *Reconciler) AttachFinancial(ctx context.Context, topic string, rec *domain.FinancialContributionsRecord) (domain.AttachResult, error) {
	unlock := r.locks.lock(topic)
	defer unlock()

	var answerID int64
	err := r.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		id, found, err := r.answers.LockIDByTopic(txCtx, topic)
		if err != nil {
			return fmt.Errorf("find answer: %w", err)
		}
		if !found {
			return domain.ErrOrphanedFinancialAttach
		}
		answerID = id

		if err := r.financials.Replace(txCtx, id, rec); err != nil {
			return fmt.Errorf("replace financial: %w", err)
		}
		return nil
	})

	if errors.Is(err, domain.ErrOrphanedFinancialAttach) {
		reconcileTotal.WithLabelValues("attach_financial", "orphaned").Inc()
		return r.handleOrphan(topic, rec), nil
	}
	reconcileTotal.WithLabelValues("attach_financial", outcome(err)).Inc()
	if err != nil {
		return domain.AttachResult{}, err
	}

	r.logger.Debug("attached financial record", "topic", topic, "answer_id", answerID)

	if r.publisher != nil {
		answer, err := r.Get(ctx, topic)
		if err != nil {
			r.logger.Warn("failed to load answer for change event", "topic", topic, "error", err)
		} else if answer != nil {
			r.publish(ctx, domain.ActionFinancialAttached, topic, answer)
		}
	}

	return domain.AttachResult{}, nil
}

func (r *Reconciler) handleOrphan(topic string, rec *domain.FinancialContributionsRecord) domain.AttachResult {
	if r.orphans == nil {
		orphanedAttachTotal.WithLabelValues("dropped").Inc()
		r.logger.Warn("dropping financial record without primary record",
			"topic", topic,
			"error", domain.ErrOrphanedFinancialAttach,
		)
		return domain.AttachResult{Orphaned: true}
	}

	r.orphans.put(topic, rec)
	orphanedAttachTotal.WithLabelValues("buffered").Inc()
	r.logger.Warn("buffering financial record without primary record",
		"topic", topic,
		"error", domain.ErrOrphanedFinancialAttach,
	)
	return domain.AttachResult{Orphaned: true, Buffered: true}
}

// Remove deletes the answer for topic together with its financial record.
// Removing an absent topic is not an error.
func (r *Reconciler) Remove(ctx context.Context, topic string) error {
	unlock := r.locks.lock(topic)
	defer unlock()

	if r.orphans != nil {
		r.orphans.drop(topic)
	}

	existed, err := r.answers.Delete(ctx, topic)
	reconcileTotal.WithLabelValues("remove", outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("delete answer: %w", err)
	}

	if existed {
		r.logger.Debug("removed answer", "topic", topic)
		r.publish(ctx, domain.ActionRemoved, topic, nil)
	}
	return nil
}

// ListAll returns a committed snapshot of every answer, most recently
// persisted first.
func (r *Reconciler) ListAll(ctx context.Context) ([]domain.CachedAnswer, error) {
	var answers []domain.CachedAnswer
	err := r.txManager.WithReadTransaction(ctx, func(txCtx context.Context) error {
		var err error
		answers, err = r.answers.List(txCtx)
		if err != nil {
			return fmt.Errorf("list answers: %w", err)
		}
		if len(answers) == 0 {
			return nil
		}

		ids := make([]int64, len(answers))
		for i, a := range answers {
			ids[i] = a.ID
		}
		financials, err := r.financials.GetByAnswerIDs(txCtx, ids)
		if err != nil {
			return fmt.Errorf("load financial: %w", err)
		}
		for i := range answers {
			answers[i].Financial = financials[answers[i].ID]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// Get returns the answer for topic, or nil when none is cached.
func (r *Reconciler) Get(ctx context.Context, topic string) (*domain.CachedAnswer, error) {
	var answer *domain.CachedAnswer
	err := r.txManager.WithReadTransaction(ctx, func(txCtx context.Context) error {
		var err error
		answer, err = r.answers.GetByTopic(txCtx, topic)
		if err != nil || answer == nil {
			return err
		}
		financials, err := r.financials.GetByAnswerIDs(txCtx, []int64{answer.ID})
		if err != nil {
			return err
		}
		answer.Financial = financials[answer.ID]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get answer: %w", err)
	}
	return answer, nil
}

// MissingFinancialTopics lists topics promised financial data that have
// none attached.
func (r *Reconciler) MissingFinancialTopics(ctx context.Context) ([]string, error) {
	return r.answers.ListMissingFinancial(ctx)
}

func (r *Reconciler) publish(ctx context.Context, action domain.ChangeAction, topic string, answer *domain.CachedAnswer) {
	if r.publisher == nil {
		return
	}
	event := &domain.ChangeEvent{Action: action, Topic: topic, Answer: answer}
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.Warn("failed to publish change",
			"topic", topic,
			"action", action,
			"error", err,
		)
	}
}
