package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"compass_sync/internal/domain"
)

type AnswerStore interface {
	UpsertPrimary(ctx context.Context, rec *domain.LeaningRecord, persistedAt time.Time) (*domain.CachedAnswer, bool, error)
	LockIDByTopic(ctx context.Context, topic string) (int64, bool, error)
	GetByTopic(ctx context.Context, topic string) (*domain.CachedAnswer, error)
	Delete(ctx context.Context, topic string) (bool, error)
	List(ctx context.Context) ([]domain.CachedAnswer, error)
	ListMissingFinancial(ctx context.Context) ([]string, error)
}

type FinancialStore interface {
	Replace(ctx context.Context, answerID int64, rec *domain.FinancialContributionsRecord) error
	GetByAnswerIDs(ctx context.Context, answerIDs []int64) (map[int64]*domain.FinancialContributionsRecord, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	WithReadTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Source interface {
	ID() string
	GetPoliticalLeaning(ctx context.Context, topic string) (*domain.LeaningRecord, error)
	GetFinancialContributions(ctx context.Context, topic string) (*domain.FinancialContributionsRecord, error)
}

type Publisher interface {
	Publish(ctx context.Context, event *domain.ChangeEvent) error
	Close() error
}

// Cache is the write side of the reconciliation engine used by lookups and
// the backfill sweeper.
type Cache interface {
	UpsertPrimary(ctx context.Context, topic string, rec *domain.LeaningRecord) (*domain.CachedAnswer, error)
	AttachFinancial(ctx context.Context, topic string, rec *domain.FinancialContributionsRecord) (domain.AttachResult, error)
	MissingFinancialTopics(ctx context.Context) ([]string, error)
}
