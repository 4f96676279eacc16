package service

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"compass_sync/internal/domain"
)

// memoryStore is an in-process stand-in for the postgres stores with
// all-or-nothing transactions.
type memoryStore struct {
	mu         sync.Mutex
	txMu       sync.Mutex
	nextID     int64
	answers    map[string]domain.CachedAnswer
	financials map[int64]*domain.FinancialContributionsRecord

	failReplace error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		answers:    make(map[string]domain.CachedAnswer),
		financials: make(map[int64]*domain.FinancialContributionsRecord),
	}
}

func (m *memoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	answers := maps.Clone(m.answers)
	financials := maps.Clone(m.financials)
	nextID := m.nextID
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.answers, m.financials, m.nextID = answers, financials, nextID
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memoryStore) WithReadTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx)
}

func (m *memoryStore) UpsertPrimary(_ context.Context, rec *domain.LeaningRecord, persistedAt time.Time) (*domain.CachedAnswer, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, exists := m.answers[rec.Topic]
	if !exists {
		m.nextID++
		a.ID = m.nextID
	}
	a.Topic = rec.Topic
	a.Lean = rec.Lean
	a.Rating = rec.Rating
	a.Description = rec.Description
	a.HasFinancialContributions = rec.HasFinancialContributions
	a.PersistedAt = persistedAt
	m.answers[rec.Topic] = a

	out := a
	return &out, !exists, nil
}

func (m *memoryStore) LockIDByTopic(_ context.Context, topic string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.answers[topic]
	return a.ID, ok, nil
}

func (m *memoryStore) GetByTopic(_ context.Context, topic string) (*domain.CachedAnswer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.answers[topic]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memoryStore) Delete(_ context.Context, topic string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.answers[topic]
	if !ok {
		return false, nil
	}
	delete(m.answers, topic)
	delete(m.financials, a.ID)
	return true, nil
}

func (m *memoryStore) List(_ context.Context) ([]domain.CachedAnswer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]domain.CachedAnswer, 0, len(m.answers))
	for _, a := range m.answers {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].PersistedAt.Equal(list[j].PersistedAt) {
			return list[i].PersistedAt.After(list[j].PersistedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (m *memoryStore) ListMissingFinancial(ctx context.Context) ([]string, error) {
	list, _ := m.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	var topics []string
	for _, a := range list {
		if _, ok := m.financials[a.ID]; a.HasFinancialContributions && !ok {
			topics = append(topics, a.Topic)
		}
	}
	return topics, nil
}

func (m *memoryStore) Replace(_ context.Context, answerID int64, rec *domain.FinancialContributionsRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReplace != nil {
		return m.failReplace
	}
	m.financials[answerID] = rec
	return nil
}

func (m *memoryStore) GetByAnswerIDs(_ context.Context, answerIDs []int64) (map[int64]*domain.FinancialContributionsRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make(map[int64]*domain.FinancialContributionsRecord)
	for _, id := range answerIDs {
		if f, ok := m.financials[id]; ok {
			result[id] = f
		}
	}
	return result, nil
}
