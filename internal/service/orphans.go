package service

import (
	"sync"
	"time"

	"compass_sync/internal/domain"
)

// orphanBuffer holds financial records that arrived before their primary
// record, until the primary shows up or the entry expires.
type orphanBuffer struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]orphan
}

type orphan struct {
	rec     *domain.FinancialContributionsRecord
	expires time.Time
}

func newOrphanBuffer(ttl time.Duration, now func() time.Time) *orphanBuffer {
	return &orphanBuffer{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]orphan),
	}
}

// put replaces any earlier orphan for topic.
func (b *orphanBuffer) put(topic string, rec *domain.FinancialContributionsRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for t, o := range b.entries {
		if !now.Before(o.expires) {
			delete(b.entries, t)
		}
	}
	b.entries[topic] = orphan{rec: rec, expires: now.Add(b.ttl)}
}

// take removes and returns the live orphan for topic, if any.
func (b *orphanBuffer) take(topic string) (orphan, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.entries[topic]
	if !ok {
		return orphan{}, false
	}
	delete(b.entries, topic)
	if !b.now().Before(o.expires) {
		return orphan{}, false
	}
	return o, true
}

// restore puts back an orphan taken by a write that was rolled back, unless
// a newer one arrived meanwhile.
func (b *orphanBuffer) restore(topic string, o orphan) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.entries[topic]; !ok {
		b.entries[topic] = o
	}
}

func (b *orphanBuffer) drop(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, topic)
}

func (b *orphanBuffer) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
