package service

import "sync"

// topicLocks serializes writes per exact topic string.
type topicLocks struct {
	mu    sync.Mutex
	locks map[string]*topicLock
}

type topicLock struct {
	sync.Mutex
	refs int
}

func newTopicLocks() *topicLocks {
	return &topicLocks{locks: make(map[string]*topicLock)}
}

// lock blocks until topic is free and returns the matching unlock.
func (l *topicLocks) lock(topic string) func() {
	l.mu.Lock()
	tl, ok := l.locks[topic]
	if !ok {
		tl = &topicLock{}
		l.locks[topic] = tl
	}
	tl.refs++
	l.mu.Unlock()

	tl.Lock()

	return func() {
		tl.Unlock()

		l.mu.Lock()
		tl.refs--
		if tl.refs == 0 {
			delete(l.locks, topic)
		}
		l.mu.Unlock()
	}
}
