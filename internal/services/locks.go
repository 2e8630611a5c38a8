package services

import "sync"

// eventLocks hands out one mutex per event ID so mutations of the same
// event run one at a time. A lock outlives a deleted event until every
// holder releases it; late holders then fail on the missing row.
type eventLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for id, creating it on first use.
func (l *eventLocks) get(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// forget drops the mutex for id after the event is deleted.
func (l *eventLocks) forget(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, id)
}
