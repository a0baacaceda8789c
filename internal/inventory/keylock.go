package inventory

import (
	"context"
	"sync"
	"time"

	"busbooking/internal/domain"
)

// lockTable serializes operations per key while letting unrelated keys
// proceed in parallel. Entries are reference counted and removed once
// the last waiter is gone, so the table does not grow with the number
// of journeys ever seen.
type lockTable struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	ch   chan struct{}
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{entries: make(map[string]*lockEntry)}
}

// acquire blocks until the key's critical section is held, the wait
// elapses (BusyError), or ctx is done. On success the returned func
// releases the section and must be called exactly once.
func (t *lockTable) acquire(ctx context.Context, key string, wait time.Duration) (func(), error) {
	t.mu.Lock()
	e := t.entries[key]
	if e == nil {
		e = &lockEntry{ch: make(chan struct{}, 1)}
		t.entries[key] = e
	}
	e.refs++
	t.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case e.ch <- struct{}{}:
		return func() {
			<-e.ch
			t.unref(key, e)
		}, nil
	case <-timer.C:
		t.unref(key, e)
		return nil, domain.BusyError{Key: key}
	case <-ctx.Done():
		t.unref(key, e)
		return nil, ctx.Err()
	}
}

func (t *lockTable) unref(key string, e *lockEntry) {
	t.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(t.entries, key)
	}
	t.mu.Unlock()
}
