package transport

import (
	"context"
	"sync"
)

// CallLocks serializes work per call id. Notifications for the same call
// wait for each other; different calls proceed concurrently. Entries are
// reference counted and removed when the last holder or waiter leaves.
//
// All methods are safe for concurrent access.
type CallLocks struct {
	mu      sync.Mutex
	entries map[string]*callLock
}

type callLock struct {
	sem  chan struct{}
	refs int
}

// NewCallLocks creates an empty lock table.
func NewCallLocks() *CallLocks {
	return &CallLocks{
		entries: make(map[string]*callLock),
	}
}

// Lock blocks until the lock for callID is acquired or ctx is done.
// On success the returned function releases the lock and must be called
// exactly once.
func (l *CallLocks) Lock(ctx context.Context, callID string) (func(), error) {
	l.mu.Lock()
	cl, ok := l.entries[callID]
	if !ok {
		cl = &callLock{sem: make(chan struct{}, 1)}
		l.entries[callID] = cl
	}
	cl.refs++
	l.mu.Unlock()

	select {
	case cl.sem <- struct{}{}:
		return func() {
			<-cl.sem
			l.release(callID, cl)
		}, nil
	case <-ctx.Done():
		l.release(callID, cl)
		return nil, ctx.Err()
	}
}

// Len returns the number of call ids currently held or waited on.
func (l *CallLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *CallLocks) release(callID string, cl *callLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cl.refs--
	if cl.refs == 0 {
		delete(l.entries, callID)
	}
}
