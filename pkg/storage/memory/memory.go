// Package memory provides an in-memory implementation of transport.TurnStore
// for testing and lightweight deployments. Turns are lost when the process
// restarts. Optional LRU eviction limits memory usage.
package memory

import (
	"container/list"
	"context"
	"sort"
	"sync"

	"github.com/dialbridge/dialbridge/pkg/api"
	"github.com/dialbridge/dialbridge/pkg/storage"
	"github.com/dialbridge/dialbridge/pkg/transport"
)

// entry holds a stored turn and its metadata.
type entry struct {
	turn    *api.Turn
	seq     uint64        // insertion order, breaks CreatedAt ties
	lruElem *list.Element // position in LRU list
}

// Store is an in-memory TurnStore with optional LRU eviction.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	lruList *list.List // front = most recently saved, back = oldest
	maxSize int        // 0 = unlimited
	nextSeq uint64
}

// Ensure Store implements transport.TurnStore at compile time.
var _ transport.TurnStore = (*Store)(nil)

// New creates a new in-memory store. If maxSize is 0, the store grows
// without limit. If maxSize > 0, the oldest turn is evicted when the
// limit is reached.
func New(maxSize int) *Store {
	return &Store{
		entries: make(map[string]*entry),
		lruList: list.New(),
		maxSize: maxSize,
	}
}

// SaveTurn persists a turn in memory.
func (s *Store) SaveTurn(_ context.Context, turn *api.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[turn.ID]; exists {
		return storage.ErrConflict
	}

	// Evict if at capacity.
	if s.maxSize > 0 && len(s.entries) >= s.maxSize {
		s.evictOldest()
	}

	s.nextSeq++
	elem := s.lruList.PushFront(turn.ID)
	s.entries[turn.ID] = &entry{
		turn:    turn,
		seq:     s.nextSeq,
		lruElem: elem,
	}
	return nil
}

// GetTurn retrieves a turn by ID.
func (s *Store) GetTurn(_ context.Context, id string) (*api.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return e.turn, nil
}

// ListTurns returns the turns recorded for callID with cursor-based
// pagination.
func (s *Store) ListTurns(_ context.Context, callID string, opts transport.ListOptions) (*api.TurnList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []*entry
	for _, e := range s.entries {
		if e.turn.CallID == callID {
			matches = append(matches, e)
		}
	}

	desc := opts.Order == "desc"
	sort.Slice(matches, func(i, j int) bool {
		if desc {
			return matches[i].seq > matches[j].seq
		}
		return matches[i].seq < matches[j].seq
	})

	turns := make([]*api.Turn, len(matches))
	for i, e := range matches {
		turns[i] = e.turn
	}

	// Apply cursor-based pagination.
	if opts.After != "" {
		idx := indexOf(turns, opts.After)
		if idx >= 0 {
			turns = turns[idx+1:]
		} else {
			turns = nil
		}
	} else if opts.Before != "" {
		idx := indexOf(turns, opts.Before)
		if idx > 0 {
			turns = turns[:idx]
		} else {
			turns = nil
		}
	}

	limit := opts.EffectiveLimit()
	hasMore := len(turns) > limit
	if hasMore {
		turns = turns[:limit]
	}

	result := &api.TurnList{
		Object:  "list",
		Data:    turns,
		HasMore: hasMore,
	}
	if len(turns) > 0 {
		result.FirstID = turns[0].ID
		result.LastID = turns[len(turns)-1].ID
	}
	if result.Data == nil {
		result.Data = []*api.Turn{}
	}
	return result, nil
}

// HealthCheck always returns nil for the in-memory store.
func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored turns.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func indexOf(turns []*api.Turn, id string) int {
	for i, t := range turns {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// evictOldest removes the least recently saved entry.
// Must be called with s.mu held.
func (s *Store) evictOldest() {
	back := s.lruList.Back()
	if back == nil {
		return
	}

	id := back.Value.(string)
	s.lruList.Remove(back)
	delete(s.entries, id)
}
