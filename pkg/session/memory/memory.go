// Package memory provides an in-memory implementation of session.Store.
// Entries live for the lifetime of the process; there is no eviction.
package memory

import (
	"context"
	"sync"

	"github.com/dialbridge/dialbridge/pkg/debug"
	"github.com/dialbridge/dialbridge/pkg/session"
)

// Store is an in-memory session registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// Ensure Store implements session.Store at compile time.
var (
	_ session.Store   = (*Store)(nil)
	_ session.Counter = (*Store)(nil)
)

// New creates an empty in-memory registry.
func New() *Store {
	return &Store{sessions: make(map[string]string)}
}

// Get returns the engine session for callID, or session.NoSession.
func (s *Store) Get(_ context.Context, callID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.sessions[callID]
	if !ok {
		return session.NoSession, nil
	}
	return id, nil
}

// Set records sessionID as the current engine session for callID.
func (s *Store) Set(_ context.Context, callID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.sessions[callID]
	s.sessions[callID] = sessionID
	if prev != sessionID {
		debug.Log("session", "session mapped", "call_id", callID, "session_id", sessionID, "previous", prev)
	}
	return nil
}

// Len returns the number of calls with a recorded session.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
