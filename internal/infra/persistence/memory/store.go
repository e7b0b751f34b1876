// Package memory provides an in-memory snapshot slot used for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sync"

	"prism/pkg/domain"
)

// Compile-time contract assertion ensuring Store satisfies the slot interface.
var _ domain.SnapshotSlot = (*Store)(nil)

// Store keeps snapshot payloads in process memory keyed by slot key.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewStore constructs an empty in-memory slot.
func NewStore() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Load returns a copy of the payload stored under key.
func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.values[key]
	if !ok {
		return nil, domain.ErrSlotEmpty
	}
	return clonePayload(payload), nil
}

// Save replaces the payload stored under key.
func (s *Store) Save(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = clonePayload(payload)
	return nil
}

// Close is a no-op for the memory slot.
func (s *Store) Close() error { return nil }

func clonePayload(in []byte) []byte {
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
