package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"prism/pkg/domain"
)

var _ domain.SnapshotSlot = (*Slot)(nil)

// Slot stores each snapshot key as one JSON object named <prefix><key>.json.
type Slot struct {
	store  Store
	prefix string
}

// NewSlot adapts store to the snapshot slot contract.
func NewSlot(store Store, prefix string) *Slot {
	return &Slot{store: store, prefix: prefix}
}

// ObjectKey returns the object name used for key.
func (s *Slot) ObjectKey(key string) string {
	return s.prefix + key + ".json"
}

// Load reads the object for key; a missing object reports domain.ErrSlotEmpty.
func (s *Slot) Load(ctx context.Context, key string) ([]byte, error) {
	_, rc, err := s.store.Get(ctx, s.ObjectKey(key))
	if errors.Is(err, ErrNotFound) {
		return nil, domain.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.ObjectKey(key), err)
	}
	defer func() { _ = rc.Close() }()
	payload, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.ObjectKey(key), err)
	}
	return payload, nil
}

// Save overwrites the object for key with payload.
func (s *Slot) Save(ctx context.Context, key string, payload []byte) error {
	if _, err := s.store.Put(ctx, s.ObjectKey(key), bytes.NewReader(payload), PutOptions{ContentType: "application/json"}); err != nil {
		return fmt.Errorf("put %s: %w", s.ObjectKey(key), err)
	}
	return nil
}

// Close releases the underlying store when it holds resources.
func (s *Slot) Close() error {
	if c, ok := s.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Driver reports the backing store driver.
func (s *Slot) Driver() Driver { return s.store.Driver() }
