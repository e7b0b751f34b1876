package domain

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by SnapshotSlot.Load when nothing has been saved
// under the key yet.
var ErrSlotEmpty = errors.New("snapshot slot is empty")

// SnapshotSlot is a single-writer key-value slot holding the serialized
// collection. Save always replaces the previous payload in full.
type SnapshotSlot interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Close() error
}
