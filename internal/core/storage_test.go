package core

import (
	"context"
	"path/filepath"
	"testing"

	"prism/internal/blob"
)

func TestOpenSlotDrivers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cases := []StorageConfig{
		{Driver: "memory"},
		{Driver: "sqlite", SQLitePath: filepath.Join(dir, "prism.db")},
		{Driver: "blob", Blob: blob.Config{Driver: "memory"}, BlobPrefix: "prism/"},
		{Driver: "blob", Blob: blob.Config{Driver: "fs", FSRoot: filepath.Join(dir, "blobs")}},
	}
	for _, cfg := range cases {
		slot, err := OpenSlot(ctx, cfg)
		if err != nil {
			t.Fatalf("OpenSlot(%s): %v", cfg.Driver, err)
		}
		store := newTestStore(t, slot)
		if _, err := store.Add(ctx, fields("Acme", "Fintech")); err != nil {
			t.Fatalf("%s add: %v", cfg.Driver, err)
		}
		reloaded := newTestStore(t, slot)
		if reloaded.Len() != 1 {
			t.Fatalf("%s: expected persisted record, got %d", cfg.Driver, reloaded.Len())
		}
		if err := slot.Close(); err != nil {
			t.Fatalf("%s close: %v", cfg.Driver, err)
		}
	}
}

func TestOpenSlotDefaultsToSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.db")
	slot, err := OpenSlot(context.Background(), StorageConfig{SQLitePath: path})
	if err != nil {
		t.Fatalf("OpenSlot: %v", err)
	}
	defer func() { _ = slot.Close() }()
	if _, ok := slot.(interface{ Path() string }); !ok {
		t.Fatalf("expected sqlite slot, got %T", slot)
	}
}

func TestOpenSlotRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenSlot(context.Background(), StorageConfig{Driver: "etcd"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
	if _, err := OpenSlot(context.Background(), StorageConfig{Driver: "blob", Blob: blob.Config{Driver: "tape"}}); err == nil {
		t.Fatalf("expected unknown blob driver error")
	}
}
