package memory

import (
	"context"
	"errors"
	"testing"

	"prism/pkg/domain"
)

func TestLoadMissingKeyReportsEmpty(t *testing.T) {
	store := NewStore()
	if _, err := store.Load(context.Background(), "startups"); !errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty, got %v", err)
	}
}

func TestSaveReplacesAndCopiesPayload(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	payload := []byte(`[{"id":"1"}]`)
	if err := store.Save(ctx, "startups", payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload[0] = 'x'

	got, err := store.Load(ctx, "startups")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `[{"id":"1"}]` {
		t.Fatalf("payload aliased caller buffer: %s", got)
	}
	got[0] = 'y'
	again, _ := store.Load(ctx, "startups")
	if again[0] != '[' {
		t.Fatalf("load returned shared buffer")
	}

	if err := store.Save(ctx, "startups", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = store.Load(ctx, "startups")
	if string(got) != `[]` {
		t.Fatalf("expected overwrite, got %s", got)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	if err := store.Save(ctx, "a", []byte("1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Load(ctx, "b"); !errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("expected other key empty, got %v", err)
	}
}
