package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"prism/pkg/domain"
)

func TestSQLiteStorePersistAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prism.db")
	store, err := NewStore(path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if _, err := store.Load(ctx, "startups"); !errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty on fresh database, got %v", err)
	}
	if err := store.Save(ctx, "startups", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "startups", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	t.Cleanup(func() { _ = reloaded.Close() })
	payload, err := reloaded.Load(ctx, "startups")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(payload) != `[{"id":"a"}]` {
		t.Fatalf("unexpected payload %s", payload)
	}
	var rows int
	if err := reloaded.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected upsert to keep one row, got %d", rows)
	}
	if reloaded.Path() != path {
		t.Fatalf("expected path %s, got %s", path, reloaded.Path())
	}
}

func TestSQLiteStoreLoadAfterClose(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "prism.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	_ = store.Close()
	if _, err := store.Load(context.Background(), "startups"); err == nil || errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("expected backend error after close, got %v", err)
	}
	if err := store.Save(context.Background(), "startups", []byte(`[]`)); err == nil {
		t.Fatalf("expected save error after close")
	}
}
