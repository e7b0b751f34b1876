package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"prism/internal/infra/persistence/postgres/testutil"
	"prism/pkg/domain"
)

func openStub(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	t.Cleanup(restore)

	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, conn
}

func TestNewStoreCreatesStateTable(t *testing.T) {
	_, conn := openStub(t)
	var sawDDL bool
	for _, stmt := range conn.Execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE IF NOT EXISTS STATE") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected state table DDL, got execs: %v", conn.Execs)
	}
}

func TestNewStoreUsesDefaultDSN(t *testing.T) {
	db, _ := testutil.NewStubDB()
	var gotDriver, gotDSN string
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driverName, dsn
		return db, nil
	})
	defer restore()

	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer func() { _ = store.Close() }()
	if gotDriver != defaultDriver || gotDSN != defaultDSN {
		t.Fatalf("expected %s %s, got %s %s", defaultDriver, defaultDSN, gotDriver, gotDSN)
	}
}

func TestLoadEmptySlot(t *testing.T) {
	store, _ := openStub(t)
	if _, err := store.Load(context.Background(), "startups"); !errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty, got %v", err)
	}
}

func TestSaveOverwritesPayload(t *testing.T) {
	ctx := context.Background()
	store, conn := openStub(t)

	if err := store.Save(ctx, "startups", []byte(`[]`)); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(ctx, "startups", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("save second: %v", err)
	}
	if len(conn.Buckets) != 1 {
		t.Fatalf("expected a single bucket, got %d", len(conn.Buckets))
	}
	payload, err := store.Load(ctx, "startups")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(payload) != `[{"id":"a"}]` {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestNewStorePingFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	if _, err := NewStore(context.Background(), "postgres://example"); err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestNewStoreOpenFailure(t *testing.T) {
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return nil, errors.New("boom") })
	defer restore()

	if _, err := NewStore(context.Background(), "postgres://example"); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected open failure, got %v", err)
	}
}

func TestSaveAndLoadFailures(t *testing.T) {
	ctx := context.Background()
	store, conn := openStub(t)
	conn.FailExec = true
	if err := store.Save(ctx, "startups", []byte(`[]`)); err == nil {
		t.Fatalf("expected save failure")
	}
	conn.FailLoad = true
	if _, err := store.Load(ctx, "startups"); err == nil || errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("expected backend load failure, got %v", err)
	}
}
