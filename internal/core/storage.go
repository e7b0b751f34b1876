package core

import (
	"context"
	"fmt"

	"prism/internal/blob"
	"prism/internal/infra/persistence/memory"
	"prism/internal/infra/persistence/postgres"
	"prism/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete snapshot slot implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
	StorageBlob     StorageDriver = "blob"     // one object per key in a blob store
)

// StorageConfig selects and configures the snapshot slot backend.
type StorageConfig struct {
	Driver      string
	SQLitePath  string
	PostgresDSN string
	Blob        blob.Config
	BlobPrefix  string
}

// OpenSlot opens the configured slot backend. An empty driver means sqlite.
func OpenSlot(ctx context.Context, cfg StorageConfig) (SnapshotSlot, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		return sqlite.NewStore(cfg.SQLitePath)
	case StoragePostgres:
		return postgres.NewStore(ctx, cfg.PostgresDSN)
	case StorageBlob:
		store, err := blob.Open(ctx, cfg.Blob)
		if err != nil {
			return nil, fmt.Errorf("open blob store: %w", err)
		}
		return blob.NewSlot(store, cfg.BlobPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
