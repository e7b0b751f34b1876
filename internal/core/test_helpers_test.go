package core

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"prism/internal/infra/persistence/memory"
	"prism/pkg/domain"
)

// recordingSlot wraps the memory slot, counting writes and optionally
// failing them.
type recordingSlot struct {
	*memory.Store
	mu       sync.Mutex
	saves    int
	saveErr  error
	loadErr  error
	payloads [][]byte
}

func newRecordingSlot() *recordingSlot {
	return &recordingSlot{Store: memory.NewStore()}
}

func (r *recordingSlot) Load(ctx context.Context, key string) ([]byte, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.Store.Load(ctx, key)
}

func (r *recordingSlot) Save(ctx context.Context, key string, payload []byte) error {
	r.mu.Lock()
	r.saves++
	r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	r.payloads = append(r.payloads, append([]byte(nil), payload...))
	r.mu.Unlock()
	return r.Store.Save(ctx, key, payload)
}

func (r *recordingSlot) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func sequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fields(name, industry string) domain.StartupFields {
	return domain.StartupFields{
		Name:          name,
		Description:   name + " builds things",
		Industry:      industry,
		FundingStage:  domain.StageSeed,
		FundingAmount: 500000,
		FoundedDate:   "2023-05-01",
		TeamSize:      5,
		Status:        domain.StatusActive,
	}
}

func newTestStore(t *testing.T, slot SnapshotSlot, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithIDGenerator(sequentialIDs())}, opts...)
	store, err := Open(context.Background(), slot, opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return store
}

func persisted(t *testing.T, slot SnapshotSlot) []Startup {
	t.Helper()
	payload, err := slot.Load(context.Background(), DefaultSlotKey)
	if err != nil {
		t.Fatalf("load slot: %v", err)
	}
	records, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	return records
}

func ids(records []Startup) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
