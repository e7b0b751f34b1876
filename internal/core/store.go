package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"prism/pkg/domain"
)

const maxIDAttempts = 16

// ErrIDExhausted is returned by Add when the id generator keeps producing
// empty or already used ids.
var ErrIDExhausted = errors.New("no unique startup id")

// Store owns the ordered startup collection together with the detail-view
// selection and the live search query. Every mutator finishes by writing the
// whole collection to the snapshot slot.
type Store struct {
	mu       sync.RWMutex
	records  []Startup
	selected *Startup
	query    string

	slot    SnapshotSlot
	key     string
	newID   func() string
	now     func() time.Time
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	audit   AuditRecorder
}

// NewStore constructs an empty store backed by slot. Call Initialize to load
// the persisted collection.
func NewStore(slot SnapshotSlot, opts ...Option) *Store {
	s := &Store{
		records: []Startup{},
		slot:    slot,
		key:     DefaultSlotKey,
		newID:   newUUID,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		audit:   noopAudit{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open constructs a store over slot and loads its snapshot.
func Open(ctx context.Context, slot SnapshotSlot, opts ...Option) (*Store, error) {
	s := NewStore(slot, opts...)
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize replaces the collection with the persisted snapshot. A missing or
// corrupt snapshot yields an empty collection; only a failing backend read is
// returned as an error.
func (s *Store) Initialize(ctx context.Context) (err error) {
	ctx, finish := s.begin(ctx, OpInitialize)
	defer func() { finish("", err) }()

	payload, err := s.slot.Load(ctx, s.key)
	records := []Startup{}
	switch {
	case errors.Is(err, domain.ErrSlotEmpty):
		err = nil
		s.logger.Debug("no persisted snapshot", "key", s.key)
	case err != nil:
		return fmt.Errorf("load snapshot %q: %w", s.key, err)
	default:
		decoded, decodeErr := DecodeSnapshot(payload)
		if decodeErr != nil {
			s.logger.Warn("discarding persisted snapshot", "key", s.key, "error", decodeErr)
		} else {
			records = decoded
		}
	}

	s.mu.Lock()
	s.records = records
	s.selected = nil
	s.mu.Unlock()
	s.logger.Info("catalog loaded", "key", s.key, "startups", len(records))
	return nil
}

// Add appends a new record built from fields and persists the collection.
// Fields are stored as given; required-field checks belong to the caller.
func (s *Store) Add(ctx context.Context, fields StartupFields) (created Startup, err error) {
	ctx, finish := s.begin(ctx, OpAdd)
	defer func() { finish(created.ID, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.uniqueIDLocked()
	if err != nil {
		return Startup{}, err
	}
	created = Startup{ID: id, StartupFields: fields}
	next := make([]Startup, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, created)
	payload, err := s.encode(next)
	if err != nil {
		return Startup{}, err
	}
	s.records = next
	return created, s.saveLocked(ctx, payload)
}

// Remove deletes the record with id when present and clears the selection if
// it pointed at that record. Removing an unknown id leaves the collection as
// it was but still rewrites the snapshot.
func (s *Store) Remove(ctx context.Context, id string) (err error) {
	ctx, finish := s.begin(ctx, OpRemove)
	defer func() { finish(id, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]Startup, 0, len(s.records))
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	payload, err := s.encode(kept)
	if err != nil {
		return err
	}
	s.records = kept
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	return s.saveLocked(ctx, payload)
}

// List returns the records whose name or industry contains query, ignoring
// case, in insertion order. An empty query returns the whole collection.
func (s *Store) List(query string) []Startup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterRecords(s.records, query)
}

// Visible is List applied to the current query.
func (s *Store) Visible() []Startup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterRecords(s.records, s.query)
}

// SetQuery replaces the live search query.
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
}

// Query returns the live search query.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Select marks the record with id for detail display. An unknown id clears
// the selection.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			picked := s.records[i]
			s.selected = &picked
			return true
		}
	}
	s.selected = nil
	return false
}

// ClearSelection closes the detail view.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// Selected returns a copy of the selected record.
func (s *Store) Selected() (Startup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return Startup{}, false
	}
	return *s.selected, true
}

// Get returns the record with id.
func (s *Store) Get(id string) (Startup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return Startup{}, false
}

// Snapshot returns a copy of the full collection.
func (s *Store) Snapshot() []Startup {
	return s.List("")
}

// Len reports the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Key returns the slot key the store persists under.
func (s *Store) Key() string { return s.key }

// encode serializes a candidate collection. Mutators install the candidate
// only after it encodes, so the live collection always has a valid snapshot.
func (s *Store) encode(next []Startup) ([]byte, error) {
	payload, err := EncodeSnapshot(next)
	if err != nil {
		s.logger.Error("encode snapshot failed", "key", s.key, "startups", len(next), "error", err)
		return nil, err
	}
	return payload, nil
}

// saveLocked writes payload to the slot. The installed collection stays when
// the write fails.
func (s *Store) saveLocked(ctx context.Context, payload []byte) error {
	if err := s.slot.Save(ctx, s.key, payload); err != nil {
		s.logger.Error("persist snapshot failed", "key", s.key, "startups", len(s.records), "error", err)
		return fmt.Errorf("persist snapshot %q: %w", s.key, err)
	}
	s.logger.Debug("snapshot persisted", "key", s.key, "startups", len(s.records), "bytes", len(payload))
	return nil
}

// uniqueIDLocked draws ids until one is non-empty and unused, giving up after
// maxIDAttempts draws.
func (s *Store) uniqueIDLocked() (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if id == "" {
			continue
		}
		taken := false
		for _, r := range s.records {
			if r.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrIDExhausted, maxIDAttempts)
}

// begin opens a span and returns the closure that records audit, metrics and
// span completion for the operation.
func (s *Store) begin(ctx context.Context, op string) (context.Context, func(id string, err error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	started := s.now()
	ctx, span := s.tracer.Start(ctx, op)
	return ctx, func(id string, err error) {
		elapsed := s.now().Sub(started)
		span.End(err)
		s.metrics.Observe(ctx, op, err == nil, elapsed)
		entry := AuditEntry{Operation: op, StartupID: id, Status: AuditStatusSuccess, Duration: elapsed, At: started}
		if err != nil {
			entry.Status = AuditStatusError
			entry.Error = err.Error()
		}
		s.audit.Record(ctx, entry)
	}
}

func filterRecords(records []Startup, query string) []Startup {
	out := make([]Startup, 0, len(records))
	for _, r := range records {
		if r.Matches(query) {
			out = append(out, r)
		}
	}
	return out
}
