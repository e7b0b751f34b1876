package core

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSlotKey is the key under which the collection snapshot is stored.
const DefaultSlotKey = "startups"

// Option configures a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to logger.
func WithLogger(logger Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRecorder reports operation outcomes to recorder.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(s *Store) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer wraps every operation in a span from tracer.
func WithTracer(tracer Tracer) Option {
	return func(s *Store) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithAuditRecorder records mutating operations.
func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Store) {
		if recorder != nil {
			s.audit = recorder
		}
	}
}

// WithIDGenerator replaces the record id source. Empty or already used ids are
// redrawn a bounded number of times before Add fails with ErrIDExhausted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithSlotKey overrides DefaultSlotKey.
func WithSlotKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock sets the time source used for audit timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
