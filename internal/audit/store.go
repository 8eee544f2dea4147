package audit

import (
	"context"
	"sync"
)

// Sink receives events for persistence or forwarding. Implementations must be
// safe for concurrent use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// MemoryStore is an append-only in-memory sink used in tests and as the
// default event log when no broker is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByUser returns the events recorded for a user in append order.
func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns every recorded event in append order.
func (s *MemoryStore) All(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

// Fanout forwards each event to every sink, returning the first error.
type Fanout []Sink

func (f Fanout) Append(ctx context.Context, event Event) error {
	for _, sink := range f {
		if err := sink.Append(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
