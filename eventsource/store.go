package eventsource

import (
	"context"
	"fmt"
	"sync"
)

// Store is an append-only event stream store with optimistic concurrency.
type Store interface {
	// Append writes events to a stream. expectedVersion is the version of
	// the last event already in the stream, -1 for a new stream; a mismatch
	// fails with ErrVersionConflict and writes nothing. Returns the new head
	// version.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns the stream's events with Version >= from, in order.
	Read(ctx context.Context, stream string, from int) ([]*Event, error)

	// Close releases any underlying resources.
	Close() error
}

// MemoryStore keeps streams in process memory. Useful for tests and for
// short-lived ledgers that only need replay within one process.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.streams[stream]
	head := len(existing) - 1
	if head != expectedVersion {
		return 0, fmt.Errorf("%w: stream %q is at version %d, expected %d", ErrVersionConflict, stream, head, expectedVersion)
	}
	for i, event := range events {
		e := *event
		e.Stream = stream
		e.Version = head + 1 + i
		existing = append(existing, &e)
	}
	s.streams[stream] = existing
	return len(existing) - 1, nil
}

// Read implements Store.
func (s *MemoryStore) Read(ctx context.Context, stream string, from int) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing := s.streams[stream]
	if from < 0 {
		from = 0
	}
	if from >= len(existing) {
		return nil, nil
	}
	out := make([]*Event, len(existing)-from)
	copy(out, existing[from:])
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
