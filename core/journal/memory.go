package journal

import (
	"context"
	"sync"
)

// DefaultMemoryCapacity bounds the memory store when no capacity is given.
const DefaultMemoryCapacity = 1024

// MemoryStore keeps the most recent records in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	recs []Record
	max  int
}

// NewMemoryStore returns a store holding at most capacity records.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{max: capacity}
}

func (s *MemoryStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	if over := len(s.recs) - s.max; over > 0 {
		s.recs = append(s.recs[:0:0], s.recs[over:]...)
	}
	return nil
}

func (s *MemoryStore) Query(_ context.Context, q Query) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []Record
	for _, r := range s.recs {
		if q.match(r) {
			res = append(res, r)
		}
	}
	return q.tail(res), nil
}

func (s *MemoryStore) Close() error { return nil }
