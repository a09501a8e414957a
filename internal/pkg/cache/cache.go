package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a key -> (payload, timestamp) cache with a fixed TTL.
// Payloads are pre-marshalled JSON so memory and Redis backends stay
// symmetric. GetStale ignores expiry and exists only for the
// last-resort fallback path when a fresh fetch fails.
type Store interface {
	Get(ctx context.Context, key string) (data []byte, storedAt time.Time, ok bool)
	GetStale(ctx context.Context, key string) (data []byte, storedAt time.Time, ok bool)
	Set(ctx context.Context, key string, data []byte) error
	Clear(ctx context.Context) error
}

type entry struct {
	data     []byte
	storedAt time.Time
}

// MemoryStore is the default in-process Store. The key space is small
// and bounded by the date/match-id combinations actually requested, so
// no eviction beyond TTL is needed.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	now func() time.Time // injectable for tests
}

// NewMemoryStore creates a memory store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the entry for key if it exists and has not outlived the TTL.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	if s.now().Sub(e.storedAt) > s.ttl {
		return nil, time.Time{}, false
	}
	return e.data, e.storedAt, true
}

// GetStale returns the most recent entry for key regardless of age.
func (s *MemoryStore) GetStale(ctx context.Context, key string) ([]byte, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	return e.data, e.storedAt, true
}

// Set stores data under key with the current timestamp, overwriting any
// prior entry.
func (s *MemoryStore) Set(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{data: data, storedAt: s.now()}
	return nil
}

// Clear removes all entries.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry)
	return nil
}

// Len reports the number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
