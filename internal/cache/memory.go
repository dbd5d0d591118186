package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   Payload
	expiresAt time.Time
}

// MemoryStore is a process-local Store used when redis is disabled. Expired
// entries are dropped lazily on read; last writer wins on Set.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*Payload, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && s.now().After(current.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	payload := entry.payload
	return &payload, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, payload Payload, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		payload:   payload,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Invalidate(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
