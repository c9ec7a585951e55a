package handoff

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is the in-process fallback used when Redis is disabled, and by
// tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	pending   Pending
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, p Pending) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.SavedAt = s.now().UTC()
	token := uuid.NewString()
	s.entries[token] = memoryEntry{
		pending:   p,
		expiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

func (s *MemoryStore) Resume(ctx context.Context, token string) (*Pending, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return nil, false, nil
	}
	delete(s.entries, token)

	if s.now().After(entry.expiresAt) {
		return nil, false, nil
	}
	p := entry.pending
	return &p, true, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
