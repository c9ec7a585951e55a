package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/dharmasatrya/travelfront/internal/models"
)

const defaultMaxDispatchers = 1024

// DispatcherPool scopes supersession per storefront client. Each key owns its
// own Dispatcher, so one user's parameter changes cancel only that user's
// outstanding search; unrelated sessions never race each other.
type DispatcherPool struct {
	client SearchClient

	mu         sync.Mutex
	entries    map[string]*poolEntry
	maxEntries int
}

type poolEntry struct {
	dispatcher *Dispatcher
	lastUsed   time.Time
}

func NewDispatcherPool(client SearchClient) *DispatcherPool {
	return &DispatcherPool{
		client:     client,
		entries:    make(map[string]*poolEntry),
		maxEntries: defaultMaxDispatchers,
	}
}

// Dispatch routes the search through the dispatcher owned by key, creating it
// on first use. Idle dispatchers are evicted once the pool is full.
func (p *DispatcherPool) Dispatch(ctx context.Context, key string, req models.SearchRequest) (*SearchResult, error) {
	p.mu.Lock()
	entry, ok := p.entries[key]
	if !ok {
		if len(p.entries) >= p.maxEntries {
			p.evictOldestLocked()
		}
		entry = &poolEntry{dispatcher: NewDispatcher(p.client)}
		p.entries[key] = entry
	}
	entry.lastUsed = time.Now()
	p.mu.Unlock()

	return entry.dispatcher.Dispatch(ctx, req)
}

func (p *DispatcherPool) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range p.entries {
		if oldestKey == "" || entry.lastUsed.Before(oldest) {
			oldestKey = key
			oldest = entry.lastUsed
		}
	}
	if oldestKey != "" {
		delete(p.entries, oldestKey)
	}
}

// Size reports the number of live per-client dispatchers.
func (p *DispatcherPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// RequestKey is the fallback supersession key when a request carries no
// client identifier: identical rapid re-searches still supersede each other,
// distinct searches never do.
func RequestKey(req models.SearchRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return "req:" + hex.EncodeToString(hash[:])
}
