package fetcher

import (
	"context"
	"errors"
	"sync"

	"github.com/dharmasatrya/travelfront/internal/models"
)

// ErrSuperseded marks a search whose result arrived after a newer search was
// dispatched. The caller drops it; the latest request always wins.
var ErrSuperseded = errors.New("search superseded by a newer request")

type SearchClient interface {
	Search(ctx context.Context, req models.SearchRequest) (*SearchResult, error)
}

// Dispatcher serializes interest in search results. Each Dispatch takes the
// next generation number and cancels the previous in-flight call; completions
// from stale generations are discarded.
type Dispatcher struct {
	client SearchClient

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewDispatcher(client SearchClient) *Dispatcher {
	return &Dispatcher{client: client}
}

func (d *Dispatcher) Dispatch(ctx context.Context, req models.SearchRequest) (*SearchResult, error) {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	if d.cancel != nil {
		d.cancel()
	}
	callCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.mu.Unlock()

	result, err := d.client.Search(callCtx, req)

	d.mu.Lock()
	stale := d.gen != gen
	if !stale {
		d.cancel = nil
		cancel()
	}
	d.mu.Unlock()

	if stale {
		return nil, ErrSuperseded
	}
	return result, err
}

// Generation reports the number of searches dispatched so far.
func (d *Dispatcher) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}
