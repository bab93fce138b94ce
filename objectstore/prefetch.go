package objectstore

import (
	"context"
	"sync"

	"github.com/go-git/go-git/v5/plumbing"
)

// Prefetcher walks an ordered id list ahead of the decode worker,
// skipping ids already cached and populating the cache for everything
// else. It does not signal progress; the decode worker simply benefits
// from cache hits as GetBlob starts returning cached bytes sooner.
type Prefetcher struct {
	session *Session
	ids     []plumbing.Hash

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPrefetcher builds a Prefetcher over session that will walk ids in
// order once Start is called.
func NewPrefetcher(session *Session, ids []plumbing.Hash) *Prefetcher {
	return &Prefetcher{session: session, ids: ids}
}

// Start launches the background walk. It returns immediately; the walk
// runs until it exhausts ids or Stop is called.
func (p *Prefetcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.run(ctx)
}

func (p *Prefetcher) run(ctx context.Context) {
	defer p.wg.Done()

	for _, id := range p.ids {
		if ctx.Err() != nil {
			return
		}
		if _, hit := p.session.Cache().Get(id); hit {
			continue
		}
		// GetBlob serializes with the decode worker through the session
		// guard and populates the cache on our behalf; a failure here
		// (e.g. a chain that races ahead of what's actually committed
		// yet) is not fatal to the pipeline, it just means this id stays
		// a future cache miss.
		_, _ = p.session.GetBlob(id)
	}
}

// Stop cancels the walk and waits for the background goroutine to exit.
// Idempotent-safe to call even if Start was never called.
func (p *Prefetcher) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}
