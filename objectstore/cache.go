package objectstore

import (
	"sync"

	"github.com/go-git/go-git/v5/plumbing"
)

// BlobCache is a process-local, bounded, FIFO-eviction cache of decoded
// blob bytes keyed by commit id. It is shared between the decode path
// and the Prefetcher; every mutation is a short, mutex-protected
// critical section (lookup, insert, evict).
//
// Eviction policy: a circular slot pointer. Put always writes into the
// slot the pointer currently names, releasing whatever was cached there
// before, then advances the pointer modulo the cache's capacity — the
// oldest-inserted entry is the one overwritten, regardless of how
// recently it was read.
type BlobCache struct {
	mu       sync.Mutex
	capacity int
	slots    []plumbing.Hash // slot index -> key; zero hash means empty
	values   [][]byte        // slot index -> cached bytes
	index    map[plumbing.Hash]int
	next     int

	hits   uint64
	misses uint64
}

// NewBlobCache creates a cache bounded to capacity entries. capacity
// must be positive.
func NewBlobCache(capacity int) *BlobCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &BlobCache{
		capacity: capacity,
		slots:    make([]plumbing.Hash, capacity),
		values:   make([][]byte, capacity),
		index:    make(map[plumbing.Hash]int, capacity),
	}
}

// Get returns the cached bytes for id and true on a hit, or nil and
// false on a miss. It never touches the underlying store.
func (c *BlobCache) Get(id plumbing.Hash) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot, ok := c.index[id]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return c.values[slot], true
}

// Put inserts data under id, evicting the entry at the current circular
// slot pointer and advancing it. The caller is expected to have already
// missed on Get(id) before loading data from the store and calling Put.
func (c *BlobCache) Put(id plumbing.Hash, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, alreadyCached := c.index[id]; alreadyCached {
		return
	}

	slot := c.next
	evicted := c.slots[slot]
	if !evicted.IsZero() {
		delete(c.index, evicted)
	}

	c.slots[slot] = id
	c.values[slot] = data
	c.index[id] = slot
	c.next = (c.next + 1) % c.capacity
}

// CacheStats is a snapshot of cache hit/miss counters, useful for wiring into
// telemetry (see internal/telemetry).
type CacheStats struct {
	Hits, Misses uint64
	Size         int
	Capacity     int
}

func (c *BlobCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:     c.hits,
		Misses:   c.misses,
		Size:     len(c.index),
		Capacity: c.capacity,
	}
}
