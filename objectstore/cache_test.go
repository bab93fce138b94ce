package objectstore_test

import (
	"crypto/sha1"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"

	"github.com/gitflix/gitflix/objectstore"
)

func hashOf(s string) plumbing.Hash {
	sum := sha1.Sum([]byte(s))
	return plumbing.Hash(sum)
}

func TestCacheHitMiss(t *testing.T) {
	c := objectstore.NewBlobCache(2)

	_, ok := c.Get(hashOf("a"))
	require.False(t, ok)

	c.Put(hashOf("a"), []byte("A"))
	got, ok := c.Get(hashOf("a"))
	require.True(t, ok)
	require.Equal(t, []byte("A"), got)
}

// TestCacheFIFOEviction: the oldest inserted entry is overwritten first,
// even if it was the most recently read.
func TestCacheFIFOEviction(t *testing.T) {
	c := objectstore.NewBlobCache(2)

	c.Put(hashOf("a"), []byte("A"))
	c.Put(hashOf("b"), []byte("B"))

	// Read "a" repeatedly; FIFO eviction ignores recency of reads.
	_, _ = c.Get(hashOf("a"))
	_, _ = c.Get(hashOf("a"))

	c.Put(hashOf("c"), []byte("C")) // evicts "a" (oldest insertion)

	_, ok := c.Get(hashOf("a"))
	require.False(t, ok, "oldest inserted entry should have been evicted")

	_, ok = c.Get(hashOf("b"))
	require.True(t, ok)

	_, ok = c.Get(hashOf("c"))
	require.True(t, ok)
}

func TestCacheStats(t *testing.T) {
	c := objectstore.NewBlobCache(4)
	c.Put(hashOf("a"), []byte("A"))

	_, _ = c.Get(hashOf("a"))
	_, _ = c.Get(hashOf("missing"))

	stats := c.Stats()
	require.Equal(t, uint64(1), stats.Hits)
	require.Equal(t, uint64(1), stats.Misses)
	require.Equal(t, 1, stats.Size)
	require.Equal(t, 4, stats.Capacity)
}

func TestCacheDuplicatePutIsNoop(t *testing.T) {
	c := objectstore.NewBlobCache(1)
	c.Put(hashOf("a"), []byte("A"))
	c.Put(hashOf("a"), []byte("A-again")) // already cached, should not evict itself

	got, ok := c.Get(hashOf("a"))
	require.True(t, ok)
	require.Equal(t, []byte("A"), got)
}
