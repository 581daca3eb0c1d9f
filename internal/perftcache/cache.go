// Package perftcache memoizes perft subtree counts keyed by position and
// remaining depth.
package perftcache

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/Oliverans/GoosePackedMG/goosemg"
)

// entry keeps the full position so a hash collision reads as a miss.
type entry struct {
	pos   goosemg.Position
	depth int
	nodes uint64
}

// Cache is safe for concurrent use.
type Cache struct {
	c *ristretto.Cache[uint64, entry]
}

// New returns a cache holding roughly the given number of subtree results.
func New(entries int64) (*Cache, error) {
	if entries <= 0 {
		return nil, fmt.Errorf("perftcache: capacity must be positive, got %d", entries)
	}
	c, err := ristretto.NewCache(&ristretto.Config[uint64, entry]{
		NumCounters:        entries * 10,
		MaxCost:            entries,
		BufferItems:        64,
		IgnoreInternalCost: true,
		Metrics:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("perftcache: %w", err)
	}
	return &Cache{c: c}, nil
}

// key mixes the remaining depth into the position hash.
func key(pos goosemg.Position, depth int) uint64 {
	return pos.Hash() ^ uint64(depth)*0x9e3779b97f4a7c15
}

// Get returns the stored count for pos searched to depth.
func (c *Cache) Get(pos goosemg.Position, depth int) (uint64, bool) {
	e, ok := c.c.Get(key(pos, depth))
	if !ok || e.pos != pos || e.depth != depth {
		return 0, false
	}
	return e.nodes, true
}

// Put records a count. Writes are buffered and may be dropped by the
// admission policy.
func (c *Cache) Put(pos goosemg.Position, depth int, nodes uint64) {
	c.c.Set(key(pos, depth), entry{pos: pos, depth: depth, nodes: nodes}, 1)
}

// Wait blocks until buffered writes are applied.
func (c *Cache) Wait() { c.c.Wait() }

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.c.Metrics.Hits(), c.c.Metrics.Misses()
}

// Close releases the cache's goroutines.
func (c *Cache) Close() { c.c.Close() }
