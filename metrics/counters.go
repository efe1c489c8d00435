package metrics

import (
	"sync/atomic"

	"github.com/krisalay/interval-cache/types"
)

// Counters is an in-process types.Metrics backed by atomic counters.
// It is what tests and the benchmark harness read hit/miss numbers from.
type Counters struct {
	hits          atomic.Uint64
	misses        atomic.Uint64
	fills         atomic.Uint64
	evictions     atomic.Uint64
	invalidations atomic.Uint64
}

var _ types.Metrics = (*Counters)(nil)

func (c *Counters) Hit()      { c.hits.Add(1) }
func (c *Counters) Miss()     { c.misses.Add(1) }
func (c *Counters) Fill()     { c.fills.Add(1) }
func (c *Counters) Eviction() { c.evictions.Add(1) }

// Invalidation counts removed entries, not invalidation calls.
func (c *Counters) Invalidation(n int) {
	c.invalidations.Add(uint64(n))
}

// Snapshot returns the current counter values. Size and Capacity are left zero;
// the engine fills them in from the cache.
func (c *Counters) Snapshot() types.Stats {
	return types.Stats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Fills:         c.fills.Load(),
		Evictions:     c.evictions.Load(),
		Invalidations: c.invalidations.Load(),
	}
}

// Reset zeroes every counter.
func (c *Counters) Reset() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.fills.Store(0)
	c.evictions.Store(0)
	c.invalidations.Store(0)
}
