// Package scanlru is the reference range cache: a plain LRU map that invalidates by
// scanning every resident key.
//
// It is correct and simple, and is what the indexed cache is checked and benchmarked against.
package scanlru

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/krisalay/interval-cache/api"
	"github.com/krisalay/interval-cache/types"
)

// Cache wraps a fixed-size LRU keyed by interval. The underlying LRU is safe for concurrent use.
type Cache struct {
	lru      *lru.Cache[types.Interval, int64]
	capacity int
	length   int
	metrics  types.Metrics
}

var _ api.IntervalCache = (*Cache)(nil)

// New creates a cache holding at most capacity entries for a sequence of the given length.
func New(capacity, length int, m types.Metrics) (*Cache, error) {
	if length <= 0 {
		return nil, errors.Errorf("length must be positive, got %d", length)
	}
	l, err := lru.New[types.Interval, int64](capacity)
	if err != nil {
		return nil, errors.Wrap(err, "could not create lru")
	}
	if m == nil {
		m = types.NoopMetrics{}
	}
	return &Cache{lru: l, capacity: capacity, length: length, metrics: m}, nil
}

func (c *Cache) Get(left, right int) (int64, bool, error) {
	if err := types.CheckInterval(left, right, c.length); err != nil {
		return 0, false, err
	}
	v, ok := c.lru.Get(types.Interval{Left: left, Right: right})
	if !ok {
		c.metrics.Miss()
		return 0, false, nil
	}
	c.metrics.Hit()
	return v, true, nil
}

func (c *Cache) Put(left, right int, value int64) error {
	if err := types.CheckInterval(left, right, c.length); err != nil {
		return err
	}
	if evicted := c.lru.Add(types.Interval{Left: left, Right: right}, value); evicted {
		c.metrics.Eviction()
	}
	c.metrics.Fill()
	return nil
}

// Invalidate walks every resident key, O(capacity) per call.
func (c *Cache) Invalidate(point int) (int, error) {
	if err := types.CheckIndex(point, c.length); err != nil {
		return 0, err
	}
	removed := 0
	for _, k := range c.lru.Keys() {
		if k.Covers(point) && c.lru.Remove(k) {
			removed++
		}
	}
	if removed > 0 {
		c.metrics.Invalidation(removed)
	}
	return removed, nil
}

func (c *Cache) Clear() {
	c.lru.Purge()
}

func (c *Cache) Len() int {
	return c.lru.Len()
}

func (c *Cache) Capacity() int {
	return c.capacity
}

func (c *Cache) Domain() int {
	return c.length
}
