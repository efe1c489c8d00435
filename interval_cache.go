package rangecache

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/krisalay/interval-cache/api"
	"github.com/krisalay/interval-cache/eviction"
	"github.com/krisalay/interval-cache/index"
	"github.com/krisalay/interval-cache/types"
)

/*
IntervalLRUCache maps an exact interval to a precomputed aggregate.

This struct is the orchestrator that keeps three views of the same entry set in step:
- entries: key → entry, for O(1) exact lookup
- recency: doubly-linked LRU order, for O(1) promote and evict
- idx:     interval index, for finding the entries covering a point

Every method changes all three inside one critical section, so no key is ever
present in one view and missing from another.
*/
type IntervalLRUCache struct {
	mu sync.Mutex

	entries map[types.Interval]*types.CacheEntry
	recency eviction.Policy
	idx     index.Index

	// clock is the recency tick. It advances on every get-hit and put.
	clock uint64

	capacity int
	length   int
	metrics  types.Metrics
}

var _ api.IntervalCache = (*IntervalLRUCache)(nil)

// New creates an empty cache.
func New(cfg Config) (*IntervalLRUCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &IntervalLRUCache{
		entries:  make(map[types.Interval]*types.CacheEntry, cfg.Capacity),
		recency:  eviction.NewLRU(),
		idx:      index.New(cfg.Index),
		capacity: cfg.Capacity,
		length:   cfg.Length,
		metrics:  cfg.Metrics,
	}, nil
}

/*
Get looks up the exact interval [left, right].

On a hit the entry becomes the most recently used and its value is returned with ok == true.
On a miss ok is false; the returned value is meaningless.
*/
func (c *IntervalLRUCache) Get(left, right int) (int64, bool, error) {
	if err := types.CheckInterval(left, right, c.length); err != nil {
		return 0, false, err
	}
	k := types.Interval{Left: left, Right: right}

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[k]
	if !ok {
		c.metrics.Miss()
		return 0, false, nil
	}

	c.metrics.Hit()
	ent.Tick = c.tick()
	c.recency.OnGet(k)
	return ent.Value, true, nil
}

/*
Put stores value under the exact interval [left, right].

Overwriting an existing key replaces the value and refreshes recency; it does not
count as a second entry. Inserting a new key into a full cache first evicts the least
recently used entry, so the size never exceeds capacity.
*/
func (c *IntervalLRUCache) Put(left, right int, value int64) error {
	if err := types.CheckInterval(left, right, c.length); err != nil {
		return err
	}
	k := types.Interval{Left: left, Right: right}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[k]; !ok {
		if len(c.entries) >= c.capacity {
			c.evict()
		}
		c.idx.Insert(k)
	}

	// Entries are replaced, never mutated, so an overwrite is a fresh entry under the same key.
	c.entries[k] = &types.CacheEntry{Key: k, Value: value, Tick: c.tick()}
	c.recency.OnPut(k)
	c.metrics.Fill()
	return nil
}

/*
Invalidate removes every entry whose interval covers point and returns how many were removed.

Entries that do not cover point are left alone, including their recency.
A point covered by nothing is a no-op.
*/
func (c *IntervalLRUCache) Invalidate(point int) (int, error) {
	if err := types.CheckIndex(point, c.length); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stale := c.idx.Covering(point)
	for _, k := range stale {
		c.idx.Remove(k)
		c.recency.Remove(k)
		delete(c.entries, k)
	}

	if len(stale) > 0 {
		c.metrics.Invalidation(len(stale))
		log.WithFields(logrus.Fields{
			"point":   point,
			"removed": len(stale),
		}).Debug("Invalidated covering intervals")
	}
	return len(stale), nil
}

// Contains reports whether [left, right] is resident without touching recency.
func (c *IntervalLRUCache) Contains(left, right int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[types.Interval{Left: left, Right: right}]
	return ok
}

// Clear removes all entries. The recency clock keeps running.
func (c *IntervalLRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[types.Interval]*types.CacheEntry, c.capacity)
	c.recency.Reset()
	c.idx.Reset()
}

// Len returns the number of resident entries.
func (c *IntervalLRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *IntervalLRUCache) Capacity() int {
	return c.capacity
}

// Domain is the sequence length keys are validated against.
func (c *IntervalLRUCache) Domain() int {
	return c.length
}

// evict drops the least recently used entry from all three views. Caller holds mu.
func (c *IntervalLRUCache) evict() {
	k, ok := c.recency.Evict()
	if !ok {
		return
	}
	c.idx.Remove(k)
	delete(c.entries, k)
	c.metrics.Eviction()
	log.WithField("interval", k).Debug("Evicted least recently used interval")
}

func (c *IntervalLRUCache) tick() uint64 {
	c.clock++
	return c.clock
}
