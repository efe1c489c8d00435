package engine

import (
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/interval-cache/api"
	"github.com/krisalay/interval-cache/types"
)

/*
QueryEngine is the façade callers use. It combines a Store with an IntervalCache
and is responsible for keeping the two coherent.

It decides:
- When a range query is answered from the cache and when it is recomputed
- In which order an update touches the store and the cache

It does NOT:
- Choose what to evict (the cache does)
- Compute aggregates (the store does)

LOCKING:
--------
Update holds mu exclusively across the store write AND the cache invalidation.
RangeSum holds mu shared across lookup, recomputation and fill.
So a fill computed before an update can never land in the cache after it,
and no reader sees a covering entry once the store write has committed.
*/
type QueryEngine struct {
	mu sync.RWMutex

	store types.Store
	cache api.IntervalCache

	// stats is only read by Stats; the cache reports its own events.
	stats Snapshotter

	// sf collapses concurrent misses on the same interval into one scan.
	sf singleflight.Group
}

// Snapshotter is implemented by metrics sinks that can report their totals, such as metrics.Counters.
type Snapshotter interface {
	Snapshot() types.Stats
}

/*
New creates a QueryEngine over store and c.

The cache must be built for the store's length. Each engine owns the cache it is given;
share a cache between engines only if they also share the store.
stats may be nil; when set, Stats reports its counters.
*/
func New(store types.Store, c api.IntervalCache, stats Snapshotter) (*QueryEngine, error) {
	if store == nil || c == nil {
		return nil, errors.New("store and cache are required")
	}
	if c.Domain() != store.Len() {
		return nil, errors.Errorf("cache domain %d does not match store length %d", c.Domain(), store.Len())
	}

	return &QueryEngine{store: store, cache: c, stats: stats}, nil
}

/*
RangeSum returns the sum over [left, right].

BEHAVIOR:
---------
1. Exact interval cached: return it (hit).
2. Otherwise: scan the store, fill the cache, return the sum (miss).
*/
func (e *QueryEngine) RangeSum(left, right int) (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	v, ok, err := e.cache.Get(left, right)
	if err != nil {
		return 0, err
	}
	if ok {
		return v, nil
	}

	key := strconv.Itoa(left) + ":" + strconv.Itoa(right)
	res, err, _ := e.sf.Do(key, func() (any, error) {
		sum, err := e.store.RangeAggregate(left, right)
		if err != nil {
			return nil, err
		}
		if err := e.cache.Put(left, right, sum); err != nil {
			return nil, errors.Wrap(err, "could not fill cache")
		}
		return sum, nil
	})
	if err != nil {
		return 0, err
	}
	return res.(int64), nil
}

/*
Update writes value at index and then drops every cached interval covering index.

The two steps run under one exclusive lock. If the store rejects the write
nothing is invalidated and the engine is unchanged.
*/
func (e *QueryEngine) Update(index int, value int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Set(index, value); err != nil {
		return err
	}
	n, err := e.cache.Invalidate(index)
	if err != nil {
		// Domain equality is checked in New, so this means the cache and store disagree.
		return errors.Wrap(err, "cache rejected an index the store accepted")
	}
	if n > 0 {
		log.WithFields(logrus.Fields{
			"index":       index,
			"invalidated": n,
		}).Debug("Applied update")
	}
	return nil
}

// Len returns the number of cached intervals.
func (e *QueryEngine) Len() int {
	return e.cache.Len()
}

// Clear drops every cached interval. The store is untouched.
func (e *QueryEngine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.Clear()
}

// Stats returns counters (when a Snapshotter was given) plus current size and capacity.
func (e *QueryEngine) Stats() types.Stats {
	var s types.Stats
	if e.stats != nil {
		s = e.stats.Snapshot()
	}
	s.Size = e.cache.Len()
	s.Capacity = e.cache.Capacity()
	return s
}
