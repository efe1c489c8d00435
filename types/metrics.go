package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle.
*/
type Metrics interface {

	// Hit is called when an exact interval is found in the cache.
	Hit()

	// Miss is called when an interval is not cached and has to be computed.
	Miss()

	// Fill is called when a computed aggregate is stored in the cache.
	Fill()

	// Eviction is called when an entry is removed because the cache is full.
	Eviction()

	// Invalidation is called after a point update removed n covering entries.
	Invalidation(n int)
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

It lets the cache call metrics unconditionally when the caller does not care about them.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()             {}
func (NoopMetrics) Miss()            {}
func (NoopMetrics) Fill()            {}
func (NoopMetrics) Eviction()        {}
func (NoopMetrics) Invalidation(int) {}

// Stats is a point-in-time view of cache activity.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Fills         uint64
	Evictions     uint64
	Invalidations uint64
	Size          int
	Capacity      int
}

// HitRatio returns hits / (hits + misses), or 0 when nothing was looked up.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
