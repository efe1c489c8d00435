package types

// CacheEntry is owned by the cache. Value is never changed in place: a stale entry is
// deleted, not updated. Tick is the recency stamp of the last get-hit or put.
type CacheEntry struct {
	Key   Interval
	Value int64
	Tick  uint64
}
