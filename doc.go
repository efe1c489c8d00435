// Package rangecache provides an LRU cache for range-query results keyed by the
// exact interval [left, right] they were computed over.
//
// Key properties:
//
//   - Bounded capacity with least-recently-used eviction.
//   - Exact-interval keys: an overlapping or containing cached interval never
//     answers a different query.
//   - Point invalidation: Invalidate(p) removes every entry whose interval covers p.
//     With the default tree index this costs O(log n + m) for m removed entries;
//     the scan index checks every entry and is kept as a baseline.
//
// # Concurrency
//
// IntervalLRUCache methods are safe for concurrent use. Keeping the cache coherent
// with a mutable sequence is the job of engine.QueryEngine, which orders store
// writes and invalidation.
package rangecache
