package api

/*
IntervalCache defines the contract the query engine needs from a range cache.
Both the indexed cache (rangecache) and the reference scan cache (scanlru) implement it,
so the invalidation strategy can be swapped without touching the engine.
*/
type IntervalCache interface {

	/*
		Get looks up the exact interval [left, right].

		BEHAVIOR:
		---------
		1. Exact key present:
		   - Stamp it as most recently used
		   - Return (value, true, nil)

		2. Key absent (including when an overlapping or containing interval is cached):
		   - Return (0, false, nil)

		3. Malformed interval:
		   - Return types.ErrIndexOutOfRange or types.ErrInvalidRange
	*/
	Get(left, right int) (int64, bool, error)

	/*
		Put stores value under [left, right].

		BEHAVIOR:
		---------
		- Overwrites an existing key and refreshes its recency
		- Evicts the least recently used entry if a new key would exceed capacity
	*/
	Put(left, right int, value int64) error

	/*
		Invalidate removes every entry whose interval covers point.

		BEHAVIOR:
		---------
		- Returns the number of entries removed
		- Leaves non-covering entries untouched
		- A point covered by nothing is a no-op, not an error
	*/
	Invalidate(point int) (int, error)

	// Clear removes all entries (test reset, benchmark re-runs).
	Clear()

	// Len returns the number of resident entries.
	Len() int

	// Capacity returns the maximum number of resident entries.
	Capacity() int

	// Domain returns the sequence length keys are validated against.
	Domain() int
}
