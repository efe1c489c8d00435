package eviction

/*
This file defines how the cache decides what to remove when it runs out of space.
*/

import "github.com/krisalay/interval-cache/types"

/*
Policy is the interface the cache uses to track recency of its keys.

The cache does NOT care how ordering works internally.
It only calls these methods, always under its own lock.
*/
type Policy interface {

	// OnGet is called whenever a key is read from the cache (a hit).
	OnGet(types.Interval)

	// OnPut is called whenever a key is written, new or overwritten.
	// Both cases make the key the most recently used.
	OnPut(types.Interval)

	// Remove is called when a key leaves the cache for any reason other than
	// Evict (invalidation, explicit removal).
	Remove(types.Interval)

	/*
		Evict is called when the cache is FULL and needs space.

		It removes and returns the key that should go next.
		ok is false when nothing is tracked.
	*/
	Evict() (k types.Interval, ok bool)

	// Len returns the number of tracked keys.
	Len() int

	// Reset forgets every key.
	Reset()
}
