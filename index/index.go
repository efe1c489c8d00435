package index

/*
This file defines how the cache finds the entries a point update makes stale.
*/

import "github.com/krisalay/interval-cache/types"

/*
Index is the interface every invalidation strategy must follow.

The cache keeps one Index alongside its recency list. Every resident key is
inserted here when it enters the cache and removed when it leaves, whatever the reason
(eviction, invalidation, clear).
*/
type Index interface {

	// Insert adds a key. It returns false if the key is already indexed.
	Insert(types.Interval) bool

	// Remove deletes a key. It returns false if the key was not indexed.
	Remove(types.Interval) bool

	/*
		Covering returns every indexed key k with k.Left <= point <= k.Right.

		The result is a fresh slice, so the caller may remove the returned
		keys from the index while iterating over it.
	*/
	Covering(point int) []types.Interval

	// Len returns the number of indexed keys.
	Len() int

	// Reset drops every key.
	Reset()
}

// Type identifies a supported invalidation strategy.
type Type string

const (
	// Tree is an augmented AVL tree: O(log n + m) per Covering call.
	Tree Type = "TREE"

	// Scan checks every resident key: O(n) per Covering call. It matches what a plain
	// LRU map does and is kept as the simple baseline.
	Scan Type = "SCAN"
)

// Valid reports whether t names a known strategy.
func (t Type) Valid() bool {
	return t == Tree || t == Scan
}

// New is a small factory function. Given a Type, it creates the matching index.
func New(t Type) Index {
	switch t {
	case Tree:
		return NewTree()
	case Scan:
		return NewScan()
	default:
		panic("unknown index type")
	}
}
