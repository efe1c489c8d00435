package types

import "strconv"

/*
Interval is the cache key: the inclusive range [Left, Right] a cached aggregate was computed over.

Two intervals are equal only when both endpoints match. The struct is comparable,
so it is used directly as a map key.
*/
type Interval struct {
	Left  int
	Right int
}

// Covers reports whether p lies inside the interval.
func (iv Interval) Covers(p int) bool {
	return iv.Left <= p && p <= iv.Right
}

func (iv Interval) String() string {
	return "[" + strconv.Itoa(iv.Left) + "," + strconv.Itoa(iv.Right) + "]"
}
