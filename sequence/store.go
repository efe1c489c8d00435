// Package sequence holds the mutable backing sequence the range cache sits in front of.
package sequence

import "github.com/krisalay/interval-cache/types"

/*
Store is a fixed-length, index-addressable sequence of integers.

It has no caching logic and no locking: RangeAggregate is the linear-scan fallback
used on a cache miss and by the uncached baseline. The query engine serializes access.
*/
type Store struct {
	data []int64
}

var _ types.Store = (*Store)(nil)

// New creates a store holding a copy of values.
func New(values []int64) *Store {
	data := make([]int64, len(values))
	copy(data, values)
	return &Store{data: data}
}

func (s *Store) Len() int {
	return len(s.data)
}

func (s *Store) Get(i int) (int64, error) {
	if err := types.CheckIndex(i, len(s.data)); err != nil {
		return 0, err
	}
	return s.data[i], nil
}

func (s *Store) Set(i int, v int64) error {
	if err := types.CheckIndex(i, len(s.data)); err != nil {
		return err
	}
	s.data[i] = v
	return nil
}

// RangeAggregate sums [left, right] inclusive by direct scan.
func (s *Store) RangeAggregate(left, right int) (int64, error) {
	if err := types.CheckInterval(left, right, len(s.data)); err != nil {
		return 0, err
	}
	var sum int64
	for _, v := range s.data[left : right+1] {
		sum += v
	}
	return sum, nil
}

// Values returns a copy of the current contents.
func (s *Store) Values() []int64 {
	out := make([]int64, len(s.data))
	copy(out, s.data)
	return out
}
