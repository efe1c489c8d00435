package index

import "github.com/krisalay/interval-cache/types"

// scan keeps keys in a set and answers Covering by checking all of them.
type scan struct {
	keys map[types.Interval]struct{}
}

func NewScan() Index {
	return &scan{keys: make(map[types.Interval]struct{})}
}

func (s *scan) Insert(k types.Interval) bool {
	if _, ok := s.keys[k]; ok {
		return false
	}
	s.keys[k] = struct{}{}
	return true
}

func (s *scan) Remove(k types.Interval) bool {
	if _, ok := s.keys[k]; !ok {
		return false
	}
	delete(s.keys, k)
	return true
}

func (s *scan) Covering(point int) []types.Interval {
	var out []types.Interval
	for k := range s.keys {
		if k.Covers(point) {
			out = append(out, k)
		}
	}
	return out
}

func (s *scan) Len() int {
	return len(s.keys)
}

func (s *scan) Reset() {
	s.keys = make(map[types.Interval]struct{})
}
