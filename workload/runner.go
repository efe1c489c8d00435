package workload

import (
	"time"

	"github.com/pkg/errors"

	"github.com/krisalay/interval-cache/types"
)

// Target is anything that can serve the workload: the query engine or the uncached baseline.
type Target interface {
	RangeSum(left, right int) (int64, error)
	Update(index int, value int64) error
}

// uncached answers every query by scanning the store.
type uncached struct {
	store types.Store
}

// Uncached wraps a store as a Target with no cache in front of it.
func Uncached(store types.Store) Target {
	return uncached{store: store}
}

func (u uncached) RangeSum(left, right int) (int64, error) {
	return u.store.RangeAggregate(left, right)
}

func (u uncached) Update(index int, value int64) error {
	return u.store.Set(index, value)
}

// Result summarizes one pass over a workload.
type Result struct {
	Ranges   int
	Updates  int
	Duration time.Duration
	// Checksum is the sum of all range results; two correct targets over the same
	// sequence and ops produce the same checksum.
	Checksum int64
}

// Run applies ops to target in order and times the pass.
func Run(ops []Op, target Target) (Result, error) {
	var res Result
	start := time.Now()
	for i, op := range ops {
		switch op.Kind {
		case Range:
			v, err := target.RangeSum(op.Left, op.Right)
			if err != nil {
				return res, errors.Wrapf(err, "op %d: range [%d,%d]", i, op.Left, op.Right)
			}
			res.Ranges++
			res.Checksum += v
		case Update:
			if err := target.Update(op.Index, op.Value); err != nil {
				return res, errors.Wrapf(err, "op %d: update %d", i, op.Index)
			}
			res.Updates++
		default:
			return res, errors.Errorf("op %d: unknown kind %d", i, op.Kind)
		}
	}
	res.Duration = time.Since(start)
	return res, nil
}
