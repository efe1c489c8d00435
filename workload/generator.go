// Package workload produces the mixed stream of range queries and point updates the
// cache is benchmarked with, and runs it against a cached or uncached target.
package workload

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Kind is the type of one operation.
type Kind int

const (
	Range Kind = iota
	Update
)

func (k Kind) String() string {
	if k == Update {
		return "Update"
	}
	return "Range"
}

// Op is one operation. Range uses Left/Right; Update uses Index/Value.
type Op struct {
	Kind  Kind
	Left  int
	Right int
	Index int
	Value int64
}

// Config describes a generated workload.
type Config struct {
	// Length is the sequence length every index is drawn from.
	Length int
	// Ops is the number of operations to generate.
	Ops int
	// HotPool is the number of "hot" intervals most range queries are drawn from.
	HotPool int
	// PHot is the probability a range query uses a hot interval.
	PHot float64
	// PUpdate is the probability an operation is an update.
	PUpdate float64
	// MaxValue bounds generated values to [1, MaxValue].
	MaxValue int64
	// Seed makes generation reproducible.
	Seed uint64
}

// DefaultConfig mirrors the skew the cache was designed for: 30 hot intervals
// receiving 95% of range queries, and 3% updates.
func DefaultConfig(length, ops int) Config {
	return Config{
		Length:   length,
		Ops:      ops,
		HotPool:  30,
		PHot:     0.95,
		PUpdate:  0.03,
		MaxValue: 100,
		Seed:     1,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Length < 2:
		return errors.Errorf("length must be at least 2, got %d", c.Length)
	case c.Ops < 0:
		return errors.Errorf("ops must not be negative, got %d", c.Ops)
	case c.HotPool <= 0:
		return errors.Errorf("hot pool must be positive, got %d", c.HotPool)
	case c.PHot < 0 || c.PHot > 1:
		return errors.Errorf("p-hot must be in [0,1], got %v", c.PHot)
	case c.PUpdate < 0 || c.PUpdate > 1:
		return errors.Errorf("p-update must be in [0,1], got %v", c.PUpdate)
	case c.MaxValue < 1:
		return errors.Errorf("max value must be positive, got %d", c.MaxValue)
	}
	return nil
}

/*
Generate builds cfg.Ops operations.

Hot intervals start in the first half of the sequence and end in the second half,
so they are long and overlap heavily: a single update usually invalidates several.
*/
func Generate(cfg Config) ([]Op, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	n := cfg.Length

	hot := make([][2]int, cfg.HotPool)
	for i := range hot {
		hot[i] = [2]int{rng.IntN(n/2 + 1), n/2 + rng.IntN(n-n/2)}
	}

	ops := make([]Op, 0, cfg.Ops)
	for i := 0; i < cfg.Ops; i++ {
		if rng.Float64() < cfg.PUpdate {
			ops = append(ops, Op{
				Kind:  Update,
				Index: rng.IntN(n),
				Value: 1 + rng.Int64N(cfg.MaxValue),
			})
			continue
		}
		var l, r int
		if rng.Float64() < cfg.PHot {
			iv := hot[rng.IntN(len(hot))]
			l, r = iv[0], iv[1]
		} else {
			l = rng.IntN(n)
			r = l + rng.IntN(n-l)
		}
		ops = append(ops, Op{Kind: Range, Left: l, Right: r})
	}
	return ops, nil
}

// RandomSequence returns n values in [1, maxValue].
func RandomSequence(n int, maxValue int64, seed uint64) []int64 {
	rng := rand.New(rand.NewPCG(seed, ^seed))
	out := make([]int64, n)
	for i := range out {
		out[i] = 1 + rng.Int64N(maxValue)
	}
	return out
}
