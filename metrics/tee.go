package metrics

import "github.com/krisalay/interval-cache/types"

type tee []types.Metrics

// Tee returns a types.Metrics that forwards every event to each of ms.
func Tee(ms ...types.Metrics) types.Metrics {
	return tee(ms)
}

func (t tee) Hit() {
	for _, m := range t {
		m.Hit()
	}
}

func (t tee) Miss() {
	for _, m := range t {
		m.Miss()
	}
}

func (t tee) Fill() {
	for _, m := range t {
		m.Fill()
	}
}

func (t tee) Eviction() {
	for _, m := range t {
		m.Eviction()
	}
}

func (t tee) Invalidation(n int) {
	for _, m := range t {
		m.Invalidation(n)
	}
}
