package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/krisalay/interval-cache/types"
)

// Prometheus exports cache events as counters on the given registerer.
type Prometheus struct {
	hit          prometheus.Counter
	miss         prometheus.Counter
	fill         prometheus.Counter
	eviction     prometheus.Counter
	invalidation prometheus.Counter
}

var _ types.Metrics = (*Prometheus)(nil)

// NewPrometheus registers the range cache counters on reg.
// Passing prometheus.DefaultRegisterer twice panics, as with any duplicate registration.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		hit: f.NewCounter(prometheus.CounterOpts{
			Name: "range_cache_hit",
			Help: "The number of range queries served from the cache.",
		}),
		miss: f.NewCounter(prometheus.CounterOpts{
			Name: "range_cache_miss",
			Help: "The number of range queries that were not present in the cache.",
		}),
		fill: f.NewCounter(prometheus.CounterOpts{
			Name: "range_cache_fill",
			Help: "The number of computed aggregates stored in the cache.",
		}),
		eviction: f.NewCounter(prometheus.CounterOpts{
			Name: "range_cache_eviction",
			Help: "The number of entries evicted because the cache was full.",
		}),
		invalidation: f.NewCounter(prometheus.CounterOpts{
			Name: "range_cache_invalidated_entries",
			Help: "The number of entries removed because a covered index was updated.",
		}),
	}
}

func (p *Prometheus) Hit()      { p.hit.Inc() }
func (p *Prometheus) Miss()     { p.miss.Inc() }
func (p *Prometheus) Fill()     { p.fill.Inc() }
func (p *Prometheus) Eviction() { p.eviction.Inc() }

func (p *Prometheus) Invalidation(n int) {
	p.invalidation.Add(float64(n))
}
