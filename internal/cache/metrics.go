package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Hits           prometheus.Counter
	Misses         prometheus.Counter
	UpstreamErrors prometheus.Counter
	StoreErrors    prometheus.Counter
}

// NewMetrics creates the cache counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rates",
			Name:      "cache_hits_total",
			Help:      "Cache hit count",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rates",
			Name:      "cache_misses_total",
			Help:      "Cache miss count",
		}),
		UpstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rates",
			Name:      "upstream_errors_total",
			Help:      "Failed upstream fetches after a cache miss",
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rates",
			Name:      "cache_store_errors_total",
			Help:      "Failed cache store reads and writes",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Hits, m.Misses, m.UpstreamErrors, m.StoreErrors)
	}
	return m
}

func (m *Metrics) hit() {
	if m != nil {
		m.Hits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.Misses.Inc()
	}
}

func (m *Metrics) upstreamError() {
	if m != nil {
		m.UpstreamErrors.Inc()
	}
}

func (m *Metrics) storeError() {
	if m != nil {
		m.StoreErrors.Inc()
	}
}
