package proxy

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "housedash_proxy"

// Metrics holds the Prometheus collectors for the proxy.
type Metrics struct {
	Requests         *prometheus.CounterVec // labels: route, code
	Cache            *prometheus.CounterVec // labels: result={hit,miss,bypass}
	UpstreamDuration prometheus.Histogram
	UpstreamErrors   prometheus.Counter
	CachePruned      prometheus.Counter
}

// NewMetrics creates the proxy metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests served by route and status code.",
		}, []string{"route", "code"}),
		Cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Duration of requests forwarded to the housing API.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		UpstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_errors_total",
			Help:      "Forwarded requests that failed before a response arrived.",
		}),
		CachePruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_pruned_total",
			Help:      "Expired cache entries removed by the prune job.",
		}),
	}

	reg.MustRegister(
		m.Requests,
		m.Cache,
		m.UpstreamDuration,
		m.UpstreamErrors,
		m.CachePruned,
	)
	return m
}
