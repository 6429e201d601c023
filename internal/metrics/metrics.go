package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultNamespace = "showcase"

// Metrics exports catalog cache and mutation telemetry to Prometheus.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	cacheLookups   *prometheus.CounterVec
	invalidations  *prometheus.CounterVec
	mutations      *prometheus.CounterVec
	uploadDuration prometheus.Histogram
	uploadBytes    prometheus.Counter
	purgedEntries  prometheus.Counter
}

// New registers the collectors on reg (the default registerer when nil).
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Catalog cache lookups by query and result.",
		}, []string{"query", "result"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_invalidations_total",
			Help:      "Cache tag invalidations by tag kind.",
		}, []string{"tag"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Admin mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		uploadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_duration_seconds",
			Help:      "Latency of project image uploads.",
			Buckets:   prometheus.DefBuckets,
		}),
		uploadBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_bytes_total",
			Help:      "Bytes successfully uploaded to the asset store.",
		}),
		purgedEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_purged_entries_total",
			Help:      "Expired cache entries removed by the janitor.",
		}),
	}

	collectors := []prometheus.Collector{
		m.cacheLookups, m.invalidations, m.mutations, m.uploadDuration, m.uploadBytes, m.purgedEntries,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register catalog metric: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) CacheLookup(query, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(query, result).Inc()
}

func (m *Metrics) Invalidation(tagKind string) {
	if m == nil {
		return
	}
	m.invalidations.WithLabelValues(tagKind).Inc()
}

func (m *Metrics) Mutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation, outcome).Inc()
}

// Upload tracks upload latency and, on success, payload size.
func (m *Metrics) Upload(d time.Duration, size int64, err error) {
	if m == nil {
		return
	}
	m.uploadDuration.Observe(d.Seconds())
	if err == nil && size > 0 {
		m.uploadBytes.Add(float64(size))
	}
}

func (m *Metrics) Purged(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.purgedEntries.Add(float64(n))
}
