package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace. Blank values keep "bestxi".
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if ns := strings.TrimSpace(namespace); ns != "" {
			m.namespace = ns
		}
	}
}

// WithSubsystem sets the metric subsystem. Blank values keep "selector".
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if sub := strings.TrimSpace(subsystem); sub != "" {
			m.subsystem = sub
		}
	}
}

// WithHistogramBuckets sets the latency buckets in milliseconds. Buckets are
// copied and sorted; an empty list keeps the defaults.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) == 0 {
			return
		}
		b := append([]float64(nil), buckets...)
		sort.Float64s(b)
		m.histogramBuckets = b
	}
}

// WithRefreshInterval sets how often system gauges are sampled.
func WithRefreshInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.refreshInterval = interval
		}
	}
}

// WithCustomLabels attaches constant labels, e.g. the deployment or the
// dataset name, to every metric. Labels with blank names are dropped.
func WithCustomLabels(labels map[string]string) Option {
	return func(m *Manager) {
		for k, v := range labels {
			if k = strings.TrimSpace(k); k != "" {
				m.customLabels[k] = v
			}
		}
	}
}

// WithPrometheusRegistry registers metrics with registry instead of the
// default registerer.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
