package lib

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "htree"

// Metrics counts the work done by engines sharing it.
type Metrics struct {
	TasksSpawned       prometheus.Counter
	SpawnFailures      prometheus.Counter
	BytesHashed        prometheus.Counter
	Combines           prometheus.Counter
	FingerprintSeconds prometheus.Histogram
}

func NewMetrics() *Metrics {
	subsystem := "engine"

	return &Metrics{
		TasksSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "tasks_spawned_total",
			Help:      "Total tree tasks started, including root tasks.",
		}),
		SpawnFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "spawn_failures_total",
			Help:      "Total tasks that could not be started.",
		}),
		BytesHashed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "chunk_bytes_total",
			Help:      "Total chunk bytes fed through the hasher.",
		}),
		Combines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "combines_total",
			Help:      "Total internal nodes folded with their children.",
		}),
		FingerprintSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "fingerprint_seconds",
			Help:      "Histogram of time spent computing a whole fingerprint.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 60},
		}),
	}
}

// Collectors returns every metric for registration with a prometheus
// registry.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.TasksSpawned,
		m.SpawnFailures,
		m.BytesHashed,
		m.Combines,
		m.FingerprintSeconds,
	}
}
