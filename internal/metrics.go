package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors of a runtime.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reactive").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reactive",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors updated by a runtime.
// A nil *Metrics records nothing.
type Metrics struct {
	Tracks    *prometheus.CounterVec
	Triggers  *prometheus.CounterVec
	Runs      prometheus.Counter
	Scheduled prometheus.Counter
	Stops     prometheus.Counter
	Wraps     prometheus.Counter
	Evictions prometheus.Counter
}

func NewMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		Tracks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tracks_total",
			Help:        "Total number of new dependencies recorded",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		Triggers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "triggers_total",
			Help:        "Total number of triggers that reached at least one effect",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		Runs:      counter("effect_runs_total", "Total number of tracked effect runs"),
		Scheduled: counter("effect_scheduled_total", "Total number of re-runs handed to a scheduler"),
		Stops:     counter("effect_stops_total", "Total number of stopped effects"),
		Wraps:     counter("wraps_total", "Total number of proxies created"),
		Evictions: counter("evictions_total", "Total number of collected targets evicted from the stores"),
	}
}

func (m *Metrics) tracked(op OpType) {
	if m != nil {
		m.Tracks.WithLabelValues(op.String()).Inc()
	}
}

func (m *Metrics) triggered(op OpType) {
	if m != nil {
		m.Triggers.WithLabelValues(op.String()).Inc()
	}
}

func (m *Metrics) effectRun() {
	if m != nil {
		m.Runs.Inc()
	}
}

func (m *Metrics) effectScheduled() {
	if m != nil {
		m.Scheduled.Inc()
	}
}

func (m *Metrics) effectStopped() {
	if m != nil {
		m.Stops.Inc()
	}
}

func (m *Metrics) wrapped() {
	if m != nil {
		m.Wraps.Inc()
	}
}

func (m *Metrics) evicted() {
	if m != nil {
		m.Evictions.Inc()
	}
}
