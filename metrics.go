package reactive

import (
	"github.com/AnatoleLucet/reactive/internal"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of one or more sessions.
//
// Metrics collected:
//   - reactive_tracks_total: new dependencies by op
//   - reactive_triggers_total: triggers that reached an effect, by op
//   - reactive_effect_runs_total: tracked runs
//   - reactive_effect_scheduled_total: re-runs handed to a scheduler
//   - reactive_effect_stops_total: stopped effects
//   - reactive_wraps_total: wrappers created
//   - reactive_evictions_total: collected targets evicted
type Metrics = internal.Metrics

// MetricsOption configures NewMetrics.
type MetricsOption func(*internal.MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *internal.MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *internal.MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *internal.MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *internal.MetricsConfig) {
		c.Registry = registry
	}
}

// NewMetrics registers the collectors. Registering twice on the same
// registry panics, create it once and share it between sessions.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := internal.DefaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return internal.NewMetrics(config)
}
