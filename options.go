package reactive

import (
	"log/slog"

	"github.com/AnatoleLucet/reactive/internal"
	"go.opentelemetry.io/otel/trace"
)

// EffectOption configures a tracked function.
type EffectOption func(*effectConfig)

type effectConfig struct {
	scheduler internal.Scheduler
	lazy      bool
}

// WithScheduler hands re-runs to fn instead of running them right away.
// Calling run executes the tracked function.
func WithScheduler(fn func(run func())) EffectOption {
	return func(c *effectConfig) {
		c.scheduler = fn
	}
}

// WithLazy skips the initial run, the function first runs when the runner is called.
func WithLazy() EffectOption {
	return func(c *effectConfig) {
		c.lazy = true
	}
}

// SessionOption configures a Session.
type SessionOption internal.Option

// WithLogger sets the logger used for debug traces of wraps, triggers and stops.
// Sessions are silent by default.
func WithLogger(logger *slog.Logger) SessionOption {
	return SessionOption(internal.WithLogger(logger))
}

// WithMetrics records the session's activity in m.
func WithMetrics(m *Metrics) SessionOption {
	return SessionOption(internal.WithMetrics(m))
}

// WithTracer records a span for every trigger and every tracked run.
func WithTracer(t trace.Tracer) SessionOption {
	return SessionOption(internal.WithTracer(t))
}

// WithTracing is WithTracer using the global OpenTelemetry tracer provider.
func WithTracing() SessionOption {
	return WithTracer(internal.GlobalTracer())
}
