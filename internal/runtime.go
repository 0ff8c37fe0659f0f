package internal

import (
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

// Runtime is one isolated reactive session: the active effect and the deps
// of every tracked target. Issued proxies are held by their raw values.
//
// A runtime must be driven from one goroutine at a time. mu only guards the
// maps, since collected targets are evicted from the cleanup goroutine.
type Runtime struct {
	mu sync.Mutex

	tracker *Tracker

	// target handle -> key -> dep
	deps map[uint64]map[any]*Dep

	// targets with a registered eviction cleanup
	watched map[uint64]struct{}

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

type Option func(*Runtime)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Runtime) { r.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(r *Runtime) { r.tracer = t }
}

func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		tracker: NewTracker(),
		deps:    make(map[uint64]map[any]*Dep),
		watched: make(map[uint64]struct{}),
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.logger = r.logger.With("component", "reactive")

	return r
}

func (r *Runtime) Logger() *slog.Logger {
	return r.logger
}

func (r *Runtime) CurrentEffect() *Effect {
	return r.tracker.CurrentEffect()
}

func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

// OnCleanup registers fn on the running effect, if any.
func (r *Runtime) OnCleanup(fn func()) {
	if e := r.tracker.CurrentEffect(); e != nil && e.active {
		e.OnCleanup(fn)
	}
}

// watch evicts the target from the runtime once it is collected.
// Must be called with mu held.
func (r *Runtime) watch(target Target) {
	id := target.header().id()
	if _, ok := r.watched[id]; ok {
		return
	}

	r.watched[id] = struct{}{}
	onCollect(target, r.evict)
}

func (r *Runtime) evict(id uint64) {
	r.mu.Lock()
	delete(r.deps, id)
	delete(r.watched, id)
	r.mu.Unlock()

	r.metrics.evicted()
}
