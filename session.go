package reactive

import "github.com/AnatoleLucet/reactive/internal"

// Session is an isolated reactive context: its own active effect,
// dependency graph and wrapper registry.
//
// A session is not safe for concurrent use. Hosts sharing one between
// goroutines must serialize every read, write and run.
type Session struct {
	rt *internal.Runtime
}

// NewSession creates an explicit session.
func NewSession(opts ...SessionOption) *Session {
	options := make([]internal.Option, 0, len(opts))
	for _, opt := range opts {
		options = append(options, internal.Option(opt))
	}

	return &Session{internal.NewRuntime(options...)}
}

// Default returns the session of the calling goroutine.
func Default() *Session {
	return &Session{internal.GetRuntime()}
}

// Release drops the calling goroutine's default session.
func Release() {
	internal.ReleaseRuntime()
}

// Wrap returns the reactive version of target in this session.
func (s *Session) Wrap(target Target) Target {
	return s.rt.Wrap(target)
}

// Effect runs fn and re-runs it whenever a reactive value it read changes.
func (s *Session) Effect(fn func(), opts ...EffectOption) *Runner[struct{}] {
	return Track(s, func() struct{} {
		fn()
		return struct{}{}
	}, opts...)
}

// Untrack runs fn without tracking any reactive dependencies.
func (s *Session) Untrack(fn func()) {
	s.rt.Untrack(fn)
}

// OnCleanup registers fn on the running effect of this session.
func (s *Session) OnCleanup(fn func()) {
	s.rt.OnCleanup(fn)
}

// Track runs fn in session s and re-runs it whenever a reactive value it
// read changes. Unless WithLazy is given, fn runs once before Track returns.
func Track[T any](s *Session, fn func() T, opts ...EffectOption) *Runner[T] {
	config := effectConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	e := s.rt.NewEffect(func() any { return fn() }, config.scheduler)
	if !config.lazy {
		e.Run()
	}

	return &Runner[T]{e}
}
