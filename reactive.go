package reactive

import "github.com/AnatoleLucet/reactive/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Target is a keyed structure that can be made reactive: a raw *Object or
// *Array, or the reactive wrapper returned by Wrap.
type Target = internal.Target

// Object is a plain keyed record.
type Object = internal.Object

// Array is a plain int indexed list.
type Array = internal.Array

// LengthKey reads and writes the length of an Array.
// Reading it through a wrapper tracks the same dependency as Len().
const LengthKey = internal.LengthKey

// NewObject creates a raw object holding the given fields.
// Nested *Object and *Array values become reactive when read through a wrapper.
func NewObject(fields map[string]any) *Object {
	return internal.NewObject(fields)
}

// NewArray creates a raw array holding the given items.
func NewArray(items ...any) *Array {
	return internal.NewArray(items...)
}

// Get reads key from t and converts the value to T.
// Reading through a reactive target tracks the dependency.
func Get[T any](t Target, key any) T {
	v, _ := t.Get(key)
	return as[T](v)
}

// Wrap returns the reactive version of target in the goroutine's default session.
// Wrapping is idempotent and identity stable, and non extensible targets
// are returned unchanged.
func Wrap(target Target) Target {
	return Default().Wrap(target)
}

// IsReactive reports whether v is a reactive wrapper.
func IsReactive(v any) bool {
	return internal.IsReactive(v)
}

// ToRaw returns the raw value behind v, or v itself if it is not reactive.
func ToRaw(v any) any {
	return internal.ToRaw(v)
}

// RunTracked runs fn in the goroutine's default session and re-runs it
// whenever a reactive value it read changes.
func RunTracked[T any](fn func() T, opts ...EffectOption) *Runner[T] {
	return Track(Default(), fn, opts...)
}

// Effect is RunTracked for functions without a result.
func Effect(fn func(), opts ...EffectOption) *Runner[struct{}] {
	return Default().Effect(fn, opts...)
}

// Stop detaches the runner from everything it depends on.
// The runner can still be called manually, it just won't track anymore.
func Stop[T any](r *Runner[T]) {
	r.Stop()
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	Default().Untrack(func() { result = fn() })
	return result
}

// OnCleanup registers a function called before the running effect re-runs,
// and when it is stopped.
func OnCleanup(fn func()) {
	Default().OnCleanup(fn)
}

// Runner is the handle of a tracked function.
type Runner[T any] struct {
	effect *internal.Effect
}

// Run executes the tracked function again and returns its result.
func (r *Runner[T]) Run() T {
	return as[T](r.effect.Run())
}

// Stop detaches the runner from everything it depends on.
func (r *Runner[T]) Stop() {
	r.effect.Stop()
}

// Active is false once the runner has been stopped.
func (r *Runner[T]) Active() bool {
	return r.effect.Active()
}
