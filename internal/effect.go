package internal

import (
	"iter"
	"sync/atomic"
)

var effectCounter atomic.Uint64

// Scheduler is called instead of re-running an effect when one of its
// dependencies changes. run re-executes the effect.
type Scheduler func(run func())

// Effect is a re-runnable function that records the targets it reads on each run.
type Effect struct {
	rt *Runtime
	id uint64

	active bool

	fn        func() any
	scheduler Scheduler

	// the effect that was running when this one started
	parent *Effect

	depsHead *DependencyLink

	// called before the next run and on stop
	cleanups []func()
}

func (r *Runtime) NewEffect(fn func() any, scheduler Scheduler) *Effect {
	return &Effect{
		rt:        r,
		id:        effectCounter.Add(1),
		active:    true,
		fn:        fn,
		scheduler: scheduler,
	}
}

func (e *Effect) ID() uint64 { return e.id }

func (e *Effect) Active() bool { return e.active }

func (e *Effect) Parent() *Effect { return e.parent }

// Run executes the effect, rebuilding its dependencies from scratch.
// A stopped effect is still callable but no longer tracks anything.
func (e *Effect) Run() any {
	if !e.active {
		return e.fn()
	}

	e.rt.metrics.effectRun()

	var result any
	e.rt.traced("reactive.run", effectAttrs(e), func() {
		e.rt.tracker.RunWithEffect(e, func() {
			// unlinked first, writes made by cleanups must not re-run e
			e.ClearDeps()
			e.rt.tracker.RunUntracked(e.runCleanups)

			result = e.fn()
		})
	})

	return result
}

// Stop removes the effect from every dep permanently.
func (e *Effect) Stop() {
	if !e.active {
		return
	}
	e.active = false

	e.ClearDeps()
	e.runCleanups()

	e.rt.metrics.effectStopped()
	e.rt.logger.Debug("effect stopped", "effect", e.id)
}

// schedule is what a trigger does to a dependent effect.
func (e *Effect) schedule() {
	if e.scheduler != nil {
		e.rt.metrics.effectScheduled()
		e.scheduler(func() { e.Run() })
		return
	}

	e.Run()
}

func (e *Effect) OnCleanup(fn func()) {
	e.cleanups = append(e.cleanups, fn)
}

func (e *Effect) runCleanups() {
	cleanups := e.cleanups
	e.cleanups = nil

	for _, fn := range cleanups {
		fn()
	}
}

// Deps returns an iterator over all the deps the effect is subscribed to.
func (e *Effect) Deps() iter.Seq[*Dep] {
	return func(yield func(*Dep) bool) {
		link := e.depsHead
		for link != nil {
			if !yield(link.dep) {
				return
			}

			link = link.nextDep
		}
	}
}

// ClearDeps removes the effect from every dep it joined.
func (e *Effect) ClearDeps() {
	for link := e.depsHead; link != nil; {
		next := link.nextDep
		link.dep.removeSubLink(link)
		link = next
	}

	e.depsHead = nil
}

func (e *Effect) addDepLink(link *DependencyLink) {
	if e.depsHead == nil {
		e.depsHead = link
		link.prevDep = link // loop to self
		link.nextDep = nil
	} else {
		tail := e.depsHead.prevDep
		tail.nextDep = link
		link.prevDep = tail
		link.nextDep = nil
		e.depsHead.prevDep = link
	}
}
