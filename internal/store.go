package internal

import "fmt"

// OpType is the kind of access that tracked or triggered a dep.
// All op types on a key share the same dep.
type OpType int

const (
	OpGet OpType = iota
	OpSet
	OpDelete
)

func (o OpType) String() string {
	switch o {
	case OpGet:
		return "get"
	case OpSet:
		return "set"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Track subscribes the active effect to (target, key).
func (r *Runtime) Track(target Target, op OpType, key any) {
	if !r.tracker.ShouldTrack() {
		return
	}

	dep := r.dep(target, key, true)
	if dep.Link(r.tracker.CurrentEffect()) {
		r.metrics.tracked(op)
	}
}

// Trigger notifies every effect subscribed to (target, key).
func (r *Runtime) Trigger(target Target, op OpType, key any) {
	dep := r.dep(target, key, false)
	if dep == nil || dep.Len() == 0 {
		return
	}

	// clonning to avoid mutation during iteration
	effects := dep.Snapshot()

	r.metrics.triggered(op)
	r.logger.Debug("trigger", "op", op, "key", key, "dependents", len(effects))

	r.traced("reactive.trigger", triggerAttrs(op, key, len(effects)), func() {
		// effects stopped by one notified before them still run once, untracked
		for _, e := range effects {
			e.schedule()
		}
	})
}

// Dep returns the dep of (target, key), or nil if nothing ever tracked it.
func (r *Runtime) Dep(target Target, key any) *Dep {
	return r.dep(target, key, false)
}

func (r *Runtime) dep(target Target, key any, create bool) *Dep {
	id := target.header().id()

	r.mu.Lock()
	defer r.mu.Unlock()

	deps, ok := r.deps[id]
	if !ok {
		if !create {
			return nil
		}

		deps = make(map[any]*Dep)
		r.deps[id] = deps
		r.watch(target)
	}

	dep, ok := deps[key]
	if !ok && create {
		dep = newDep(key)
		deps[key] = dep
	}

	return dep
}

// TargetCount returns the number of targets with at least one dep.
func (r *Runtime) TargetCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.deps)
}
