package internal

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
)

// Target is a keyed structure the runtime can observe.
// Implemented by *Object, *Array and *Proxy.
type Target interface {
	Get(key any) (any, bool)
	Set(key, value any) bool
	Delete(key any) bool
	Has(key any) bool
	Keys() []any
	Len() int
	IsExtensible() bool

	header() *header
}

var handleCounter atomic.Uint64

// header gives a raw value its stable identity and holds the proxy each
// runtime issued for it, so a proxy lives exactly as long as its raw value.
type header struct {
	once   sync.Once
	handle uint64

	mu      sync.Mutex
	proxies map[*Runtime]*Proxy
}

func (h *header) id() uint64 {
	h.once.Do(func() { h.handle = handleCounter.Add(1) })
	return h.handle
}

func (h *header) proxy(r *Runtime) *Proxy {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.proxies[r]
}

func (h *header) setProxy(r *Runtime, p *Proxy) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.proxies == nil {
		h.proxies = make(map[*Runtime]*Proxy)
	}
	h.proxies[r] = p
}

// extensibility levels, each one implies the previous
const (
	levelExtensible = iota
	levelNonExtensible
	levelSealed
	levelFrozen
)

// Object is a plain keyed record with insertion ordered keys.
type Object struct {
	hdr header

	keys   []any
	values map[any]any
	level  int
}

func NewObject(fields map[string]any) *Object {
	o := &Object{values: make(map[any]any, len(fields))}

	// map iteration order is random, keep the result stable
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	slices.Sort(names)

	for _, k := range names {
		o.keys = append(o.keys, k)
		o.values[k] = fields[k]
	}

	return o
}

func (o *Object) header() *header { return &o.hdr }

func (o *Object) Get(key any) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Set(key, value any) bool {
	if o.level >= levelFrozen {
		return false
	}

	if _, ok := o.values[key]; !ok {
		if o.level >= levelNonExtensible {
			return false
		}
		o.keys = append(o.keys, key)
	}

	o.values[key] = value
	return true
}

func (o *Object) Delete(key any) bool {
	if _, ok := o.values[key]; !ok {
		return true
	}
	if o.level >= levelSealed {
		return false
	}

	delete(o.values, key)
	if i := slices.Index(o.keys, key); i != -1 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}
	return true
}

func (o *Object) Has(key any) bool {
	_, ok := o.values[key]
	return ok
}

func (o *Object) Keys() []any { return slices.Clone(o.keys) }

func (o *Object) Len() int { return len(o.keys) }

func (o *Object) IsExtensible() bool { return o.level == levelExtensible }
func (o *Object) IsSealed() bool     { return o.level >= levelSealed }
func (o *Object) IsFrozen() bool     { return o.level >= levelFrozen }

func (o *Object) PreventExtensions() *Object { o.raise(levelNonExtensible); return o }
func (o *Object) Seal() *Object              { o.raise(levelSealed); return o }
func (o *Object) Freeze() *Object            { o.raise(levelFrozen); return o }

func (o *Object) raise(level int) {
	if level > o.level {
		o.level = level
	}
}

// LengthKey is the key under which an Array exposes its length.
// On an Object it is an ordinary key.
const LengthKey = "length"

// lengthDep is the dep Len() reads are tracked under. An Array's LengthKey
// shares it, an Object's "length" field does not.
type lengthDep struct{}

func (lengthDep) String() string { return "len()" }

var lenDep = lengthDep{}

type hole struct{}

// Array is a plain int indexed list.
// Deleting an element leaves a hole, the length does not change.
type Array struct {
	hdr header

	items []any
	level int
}

func NewArray(items ...any) *Array {
	return &Array{items: slices.Clone(items)}
}

func (a *Array) header() *header { return &a.hdr }

func (a *Array) Get(key any) (any, bool) {
	if key == LengthKey {
		return len(a.items), true
	}

	i, ok := a.index(key)
	if !ok || i >= len(a.items) {
		return nil, false
	}

	if _, empty := a.items[i].(hole); empty {
		return nil, false
	}
	return a.items[i], true
}

func (a *Array) Set(key, value any) bool {
	if a.level >= levelFrozen {
		return false
	}

	if key == LengthKey {
		n, ok := value.(int)
		if !ok || n < 0 {
			return false
		}
		return a.resize(n)
	}

	i, ok := a.index(key)
	if !ok {
		return false
	}

	if i >= len(a.items) && !a.resize(i+1) {
		return false
	}

	a.items[i] = value
	return true
}

func (a *Array) Delete(key any) bool {
	i, ok := a.index(key)
	if !ok || i >= len(a.items) {
		return true
	}
	if a.level >= levelSealed {
		return false
	}

	a.items[i] = hole{}
	return true
}

func (a *Array) Has(key any) bool {
	if key == LengthKey {
		return true
	}
	_, ok := a.Get(key)
	return ok
}

func (a *Array) Keys() []any {
	keys := make([]any, 0, len(a.items))
	for i, v := range a.items {
		if _, empty := v.(hole); !empty {
			keys = append(keys, i)
		}
	}
	return keys
}

func (a *Array) Len() int { return len(a.items) }

func (a *Array) IsExtensible() bool { return a.level == levelExtensible }
func (a *Array) IsSealed() bool     { return a.level >= levelSealed }
func (a *Array) IsFrozen() bool     { return a.level >= levelFrozen }

func (a *Array) PreventExtensions() *Array { a.raise(levelNonExtensible); return a }
func (a *Array) Seal() *Array              { a.raise(levelSealed); return a }
func (a *Array) Freeze() *Array            { a.raise(levelFrozen); return a }

func (a *Array) raise(level int) {
	if level > a.level {
		a.level = level
	}
}

func (a *Array) index(key any) (int, bool) {
	i, ok := key.(int)
	return i, ok && i >= 0
}

func (a *Array) resize(n int) bool {
	switch {
	case n > len(a.items):
		if a.level >= levelNonExtensible {
			return false
		}
		for len(a.items) < n {
			a.items = append(a.items, hole{})
		}
	case n < len(a.items):
		if a.level >= levelSealed {
			return false
		}
		a.items = a.items[:n]
	}
	return true
}

// onCollect registers fn to be called with the value's handle once the raw
// value becomes unreachable. Proxies are never registered, only raw values.
func onCollect(t Target, fn func(uint64)) {
	id := t.header().id()

	switch raw := t.(type) {
	case *Object:
		runtime.AddCleanup(raw, fn, id)
	case *Array:
		runtime.AddCleanup(raw, fn, id)
	}
}
