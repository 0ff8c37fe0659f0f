package internal

import "reflect"

// Proxy intercepts the reads and writes of one raw target.
// Reads subscribe the active effect, writes notify the subscribers.
type Proxy struct {
	raw Target
	rt  *Runtime
}

func (p *Proxy) header() *header { return p.raw.header() }

// IsReactive is the reactive marker.
func (p *Proxy) IsReactive() bool { return true }

// Raw returns the raw target, but only through the proxy the runtime issued for it.
func (p *Proxy) Raw() Target {
	if p.rt.lookup(p.raw) != p {
		return nil
	}
	return p.raw
}

func (p *Proxy) Runtime() *Runtime { return p.rt }

// Get reads key and wraps nested targets on the way out.
func (p *Proxy) Get(key any) (any, bool) {
	v, ok := p.raw.Get(key)
	p.rt.Track(p.raw, OpGet, p.depKey(key))

	if t, isTarget := v.(Target); isTarget {
		return p.rt.Wrap(t), ok
	}
	return v, ok
}

// Set stores the raw form of value and triggers key if it changed.
func (p *Proxy) Set(key, value any) bool {
	value = ToRaw(value)

	old, _ := p.raw.Get(key)
	n := p.raw.Len()

	if !p.raw.Set(key, value) {
		return false
	}

	dk := p.depKey(key)
	if !isEqual(old, value) {
		p.rt.Trigger(p.raw, OpSet, dk)
	}
	if dk != lenDep && p.raw.Len() != n {
		p.rt.Trigger(p.raw, OpSet, lenDep)
	}

	return true
}

// Delete removes key and triggers it if it existed.
func (p *Proxy) Delete(key any) bool {
	had := p.raw.Has(key)
	n := p.raw.Len()

	ok := p.raw.Delete(key)
	if had && ok {
		p.rt.Trigger(p.raw, OpDelete, p.depKey(key))
	}
	if ok && p.raw.Len() != n {
		p.rt.Trigger(p.raw, OpDelete, lenDep)
	}

	return ok
}

func (p *Proxy) Has(key any) bool { return p.raw.Has(key) }

func (p *Proxy) Keys() []any { return p.raw.Keys() }

func (p *Proxy) Len() int {
	p.rt.Track(p.raw, OpGet, lenDep)
	return p.raw.Len()
}

func (p *Proxy) depKey(key any) any {
	if _, ok := p.raw.(*Array); ok && key == LengthKey {
		return lenDep
	}
	return key
}

func (p *Proxy) IsExtensible() bool { return p.raw.IsExtensible() }

// isEqual is reference equality: values of non comparable dynamic types
// are equal only when they share the same backing storage.
func isEqual(a, b any) (equal bool) {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta == nil {
		return true
	}

	switch ta.Kind() {
	case reflect.Slice:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Func:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}

	// structs holding non comparable values panic on ==
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()

	return a == b
}
