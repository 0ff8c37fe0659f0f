package internal

// Wrap returns the proxy of target, creating it on first use.
// Proxies and non extensible targets are returned unchanged.
func (r *Runtime) Wrap(target Target) Target {
	if isNil(target) {
		return target
	}

	if _, ok := target.(*Proxy); ok {
		return target
	}

	if p := r.lookup(target); p != nil {
		return p
	}

	if !target.IsExtensible() {
		return target
	}

	p := &Proxy{raw: target, rt: r}
	r.register(target, p)

	r.metrics.wrapped()
	r.logger.Debug("wrap", "target", target.header().id())

	return p
}

func (r *Runtime) lookup(target Target) *Proxy {
	return target.header().proxy(r)
}

// register pins p on the raw side, a target once wrapped stays wrapped
// even after it stops being extensible.
func (r *Runtime) register(target Target, p *Proxy) {
	target.header().setProxy(r, p)
}

// IsReactive reports whether v carries the reactive marker.
func IsReactive(v any) bool {
	m, ok := v.(interface{ IsReactive() bool })
	return ok && !isNilValue(v) && m.IsReactive()
}

// ToRaw unwraps v down to the underlying raw value.
func ToRaw(v any) any {
	for {
		r, ok := v.(interface{ Raw() Target })
		if !ok || isNilValue(v) {
			return v
		}

		raw := r.Raw()
		if raw == nil {
			return v
		}
		v = raw
	}
}

func isNil(t Target) bool {
	return isNilValue(t)
}

func isNilValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case *Object:
		return t == nil
	case *Array:
		return t == nil
	case *Proxy:
		return t == nil
	}
	return false
}
