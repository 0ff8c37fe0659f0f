package internal

import "iter"

// Dep is the set of effects depending on one (target, key) pair.
// Subscribers are kept in insertion order.
type Dep struct {
	key any

	subsHead *DependencyLink
	links    map[*Effect]*DependencyLink
}

func newDep(key any) *Dep {
	return &Dep{
		key:   key,
		links: make(map[*Effect]*DependencyLink),
	}
}

func (d *Dep) Has(e *Effect) bool {
	_, ok := d.links[e]
	return ok
}

func (d *Dep) Len() int { return len(d.links) }

// Subs returns an iterator over the subscribed effects.
func (d *Dep) Subs() iter.Seq[*Effect] {
	return func(yield func(*Effect) bool) {
		link := d.subsHead
		for link != nil {
			next := link.nextSub
			if !yield(link.sub) {
				return
			}

			link = next
		}
	}
}

// Snapshot copies the subscribers so they can be notified while the
// bucket is being modified.
func (d *Dep) Snapshot() []*Effect {
	subs := make([]*Effect, 0, len(d.links))
	for e := range d.Subs() {
		subs = append(subs, e)
	}
	return subs
}

// Link creates a bidirectional link between the dep and the effect.
// No-op if the effect is already subscribed.
func (d *Dep) Link(e *Effect) bool {
	if d.Has(e) {
		return false
	}

	link := &DependencyLink{dep: d, sub: e}
	d.links[e] = link

	d.addSubLink(link)
	e.addDepLink(link)

	return true
}

func (d *Dep) addSubLink(link *DependencyLink) {
	if d.subsHead == nil {
		d.subsHead = link
		link.prevSub = link // loop to self
		link.nextSub = nil
	} else {
		tail := d.subsHead.prevSub
		tail.nextSub = link
		link.prevSub = tail
		link.nextSub = nil
		d.subsHead.prevSub = link
	}
}

func (d *Dep) removeSubLink(link *DependencyLink) {
	delete(d.links, link.sub)

	// single link
	if link.prevSub == link {
		d.subsHead = nil
		return
	}

	head := d.subsHead
	if link == head {
		d.subsHead = link.nextSub
	} else {
		link.prevSub.nextSub = link.nextSub
	}

	next := link.nextSub
	if next == nil {
		next = d.subsHead
	}
	next.prevSub = link.prevSub

	link.prevSub = link
	link.nextSub = nil
}
