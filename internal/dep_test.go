package internal

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect[T any](seq iter.Seq[T]) []T {
	out := []T{}
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func TestDep(t *testing.T) {
	r := NewRuntime()

	t.Run("links both ways", func(t *testing.T) {
		d := newDep("a")
		e := r.NewEffect(func() any { return nil }, nil)

		assert.True(t, d.Link(e))
		assert.False(t, d.Link(e))

		assert.Equal(t, []*Effect{e}, collect(d.Subs()))
		assert.Equal(t, []*Dep{d}, collect(e.Deps()))
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		d := newDep("a")
		e1 := r.NewEffect(func() any { return nil }, nil)
		e2 := r.NewEffect(func() any { return nil }, nil)
		e3 := r.NewEffect(func() any { return nil }, nil)

		d.Link(e1)
		d.Link(e2)
		d.Link(e3)

		assert.Equal(t, []*Effect{e1, e2, e3}, d.Snapshot())
	})

	t.Run("unlinks from every dep", func(t *testing.T) {
		d1, d2 := newDep("a"), newDep("b")
		e1 := r.NewEffect(func() any { return nil }, nil)
		e2 := r.NewEffect(func() any { return nil }, nil)
		e3 := r.NewEffect(func() any { return nil }, nil)

		for _, e := range []*Effect{e1, e2, e3} {
			d1.Link(e)
			d2.Link(e)
		}

		e2.ClearDeps()
		assert.Equal(t, []*Effect{e1, e3}, d1.Snapshot())
		assert.Equal(t, []*Effect{e1, e3}, d2.Snapshot())
		assert.Empty(t, collect(e2.Deps()))

		e3.ClearDeps()
		assert.Equal(t, []*Effect{e1}, d1.Snapshot())

		e1.ClearDeps()
		assert.Equal(t, 0, d1.Len())
		assert.Nil(t, d1.subsHead)

		// relinking after removal
		d1.Link(e3)
		d1.Link(e1)
		assert.Equal(t, []*Effect{e3, e1}, d1.Snapshot())
	})
}

func TestTrack(t *testing.T) {
	t.Run("no active effect", func(t *testing.T) {
		r := NewRuntime()
		target := NewObject(nil)

		r.Track(target, OpGet, "a")
		assert.Nil(t, r.Dep(target, "a"))
		assert.Equal(t, 0, r.TargetCount())
	})

	t.Run("registers both ways", func(t *testing.T) {
		r := NewRuntime()
		target := NewObject(map[string]any{"a": 1})

		e := r.NewEffect(func() any {
			r.Track(target, OpGet, "a")
			r.Track(target, OpSet, "a")
			return nil
		}, nil)
		e.Run()

		dep := r.Dep(target, "a")
		assert.Equal(t, []*Effect{e}, dep.Snapshot())
		assert.Equal(t, []*Dep{dep}, collect(e.Deps()))

		e.Stop()
		assert.Equal(t, 0, dep.Len())
		assert.Empty(t, collect(e.Deps()))
	})

	t.Run("parent is the effect running before", func(t *testing.T) {
		r := NewRuntime()

		var inner *Effect
		outer := r.NewEffect(func() any {
			inner.Run()
			assert.Same(t, inner.Parent(), r.CurrentEffect())
			return nil
		}, nil)
		inner = r.NewEffect(func() any {
			assert.Same(t, inner, r.CurrentEffect())
			return nil
		}, nil)

		outer.Run()
		assert.Nil(t, r.CurrentEffect())
		assert.Nil(t, outer.Parent())
	})

	t.Run("trigger without deps", func(t *testing.T) {
		r := NewRuntime()

		assert.NotPanics(t, func() {
			r.Trigger(NewObject(nil), OpSet, "a")
		})
	})
}

func TestOpType(t *testing.T) {
	assert.Equal(t, "get", OpGet.String())
	assert.Equal(t, "set", OpSet.String())
	assert.Equal(t, "delete", OpDelete.String())
	assert.Equal(t, "op(9)", OpType(9).String())
}
