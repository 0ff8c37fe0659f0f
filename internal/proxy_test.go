package internal

import (
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProxy(t *testing.T) {
	t.Run("raw is only exposed through the issued proxy", func(t *testing.T) {
		r := NewRuntime()
		raw := NewObject(nil)

		p := r.Wrap(raw).(*Proxy)
		assert.Same(t, raw, p.Raw())

		stray := &Proxy{raw: raw, rt: r}
		assert.True(t, stray.IsReactive())
		assert.Nil(t, stray.Raw())
		assert.Same(t, stray, ToRaw(stray))
	})

	t.Run("to raw collapses chains", func(t *testing.T) {
		r := NewRuntime()
		raw := NewObject(nil)

		p := r.Wrap(raw)
		assert.Same(t, raw, ToRaw(p))
		assert.Same(t, raw, ToRaw(ToRaw(p)))
	})

	t.Run("writes store raw values", func(t *testing.T) {
		r := NewRuntime()
		raw, nested := NewObject(nil), NewObject(nil)

		p := r.Wrap(raw)
		p.Set("nested", r.Wrap(nested))

		v, _ := raw.Get("nested")
		assert.Same(t, nested, v)
	})

	t.Run("set triggers once per change", func(t *testing.T) {
		r := NewRuntime()
		p := r.Wrap(NewObject(map[string]any{"a": 1}))

		calls := 0
		e := r.NewEffect(func() any {
			p.Get("a")
			calls++
			return nil
		}, nil)
		e.Run()

		p.Set("a", 1)
		p.Set("a", 2)
		p.Set("a", 3)
		assert.Equal(t, 3, calls)
	})

	t.Run("len tracks object keys", func(t *testing.T) {
		r := NewRuntime()
		p := r.Wrap(NewObject(nil))

		lens := []int{}
		r.NewEffect(func() any {
			lens = append(lens, p.Len())
			return nil
		}, nil).Run()

		p.Set("a", 1)
		p.Set("a", 2)
		p.Delete("a")

		assert.Equal(t, []int{0, 1, 0}, lens)
	})

	t.Run("an object field named length is not its len", func(t *testing.T) {
		r := NewRuntime()
		p := r.Wrap(NewObject(map[string]any{LengthKey: 1}))

		lens, fields := 0, 0
		r.NewEffect(func() any {
			lens++
			return p.Len()
		}, nil).Run()
		r.NewEffect(func() any {
			fields++
			v, _ := p.Get(LengthKey)
			return v
		}, nil).Run()

		p.Set(LengthKey, 2)
		assert.Equal(t, 1, lens)
		assert.Equal(t, 2, fields)

		p.Set("other", 1)
		assert.Equal(t, 2, lens)
		assert.Equal(t, 2, fields)
	})

	t.Run("array length key and len share a dep", func(t *testing.T) {
		r := NewRuntime()
		p := r.Wrap(NewArray("a", "b"))

		lens, reads := 0, 0
		r.NewEffect(func() any {
			lens++
			return p.Len()
		}, nil).Run()
		r.NewEffect(func() any {
			reads++
			v, _ := p.Get(LengthKey)
			return v
		}, nil).Run()

		p.Set(2, "c")
		p.Set(LengthKey, 1)

		assert.Equal(t, 3, lens)
		assert.Equal(t, 3, reads)
	})
}

func TestEviction(t *testing.T) {
	r := NewRuntime()

	func() {
		raw := NewObject(map[string]any{"a": 1})
		p := r.Wrap(raw)

		e := r.NewEffect(func() any {
			v, _ := p.Get("a")
			return v
		}, nil)
		e.Run()
		e.Stop()
	}()

	assert.Eventually(t, func() bool {
		runtime.GC()
		return r.TargetCount() == 0
	}, 5*time.Second, 10*time.Millisecond)

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Empty(t, r.watched)
}

func TestRegistry(t *testing.T) {
	t.Run("a frozen target stays wrapped across collections", func(t *testing.T) {
		r := NewRuntime()
		raw := NewObject(map[string]any{"a": 1})

		addr := fmt.Sprintf("%p", r.Wrap(raw))
		raw.Freeze()

		runtime.GC()
		runtime.GC()

		p := r.Wrap(raw)
		assert.True(t, IsReactive(p))
		assert.Equal(t, addr, fmt.Sprintf("%p", p))
		runtime.KeepAlive(raw)
	})

	t.Run("each runtime issues its own proxy", func(t *testing.T) {
		r1, r2 := NewRuntime(), NewRuntime()
		raw := NewObject(nil)

		p1, p2 := r1.Wrap(raw), r2.Wrap(raw)
		assert.NotSame(t, p1, p2)
		assert.Same(t, p1, r1.Wrap(raw))
		assert.Same(t, p2, r2.Wrap(raw))
	})
}

func TestIsEqual(t *testing.T) {
	slice := []int{1, 2}
	m := map[string]int{}
	type pair struct{ a, b any }

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nils", nil, nil, true},
		{"nil and value", nil, 0, false},
		{"same int", 1, 1, true},
		{"different types", 1, int64(1), false},
		{"strings", "a", "b", false},
		{"same slice", slice, slice, true},
		{"resliced", slice, slice[:1], false},
		{"equal content slices", []int{1}, []int{1}, false},
		{"same map", m, m, true},
		{"other map", m, map[string]int{}, false},
		{"comparable struct", pair{1, 2}, pair{1, 2}, true},
		{"struct holding a slice", pair{slice, 1}, pair{slice, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isEqual(tt.a, tt.b))
		})
	}
}
