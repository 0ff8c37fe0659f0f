package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		original := NewObject(map[string]any{"foo": 1})
		observed := Wrap(original)

		assert.NotSame(t, original, observed)
		assert.True(t, IsReactive(observed))
		assert.False(t, IsReactive(original))

		assert.Equal(t, 1, Get[int](observed, "foo"))
		assert.True(t, observed.Has("foo"))
		assert.Equal(t, []any{"foo"}, observed.Keys())
	})

	t.Run("proxies mutations to the original", func(t *testing.T) {
		original := NewObject(map[string]any{"foo": 1})
		observed := Wrap(original)

		observed.Set("bar", 1)
		assert.Equal(t, 1, Get[int](observed, "bar"))
		assert.Equal(t, 1, Get[int](original, "bar"))

		observed.Delete("foo")
		assert.False(t, observed.Has("foo"))
		assert.False(t, original.Has("foo"))
	})

	t.Run("nested reactives", func(t *testing.T) {
		observed := Wrap(NewObject(map[string]any{
			"nested": NewObject(map[string]any{"foo": 1}),
			"array":  NewArray(NewObject(map[string]any{"bar": 2})),
		}))

		assert.True(t, IsReactive(Get[Target](observed, "nested")))
		assert.True(t, IsReactive(Get[Target](observed, "array")))
		assert.True(t, IsReactive(Get[Target](Get[Target](observed, "array"), 0)))
	})

	t.Run("wrapping a wrapped value returns the same wrapper", func(t *testing.T) {
		observed := Wrap(NewObject(map[string]any{"foo": 1}))
		assert.Same(t, observed, Wrap(observed))
	})

	t.Run("wrapping the same value twice returns the same wrapper", func(t *testing.T) {
		original := NewObject(map[string]any{"foo": 1})
		assert.Same(t, Wrap(original), Wrap(original))
	})

	t.Run("nested reads are identity stable", func(t *testing.T) {
		observed := Wrap(NewObject(map[string]any{
			"nested": NewObject(map[string]any{"foo": 1}),
		}))

		assert.Same(t, Get[Target](observed, "nested"), Get[Target](observed, "nested"))
	})

	t.Run("does not pollute the original with wrappers", func(t *testing.T) {
		original := NewObject(map[string]any{"foo": 1})
		original2 := NewObject(map[string]any{"bar": 2})
		observed := Wrap(original)
		observed2 := Wrap(original2)

		observed.Set("bar", observed2)
		assert.Same(t, observed2, Get[Target](observed, "bar"))
		assert.Same(t, original2, Get[Target](original, "bar"))
	})

	t.Run("to raw", func(t *testing.T) {
		original := NewObject(map[string]any{"foo": 1})
		observed := Wrap(original)

		assert.Same(t, original, ToRaw(observed))
		assert.Same(t, original, ToRaw(original))
		assert.Equal(t, 42, ToRaw(42))
		assert.Nil(t, ToRaw(nil))
	})

	t.Run("is reactive on non targets", func(t *testing.T) {
		assert.False(t, IsReactive(nil))
		assert.False(t, IsReactive(1))
		assert.False(t, IsReactive("foo"))
		assert.False(t, IsReactive(map[string]any{}))
	})

	t.Run("does not observe non extensible values", func(t *testing.T) {
		obj := Wrap(NewObject(map[string]any{
			"foo": NewObject(map[string]any{"a": 1}).PreventExtensions(),
			"bar": NewObject(map[string]any{"a": 1}).Freeze(),
			"baz": NewObject(map[string]any{"a": 1}).Seal(),
		}))

		assert.False(t, IsReactive(Get[Target](obj, "foo")))
		assert.False(t, IsReactive(Get[Target](obj, "bar")))
		assert.False(t, IsReactive(Get[Target](obj, "baz")))

		frozen := NewArray(1).Freeze()
		assert.Same(t, frozen, Wrap(frozen))
	})

	t.Run("nil targets are returned unchanged", func(t *testing.T) {
		var obj *Object
		assert.Nil(t, Wrap(obj))
	})

	t.Run("writes of equal non comparable values", func(t *testing.T) {
		calls := 0
		tags := []string{"a"}
		obj := Wrap(NewObject(map[string]any{"tags": tags}))

		Effect(func() {
			Get[[]string](obj, "tags")
			calls++
		})

		obj.Set("tags", tags)
		assert.Equal(t, 1, calls)

		obj.Set("tags", []string{"a"})
		assert.Equal(t, 2, calls)
	})

	t.Run("refused writes do not trigger", func(t *testing.T) {
		calls := 0
		raw := NewObject(map[string]any{"a": 1})
		obj := Wrap(raw)

		Effect(func() {
			Get[int](obj, "a")
			calls++
		})

		raw.Freeze()
		assert.False(t, obj.Set("a", 2))
		assert.False(t, obj.Delete("a"))
		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, Get[int](obj, "a"))
	})
}

func TestUntrack(t *testing.T) {
	t.Run("does not track reads", func(t *testing.T) {
		log := []int{}
		count := Wrap(NewObject(map[string]any{"n": 0}))

		Effect(func() {
			log = append(log, Untrack(func() int { return Get[int](count, "n") }))
		})

		count.Set("n", 10)

		assert.Equal(t, []int{0}, log)
	})

	t.Run("nested effects still track", func(t *testing.T) {
		log := []int{}
		count := Wrap(NewObject(map[string]any{"n": 0}))

		Untrack(func() struct{} {
			Effect(func() { log = append(log, Get[int](count, "n")) })
			return struct{}{}
		})

		count.Set("n", 1)

		assert.Equal(t, []int{0, 1}, log)
	})
}
