// Package reactive tracks which functions read which keys of plain keyed
// structures, and re-runs exactly those functions when the keys change.
//
// Wrap a raw *Object or *Array to get a reactive Target. Reads through it
// made while a tracked function runs subscribe that function to the key,
// writes that change a value re-run every subscriber:
//
//	counter := reactive.Wrap(reactive.NewObject(map[string]any{"num": 0}))
//
//	reactive.Effect(func() {
//		fmt.Println(reactive.Get[int](counter, "num"))
//	})
//
//	counter.Set("num", 7) // prints 7
//
// Nested objects become reactive when they are read. Dependencies are
// rebuilt on every run, so branches that are not taken stop being tracked.
//
// The package level functions use the session of the calling goroutine.
// Use NewSession for an explicit, isolated session.
package reactive
