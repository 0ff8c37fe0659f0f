//go:build wasm

package internal

import "sync"

// wasm runs a single goroutine that matters, one runtime is enough
var globalRuntime = sync.OnceValue(func() *Runtime {
	return NewRuntime()
})

func GetRuntime() *Runtime {
	return globalRuntime()
}

func ReleaseRuntime() {}
