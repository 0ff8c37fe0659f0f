//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// goroutine id -> default runtime
var runtimes sync.Map

// GetRuntime returns the default runtime of the calling goroutine.
func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// ReleaseRuntime drops the default runtime of the calling goroutine.
// Goroutine ids get reused, so long lived programs call it before a
// goroutine that used the default runtime exits.
func ReleaseRuntime() {
	runtimes.Delete(goid.Get())
}
