// File: api/hooks.go
// Package api defines the allocation failure hook.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "sync/atomic"

// OOMHook observes an unsatisfiable allocation of size bytes. A hook that
// wants to convert the failure into a recoverable condition must panic with
// its own value; a hook that returns normally falls through to the default
// abort.
type OOMHook func(size int)

var oomHook atomic.Value // OOMHook

// SetOOMHook installs h as the process-wide out-of-memory handler.
// A nil h restores the default (panic). Install before any allocation
// traffic; the hook is read atomically but not fenced against in-flight
// failures.
func SetOOMHook(h OOMHook) {
	oomHook.Store(h)
}

// OutOfMemory reports an unsatisfiable allocation and never returns.
// Allocation failure is unrecoverable by convention; there is no error
// path back to the caller.
func OutOfMemory(size int) {
	if h, ok := oomHook.Load().(OOMHook); ok && h != nil {
		h(size)
	}
	panic("atombuf: out of memory")
}
