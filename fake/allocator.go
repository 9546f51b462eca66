// Package fake
// Author: momentics <momentics@gmail.com>
//
// Instrumented allocator implementations for tests. The recording
// allocator wraps any api.Allocator and journals every call in FIFO order,
// so tests can assert exactly which allocator traffic an operation
// produced (including none at all).

package fake

import (
	"sync"
	"unsafe"

	"github.com/eapache/queue"

	"github.com/momentics/atombuf/api"
)

// Op identifies a recorded allocator call.
type Op uint8

const (
	OpAllocate Op = iota
	OpReallocate
	OpFree
)

func (o Op) String() string {
	switch o {
	case OpAllocate:
		return "allocate"
	case OpReallocate:
		return "reallocate"
	case OpFree:
		return "free"
	default:
		return "unknown"
	}
}

// Event is one allocator call. Size carries the byte size requested (the
// new size, for reallocations).
type Event struct {
	Op   Op
	Size int
	Ptr  unsafe.Pointer
}

// Allocator wraps an inner api.Allocator and records every call.
// Safe for concurrent use.
type Allocator struct {
	mu      sync.Mutex
	inner   api.Allocator
	journal *queue.Queue
}

// NewAllocator wraps inner with a recording layer.
func NewAllocator(inner api.Allocator) *Allocator {
	return &Allocator{
		inner:   inner,
		journal: queue.New(),
	}
}

func (a *Allocator) Allocate(size int) unsafe.Pointer {
	p := a.inner.Allocate(size)
	a.record(Event{Op: OpAllocate, Size: size, Ptr: p})
	return p
}

func (a *Allocator) Reallocate(ptr unsafe.Pointer, oldSize, newSize int) unsafe.Pointer {
	p := a.inner.Reallocate(ptr, oldSize, newSize)
	a.record(Event{Op: OpReallocate, Size: newSize, Ptr: p})
	return p
}

func (a *Allocator) Free(ptr unsafe.Pointer, size int) {
	a.inner.Free(ptr, size)
	a.record(Event{Op: OpFree, Size: size, Ptr: ptr})
}

func (a *Allocator) Stats() api.AllocStats {
	return a.inner.Stats()
}

func (a *Allocator) record(ev Event) {
	a.mu.Lock()
	a.journal.Add(ev)
	a.mu.Unlock()
}

// Events returns the number of recorded calls without consuming them.
func (a *Allocator) Events() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.journal.Length()
}

// Count returns the number of recorded calls of kind op.
func (a *Allocator) Count(op Op) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for i := 0; i < a.journal.Length(); i++ {
		if a.journal.Get(i).(Event).Op == op {
			n++
		}
	}
	return n
}

// Drain removes and returns all recorded events, oldest first.
func (a *Allocator) Drain() []Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Event, 0, a.journal.Length())
	for a.journal.Length() > 0 {
		out = append(out, a.journal.Remove().(Event))
	}
	return out
}
