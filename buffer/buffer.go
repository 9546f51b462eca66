// File: buffer/buffer.go
// Package buffer implements a heap-allocated array whose backing pointer and
// capacity are independently visible to concurrent goroutines through atomic
// loads and stores.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Direct use is highly unsafe. The structure supports unsynchronized (but
// atomic) internal mutation: it guarantees atomicity of each individual
// pointer or capacity access and nothing across operations. All
// cross-operation consistency — which orderings pair up, when an index is in
// range, when a resize cannot race a reader — belongs to the consumer's own
// protocol (a ring buffer's head/tail discipline, typically). Structural
// operations (Reallocate, Deallocate) must never run concurrently with any
// other operation on the same buffer; the primitive adds no mutual
// exclusion for them, deliberately.
//
// Capacity doubles as the drop flag: 0 means no live allocation and no
// cleanup due. Every operation that changes capacity preserves that
// reading, so teardown never frees twice.

package buffer

import (
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/momentics/atombuf/alloc"
	"github.com/momentics/atombuf/api"
	"github.com/momentics/atombuf/internal/assert"
)

// noCopy trips go vet's copylocks check on accidental copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Buffer is an atomic (capacity, pointer) pair over a single exclusively
// owned allocation. The zero value is not ready for use; construct through
// Allocate or Empty.
type Buffer[T any] struct {
	_        noCopy
	capacity atomic.Uintptr
	ptr      atomic.Pointer[T]
}

// Allocate constructs a buffer with space for capacity elements of T.
//
// A capacity of 0, or a zero-sized T, stores the sentinel pointer and never
// touches an allocator. For zero-sized T the capacity field mirrors the
// requested element count; liveness in teardown paths is gated on element
// size, not capacity, so the bookkeeping stays a pure counter there.
//
// A finalizer releases a still-live allocation with SeqCst ordering if the
// owner never called Deallocate. Element pointers obtained from Get do not
// keep the buffer alive on their own: hold the Buffer for as long as any of
// them is in use.
func Allocate[T any](capacity int) *Buffer[T] {
	b := new(Buffer[T])
	b.ptr.Store(allocateOrEmpty[T](capacity))
	b.capacity.Store(uintptr(capacity))
	runtime.SetFinalizer(b, (*Buffer[T]).finalize)
	return b
}

// Empty constructs a buffer with no allocation. Behaves exactly like
// Allocate(0).
func Empty[T any]() *Buffer[T] {
	return Allocate[T](0)
}

// Get returns a pointer to the element at index. The backing pointer is
// loaded with ord; the offset itself is plain arithmetic. There is no bounds
// check against capacity — the caller's protocol must already know index is
// valid, and reading a slot mid-resize is undefined behavior unless that
// protocol forbids the race.
func (b *Buffer[T]) Get(index int, ord api.Ordering) *T {
	var zero T
	p := b.loadPtr(ord)
	return (*T)(unsafe.Add(unsafe.Pointer(p), uintptr(index)*unsafe.Sizeof(zero)))
}

// GetMut returns a pointer to the element at index for writing. Go draws no
// const distinction between the two; both names exist so read and write
// intent stay visible at call sites.
func (b *Buffer[T]) GetMut(index int, ord api.Ordering) *T {
	return b.Get(index, ord)
}

// Set stores value into the slot at index. Only the pointer load is atomic;
// the element write is a plain store. A concurrent reader must not be able
// to observe the slot until the caller publishes the index through its own
// release store.
func (b *Buffer[T]) Set(index int, value T, ord api.Ordering) {
	*b.GetMut(index, ord) = value
}

// Reallocate resizes the buffer in place to capacity elements, preserving
// the first min(old, new) of them. The capacity word is parked at 0 for the
// duration, so a teardown that observes the intermediate state sees
// "nothing to free" rather than a stale capacity it would double free with.
//
// ord is used to swap the capacity out, load the old pointer, store the new
// pointer, and store the new capacity. Not safe concurrently with any other
// operation on this buffer unless the caller externally serializes
// structural changes.
//
// Preconditions (assert builds): capacity != 0. No-op allocation-wise for
// zero-sized T; the capacity bookkeeping still follows the request.
func (b *Buffer[T]) Reallocate(capacity int, ord api.Ordering) {
	assert.That(capacity != 0, "buffer: reallocate to zero capacity")

	var zero T
	if unsafe.Sizeof(zero) == 0 {
		b.storeCapacity(uintptr(capacity), ord)
		return
	}

	oldCapacity := b.swapCapacity(0, ord)

	var p *T
	if oldCapacity == 0 {
		p = alloc.Allocate[T](capacity)
	} else {
		p = alloc.Reallocate(b.loadPtr(ord), int(oldCapacity), capacity)
	}

	b.storePtr(p, ord)
	b.storeCapacity(uintptr(capacity), ord)
}

// Deallocate releases the backing allocation, resetting the pointer to the
// sentinel and capacity to 0 with ord. Safe no-op on an already-empty
// buffer; for zero-sized T it only clears the capacity counter. Callers on
// an early teardown path use this to pick a cheaper ordering than the
// SeqCst the finalizer would apply.
func (b *Buffer[T]) Deallocate(ord api.Ordering) {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		b.storeCapacity(0, ord)
		return
	}

	capacity := b.swapCapacity(0, ord)
	if capacity == 0 {
		return
	}
	old := b.swapPtr(alloc.Empty[T](), ord)
	alloc.Deallocate(old, int(capacity))
}

// Capacity loads the capacity word with ord. 0 means no live allocation;
// for zero-sized T it mirrors the requested element count instead.
func (b *Buffer[T]) Capacity(ord api.Ordering) int {
	return int(b.loadCapacity(ord))
}

// RawCapacity exposes the atomic capacity cell so a consumer's protocol can
// CAS on it directly. The drop-flag reading of 0 must be preserved by
// anything written through here.
func (b *Buffer[T]) RawCapacity() *atomic.Uintptr {
	return &b.capacity
}

// RawPointer exposes the atomic pointer cell. Storing anything but a block
// from this library's allocation primitives (or the sentinel) is undefined
// behavior at teardown.
func (b *Buffer[T]) RawPointer() *atomic.Pointer[T] {
	return &b.ptr
}

// finalize frees a live allocation with the strongest ordering. No-op when
// capacity is already 0 or T is zero-sized, so an explicit Deallocate never
// leads to a second free.
func (b *Buffer[T]) finalize() {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return
	}
	if b.capacity.Load() == 0 {
		return
	}
	b.Deallocate(api.SeqCst)
}

func allocateOrEmpty[T any](capacity int) *T {
	var zero T
	if unsafe.Sizeof(zero) == 0 || capacity == 0 {
		return alloc.Empty[T]()
	}
	return alloc.Allocate[T](capacity)
}
