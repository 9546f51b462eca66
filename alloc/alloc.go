// File: alloc/alloc.go
// Package alloc implements raw allocation primitives sized in units of a
// generic element type.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// These are the leaves the atomic buffer is built on. Preconditions are
// checked only in assert builds; in release builds they are assumed, and
// violating them corrupts memory silently. Every path that converts an
// element capacity into a byte size goes through allocationSize, so an
// overflowing request always panics before the allocator is asked for an
// under-sized block.
//
// Element types that contain pointers are placed in typed blocks on the Go
// heap so the collector scans the values stored in them. Pointer-free types
// go through the configured byte-level Allocator, which may serve memory
// the collector never sees.

package alloc

import (
	"math"
	"sync"
	"unsafe"

	"github.com/momentics/atombuf/internal/assert"
)

// typedPins keeps make-backed blocks of pointerful element types reachable,
// keyed by base address. Pointer-free blocks are owned by Default instead.
var typedPins sync.Map // unsafe.Pointer -> backing slice

// Allocate returns a block sized for exactly capacity elements of T.
//
// Preconditions (assert builds): capacity != 0 and T is not zero-sized.
// Panics with "capacity overflow" when capacity*sizeof(T) does not fit in
// int; aborts through the out-of-memory hook when the allocator cannot
// satisfy the request. Never returns nil.
func Allocate[T any](capacity int) *T {
	var zero T
	size := allocationSize(capacity, unsafe.Sizeof(zero))

	if hasPointers[T]() {
		block := make([]T, capacity)
		p := unsafe.Pointer(&block[0])
		typedPins.Store(p, block)
		return (*T)(p)
	}
	return (*T)(Default.Allocate(size))
}

// Reallocate grows or shrinks a block previously returned by Allocate or
// Reallocate for the same T, preserving the first min(oldCapacity,
// newCapacity) elements byte for byte.
//
// Preconditions (assert builds): both capacities nonzero, T not zero-sized,
// oldCapacity is old's true capacity. Failure modes match Allocate.
func Reallocate[T any](old *T, oldCapacity, newCapacity int) *T {
	var zero T
	oldSize := allocationSize(oldCapacity, unsafe.Sizeof(zero))
	newSize := allocationSize(newCapacity, unsafe.Sizeof(zero))

	if hasPointers[T]() {
		block := make([]T, newCapacity)
		copy(block, unsafe.Slice(old, oldCapacity)[:min(oldCapacity, newCapacity)])
		p := unsafe.Pointer(&block[0])
		typedPins.Store(p, block)
		typedPins.Delete(unsafe.Pointer(old))
		return (*T)(p)
	}
	return (*T)(Default.Reallocate(unsafe.Pointer(old), oldSize, newSize))
}

// Deallocate frees a block previously returned by Allocate or Reallocate.
// capacity must be the block's true current capacity; a mismatched pair is
// undefined behavior.
func Deallocate[T any](old *T, capacity int) {
	var zero T
	size := allocationSize(capacity, unsafe.Sizeof(zero))

	if hasPointers[T]() {
		_, ok := typedPins.LoadAndDelete(unsafe.Pointer(old))
		assert.That(ok, "alloc: deallocate of unknown block")
		return
	}
	Default.Free(unsafe.Pointer(old), size)
}

// allocationSize is the single chokepoint converting an element capacity to
// a byte size. It panics rather than wrapping, so no caller can hand the
// allocator a smaller request than the capacity implies.
func allocationSize(capacity int, sizeOf uintptr) int {
	assert.That(capacity != 0, "alloc: zero capacity")
	assert.That(sizeOf != 0, "alloc: zero-sized element")

	if capacity < 0 || uintptr(capacity) > math.MaxInt/sizeOf {
		panic("capacity overflow")
	}
	return capacity * int(sizeOf)
}
