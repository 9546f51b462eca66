// File: api/alloc.go
// Package api defines the block allocator contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "unsafe"

// Allocator is a byte-level block allocator. Sizes are exact: the size
// passed to Free and the oldSize passed to Reallocate must match what the
// block was last allocated or reallocated with, byte for byte. Mismatched
// pairs are undefined behavior, not a reported error.
//
// Implementations must be safe for concurrent use; calls for a single block
// are serialized by the block's owner.
type Allocator interface {
	// Allocate returns a block of exactly size bytes. It never returns
	// nil: on exhaustion it invokes the out-of-memory hook and does not
	// come back.
	Allocate(size int) unsafe.Pointer

	// Reallocate resizes a block previously returned by Allocate or
	// Reallocate, preserving min(oldSize, newSize) bytes. The returned
	// pointer may differ from ptr, in which case ptr is dead.
	Reallocate(ptr unsafe.Pointer, oldSize, newSize int) unsafe.Pointer

	// Free releases a block. size must be the block's current exact size.
	Free(ptr unsafe.Pointer, size int)

	// Stats returns a snapshot of allocation counters.
	Stats() AllocStats
}

// AllocStats aggregates allocator activity for instrumentation and tests.
type AllocStats struct {
	TotalAllocs   int64
	TotalReallocs int64
	TotalFrees    int64
	BytesLive     int64
}
