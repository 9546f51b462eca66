// File: alloc/default.go
// Package alloc: process-wide allocator selection.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package alloc

import (
	"github.com/momentics/atombuf/api"
	"github.com/momentics/atombuf/internal/rawmem"
)

// Default is the byte-level allocator serving blocks of pointer-free
// element types. Replace it before any allocation traffic — blocks must be
// freed by the allocator that produced them.
var Default api.Allocator = rawmem.NewHeap()

// NewHeapAllocator returns a fresh pinned Go-heap allocator, the portable
// backing store and the one Default starts as.
func NewHeapAllocator() api.Allocator {
	return rawmem.NewHeap()
}

// NewMmapAllocator returns an allocator serving anonymous mappings outside
// the Go heap (Linux; elsewhere it falls back to the heap allocator).
// Suitable for Default only because pointerful element types never reach
// the byte-level allocator.
func NewMmapAllocator() api.Allocator {
	return rawmem.NewMmap()
}
