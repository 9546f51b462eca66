// File: internal/rawmem/heap.go
// Package rawmem implements the Go-heap block allocator.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Callers hold only raw pointers into the blocks, so every live block is
// pinned in a table keyed by base address; the collector sees the table and
// keeps the backing array reachable. The blank import below declares the
// raw-address assumption this scheme rests on: heap objects do not move.

package rawmem

import (
	"sync"
	"sync/atomic"
	"unsafe"

	_ "go4.org/unsafe/assume-no-moving-gc"

	"github.com/momentics/atombuf/api"
	"github.com/momentics/atombuf/internal/assert"
)

// Heap allocates blocks from the Go heap. Allocation failure is handled by
// the runtime (throw), matching the abort-on-OOM policy; the api hook only
// fires for requests the runtime cannot even be asked for.
type Heap struct {
	mu   sync.Mutex
	pins map[unsafe.Pointer][]byte

	allocs   atomic.Int64
	reallocs atomic.Int64
	frees    atomic.Int64
	live     atomic.Int64
}

// NewHeap creates an empty heap allocator.
func NewHeap() *Heap {
	return &Heap{pins: make(map[unsafe.Pointer][]byte)}
}

// Allocate returns a zeroed block of exactly size bytes. The Go allocator
// aligns byte blocks of this size to at least the platform word, which is
// the maximum alignment any Go element type requires.
func (h *Heap) Allocate(size int) unsafe.Pointer {
	if size <= 0 {
		api.OutOfMemory(size)
	}
	block := make([]byte, size)
	p := unsafe.Pointer(&block[0])

	h.mu.Lock()
	h.pins[p] = block
	h.mu.Unlock()

	h.allocs.Add(1)
	h.live.Add(int64(size))
	return p
}

// Reallocate moves the block to a new allocation of newSize bytes,
// preserving min(oldSize, newSize) bytes, and unpins the old block.
func (h *Heap) Reallocate(ptr unsafe.Pointer, oldSize, newSize int) unsafe.Pointer {
	if newSize <= 0 {
		api.OutOfMemory(newSize)
	}
	block := make([]byte, newSize)
	p := unsafe.Pointer(&block[0])

	h.mu.Lock()
	old, ok := h.pins[ptr]
	assert.That(ok, "rawmem: reallocate of unknown block")
	assert.That(len(old) == oldSize, "rawmem: reallocate with mismatched size")
	copy(block, old[:min(oldSize, newSize)])
	delete(h.pins, ptr)
	h.pins[p] = block
	h.mu.Unlock()

	h.reallocs.Add(1)
	h.live.Add(int64(newSize) - int64(oldSize))
	return p
}

// Free unpins the block; the collector reclaims it once no other reference
// remains. size must match the block's current size exactly.
func (h *Heap) Free(ptr unsafe.Pointer, size int) {
	h.mu.Lock()
	old, ok := h.pins[ptr]
	assert.That(ok, "rawmem: free of unknown block")
	assert.That(len(old) == size, "rawmem: free with mismatched size")
	delete(h.pins, ptr)
	h.mu.Unlock()

	h.frees.Add(1)
	h.live.Add(-int64(size))
}

// Stats returns a snapshot of allocator counters.
func (h *Heap) Stats() api.AllocStats {
	return api.AllocStats{
		TotalAllocs:   h.allocs.Load(),
		TotalReallocs: h.reallocs.Load(),
		TotalFrees:    h.frees.Load(),
		BytesLive:     h.live.Load(),
	}
}

// Pinned reports the number of live blocks, for tests.
func (h *Heap) Pinned() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pins)
}
