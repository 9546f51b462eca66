//go:build linux

// File: internal/rawmem/mmap_linux.go
// Package rawmem implements the off-heap mmap allocator for Linux.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Blocks are anonymous private mappings, resized in place with mremap when
// the kernel permits and moved otherwise. The memory is invisible to the Go
// collector, so blocks may only hold pointer-free payloads.

package rawmem

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/atombuf/api"
)

type mmapAlloc struct {
	allocs   atomic.Int64
	reallocs atomic.Int64
	frees    atomic.Int64
	live     atomic.Int64
}

// NewMmap creates an allocator backed by anonymous private mappings.
func NewMmap() api.Allocator {
	return &mmapAlloc{}
}

func (m *mmapAlloc) Allocate(size int) unsafe.Pointer {
	if size <= 0 {
		api.OutOfMemory(size)
	}
	b, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANONYMOUS|unix.MAP_PRIVATE)
	if err != nil {
		api.OutOfMemory(size)
	}

	m.allocs.Add(1)
	m.live.Add(int64(size))
	return unsafe.Pointer(&b[0])
}

func (m *mmapAlloc) Reallocate(ptr unsafe.Pointer, oldSize, newSize int) unsafe.Pointer {
	if newSize <= 0 {
		api.OutOfMemory(newSize)
	}
	// unix tracks mappings by the address of their final byte, so the
	// reconstructed slice must carry the original length and capacity.
	old := unsafe.Slice((*byte)(ptr), oldSize)
	b, err := unix.Mremap(old, newSize, unix.MREMAP_MAYMOVE)
	if err != nil {
		api.OutOfMemory(newSize)
	}

	m.reallocs.Add(1)
	m.live.Add(int64(newSize) - int64(oldSize))
	return unsafe.Pointer(&b[0])
}

func (m *mmapAlloc) Free(ptr unsafe.Pointer, size int) {
	_ = unix.Munmap(unsafe.Slice((*byte)(ptr), size))

	m.frees.Add(1)
	m.live.Add(-int64(size))
}

func (m *mmapAlloc) Stats() api.AllocStats {
	return api.AllocStats{
		TotalAllocs:   m.allocs.Load(),
		TotalReallocs: m.reallocs.Load(),
		TotalFrees:    m.frees.Load(),
		BytesLive:     m.live.Load(),
	}
}
