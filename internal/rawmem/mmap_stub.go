//go:build !linux

// File: internal/rawmem/mmap_stub.go
// Package rawmem: mmap allocator stub for platforms without mremap.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rawmem

import "github.com/momentics/atombuf/api"

// NewMmap falls back to the pinned Go-heap allocator where anonymous
// mapping resize is unavailable.
func NewMmap() api.Allocator {
	return NewHeap()
}
