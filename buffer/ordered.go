// File: buffer/ordered.go
// Package buffer: ordered field access helpers.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Every field access funnels through these so the requested ordering is
// visible at one seam. sync/atomic is sequentially consistent — a
// conservative superset of whatever the caller asked for — so today the
// ordering argument is descriptive; a platform that can honor a weaker
// order cheaper (plain MOV on TSO) slots in here.

package buffer

import "github.com/momentics/atombuf/api"

func (b *Buffer[T]) loadCapacity(_ api.Ordering) uintptr {
	return b.capacity.Load()
}

func (b *Buffer[T]) storeCapacity(v uintptr, _ api.Ordering) {
	b.capacity.Store(v)
}

func (b *Buffer[T]) swapCapacity(v uintptr, _ api.Ordering) uintptr {
	return b.capacity.Swap(v)
}

func (b *Buffer[T]) loadPtr(_ api.Ordering) *T {
	return b.ptr.Load()
}

func (b *Buffer[T]) storePtr(p *T, _ api.Ordering) {
	b.ptr.Store(p)
}

func (b *Buffer[T]) swapPtr(p *T, _ api.Ordering) *T {
	return b.ptr.Swap(p)
}
