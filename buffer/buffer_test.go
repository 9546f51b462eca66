// File: buffer/buffer_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/atombuf/alloc"
	"github.com/momentics/atombuf/api"
	"github.com/momentics/atombuf/buffer"
	"github.com/momentics/atombuf/fake"
)

// withRecorder routes pointer-free allocation traffic through a recording
// allocator for the duration of the test.
func withRecorder(t *testing.T) *fake.Allocator {
	t.Helper()
	prev := alloc.Default
	rec := fake.NewAllocator(prev)
	alloc.Default = rec
	t.Cleanup(func() { alloc.Default = prev })
	return rec
}

func TestSetGetRoundTrip(t *testing.T) {
	const capacity = 64

	b := buffer.Allocate[uint64](capacity)
	defer b.Deallocate(api.SeqCst)

	if got := b.Capacity(api.Relaxed); got != capacity {
		t.Fatalf("capacity = %d, want %d", got, capacity)
	}
	for i := 0; i < capacity; i++ {
		b.Set(i, uint64(i)*3, api.Relaxed)
	}
	for i := 0; i < capacity; i++ {
		if got := *b.Get(i, api.Relaxed); got != uint64(i)*3 {
			t.Fatalf("slot %d = %d, want %d", i, got, uint64(i)*3)
		}
	}
}

func TestGetMutWritesThrough(t *testing.T) {
	b := buffer.Allocate[uint32](8)
	defer b.Deallocate(api.SeqCst)

	*b.GetMut(5, api.Relaxed) = 99
	if got := *b.Get(5, api.Relaxed); got != 99 {
		t.Fatalf("slot 5 = %d, want 99", got)
	}
}

func TestGrowPreservesValues(t *testing.T) {
	b := buffer.Allocate[uint64](4)
	defer b.Deallocate(api.SeqCst)

	vals := []uint64{10, 20, 30, 40}
	for i, v := range vals {
		b.Set(i, v, api.Relaxed)
	}

	b.Reallocate(8, api.Release)

	if got := b.Capacity(api.Acquire); got != 8 {
		t.Fatalf("capacity = %d, want 8", got)
	}
	for i, v := range vals {
		if got := *b.Get(i, api.Acquire); got != v {
			t.Fatalf("slot %d = %d after grow, want %d", i, got, v)
		}
	}
}

func TestShrinkPreservesPrefix(t *testing.T) {
	b := buffer.Allocate[uint64](16)
	defer b.Deallocate(api.SeqCst)

	for i := 0; i < 16; i++ {
		b.Set(i, uint64(i)+100, api.Relaxed)
	}

	b.Reallocate(4, api.SeqCst)

	if got := b.Capacity(api.Relaxed); got != 4 {
		t.Fatalf("capacity = %d, want 4", got)
	}
	for i := 0; i < 4; i++ {
		if got := *b.Get(i, api.Relaxed); got != uint64(i)+100 {
			t.Fatalf("slot %d = %d after shrink, want %d", i, got, uint64(i)+100)
		}
	}
}

func TestReallocateFromEmpty(t *testing.T) {
	b := buffer.Empty[uint64]()

	b.Reallocate(4, api.SeqCst)
	defer b.Deallocate(api.SeqCst)

	if got := b.Capacity(api.Relaxed); got != 4 {
		t.Fatalf("capacity = %d, want 4", got)
	}
	b.Set(3, 77, api.Relaxed)
	if got := *b.Get(3, api.Relaxed); got != 77 {
		t.Fatalf("slot 3 = %d, want 77", got)
	}
}

func TestEmptyBufferIsSentinel(t *testing.T) {
	rec := withRecorder(t)

	b := buffer.Empty[uint64]()
	if got := b.Capacity(api.Relaxed); got != 0 {
		t.Fatalf("capacity = %d, want 0", got)
	}
	if p := b.RawPointer().Load(); p != alloc.Empty[uint64]() {
		t.Fatalf("pointer = %p, want sentinel %p", p, alloc.Empty[uint64]())
	}

	// Deallocating an empty buffer is a safe no-op, as many times as asked.
	b.Deallocate(api.SeqCst)
	b.Deallocate(api.Relaxed)

	if p := b.RawPointer().Load(); p != alloc.Empty[uint64]() {
		t.Fatal("pointer no longer sentinel after no-op deallocate")
	}
	if got := rec.Events(); got != 0 {
		t.Fatalf("empty buffer produced %d allocator events, want 0", got)
	}
}

func TestDeallocateIdempotent(t *testing.T) {
	rec := withRecorder(t)

	b := buffer.Allocate[uint64](8)
	b.Deallocate(api.Release)
	b.Deallocate(api.Release)
	b.Deallocate(api.SeqCst)

	if got := rec.Count(fake.OpAllocate); got != 1 {
		t.Fatalf("allocate count = %d, want 1", got)
	}
	if got := rec.Count(fake.OpFree); got != 1 {
		t.Fatalf("free count = %d, want 1", got)
	}
	if got := b.Capacity(api.SeqCst); got != 0 {
		t.Fatalf("capacity = %d after deallocate, want 0", got)
	}
	if p := b.RawPointer().Load(); p != alloc.Empty[uint64]() {
		t.Fatal("pointer not reset to sentinel")
	}
}

func TestZeroSizedElementsElideAllocation(t *testing.T) {
	rec := withRecorder(t)

	b := buffer.Allocate[struct{}](1_000_000)
	if got := b.Capacity(api.Relaxed); got != 1_000_000 {
		t.Fatalf("capacity = %d, want 1000000", got)
	}
	if p := b.RawPointer().Load(); p != alloc.Empty[struct{}]() {
		t.Fatal("zero-sized buffer pointer is not the sentinel")
	}

	b.Reallocate(2_000_000, api.SeqCst)
	if got := b.Capacity(api.Relaxed); got != 2_000_000 {
		t.Fatalf("capacity = %d after reallocate, want 2000000", got)
	}

	b.Deallocate(api.SeqCst)
	if got := b.Capacity(api.Relaxed); got != 0 {
		t.Fatalf("capacity = %d after deallocate, want 0", got)
	}

	if got := rec.Events(); got != 0 {
		t.Fatalf("zero-sized elements produced %d allocator events, want 0", got)
	}
}

func TestPointerfulElements(t *testing.T) {
	type payload struct {
		s *string
		n int
	}

	b := buffer.Allocate[payload](16)
	defer b.Deallocate(api.SeqCst)

	for i := 0; i < 16; i++ {
		s := string(rune('a' + i))
		b.Set(i, payload{s: &s, n: i}, api.Relaxed)
	}

	runtime.GC()
	runtime.GC()

	for i := 0; i < 16; i++ {
		got := *b.Get(i, api.Relaxed)
		want := string(rune('a' + i))
		if got.s == nil || *got.s != want || got.n != i {
			t.Fatalf("slot %d corrupted after GC: %+v", i, got)
		}
	}
}

func TestFinalizerReleasesAllocation(t *testing.T) {
	rec := withRecorder(t)

	func() {
		b := buffer.Allocate[uint64](16)
		b.Set(0, 7, api.SeqCst)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for rec.Count(fake.OpFree) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("finalizer never released the allocation")
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
}

// Single writer fills slots and publishes the highest valid index through
// its own atomic; readers only touch indices at or below what they acquired.
// This is the caller-side protocol the buffer's contract presumes.
func TestSingleWriterPublish(t *testing.T) {
	const capacity = 1 << 10
	const readers = 4

	b := buffer.Allocate[uint64](capacity)
	defer b.Deallocate(api.SeqCst)

	var published atomic.Int64
	published.Store(-1)

	var wg sync.WaitGroup
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				hi := published.Load()
				if hi < 0 {
					runtime.Gosched()
					continue
				}
				i := int(hi)
				if got := *b.Get(i, api.Acquire); got != uint64(i)*3+1 {
					t.Errorf("slot %d = %d, want %d", i, got, uint64(i)*3+1)
					return
				}
				if i == capacity-1 {
					return
				}
			}
		}()
	}

	for i := 0; i < capacity; i++ {
		b.Set(i, uint64(i)*3+1, api.Relaxed)
		published.Store(int64(i))
	}
	wg.Wait()
}
