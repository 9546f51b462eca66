// File: api/ordering.go
// Package api defines the memory ordering vocabulary for atomic buffer access.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Go's sync/atomic executes every operation with sequentially consistent
// semantics, a conservative superset of every weaker order. The Ordering
// argument therefore never weakens an operation today: it records the
// ordering the caller's protocol actually requires, keeps the acquire/release
// discipline visible at each call site, and is the seam where platform
// fast paths (plain MOV loads on TSO hardware) can be wired in later
// without an API change.

package api

// Ordering declares the minimal memory ordering a field access needs.
type Ordering uint8

const (
	// Relaxed guarantees atomicity and nothing else.
	Relaxed Ordering = iota
	// Acquire orders subsequent memory operations after the load.
	Acquire
	// Release orders preceding memory operations before the store.
	Release
	// AcqRel combines Acquire and Release, for read-modify-write operations.
	AcqRel
	// SeqCst participates in the single total order over all SeqCst operations.
	SeqCst
)

func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "relaxed"
	case Acquire:
		return "acquire"
	case Release:
		return "release"
	case AcqRel:
		return "acq-rel"
	case SeqCst:
		return "seq-cst"
	default:
		return "unknown"
	}
}
