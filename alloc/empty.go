// File: alloc/empty.go
// Package alloc: the "no allocation" sentinel.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package alloc

import "unsafe"

// emptyBlock backs the sentinel. Word-aligned and a cache line wide so a
// converted *T of any ordinary element type stays inside the object; the
// sentinel is never dereferenced either way.
var emptyBlock struct {
	_ [0]uint64
	b [64]byte
}

// Empty returns the fixed non-null sentinel address meaning "no live
// allocation". It keeps downstream pointer logic free of nil checks while
// remaining non-dereferenceable by contract. Every instantiation returns
// the same address.
func Empty[T any]() *T {
	return (*T)(unsafe.Pointer(&emptyBlock))
}
