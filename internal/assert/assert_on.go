//go:build assert

// File: internal/assert/assert_on.go
// Package assert provides debug-build precondition checks.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Build with -tags assert to compile the checks in. Release builds assume
// every checked condition holds; violating one there is undefined behavior,
// not a diagnosed error.

package assert

// Enabled reports whether assertions are compiled in.
const Enabled = true

// That panics when cond is false.
func That(cond bool, msg string) {
	if !cond {
		panic("assert: " + msg)
	}
}
