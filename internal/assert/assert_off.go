//go:build !assert

// File: internal/assert/assert_off.go
// Package assert provides debug-build precondition checks.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package assert

// Enabled reports whether assertions are compiled in.
const Enabled = false

// That is a no-op in release builds.
func That(cond bool, msg string) {}
