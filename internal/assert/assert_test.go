// File: internal/assert/assert_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package assert

import "testing"

func TestThat(t *testing.T) {
	That(true, "holds either way")

	if !Enabled {
		// Release builds compile the check away entirely.
		That(false, "ignored")
		return
	}

	defer func() {
		if recover() == nil {
			t.Fatal("assert build did not panic on a false condition")
		}
	}()
	That(false, "boom")
}
