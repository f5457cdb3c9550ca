// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"testing"
)

// WithEnv sets env var to val for the duration of the test scope.
// An empty val unsets the variable. Returns a cleanup func to restore the
// previous value; it is also registered with t.Cleanup.
func WithEnv(t *testing.T, key, val string) func() {
	t.Helper()
	old, had := os.LookupEnv(key)
	if val == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, val)
	}
	restore := func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	}
	t.Cleanup(restore)
	return restore
}
