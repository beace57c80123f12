package testkit

import (
	"sync"
	"testing"
)

// tests that rewire package seams must not overlap
var seamGate sync.Mutex

// Swap replaces *target with replacement until the test ends, then puts
// the original back
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	saved := *target
	t.Cleanup(func() { *target = saved })
	*target = replacement
}

// Serial holds the seam gate for the whole test. Call it before Swap on
// any seam shared across tests
func Serial(t *testing.T) {
	t.Helper()
	seamGate.Lock()
	t.Cleanup(seamGate.Unlock)
}
