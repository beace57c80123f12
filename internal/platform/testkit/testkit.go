// Package testkit provides testing helpers
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func panics(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	if panics(fn) == nil {
		t.Fatalf("expected panic, got none")
	}
}

// MustNotPanic asserts that fn does not panic
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	if v := panics(fn); v != nil {
		t.Fatalf("unexpected panic: %v", v)
	}
}

// MustContain asserts that haystack contains needle. If not, writes haystack to a temp file for debugging
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	tmpfile := filepath.Join(t.TempDir(), "test_output.txt")
	_ = os.WriteFile(tmpfile, []byte(haystack), 0o600)
	t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, tmpfile)
}

// WriteTemp writes content to name under t.TempDir and returns the full path.
// Handy for export fixtures that readers open by path
func WriteTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp %s: %v", name, err)
	}
	return p
}
