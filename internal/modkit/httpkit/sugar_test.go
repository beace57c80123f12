package httpkit

import (
	"net/http"
	"testing"
)

func assertSingleMount(t *testing.T, r *scopeRouter, verb, path string) {
	t.Helper()
	if len(r.mounts) != 1 {
		t.Fatalf("registrations = %d, want 1", len(r.mounts))
	}
	got := r.mounts[0]
	if got.verb != verb || got.path != path {
		t.Fatalf("mounted %s %s, want %s %s", got.verb, got.path, verb, path)
	}
	if got.h == nil {
		t.Fatal("mounted a nil handler")
	}
}

func TestPostJSON_Mounts(t *testing.T) {
	r := &scopeRouter{}
	type in struct{ RunID string }
	PostJSON[in](r, "/conversations", func(*http.Request, in) (any, error) { return nil, nil })
	assertSingleMount(t, r, "POST", "/conversations")
}

func TestGet_Mounts(t *testing.T) {
	r := &scopeRouter{}
	Get(r, "/health", func(*http.Request) (any, error) { return "ok", nil })
	assertSingleMount(t, r, "GET", "/health")
}
