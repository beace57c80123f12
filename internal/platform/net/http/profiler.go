package http

import (
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler mounts pprof under prefix, e.g. "/debug". A disabled
// profiler mounts nothing at all
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	// the profiler mux routes relative to its own root, so strip the prefix
	h := stdhttp.StripPrefix(prefix, mw.Profiler())
	r.Handle(prefix, h)
	r.Handle(prefix+"/*", h)
}
