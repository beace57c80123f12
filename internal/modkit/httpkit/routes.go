package httpkit

import "net/http"

// MountUnder opens a subrouter at prefix, installs the scoped middlewares,
// and hands the subrouter to mount for route registration
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
