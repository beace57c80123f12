package httpkit

import (
	"net/http"
	"strings"
)

// MountAPI scopes routes under /api/{version} with the given middleware stack.
// The version may carry a leading slash, "v1" and "/v1" mount the same tree
//
// example:
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), func(api httpkit.Router) {
//	  review.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	ver := strings.TrimPrefix(version, "/")
	MountUnder(r, "/api/"+ver, mw, mount)
}

// MountAPIV1 mounts under /api/v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
