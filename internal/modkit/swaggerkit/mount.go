// Package swaggerkit mounts the swagger UI and serves the API document
package swaggerkit

import (
	"net/http"

	phttp "exhume/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docsBase = "/api/docs"

// Mount wires the swagger UI under /api/docs when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	// bare path redirects to the trailing-slash UI route
	r.Get(docsBase, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, docsBase+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsBase+"/doc.json", serveDocJSON())
	r.Handle(docsBase+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docsBase+"/doc.json"),
	))
}
