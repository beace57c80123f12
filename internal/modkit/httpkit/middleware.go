package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"exhume/internal/platform/net/middleware"
)

// CommonStack is the baseline middleware every mounted API scope gets.
// Hosts append to it in main when a deployment needs more
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// correlation first so everything downstream logs the same request id
		middleware.RequestID(),
		middleware.RealIP(),

		middleware.RecoverJSON,

		middleware.NoCache(),

		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
