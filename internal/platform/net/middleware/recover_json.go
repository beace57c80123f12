package middleware

import (
	stdjson "encoding/json"
	stdhttp "net/http"
	"runtime/debug"
	"strings"

	perr "exhume/internal/platform/errors"
	"exhume/internal/platform/logger"
	pnet "exhume/internal/platform/net"
)

// RecoverJSON converts panics into a JSON 500 and logs stack with request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			if v := recover(); v != nil {
				writePanic(w, r, v)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writePanic(w stdhttp.ResponseWriter, r *stdhttp.Request, v any) {
	reqID := pnet.RequestID(r.Context())

	// indent continuation lines so the stack reads as one log entry
	stack := strings.Join(strings.Split(string(debug.Stack()), "\n"), "\n\t")

	log := logger.C(r.Context())
	if log == nil {
		log = logger.Named("http")
	}
	log.Error().
		Str("request_id", reqID).
		Interface("panic", v).
		Msgf("panic recovered\n%s", stack)

	// mirror id in response header
	if reqID != "" {
		w.Header().Set("X-Request-ID", reqID)
	}

	status, body := pnet.Error(perr.PanicErrf("panic recovered"), reqID)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = stdjson.NewEncoder(w).Encode(body)
}
