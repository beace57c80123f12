package http

import (
	"net/http"

	"exhume/internal/platform/net/http/bind"
)

// JSONHandler adapts a typed JSON handler to a platform Handler.
// The body is parsed and validated through bind before fn runs.
// A handler may return a Response directly to control status or paging
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}
