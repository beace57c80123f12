// Package httpkit re-exports the platform http surface for service modules.
// Modules route and respond through these names so that only the platform
// package touches the underlying mux
package httpkit

import (
	"net/http"

	phttp "exhume/internal/platform/net/http"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Page is the pagination metadata type
	Page = phttp.Page

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// OK wraps data in a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Paged wraps a list in a 200 response with the window it covers
func Paged(data any, page Page) Response { return phttp.Paged(data, page) }

// Error maps an error to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// JSON adapts a handler that decodes a JSON body into T. The body is
// bound and validated by the platform layer, so validate tags on T are
// enforced before the handler runs
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandler(fn)
}

// Call adapts a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Handle adapts a Response returning function directly
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}
