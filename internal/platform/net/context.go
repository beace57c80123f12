// Package net carries the request scoped plumbing shared by transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stores a request id where chi's middleware keeps it, so the
// same lookup works whether the id came off the wire or from a test
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// RequestID returns the request id on the context, or ""
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
