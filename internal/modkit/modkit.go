package modkit

import (
	phttp "exhume/internal/platform/net/http"
)

// Module is what the hosts (API server, one shot commands) expect from a
// service module: routes, a port bundle, and a stable name
type Module interface {
	// MountRoutes attaches the module's HTTP routes to the router seam
	MountRoutes(r phttp.Router)
	// Ports exposes the module's port bundle for cross module wiring
	Ports() any

	// Name identifies the module in the registry and in logs
	Name() string
}

// Builder is the conventional constructor shape, New(deps, opts...)
type Builder func(Deps, ...Option) Module
