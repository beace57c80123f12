// Package module holds the contract hosts use to mount and cross wire modules
package module

import (
	phttp "exhume/internal/platform/net/http"
)

// Module is what a host binary needs from a service module.
// It lives apart from modkit so a module exporting its own Ports type
// does not pull the builder package into an import cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
