package modkit

import (
	"net/http"

	"exhume/internal/modkit/httpkit"
)

// Built is the frozen result of applying options, handed back to the module
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool

	// router hooks set via options and exposed to modules
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build folds the options into a Built, filling in no op router hooks
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}

	b := Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		SwaggerOn: c.swaggerOn,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
	if b.Subrouter == nil {
		b.Subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if b.Register == nil {
		b.Register = func(httpkit.Router) {}
	}
	return b
}
