// Package module implements the report service module
package module

import (
	"exhume/internal/modkit"
	"exhume/internal/modkit/httpkit"
	"exhume/internal/services/report/domain"
	"exhume/internal/services/report/service"
)

// Ports exposed by the report module
type Ports struct {
	Builder domain.BuilderPort
}

// Module implements the report service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new report module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	m := &Module{deps: deps}
	m.ports = Ports{Builder: service.New(opts.Top)}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "report" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
