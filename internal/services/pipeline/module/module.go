// Package module implements the pipeline service module
package module

import (
	"exhume/internal/modkit"
	"exhume/internal/modkit/httpkit"
	"exhume/internal/services/pipeline/domain"
	"exhume/internal/services/pipeline/service"
)

// Ports exposed by the pipeline module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the pipeline service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new pipeline module
func New(deps modkit.Deps) *Module {
	m := &Module{deps: deps}
	m.ports = Ports{Runner: service.New()}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "pipeline" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
