// Package module implements the warehouse service module
package module

import (
	"exhume/internal/modkit"
	"exhume/internal/modkit/httpkit"
	"exhume/internal/services/warehouse/domain"
	"exhume/internal/services/warehouse/repo"
	"exhume/internal/services/warehouse/service"
)

// Ports exposed by the warehouse module
type Ports struct {
	Loader domain.LoaderPort
}

// Module implements the warehouse service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new warehouse module. The columnar repo is wired only
// when the deps carry a clickhouse seam
func New(deps modkit.Deps) *Module {
	var analytics repo.Analytics
	if deps.CH != nil {
		analytics = repo.NewCH(deps.CH)
	}
	svc := service.New(deps.PG, repo.NewPG(), analytics)

	m := &Module{deps: deps}
	m.ports = Ports{Loader: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "warehouse" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
