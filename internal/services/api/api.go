// Package api provides the HTTP API for the application
package api

import (
	"exhume/internal/platform/config"
	"exhume/internal/platform/logger"
	phttp "exhume/internal/platform/net/http"
	"exhume/internal/platform/store"

	"exhume/internal/modkit"
	"exhume/internal/modkit/httpkit"
	"exhume/internal/modkit/module"
	"exhume/internal/modkit/swaggerkit"

	metamod "exhume/internal/services/api/meta/module"
	reviewmod "exhume/internal/services/review/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	mods := []module.Module{
		metamod.New(deps),
		reviewmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
