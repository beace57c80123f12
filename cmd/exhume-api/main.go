// @title         Exhume API
// @version       0.1.0
// @description   Read only endpoints for reviewing loaded carve runs

package main

import (
	"context"
	"os/signal"
	"syscall"

	"exhume/internal/platform/config"
	"exhume/internal/platform/logger"
	phttp "exhume/internal/platform/net/http"
	"exhume/internal/platform/store"

	"exhume/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (EXHUME_API_*)
	root := config.New()
	apiCfg := root.Prefix("EXHUME_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*
	// bring up logging early
	l := logger.Get()

	// the review endpoints are relational only; no clickhouse here
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:        true,
				URL:            pgCfg.MustString("DBURL"),
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:         pgCfg.MayBool("LOG_SQL", true),
				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 0),
				PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 0),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	if err := st.Guard(context.Background()); err != nil {
		l.Panic().Err(err).Msg("store readiness check failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads EXHUME_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run until killed; Run drains in-flight requests on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
