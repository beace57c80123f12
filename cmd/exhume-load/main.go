// Command exhume-load lands carved artefacts in the warehouse
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"exhume/internal/modkit"
	"exhume/internal/modkit/module"
	"exhume/internal/platform/config"
	"exhume/internal/platform/logger"
	"exhume/internal/platform/store"

	warehousedom "exhume/internal/services/warehouse/domain"
	warehousemod "exhume/internal/services/warehouse/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	l := logger.Get()

	var (
		fDir        = flag.String("dir", "", "artefact directory of a completed carve run")
		fChOptional = flag.Bool("ch-optional", false, "keep the relational load when the columnar store fails")
	)
	flag.Parse()

	if *fDir == "" {
		log.Fatal("-dir is required")
	}

	// Pass CLI flags into EXHUME_LOAD_* so the module can read its own config
	mustSetEnv("EXHUME_LOAD_CH_OPTIONAL", map[bool]string{true: "1", false: "0"}[*fChOptional])

	// the columnar store is optional at the connection level too
	chURL := chCfg.MayString("DBURL", "")

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:        true,
			URL:            pgCfg.MustString("DBURL"),
			MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:         pgCfg.MayBool("LOG_SQL", true),
			ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 0),
			PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 0),
		},
		CH: store.CHConfig{
			Enabled: chURL != "",
			URL:     chURL,
			Role:    "exhume",
			Tag:     "load",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// clickhouse dials lazily; when it is mandatory, find out now rather
	// than after the relational transaction has committed
	if st.CH != nil && !*fChOptional {
		if err := st.Guard(context.Background()); err != nil {
			l.Fatal().Err(err).Msg("store readiness check failed")
		}
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		CH:  st.CH,
		Log: *l,
	}

	wm := warehousemod.New(deps)
	module.Register(wm.Name(), wm.Ports())

	opts := warehousemod.FromConfig(root)
	ports := module.MustPortsOf[warehousemod.Ports](wm)
	if _, err := ports.Loader.Load(context.Background(), warehousedom.LoadInput{
		Dir:        *fDir,
		ChOptional: opts.ChOptional,
	}); err != nil {
		l.Fatal().Err(err).Msg("load failed")
	}
}
