// Command exhume-report summarizes carved artefacts for investigators
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"exhume/internal/adapters/artifact"
	"exhume/internal/modkit"
	"exhume/internal/modkit/module"
	"exhume/internal/platform/config"
	"exhume/internal/platform/logger"

	reportmod "exhume/internal/services/report/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	root := config.New()
	l := logger.Get()

	var (
		fIn  = flag.String("in", "", "artefact directory of a completed carve run")
		fTop = flag.Int("top", 0, "rows per ranking section (0 = default)")
	)
	flag.Parse()

	if *fIn == "" {
		log.Fatal("-in is required")
	}

	// Pass CLI flags into EXHUME_REPORT_* so the module can read its own config
	if *fTop > 0 {
		mustSetEnv("EXHUME_REPORT_TOP", strconv.Itoa(*fTop))
	}

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
	}

	rm := reportmod.New(deps)
	module.Register(rm.Name(), rm.Ports())

	ports := module.MustPortsOf[reportmod.Ports](rm)
	rep, err := ports.Builder.Build(context.Background(), filepath.Join(*fIn, artifact.MessagesFile))
	if err != nil {
		l.Fatal().Err(err).Msg("report build failed")
	}
	if err := ports.Builder.Render(os.Stdout, rep); err != nil {
		l.Fatal().Err(err).Msg("report render failed")
	}
}
