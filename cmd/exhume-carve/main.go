// Command exhume-carve carves a raw conversation export into run artefacts
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

	"exhume/internal/core/carve"
	pipelinedom "exhume/internal/services/pipeline/domain"
	pipelinemod "exhume/internal/services/pipeline/module"
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
		fIn      = flag.String("in", "", "path to the source export csv")
		fOut     = flag.String("out", "", "directory for run artefacts (created if missing)")
		fMarker  = flag.String("marker", "", "block marker pattern override")
		fDeleted = flag.String("deleted-marker", "", "deleted message marker override")
		fStrict  = flag.Bool("strict", false, "exit nonzero when validation reports warnings")
	)
	flag.Parse()

	if *fIn == "" || *fOut == "" {
		log.Fatal("-in and -out are required")
	}

	// Pass CLI flags into EXHUME_CARVE_* so the module can read its own config
	mustSetEnv("EXHUME_CARVE_MARKER_PATTERN", *fMarker)
	mustSetEnv("EXHUME_CARVE_DELETED_MARKER", *fDeleted)

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
	}

	pm := pipelinemod.New(deps)
	module.Register(pm.Name(), pm.Ports())

	opts := pipelinemod.FromConfig(root)
	ports := module.MustPortsOf[pipelinemod.Ports](pm)
	stats, err := ports.Runner.Run(context.Background(), pipelinedom.RunInput{
		Path:   *fIn,
		OutDir: *fOut,
		Opts: carve.Options{
			MarkerPattern: opts.MarkerPattern,
			DeletedMarker: opts.DeletedMarker,
		},
	})
	if err != nil {
		l.Fatal().Err(err).Msg("carve failed")
	}

	if *fStrict && stats.Warnings > 0 {
		l.Fatal().Int("warnings", stats.Warnings).Msg("validation reported warnings")
	}
}
