// Package service provides the pipeline service implementation
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"exhume/internal/adapters/artifact"
	"exhume/internal/adapters/ingest/exportcsv"
	"exhume/internal/core/carve"
	"exhume/internal/core/verify"
	perr "exhume/internal/platform/errors"
	"exhume/internal/platform/logger"
	"exhume/internal/services/pipeline/domain"
)

// Service implements domain.RunnerPort. It owns no state; every run is
// self-contained and deterministic for the same input file and options.
type Service struct{}

// New constructs the pipeline service
func New() *Service { return &Service{} }

// Run executes one carve run end to end: ingest, carve, verify, persist.
// Per-row anomalies never abort the run; only an unreadable export or a
// failed artefact write does, and then no output is left behind.
func (s *Service) Run(ctx context.Context, in domain.RunInput) (domain.RunStats, error) {
	start := time.Now()
	log := logger.C(ctx)

	carver, err := carve.New(in.Opts)
	if err != nil {
		return domain.RunStats{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "carve options")
	}

	rd, err := exportcsv.Open(in.Path)
	if err != nil {
		return domain.RunStats{}, perr.Wrap(err, perr.ErrorCodeIngest, "open export")
	}
	ferr := func() error {
		defer func() { _ = rd.Close() }()
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := rd.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := carver.Feed(row); err != nil {
				return err
			}
		}
	}()
	if ferr != nil {
		if errors.Is(ferr, context.Canceled) || errors.Is(ferr, context.DeadlineExceeded) {
			return domain.RunStats{}, ferr
		}
		return domain.RunStats{}, perr.Wrap(ferr, perr.ErrorCodeIngest, "read export")
	}

	res := carver.Finish()
	log.Info().
		Int("rows", res.Stats.RowsTotal).
		Int("blocks", len(res.Conversations)).
		Int("messages", len(res.Messages)).
		Int("orphans", res.Stats.OrphanRows).
		Msg("carve complete")

	rep := verify.Run(res)
	if n := rep.Warnings(); n > 0 {
		log.Warn().Int("warnings", n).Msg("verify found inconsistencies")
	}

	w, err := artifact.New(in.OutDir)
	if err != nil {
		return domain.RunStats{}, perr.Wrap(err, perr.ErrorCodeArtifact, "open output dir")
	}
	if err := w.WriteRun(res, rep); err != nil {
		return domain.RunStats{}, perr.Wrap(err, perr.ErrorCodeArtifact, "write artefacts")
	}

	stats := domain.RunStats{
		Stats:    res.Stats,
		Findings: len(rep.Findings),
		Warnings: rep.Warnings(),
		Duration: time.Since(start),
	}
	log.Info().
		Int("findings", stats.Findings).
		Int("warnings", stats.Warnings).
		Dur("elapsed", stats.Duration).
		Str("out", in.OutDir).
		Msg("run complete")
	return stats, nil
}
