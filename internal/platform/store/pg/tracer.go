package pg

import (
	"context"
	"strings"

	"exhume/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one executed statement for tracing
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives QueryEvents for executed statements
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer builds a tracer that always prints SQL when LogSQL=true,
// independent of the process-wide root level
func Tracer(root logger.Logger) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return &sqlTracer{log: ll}
}

type sqlTracer struct{ log logger.Logger }

func (s *sqlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	// normal queries go out at Info so they stay visible if someone bumps the level above
	evt := s.log.Info()
	if ev.Slow {
		evt = s.log.Warn()
	}

	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// compact collapses whitespace runs so multi-line SQL logs as one line
func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		switch r {
		case ' ', '\n', '\t', '\r':
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
		default:
			inRun = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
