// Package service provides the warehouse loader implementation
package service

import (
	"context"
	"path/filepath"
	"time"

	"exhume/internal/adapters/artifact"
	"exhume/internal/modkit/repokit"
	perr "exhume/internal/platform/errors"
	"exhume/internal/platform/logger"
	"exhume/internal/services/warehouse/domain"
	"exhume/internal/services/warehouse/repo"

	"github.com/google/uuid"
)

// loadAttempts bounds whole-transaction retries on transient failures
const loadAttempts = 3

// Service implements domain.LoaderPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	CH     repo.Analytics
}

// New constructs a new warehouse service. ch may be nil when no columnar
// store is configured
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], ch repo.Analytics) *Service {
	return &Service{DB: db, Binder: b, CH: ch}
}

// Load implements domain.LoaderPort. The relational load is one
// transaction under a fresh run id; the columnar load follows and can be
// downgraded to a warning by LoadInput.ChOptional
func (s *Service) Load(ctx context.Context, in domain.LoadInput) (domain.LoadStats, error) {
	start := time.Now()

	msgs, err := artifact.ReadMessages(filepath.Join(in.Dir, artifact.MessagesFile))
	if err != nil {
		return domain.LoadStats{}, perr.Wrap(err, perr.ErrorCodeIngest, "read messages artefact")
	}
	convs, err := artifact.ReadConversations(filepath.Join(in.Dir, artifact.ConversationsFile))
	if err != nil {
		return domain.LoadStats{}, perr.Wrap(err, perr.ErrorCodeIngest, "read conversations artefact")
	}
	finds, err := artifact.ReadFindings(filepath.Join(in.Dir, artifact.FindingsFile))
	if err != nil {
		return domain.LoadStats{}, perr.Wrap(err, perr.ErrorCodeIngest, "read findings artefact")
	}

	run := domain.Run{
		ID:            uuid.NewString(),
		LoadedAt:      time.Now().UTC(),
		SourceDir:     in.Dir,
		Messages:      len(msgs),
		Conversations: len(convs),
		Findings:      len(finds),
	}
	ctx = logger.WithRun(ctx, run.ID)
	log := logger.C(ctx)

	// A serialization failure or deadlock rolls the whole transaction
	// back, so the load retries as a unit
	for attempt := 1; ; attempt++ {
		err = repokit.WithTx(ctx, s.DB, func(q repokit.Queryer) error {
			st := s.Binder.Bind(q)
			if err := st.EnsureSchema(ctx); err != nil {
				return err
			}
			if err := st.InsertRun(ctx, run); err != nil {
				return err
			}
			if err := st.InsertMessages(ctx, run.ID, msgs); err != nil {
				return err
			}
			if err := st.InsertConversations(ctx, run.ID, convs); err != nil {
				return err
			}
			return st.InsertFindings(ctx, run.ID, finds)
		})
		if err == nil || attempt == loadAttempts || !perr.Retryable(err) {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("transient load failure, retrying")
	}
	if err != nil {
		return domain.LoadStats{}, perr.Wrap(err, perr.ErrorCodeDB, "load warehouse")
	}
	log.Info().
		Int("messages", len(msgs)).
		Int("conversations", len(convs)).
		Int("findings", len(finds)).
		Msg("relational load complete")

	stats := domain.LoadStats{
		RunID:         run.ID,
		Messages:      len(msgs),
		Conversations: len(convs),
		Findings:      len(finds),
	}

	if s.CH != nil {
		werr := func() error {
			if err := s.CH.EnsureWideSchema(ctx); err != nil {
				return err
			}
			return s.CH.InsertMessagesWide(ctx, run.ID, msgs)
		}()
		switch {
		case werr == nil:
			stats.WideRows = len(msgs)
		case in.ChOptional:
			stats.ChSkipped = true
			log.Warn().Err(werr).Msg("columnar load skipped")
		default:
			return domain.LoadStats{}, perr.Wrap(werr, perr.ErrorCodeDB, "load columnar store")
		}
	}

	stats.Duration = time.Since(start)
	log.Info().
		Int("wide_rows", stats.WideRows).
		Dur("elapsed", stats.Duration).
		Msg("load complete")
	return stats, nil
}
