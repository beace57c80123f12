// Package service contains review workflows
package service

import (
	"context"

	"exhume/internal/modkit/repokit"
	perr "exhume/internal/platform/errors"
	"exhume/internal/services/review/domain"
	"exhume/internal/services/review/repo"
)

// Service defines the service contract for review
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new review service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("review.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("review.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Runs lists recently loaded carve runs, newest first
func (s *Svc) Runs(ctx context.Context, in domain.RunsInput) ([]domain.Run, error) {
	rows, err := s.Repo.Runs(ctx, in.Window())
	if err != nil {
		return nil, err
	}
	out := make([]domain.Run, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Run{
			RunID:         r.RunID,
			LoadedAt:      r.LoadedAt,
			SourceDir:     r.SourceDir,
			Messages:      r.Messages,
			Conversations: r.Conversations,
			Findings:      r.Findings,
		})
	}
	return out, nil
}

// Conversations lists one run's conversation summaries in block order and
// reports how many match the filter in total
func (s *Svc) Conversations(ctx context.Context, in domain.ConversationsInput) ([]domain.Conversation, int, error) {
	limit, offset := in.Window()
	total, err := s.Repo.CountConversations(ctx, in.RunID, in.DeletedOnly)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.Repo.Conversations(ctx, in.RunID, in.DeletedOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.Conversation, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Conversation{
			BlockID:           r.BlockID,
			ConversationUID:   r.ConversationUID,
			ExtractionGroupID: r.ExtractionGroupID,
			ConversationID:    r.ConversationID,
			IDIsUUID:          r.IDIsUUID,
			PlatformCallID:    r.PlatformCallID,
			Datetime:          r.Datetime,
			Messages:          r.Messages,
			Participants:      r.Participants,
			Deleted:           r.Deleted,
			HasDeleted:        r.HasDeleted,
		})
	}
	return out, total, nil
}

// Messages lists one conversation's messages in sequence order. An empty
// conversation and an unknown one both come back with zero rows, so the
// unknown case is told apart up front
func (s *Svc) Messages(ctx context.Context, in domain.MessagesInput) ([]domain.Message, error) {
	ok, err := s.Repo.ConversationExists(ctx, in.RunID, in.ConversationUID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.NotFoundf("conversation %s not found in run %s", in.ConversationUID, in.RunID)
	}
	rows, err := s.Repo.Messages(ctx, in.RunID, in.ConversationUID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Message, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Message{
			ConversationUID: r.ConversationUID,
			Sequence:        r.Sequence,
			RowNum:          r.RowNum,
			Sender:          r.Sender,
			Text:            r.Text,
			Len:             r.Len,
			Status:          r.Status,
			HasDeleted:      r.HasDeleted,
			Datetime:        r.Datetime,
		})
	}
	return out, nil
}

// Findings lists one run's validation findings in check order
func (s *Svc) Findings(ctx context.Context, in domain.FindingsInput) ([]domain.Finding, error) {
	rows, err := s.Repo.Findings(ctx, in.RunID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Finding, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Finding{
			Ord:      r.Ord,
			Check:    r.Check,
			Severity: r.Severity,
			Count:    r.Count,
			Detail:   r.Detail,
		})
	}
	return out, nil
}
