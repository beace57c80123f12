// Package repo provides the warehouse repository implementations.
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exhume/internal/adapters/artifact"
	"exhume/internal/modkit/repokit"
	perr "exhume/internal/platform/errors"
	"exhume/internal/services/warehouse/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the relational warehouse repository
type Storage interface {
	EnsureSchema(ctx context.Context) error
	InsertRun(ctx context.Context, run domain.Run) error
	InsertMessages(ctx context.Context, runID string, xs []artifact.MessageRecord) error
	InsertConversations(ctx context.Context, runID string, xs []artifact.ConversationRecord) error
	InsertFindings(ctx context.Context, runID string, xs []artifact.FindingRecord) error
}

// insertChunk keeps multi-VALUES statements under the wire parameter cap
const insertChunk = 1000

// schema is applied statement by statement; every table is keyed by run
// so reloading an artefact set under a fresh run id never collides
var schema = []string{
	`CREATE TABLE IF NOT EXISTS carve_runs (
		run_id             uuid PRIMARY KEY,
		loaded_at          timestamptz NOT NULL DEFAULT now(),
		source_dir         text NOT NULL,
		message_count      int NOT NULL,
		conversation_count int NOT NULL,
		finding_count      int NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		run_id                      uuid NOT NULL REFERENCES carve_runs(run_id) ON DELETE CASCADE,
		row_num                     int NOT NULL,
		extraction_group_id         text NOT NULL,
		conversation_uid            text NOT NULL,
		conversation_block_id       int NOT NULL,
		conversation_id             text NOT NULL DEFAULT '',
		conversation_id_is_uuid     boolean NOT NULL,
		platform_call_id            text NOT NULL DEFAULT '',
		conversation_datetime       timestamptz,
		sender_email                text NOT NULL,
		message_text                text NOT NULL,
		message_len                 int NOT NULL,
		message_status              text NOT NULL,
		has_deleted_in_conversation boolean NOT NULL,
		message_sequence            int NOT NULL,
		conv_seq                    int NOT NULL,
		PRIMARY KEY (run_id, row_num)
	)`,
	`CREATE INDEX IF NOT EXISTS messages_run_conv_idx
		ON messages (run_id, conversation_uid, message_sequence)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		run_id                      uuid NOT NULL REFERENCES carve_runs(run_id) ON DELETE CASCADE,
		conversation_block_id       int NOT NULL,
		conversation_uid            text NOT NULL,
		extraction_group_id         text NOT NULL,
		conversation_id             text NOT NULL DEFAULT '',
		conversation_id_is_uuid     boolean NOT NULL,
		platform_call_id            text NOT NULL DEFAULT '',
		conversation_datetime       timestamptz,
		message_count               int NOT NULL,
		participants                text[] NOT NULL DEFAULT '{}',
		deleted_count               int NOT NULL,
		has_deleted_in_conversation boolean NOT NULL,
		PRIMARY KEY (run_id, conversation_block_id)
	)`,
	`CREATE TABLE IF NOT EXISTS findings (
		run_id     uuid NOT NULL REFERENCES carve_runs(run_id) ON DELETE CASCADE,
		ord        int NOT NULL,
		check_name text NOT NULL,
		severity   text NOT NULL,
		row_count  int NOT NULL,
		detail     text NOT NULL,
		PRIMARY KEY (run_id, ord)
	)`,
}

// EnsureSchema implements Storage
func (s *pg) EnsureSchema(ctx context.Context) error {
	for i, stmt := range schema {
		if err := s.q.Exec(ctx, stmt); err != nil {
			return perr.FromPostgresf(err, "apply schema statement %d", i+1)
		}
	}
	return nil
}

// InsertRun implements Storage
func (s *pg) InsertRun(ctx context.Context, run domain.Run) error {
	const sqlq = `
        INSERT INTO carve_runs (run_id, loaded_at, source_dir, message_count, conversation_count, finding_count)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (run_id) DO NOTHING
    `
	err := s.q.Exec(ctx, sqlq,
		run.ID, run.LoadedAt, run.SourceDir, run.Messages, run.Conversations, run.Findings)
	return perr.FromPostgresWithField(err, "insert carve run")
}

// InsertMessages implements Storage
func (s *pg) InsertMessages(ctx context.Context, runID string, xs []artifact.MessageRecord) error {
	for start := 0; start < len(xs); start += insertChunk {
		end := min(start+insertChunk, len(xs))
		if err := s.insertMessageChunk(ctx, runID, xs[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *pg) insertMessageChunk(ctx context.Context, runID string, xs []artifact.MessageRecord) error {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO messages
		(run_id, row_num, extraction_group_id, conversation_uid, conversation_block_id,
		conversation_id, conversation_id_is_uuid, platform_call_id, conversation_datetime,
		sender_email, message_text, message_len, message_status,
		has_deleted_in_conversation, message_sequence, conv_seq) VALUES `)

	args := make([]any, 0, len(xs)*16)
	for i, m := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*16 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6, base+7,
			base+8, base+9, base+10, base+11, base+12, base+13, base+14, base+15)

		args = append(args,
			runID, m.RowNum, m.ExtractionGroupID, m.ConversationUID, m.BlockID,
			m.ConversationID, m.IDIsUUID, m.PlatformCallID, nullableTime(m.Datetime),
			m.Sender, m.Text, m.Len, string(m.Status),
			m.HasDeleted, m.Sequence, m.ConvSeq,
		)
	}
	// Idempotent for replays of the same run
	sb.WriteString(` ON CONFLICT (run_id, row_num) DO NOTHING`)
	err := s.q.Exec(ctx, sb.String(), args...)
	return perr.FromPostgresWithField(err, "insert messages")
}

// InsertConversations implements Storage
func (s *pg) InsertConversations(ctx context.Context, runID string, xs []artifact.ConversationRecord) error {
	for start := 0; start < len(xs); start += insertChunk {
		end := min(start+insertChunk, len(xs))
		if err := s.insertConversationChunk(ctx, runID, xs[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *pg) insertConversationChunk(ctx context.Context, runID string, xs []artifact.ConversationRecord) error {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO conversations
		(run_id, conversation_block_id, conversation_uid, extraction_group_id,
		conversation_id, conversation_id_is_uuid, platform_call_id, conversation_datetime,
		message_count, participants, deleted_count, has_deleted_in_conversation) VALUES `)

	args := make([]any, 0, len(xs)*12)
	for i, cv := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*12 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5,
			base+6, base+7, base+8, base+9, base+10, base+11)

		participants := cv.Participants
		if participants == nil {
			participants = []string{}
		}
		args = append(args,
			runID, cv.BlockID, cv.ConversationUID, cv.ExtractionGroupID,
			cv.ConversationID, cv.IDIsUUID, cv.PlatformCallID, nullableTime(cv.Datetime),
			cv.MessageCount, participants, cv.DeletedCount, cv.HasDeleted,
		)
	}
	sb.WriteString(` ON CONFLICT (run_id, conversation_block_id) DO NOTHING`)
	err := s.q.Exec(ctx, sb.String(), args...)
	return perr.FromPostgresWithField(err, "insert conversations")
}

// InsertFindings implements Storage. ord preserves artefact order, which
// is the validator's fixed check order
func (s *pg) InsertFindings(ctx context.Context, runID string, xs []artifact.FindingRecord) error {
	if len(xs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO findings (run_id, ord, check_name, severity, row_count, detail) VALUES `)

	args := make([]any, 0, len(xs)*6)
	for i, f := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*6 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5)

		args = append(args, runID, i+1, f.Check, string(f.Severity), f.Count, f.Detail)
	}
	sb.WriteString(` ON CONFLICT (run_id, ord) DO NOTHING`)
	err := s.q.Exec(ctx, sb.String(), args...)
	return perr.FromPostgresWithField(err, "insert findings")
}

// nullableTime maps the zero time to NULL
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
