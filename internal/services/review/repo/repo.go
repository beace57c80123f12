// Package repo provides postgres access for review
package repo

import (
	"context"

	"exhume/internal/modkit/repokit"
	perr "exhume/internal/platform/errors"
)

// Repo defines the repository contract for review
type Repo interface {
	Runs(ctx context.Context, limit int) ([]RowRun, error)
	Conversations(ctx context.Context, runID string, deletedOnly bool, limit, offset int) ([]RowConversation, error)
	CountConversations(ctx context.Context, runID string, deletedOnly bool) (int, error)
	ConversationExists(ctx context.Context, runID, conversationUID string) (bool, error)
	Messages(ctx context.Context, runID, conversationUID string) ([]RowMessage, error)
	Findings(ctx context.Context, runID string) ([]RowFinding, error)
}

// RowRun represents a carve run row from the database
type RowRun struct {
	RunID         string
	LoadedAt      string
	SourceDir     string
	Messages      int
	Conversations int
	Findings      int
}

// RowConversation represents a conversation summary row from the database
type RowConversation struct {
	BlockID           int
	ConversationUID   string
	ExtractionGroupID string
	ConversationID    string
	IDIsUUID          bool
	PlatformCallID    string
	Datetime          string
	Messages          int
	Participants      []string
	Deleted           int
	HasDeleted        bool
}

// RowMessage represents a message row from the database
type RowMessage struct {
	ConversationUID string
	Sequence        int
	RowNum          int
	Sender          string
	Text            string
	Len             int
	Status          string
	HasDeleted      bool
	Datetime        string
}

// RowFinding represents a validation finding row from the database
type RowFinding struct {
	Ord      int
	Check    string
	Severity string
	Count    int
	Detail   string
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Runs(ctx context.Context, limit int) ([]RowRun, error) {
	const sql = `
select run_id::text, loaded_at::text, source_dir, message_count, conversation_count, finding_count
from carve_runs
order by loaded_at desc
limit $1
`
	rows, err := r.q.Query(ctx, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list carve runs")
	}
	defer rows.Close()
	var out []RowRun
	for rows.Next() {
		var rr RowRun
		if err := rows.Scan(
			&rr.RunID,
			&rr.LoadedAt,
			&rr.SourceDir,
			&rr.Messages,
			&rr.Conversations,
			&rr.Findings,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan carve run")
		}
		out = append(out, rr)
	}
	return out, perr.FromPostgres(rows.Err(), "list carve runs")
}

func (r *queries) Conversations(ctx context.Context, runID string, deletedOnly bool, limit, offset int) ([]RowConversation, error) {
	// datetime renders in the artefact layout so reviewers can diff
	// against clean_messages.csv by eye
	const sql = `
select conversation_block_id, conversation_uid, extraction_group_id, conversation_id,
conversation_id_is_uuid, platform_call_id,
coalesce(to_char(conversation_datetime at time zone 'UTC', 'YYYY-MM-DD HH24:MI:SS'), ''),
message_count, participants, deleted_count, has_deleted_in_conversation
from conversations
where run_id = $1
and (not $2 or has_deleted_in_conversation)
order by conversation_block_id
limit $3 offset $4
`
	rows, err := r.q.Query(ctx, sql, runID, deletedOnly, limit, offset)
	if err != nil {
		return nil, perr.FromPostgresf(err, "list conversations for run %s", runID)
	}
	defer rows.Close()
	var out []RowConversation
	for rows.Next() {
		var rr RowConversation
		if err := rows.Scan(
			&rr.BlockID,
			&rr.ConversationUID,
			&rr.ExtractionGroupID,
			&rr.ConversationID,
			&rr.IDIsUUID,
			&rr.PlatformCallID,
			&rr.Datetime,
			&rr.Messages,
			&rr.Participants,
			&rr.Deleted,
			&rr.HasDeleted,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan conversation")
		}
		out = append(out, rr)
	}
	return out, perr.FromPostgresf(rows.Err(), "list conversations for run %s", runID)
}

func (r *queries) CountConversations(ctx context.Context, runID string, deletedOnly bool) (int, error) {
	const sql = `
select count(*)
from conversations
where run_id = $1
and (not $2 or has_deleted_in_conversation)
`
	var n int
	if err := r.q.QueryRow(ctx, sql, runID, deletedOnly).Scan(&n); err != nil {
		return 0, perr.FromPostgres(err, "count conversations")
	}
	return n, nil
}

func (r *queries) ConversationExists(ctx context.Context, runID, conversationUID string) (bool, error) {
	const sql = `
select exists (
select 1 from conversations where run_id = $1 and conversation_uid = $2
)
`
	var ok bool
	if err := r.q.QueryRow(ctx, sql, runID, conversationUID).Scan(&ok); err != nil {
		return false, perr.FromPostgres(err, "check conversation")
	}
	return ok, nil
}

func (r *queries) Messages(ctx context.Context, runID, conversationUID string) ([]RowMessage, error) {
	const sql = `
select conversation_uid, message_sequence, row_num, sender_email, message_text, message_len,
message_status, has_deleted_in_conversation,
coalesce(to_char(conversation_datetime at time zone 'UTC', 'YYYY-MM-DD HH24:MI:SS'), '')
from messages
where run_id = $1 and conversation_uid = $2
order by message_sequence
`
	rows, err := r.q.Query(ctx, sql, runID, conversationUID)
	if err != nil {
		return nil, perr.FromPostgresf(err, "list messages for %s", conversationUID)
	}
	defer rows.Close()
	var out []RowMessage
	for rows.Next() {
		var rr RowMessage
		if err := rows.Scan(
			&rr.ConversationUID,
			&rr.Sequence,
			&rr.RowNum,
			&rr.Sender,
			&rr.Text,
			&rr.Len,
			&rr.Status,
			&rr.HasDeleted,
			&rr.Datetime,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan message")
		}
		out = append(out, rr)
	}
	return out, perr.FromPostgresf(rows.Err(), "list messages for %s", conversationUID)
}

func (r *queries) Findings(ctx context.Context, runID string) ([]RowFinding, error) {
	const sql = `
select ord, check_name, severity, row_count, detail
from findings
where run_id = $1
order by ord
`
	rows, err := r.q.Query(ctx, sql, runID)
	if err != nil {
		return nil, perr.FromPostgresf(err, "list findings for run %s", runID)
	}
	defer rows.Close()
	var out []RowFinding
	for rows.Next() {
		var rr RowFinding
		if err := rows.Scan(
			&rr.Ord,
			&rr.Check,
			&rr.Severity,
			&rr.Count,
			&rr.Detail,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan finding")
		}
		out = append(out, rr)
	}
	return out, perr.FromPostgresf(rows.Err(), "list findings for run %s", runID)
}
