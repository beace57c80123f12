package repo

import (
	"context"

	"exhume/internal/adapters/artifact"
	"exhume/internal/platform/store"
)

// Analytics defines the columnar warehouse repository
type Analytics interface {
	EnsureWideSchema(ctx context.Context) error
	InsertMessagesWide(ctx context.Context, runID string, xs []artifact.MessageRecord) error
}

// NewCH constructs the columnar repo over the store seam
func NewCH(c store.Clickhouse) Analytics { return &chRepo{c: c} }

type chRepo struct{ c store.Clickhouse }

// wideDDL is append-only and unkeyed on purpose; analysts slice by run_id
const wideDDL = `CREATE TABLE IF NOT EXISTS messages_wide (
	run_id                      String,
	extraction_group_id         String,
	conversation_uid            String,
	conversation_block_id       Int32,
	conversation_id             String,
	conversation_id_is_uuid     Bool,
	platform_call_id            String,
	conversation_datetime       Nullable(DateTime('UTC')),
	sender_email                String,
	message_text                String,
	message_len                 Int32,
	message_status              LowCardinality(String),
	has_deleted_in_conversation Bool,
	message_sequence            Int32,
	row_num                     Int32,
	conv_seq                    Int32
) ENGINE = MergeTree
ORDER BY (run_id, conversation_block_id, message_sequence)`

var wideCols = []string{
	"run_id",
	"extraction_group_id",
	"conversation_uid",
	"conversation_block_id",
	"conversation_id",
	"conversation_id_is_uuid",
	"platform_call_id",
	"conversation_datetime",
	"sender_email",
	"message_text",
	"message_len",
	"message_status",
	"has_deleted_in_conversation",
	"message_sequence",
	"row_num",
	"conv_seq",
}

// EnsureWideSchema implements Analytics
func (r *chRepo) EnsureWideSchema(ctx context.Context) error {
	return r.c.Exec(ctx, wideDDL)
}

// InsertMessagesWide implements Analytics
func (r *chRepo) InsertMessagesWide(ctx context.Context, runID string, xs []artifact.MessageRecord) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for i := range xs {
		m := &xs[i]
		var dt any
		if !m.Datetime.IsZero() {
			dt = m.Datetime
		}
		rows = append(rows, []any{
			runID,
			m.ExtractionGroupID,
			m.ConversationUID,
			int32(m.BlockID),
			m.ConversationID,
			m.IDIsUUID,
			m.PlatformCallID,
			dt,
			m.Sender,
			m.Text,
			int32(m.Len),
			string(m.Status),
			m.HasDeleted,
			int32(m.Sequence),
			int32(m.RowNum),
			int32(m.ConvSeq),
		})
	}
	return r.c.Insert(ctx, "messages_wide", wideCols, rows)
}
