package carve

import (
	"strconv"
	"strings"
	"time"
)

// MessageHeader is the clean_messages column set, order fixed.
// conv_seq duplicates conversation_block_id: it is the stable join key
// under its dedicated name
var MessageHeader = []string{
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

// ConversationHeader is the conversation_summary column set, order fixed
var ConversationHeader = []string{
	"conversation_block_id",
	"conversation_uid",
	"extraction_group_id",
	"conversation_id",
	"conversation_id_is_uuid",
	"platform_call_id",
	"conversation_datetime",
	"message_count",
	"participants",
	"deleted_count",
	"has_deleted_in_conversation",
}

// MessageTable projects the result into the message-level table:
// header plus one row per message in global ingestion order
func (r Result) MessageTable() [][]string {
	out := make([][]string, 0, len(r.Messages)+1)
	out = append(out, MessageHeader)
	for i := range r.Messages {
		m := &r.Messages[i]
		out = append(out, []string{
			m.ExtractionGroupID,
			m.ConversationUID,
			strconv.Itoa(m.ConversationBlockID),
			m.ConversationID,
			strconv.FormatBool(m.ConversationIDIsUUID),
			m.PlatformCallID,
			renderDatetime(m.ConversationDatetime),
			m.SenderEmail,
			m.MessageText,
			strconv.Itoa(m.MessageLen),
			string(m.Status),
			strconv.FormatBool(m.HasDeletedInConversation),
			strconv.Itoa(m.MessageSequence),
			strconv.Itoa(m.RowNum),
			strconv.Itoa(m.ConvSeq),
		})
	}
	return out
}

// ConversationTable projects the result into the conversation-level table:
// header plus one row per block (empty blocks included) in block order
func (r Result) ConversationTable() [][]string {
	out := make([][]string, 0, len(r.Conversations)+1)
	out = append(out, ConversationHeader)
	for i := range r.Conversations {
		cv := &r.Conversations[i]
		out = append(out, []string{
			strconv.Itoa(cv.ConversationBlockID),
			cv.ConversationUID,
			cv.ExtractionGroupID,
			cv.ConversationID,
			strconv.FormatBool(cv.ConversationIDIsUUID),
			cv.PlatformCallID,
			renderDatetime(cv.ConversationDatetime),
			strconv.Itoa(cv.MessageCount),
			strings.Join(cv.Participants, "; "),
			strconv.Itoa(cv.DeletedCount),
			strconv.FormatBool(cv.HasDeletedInConversation),
		})
	}
	return out
}

// renderDatetime formats t for the tables; the zero time renders empty
func renderDatetime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(OutputDatetimeLayout)
}
