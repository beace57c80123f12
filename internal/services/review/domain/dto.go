// Package domain holds DTOs for review http and service contracts
package domain

// RunsInput is the input for listing recent carve runs
type RunsInput struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"20"`
}

// Window returns the effective limit, defaulting when the field was omitted
func (in RunsInput) Window() int {
	if in.Limit <= 0 || in.Limit > 200 {
		return 20
	}
	return in.Limit
}

// Run represents one loaded carve run
type Run struct {
	RunID         string `json:"run_id"`
	LoadedAt      string `json:"loaded_at"`
	SourceDir     string `json:"source_dir"`
	Messages      int    `json:"messages"`
	Conversations int    `json:"conversations"`
	Findings      int    `json:"findings"`
}

// ConversationsInput is the input for listing conversations of a run
type ConversationsInput struct {
	RunID       string `json:"run_id" validate:"required,uuid" example:"8a6e0804-2bd0-4672-b79d-d97027f9071a"`
	DeletedOnly bool   `json:"deleted_only,omitempty" example:"true"`
	Limit       int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`
	Offset      int    `json:"offset,omitempty" validate:"omitempty,min=0" example:"0"`
}

// Window returns the effective limit and offset, defaulting omitted fields
func (in ConversationsInput) Window() (limit, offset int) {
	limit, offset = in.Limit, in.Offset
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Conversation represents one carved conversation summary
type Conversation struct {
	BlockID           int      `json:"conversation_block_id"`
	ConversationUID   string   `json:"conversation_uid"`
	ExtractionGroupID string   `json:"extraction_group_id"`
	ConversationID    string   `json:"conversation_id"`
	IDIsUUID          bool     `json:"conversation_id_is_uuid"`
	PlatformCallID    string   `json:"platform_call_id"`
	Datetime          string   `json:"conversation_datetime"`
	Messages          int      `json:"message_count"`
	Participants      []string `json:"participants"`
	Deleted           int      `json:"deleted_count"`
	HasDeleted        bool     `json:"has_deleted_in_conversation"`
}

// MessagesInput is the input for listing one conversation's messages
type MessagesInput struct {
	RunID           string `json:"run_id" validate:"required,uuid" example:"8a6e0804-2bd0-4672-b79d-d97027f9071a"`
	ConversationUID string `json:"conversation_uid" validate:"required,conv_uid" example:"APD10021-3"`
}

// Message represents one carved message row
type Message struct {
	ConversationUID string `json:"conversation_uid"`
	Sequence        int    `json:"message_sequence"`
	RowNum          int    `json:"row_num"`
	Sender          string `json:"sender_email"`
	Text            string `json:"message_text"`
	Len             int    `json:"message_len"`
	Status          string `json:"message_status"`
	HasDeleted      bool   `json:"has_deleted_in_conversation"`
	Datetime        string `json:"conversation_datetime"`
}

// FindingsInput is the input for listing a run's validation findings
type FindingsInput struct {
	RunID string `json:"run_id" validate:"required,uuid" example:"8a6e0804-2bd0-4672-b79d-d97027f9071a"`
}

// Finding represents one persisted validation finding
type Finding struct {
	Ord      int    `json:"ord"`
	Check    string `json:"check"`
	Severity string `json:"severity"`
	Count    int    `json:"count"`
	Detail   string `json:"detail"`
}
