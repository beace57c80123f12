// Package carve reconstructs conversation blocks from a classified row stream.
//
// The carver is the only stateful core component: it consumes rows strictly
// in ingestion order, opens a block at each extraction marker, harvests
// block-scoped metadata, buffers messages, and finalizes each block when the
// next marker arrives or the stream ends. Evidence handling is forensic:
// content is preserved verbatim, identifiers are deterministic, anomalies
// are counted rather than repaired
package carve

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"exhume/internal/core/classify"
)

// Default option values matching the export this pipeline was built for
const (
	DefaultDeletedMarker  = "[Deleted Message]"
	DefaultDatetimeFormat = "1/2/06 3:04:05 PM"
)

// OutputDatetimeLayout is how finalized datetimes render in the tables
const OutputDatetimeLayout = "2006-01-02 15:04:05"

// Options controls carving behavior
type Options struct {
	// MarkerPattern overrides the block marker regexp ("" = classify default)
	MarkerPattern string
	// DeletedMarker is the literal deletion placeholder, matched byte-exact
	DeletedMarker string
	// DatetimeFormat is the Go layout for the raw block datetime values
	DatetimeFormat string
}

func (o Options) withDefaults() Options {
	if o.DeletedMarker == "" {
		o.DeletedMarker = DefaultDeletedMarker
	}
	if o.DatetimeFormat == "" {
		o.DatetimeFormat = DefaultDatetimeFormat
	}
	return o
}

// MessageStatus flags whether a message carries real content or the
// deletion placeholder
type MessageStatus string

const (
	// StatusNormal is a regular message
	StatusNormal MessageStatus = "normal"
	// StatusDeleted means the text equals the deleted marker exactly
	StatusDeleted MessageStatus = "deleted"
)

// Message is one reconstructed message row, child of exactly one block
type Message struct {
	ExtractionGroupID        string
	ConversationUID          string
	ConversationBlockID      int
	ConversationID           string
	ConversationIDIsUUID     bool
	PlatformCallID           string
	ConversationDatetime     time.Time
	SenderEmail              string
	MessageText              string
	MessageLen               int
	Status                   MessageStatus
	HasDeletedInConversation bool
	MessageSequence          int
	RowNum                   int
	ConvSeq                  int
}

// Conversation is one finalized block
type Conversation struct {
	ConversationBlockID      int
	ConversationUID          string
	ExtractionGroupID        string
	ConversationID           string
	ConversationIDIsUUID     bool
	PlatformCallID           string
	ConversationDatetime     time.Time
	MessageCount             int
	Participants             []string
	DeletedCount             int
	HasDeletedInConversation bool
}

// Stats accounts for every input row.
// RowsTotal = MarkerRows + MessageRows + MetadataRows + OrphanRows;
// ShortRows, DuplicateMetaRows, DeletedMessages and EmptyBlocks are
// quality sub-counts, not part of the partition
type Stats struct {
	RowsTotal         int
	MarkerRows        int
	MessageRows       int
	MetadataRows      int
	OrphanRows        int
	ShortRows         int
	DuplicateMetaRows int
	DeletedMessages   int
	EmptyBlocks       int
}

// Result is the carved output handed to the aggregator and validator
type Result struct {
	Messages      []Message
	Conversations []Conversation
	Stats         Stats
}

// openBlock is the in-progress block accumulator
type openBlock struct {
	id     int
	marker string

	convID string
	callID string
	rawDT  string

	haveConvID bool
	haveCallID bool
	haveDT     bool

	msgStart int // index into Carver.msgs where this block's messages begin
	seq      int
	deleted  int
}

// Carver carves a classified row stream into blocks.
// Single pass, no lookahead, no backtracking; not safe for concurrent use
type Carver struct {
	cls  *classify.Classifier
	opts Options

	open     *openBlock
	nextID   int
	msgs     []Message
	convs    []Conversation
	stats    Stats
	finished bool
}

// New builds a Carver. Zero-value Options select the export defaults
func New(opts Options) (*Carver, error) {
	opts = opts.withDefaults()
	cls, err := classify.New(opts.MarkerPattern)
	if err != nil {
		return nil, fmt.Errorf("carve: marker pattern: %w", err)
	}
	return &Carver{cls: cls, opts: opts, nextID: 1}, nil
}

// Feed consumes one row in stream order
func (c *Carver) Feed(row classify.RawRow) error {
	if c.finished {
		return fmt.Errorf("carve: feed after finish (row %d)", row.Num)
	}

	c.stats.RowsTotal++
	if row.Short() {
		c.stats.ShortRows++
	}

	switch c.cls.Classify(row) {
	case classify.KindBlockStart:
		c.finalizeOpen()
		c.open = &openBlock{id: c.nextID, marker: row.First(), msgStart: len(c.msgs)}
		c.nextID++
		c.stats.MarkerRows++

	case classify.KindMessage:
		if c.open == nil {
			c.stats.OrphanRows++
			return nil
		}
		c.open.seq++
		text := row.Second()
		status := StatusNormal
		if text == c.opts.DeletedMarker {
			status = StatusDeleted
			c.open.deleted++
			c.stats.DeletedMessages++
		}
		c.msgs = append(c.msgs, Message{
			SenderEmail:     row.First(),
			MessageText:     text,
			MessageLen:      utf8.RuneCountInString(text),
			Status:          status,
			MessageSequence: c.open.seq,
			RowNum:          row.Num,
		})
		c.stats.MessageRows++

	default: // metadata
		if c.open == nil {
			c.stats.OrphanRows++
			return nil
		}
		c.stats.MetadataRows++
		c.harvestMeta(row)
	}
	return nil
}

// harvestMeta records a block-scoped key/value; first occurrence wins,
// later duplicates are counted and ignored. Unknown keys are plain metadata
func (c *Carver) harvestMeta(row classify.RawRow) {
	field, ok := classify.MetaKey(row.First())
	if !ok {
		return
	}
	switch field {
	case classify.MetaConversationID:
		if c.open.haveConvID {
			c.stats.DuplicateMetaRows++
			return
		}
		c.open.convID = row.Second()
		c.open.haveConvID = true
	case classify.MetaPlatformCallID:
		if c.open.haveCallID {
			c.stats.DuplicateMetaRows++
			return
		}
		c.open.callID = row.Second()
		c.open.haveCallID = true
	case classify.MetaDatetime:
		if c.open.haveDT {
			c.stats.DuplicateMetaRows++
			return
		}
		c.open.rawDT = row.Second()
		c.open.haveDT = true
	}
}

// Finish finalizes the open block and returns the accumulated result.
// The carver accepts no rows afterwards
func (c *Carver) Finish() Result {
	if !c.finished {
		c.finalizeOpen()
		c.finished = true
	}
	return Result{Messages: c.msgs, Conversations: c.convs, Stats: c.stats}
}

// finalizeOpen fixes the open block's derived fields, back-propagates them
// onto its buffered messages, and emits the conversation row. Zero-message
// blocks are emitted too; a metadata-only block is a traceable fact
func (c *Carver) finalizeOpen() {
	b := c.open
	if b == nil {
		return
	}
	c.open = nil

	uid := b.marker + "-" + strconv.Itoa(b.id)
	uuidOK := classify.IsStrictUUID(b.convID)

	// unparseable or missing datetime yields the zero time, never an error
	var dt time.Time
	if b.rawDT != "" {
		if parsed, err := time.Parse(c.opts.DatetimeFormat, b.rawDT); err == nil {
			dt = parsed
		}
	}

	members := c.msgs[b.msgStart:]
	hasDeleted := b.deleted > 0

	var participants []string
	seen := make(map[string]struct{}, 4)
	for i := range members {
		m := &members[i]
		m.ExtractionGroupID = b.marker
		m.ConversationUID = uid
		m.ConversationBlockID = b.id
		m.ConversationID = b.convID
		m.ConversationIDIsUUID = uuidOK
		m.PlatformCallID = b.callID
		m.ConversationDatetime = dt
		m.HasDeletedInConversation = hasDeleted
		m.ConvSeq = b.id

		if _, dup := seen[m.SenderEmail]; !dup {
			seen[m.SenderEmail] = struct{}{}
			participants = append(participants, m.SenderEmail)
		}
	}

	if len(members) == 0 {
		c.stats.EmptyBlocks++
	}

	c.convs = append(c.convs, Conversation{
		ConversationBlockID:      b.id,
		ConversationUID:          uid,
		ExtractionGroupID:        b.marker,
		ConversationID:           b.convID,
		ConversationIDIsUUID:     uuidOK,
		PlatformCallID:           b.callID,
		ConversationDatetime:     dt,
		MessageCount:             len(members),
		Participants:             participants,
		DeletedCount:             b.deleted,
		HasDeletedInConversation: hasDeleted,
	})
}
