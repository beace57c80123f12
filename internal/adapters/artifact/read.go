package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"exhume/internal/core/carve"
	"exhume/internal/core/verify"
)

// MessageRecord is one clean_messages row parsed back into typed fields
type MessageRecord struct {
	ExtractionGroupID string
	ConversationUID   string
	BlockID           int
	ConversationID    string
	IDIsUUID          bool
	PlatformCallID    string
	Datetime          time.Time
	Sender            string
	Text              string
	Len               int
	Status            carve.MessageStatus
	HasDeleted        bool
	Sequence          int
	RowNum            int
	ConvSeq           int
}

// ConversationRecord is one conversation_summary row parsed back
type ConversationRecord struct {
	BlockID           int
	ConversationUID   string
	ExtractionGroupID string
	ConversationID    string
	IDIsUUID          bool
	PlatformCallID    string
	Datetime          time.Time
	MessageCount      int
	Participants      []string
	DeletedCount      int
	HasDeleted        bool
}

// FindingRecord is one validation_findings row parsed back
type FindingRecord struct {
	Check    string
	Severity verify.Severity
	Count    int
	Detail   string
}

// ReadMessages loads a clean_messages artefact back into typed records,
// in file order
func ReadMessages(path string) ([]MessageRecord, error) {
	rows, err := readTable(path, carve.MessageHeader)
	if err != nil {
		return nil, err
	}
	out := make([]MessageRecord, 0, len(rows))
	for i, fields := range rows {
		c := cells{header: carve.MessageHeader, fields: fields}
		rec := MessageRecord{
			ExtractionGroupID: c.str(0),
			ConversationUID:   c.str(1),
			BlockID:           c.num(2),
			ConversationID:    c.str(3),
			IDIsUUID:          c.boolean(4),
			PlatformCallID:    c.str(5),
			Datetime:          c.when(6),
			Sender:            c.str(7),
			Text:              c.str(8),
			Len:               c.num(9),
			Status:            carve.MessageStatus(c.str(10)),
			HasDeleted:        c.boolean(11),
			Sequence:          c.num(12),
			RowNum:            c.num(13),
			ConvSeq:           c.num(14),
		}
		if c.err != nil {
			return nil, rowError(path, i, c.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadConversations loads a conversation_summary artefact back into typed
// records, in block order
func ReadConversations(path string) ([]ConversationRecord, error) {
	rows, err := readTable(path, carve.ConversationHeader)
	if err != nil {
		return nil, err
	}
	out := make([]ConversationRecord, 0, len(rows))
	for i, fields := range rows {
		c := cells{header: carve.ConversationHeader, fields: fields}
		rec := ConversationRecord{
			BlockID:           c.num(0),
			ConversationUID:   c.str(1),
			ExtractionGroupID: c.str(2),
			ConversationID:    c.str(3),
			IDIsUUID:          c.boolean(4),
			PlatformCallID:    c.str(5),
			Datetime:          c.when(6),
			MessageCount:      c.num(7),
			Participants:      splitParticipants(c.str(8)),
			DeletedCount:      c.num(9),
			HasDeleted:        c.boolean(10),
		}
		if c.err != nil {
			return nil, rowError(path, i, c.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadFindings loads a validation_findings artefact back into typed records
func ReadFindings(path string) ([]FindingRecord, error) {
	rows, err := readTable(path, verify.FindingHeader)
	if err != nil {
		return nil, err
	}
	out := make([]FindingRecord, 0, len(rows))
	for i, fields := range rows {
		c := cells{header: verify.FindingHeader, fields: fields}
		rec := FindingRecord{
			Check:    c.str(0),
			Severity: verify.Severity(c.str(1)),
			Count:    c.num(2),
			Detail:   c.str(3),
		}
		if c.err != nil {
			return nil, rowError(path, i, c.err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// readTable loads path and rejects it unless the header matches want exactly.
// Returned rows exclude the header
func readTable(path string, want []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	// FieldsPerRecord left at zero: the header sets the width every
	// data row must then match
	cr := csv.NewReader(f)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("artifact: parse %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("artifact: %s: missing header", filepath.Base(path))
	}
	if !slices.Equal(rows[0], want) {
		return nil, fmt.Errorf("artifact: %s: unexpected header %v", filepath.Base(path), rows[0])
	}
	return rows[1:], nil
}

// rowError names the offending artefact line; i indexes the data rows, so
// the reported line is i plus the header plus 1-basing
func rowError(path string, i int, err error) error {
	return fmt.Errorf("artifact: %s row %d: %w", filepath.Base(path), i+2, err)
}

// cells pulls typed values out of one artefact row. The first failure
// sticks so call sites stay flat
type cells struct {
	header []string
	fields []string
	err    error
}

func (c *cells) str(i int) string { return c.fields[i] }

func (c *cells) num(i int) int {
	if c.err != nil {
		return 0
	}
	n, err := strconv.Atoi(c.fields[i])
	if err != nil {
		c.err = fmt.Errorf("%s: %w", c.header[i], err)
	}
	return n
}

func (c *cells) boolean(i int) bool {
	if c.err != nil {
		return false
	}
	b, err := strconv.ParseBool(c.fields[i])
	if err != nil {
		c.err = fmt.Errorf("%s: %w", c.header[i], err)
	}
	return b
}

func (c *cells) when(i int) time.Time {
	if c.err != nil || c.fields[i] == "" {
		return time.Time{}
	}
	t, err := time.Parse(carve.OutputDatetimeLayout, c.fields[i])
	if err != nil {
		c.err = fmt.Errorf("%s: %w", c.header[i], err)
	}
	return t
}

// splitParticipants undoes the summary table's join. An empty cell means
// an empty block, not one empty participant
func splitParticipants(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, "; ")
}
