// Package verify audits a carved result for internal consistency.
//
// Every check is read only. A finding downgrades trust in the artefacts
// and is surfaced for human review; nothing is repaired, dropped, or fed
// back into carving.
package verify

import (
	"fmt"
	"strconv"

	"exhume/internal/core/carve"
	"exhume/internal/core/classify"
)

// Severity grades a finding.
type Severity string

const (
	SevInfo    Severity = "info"
	SevWarning Severity = "warning"
)

// Finding records one check observation. Count is the number of rows or
// entities the finding covers.
type Finding struct {
	Check    string
	Severity Severity
	Count    int
	Detail   string
}

// Report holds findings in fixed check order, first occurrence first.
type Report struct {
	Findings []Finding
}

// Warnings returns the number of warning-severity findings.
func (r Report) Warnings() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SevWarning {
			n++
		}
	}
	return n
}

// Clean reports whether the audit surfaced nothing at all.
func (r Report) Clean() bool { return len(r.Findings) == 0 }

// FindingHeader lists the findings artefact columns in order.
var FindingHeader = []string{"check", "severity", "count", "detail"}

// Table renders the report as header plus one row per finding.
func (r Report) Table() [][]string {
	rows := make([][]string, 0, len(r.Findings)+1)
	rows = append(rows, FindingHeader)
	for _, f := range r.Findings {
		rows = append(rows, []string{f.Check, string(f.Severity), strconv.Itoa(f.Count), f.Detail})
	}
	return rows
}

// Run executes the full check set over res. The check order is fixed, so
// the same result always yields the same findings in the same order.
func Run(res carve.Result) Report {
	var rep Report
	rep.checkUIDUnique(res)
	rep.checkConvSeqRefs(res)
	rep.checkCountMatch(res)
	rep.checkRowNumOrder(res)
	rep.checkUUIDFlag(res)
	rep.checkSequenceDense(res)
	rep.checkSendersPresent(res)
	rep.noteStats(res.Stats)
	return rep
}

func (r *Report) add(check string, sev Severity, count int, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Check:    check,
		Severity: sev,
		Count:    count,
		Detail:   fmt.Sprintf(format, args...),
	})
}

// checkUIDUnique flags a conversation_uid that occupies more than one
// conversation row, or that spans distinct block ids in the message table.
func (r *Report) checkUIDUnique(res carve.Result) {
	seen := make(map[string]int, len(res.Conversations))
	var order []string
	for _, cv := range res.Conversations {
		if seen[cv.ConversationUID] == 0 {
			order = append(order, cv.ConversationUID)
		}
		seen[cv.ConversationUID]++
	}
	for _, uid := range order {
		if n := seen[uid]; n > 1 {
			r.add("uid_unique", SevWarning, n, "conversation_uid %q appears %d times in the conversation table", uid, n)
		}
	}

	spans := make(map[string]map[int]bool)
	var uidOrder []string
	for _, m := range res.Messages {
		set := spans[m.ConversationUID]
		if set == nil {
			set = make(map[int]bool)
			spans[m.ConversationUID] = set
			uidOrder = append(uidOrder, m.ConversationUID)
		}
		set[m.ConversationBlockID] = true
	}
	for _, uid := range uidOrder {
		if n := len(spans[uid]); n > 1 {
			r.add("uid_unique", SevWarning, n, "conversation_uid %q spans %d distinct block ids in the message table", uid, n)
		}
	}
}

// checkConvSeqRefs flags message rows whose conv_seq points at a block id
// absent from the conversation table.
func (r *Report) checkConvSeqRefs(res carve.Result) {
	known := make(map[int]bool, len(res.Conversations))
	for _, cv := range res.Conversations {
		known[cv.ConversationBlockID] = true
	}
	missing := map[int]int{}
	var order []int
	for _, m := range res.Messages {
		if known[m.ConvSeq] {
			continue
		}
		if missing[m.ConvSeq] == 0 {
			order = append(order, m.ConvSeq)
		}
		missing[m.ConvSeq]++
	}
	for _, id := range order {
		r.add("conv_seq_refs", SevWarning, missing[id], "conv_seq %d has no conversation row (%d messages reference it)", id, missing[id])
	}
}

// checkCountMatch compares each conversation row's message_count against
// the number of message rows carrying that block id. Empty blocks must
// report zero.
func (r *Report) checkCountMatch(res carve.Result) {
	got := make(map[int]int)
	for _, m := range res.Messages {
		got[m.ConversationBlockID]++
	}
	for _, cv := range res.Conversations {
		if n := got[cv.ConversationBlockID]; n != cv.MessageCount {
			r.add("count_match", SevWarning, 1, "block %d: conversation table says %d messages, message table has %d", cv.ConversationBlockID, cv.MessageCount, n)
		}
	}
}

// checkRowNumOrder requires row_num to be strictly increasing in message
// table order. Adjacent comparison is complete here: a strictly increasing
// sequence cannot hide duplicates.
func (r *Report) checkRowNumOrder(res carve.Result) {
	violations := 0
	first := ""
	for i := 1; i < len(res.Messages); i++ {
		cur, prev := res.Messages[i].RowNum, res.Messages[i-1].RowNum
		if cur <= prev {
			violations++
			if first == "" {
				first = fmt.Sprintf("row_num %d at index %d does not increase past %d", cur, i, prev)
			}
		}
	}
	if violations > 0 {
		r.add("row_num_order", SevWarning, violations, "%s", first)
	}
}

// checkUUIDFlag recomputes the strict UUID shape from conversation_id and
// compares it to the stored flag, in both tables.
func (r *Report) checkUUIDFlag(res carve.Result) {
	n, first := 0, ""
	for _, cv := range res.Conversations {
		if cv.ConversationIDIsUUID != classify.IsStrictUUID(cv.ConversationID) {
			n++
			if first == "" {
				first = fmt.Sprintf("first: block %d id %q", cv.ConversationBlockID, cv.ConversationID)
			}
		}
	}
	if n > 0 {
		r.add("uuid_flag", SevWarning, n, "conversation table: %d stored uuid flags disagree with recomputation (%s)", n, first)
	}

	n, first = 0, ""
	for _, m := range res.Messages {
		if m.ConversationIDIsUUID != classify.IsStrictUUID(m.ConversationID) {
			n++
			if first == "" {
				first = fmt.Sprintf("first: row %d id %q", m.RowNum, m.ConversationID)
			}
		}
	}
	if n > 0 {
		r.add("uuid_flag", SevWarning, n, "message table: %d stored uuid flags disagree with recomputation (%s)", n, first)
	}
}

// checkSequenceDense requires per-block message_sequence values to run
// 1..k with no gaps, in message table order. One finding per block names
// the first gap.
func (r *Report) checkSequenceDense(res carve.Result) {
	next := make(map[int]int)
	flagged := make(map[int]bool)
	for _, m := range res.Messages {
		want := next[m.ConversationBlockID] + 1
		if m.MessageSequence != want && !flagged[m.ConversationBlockID] {
			flagged[m.ConversationBlockID] = true
			r.add("sequence_dense", SevWarning, 1, "block %d: message_sequence %d where %d expected", m.ConversationBlockID, m.MessageSequence, want)
		}
		next[m.ConversationBlockID] = m.MessageSequence
	}
}

// checkSendersPresent flags message rows with an empty sender. The
// classifier only admits email-shaped first fields, so a blank sender
// means the tables were altered after carving.
func (r *Report) checkSendersPresent(res carve.Result) {
	n, first := 0, ""
	for _, m := range res.Messages {
		if m.SenderEmail == "" {
			n++
			if first == "" {
				first = fmt.Sprintf("first: row %d", m.RowNum)
			}
		}
	}
	if n > 0 {
		r.add("senders_present", SevWarning, n, "%d message rows have no sender (%s)", n, first)
	}
}

// noteStats surfaces the run counters that describe discarded or unusual
// input as informational findings.
func (r *Report) noteStats(s carve.Stats) {
	if s.OrphanRows > 0 {
		r.add("orphan_rows", SevInfo, s.OrphanRows, "%d rows preceded the first marker and were discarded", s.OrphanRows)
	}
	if s.ShortRows > 0 {
		r.add("short_rows", SevInfo, s.ShortRows, "%d rows had fewer than two fields", s.ShortRows)
	}
	if s.DuplicateMetaRows > 0 {
		r.add("duplicate_metadata", SevInfo, s.DuplicateMetaRows, "%d metadata rows repeated an already harvested key", s.DuplicateMetaRows)
	}
	if s.EmptyBlocks > 0 {
		r.add("empty_blocks", SevInfo, s.EmptyBlocks, "%d blocks contain no messages", s.EmptyBlocks)
	}
}
