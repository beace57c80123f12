package verify

import (
	"reflect"
	"testing"

	"exhume/internal/core/carve"
)

// consistent builds a small result that passes every check
func consistent() carve.Result {
	return carve.Result{
		Messages: []carve.Message{
			{
				ExtractionGroupID: "APD1", ConversationUID: "APD1-1", ConversationBlockID: 1,
				ConversationID: "abc", SenderEmail: "a@b.com", MessageText: "x", MessageLen: 1,
				Status: carve.StatusNormal, MessageSequence: 1, RowNum: 2, ConvSeq: 1,
			},
			{
				ExtractionGroupID: "APD1", ConversationUID: "APD1-1", ConversationBlockID: 1,
				ConversationID: "abc", SenderEmail: "b@c.com", MessageText: "y", MessageLen: 1,
				Status: carve.StatusNormal, MessageSequence: 2, RowNum: 3, ConvSeq: 1,
			},
		},
		Conversations: []carve.Conversation{
			{
				ConversationBlockID: 1, ConversationUID: "APD1-1", ExtractionGroupID: "APD1",
				ConversationID: "abc", MessageCount: 2,
				Participants: []string{"a@b.com", "b@c.com"},
			},
		},
		Stats: carve.Stats{RowsTotal: 3, MarkerRows: 1, MessageRows: 2},
	}
}

func findings(rep Report, check string) []Finding {
	var out []Finding
	for _, f := range rep.Findings {
		if f.Check == check {
			out = append(out, f)
		}
	}
	return out
}

func TestRun_CleanResult(t *testing.T) {
	t.Parallel()

	rep := Run(consistent())
	if !rep.Clean() {
		t.Fatalf("expected clean report, got %+v", rep.Findings)
	}
	if rep.Warnings() != 0 {
		t.Fatalf("Warnings = %d, want 0", rep.Warnings())
	}
}

func TestRun_DuplicateUIDInConversationTable(t *testing.T) {
	t.Parallel()

	res := consistent()
	dup := res.Conversations[0]
	dup.ConversationBlockID = 2
	dup.MessageCount = 0
	res.Conversations = append(res.Conversations, dup)

	rep := Run(res)
	got := findings(rep, "uid_unique")
	if len(got) != 1 || got[0].Severity != SevWarning || got[0].Count != 2 {
		t.Fatalf("uid_unique findings = %+v", got)
	}
}

func TestRun_UIDSpansBlocksInMessageTable(t *testing.T) {
	t.Parallel()

	res := consistent()
	res.Messages[1].ConversationBlockID = 2

	rep := Run(res)
	if len(findings(rep, "uid_unique")) != 1 {
		t.Fatalf("expected a uid span finding, got %+v", rep.Findings)
	}
}

func TestRun_DanglingConvSeq(t *testing.T) {
	t.Parallel()

	res := consistent()
	res.Messages[1].ConvSeq = 99

	rep := Run(res)
	got := findings(rep, "conv_seq_refs")
	if len(got) != 1 || got[0].Count != 1 || got[0].Severity != SevWarning {
		t.Fatalf("conv_seq_refs findings = %+v", got)
	}
}

func TestRun_CountMismatch(t *testing.T) {
	t.Parallel()

	res := consistent()
	res.Conversations[0].MessageCount = 5

	rep := Run(res)
	got := findings(rep, "count_match")
	if len(got) != 1 || got[0].Severity != SevWarning {
		t.Fatalf("count_match findings = %+v", got)
	}
}

func TestRun_RowNumOutOfOrder(t *testing.T) {
	t.Parallel()

	res := consistent()
	res.Messages[1].RowNum = res.Messages[0].RowNum

	rep := Run(res)
	got := findings(rep, "row_num_order")
	if len(got) != 1 || got[0].Count != 1 {
		t.Fatalf("row_num_order findings = %+v", got)
	}
}

func TestRun_StaleUUIDFlag(t *testing.T) {
	t.Parallel()

	res := consistent()
	res.Conversations[0].ConversationIDIsUUID = true // id "abc" is not a uuid
	res.Messages[0].ConversationIDIsUUID = true

	rep := Run(res)
	got := findings(rep, "uuid_flag")
	if len(got) != 2 {
		t.Fatalf("expected one finding per table, got %+v", got)
	}
	if got[0].Count != 1 || got[1].Count != 1 {
		t.Fatalf("uuid_flag counts = %+v", got)
	}
}

func TestRun_SequenceGap(t *testing.T) {
	t.Parallel()

	res := consistent()
	res.Messages[1].MessageSequence = 7

	rep := Run(res)
	got := findings(rep, "sequence_dense")
	if len(got) != 1 || got[0].Severity != SevWarning {
		t.Fatalf("sequence_dense findings = %+v", got)
	}
}

func TestRun_MissingSender(t *testing.T) {
	t.Parallel()

	res := consistent()
	res.Messages[0].SenderEmail = ""

	rep := Run(res)
	got := findings(rep, "senders_present")
	if len(got) != 1 || got[0].Count != 1 {
		t.Fatalf("senders_present findings = %+v", got)
	}
}

func TestRun_StatsBecomeInfoFindings(t *testing.T) {
	t.Parallel()

	res := consistent()
	res.Stats.OrphanRows = 2
	res.Stats.ShortRows = 1
	res.Stats.DuplicateMetaRows = 3
	res.Stats.EmptyBlocks = 1

	rep := Run(res)
	if rep.Warnings() != 0 {
		t.Fatalf("stats findings must be informational, got %d warnings", rep.Warnings())
	}
	if rep.Clean() {
		t.Fatalf("info findings still mark the report not clean")
	}
	wantChecks := []string{"orphan_rows", "short_rows", "duplicate_metadata", "empty_blocks"}
	wantCounts := []int{2, 1, 3, 1}
	if len(rep.Findings) != len(wantChecks) {
		t.Fatalf("findings = %+v", rep.Findings)
	}
	for i, f := range rep.Findings {
		if f.Check != wantChecks[i] || f.Count != wantCounts[i] || f.Severity != SevInfo {
			t.Fatalf("finding %d = %+v, want check %s count %d", i, f, wantChecks[i], wantCounts[i])
		}
	}
}

func TestRun_FindingOrderIsFixed(t *testing.T) {
	t.Parallel()

	// trip count_match, uuid_flag, senders_present, and orphan_rows at once
	res := consistent()
	res.Conversations[0].MessageCount = 9
	res.Messages[0].ConversationIDIsUUID = true
	res.Messages[1].SenderEmail = ""
	res.Stats.OrphanRows = 1

	rank := map[string]int{
		"uid_unique": 1, "conv_seq_refs": 2, "count_match": 3, "row_num_order": 4,
		"uuid_flag": 5, "sequence_dense": 6, "senders_present": 7,
		"orphan_rows": 8, "short_rows": 9, "duplicate_metadata": 10, "empty_blocks": 11,
	}
	rep := Run(res)
	prev := 0
	for _, f := range rep.Findings {
		r, ok := rank[f.Check]
		if !ok {
			t.Fatalf("unknown check %q", f.Check)
		}
		if r < prev {
			t.Fatalf("finding order broken at %q: %+v", f.Check, rep.Findings)
		}
		prev = r
	}
}

func TestRun_DoesNotMutateResult(t *testing.T) {
	t.Parallel()

	res := consistent()
	_ = Run(res)
	if !reflect.DeepEqual(res, consistent()) {
		t.Fatalf("validator mutated its input")
	}
}

func TestReport_Table(t *testing.T) {
	t.Parallel()

	rep := Report{Findings: []Finding{
		{Check: "orphan_rows", Severity: SevInfo, Count: 2, Detail: "2 rows preceded the first marker and were discarded"},
	}}
	tbl := rep.Table()

	if !reflect.DeepEqual(tbl[0], []string{"check", "severity", "count", "detail"}) {
		t.Fatalf("header = %v", tbl[0])
	}
	want := []string{"orphan_rows", "info", "2", "2 rows preceded the first marker and were discarded"}
	if !reflect.DeepEqual(tbl[1], want) {
		t.Fatalf("row = %v, want %v", tbl[1], want)
	}
}
