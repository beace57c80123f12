package service

import (
	"context"
	"errors"
	"testing"

	"exhume/internal/modkit/repokit"
	perr "exhume/internal/platform/errors"
	"exhume/internal/platform/store"
	"exhume/internal/services/review/domain"
	"exhume/internal/services/review/repo"
)

// fakeRepo records query arguments and serves canned rows. The zero value
// reports every conversation as present
type fakeRepo struct {
	limit       int
	offset      int
	runID       string
	deletedOnly bool
	convUID     string

	runs    []repo.RowRun
	convs   []repo.RowConversation
	total   int
	msgs    []repo.RowMessage
	finds   []repo.RowFinding
	missing bool
	err     error
}

func (f *fakeRepo) Runs(ctx context.Context, limit int) ([]repo.RowRun, error) {
	f.limit = limit
	return f.runs, f.err
}

func (f *fakeRepo) Conversations(ctx context.Context, runID string, deletedOnly bool, limit, offset int) ([]repo.RowConversation, error) {
	f.runID, f.deletedOnly, f.limit, f.offset = runID, deletedOnly, limit, offset
	return f.convs, f.err
}

func (f *fakeRepo) CountConversations(ctx context.Context, runID string, deletedOnly bool) (int, error) {
	f.runID, f.deletedOnly = runID, deletedOnly
	return f.total, f.err
}

func (f *fakeRepo) ConversationExists(ctx context.Context, runID, conversationUID string) (bool, error) {
	f.runID, f.convUID = runID, conversationUID
	return !f.missing, f.err
}

func (f *fakeRepo) Messages(ctx context.Context, runID, conversationUID string) ([]repo.RowMessage, error) {
	f.runID, f.convUID = runID, conversationUID
	return f.msgs, f.err
}

func (f *fakeRepo) Findings(ctx context.Context, runID string) ([]repo.RowFinding, error) {
	f.runID = runID
	return f.finds, f.err
}

type fakeBinder struct{ r repo.Repo }

func (b fakeBinder) Bind(q repokit.Queryer) repo.Repo { return b.r }

// fakeTx satisfies repokit.TxRunner for construction only
type fakeTx struct{}

func (fakeTx) Exec(ctx context.Context, sql string, args ...any) error { return nil }

func (fakeTx) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRow(ctx context.Context, sql string, args ...any) store.Row { return nil }

func (fakeTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error { return fn(fakeTx{}) }

func newSvc(fr *fakeRepo) *Svc { return New(fakeTx{}, fakeBinder{r: fr}) }

func TestNew_PanicsOnNilDeps(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s: expected panic", name)
			}
		}()
		fn()
	}
	mustPanic("nil db", func() { New(nil, fakeBinder{r: &fakeRepo{}}) })
	mustPanic("nil binder", func() { New(fakeTx{}, nil) })
}

func TestRuns_MapsRowsAndForwardsLimit(t *testing.T) {
	fr := &fakeRepo{runs: []repo.RowRun{{
		RunID:         "8a6e0804-2bd0-4672-b79d-d97027f9071a",
		LoadedAt:      "2026-08-25 09:00:00+00",
		SourceDir:     "/data/out",
		Messages:      42,
		Conversations: 7,
		Findings:      2,
	}}}

	out, err := newSvc(fr).Runs(context.Background(), domain.RunsInput{Limit: 5})
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if fr.limit != 5 {
		t.Fatalf("limit = %d, want 5", fr.limit)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	got := out[0]
	if got.RunID != "8a6e0804-2bd0-4672-b79d-d97027f9071a" || got.SourceDir != "/data/out" {
		t.Fatalf("unexpected run mapping: %+v", got)
	}
	if got.Messages != 42 || got.Conversations != 7 || got.Findings != 2 {
		t.Fatalf("unexpected counts: %+v", got)
	}

	// omitted limit falls back to the default window
	if _, err := newSvc(fr).Runs(context.Background(), domain.RunsInput{}); err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if fr.limit != 20 {
		t.Fatalf("default limit = %d, want 20", fr.limit)
	}
}

func TestConversations_ForwardsFiltersAndTotal(t *testing.T) {
	fr := &fakeRepo{
		total: 61,
		convs: []repo.RowConversation{{
			BlockID:         3,
			ConversationUID: "APD10021-3",
			Participants:    []string{"a@x.com", "b@x.com"},
			Deleted:         1,
			HasDeleted:      true,
		}},
	}

	in := domain.ConversationsInput{RunID: "run-1", DeletedOnly: true, Limit: 9, Offset: 18}
	out, total, err := newSvc(fr).Conversations(context.Background(), in)
	if err != nil {
		t.Fatalf("Conversations: %v", err)
	}
	if fr.runID != "run-1" || !fr.deletedOnly || fr.limit != 9 || fr.offset != 18 {
		t.Fatalf("filters not forwarded: %+v", fr)
	}
	if total != 61 {
		t.Fatalf("total = %d, want 61", total)
	}
	if out[0].ConversationUID != "APD10021-3" || len(out[0].Participants) != 2 {
		t.Fatalf("unexpected conversation mapping: %+v", out[0])
	}
	if !out[0].HasDeleted || out[0].Deleted != 1 {
		t.Fatalf("deletion fields lost: %+v", out[0])
	}
}

func TestConversations_DefaultsOmittedWindow(t *testing.T) {
	fr := &fakeRepo{}

	_, _, err := newSvc(fr).Conversations(context.Background(), domain.ConversationsInput{RunID: "run-1"})
	if err != nil {
		t.Fatalf("Conversations: %v", err)
	}
	if fr.limit != 100 || fr.offset != 0 {
		t.Fatalf("window = (%d, %d), want (100, 0)", fr.limit, fr.offset)
	}
}

func TestMessages_MapsAllFields(t *testing.T) {
	fr := &fakeRepo{msgs: []repo.RowMessage{{
		ConversationUID: "APD1-1",
		Sequence:        2,
		RowNum:          5,
		Sender:          "alice@example.com",
		Text:            "[Deleted Message]",
		Len:             17,
		Status:          "deleted",
		HasDeleted:      true,
		Datetime:        "2019-10-10 16:10:12",
	}}}

	in := domain.MessagesInput{RunID: "run-1", ConversationUID: "APD1-1"}
	out, err := newSvc(fr).Messages(context.Background(), in)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if fr.runID != "run-1" || fr.convUID != "APD1-1" {
		t.Fatalf("filters not forwarded: %+v", fr)
	}
	got := out[0]
	if got.Sequence != 2 || got.RowNum != 5 || got.Len != 17 {
		t.Fatalf("unexpected numbering: %+v", got)
	}
	if got.Status != "deleted" || !got.HasDeleted || got.Datetime != "2019-10-10 16:10:12" {
		t.Fatalf("unexpected message mapping: %+v", got)
	}
}

func TestMessages_UnknownConversationIsNotFound(t *testing.T) {
	fr := &fakeRepo{missing: true}

	in := domain.MessagesInput{RunID: "run-1", ConversationUID: "APD9-99"}
	_, err := newSvc(fr).Messages(context.Background(), in)
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want a not found error", err)
	}
}

func TestFindings_PropagatesRepoError(t *testing.T) {
	fr := &fakeRepo{err: errors.New("boom")}

	_, err := newSvc(fr).Findings(context.Background(), domain.FindingsInput{RunID: "run-1"})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestFindings_MapsRows(t *testing.T) {
	fr := &fakeRepo{finds: []repo.RowFinding{
		{Ord: 1, Check: "orphan_rows", Severity: "info", Count: 3, Detail: "3 rows before the first block marker were discarded"},
		{Ord: 2, Check: "uuid_flag", Severity: "warning", Count: 1, Detail: "stored uuid flags disagree with recomputation"},
	}}

	out, err := newSvc(fr).Findings(context.Background(), domain.FindingsInput{RunID: "run-1"})
	if err != nil {
		t.Fatalf("Findings: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Check != "orphan_rows" || out[0].Severity != "info" || out[0].Count != 3 {
		t.Fatalf("unexpected finding mapping: %+v", out[0])
	}
	if out[1].Ord != 2 || out[1].Severity != "warning" {
		t.Fatalf("unexpected finding mapping: %+v", out[1])
	}
}
