package artifact

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"exhume/internal/core/carve"
	"exhume/internal/core/classify"
	"exhume/internal/core/verify"
)

func carveFixture(t *testing.T, pairs ...[2]string) carve.Result {
	t.Helper()
	c, err := carve.New(carve.Options{})
	if err != nil {
		t.Fatalf("carve.New: %v", err)
	}
	for i, p := range pairs {
		row := classify.RawRow{Num: i + 1, Fields: []string{p[0], p[1]}}
		if err := c.Feed(row); err != nil {
			t.Fatalf("Feed: %v", err)
		}
	}
	return c.Finish()
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return rows
}

func TestWriteRun_LandsAllThreeArtefacts(t *testing.T) {
	t.Parallel()

	res := carveFixture(t,
		[2]string{"APD00001", ""},
		[2]string{"Conversation Identifier:", "abc-123"},
		[2]string{"alice@x.com", "hello, there"},
		[2]string{"bob@x.com", "[Deleted Message]"},
	)
	rep := verify.Run(res)

	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.WriteRun(res, rep); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}

	msgs := readCSV(t, filepath.Join(dir, MessagesFile))
	if len(msgs) != 3 || msgs[0][0] != "extraction_group_id" {
		t.Fatalf("messages artefact wrong shape: %v", msgs)
	}
	// quoting must round-trip the comma in the message text
	if msgs[1][8] != "hello, there" {
		t.Fatalf("message text mangled: %q", msgs[1][8])
	}

	convs := readCSV(t, filepath.Join(dir, ConversationsFile))
	if len(convs) != 2 || convs[1][1] != "APD00001-1" {
		t.Fatalf("conversation artefact wrong: %v", convs)
	}

	finds := readCSV(t, filepath.Join(dir, FindingsFile))
	if finds[0][0] != "check" || finds[0][3] != "detail" {
		t.Fatalf("findings header wrong: %v", finds[0])
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".part") {
			t.Fatalf("staging file left behind: %s", e.Name())
		}
	}
}

func TestWriteRun_CleanReportStillWritesFindingsHeader(t *testing.T) {
	t.Parallel()

	res := carveFixture(t,
		[2]string{"APD1", ""},
		[2]string{"a@b.com", "x"},
	)
	rep := verify.Run(res)
	if !rep.Clean() {
		t.Fatalf("fixture should verify clean: %+v", rep.Findings)
	}

	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.WriteRun(res, rep); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}

	finds := readCSV(t, filepath.Join(dir, FindingsFile))
	if len(finds) != 1 {
		t.Fatalf("clean run should emit header only, got %v", finds)
	}
}

func TestWriteRun_RegeneratesWholesale(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	big := carveFixture(t,
		[2]string{"APD1", ""},
		[2]string{"a@b.com", "one"},
		[2]string{"b@c.com", "two"},
	)
	if err := w.WriteRun(big, verify.Run(big)); err != nil {
		t.Fatalf("first WriteRun: %v", err)
	}

	small := carveFixture(t,
		[2]string{"APD2", ""},
		[2]string{"c@d.com", "only"},
	)
	if err := w.WriteRun(small, verify.Run(small)); err != nil {
		t.Fatalf("second WriteRun: %v", err)
	}

	msgs := readCSV(t, filepath.Join(dir, MessagesFile))
	if len(msgs) != 2 || msgs[1][7] != "c@d.com" {
		t.Fatalf("second run did not replace the first: %v", msgs)
	}
}

func TestWriteRun_ByteIdenticalAcrossRuns(t *testing.T) {
	t.Parallel()

	res := carveFixture(t,
		[2]string{"APD1", ""},
		[2]string{"Date and time:", "10/10/19 4:10:12 PM"},
		[2]string{"a@b.com", "repeatable"},
	)
	rep := verify.Run(res)

	dirA, dirB := t.TempDir(), t.TempDir()
	for _, dir := range []string{dirA, dirB} {
		w, err := New(dir)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := w.WriteRun(res, rep); err != nil {
			t.Fatalf("WriteRun: %v", err)
		}
	}

	for _, name := range []string{MessagesFile, ConversationsFile, FindingsFile} {
		a, err := os.ReadFile(filepath.Join(dirA, name))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, name))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("%s differs between identical runs", name)
		}
	}
}

func TestWriteRun_FailureReturnsError(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// yank the directory out from under the writer
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}

	res := carveFixture(t, [2]string{"APD1", ""})
	if err := w.WriteRun(res, verify.Run(res)); err == nil {
		t.Fatalf("expected write failure")
	}
}

func TestNew_FailsWhenPathIsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(path); err == nil {
		t.Fatalf("expected error when output path is a file")
	}
}
