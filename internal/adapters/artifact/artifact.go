// Package artifact persists run outputs and reads them back for
// downstream services.
//
// Artefacts are derived data, regenerated wholesale on every run. A run
// either lands every file or leaves the output directory as it was, so a
// half-written table can never be mistaken for evidence. The read side
// rejects any file whose header does not match the published column set.
package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"exhume/internal/core/carve"
	"exhume/internal/core/verify"
)

// Artefact file names, fixed by contract with downstream review tooling
const (
	MessagesFile      = "clean_messages.csv"
	ConversationsFile = "conversation_summary.csv"
	FindingsFile      = "validation_findings.csv"
)

// Writer persists run artefacts into one output directory
type Writer struct {
	dir string
}

// New returns a Writer rooted at dir, creating the directory when absent
func New(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact: mkdir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// WriteRun stages all three artefacts as .part siblings and renames them
// into place only after every write succeeded. A write failure removes
// the staged temps and leaves the previous artefacts untouched.
func (w *Writer) WriteRun(res carve.Result, rep verify.Report) error {
	files := []struct {
		name string
		rows [][]string
	}{
		{MessagesFile, res.MessageTable()},
		{ConversationsFile, res.ConversationTable()},
		{FindingsFile, rep.Table()},
	}

	temps := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}

	for _, f := range files {
		tmp := filepath.Join(w.dir, f.name+".part")
		if err := writeCSV(tmp, f.rows); err != nil {
			cleanup()
			return err
		}
		temps = append(temps, tmp)
	}
	for i, f := range files {
		if err := os.Rename(temps[i], filepath.Join(w.dir, f.name)); err != nil {
			cleanup()
			return fmt.Errorf("artifact: rename %s: %w", f.name, err)
		}
	}
	return nil
}

// writeCSV writes rows to path with RFC 4180 quoting
func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("artifact: create %s: %w", filepath.Base(path), err)
	}
	werr := csv.NewWriter(f).WriteAll(rows)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("artifact: write %s: %w", filepath.Base(path), werr)
	}
	if cerr != nil {
		return fmt.Errorf("artifact: close %s: %w", filepath.Base(path), cerr)
	}
	return nil
}
