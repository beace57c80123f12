// Package exportcsv streams rows from a raw conversation export.
//
// This adapter is the only component that touches the source file. Rows
// come out verbatim as positional fields with their one-based row
// numbers; classification happens in core, never here.
package exportcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"exhume/internal/core/classify"
)

// Reader streams RawRows from a headerless CSV export
type Reader struct {
	src  io.Closer // non-nil only when this reader opened the file itself
	cr   *csv.Reader
	num  int
	rows int
	err  error
}

// New wraps an io.Reader. A leading UTF-8 byte order mark is stripped so
// the first marker cell classifies cleanly; the caller keeps ownership of r.
func New(r io.Reader) *Reader {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	// exports are ragged by nature; width policy belongs to the classifier
	cr.FieldsPerRecord = -1
	return &Reader{cr: cr}
}

// Open opens path and returns a Reader that owns the file handle
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("exportcsv: open: %w", err)
	}
	rd := New(f)
	rd.src = f
	return rd, nil
}

// Next returns the next row with its one-based row number. io.EOF signals
// a clean end of input; any other error means the export is not valid CSV
// and the run must not produce output.
func (rd *Reader) Next() (classify.RawRow, error) {
	if rd.err != nil {
		return classify.RawRow{}, rd.err
	}
	rec, err := rd.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			rd.err = io.EOF
			return classify.RawRow{}, io.EOF
		}
		rd.err = fmt.Errorf("exportcsv: row %d: %w", rd.num+1, err)
		return classify.RawRow{}, rd.err
	}
	rd.num++
	rd.rows++
	return classify.RawRow{Num: rd.num, Fields: rec}, nil
}

// Rows returns the number of rows read so far
func (rd *Reader) Rows() int { return rd.rows }

// Close closes the file handle when this reader opened it
func (rd *Reader) Close() error {
	if rd.src == nil {
		return nil
	}
	return rd.src.Close()
}

// ReadAll opens path and drains it into memory. Exports are single-file
// and bounded, so whole-run slurping is the common case.
func ReadAll(path string) ([]classify.RawRow, error) {
	rd, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rd.Close() }()

	var rows []classify.RawRow
	for {
		row, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
