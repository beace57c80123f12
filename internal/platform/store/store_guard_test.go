package store

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeTxNoPing satisfies TxRunner but not Pinger
type fakeTxNoPing struct{}

func (f *fakeTxNoPing) Tx(ctx context.Context, fn func(q RowQuerier) error) error { return nil }
func (f *fakeTxNoPing) Exec(ctx context.Context, sql string, args ...any) error   { return nil }

func (f *fakeTxNoPing) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	var z Rows
	return z, nil
}

func (f *fakeTxNoPing) QueryRow(ctx context.Context, sql string, args ...any) Row {
	var z Row
	return z
}

// fakeTxWithPing satisfies TxRunner and Pinger
type fakeTxWithPing struct {
	fakeTxNoPing
	err error
}

func (f *fakeTxWithPing) Ping(context.Context) error { return f.err }

// fakeCH satisfies Clickhouse and optionally Pinger
type fakeCH struct {
	pingErr  error
	closed   bool
	inserted int
}

func (f *fakeCH) Insert(ctx context.Context, table string, cols []string, rows [][]any) error {
	f.inserted += len(rows)
	return nil
}

func (f *fakeCH) Exec(ctx context.Context, sql string, args ...any) error { return nil }

func (f *fakeCH) Close() error               { f.closed = true; return nil }
func (f *fakeCH) Ping(context.Context) error { return f.pingErr }

func TestGuard_NilStore(t *testing.T) {
	t.Parallel()

	var s *Store = nil
	if err := s.Guard(context.Background()); err == nil {
		t.Fatalf("nil store should return error")
	}
}

func TestGuard_NoSeams(t *testing.T) {
	t.Parallel()

	s := &Store{}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("expected nil error when no seams are set, got %v", err)
	}
}

func TestGuard_PG_NotPinger_Ignored(t *testing.T) {
	t.Parallel()

	s := &Store{PG: &fakeTxNoPing{}}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("expected nil error when PG is not a Pinger, got %v", err)
	}
}

func TestGuard_PG_PingOK(t *testing.T) {
	t.Parallel()

	s := &Store{PG: &fakeTxWithPing{err: nil}}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("expected nil error when PG.Ping succeeds, got %v", err)
	}
}

func TestGuard_PG_PingError_Wrapped(t *testing.T) {
	t.Parallel()

	s := &Store{PG: &fakeTxWithPing{err: errors.New("boom")}}
	err := s.Guard(context.Background())
	if err == nil {
		t.Fatalf("expected non-nil error when PG.Ping fails")
	}
	// Guard prefixes PG errors with "pg: "
	if !strings.HasPrefix(err.Error(), "pg: ") {
		t.Fatalf("expected error to be prefixed with 'pg: ', got %q", err.Error())
	}
}

func TestGuard_CH_PingError_Wrapped(t *testing.T) {
	t.Parallel()

	s := &Store{CH: &fakeCH{pingErr: errors.New("refused")}}
	err := s.Guard(context.Background())
	if err == nil {
		t.Fatalf("expected non-nil error when CH.Ping fails")
	}
	if !strings.HasPrefix(err.Error(), "ch: ") {
		t.Fatalf("expected error to be prefixed with 'ch: ', got %q", err.Error())
	}
}

func TestGuard_BothFail_JoinsBoth(t *testing.T) {
	t.Parallel()

	s := &Store{
		PG: &fakeTxWithPing{err: errors.New("pg down")},
		CH: &fakeCH{pingErr: errors.New("ch down")},
	}
	err := s.Guard(context.Background())
	if err == nil {
		t.Fatalf("expected joined error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "pg: pg down") || !strings.Contains(msg, "ch: ch down") {
		t.Fatalf("expected both backend failures in joined error, got %q", msg)
	}
}

func TestClose_ClosesCH(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{}
	s := &Store{CH: ch}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close err: %v", err)
	}
	if !ch.closed {
		t.Fatalf("expected CH closed")
	}
}
