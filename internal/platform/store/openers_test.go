package store

import (
	"context"
	"strings"
	"testing"
	"time"
)

// fastFailPGURL points at a closed port so dials fail immediately
func fastFailPGURL() string {
	return "postgres://u:p@127.0.0.1:1/db?sslmode=disable"
}

func TestOpenPG_ParentAlreadyCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{
		PG: PGConfig{
			Enabled: true,
			URL:     fastFailPGURL(),
		},
	}

	s := &Store{}

	start := time.Now()
	txr, err := openPG(ctx, cfg, s)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatalf("expected error due to canceled context, got nil (txr=%T)", txr)
	}
	if txr != nil {
		t.Fatalf("expected nil TxRunner on canceled context, got %T", txr)
	}
	// no DNS and immediate ECONNREFUSED, so this should be quick
	if elapsed > time.Second {
		t.Fatalf("expected quick failure, got %v", elapsed)
	}
}

func TestOpenPG_RetriesExhausted(t *testing.T) {
	t.Parallel()

	cfg := Config{
		PG: PGConfig{
			Enabled:        true,
			URL:            fastFailPGURL(),
			ConnectRetries: 2,
			PingTimeout:    500 * time.Millisecond,
		},
	}

	s := &Store{}

	txr, err := openPG(context.Background(), cfg, s)
	if err == nil {
		t.Fatalf("expected error after retries, got nil (txr=%T)", txr)
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("expected attempt count in error, got %q", err.Error())
	}
	if txr != nil {
		t.Fatalf("no TxRunner should come back on failure, got %T", txr)
	}
}

func TestOpenCH_LazyNoServerNeeded(t *testing.T) {
	t.Parallel()

	cfg := Config{
		CH: CHConfig{
			Enabled: true,
			URL:     "clickhouse://localhost:9000/exhume?dial_timeout=200ms",
			Role:    "test",
			Tag:     "openers",
		},
	}

	c, err := openCH(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("openCH error: %v", err)
	}
	if c == nil {
		t.Fatalf("openCH returned nil Clickhouse")
	}
	_ = c.Close()
}

func TestOpenCH_BadDSN(t *testing.T) {
	t.Parallel()

	cfg := Config{CH: CHConfig{Enabled: true, URL: "://nope"}}
	if _, err := openCH(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected DSN parse error")
	}
}
