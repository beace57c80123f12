package config

import (
	"testing"
	"time"

	kit "exhume/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	ex := root.Prefix("EXHUME_")
	if got := ex.key("OUT_DIR"); got != "EXHUME_OUT_DIR" {
		t.Fatalf("key() = %q, want %q", got, "EXHUME_OUT_DIR")
	}
	pg := ex.Prefix("PG_")
	if got := pg.key("URL"); got != "EXHUME_PG_URL" {
		t.Fatalf("nested key() = %q, want %q", got, "EXHUME_PG_URL")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  exhume ")
	if got := c.MustString("NAME"); got != "exhume" {
		t.Fatalf("MustString = %q, want %q", got, "exhume")
	}

	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q, want %q", got, "def")
	}
	t.Setenv("S_GROUP", " APD-EXPORT-7 ")
	if got := c.MayString("GROUP", "x"); got != "APD-EXPORT-7" {
		t.Fatalf("MayString value = %q, want %q", got, "APD-EXPORT-7")
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("MISSING", 9); got != 9 {
		t.Fatalf("MayInt default = %d, want %d", got, 9)
	}
	t.Setenv("I_OK", " 7 ")
	if got := c.MayInt("OK", 0); got != 7 {
		t.Fatalf("MayInt ok = %d, want %d", got, 7)
	}
	t.Setenv("I_BAD", "x")
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt bad -> default = %d, want %d", got, 3)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	if !c.MayBool("MISSING", true) {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("B_T", "true")
	if !c.MayBool("T", false) {
		t.Fatalf("MayBool true expected")
	}
	t.Setenv("B_BAD", "nope")
	if c.MayBool("BAD", false) {
		t.Fatalf("MayBool bad -> default false expected")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("DUR_")
	if got := c.MayDuration("MISS", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration default expected")
	}
	t.Setenv("DUR_OK", "150ms")
	if got := c.MayDuration("OK", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration ok = %v, want %v", got, 150*time.Millisecond)
	}
	t.Setenv("DUR_BAD", "nope")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad -> default expected")
	}
}
