package classify

import "testing"

func row(fields ...string) RawRow { return RawRow{Num: 1, Fields: fields} }

func TestClassify_Precedence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		row  RawRow
		want Kind
	}{
		{"marker", row("APD00001", ""), KindBlockStart},
		{"marker single digit", row("APD1"), KindBlockStart},
		{"bare APD is not a marker", row("APD", "x"), KindMetadata},
		{"marker with suffix is not a marker", row("APD12x", ""), KindMetadata},
		{"message", row("alice@example.com", "hello"), KindMessage},
		{"message with plus tag", row("a.b+tag@sub.example.co", "hi"), KindMessage},
		{"metadata key", row("Conversation Identifier:", "abc-123"), KindMetadata},
		{"empty first field", row("", "stray value"), KindMetadata},
		{"empty row", RawRow{Num: 9}, KindMetadata},
		{"email in second field is invisible", row("note", "bob@example.com"), KindMetadata},
		{"marker in second field is invisible", row("note", "APD00001"), KindMetadata},
		{"not quite an email", row("alice@example", "hi"), KindMetadata},
		{"tld too short", row("a@b.c", "hi"), KindMetadata},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tc.row); got != tc.want {
				t.Fatalf("Classify(%v) = %v, want %v", tc.row.Fields, got, tc.want)
			}
		})
	}
}

func TestClassify_MarkerWinsOverEmailShapedMarker(t *testing.T) {
	t.Parallel()

	// a custom marker pattern that also matches an email keeps marker precedence
	c, err := New(`^carved@export\.dev$`)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Classify(row("carved@export.dev", "x")); got != KindBlockStart {
		t.Fatalf("expected custom marker to take precedence, got %v", got)
	}
	// and plain emails still classify as messages under the custom marker
	if got := c.Classify(row("alice@example.com", "x")); got != KindMessage {
		t.Fatalf("expected message under custom marker, got %v", got)
	}
}

func TestNew_EmptyPatternUsesDefault(t *testing.T) {
	t.Parallel()

	c, err := New("")
	if err != nil {
		t.Fatalf("New(\"\"): %v", err)
	}
	if got := c.Classify(row("APD42")); got != KindBlockStart {
		t.Fatalf("default marker should match APD42, got %v", got)
	}
}

func TestNew_BadPattern(t *testing.T) {
	t.Parallel()

	if _, err := New(`^APD[`); err == nil {
		t.Fatalf("expected compile error for unterminated class")
	}
}

func TestIsBlockMarker(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"APD00001", true},
		{"APD1", true},
		{"APD", false},
		{"apd1", false},
		{"XAPD1", false},
		{"APD1X", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsBlockMarker(tc.in); got != tc.want {
			t.Fatalf("IsBlockMarker(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"alice@example.com", true},
		{"a.b_c%d+e-f@host-name.example.org", true},
		{"alice@example", false},
		{"@example.com", false},
		{"alice@", false},
		{"alice@@example.com", false},
		{"alice@example.c", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsEmail(tc.in); got != tc.want {
			t.Fatalf("IsEmail(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsStrictUUID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"550E8400-E29B-41D4-A716-446655440000", true},
		{"APD93824", false},
		{"550e8400e29b41d4a716446655440000", false},
		{"550e8400-e29b-41d4-a716-44665544000", false},
		{"550e8400-e29b-41d4-a716-4466554400000", false},
		{"g50e8400-e29b-41d4-a716-446655440000", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsStrictUUID(tc.in); got != tc.want {
			t.Fatalf("IsStrictUUID(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMetaKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in     string
		want   MetaField
		wantOK bool
	}{
		{"Conversation Identifier:", MetaConversationID, true},
		{"Platform Call ID:", MetaPlatformCallID, true},
		{"Date and time:", MetaDatetime, true},
		{"Conversation Identifier", 0, false}, // colon required
		{"conversation identifier:", 0, false},
		{" Date and time:", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := MetaKey(tc.in)
		if ok != tc.wantOK || (ok && got != tc.want) {
			t.Fatalf("MetaKey(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestRawRow_FieldAccessors(t *testing.T) {
	t.Parallel()

	r := RawRow{Num: 3, Fields: []string{"only"}}
	if r.First() != "only" || r.Second() != "" || !r.Short() {
		t.Fatalf("one-field row accessors wrong: %q %q short=%v", r.First(), r.Second(), r.Short())
	}

	empty := RawRow{Num: 4}
	if empty.First() != "" || empty.Second() != "" || !empty.Short() {
		t.Fatalf("empty row accessors wrong")
	}

	full := RawRow{Num: 5, Fields: []string{"a@b.example.com", "hi", "extra"}}
	if full.First() != "a@b.example.com" || full.Second() != "hi" || full.Short() {
		t.Fatalf("wide row accessors wrong")
	}
}
