// Package classify assigns a kind to each raw export row.
//
// The export interleaves three row shapes with no header: block-start marker
// rows, message rows, and metadata rows. Classification looks at the first
// field only and is total: every row gets exactly one kind, with marker
// taking precedence over message, and metadata as the permissive fallback
package classify

import "regexp"

// Kind is the classification assigned to one raw row
type Kind uint8

const (
	// KindMetadata is the fallback kind; carries block-scoped key/value pairs
	KindMetadata Kind = iota
	// KindBlockStart opens a new conversation block
	KindBlockStart
	// KindMessage is a sender/text message row
	KindMessage
)

// String renders the kind for logs and findings
func (k Kind) String() string {
	switch k {
	case KindBlockStart:
		return "block_start"
	case KindMessage:
		return "message"
	default:
		return "metadata"
	}
}

// DefaultMarkerPattern matches the extraction marker rows of the export.
// Digits are required; a bare APD is not a marker
const DefaultMarkerPattern = `^APD\d+$`

var (
	markerRe = regexp.MustCompile(DefaultMarkerPattern)

	// shape check only, no RFC validation
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	// strict 8-4-4-4-12 hex with hyphens, case-insensitive
	uuidRe = regexp.MustCompile(
		`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// RawRow is one physical line of the source export.
// Num is the 1-based position assigned at load time and never mutated.
// Rows may carry fewer than two fields; First and Second absorb that
type RawRow struct {
	Num    int
	Fields []string
}

// First returns field 0 or "" when the row is empty
func (r RawRow) First() string {
	if len(r.Fields) == 0 {
		return ""
	}
	return r.Fields[0]
}

// Second returns field 1 or "" when absent
func (r RawRow) Second() string {
	if len(r.Fields) < 2 {
		return ""
	}
	return r.Fields[1]
}

// Short reports whether the row carries fewer than two fields
func (r RawRow) Short() bool { return len(r.Fields) < 2 }

// Classifier classifies rows against a configurable marker pattern.
// The email rule is fixed; only the marker varies between export layouts
type Classifier struct {
	marker *regexp.Regexp
}

// New compiles markerPattern and returns a Classifier.
// An empty pattern selects DefaultMarkerPattern
func New(markerPattern string) (*Classifier, error) {
	if markerPattern == "" {
		return &Classifier{marker: markerRe}, nil
	}
	re, err := regexp.Compile(markerPattern)
	if err != nil {
		return nil, err
	}
	return &Classifier{marker: re}, nil
}

// Default returns a Classifier using DefaultMarkerPattern
func Default() *Classifier { return &Classifier{marker: markerRe} }

// Classify assigns exactly one kind to row.
// Precedence is fixed: marker, then message, then metadata.
// Only the first field is examined; a marker or email shape in the
// second field is invisible here
func (c *Classifier) Classify(row RawRow) Kind {
	first := row.First()
	switch {
	case c.marker.MatchString(first):
		return KindBlockStart
	case emailRe.MatchString(first):
		return KindMessage
	default:
		return KindMetadata
	}
}

// Classify runs the default Classifier
func Classify(row RawRow) Kind { return Default().Classify(row) }

// IsBlockMarker reports whether s matches DefaultMarkerPattern
func IsBlockMarker(s string) bool { return markerRe.MatchString(s) }

// IsEmail reports whether s has the email shape used for message detection
func IsEmail(s string) bool { return emailRe.MatchString(s) }

// IsStrictUUID reports whether s has the strict UUID shape.
// Quality signal only; it never gates processing
func IsStrictUUID(s string) bool { return uuidRe.MatchString(s) }

// MetaField names a harvested block-scoped metadata value
type MetaField uint8

const (
	// MetaConversationID is the source conversation identifier
	MetaConversationID MetaField = iota
	// MetaPlatformCallID is the platform call identifier
	MetaPlatformCallID
	// MetaDatetime is the raw block datetime string
	MetaDatetime
)

// Metadata key literals as they appear in the export, trailing colon included
const (
	KeyConversationID = "Conversation Identifier:"
	KeyPlatformCallID = "Platform Call ID:"
	KeyDatetime       = "Date and time:"
)

// MetaKey maps a metadata row's first field to its harvested field.
// Keys match exactly; anything else reports false
func MetaKey(s string) (MetaField, bool) {
	switch s {
	case KeyConversationID:
		return MetaConversationID, true
	case KeyPlatformCallID:
		return MetaPlatformCallID, true
	case KeyDatetime:
		return MetaDatetime, true
	default:
		return 0, false
	}
}
