// Package domain holds the report service contracts
package domain

// Hotspot ranks one conversation by its deleted message volume.
// Rate is deleted over the conversation's full message count
type Hotspot struct {
	ConversationUID string
	BlockID         int
	Deleted         int
	Total           int
	Rate            float64
}

// Participant aggregates one sender's activity across the table
type Participant struct {
	Sender        string
	Messages      int
	Deleted       int
	Rate          float64
	Conversations int
}

// Volume is one conversation's message volume
type Volume struct {
	ConversationUID string
	BlockID         int
	Messages        int
	Participants    int
	HasDeleted      bool
}

// HourBucket is one hour-of-day slot in the activity histogram
type HourBucket struct {
	Hour     int
	Messages int
}

// Report bundles the investigation views computed over one message table.
// Ranked views arrive already trimmed to the service's top length
type Report struct {
	Rows          int
	Conversations int
	Undated       int

	Hotspots     []Hotspot
	Participants []Participant
	Largest      []Volume
	Smallest     []Volume
	Timeline     []HourBucket
}
