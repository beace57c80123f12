// Package domain defines the types and interfaces for the warehouse service
package domain

import "time"

// Run is one artefact load into the warehouse
type Run struct {
	ID            string // uuid
	LoadedAt      time.Time
	SourceDir     string
	Messages      int
	Conversations int
	Findings      int
}

// LoadInput selects the artefact set to load.
// ChOptional downgrades a failed columnar load to a warning
type LoadInput struct {
	Dir        string
	ChOptional bool
}

// LoadStats reports what one load landed
type LoadStats struct {
	RunID         string // uuid
	Messages      int
	Conversations int
	Findings      int
	WideRows      int
	ChSkipped     bool
	Duration      time.Duration
}
