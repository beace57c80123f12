// Package domain defines the types and interfaces for the pipeline service
package domain

import (
	"time"

	"exhume/internal/core/carve"
)

// RunInput names the source export and output directory for one run.
// Group identity is never configured here; every block carries its own
// verbatim marker value.
type RunInput struct {
	Path   string
	OutDir string
	Opts   carve.Options
}

// RunStats summarizes one completed run
type RunStats struct {
	carve.Stats

	Findings int
	Warnings int
	Duration time.Duration
}
