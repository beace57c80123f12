// Package version exposes build identification for the running binary.
package version

// Populated at build time, e.g.
//
//	go build -ldflags "-X 'exhume/internal/core/version.version=v0.1.0' \
//	  -X 'exhume/internal/core/version.commit=abcd123' \
//	  -X 'exhume/internal/core/version.date=2026-08-25'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for this binary.
func Info() BuildInfo {
	return BuildInfo{
		Service: "exhume",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}
