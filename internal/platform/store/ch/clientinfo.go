package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo describes this process for the clickhouse handshake.
// Role examples: "load", "api"
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	var info clickhouse.ClientInfo
	add := func(name, version string) {
		// client info strings travel on every handshake; keep them tidy
		info.Products = append(info.Products, struct{ Name, Version string }{
			Name:    name,
			Version: strings.TrimSpace(version),
		})
	}

	host, _ := os.Hostname()

	add("exhume", tag)
	add("role", role)
	add("go", runtime.Version())
	add("commit", shortRevision())
	add("host", host)

	return info
}

// shortRevision pulls the embedded vcs revision, trimmed to seven chars
func shortRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}
