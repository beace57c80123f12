package module

import "exhume/internal/platform/config"

// Options holds configuration settings for the pipeline module
type Options struct {
	MarkerPattern string
	DeletedMarker string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("EXHUME_CARVE_")
	return Options{
		MarkerPattern: pf.MayString("MARKER_PATTERN", ""),
		DeletedMarker: pf.MayString("DELETED_MARKER", ""),
	}
}
