package module

import "exhume/internal/platform/config"

// Options holds configuration settings for the report module
type Options struct {
	Top int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("EXHUME_REPORT_")
	return Options{
		Top: pf.MayInt("TOP", 0),
	}
}
