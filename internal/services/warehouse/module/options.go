package module

import "exhume/internal/platform/config"

// Options holds configuration settings for the warehouse module
type Options struct {
	ChOptional bool
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("EXHUME_LOAD_")
	return Options{
		ChOptional: pf.MayBool("CH_OPTIONAL", false),
	}
}
