package config

import (
	"github.com/spf13/pflag"
)

// FilterConfig holds configuration for the filter command.
type FilterConfig struct {
	Standard string
	Event    string
	Revision string
	Muxed    bool
	Fields   map[string]string
	LogLevel string
}

// LoadFilter merges config file, environment variables, and flags into FilterConfig.
func LoadFilter(cfgFile string, flags *pflag.FlagSet) (FilterConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"standard": "sep41",
		"revision": "any",
	})
	if err != nil {
		return FilterConfig{}, err
	}

	cfg := FilterConfig{
		Standard: v.GetString("standard"),
		Event:    v.GetString("event"),
		Revision: v.GetString("revision"),
		Muxed:    v.GetBool("muxed"),
		Fields:   getStringMap(v, "field"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}
