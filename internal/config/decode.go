package config

import (
	"github.com/spf13/pflag"
)

// DecodeConfig holds configuration for the decode command.
type DecodeConfig struct {
	In          string
	Out         string
	Errors      string
	LogLevel    string
	Standards   []string
	Events      []string
	Validate    bool
	IncludeRaw  bool
	StrictAsset bool
	MetricsFile string
}

// LoadDecode merges config file, environment variables, and flags into DecodeConfig.
func LoadDecode(cfgFile string, flags *pflag.FlagSet) (DecodeConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"in":           "-",
		"out":          "./data/typed_events.jsonl",
		"errors":       "./data/decode_errors.jsonl",
		"validate":     true,
		"include-raw":  false,
		"strict-asset": false,
	})
	if err != nil {
		return DecodeConfig{}, err
	}

	cfg := DecodeConfig{
		In:          v.GetString("in"),
		Out:         v.GetString("out"),
		Errors:      v.GetString("errors"),
		LogLevel:    v.GetString("log-level"),
		Standards:   getStringSlice(v, "standard"),
		Events:      getStringSlice(v, "event"),
		Validate:    v.GetBool("validate"),
		IncludeRaw:  v.GetBool("include-raw"),
		StrictAsset: v.GetBool("strict-asset"),
		MetricsFile: v.GetString("metrics-file"),
	}

	return cfg, nil
}
