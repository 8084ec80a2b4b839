package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// SummarizeConfig holds configuration for the summarize command.
type SummarizeConfig struct {
	Input      string
	Out        string
	Window     time.Duration
	Decimals   uint8
	StateFile  string
	FromLedger uint32
	LogLevel   string
}

// LoadSummarize merges config file, environment variables, and flags into SummarizeConfig.
func LoadSummarize(cfgFile string, flags *pflag.FlagSet) (SummarizeConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"in":       "./data/typed_events.jsonl",
		"out":      "-",
		"window":   "0",
		"decimals": 7,
	})
	if err != nil {
		return SummarizeConfig{}, err
	}

	window, err := ParseWindow(v.GetString("window"))
	if err != nil {
		return SummarizeConfig{}, err
	}
	decimals := v.GetUint("decimals")
	if decimals > 38 {
		return SummarizeConfig{}, fmt.Errorf("decimals %d out of range", decimals)
	}
	fromLedger, err := ParseLedger(v.GetString("from-ledger"))
	if err != nil {
		return SummarizeConfig{}, err
	}

	cfg := SummarizeConfig{
		Input:      v.GetString("in"),
		Out:        v.GetString("out"),
		Window:     window,
		Decimals:   uint8(decimals),
		StateFile:  v.GetString("state-file"),
		FromLedger: fromLedger,
		LogLevel:   v.GetString("log-level"),
	}

	return cfg, nil
}

// ParseWindow parses a window size. "0" or empty means no windowing; plain
// digits are seconds.
func ParseWindow(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if input == "" || input == "0" {
		return 0, nil
	}
	if isNumeric(input) {
		secs, err := strconv.ParseUint(input, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid window %q: %w", input, err)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid window %q: %w", input, err)
	}
	if d < time.Second || d%time.Second != 0 {
		return 0, fmt.Errorf("window %s must be a whole number of seconds", d)
	}
	return d, nil
}

// ParseLedger parses a ledger sequence.
func ParseLedger(input string) (uint32, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}
	val, err := strconv.ParseUint(strings.TrimSpace(input), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid ledger %q: %w", input, err)
	}
	return uint32(val), nil
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
