package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"tokenscope/internal/config"
	"tokenscope/internal/schema"
	"tokenscope/internal/scval"
	"tokenscope/internal/token"
)

type filterOutput struct {
	Layout string   `json:"layout"`
	Topics []string `json:"topics"`
}

func runFilter(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFilter(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	return writeFilter(cmd.OutOrStdout(), cfg)
}

func writeFilter(w io.Writer, cfg config.FilterConfig) error {
	if cfg.Event == "" {
		return fmt.Errorf("event name is required")
	}
	entry, err := lookupEntry(cfg)
	if err != nil {
		return err
	}

	partial, err := filterValues(entry.Schema, cfg.Fields)
	if err != nil {
		return err
	}
	filter, err := schema.ToTopicFilter(entry.Schema, partial, scval.JSONCodec{})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	return enc.Encode(filterOutput{Layout: entry.Key(), Topics: filter.Strings()})
}

func lookupEntry(cfg config.FilterConfig) (token.Entry, error) {
	std, err := token.ParseStandard(cfg.Standard)
	if err != nil {
		return token.Entry{}, err
	}
	op, err := token.ParseOperation(cfg.Event)
	if err != nil {
		return token.Entry{}, err
	}

	var entry token.Entry
	var ok bool
	if cfg.Muxed {
		entry, ok = token.LookupMuxed(std, op)
	} else {
		entry, ok = token.Lookup(std, op, token.Revision(cfg.Revision))
	}
	if !ok {
		return token.Entry{}, fmt.Errorf("no %s %s layout for revision %s (muxed=%v)", std, op, cfg.Revision, cfg.Muxed)
	}
	return entry, nil
}

// filterValues converts command-line strings into values the codec accepts
// for each field type. Unknown names pass through so ToTopicFilter reports
// them.
func filterValues(s schema.Schema, fields map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for name, raw := range fields {
		field, _, ok := s.TopicField(name)
		if ok && field.Type == schema.TypeBool {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			out[name] = b
			continue
		}
		out[name] = raw
	}
	return out, nil
}
