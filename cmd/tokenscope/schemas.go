package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tokenscope/internal/token"
)

func runSchemas(cmd *cobra.Command, _ []string) error {
	standards, _ := cmd.Flags().GetStringSlice("standard")
	events, _ := cmd.Flags().GetStringSlice("event")
	format, _ := cmd.Flags().GetString("format")
	return writeSchemas(cmd.OutOrStdout(), standards, events, format)
}

func writeSchemas(w io.Writer, standards, events []string, format string) error {
	stds := make([]token.Standard, 0, len(standards))
	for _, s := range standards {
		std, err := token.ParseStandard(s)
		if err != nil {
			return err
		}
		stds = append(stds, std)
	}
	ops := make([]token.Operation, 0, len(events))
	for _, e := range events {
		op, err := token.ParseOperation(e)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	entries := token.Filter(stds, ops)

	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
