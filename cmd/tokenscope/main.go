package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tokenscope",
		Short:        "Soroban token event decoder",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode raw contract events into typed token events",
		RunE:  runDecode,
	}

	decodeCmd.Flags().String("in", "-", "input raw events JSONL (- for stdin)")
	decodeCmd.Flags().String("out", "./data/typed_events.jsonl", "output typed events JSONL (- for stdout)")
	decodeCmd.Flags().String("errors", "./data/decode_errors.jsonl", "decode errors JSONL")
	decodeCmd.Flags().StringSlice("standard", nil, "token standards to decode (sep41, sac); empty means all")
	decodeCmd.Flags().StringSlice("event", nil, "event names to decode (transfer, mint, ...); empty means all")
	decodeCmd.Flags().Bool("validate", true, "validate input lines against the raw event JSON Schema")
	decodeCmd.Flags().Bool("include-raw", false, "keep topic 0 and the raw value in the output")
	decodeCmd.Flags().Bool("strict-asset", false, "fail events whose asset descriptor is malformed")
	decodeCmd.Flags().String("metrics-file", "", "write Prometheus textfile metrics to this path")

	root.AddCommand(decodeCmd)

	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Build a topic filter for a token event layout",
		RunE:  runFilter,
	}

	filterCmd.Flags().String("standard", "sep41", "token standard (sep41, sac)")
	filterCmd.Flags().String("event", "", "event name (transfer, mint, burn, approve, clawback, set_admin, set_authorized)")
	filterCmd.Flags().String("revision", "any", "layout revision (any, legacy, cap67)")
	filterCmd.Flags().Bool("muxed", false, "select the muxed payload layout")
	filterCmd.Flags().StringSlice("field", nil, "concrete topic values (repeatable name=value)")

	root.AddCommand(filterCmd)
	root.AddCommand(newEventIDCmd())

	schemasCmd := &cobra.Command{
		Use:   "schemas",
		Short: "Print the token event catalog",
		RunE:  runSchemas,
	}

	schemasCmd.Flags().StringSlice("standard", nil, "only these standards")
	schemasCmd.Flags().StringSlice("event", nil, "only these event names")
	schemasCmd.Flags().String("format", "yaml", "output format (yaml, json)")

	root.AddCommand(schemasCmd)

	summarizeCmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize typed token events per contract",
		RunE:  runSummarize,
	}

	summarizeCmd.Flags().String("in", "./data/typed_events.jsonl", "input typed events JSONL (- for stdin)")
	summarizeCmd.Flags().String("out", "-", "output summaries JSONL (- for stdout)")
	summarizeCmd.Flags().String("window", "0", "window size (e.g. 1h, 3600); 0 summarizes the whole input")
	summarizeCmd.Flags().Uint("decimals", 7, "token decimals used to format amounts")
	summarizeCmd.Flags().String("state-file", "", "optional local state file for progress tracking")
	summarizeCmd.Flags().String("from-ledger", "", "start from this ledger, ignoring the state file")

	root.AddCommand(summarizeCmd)

	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
