package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenscope/internal/aggregate"
	"tokenscope/internal/config"
	"tokenscope/internal/ingest"
	"tokenscope/internal/model"
)

func runSummarize(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSummarize(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Input == "" {
		return fmt.Errorf("input path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	input, closeInput, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	defer closeInput()

	outWriter, err := ingest.CreateJSONL(cfg.Out, false)
	if err != nil {
		return err
	}
	defer outWriter.Close()

	var stateStore aggregate.StateStore
	if cfg.StateFile != "" {
		stateStore = &aggregate.FileStateStore{Path: cfg.StateFile}
	}

	agg := aggregate.NewAggregator(aggregate.Config{
		WindowSeconds: uint64(cfg.Window.Seconds()),
		Decimals:      cfg.Decimals,
		FromLedger:    cfg.FromLedger,
		StateStore:    stateStore,
	}, logger)

	logger.Info("summarize start",
		zap.String("in", cfg.Input),
		zap.String("out", cfg.Out),
		zap.Duration("window", cfg.Window),
		zap.Uint32("from_ledger", cfg.FromLedger),
		zap.String("state_file", cfg.StateFile),
	)

	_, err = agg.Run(ctx, input, func(s model.TokenWindowSummary) error {
		return outWriter.Write(s)
	})
	return err
}
