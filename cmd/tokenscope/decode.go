package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenscope/internal/config"
	"tokenscope/internal/decoder"
	"tokenscope/internal/event"
	"tokenscope/internal/ingest"
	"tokenscope/internal/metrics"
	"tokenscope/internal/model"
	"tokenscope/internal/token"
)

func runDecode(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDecode(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}
	if cfg.Errors == "" {
		return fmt.Errorf("errors path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dec, err := decoder.NewTokenDecoder(decoder.DecoderConfig{
		Standards:  cfg.Standards,
		Operations: cfg.Events,
	})
	if err != nil {
		return err
	}

	input, closeInput, err := openInput(cfg.In)
	if err != nil {
		return err
	}
	defer closeInput()

	outWriter, err := ingest.CreateJSONL(cfg.Out, false)
	if err != nil {
		return err
	}
	defer outWriter.Close()

	errWriter, err := ingest.CreateJSONL(cfg.Errors, false)
	if err != nil {
		return err
	}
	defer errWriter.Close()

	m := metrics.New()
	decodeCtx := decoder.DecodeContext{
		Logger:      logger,
		Metrics:     m,
		IncludeRaw:  cfg.IncludeRaw,
		StrictAsset: cfg.StrictAsset,
	}

	logger.Info("decode start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
		zap.Strings("standards", cfg.Standards),
		zap.Strings("events", cfg.Events),
		zap.Bool("validate", cfg.Validate),
	)

	stats, err := decodeStream(ctx, input, dec, decodeCtx, cfg.Validate, outWriter, errWriter)
	if err != nil {
		return err
	}

	if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
		return err
	}

	logger.Info("decode complete",
		zap.Int("total", stats.total),
		zap.Int("decoded", stats.decoded),
		zap.Int("skipped", stats.skipped),
		zap.Int("failed", stats.failed),
	)
	return nil
}

type decodeStats struct {
	total   int
	decoded int
	skipped int
	failed  int
}

type jsonlSink interface {
	Write(value interface{}) error
}

// decodeStream decodes every line of r. Bad lines and undecodable events go
// to errOut; events that are not token events are skipped silently.
func decodeStream(ctx context.Context, r io.Reader, dec decoder.Decoder, dctx decoder.DecodeContext, validate bool, out, errOut jsonlSink) (decodeStats, error) {
	var stats decodeStats

	reader, err := ingest.NewReader(r, validate)
	if err != nil {
		return stats, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var lineErr *ingest.LineError
		if errors.As(err, &lineErr) {
			stats.total++
			stats.failed++
			dctx.Metrics.Line()
			dctx.Metrics.Failed("ingest")
			writeDecodeError(errOut, model.DecodeError{Line: lineErr.Line, Error: lineErr.Err.Error()})
			continue
		}
		if err != nil {
			return stats, err
		}
		stats.total++
		dctx.Metrics.Line()

		rec, err := event.FromRaw(line.Event, event.Options{})
		if err != nil {
			stats.failed++
			dctx.Metrics.Failed("record")
			writeDecodeError(errOut, decodeErrorFromRaw(line.Number, line.Event, err))
			continue
		}

		name, _ := rec.Name()
		if rec.Kind() != event.KindContract || !dec.CanDecode(name) {
			stats.skipped++
			dctx.Metrics.Skipped(skipLabel(rec, name))
			continue
		}

		typed, err := dec.Decode(rec, dctx)
		if err != nil {
			stats.failed++
			dctx.Metrics.Failed("decode")
			writeDecodeError(errOut, decodeErrorFromRaw(line.Number, line.Event, err))
			continue
		}

		if err := out.Write(typed); err != nil {
			return stats, err
		}
		stats.decoded++
	}
	return stats, nil
}

// skipLabel buckets a skipped record for the skipped counter. Only token
// operation names are kept as labels.
func skipLabel(rec *event.Record, name string) string {
	if rec.Kind() != event.KindContract {
		return "system"
	}
	if _, err := token.ParseOperation(name); err == nil {
		return name
	}
	return "other"
}

func decodeErrorFromRaw(line int, raw model.RawEvent, err error) model.DecodeError {
	topic0 := ""
	if len(raw.Topics) > 0 {
		topic0 = raw.Topics[0]
	}

	return model.DecodeError{
		Line:       line,
		ID:         raw.ID,
		Ledger:     raw.Ledger,
		TxHash:     raw.TxHash,
		ContractID: raw.ContractID,
		Topic0:     topic0,
		Error:      err.Error(),
	}
}

func writeDecodeError(writer jsonlSink, errRecord model.DecodeError) {
	if writer == nil {
		return
	}
	_ = writer.Write(errRecord)
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return file, func() { file.Close() }, nil
}
