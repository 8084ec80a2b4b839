package aggregate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	"tokenscope/internal/model"
)

// Config controls aggregation behavior.
type Config struct {
	// WindowSeconds splits summaries by ledger close time. Zero summarizes
	// the whole input per contract.
	WindowSeconds uint64
	Decimals      uint8
	// FromLedger skips records at or below it; zero defers to StateStore.
	FromLedger uint32
	StateStore StateStore
}

// Sink receives finished summaries.
type Sink func(model.TokenWindowSummary) error

// Stats counts input lines by outcome.
type Stats struct {
	Total   int
	Applied int
	Skipped int
	Failed  int
	Windows int
}

// Aggregator summarizes typed token events per contract and window.
type Aggregator struct {
	cfg          Config
	logger       *zap.Logger
	accumulators map[string]*Accumulator
}

func NewAggregator(cfg Config, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		cfg:          cfg,
		logger:       logger,
		accumulators: make(map[string]*Accumulator),
	}
}

// Run reads typed events JSONL from r and emits summaries to sink. Windows
// are flushed when a contract's next event falls into a later window and at
// the end of input.
func (a *Aggregator) Run(ctx context.Context, r io.Reader, sink Sink) (Stats, error) {
	var stats Stats
	if sink == nil {
		return stats, fmt.Errorf("sink is nil")
	}

	startLedger, err := a.loadStartLedger(ctx)
	if err != nil {
		return stats, err
	}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	maxLedger := startLedger
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.Total++

		var record model.TypedEventRecord
		if err := json.Unmarshal(line, &record); err != nil {
			stats.Failed++
			a.logger.Warn("decode typed event", zap.Error(err))
			continue
		}
		if record.Ledger <= startLedger {
			stats.Skipped++
			continue
		}

		ts, err := closeTimestamp(record.LedgerClosedAt)
		if err != nil {
			stats.Failed++
			a.logger.Warn("ledger close time", zap.String("id", record.ID), zap.Error(err))
			continue
		}
		start := windowStart(ts, a.cfg.WindowSeconds)
		end := start + a.cfg.WindowSeconds

		acc := a.accumulators[record.ContractID]
		if acc == nil {
			acc = NewAccumulator(record, start, end)
			a.accumulators[record.ContractID] = acc
		} else if acc.WindowStart != start {
			if err := sink(a.summary(acc)); err != nil {
				return stats, err
			}
			stats.Windows++
			acc = NewAccumulator(record, start, end)
			a.accumulators[record.ContractID] = acc
		}

		if err := acc.AddEvent(record); err != nil {
			stats.Failed++
			a.logger.Warn("aggregate event", zap.Error(err), zap.String("contract", record.ContractID), zap.String("event", record.EventName))
			continue
		}
		stats.Applied++
		if record.Ledger > maxLedger {
			maxLedger = record.Ledger
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan input: %w", err)
	}

	keys := make([]string, 0, len(a.accumulators))
	for key := range a.accumulators {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := sink(a.summary(a.accumulators[key])); err != nil {
			return stats, err
		}
		stats.Windows++
	}
	a.accumulators = make(map[string]*Accumulator)

	if a.cfg.StateStore != nil && maxLedger > startLedger {
		if err := a.cfg.StateStore.Save(ctx, maxLedger); err != nil {
			return stats, err
		}
	}

	a.logger.Info("aggregate complete",
		zap.Int("total", stats.Total),
		zap.Int("applied", stats.Applied),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
		zap.Int("windows", stats.Windows),
	)
	return stats, nil
}

func (a *Aggregator) loadStartLedger(ctx context.Context) (uint32, error) {
	if a.cfg.FromLedger > 0 {
		return a.cfg.FromLedger - 1, nil
	}
	if a.cfg.StateStore == nil {
		return 0, nil
	}
	last, ok, err := a.cfg.StateStore.Load(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return last, nil
}

func (a *Aggregator) summary(acc *Accumulator) model.TokenWindowSummary {
	counts := make(map[string]uint64, len(acc.Counts))
	for name, n := range acc.Counts {
		counts[name] = n
	}
	out := model.TokenWindowSummary{
		ContractID:     acc.ContractID,
		Asset:          acc.Asset,
		WindowSizeSecs: int64(a.cfg.WindowSeconds),
		FirstLedger:    acc.FirstLedger,
		LastLedger:     acc.LastLedger,
		EventCounts:    counts,
		Minted:         formatTokenAmount(acc.Minted, a.cfg.Decimals),
		Burned:         formatTokenAmount(acc.Burned, a.cfg.Decimals),
		ClawedBack:     formatTokenAmount(acc.ClawedBack, a.cfg.Decimals),
		Transferred:    formatTokenAmount(acc.Transferred, a.cfg.Decimals),
		NetSupply:      formatTokenAmount(acc.NetSupply(), a.cfg.Decimals),
		MuxedTransfers: acc.MuxedTransfers,
		FailedCalls:    acc.FailedCalls,
	}
	if a.cfg.WindowSeconds > 0 {
		out.WindowStart = unixTime(acc.WindowStart)
		out.WindowEnd = unixTime(acc.WindowEnd)
	}
	return out
}
