package aggregate

import (
	"encoding/json"
	"fmt"
	"math/big"

	"tokenscope/internal/model"
	"tokenscope/internal/token"
)

// Accumulator holds aggregate values for one contract window.
type Accumulator struct {
	ContractID     string
	Asset          string
	WindowStart    uint64
	WindowEnd      uint64
	FirstLedger    uint32
	LastLedger     uint32
	Counts         map[string]uint64
	Minted         *big.Int
	Burned         *big.Int
	ClawedBack     *big.Int
	Transferred    *big.Int
	MuxedTransfers uint64
	FailedCalls    uint64
}

func NewAccumulator(record model.TypedEventRecord, windowStart, windowEnd uint64) *Accumulator {
	return &Accumulator{
		ContractID:  record.ContractID,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		FirstLedger: record.Ledger,
		LastLedger:  record.Ledger,
		Counts:      make(map[string]uint64),
		Minted:      big.NewInt(0),
		Burned:      big.NewInt(0),
		ClawedBack:  big.NewInt(0),
		Transferred: big.NewInt(0),
	}
}

// AddEvent folds one decoded event into the window. Events from failed
// contract calls are counted but move no supply.
func (a *Accumulator) AddEvent(record model.TypedEventRecord) error {
	if record.Ledger > a.LastLedger {
		a.LastLedger = record.Ledger
	}
	if a.FirstLedger == 0 || record.Ledger < a.FirstLedger {
		a.FirstLedger = record.Ledger
	}
	a.Counts[record.EventName]++

	if !record.InSuccessfulContractCall {
		a.FailedCalls++
		return nil
	}

	switch token.Operation(record.EventName) {
	case token.OpTransfer:
		var transfer model.TransferEventData
		if err := json.Unmarshal(record.Decoded, &transfer); err != nil {
			return fmt.Errorf("decode transfer: %w", err)
		}
		a.noteAsset(transfer.Asset)
		if record.Muxed {
			a.MuxedTransfers++
		}
		return addAmount(a.Transferred, transfer.Amount)
	case token.OpMint:
		var mint model.MintEventData
		if err := json.Unmarshal(record.Decoded, &mint); err != nil {
			return fmt.Errorf("decode mint: %w", err)
		}
		a.noteAsset(mint.Asset)
		return addAmount(a.Minted, mint.Amount)
	case token.OpBurn:
		var burn model.BurnEventData
		if err := json.Unmarshal(record.Decoded, &burn); err != nil {
			return fmt.Errorf("decode burn: %w", err)
		}
		a.noteAsset(burn.Asset)
		return addAmount(a.Burned, burn.Amount)
	case token.OpClawback:
		var clawback model.ClawbackEventData
		if err := json.Unmarshal(record.Decoded, &clawback); err != nil {
			return fmt.Errorf("decode clawback: %w", err)
		}
		a.noteAsset(clawback.Asset)
		return addAmount(a.ClawedBack, clawback.Amount)
	default:
		return nil
	}
}

// NetSupply is minted minus burned and clawed back.
func (a *Accumulator) NetSupply() *big.Int {
	net := new(big.Int).Set(a.Minted)
	net.Sub(net, a.Burned)
	return net.Sub(net, a.ClawedBack)
}

func (a *Accumulator) noteAsset(asset string) {
	if a.Asset == "" && asset != "" {
		a.Asset = asset
	}
}

func addAmount(target *big.Int, value string) error {
	amount, err := parseBigInt(value)
	if err != nil {
		return err
	}
	target.Add(target, amount)
	return nil
}

func parseBigInt(value string) (*big.Int, error) {
	if value == "" {
		return big.NewInt(0), nil
	}
	parsed, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid int: %s", value)
	}
	return parsed, nil
}
