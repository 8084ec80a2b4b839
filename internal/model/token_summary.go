package model

import "time"

// TokenWindowSummary aggregates decoded events of one token contract over a
// window. Amounts are formatted with the configured decimals. A zero window
// covers the whole input.
type TokenWindowSummary struct {
	ContractID     string            `json:"contract_id"`
	Asset          string            `json:"asset,omitempty"`
	WindowSizeSecs int64             `json:"window_size_secs"`
	WindowStart    *time.Time        `json:"window_start,omitempty"`
	WindowEnd      *time.Time        `json:"window_end,omitempty"`
	FirstLedger    uint32            `json:"first_ledger"`
	LastLedger     uint32            `json:"last_ledger"`
	EventCounts    map[string]uint64 `json:"event_counts"`
	Minted         string            `json:"minted"`
	Burned         string            `json:"burned"`
	ClawedBack     string            `json:"clawed_back"`
	Transferred    string            `json:"transferred"`
	NetSupply      string            `json:"net_supply"`
	MuxedTransfers uint64            `json:"muxed_transfers"`
	FailedCalls    uint64            `json:"failed_calls"`
}
