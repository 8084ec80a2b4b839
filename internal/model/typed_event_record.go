package model

import "encoding/json"

// TypedEventRecord is the JSON representation used for aggregation.
type TypedEventRecord struct {
	ID                       string          `json:"id"`
	Ledger                   uint32          `json:"ledger"`
	LedgerClosedAt           string          `json:"ledger_closed_at"`
	TxHash                   string          `json:"tx_hash"`
	ContractID               string          `json:"contract_id"`
	InSuccessfulContractCall bool            `json:"in_successful_contract_call"`
	EventName                string          `json:"event_name"`
	Standard                 string          `json:"standard"`
	Revision                 string          `json:"revision,omitempty"`
	Muxed                    bool            `json:"muxed,omitempty"`
	Decoded                  json.RawMessage `json:"decoded"`
	Raw                      *RawRef         `json:"raw,omitempty"`
}
