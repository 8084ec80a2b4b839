package model

// TypedEvent is a decoded token event with its record metadata.
type TypedEvent struct {
	ID                       string      `json:"id"`
	Ledger                   uint32      `json:"ledger"`
	LedgerClosedAt           string      `json:"ledger_closed_at"`
	TxHash                   string      `json:"tx_hash"`
	ContractID               string      `json:"contract_id"`
	InSuccessfulContractCall bool        `json:"in_successful_contract_call"`
	EventName                string      `json:"event_name"`
	Standard                 string      `json:"standard"`
	Revision                 string      `json:"revision,omitempty"`
	Muxed                    bool        `json:"muxed,omitempty"`
	Decoded                  interface{} `json:"decoded"`
	Raw                      *RawRef     `json:"raw,omitempty"`
}

// RawRef keeps a minimal raw reference for traceability.
type RawRef struct {
	Topic0 string `json:"topic0"`
	Value  string `json:"value"`
}
