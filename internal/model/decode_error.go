package model

// DecodeError records a decode failure for an input line.
type DecodeError struct {
	Line       int    `json:"line,omitempty"`
	ID         string `json:"id,omitempty"`
	Ledger     uint32 `json:"ledger,omitempty"`
	TxHash     string `json:"tx_hash,omitempty"`
	ContractID string `json:"contract_id,omitempty"`
	Topic0     string `json:"topic0,omitempty"`
	Error      string `json:"error"`
}
