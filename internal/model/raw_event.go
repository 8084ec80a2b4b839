package model

import (
	"encoding/json"
)

// RawEvent is the upstream representation of one emitted contract event.
// Topics and Value hold codec wire values.
type RawEvent struct {
	ID                       string   `json:"id"`
	Kind                     string   `json:"kind"`
	Ledger                   uint32   `json:"ledger"`
	LedgerClosedAt           string   `json:"ledgerClosedAt"`
	TransactionIndex         uint32   `json:"transactionIndex"`
	OperationIndex           uint32   `json:"operationIndex"`
	InSuccessfulContractCall bool     `json:"inSuccessfulContractCall"`
	TxHash                   string   `json:"txHash"`
	ContractID               string   `json:"contractId,omitempty"`
	Topics                   []string `json:"topics"`
	Value                    string   `json:"value"`
}

// MarshalJSON ensures RawEvent is encoded with stable field names.
func (re RawEvent) MarshalJSON() ([]byte, error) {
	type Alias RawEvent
	return json.Marshal(Alias(re))
}

// UnmarshalJSON decodes a RawEvent from JSON.
func (re *RawEvent) UnmarshalJSON(data []byte) error {
	type Alias RawEvent
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*re = RawEvent(a)
	return nil
}
