package model

// Amounts are decimal strings so 128-bit values survive JSON round trips.

// TransferEventData is the decoded transfer payload.
type TransferEventData struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	ToMuxedID string `json:"to_muxed_id,omitempty"`
	Asset     string `json:"asset,omitempty"`
}

// MintEventData is the decoded mint payload. Admin is only present for the
// pre-CAP-67 asset contract layout.
type MintEventData struct {
	Admin     string `json:"admin,omitempty"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	ToMuxedID string `json:"to_muxed_id,omitempty"`
	Asset     string `json:"asset,omitempty"`
}

// BurnEventData is the decoded burn payload.
type BurnEventData struct {
	From   string `json:"from"`
	Amount string `json:"amount"`
	Asset  string `json:"asset,omitempty"`
}

// ApproveEventData is the decoded approve payload.
type ApproveEventData struct {
	From            string `json:"from"`
	Spender         string `json:"spender"`
	Amount          string `json:"amount"`
	LiveUntilLedger uint32 `json:"live_until_ledger"`
	Asset           string `json:"asset,omitempty"`
}

// ClawbackEventData is the decoded clawback payload.
type ClawbackEventData struct {
	Admin  string `json:"admin,omitempty"`
	From   string `json:"from"`
	Amount string `json:"amount"`
	Asset  string `json:"asset,omitempty"`
}

// SetAdminEventData is the decoded set_admin payload.
type SetAdminEventData struct {
	Admin    string `json:"admin"`
	NewAdmin string `json:"new_admin"`
	Asset    string `json:"asset,omitempty"`
}

// SetAuthorizedEventData is the decoded set_authorized payload.
type SetAuthorizedEventData struct {
	Admin     string `json:"admin,omitempty"`
	ID        string `json:"id"`
	Authorize bool   `json:"authorize"`
	Asset     string `json:"asset,omitempty"`
}
