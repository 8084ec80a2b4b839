package token

import (
	"math/big"

	"tokenscope/internal/asset"
	"tokenscope/internal/errs"
	"tokenscope/internal/scval"
	"tokenscope/internal/schema"
	"tokenscope/internal/strkey"
)

// AddressValidator classifies decoded addresses.
type AddressValidator interface {
	IsValidAccountAddress(s string) bool
	IsValidContractAddress(s string) bool
}

// Event is a record classified against one catalog entry. The concrete type
// is one of *Transfer, *Mint, *Burn, *Approve, *Clawback, *SetAdmin or
// *SetAuthorized.
type Event interface {
	Entry() Entry
	RecordID() string
	Fields() schema.Extracted
	HasAsset() bool
	Asset() (asset.Descriptor, error)
}

type base struct {
	entry  Entry
	fields schema.Extracted
	addrs  AddressValidator
}

func (b base) Entry() Entry             { return b.entry }
func (b base) RecordID() string         { return b.fields.RecordID() }
func (b base) Fields() schema.Extracted { return b.fields }

// HasAsset reports whether the layout carries an asset descriptor topic.
func (b base) HasAsset() bool {
	_, _, ok := b.entry.Schema.TopicField(FieldAsset)
	return ok
}

// Asset parses the asset descriptor topic. Malformed descriptors are only
// reported here, never at classification time.
func (b base) Asset() (asset.Descriptor, error) {
	if !b.HasAsset() {
		return asset.Descriptor{}, &errs.MissingFieldError{Field: FieldAsset}
	}
	raw, err := b.fields.Text(FieldAsset)
	if err != nil {
		return asset.Descriptor{}, err
	}
	d, err := asset.Parse(raw)
	if err != nil {
		return asset.Descriptor{}, &errs.InvalidDomainValueError{Field: FieldAsset, Value: raw, Reason: err.Error()}
	}
	return d, nil
}

// address returns a topic address, or "" when the layout has no such field.
func (b base) address(name string) string {
	s, _ := b.fields.Address(name)
	return s
}

func (b base) isAccount(name string) bool {
	s := b.address(name)
	return s != "" && b.addrs.IsValidAccountAddress(s)
}

func (b base) isContract(name string) bool {
	s := b.address(name)
	return s != "" && b.addrs.IsValidContractAddress(s)
}

// amount reads the amount field in either the bare or muxed layout.
func (b base) amount() (*big.Int, error) {
	v, ok := b.fields.Value(FieldAmount)
	if !ok {
		return nil, &errs.MissingFieldError{Field: FieldAmount}
	}
	if IsMuxedData(v) {
		v, _ = v.Field(FieldAmount)
	}
	n, ok := v.AsBigInt()
	if !ok {
		return nil, &errs.InvalidDomainValueError{Field: FieldAmount, Value: v.String(), Reason: "not an integer"}
	}
	return n, nil
}

func (b base) muxed() bool {
	v, ok := b.fields.Value(FieldAmount)
	return ok && IsMuxedData(v)
}

func (b base) muxedID() (scval.Value, bool) {
	v, ok := b.fields.Value(FieldAmount)
	if !ok || !IsMuxedData(v) {
		return scval.Value{}, false
	}
	id, ok := v.Field(FieldMuxedID)
	if !ok || id.IsVoid() {
		return scval.Value{}, false
	}
	return id, true
}

// Transfer moves an amount between two addresses.
type Transfer struct{ base }

func (e *Transfer) From() string              { return e.address(FieldFrom) }
func (e *Transfer) To() string                { return e.address(FieldTo) }
func (e *Transfer) IsFromAccount() bool       { return e.isAccount(FieldFrom) }
func (e *Transfer) IsFromContract() bool      { return e.isContract(FieldFrom) }
func (e *Transfer) IsToAccount() bool         { return e.isAccount(FieldTo) }
func (e *Transfer) IsToContract() bool        { return e.isContract(FieldTo) }
func (e *Transfer) Amount() (*big.Int, error) { return e.amount() }

// IsMuxed reports whether the payload uses the muxed map layout.
func (e *Transfer) IsMuxed() bool { return e.muxed() }

// ToMuxedID returns the recipient's muxed id when present.
func (e *Transfer) ToMuxedID() (scval.Value, bool) { return e.muxedID() }

// Mint creates an amount for a recipient. Legacy asset contract layouts also
// name the administrator.
type Mint struct{ base }

func (e *Mint) To() string                     { return e.address(FieldTo) }
func (e *Mint) Admin() string                  { return e.address(FieldAdmin) }
func (e *Mint) IsToAccount() bool              { return e.isAccount(FieldTo) }
func (e *Mint) IsToContract() bool             { return e.isContract(FieldTo) }
func (e *Mint) Amount() (*big.Int, error)      { return e.amount() }
func (e *Mint) IsMuxed() bool                  { return e.muxed() }
func (e *Mint) ToMuxedID() (scval.Value, bool) { return e.muxedID() }

// Burn destroys an amount held by an address.
type Burn struct{ base }

func (e *Burn) From() string              { return e.address(FieldFrom) }
func (e *Burn) IsFromAccount() bool       { return e.isAccount(FieldFrom) }
func (e *Burn) IsFromContract() bool      { return e.isContract(FieldFrom) }
func (e *Burn) Amount() (*big.Int, error) { return e.amount() }

// Approve sets an allowance. Its value is a two item vector of amount and
// expiration ledger, validated on access.
type Approve struct{ base }

func (e *Approve) From() string            { return e.address(FieldFrom) }
func (e *Approve) Spender() string         { return e.address(FieldSpender) }
func (e *Approve) IsFromAccount() bool     { return e.isAccount(FieldFrom) }
func (e *Approve) IsFromContract() bool    { return e.isContract(FieldFrom) }
func (e *Approve) IsSpenderAccount() bool  { return e.isAccount(FieldSpender) }
func (e *Approve) IsSpenderContract() bool { return e.isContract(FieldSpender) }

// Amount is the approved allowance.
func (e *Approve) Amount() (*big.Int, error) {
	items, err := e.approval()
	if err != nil {
		return nil, err
	}
	n, ok := items[0].AsBigInt()
	if !ok {
		return nil, &errs.InvalidDomainValueError{Field: FieldApproval, Value: items[0].String(), Reason: "amount is not an integer"}
	}
	return n, nil
}

// LiveUntilLedger is the last ledger the allowance is valid for.
func (e *Approve) LiveUntilLedger() (uint32, error) {
	items, err := e.approval()
	if err != nil {
		return 0, err
	}
	n, ok := items[1].AsUint32()
	if !ok {
		return 0, &errs.InvalidDomainValueError{Field: FieldApproval, Value: items[1].String(), Reason: "expiration is not a u32"}
	}
	return n, nil
}

func (e *Approve) approval() ([]scval.Value, error) {
	v, _ := e.fields.Value(FieldApproval)
	items, ok := v.AsVec()
	if !ok || len(items) != 2 {
		return nil, &errs.InvalidDomainValueError{Field: FieldApproval, Value: v.String(), Reason: "expected [amount, live_until_ledger]"}
	}
	return items, nil
}

// Clawback recovers an amount from a holder.
type Clawback struct{ base }

func (e *Clawback) From() string              { return e.address(FieldFrom) }
func (e *Clawback) Admin() string             { return e.address(FieldAdmin) }
func (e *Clawback) IsFromAccount() bool       { return e.isAccount(FieldFrom) }
func (e *Clawback) IsFromContract() bool      { return e.isContract(FieldFrom) }
func (e *Clawback) Amount() (*big.Int, error) { return e.amount() }

// SetAdmin hands the administrator role to a new address.
type SetAdmin struct{ base }

func (e *SetAdmin) Admin() string { return e.address(FieldAdmin) }

// NewAdmin is the incoming administrator, carried in the value.
func (e *SetAdmin) NewAdmin() string {
	s, _ := e.fields.Address(FieldNewAdmin)
	return s
}

func (e *SetAdmin) IsNewAdminAccount() bool {
	s := e.NewAdmin()
	return s != "" && e.addrs.IsValidAccountAddress(s)
}

func (e *SetAdmin) IsNewAdminContract() bool {
	s := e.NewAdmin()
	return s != "" && e.addrs.IsValidContractAddress(s)
}

// SetAuthorized toggles the authorization flag of a holder.
type SetAuthorized struct{ base }

func (e *SetAuthorized) ID() string         { return e.address(FieldID) }
func (e *SetAuthorized) Admin() string      { return e.address(FieldAdmin) }
func (e *SetAuthorized) IsIDAccount() bool  { return e.isAccount(FieldID) }
func (e *SetAuthorized) IsIDContract() bool { return e.isContract(FieldID) }

// Authorized is the new flag value.
func (e *SetAuthorized) Authorized() bool {
	b, _ := e.fields.Bool(FieldAuthorize)
	return b
}

func newEvent(entry Entry, fields schema.Extracted, addrs AddressValidator) Event {
	b := base{entry: entry, fields: fields, addrs: addrs}
	switch entry.Operation {
	case OpTransfer:
		return &Transfer{b}
	case OpMint:
		return &Mint{b}
	case OpBurn:
		return &Burn{b}
	case OpApprove:
		return &Approve{b}
	case OpClawback:
		return &Clawback{b}
	case OpSetAdmin:
		return &SetAdmin{b}
	default:
		return &SetAuthorized{b}
	}
}

var defaultValidator AddressValidator = strkey.Validator{}
