// Package event wraps raw contract events in an immutable Record whose topics
// and value are decoded on demand.
package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"tokenscope/internal/errs"
	"tokenscope/internal/eventid"
	"tokenscope/internal/model"
	"tokenscope/internal/scval"
	"tokenscope/internal/strkey"
)

// Kind distinguishes contract-emitted events from system events.
type Kind string

const (
	KindContract Kind = "contract"
	KindSystem   Kind = "system"
)

// ParseKind maps the upstream discriminator to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindContract, KindSystem:
		return Kind(s), nil
	default:
		return "", &errs.UnknownKindError{Kind: s}
	}
}

// AddressValidator checks contract identifiers.
type AddressValidator interface {
	IsValidContractAddress(s string) bool
}

// Options supplies the external collaborators a Record uses. Zero values
// select scval.JSONCodec and strkey.Validator.
type Options struct {
	Codec     scval.Codec
	Addresses AddressValidator
}

func (o Options) withDefaults() Options {
	if o.Codec == nil {
		o.Codec = scval.JSONCodec{}
	}
	if o.Addresses == nil {
		o.Addresses = strkey.Validator{}
	}
	return o
}

// Fields are the construction inputs of a Record.
type Fields struct {
	ID                       string
	Kind                     Kind
	Ledger                   uint32
	LedgerClosedAt           time.Time
	TransactionIndex         uint32
	OperationIndex           uint32
	InSuccessfulContractCall bool
	TxHash                   string
	ContractID               string
	Topics                   []string
	Value                    string
}

// Record is one immutable event. Topics and Value invoke the codec on every
// call and do not memoize; callers needing a stable snapshot should call
// Snapshot once and keep the result.
type Record struct {
	fields Fields
	codec  scval.Codec
}

// New validates f and builds a Record.
func New(f Fields, opts Options) (*Record, error) {
	opts = opts.withDefaults()

	if !eventid.IsValid(f.ID) {
		return nil, &errs.FormatError{What: "event id", Value: f.ID}
	}
	if _, err := ParseKind(string(f.Kind)); err != nil {
		return nil, err
	}
	if f.Kind == KindContract && f.ContractID == "" {
		return nil, &errs.MissingFieldError{Field: "contractId"}
	}
	if f.ContractID != "" && !opts.Addresses.IsValidContractAddress(f.ContractID) {
		return nil, &errs.InvalidDomainValueError{Field: "contractId", Value: f.ContractID, Reason: "not a contract address"}
	}
	if f.TxHash != "" && !isTxHash(f.TxHash) {
		return nil, &errs.FormatError{What: "transaction hash", Value: f.TxHash}
	}

	f.Topics = append([]string(nil), f.Topics...)
	return &Record{fields: f, codec: opts.Codec}, nil
}

// FromRaw maps the upstream shape into a Record.
func FromRaw(raw model.RawEvent, opts Options) (*Record, error) {
	kind, err := ParseKind(raw.Kind)
	if err != nil {
		return nil, err
	}

	var closedAt time.Time
	if raw.LedgerClosedAt != "" {
		closedAt, err = time.Parse(time.RFC3339, raw.LedgerClosedAt)
		if err != nil {
			return nil, &errs.FormatError{What: "ledgerClosedAt", Value: raw.LedgerClosedAt}
		}
	}

	return New(Fields{
		ID:                       raw.ID,
		Kind:                     kind,
		Ledger:                   raw.Ledger,
		LedgerClosedAt:           closedAt,
		TransactionIndex:         raw.TransactionIndex,
		OperationIndex:           raw.OperationIndex,
		InSuccessfulContractCall: raw.InSuccessfulContractCall,
		TxHash:                   raw.TxHash,
		ContractID:               raw.ContractID,
		Topics:                   raw.Topics,
		Value:                    raw.Value,
	}, opts)
}

var errNilRecord = errors.New("nil record")

func isTxHash(s string) bool {
	data, err := hexutil.Decode("0x" + s)
	return err == nil && len(data) == common.HashLength
}

// ID returns the event identifier.
func (r *Record) ID() string {
	if r == nil {
		return ""
	}
	return r.fields.ID
}

func (r *Record) Kind() Kind                     { return r.fields.Kind }
func (r *Record) Ledger() uint32                 { return r.fields.Ledger }
func (r *Record) LedgerClosedAt() time.Time      { return r.fields.LedgerClosedAt }
func (r *Record) TransactionIndex() uint32       { return r.fields.TransactionIndex }
func (r *Record) OperationIndex() uint32         { return r.fields.OperationIndex }
func (r *Record) InSuccessfulContractCall() bool { return r.fields.InSuccessfulContractCall }
func (r *Record) TxHash() string                 { return r.fields.TxHash }
func (r *Record) ContractID() string             { return r.fields.ContractID }
func (r *Record) RawValue() string               { return r.fields.Value }

// TopicCount is the number of raw topics, fixed at construction.
func (r *Record) TopicCount() int { return len(r.fields.Topics) }

// RawTopics returns a copy of the encoded topics.
func (r *Record) RawTopics() []string {
	return append([]string(nil), r.fields.Topics...)
}

// Position decodes the record identifier.
func (r *Record) Position() eventid.Parts {
	// The id was validated in New.
	parts, _ := eventid.Parse(r.fields.ID)
	return parts
}

// Topics decodes every topic. Each call decodes afresh.
func (r *Record) Topics() ([]scval.Value, error) {
	if r == nil {
		return nil, errNilRecord
	}
	out := make([]scval.Value, 0, len(r.fields.Topics))
	for i, raw := range r.fields.Topics {
		v, err := r.codec.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode topic %d of %s: %w", i, r.fields.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Value decodes the event payload. Each call decodes afresh.
func (r *Record) Value() (scval.Value, error) {
	if r == nil {
		return scval.Value{}, errNilRecord
	}
	v, err := r.codec.Decode(r.fields.Value)
	if err != nil {
		return scval.Value{}, fmt.Errorf("decode value of %s: %w", r.fields.ID, err)
	}
	return v, nil
}

// Name decodes topic 0 as a symbol. It reports false when there are no
// topics or topic 0 is not a symbol.
func (r *Record) Name() (string, bool) {
	if r == nil || len(r.fields.Topics) == 0 {
		return "", false
	}
	v, err := r.codec.Decode(r.fields.Topics[0])
	if err != nil {
		return "", false
	}
	return v.AsSymbol()
}

// Decoded is a one-time decode of a record's topics and value.
type Decoded struct {
	Topics []scval.Value
	Value  scval.Value
}

// Snapshot decodes topics and value once.
func (r *Record) Snapshot() (Decoded, error) {
	topics, err := r.Topics()
	if err != nil {
		return Decoded{}, err
	}
	value, err := r.Value()
	if err != nil {
		return Decoded{}, err
	}
	return Decoded{Topics: topics, Value: value}, nil
}
