// Package token holds the schemas of the two token event conventions and the
// typed variants built by matching records against them.
package token

import (
	"fmt"

	"tokenscope/internal/schema"
)

// Standard names a token event convention.
type Standard string

const (
	// StandardSEP41 is the generic token interface: topics carry only the
	// addresses of the operation.
	StandardSEP41 Standard = "sep41"
	// StandardSAC is the Stellar asset contract, which appends the canonical
	// asset descriptor as a trailing topic.
	StandardSAC Standard = "sac"
)

// Operation is the symbol in topic 0.
type Operation string

const (
	OpTransfer      Operation = "transfer"
	OpMint          Operation = "mint"
	OpBurn          Operation = "burn"
	OpApprove       Operation = "approve"
	OpClawback      Operation = "clawback"
	OpSetAdmin      Operation = "set_admin"
	OpSetAuthorized Operation = "set_authorized"
)

// Operations lists every operation in catalog order.
var Operations = []Operation{OpTransfer, OpMint, OpBurn, OpApprove, OpClawback, OpSetAdmin, OpSetAuthorized}

// Revision tells apart protocol eras of the same operation.
type Revision string

const (
	// RevisionAny marks a layout that did not change across protocol versions.
	RevisionAny Revision = "any"
	// RevisionLegacy carries the administrator topic on mint, clawback and
	// set_authorized.
	RevisionLegacy Revision = "legacy"
	// RevisionCAP67 drops the administrator topic and allows muxed payloads.
	RevisionCAP67 Revision = "cap67"
)

// Field names shared by the catalog schemas.
const (
	FieldFrom      = "from"
	FieldTo        = "to"
	FieldSpender   = "spender"
	FieldAdmin     = "admin"
	FieldID        = "id"
	FieldAsset     = "asset"
	FieldAmount    = "amount"
	FieldApproval  = "approval"
	FieldNewAdmin  = "new_admin"
	FieldAuthorize = "authorize"
	FieldMuxedID   = "to_muxed_id"
)

// Entry binds a schema to the convention, operation and era it describes.
type Entry struct {
	Standard  Standard      `json:"standard" yaml:"standard"`
	Operation Operation     `json:"operation" yaml:"operation"`
	Revision  Revision      `json:"revision" yaml:"revision"`
	Muxed     bool          `json:"muxed" yaml:"muxed"`
	Schema    schema.Schema `json:"schema" yaml:"schema"`
}

// Key identifies the entry, e.g. "sac/mint/cap67".
func (e Entry) Key() string {
	key := fmt.Sprintf("%s/%s/%s", e.Standard, e.Operation, e.Revision)
	if e.Muxed {
		key += "/muxed"
	}
	return key
}

func define(std Standard, op Operation, rev Revision, muxed bool, topics []schema.Field, value schema.Field) Entry {
	return Entry{
		Standard:  std,
		Operation: op,
		Revision:  rev,
		Muxed:     muxed,
		Schema:    schema.MustDefine(schema.Schema{Name: string(op), Topics: topics, Value: value}),
	}
}

var (
	from      = schema.Topic(FieldFrom, schema.TypeAddress)
	to        = schema.Topic(FieldTo, schema.TypeAddress)
	spender   = schema.Topic(FieldSpender, schema.TypeAddress)
	admin     = schema.Topic(FieldAdmin, schema.TypeAddress)
	holder    = schema.Topic(FieldID, schema.TypeAddress)
	assetName = schema.Topic(FieldAsset, schema.TypeString)

	amount     = schema.Val(FieldAmount, schema.TypeI128)
	muxedValue = schema.Val(FieldAmount, schema.TypeMap)
	approval   = schema.Val(FieldApproval, schema.TypeVec)
	newAdmin   = schema.Val(FieldNewAdmin, schema.TypeAddress)
	authorize  = schema.Val(FieldAuthorize, schema.TypeBool)
)

func topics(fields ...schema.Field) []schema.Field { return fields }

// catalog is ordered most specific first: asset contract layouts before the
// generic ones, muxed payloads before bare amounts.
var catalog = []Entry{
	define(StandardSAC, OpTransfer, RevisionCAP67, true, topics(from, to, assetName), muxedValue),
	define(StandardSAC, OpTransfer, RevisionAny, false, topics(from, to, assetName), amount),
	define(StandardSAC, OpMint, RevisionLegacy, false, topics(admin, to, assetName), amount),
	define(StandardSAC, OpMint, RevisionCAP67, true, topics(to, assetName), muxedValue),
	define(StandardSAC, OpMint, RevisionCAP67, false, topics(to, assetName), amount),
	define(StandardSAC, OpBurn, RevisionAny, false, topics(from, assetName), amount),
	define(StandardSAC, OpApprove, RevisionAny, false, topics(from, spender, assetName), approval),
	define(StandardSAC, OpClawback, RevisionLegacy, false, topics(admin, from, assetName), amount),
	define(StandardSAC, OpClawback, RevisionCAP67, false, topics(from, assetName), amount),
	define(StandardSAC, OpSetAdmin, RevisionAny, false, topics(admin, assetName), newAdmin),
	define(StandardSAC, OpSetAuthorized, RevisionLegacy, false, topics(admin, holder, assetName), authorize),
	define(StandardSAC, OpSetAuthorized, RevisionCAP67, false, topics(holder, assetName), authorize),

	define(StandardSEP41, OpTransfer, RevisionCAP67, true, topics(from, to), muxedValue),
	define(StandardSEP41, OpTransfer, RevisionAny, false, topics(from, to), amount),
	define(StandardSEP41, OpMint, RevisionCAP67, true, topics(to), muxedValue),
	define(StandardSEP41, OpMint, RevisionAny, false, topics(to), amount),
	define(StandardSEP41, OpBurn, RevisionAny, false, topics(from), amount),
	define(StandardSEP41, OpApprove, RevisionAny, false, topics(from, spender), approval),
	define(StandardSEP41, OpClawback, RevisionAny, false, topics(from), amount),
	define(StandardSEP41, OpSetAdmin, RevisionAny, false, topics(admin), newAdmin),
	define(StandardSEP41, OpSetAuthorized, RevisionAny, false, topics(holder), authorize),
}

// Catalog returns a copy of every entry in match order.
func Catalog() []Entry {
	return append([]Entry(nil), catalog...)
}

// Lookup finds the non-muxed entry for standard, operation and revision.
func Lookup(std Standard, op Operation, rev Revision) (Entry, bool) {
	return lookup(std, op, rev, false)
}

// LookupMuxed finds the muxed-payload entry for standard and operation.
func LookupMuxed(std Standard, op Operation) (Entry, bool) {
	return lookup(std, op, RevisionCAP67, true)
}

func lookup(std Standard, op Operation, rev Revision, muxed bool) (Entry, bool) {
	for _, e := range catalog {
		if e.Standard == std && e.Operation == op && e.Revision == rev && e.Muxed == muxed {
			return e, true
		}
	}
	return Entry{}, false
}

// Filter returns the entries that belong to one of the given standards and
// operations. Empty arguments select everything.
func Filter(standards []Standard, ops []Operation) []Entry {
	var out []Entry
	for _, e := range catalog {
		if len(standards) > 0 && !contains(standards, e.Standard) {
			continue
		}
		if len(ops) > 0 && !contains(ops, e.Operation) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ParseStandard maps a configuration string to a Standard.
func ParseStandard(s string) (Standard, error) {
	switch Standard(s) {
	case StandardSEP41, StandardSAC:
		return Standard(s), nil
	default:
		return "", fmt.Errorf("unknown token standard %q", s)
	}
}

// ParseOperation maps a configuration string to an Operation.
func ParseOperation(s string) (Operation, error) {
	if contains(Operations, Operation(s)) {
		return Operation(s), nil
	}
	return "", fmt.Errorf("unknown token operation %q", s)
}
