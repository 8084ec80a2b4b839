// Package eventid encodes and decodes sortable event identifiers of the form
// <19-digit operation key>-<10-digit event index>. Lexicographic order of
// identifiers equals execution order.
package eventid

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"tokenscope/internal/errs"
	"tokenscope/internal/toid"
)

const (
	// MinEventIndex and MaxEventIndex bound the 1-based index accepted by Create.
	MinEventIndex uint64 = 1
	MaxEventIndex uint64 = 9_999_999_999

	indexWidth = 10
)

var pattern = regexp.MustCompile(`^\d{19}-\d{10}$`)

// Parts is a decoded identifier. EventIndex is the 0-based value carried in
// the identifier string.
type Parts struct {
	LedgerSequence   uint32 `json:"ledger_sequence"`
	TransactionOrder uint32 `json:"transaction_order"`
	OperationIndex   uint32 `json:"operation_index"`
	EventIndex       uint64 `json:"event_index"`
}

// Create renders an identifier from an operation key and a 1-based event index.
func Create(key toid.ID, eventIndex uint64) (string, error) {
	if eventIndex < MinEventIndex || eventIndex > MaxEventIndex {
		return "", &errs.RangeError{
			What:  "event index",
			Value: strconv.FormatUint(eventIndex, 10),
			Min:   strconv.FormatUint(MinEventIndex, 10),
			Max:   strconv.FormatUint(MaxEventIndex, 10),
		}
	}
	if key < 0 {
		return "", &errs.RangeError{
			What:  "operation key",
			Value: strconv.FormatInt(int64(key), 10),
			Min:   "0",
			Max:   strconv.FormatInt(math.MaxInt64, 10),
		}
	}
	return fmt.Sprintf("%s-%0*d", key.String(), indexWidth, eventIndex-1), nil
}

// CreateFromParts encodes the operation key and renders the identifier.
func CreateFromParts(ledgerSequence, transactionOrder, operationIndex uint32, eventIndex uint64) (string, error) {
	key, err := toid.Encode(ledgerSequence, transactionOrder, operationIndex)
	if err != nil {
		return "", err
	}
	return Create(key, eventIndex)
}

// IsValid reports whether s is a well-formed identifier whose first segment is
// a valid operation key.
func IsValid(s string) bool {
	if !pattern.MatchString(s) {
		return false
	}
	key, _, _ := strings.Cut(s, "-")
	return toid.IsValid(key)
}

// Parse decodes an identifier.
func Parse(s string) (Parts, error) {
	if !IsValid(s) {
		return Parts{}, &errs.FormatError{What: "event id", Value: s}
	}
	keyText, indexText, _ := strings.Cut(s, "-")

	key, err := toid.Parse(keyText)
	if err != nil {
		return Parts{}, &errs.FormatError{What: "event id", Value: s}
	}
	index, err := strconv.ParseUint(indexText, 10, 64)
	if err != nil {
		return Parts{}, &errs.FormatError{What: "event id", Value: s}
	}

	decoded := toid.Decode(key)
	return Parts{
		LedgerSequence:   decoded.LedgerSequence,
		TransactionOrder: decoded.TransactionOrder,
		OperationIndex:   decoded.OperationIndex,
		EventIndex:       index,
	}, nil
}

// Compare orders two identifiers by execution order. Both must be valid.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}
