package toid

import (
	"fmt"
	"math"
	"strconv"

	"tokenscope/internal/errs"
)

const (
	ledgerShift = 32
	txShift     = 12

	// MaxLedgerSequence keeps the packed key a non-negative int64.
	MaxLedgerSequence = math.MaxInt32
	MaxTransaction    = 1<<20 - 1
	MaxOperation      = 1<<12 - 1

	// Width is the decimal width of a rendered key.
	Width = 19
)

// ID packs (ledger sequence, transaction order, operation index) into one
// totally ordered integer.
type ID int64

// Parts is the decoded form of an ID.
type Parts struct {
	LedgerSequence   uint32
	TransactionOrder uint32
	OperationIndex   uint32
}

// Encode packs the three components into an ID.
func Encode(ledgerSequence, transactionOrder, operationIndex uint32) (ID, error) {
	if ledgerSequence > MaxLedgerSequence {
		return 0, rangeErr("ledger sequence", uint64(ledgerSequence), MaxLedgerSequence)
	}
	if transactionOrder > MaxTransaction {
		return 0, rangeErr("transaction order", uint64(transactionOrder), MaxTransaction)
	}
	if operationIndex > MaxOperation {
		return 0, rangeErr("operation index", uint64(operationIndex), MaxOperation)
	}
	id := int64(ledgerSequence)<<ledgerShift | int64(transactionOrder)<<txShift | int64(operationIndex)
	return ID(id), nil
}

// Decode unpacks an ID.
func Decode(id ID) Parts {
	v := int64(id)
	return Parts{
		LedgerSequence:   uint32(v >> ledgerShift),
		TransactionOrder: uint32((v >> txShift) & MaxTransaction),
		OperationIndex:   uint32(v & MaxOperation),
	}
}

// String renders the ID as a zero-padded decimal key.
func (id ID) String() string {
	return fmt.Sprintf("%0*d", Width, int64(id))
}

// IsValid reports whether s is a rendered key: exactly Width decimal digits
// holding a non-negative int64.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Parse decodes a rendered key.
func Parse(s string) (ID, error) {
	if len(s) != Width || !isDigits(s) {
		return 0, &errs.FormatError{What: "operation key", Value: s}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &errs.FormatError{What: "operation key", Value: s}
	}
	return ID(v), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func rangeErr(what string, value uint64, max uint64) error {
	return &errs.RangeError{
		What:  what,
		Value: strconv.FormatUint(value, 10),
		Min:   "0",
		Max:   strconv.FormatUint(max, 10),
	}
}
