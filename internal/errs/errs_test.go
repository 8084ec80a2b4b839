package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorsUnwrapToSentinels(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{&FormatError{What: "event id", Value: "x"}, ErrFormat},
		{&RangeError{What: "event index", Value: "0", Min: "1", Max: "9999999999"}, ErrRange},
		{&MissingFieldError{Field: "contractId"}, ErrMissingField},
		{&UnknownKindError{Kind: "diagnostic"}, ErrUnknownKind},
		{&SchemaMismatchError{Schema: "mint", RecordID: "1", Reason: "topic count"}, ErrSchemaMismatch},
		{&InvalidDomainValueError{Field: "asset", Value: "invalid-asset"}, ErrInvalidDomainValue},
	}

	for _, tc := range cases {
		wrapped := fmt.Errorf("outer: %w", tc.err)
		if !errors.Is(wrapped, tc.sentinel) {
			t.Fatalf("%T should unwrap to %v", tc.err, tc.sentinel)
		}
	}
}

func TestInvalidDomainValueErrorNamesValue(t *testing.T) {
	err := error(&InvalidDomainValueError{Field: "asset", Value: "invalid-asset", Reason: "missing issuer"})

	var target *InvalidDomainValueError
	if !errors.As(err, &target) {
		t.Fatalf("errors.As failed")
	}
	if target.Value != "invalid-asset" {
		t.Fatalf("value mismatch: %s", target.Value)
	}
	if !strings.Contains(err.Error(), "invalid-asset") {
		t.Fatalf("message should name the value: %s", err.Error())
	}
}
