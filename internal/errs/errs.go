package errs

import (
	"errors"
	"fmt"
)

var (
	ErrFormat             = errors.New("malformed value")
	ErrRange              = errors.New("value out of range")
	ErrMissingField       = errors.New("missing required field")
	ErrUnknownKind        = errors.New("unknown event kind")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrInvalidDomainValue = errors.New("invalid domain value")
)

// FormatError reports a string that does not have the expected syntax.
type FormatError struct {
	What  string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.What, e.Value)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// RangeError reports a numeric input outside its allowed bounds.
type RangeError struct {
	What  string
	Value string
	Min   string
	Max   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s out of range [%s, %s]", e.What, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// MissingFieldError reports a required field that was not supplied.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// UnknownKindError reports an event kind discriminator outside the known set.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown event kind %q", e.Kind)
}

func (e *UnknownKindError) Unwrap() error { return ErrUnknownKind }

// SchemaMismatchError reports a strict extraction against a record that does not
// have the schema's shape.
type SchemaMismatchError struct {
	Schema   string
	RecordID string
	Reason   string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("event %s does not match schema %s: %s", e.RecordID, e.Schema, e.Reason)
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }

// InvalidDomainValueError reports a structurally valid value that fails semantic
// validation, e.g. a malformed asset descriptor.
type InvalidDomainValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidDomainValueError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidDomainValueError) Unwrap() error { return ErrInvalidDomainValue }
