package schema

import (
	"fmt"
	"math/big"

	"tokenscope/internal/scval"
)

// Extracted maps field names to the decoded values of one matching record.
// It only guarantees structural shape; semantic checks belong to the typed
// accessors layered on top.
type Extracted struct {
	schema   Schema
	recordID string
	values   map[string]scval.Value
}

// Schema returns the schema the fields were extracted with.
func (e Extracted) Schema() Schema { return e.schema }

// RecordID returns the identifier of the source record.
func (e Extracted) RecordID() string { return e.recordID }

// Names lists field names in declaration order, value field last.
func (e Extracted) Names() []string {
	names := make([]string, 0, len(e.schema.Topics)+1)
	for _, f := range e.schema.Topics {
		names = append(names, f.Name)
	}
	if e.schema.Value.Name != "" {
		names = append(names, e.schema.Value.Name)
	}
	return names
}

// Value returns the tagged value of a field.
func (e Extracted) Value(name string) (scval.Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Native returns a field as a plain Go value.
func (e Extracted) Native(name string) (any, error) {
	v, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	return v.Native(), nil
}

// Map returns all fields as plain Go values.
func (e Extracted) Map() map[string]any {
	out := make(map[string]any, len(e.values))
	for name, v := range e.values {
		out[name] = v.Native()
	}
	return out
}

// Address returns an address-typed field.
func (e Extracted) Address(name string) (string, error) {
	v, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	s, ok := v.AsAddress()
	if !ok {
		return "", e.typeErr(name, v, "address")
	}
	return s, nil
}

// BigInt returns any integer-typed field.
func (e Extracted) BigInt(name string) (*big.Int, error) {
	v, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	n, ok := v.AsBigInt()
	if !ok {
		return nil, e.typeErr(name, v, "integer")
	}
	return n, nil
}

// Uint32 returns a u32 field.
func (e Extracted) Uint32(name string) (uint32, error) {
	v, err := e.lookup(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.AsUint32()
	if !ok {
		return 0, e.typeErr(name, v, "u32")
	}
	return n, nil
}

// Bool returns a bool field.
func (e Extracted) Bool(name string) (bool, error) {
	v, err := e.lookup(name)
	if err != nil {
		return false, err
	}
	b, ok := v.AsBool()
	if !ok {
		return false, e.typeErr(name, v, "bool")
	}
	return b, nil
}

// Text returns a string or symbol field.
func (e Extracted) Text(name string) (string, error) {
	v, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	if v.Kind() != scval.KindString && v.Kind() != scval.KindSymbol {
		return "", e.typeErr(name, v, "string")
	}
	s, _ := v.AsText()
	return s, nil
}

// Bytes returns a bytes field.
func (e Extracted) Bytes(name string) ([]byte, error) {
	v, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	b, ok := v.AsBytes()
	if !ok {
		return nil, e.typeErr(name, v, "bytes")
	}
	return b, nil
}

func (e Extracted) lookup(name string) (scval.Value, error) {
	v, ok := e.values[name]
	if !ok {
		return scval.Value{}, fmt.Errorf("%w %q in schema %s", ErrUnknownField, name, e.schema.Name)
	}
	return v, nil
}

func (e Extracted) typeErr(name string, v scval.Value, want string) error {
	return fmt.Errorf("%w: %s.%s is %s, not %s", ErrFieldType, e.schema.Name, name, v.Kind(), want)
}
