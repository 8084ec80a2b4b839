// Package schema declares event shapes and matches, extracts and filters
// records against them.
package schema

import (
	"errors"
	"fmt"

	"tokenscope/internal/scval"
)

// MaxTopicFields is the topic budget left after the name symbol.
const MaxTopicFields = 3

var (
	ErrUnknownField = errors.New("unknown field")
	ErrFieldType    = errors.New("field type mismatch")
)

// FieldType is the declared type of a schema field.
type FieldType string

const (
	TypeAddress   FieldType = "address"
	TypeBool      FieldType = "bool"
	TypeBytes     FieldType = "bytes"
	TypeI32       FieldType = "i32"
	TypeU32       FieldType = "u32"
	TypeI64       FieldType = "i64"
	TypeU64       FieldType = "u64"
	TypeI128      FieldType = "i128"
	TypeU128      FieldType = "u128"
	TypeI256      FieldType = "i256"
	TypeU256      FieldType = "u256"
	TypeString    FieldType = "string"
	TypeSymbol    FieldType = "symbol"
	TypeTimepoint FieldType = "timepoint"
	TypeDuration  FieldType = "duration"
	TypeVec       FieldType = "vec"
	TypeMap       FieldType = "map"
)

var fieldKinds = map[FieldType]scval.Kind{
	TypeAddress:   scval.KindAddress,
	TypeBool:      scval.KindBool,
	TypeBytes:     scval.KindBytes,
	TypeI32:       scval.KindI32,
	TypeU32:       scval.KindU32,
	TypeI64:       scval.KindI64,
	TypeU64:       scval.KindU64,
	TypeI128:      scval.KindI128,
	TypeU128:      scval.KindU128,
	TypeI256:      scval.KindI256,
	TypeU256:      scval.KindU256,
	TypeString:    scval.KindString,
	TypeSymbol:    scval.KindSymbol,
	TypeTimepoint: scval.KindTimepoint,
	TypeDuration:  scval.KindDuration,
	TypeVec:       scval.KindVec,
	TypeMap:       scval.KindMap,
}

// Kind is the codec type hint used when encoding a value of this field type.
func (t FieldType) Kind() (scval.Kind, bool) {
	k, ok := fieldKinds[t]
	return k, ok
}

// Valid reports whether t is part of the field type enumeration.
func (t FieldType) Valid() bool {
	_, ok := fieldKinds[t]
	return ok
}

// Field is a named, typed slot of a schema.
type Field struct {
	Name string    `json:"name" yaml:"name"`
	Type FieldType `json:"type" yaml:"type"`
}

// Schema describes one event shape: a name symbol as topic 0, up to three
// typed topic fields and one typed value field.
type Schema struct {
	Name   string  `json:"name" yaml:"name"`
	Topics []Field `json:"topics" yaml:"topics"`
	Value  Field   `json:"value" yaml:"value"`
}

// TopicCount is the number of topics a matching record carries.
func (s Schema) TopicCount() int {
	return 1 + len(s.Topics)
}

// TopicField looks up a topic field by name.
func (s Schema) TopicField(name string) (Field, int, bool) {
	for i, f := range s.Topics {
		if f.Name == name {
			return f, i, true
		}
	}
	return Field{}, -1, false
}

// Validate checks the structural rules of a definition.
func (s Schema) Validate() error {
	if _, err := scval.Convert(s.Name, scval.KindSymbol); err != nil || s.Name == "" {
		return fmt.Errorf("schema name %q is not a symbol", s.Name)
	}
	if len(s.Topics) > MaxTopicFields {
		return fmt.Errorf("schema %s declares %d topic fields, max %d", s.Name, len(s.Topics), MaxTopicFields)
	}

	seen := make(map[string]struct{}, len(s.Topics)+1)
	for _, f := range append(append([]Field{}, s.Topics...), s.Value) {
		if f.Name == "" {
			return fmt.Errorf("schema %s has an unnamed field", s.Name)
		}
		if !f.Type.Valid() {
			return fmt.Errorf("schema %s field %s has unknown type %q", s.Name, f.Name, f.Type)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("schema %s declares field %s twice", s.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// MustDefine returns s, panicking when it is invalid. Use for package-level
// schema constants only.
func MustDefine(s Schema) Schema {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}

// Topic and Val are shorthand for building Field literals.
func Topic(name string, t FieldType) Field { return Field{Name: name, Type: t} }
func Val(name string, t FieldType) Field   { return Field{Name: name, Type: t} }
