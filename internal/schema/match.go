package schema

import (
	"fmt"

	"tokenscope/internal/errs"
	"tokenscope/internal/scval"
)

// Source is anything that can be decoded into topics and a value.
// *event.Record implements it.
type Source interface {
	ID() string
	Topics() ([]scval.Value, error)
	Value() (scval.Value, error)
}

type shape int

const (
	shapeNone shape = iota
	shapeAddress
	shapeBool
	shapeBytes
	shapeSmallInt
	shapeBigInt
	shapeText
	shapeVec
	shapeMap
)

// Compatibility is decided by runtime shape class, not exact tag: i32/u32
// share a class, the 64-bit and wider integers (plus timepoint and duration)
// share another, and string/symbol share the text class.
func kindShape(k scval.Kind) shape {
	switch k {
	case scval.KindAddress:
		return shapeAddress
	case scval.KindBool:
		return shapeBool
	case scval.KindBytes:
		return shapeBytes
	case scval.KindI32, scval.KindU32:
		return shapeSmallInt
	case scval.KindI64, scval.KindU64, scval.KindI128, scval.KindU128,
		scval.KindI256, scval.KindU256, scval.KindTimepoint, scval.KindDuration:
		return shapeBigInt
	case scval.KindString, scval.KindSymbol:
		return shapeText
	case scval.KindVec:
		return shapeVec
	case scval.KindMap:
		return shapeMap
	default:
		return shapeNone
	}
}

func compatible(v scval.Value, t FieldType) bool {
	k, ok := t.Kind()
	if !ok {
		return false
	}
	want := kindShape(k)
	return want != shapeNone && kindShape(v.Kind()) == want
}

type walkResult struct {
	topics []scval.Value
	value  scval.Value
}

// walk performs the structural checks shared by Matches and Extract. On
// failure it returns a short reason.
func walk(src Source, s Schema) (walkResult, string) {
	if src == nil {
		return walkResult{}, "nil record"
	}
	topics, err := src.Topics()
	if err != nil {
		return walkResult{}, err.Error()
	}
	if len(topics) != s.TopicCount() {
		return walkResult{}, fmt.Sprintf("expected %d topics, got %d", s.TopicCount(), len(topics))
	}
	name, ok := topics[0].AsSymbol()
	if !ok {
		return walkResult{}, fmt.Sprintf("topic 0 is %s, not a symbol", topics[0].Kind())
	}
	if name != s.Name {
		return walkResult{}, fmt.Sprintf("event name %q", name)
	}
	for i, field := range s.Topics {
		if !compatible(topics[i+1], field.Type) {
			return walkResult{}, fmt.Sprintf("topic %s is %s, want %s", field.Name, topics[i+1].Kind(), field.Type)
		}
	}
	value, err := src.Value()
	if err != nil {
		return walkResult{}, err.Error()
	}
	if !compatible(value, s.Value.Type) {
		return walkResult{}, fmt.Sprintf("value %s is %s, want %s", s.Value.Name, value.Kind(), s.Value.Type)
	}
	return walkResult{topics: topics, value: value}, ""
}

// Matches reports whether src has the shape of s. It never fails: decode
// errors and shape mismatches are both false.
func Matches(src Source, s Schema) bool {
	_, reason := walk(src, s)
	return reason == ""
}

// Extract returns the fields of src declared by s, or a SchemaMismatchError.
func Extract(src Source, s Schema) (Extracted, error) {
	res, reason := walk(src, s)
	if reason != "" {
		id := ""
		if src != nil {
			id = src.ID()
		}
		return Extracted{}, &errs.SchemaMismatchError{Schema: s.Name, RecordID: id, Reason: reason}
	}

	values := make(map[string]scval.Value, len(s.Topics)+1)
	for i, field := range s.Topics {
		values[field.Name] = res.topics[i+1]
	}
	values[s.Value.Name] = res.value

	return Extracted{schema: s, recordID: src.ID(), values: values}, nil
}

// TryExtract is Extract for speculative probing: a mismatch yields false.
func TryExtract(src Source, s Schema) (Extracted, bool) {
	out, err := Extract(src, s)
	if err != nil {
		return Extracted{}, false
	}
	return out, true
}
