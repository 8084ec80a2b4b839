// Package scval models the tagged native values carried by contract event
// topics and payloads, and defines the codec boundary that turns opaque wire
// values into them.
package scval

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"
)

// Kind is the type tag of a Value.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindU32
	KindI32
	KindU64
	KindI64
	KindTimepoint
	KindDuration
	KindU128
	KindI128
	KindU256
	KindI256
	KindBytes
	KindString
	KindSymbol
	KindVec
	KindMap
	KindAddress
)

var kindNames = map[Kind]string{
	KindVoid:      "void",
	KindBool:      "bool",
	KindU32:       "u32",
	KindI32:       "i32",
	KindU64:       "u64",
	KindI64:       "i64",
	KindTimepoint: "timepoint",
	KindDuration:  "duration",
	KindU128:      "u128",
	KindI128:      "i128",
	KindU256:      "u256",
	KindI256:      "i256",
	KindBytes:     "bytes",
	KindString:    "string",
	KindSymbol:    "symbol",
	KindVec:       "vec",
	KindMap:       "map",
	KindAddress:   "address",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a type name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindVoid, false
}

// IsInteger reports whether the kind carries an integer payload.
func (k Kind) IsInteger() bool {
	switch k {
	case KindU32, KindI32, KindU64, KindI64, KindTimepoint, KindDuration, KindU128, KindI128, KindU256, KindI256:
		return true
	default:
		return false
	}
}

// MapEntry is one key/value pair of a map value. Entry order is preserved.
type MapEntry struct {
	Key Value
	Val Value
}

// Value is an immutable tagged value. The zero Value is void.
type Value struct {
	kind  Kind
	b     bool
	n     *big.Int
	raw   []byte
	text  string
	items []Value
	pairs []MapEntry
}

func Void() Value              { return Value{kind: KindVoid} }
func Bool(v bool) Value        { return Value{kind: KindBool, b: v} }
func U32(v uint32) Value       { return Value{kind: KindU32, n: new(big.Int).SetUint64(uint64(v))} }
func I32(v int32) Value        { return Value{kind: KindI32, n: big.NewInt(int64(v))} }
func U64(v uint64) Value       { return Value{kind: KindU64, n: new(big.Int).SetUint64(v)} }
func I64(v int64) Value        { return Value{kind: KindI64, n: big.NewInt(v)} }
func Timepoint(v uint64) Value { return Value{kind: KindTimepoint, n: new(big.Int).SetUint64(v)} }
func Duration(v uint64) Value  { return Value{kind: KindDuration, n: new(big.Int).SetUint64(v)} }
func String(v string) Value    { return Value{kind: KindString, text: v} }
func Symbol(v string) Value    { return Value{kind: KindSymbol, text: v} }
func Address(v string) Value   { return Value{kind: KindAddress, text: v} }

// Bytes copies v.
func Bytes(v []byte) Value {
	return Value{kind: KindBytes, raw: append([]byte(nil), v...)}
}

// I128 and friends copy v and check it against the kind's bit width.
func U128(v *big.Int) (Value, error) { return bigValue(KindU128, v) }
func I128(v *big.Int) (Value, error) { return bigValue(KindI128, v) }
func U256(v *big.Int) (Value, error) { return bigValue(KindU256, v) }
func I256(v *big.Int) (Value, error) { return bigValue(KindI256, v) }

// MustI128 is I128 for literals known to fit.
func MustI128(v int64) Value {
	out, err := I128(big.NewInt(v))
	if err != nil {
		panic(err)
	}
	return out
}

// Vec copies items.
func Vec(items ...Value) Value {
	return Value{kind: KindVec, items: append([]Value{}, items...)}
}

// Map copies entries.
func Map(entries ...MapEntry) Value {
	return Value{kind: KindMap, pairs: append([]MapEntry{}, entries...)}
}

// Entry is shorthand for a symbol-keyed map entry.
func Entry(key string, val Value) MapEntry {
	return MapEntry{Key: Symbol(key), Val: val}
}

func bigValue(kind Kind, v *big.Int) (Value, error) {
	if v == nil {
		return Value{}, fmt.Errorf("%s: nil integer", kind)
	}
	if !fitsKind(kind, v) {
		return Value{}, fmt.Errorf("%s: %s out of range", kind, v.String())
	}
	return Value{kind: kind, n: new(big.Int).Set(v)}, nil
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind { return v.kind }

// IsVoid reports whether v is the void value.
func (v Value) IsVoid() bool { return v.kind == KindVoid }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsBigInt returns a copy of the integer payload for any integer kind.
func (v Value) AsBigInt() (*big.Int, bool) {
	if !v.kind.IsInteger() || v.n == nil {
		return nil, false
	}
	return new(big.Int).Set(v.n), true
}

// AsUint32 returns the payload of a u32 value.
func (v Value) AsUint32() (uint32, bool) {
	if v.kind != KindU32 {
		return 0, false
	}
	return uint32(v.n.Uint64()), true
}

// AsUint64 returns the payload of u32, u64, timepoint and duration values.
func (v Value) AsUint64() (uint64, bool) {
	switch v.kind {
	case KindU32, KindU64, KindTimepoint, KindDuration:
		return v.n.Uint64(), true
	default:
		return 0, false
	}
}

// AsText returns the payload of string, symbol and address values.
func (v Value) AsText() (string, bool) {
	switch v.kind {
	case KindString, KindSymbol, KindAddress:
		return v.text, true
	default:
		return "", false
	}
}

// AsSymbol returns the payload of a symbol value.
func (v Value) AsSymbol() (string, bool) {
	if v.kind != KindSymbol {
		return "", false
	}
	return v.text, true
}

// AsAddress returns the payload of an address value.
func (v Value) AsAddress() (string, bool) {
	if v.kind != KindAddress {
		return "", false
	}
	return v.text, true
}

// AsBytes returns a copy of the bytes payload.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return append([]byte(nil), v.raw...), true
}

// AsVec returns a copy of the vector items.
func (v Value) AsVec() ([]Value, bool) {
	if v.kind != KindVec {
		return nil, false
	}
	return append([]Value{}, v.items...), true
}

// AsMap returns a copy of the map entries.
func (v Value) AsMap() ([]MapEntry, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return append([]MapEntry{}, v.pairs...), true
}

// Field looks up a map entry whose key is a symbol or string equal to name.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	for _, entry := range v.pairs {
		if key, ok := entry.Key.AsText(); ok && entry.Key.kind != KindAddress && key == name {
			return entry.Val, true
		}
	}
	return Value{}, false
}

// Equal reports deep equality including kinds.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindVoid:
		return true
	case KindBool:
		return v.b == other.b
	case KindBytes:
		return bytes.Equal(v.raw, other.raw)
	case KindString, KindSymbol, KindAddress:
		return v.text == other.text
	case KindVec:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.pairs) != len(other.pairs) {
			return false
		}
		for i := range v.pairs {
			if !v.pairs[i].Key.Equal(other.pairs[i].Key) || !v.pairs[i].Val.Equal(other.pairs[i].Val) {
				return false
			}
		}
		return true
	default:
		return v.n.Cmp(other.n) == 0
	}
}

// Native converts v into plain Go values: bool, uint32, int32, uint64, int64,
// *big.Int (128/256-bit), []byte, string, []any and map[string]any. Map keys
// are rendered with String when they are not text.
func (v Value) Native() any {
	switch v.kind {
	case KindVoid:
		return nil
	case KindBool:
		return v.b
	case KindU32:
		return uint32(v.n.Uint64())
	case KindI32:
		return int32(v.n.Int64())
	case KindU64, KindTimepoint, KindDuration:
		return v.n.Uint64()
	case KindI64:
		return v.n.Int64()
	case KindU128, KindI128, KindU256, KindI256:
		return new(big.Int).Set(v.n)
	case KindBytes:
		return append([]byte(nil), v.raw...)
	case KindString, KindSymbol, KindAddress:
		return v.text
	case KindVec:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.Native())
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.pairs))
		for _, entry := range v.pairs {
			key, ok := entry.Key.AsText()
			if !ok {
				key = entry.Key.String()
			}
			out[key] = entry.Val.Native()
		}
		return out
	default:
		return nil
	}
}

// String renders v for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindVoid:
		return "void"
	case KindBool:
		return fmt.Sprintf("bool(%t)", v.b)
	case KindBytes:
		return fmt.Sprintf("bytes(%x)", v.raw)
	case KindString:
		return fmt.Sprintf("string(%q)", v.text)
	case KindSymbol:
		return fmt.Sprintf("symbol(%s)", v.text)
	case KindAddress:
		return fmt.Sprintf("address(%s)", v.text)
	case KindVec:
		parts := make([]string, 0, len(v.items))
		for _, item := range v.items {
			parts = append(parts, item.String())
		}
		return "vec[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, 0, len(v.pairs))
		for _, entry := range v.pairs {
			parts = append(parts, entry.Key.String()+": "+entry.Val.String())
		}
		return "map{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%s(%s)", v.kind, v.n.String())
	}
}
