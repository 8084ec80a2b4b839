package scval

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Codec converts opaque wire values to and from tagged values. Implementations
// must be safe for concurrent use.
type Codec interface {
	Decode(raw string) (Value, error)
	Encode(native any, hint Kind) (string, error)
}

// MaxSymbolLength is the longest symbol the ledger accepts.
const MaxSymbolLength = 32

// JSONCodec reads and writes the tagged-JSON wire form:
//
//	{"type":"symbol","value":"transfer"}
//	{"type":"i128","value":"1000000"}
//	{"type":"bytes","value":"0xdeadbeef"}
//	{"type":"vec","value":[{"type":"u32","value":1}]}
//	{"type":"map","value":[{"key":{"type":"symbol","value":"amount"},"val":{...}}]}
//
// It holds no state.
type JSONCodec struct{}

type wireValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

type wireEntry struct {
	Key json.RawMessage `json:"key"`
	Val json.RawMessage `json:"val"`
}

// Decode parses one wire value.
func (JSONCodec) Decode(raw string) (Value, error) {
	return decodeWire(json.RawMessage(raw))
}

// Encode converts native using hint and renders it.
func (c JSONCodec) Encode(native any, hint Kind) (string, error) {
	v, err := Convert(native, hint)
	if err != nil {
		return "", err
	}
	return c.EncodeValue(v)
}

// EncodeValue renders an already tagged value.
func (JSONCodec) EncodeValue(v Value) (string, error) {
	wire, err := toWire(v)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", v.kind, err)
	}
	return string(out), nil
}

func decodeWire(raw json.RawMessage) (Value, error) {
	var wire wireValue
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Value{}, fmt.Errorf("parse value: %w", err)
	}
	kind, ok := ParseKind(wire.Type)
	if !ok {
		return Value{}, fmt.Errorf("unsupported value type %q", wire.Type)
	}

	switch kind {
	case KindVoid:
		return Void(), nil
	case KindBool:
		var b bool
		if err := json.Unmarshal(wire.Value, &b); err != nil {
			return Value{}, fmt.Errorf("bool: %w", err)
		}
		return Bool(b), nil
	case KindBytes:
		var text string
		if err := json.Unmarshal(wire.Value, &text); err != nil {
			return Value{}, fmt.Errorf("bytes: %w", err)
		}
		data, err := hexutil.Decode(text)
		if err != nil {
			return Value{}, fmt.Errorf("bytes: %w", err)
		}
		return Bytes(data), nil
	case KindString, KindSymbol, KindAddress:
		var text string
		if err := json.Unmarshal(wire.Value, &text); err != nil {
			return Value{}, fmt.Errorf("%s: %w", kind, err)
		}
		return textValue(kind, text)
	case KindVec:
		var items []json.RawMessage
		if err := json.Unmarshal(wire.Value, &items); err != nil {
			return Value{}, fmt.Errorf("vec: %w", err)
		}
		values := make([]Value, 0, len(items))
		for i, item := range items {
			v, err := decodeWire(item)
			if err != nil {
				return Value{}, fmt.Errorf("vec[%d]: %w", i, err)
			}
			values = append(values, v)
		}
		return Value{kind: KindVec, items: values}, nil
	case KindMap:
		var entries []wireEntry
		if err := json.Unmarshal(wire.Value, &entries); err != nil {
			return Value{}, fmt.Errorf("map: %w", err)
		}
		pairs := make([]MapEntry, 0, len(entries))
		for i, entry := range entries {
			key, err := decodeWire(entry.Key)
			if err != nil {
				return Value{}, fmt.Errorf("map[%d] key: %w", i, err)
			}
			val, err := decodeWire(entry.Val)
			if err != nil {
				return Value{}, fmt.Errorf("map[%d] val: %w", i, err)
			}
			pairs = append(pairs, MapEntry{Key: key, Val: val})
		}
		return Value{kind: KindMap, pairs: pairs}, nil
	default:
		n, err := parseWireInt(wire.Value)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", kind, err)
		}
		if !fitsKind(kind, n) {
			return Value{}, fmt.Errorf("%s: %s out of range", kind, n.String())
		}
		return Value{kind: kind, n: n}, nil
	}
}

func parseWireInt(raw json.RawMessage) (*big.Int, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
	}
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", text)
	}
	return n, nil
}

func toWire(v Value) (any, error) {
	switch v.kind {
	case KindVoid:
		return wireValue{Type: v.kind.String()}, nil
	case KindBool:
		return map[string]any{"type": v.kind.String(), "value": v.b}, nil
	case KindU32, KindI32:
		return map[string]any{"type": v.kind.String(), "value": v.n.Int64()}, nil
	case KindBytes:
		return map[string]any{"type": v.kind.String(), "value": hexutil.Encode(v.raw)}, nil
	case KindString, KindSymbol, KindAddress:
		return map[string]any{"type": v.kind.String(), "value": v.text}, nil
	case KindVec:
		items := make([]any, 0, len(v.items))
		for _, item := range v.items {
			w, err := toWire(item)
			if err != nil {
				return nil, err
			}
			items = append(items, w)
		}
		return map[string]any{"type": v.kind.String(), "value": items}, nil
	case KindMap:
		entries := make([]any, 0, len(v.pairs))
		for _, entry := range v.pairs {
			key, err := toWire(entry.Key)
			if err != nil {
				return nil, err
			}
			val, err := toWire(entry.Val)
			if err != nil {
				return nil, err
			}
			entries = append(entries, map[string]any{"key": key, "val": val})
		}
		return map[string]any{"type": v.kind.String(), "value": entries}, nil
	default:
		if v.n == nil {
			return nil, fmt.Errorf("%s: missing integer payload", v.kind)
		}
		return map[string]any{"type": v.kind.String(), "value": v.n.String()}, nil
	}
}

// Convert builds a tagged value of kind hint from a plain Go value. A Value
// argument is accepted when its kind equals hint.
func Convert(native any, hint Kind) (Value, error) {
	if v, ok := native.(Value); ok {
		if v.kind != hint {
			return Value{}, fmt.Errorf("value of type %s does not match %s", v.kind, hint)
		}
		return v, nil
	}

	switch hint {
	case KindVoid:
		if native != nil {
			return Value{}, fmt.Errorf("void: unexpected %T", native)
		}
		return Void(), nil
	case KindBool:
		b, ok := native.(bool)
		if !ok {
			return Value{}, fmt.Errorf("bool: unsupported %T", native)
		}
		return Bool(b), nil
	case KindBytes:
		switch b := native.(type) {
		case []byte:
			return Bytes(b), nil
		case string:
			data, err := hexutil.Decode(b)
			if err != nil {
				return Value{}, fmt.Errorf("bytes: %w", err)
			}
			return Bytes(data), nil
		default:
			return Value{}, fmt.Errorf("bytes: unsupported %T", native)
		}
	case KindString, KindSymbol, KindAddress:
		s, ok := native.(string)
		if !ok {
			return Value{}, fmt.Errorf("%s: unsupported %T", hint, native)
		}
		return textValue(hint, s)
	case KindVec:
		switch items := native.(type) {
		case []Value:
			return Vec(items...), nil
		case []any:
			values := make([]Value, 0, len(items))
			for i, item := range items {
				v, ok := item.(Value)
				if !ok {
					return Value{}, fmt.Errorf("vec[%d]: untyped %T", i, item)
				}
				values = append(values, v)
			}
			return Vec(values...), nil
		default:
			return Value{}, fmt.Errorf("vec: unsupported %T", native)
		}
	case KindMap:
		switch m := native.(type) {
		case []MapEntry:
			return Map(m...), nil
		case map[string]Value:
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			entries := make([]MapEntry, 0, len(keys))
			for _, k := range keys {
				entries = append(entries, Entry(k, m[k]))
			}
			return Map(entries...), nil
		default:
			return Value{}, fmt.Errorf("map: unsupported %T", native)
		}
	default:
		n, err := toBigInt(native)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", hint, err)
		}
		return bigValue(hint, n)
	}
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil integer")
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case string:
		n, ok := new(big.Int).SetString(strings.TrimSpace(v), 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func textValue(kind Kind, text string) (Value, error) {
	switch kind {
	case KindSymbol:
		if !validSymbol(text) {
			return Value{}, fmt.Errorf("invalid symbol %q", text)
		}
	case KindAddress:
		if text == "" {
			return Value{}, fmt.Errorf("empty address")
		}
	}
	return Value{kind: kind, text: text}, nil
}

func validSymbol(s string) bool {
	if len(s) > MaxSymbolLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
