package scval

import (
	"math/big"
	"strings"
	"testing"
)

func TestJSONCodecRoundTrip(t *testing.T) {
	huge, _ := new(big.Int).SetString("-170141183460469231731687303715884105728", 10)
	i128Min, err := I128(huge)
	if err != nil {
		t.Fatalf("i128 min: %v", err)
	}

	values := []Value{
		Void(),
		Bool(true),
		U32(7),
		I32(-7),
		U64(1 << 40),
		I64(-1 << 40),
		Timepoint(1700000000),
		Duration(3600),
		MustI128(1_000_000),
		i128Min,
		Bytes([]byte{0xde, 0xad, 0xbe, 0xef}),
		String("USDC:GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"),
		Symbol("transfer"),
		Address("GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"),
		Vec(MustI128(100), U32(500)),
		Map(Entry("amount", MustI128(100)), Entry("to_muxed_id", U64(5))),
	}

	codec := JSONCodec{}
	for _, want := range values {
		raw, err := codec.EncodeValue(want)
		if err != nil {
			t.Fatalf("encode %s: %v", want, err)
		}
		got, err := codec.Decode(raw)
		if err != nil {
			t.Fatalf("decode %s (%s): %v", want, raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("round-trip mismatch: %s != %s", got, want)
		}
	}
}

func TestJSONCodecDecodeRejectsOutOfRange(t *testing.T) {
	codec := JSONCodec{}
	cases := []string{
		`{"type":"u32","value":4294967296}`,
		`{"type":"i32","value":"-2147483649"}`,
		`{"type":"u128","value":"-1"}`,
		`{"type":"i128","value":"170141183460469231731687303715884105728"}`,
		`{"type":"bytes","value":"deadbeef"}`,
		`{"type":"symbol","value":"has space"}`,
		`{"type":"float","value":1.5}`,
		`not json`,
	}
	for _, raw := range cases {
		if _, err := codec.Decode(raw); err == nil {
			t.Errorf("expected error for %s", raw)
		}
	}
}

func TestJSONCodecEncodeUsesHint(t *testing.T) {
	codec := JSONCodec{}

	raw, err := codec.Encode("mint", KindSymbol)
	if err != nil {
		t.Fatalf("encode symbol: %v", err)
	}
	if raw != `{"type":"symbol","value":"mint"}` {
		t.Fatalf("unexpected symbol encoding: %s", raw)
	}

	raw, err = codec.Encode(int64(42), KindI128)
	if err != nil {
		t.Fatalf("encode i128: %v", err)
	}
	if raw != `{"type":"i128","value":"42"}` {
		t.Fatalf("unexpected i128 encoding: %s", raw)
	}

	if _, err := codec.Encode(U32(1), KindI128); err == nil {
		t.Fatalf("expected kind mismatch error")
	}
	if _, err := codec.Encode(12, KindAddress); err == nil {
		t.Fatalf("expected unsupported type error")
	}
}

func TestValueFieldAndNative(t *testing.T) {
	v := Map(Entry("amount", MustI128(100)), Entry("to_muxed_id", U64(5)))

	amount, ok := v.Field("amount")
	if !ok {
		t.Fatalf("amount missing")
	}
	n, ok := amount.AsBigInt()
	if !ok || n.Int64() != 100 {
		t.Fatalf("amount mismatch: %s", amount)
	}
	if _, ok := v.Field("missing"); ok {
		t.Fatalf("unexpected field")
	}
	if _, ok := MustI128(1).Field("amount"); ok {
		t.Fatalf("non-map values have no fields")
	}

	native, ok := v.Native().(map[string]any)
	if !ok {
		t.Fatalf("native type mismatch: %T", v.Native())
	}
	if native["to_muxed_id"] != uint64(5) {
		t.Fatalf("native muxed id mismatch: %v", native["to_muxed_id"])
	}
	if got := native["amount"].(*big.Int); got.Int64() != 100 {
		t.Fatalf("native amount mismatch: %s", got)
	}
}

func TestValueAccessorsAreCopies(t *testing.T) {
	raw := []byte{1, 2, 3}
	v := Bytes(raw)
	raw[0] = 9

	got, _ := v.AsBytes()
	if got[0] != 1 {
		t.Fatalf("bytes value aliased its input")
	}
	got[1] = 9
	again, _ := v.AsBytes()
	if again[1] != 2 {
		t.Fatalf("bytes accessor aliased internal state")
	}

	n := big.NewInt(5)
	i, err := I128(n)
	if err != nil {
		t.Fatalf("i128: %v", err)
	}
	n.SetInt64(6)
	if out, _ := i.AsBigInt(); out.Int64() != 5 {
		t.Fatalf("i128 value aliased its input")
	}
}

func TestValueString(t *testing.T) {
	v := Vec(Symbol("mint"), Address("GABC"), MustI128(10))
	s := v.String()
	for _, part := range []string{"symbol(mint)", "address(GABC)", "i128(10)"} {
		if !strings.Contains(s, part) {
			t.Fatalf("%q missing %q", s, part)
		}
	}
}
