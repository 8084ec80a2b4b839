package asset

import (
	"testing"

	"tokenscope/internal/strkey"
)

func TestParse(t *testing.T) {
	issuer := strkey.EncodeAccount([32]byte{1, 2, 3})

	native, err := Parse("native")
	if err != nil {
		t.Fatalf("parse native: %v", err)
	}
	if !native.IsNative() || native.String() != "native" {
		t.Fatalf("native mismatch: %+v", native)
	}

	usdc, err := Parse("USDC:" + issuer)
	if err != nil {
		t.Fatalf("parse usdc: %v", err)
	}
	if usdc.Code != "USDC" || usdc.Issuer != issuer {
		t.Fatalf("descriptor mismatch: %+v", usdc)
	}
	if usdc.String() != "USDC:"+issuer {
		t.Fatalf("string mismatch: %s", usdc.String())
	}
}

func TestParseRejects(t *testing.T) {
	issuer := strkey.EncodeAccount([32]byte{1, 2, 3})
	contract := strkey.EncodeContract([32]byte{1, 2, 3})

	cases := []string{
		"invalid-asset",
		"",
		"Native",
		":" + issuer,
		"TOOLONGASSETCODE:" + issuer,
		"US-DC:" + issuer,
		"USDC:" + contract,
		"USDC:",
	}
	for _, input := range cases {
		if IsValid(input) {
			t.Errorf("accepted %q", input)
		}
	}
}
