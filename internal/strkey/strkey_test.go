package strkey

import (
	"strings"
	"testing"
)

func key(fill byte) [32]byte {
	var k [32]byte
	for i := range k {
		k[i] = fill + byte(i)
	}
	return k
}

func TestEncodeValidate(t *testing.T) {
	account := EncodeAccount(key(1))
	contract := EncodeContract(key(2))
	muxed := EncodeMuxed(key(3), 42)

	if !strings.HasPrefix(account, "G") || len(account) != 56 {
		t.Fatalf("unexpected account form: %s", account)
	}
	if !strings.HasPrefix(contract, "C") || len(contract) != 56 {
		t.Fatalf("unexpected contract form: %s", contract)
	}
	if !strings.HasPrefix(muxed, "M") || len(muxed) != 69 {
		t.Fatalf("unexpected muxed form: %s", muxed)
	}

	if !IsValidAccountAddress(account) || IsValidContractAddress(account) {
		t.Fatalf("account classification wrong")
	}
	if !IsValidContractAddress(contract) || IsValidAccountAddress(contract) {
		t.Fatalf("contract classification wrong")
	}
	if !IsValidMuxedAddress(muxed) || IsValidAccountAddress(muxed) {
		t.Fatalf("muxed classification wrong")
	}
}

func TestRejectsCorruptChecksum(t *testing.T) {
	account := EncodeAccount(key(7))
	runes := []byte(account)
	if runes[10] == 'A' {
		runes[10] = 'B'
	} else {
		runes[10] = 'A'
	}
	if IsValidAccountAddress(string(runes)) {
		t.Fatalf("corrupted address accepted")
	}
}

func TestRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "G", "not-an-address", strings.Repeat("A", 56), "0x1111111111111111111111111111111111111111"} {
		if IsValidAccountAddress(input) || IsValidContractAddress(input) || IsValidMuxedAddress(input) {
			t.Errorf("accepted %q", input)
		}
	}
}

func TestValidatorDelegates(t *testing.T) {
	v := Validator{}
	if !v.IsValidAccountAddress(EncodeAccount(key(9))) {
		t.Fatalf("validator rejected account")
	}
	if !v.IsValidContractAddress(EncodeContract(key(9))) {
		t.Fatalf("validator rejected contract")
	}
}
