package asset

import (
	"fmt"
	"strings"

	"tokenscope/internal/strkey"
)

// Native is the descriptor of the ledger's native asset.
const Native = "native"

const maxCodeLength = 12

// Descriptor is a parsed canonical asset descriptor.
type Descriptor struct {
	Code   string `json:"code,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

// IsNative reports whether d names the native asset.
func (d Descriptor) IsNative() bool {
	return d.Code == "" && d.Issuer == ""
}

// String renders d in canonical form.
func (d Descriptor) String() string {
	if d.IsNative() {
		return Native
	}
	return d.Code + ":" + d.Issuer
}

// Parse validates a "native" or "CODE:ISSUER" descriptor.
func Parse(s string) (Descriptor, error) {
	if s == Native {
		return Descriptor{}, nil
	}
	code, issuer, ok := strings.Cut(s, ":")
	if !ok {
		return Descriptor{}, fmt.Errorf("expected CODE:ISSUER or %q", Native)
	}
	if code == "" || len(code) > maxCodeLength {
		return Descriptor{}, fmt.Errorf("asset code must be 1-%d characters", maxCodeLength)
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return Descriptor{}, fmt.Errorf("asset code %q is not alphanumeric", code)
		}
	}
	if !strkey.IsValidAccountAddress(issuer) {
		return Descriptor{}, fmt.Errorf("issuer %q is not an account address", issuer)
	}
	return Descriptor{Code: code, Issuer: issuer}, nil
}

// IsValid reports whether s is a canonical asset descriptor.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
