// Package strkey validates and renders the base32 address forms used in event
// topics: G (account), M (muxed account) and C (contract).
package strkey

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
)

// VersionByte prefixes the payload and selects the leading character.
type VersionByte byte

const (
	VersionAccount  VersionByte = 6 << 3  // G
	VersionMuxed    VersionByte = 12 << 3 // M
	VersionContract VersionByte = 2 << 3  // C
)

const (
	keyLength   = 32
	muxedLength = keyLength + 8
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Validator implements the address checks consumed by event and token.
type Validator struct{}

func (Validator) IsValidAccountAddress(s string) bool  { return IsValidAccountAddress(s) }
func (Validator) IsValidContractAddress(s string) bool { return IsValidContractAddress(s) }

// IsValidAccountAddress reports whether s is a G... account address.
func IsValidAccountAddress(s string) bool {
	payload, ok := decode(VersionAccount, s)
	return ok && len(payload) == keyLength
}

// IsValidMuxedAddress reports whether s is an M... muxed account address.
func IsValidMuxedAddress(s string) bool {
	payload, ok := decode(VersionMuxed, s)
	return ok && len(payload) == muxedLength
}

// IsValidContractAddress reports whether s is a C... contract address.
func IsValidContractAddress(s string) bool {
	payload, ok := decode(VersionContract, s)
	return ok && len(payload) == keyLength
}

// EncodeAccount renders an ed25519 public key as a G... address.
func EncodeAccount(key [keyLength]byte) string {
	return encode(VersionAccount, key[:])
}

// EncodeContract renders a contract hash as a C... address.
func EncodeContract(id [keyLength]byte) string {
	return encode(VersionContract, id[:])
}

// EncodeMuxed renders a muxed account as an M... address.
func EncodeMuxed(key [keyLength]byte, id uint64) string {
	payload := make([]byte, muxedLength)
	copy(payload, key[:])
	binary.BigEndian.PutUint64(payload[keyLength:], id)
	return encode(VersionMuxed, payload)
}

func encode(version VersionByte, payload []byte) string {
	raw := make([]byte, 0, len(payload)+3)
	raw = append(raw, byte(version))
	raw = append(raw, payload...)
	sum := crc16(raw)
	raw = append(raw, byte(sum), byte(sum>>8))
	return encoding.EncodeToString(raw)
}

func decode(version VersionByte, s string) ([]byte, bool) {
	if s == "" {
		return nil, false
	}
	raw, err := encoding.DecodeString(s)
	if err != nil || len(raw) < 3 {
		return nil, false
	}
	// Reject encodings with non-zero trailing bits.
	if encoding.EncodeToString(raw) != s {
		return nil, false
	}
	if VersionByte(raw[0]) != version {
		return nil, false
	}
	body := raw[:len(raw)-2]
	want := crc16(body)
	got := uint16(raw[len(raw)-2]) | uint16(raw[len(raw)-1])<<8
	if want != got {
		return nil, false
	}
	return bytes.Clone(body[1:]), true
}

// crc16 is CRC-16/XMODEM.
func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
