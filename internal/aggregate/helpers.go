package aggregate

import (
	"math/big"
	"time"
)

// DefaultDecimals is the precision of Stellar asset contract amounts.
const DefaultDecimals = 7

func formatTokenAmount(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	if decimals == 0 {
		return value.String()
	}
	sign := value.Sign()
	abs := new(big.Int).Abs(value)
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	rat := new(big.Rat).SetFrac(abs, denom)
	text := rat.FloatString(int(decimals))
	if sign < 0 {
		return "-" + text
	}
	return text
}

func windowStart(ts uint64, windowSec uint64) uint64 {
	if windowSec == 0 {
		return 0
	}
	return ts - (ts % windowSec)
}

func closeTimestamp(value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0, err
	}
	if t.Unix() < 0 {
		return 0, nil
	}
	return uint64(t.Unix()), nil
}

func unixTime(ts uint64) *time.Time {
	t := time.Unix(int64(ts), 0).UTC()
	return &t
}
