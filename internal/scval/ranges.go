package scval

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

var (
	maxU32  = new(big.Int).SetUint64(1<<32 - 1)
	minI32  = big.NewInt(-1 << 31)
	maxI32  = big.NewInt(1<<31 - 1)
	maxU64  = new(big.Int).SetUint64(^uint64(0))
	minI64  = big.NewInt(-1 << 63)
	maxI64  = big.NewInt(1<<63 - 1)
	maxU128 = new(big.Int).Sub(math.BigPow(2, 128), big.NewInt(1))
	minI128 = new(big.Int).Neg(math.BigPow(2, 127))
	maxI128 = new(big.Int).Sub(math.BigPow(2, 127), big.NewInt(1))
	maxU256 = math.MaxBig256
	minI256 = new(big.Int).Neg(math.BigPow(2, 255))
	maxI256 = new(big.Int).Sub(math.BigPow(2, 255), big.NewInt(1))
)

func fitsKind(kind Kind, v *big.Int) bool {
	switch kind {
	case KindU32:
		return between(v, zero, maxU32)
	case KindI32:
		return between(v, minI32, maxI32)
	case KindU64, KindTimepoint, KindDuration:
		return between(v, zero, maxU64)
	case KindI64:
		return between(v, minI64, maxI64)
	case KindU128:
		return between(v, zero, maxU128)
	case KindI128:
		return between(v, minI128, maxI128)
	case KindU256:
		return between(v, zero, maxU256)
	case KindI256:
		return between(v, minI256, maxI256)
	default:
		return false
	}
}

var zero = big.NewInt(0)

func between(v, lo, hi *big.Int) bool {
	return v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0
}
