package value

import (
	"github.com/edadma/slate/internal/bigint"
	"github.com/edadma/slate/internal/vmerr"
)

// Compare implements the LESS/LESS_EQUAL/GREATER/GREATER_EQUAL family:
// both operands must be numeric or both must be strings (spec.md §4.2).
// It returns -1, 0, or 1, or a *vmerr.Error when the operands aren't
// comparable.
func Compare(a, b Value) (int, error) {
	switch {
	case a.IsNumeric() && b.IsNumeric():
		return compareNumeric(a, b), nil
	case a.IsString() && b.IsString():
		return compareStrings(a.AsString(), b.AsString()), nil
	default:
		return 0, vmerr.Typef("cannot compare %s and %s", a.TypeName(), b.TypeName())
	}
}

func compareStrings(a, b string) int {
	ar, br := []rune(a), []rune(b)
	for i := 0; i < len(ar) && i < len(br); i++ {
		if ar[i] != br[i] {
			if ar[i] < br[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ar) < len(br):
		return -1
	case len(ar) > len(br):
		return 1
	default:
		return 0
	}
}

func compareNumeric(a, b Value) int {
	if a.kind == KindNumber || b.kind == KindNumber {
		af, bf := toFloat(a), toFloat(b)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	if a.kind == KindInt32 && b.kind == KindInt32 {
		switch {
		case a.i32 < b.i32:
			return -1
		case a.i32 > b.i32:
			return 1
		default:
			return 0
		}
	}
	return asBig(a).Cmp(asBig(b))
}

func toFloat(v Value) float64 {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindInt32:
		return float64(v.i32)
	case KindBigInt:
		return v.big.Float64()
	default:
		return 0
	}
}

// widenToBig materializes an int32 or bigint Value as a bigint handle
// without going through Equals/Compare. It is unexported; internal/
// numeric does its own widening.
func widenToBig(v Value) *bigint.Int { return asBig(v) }
