// Package numeric implements Slate's three-tier numeric tower
// (spec.md §4.3): int32 with overflow detection, arbitrary-precision
// bigint, and IEEE-754 number, plus the promotion ladder between them.
//
// Every binary op here follows the same shape the teacher's
// `pkg/vm/vm.go` arithmetic switch uses — type-switch on the widest
// kind present, compute, return — generalized from smog's two-kind
// (int64/float64) ladder to Slate's three-kind one.
package numeric

import (
	"math"

	"github.com/edadma/slate/internal/bigint"
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// tier ranks a numeric Value's position in the promotion ladder.
type tier int

const (
	tierInt32 tier = iota
	tierBigInt
	tierNumber
)

func tierOf(v value.Value) tier {
	switch v.Kind() {
	case value.KindNumber:
		return tierNumber
	case value.KindBigInt:
		return tierBigInt
	default:
		return tierInt32
	}
}

func widest(a, b value.Value) tier {
	ta, tb := tierOf(a), tierOf(b)
	if ta > tb {
		return ta
	}
	return tb
}

func toFloat(v value.Value) float64 {
	switch v.Kind() {
	case value.KindNumber:
		return v.AsNumber()
	case value.KindInt32:
		return float64(v.AsInt32())
	case value.KindBigInt:
		return v.AsBigInt().Float64()
	default:
		return 0
	}
}

func toBig(v value.Value) *bigint.Int {
	if v.Kind() == value.KindBigInt {
		return v.AsBigInt()
	}
	return bigint.FromInt32(v.AsInt32())
}

// narrow converts a bigint result back to int32 when it fits, per
// spec.md §4.3's "narrowed back to int32 when it fits" rule.
func narrow(b *bigint.Int) value.Value {
	if n, ok := b.TryInt32(); ok {
		return value.Int32(n)
	}
	return value.BigInt(b)
}

func requireNumeric(v value.Value, op string) error {
	if !v.IsNumeric() {
		return vmerr.Typef("%s: expected a numeric operand, got %s", op, v.TypeName())
	}
	return nil
}

// Add, Subtract, Multiply, Negate implement the full three-tier
// promotion: number wins over everything, bigint wins over int32, and
// plain int32 arithmetic overflow re-executes in bigint.
func Add(a, b value.Value) (value.Value, error) {
	if err := requireBoth(a, b, "+"); err != nil {
		return value.Value{}, err
	}
	switch widest(a, b) {
	case tierNumber:
		return value.Number(toFloat(a) + toFloat(b)), nil
	case tierBigInt:
		return narrow(toBig(a).Add(toBig(b))), nil
	default:
		x, y := int64(a.AsInt32()), int64(b.AsInt32())
		sum := x + y
		if sum < math.MinInt32 || sum > math.MaxInt32 {
			return narrow(toBig(a).Add(toBig(b))), nil
		}
		return value.Int32(int32(sum)), nil
	}
}

func Subtract(a, b value.Value) (value.Value, error) {
	if err := requireBoth(a, b, "-"); err != nil {
		return value.Value{}, err
	}
	switch widest(a, b) {
	case tierNumber:
		return value.Number(toFloat(a) - toFloat(b)), nil
	case tierBigInt:
		return narrow(toBig(a).Sub(toBig(b))), nil
	default:
		x, y := int64(a.AsInt32()), int64(b.AsInt32())
		diff := x - y
		if diff < math.MinInt32 || diff > math.MaxInt32 {
			return narrow(toBig(a).Sub(toBig(b))), nil
		}
		return value.Int32(int32(diff)), nil
	}
}

func Multiply(a, b value.Value) (value.Value, error) {
	if err := requireBoth(a, b, "*"); err != nil {
		return value.Value{}, err
	}
	switch widest(a, b) {
	case tierNumber:
		return value.Number(toFloat(a) * toFloat(b)), nil
	case tierBigInt:
		return narrow(toBig(a).Mul(toBig(b))), nil
	default:
		x, y := int64(a.AsInt32()), int64(b.AsInt32())
		prod := x * y
		if prod < math.MinInt32 || prod > math.MaxInt32 {
			return narrow(toBig(a).Mul(toBig(b))), nil
		}
		return value.Int32(int32(prod)), nil
	}
}

// Divide implements exact truncating division for the int32/bigint
// tiers and IEEE division once `number` is involved.
func Divide(a, b value.Value) (value.Value, error) {
	if err := requireBoth(a, b, "/"); err != nil {
		return value.Value{}, err
	}
	switch widest(a, b) {
	case tierNumber:
		return value.Number(toFloat(a) / toFloat(b)), nil
	case tierBigInt:
		if toBig(b).IsZero() {
			return value.Value{}, vmerr.Arithmeticf("division by zero")
		}
		return narrow(toBig(a).Quo(toBig(b))), nil
	default:
		if b.AsInt32() == 0 {
			return value.Value{}, vmerr.Arithmeticf("division by zero")
		}
		// math.MinInt32 / -1 overflows int32; promote.
		if a.AsInt32() == math.MinInt32 && b.AsInt32() == -1 {
			return narrow(toBig(a).Quo(toBig(b))), nil
		}
		return value.Int32(a.AsInt32() / b.AsInt32()), nil
	}
}

// FloorDiv rounds the quotient toward negative infinity, as opposed to
// Divide's truncation toward zero (spec.md §4.3).
func FloorDiv(a, b value.Value) (value.Value, error) {
	if err := requireBoth(a, b, "//"); err != nil {
		return value.Value{}, err
	}
	switch widest(a, b) {
	case tierNumber:
		return value.Number(math.Floor(toFloat(a) / toFloat(b))), nil
	case tierBigInt:
		if toBig(b).IsZero() {
			return value.Value{}, vmerr.Arithmeticf("division by zero")
		}
		return narrow(toBig(a).FloorDiv(toBig(b))), nil
	default:
		if b.AsInt32() == 0 {
			return value.Value{}, vmerr.Arithmeticf("division by zero")
		}
		return narrow(toBig(a).FloorDiv(toBig(b))), nil
	}
}

// Mod implements remainder with the sign of the dividend for the
// integer tiers (spec.md §4.3: "modulo: result has the sign of the
// dividend"), and IEEE remainder once `number` is involved.
func Mod(a, b value.Value) (value.Value, error) {
	if err := requireBoth(a, b, "%"); err != nil {
		return value.Value{}, err
	}
	switch widest(a, b) {
	case tierNumber:
		return value.Number(math.Mod(toFloat(a), toFloat(b))), nil
	case tierBigInt:
		if toBig(b).IsZero() {
			return value.Value{}, vmerr.Arithmeticf("modulo by zero")
		}
		return narrow(toBig(a).Rem(toBig(b))), nil
	default:
		if b.AsInt32() == 0 {
			return value.Value{}, vmerr.Arithmeticf("modulo by zero")
		}
		return value.Int32(a.AsInt32() % b.AsInt32()), nil
	}
}

func Negate(a value.Value) (value.Value, error) {
	if err := requireNumeric(a, "unary -"); err != nil {
		return value.Value{}, err
	}
	switch a.Kind() {
	case value.KindNumber:
		return value.Number(-a.AsNumber()), nil
	case value.KindBigInt:
		return narrow(a.AsBigInt().Neg()), nil
	default:
		if a.AsInt32() == math.MinInt32 {
			return narrow(toBig(a).Neg()), nil
		}
		return value.Int32(-a.AsInt32()), nil
	}
}

// Power implements `pow` for the VM's POWER opcode: non-negative
// integer exponents promote to bigint on overflow exactly like
// Int.pow (see intmethods.go), and any `number` operand forces IEEE
// exponentiation via math.Pow.
func Power(a, b value.Value) (value.Value, error) {
	if err := requireBoth(a, b, "**"); err != nil {
		return value.Value{}, err
	}
	if widest(a, b) == tierNumber {
		return value.Number(math.Pow(toFloat(a), toFloat(b))), nil
	}
	exp := toBig(b)
	if exp.Sign() < 0 {
		return value.Number(math.Pow(toFloat(a), toFloat(b))), nil
	}
	return narrow(toBig(a).Pow(exp)), nil
}

func requireBoth(a, b value.Value, op string) error {
	if err := requireNumeric(a, op); err != nil {
		return err
	}
	return requireNumeric(b, op)
}
