package numeric

import (
	"math/big"
	"math/bits"
	"strconv"

	"github.com/edadma/slate/internal/bigint"
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// ToString renders an int32/bigint receiver in the given base (2-36,
// default 10), negative values prefixed with "-" (spec.md §4.3).
func ToString(v value.Value, base int) (string, error) {
	if base < 2 || base > 36 {
		return "", vmerr.Domainf("toString: base must be 2-36, got %d", base)
	}
	if v.Kind() == value.KindBigInt {
		return v.AsBigInt().Text(base), nil
	}
	return strconv.FormatInt(int64(v.AsInt32()), base), nil
}

func requireBitIndex(n int) error {
	if n < 0 {
		return vmerr.Domainf("bit index must be >= 0, got %d", n)
	}
	return nil
}

// GetBit, SetBit, ClearBit, ToggleBit: 0-indexed from the LSB; int32
// receivers additionally require n < 32 (spec.md §4.3).
func GetBit(v value.Value, n int) (bool, error) {
	if err := requireBitIndex(n); err != nil {
		return false, err
	}
	if v.Kind() == value.KindInt32 {
		if n >= 32 {
			return false, vmerr.Domainf("getBit: index %d out of range for int32", n)
		}
		return (v.AsInt32()>>uint(n))&1 != 0, nil
	}
	return v.AsBigInt().Bit(n) != 0, nil
}

func SetBit(v value.Value, n int) (value.Value, error) {
	return setBitTo(v, n, 1)
}

func ClearBit(v value.Value, n int) (value.Value, error) {
	return setBitTo(v, n, 0)
}

func setBitTo(v value.Value, n int, bit uint) (value.Value, error) {
	if err := requireBitIndex(n); err != nil {
		return value.Value{}, err
	}
	if v.Kind() == value.KindInt32 && n >= 32 {
		return value.Value{}, vmerr.Domainf("setBit/clearBit: index %d out of range for int32", n)
	}
	return narrow(toBig(v).SetBit(n, bit)), nil
}

func ToggleBit(v value.Value, n int) (value.Value, error) {
	cur, err := GetBit(v, n)
	if err != nil {
		return value.Value{}, err
	}
	if cur {
		return ClearBit(v, n)
	}
	return SetBit(v, n)
}

// CountBits, LeadingZeros, TrailingZeros are "defined over 32-bit
// representation for int32" (spec.md §4.3); for bigint they operate
// over the value's natural bit length instead, since there is no fixed
// width to pad to.
func CountBits(v value.Value) int {
	if v.Kind() == value.KindInt32 {
		return bits.OnesCount32(uint32(v.AsInt32()))
	}
	b := v.AsBigInt().Big()
	count := 0
	for i := 0; i < b.BitLen(); i++ {
		if v.AsBigInt().Bit(i) != 0 {
			count++
		}
	}
	return count
}

func LeadingZeros(v value.Value) int {
	if v.Kind() == value.KindInt32 {
		return bits.LeadingZeros32(uint32(v.AsInt32()))
	}
	// bigint has no fixed width to pad to, so "zeros above the highest
	// set bit" is zero by definition rather than undefined.
	return 0
}

func TrailingZeros(v value.Value) int {
	if v.Kind() == value.KindInt32 {
		n := v.AsInt32()
		if n == 0 {
			return 32
		}
		return bits.TrailingZeros32(uint32(n))
	}
	b := v.AsBigInt()
	if b.IsZero() {
		return 0
	}
	n := 0
	for b.Bit(n) == 0 {
		n++
	}
	return n
}

func IsEven(v value.Value) bool {
	if v.Kind() == value.KindInt32 {
		return v.AsInt32()%2 == 0
	}
	return v.AsBigInt().Big().Bit(0) == 0
}

func IsOdd(v value.Value) bool { return !IsEven(v) }

// IsPrime resolves OQ-2 (SPEC_FULL.md §9): trial division up to
// floor(sqrt(n)) exactly as spec.md specifies for small n; for a
// bigint receiver, trial division first rules out every factor below a
// practical bound, then falls back to math/big's Miller-Rabin test
// (ProbablyPrime) rather than trial-dividing all the way to sqrt(n) at
// arbitrary magnitude, which would not terminate in practice.
func IsPrime(v value.Value) bool {
	if v.Kind() == value.KindInt32 {
		return isPrimeInt64(int64(v.AsInt32()))
	}
	b := v.AsBigInt().Big()
	if b.Sign() < 0 {
		return false
	}
	if b.IsInt64() {
		return isPrimeInt64(b.Int64())
	}
	const trialBound = 1_000_000
	rem := new(big.Int)
	for p := int64(2); p < trialBound; p++ {
		if !isPrimeInt64(p) {
			continue
		}
		if rem.Mod(b, big.NewInt(p)).Sign() == 0 {
			return false
		}
	}
	return v.AsBigInt().ProbablyPrime()
}

func isPrimeInt64(n int64) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := int64(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

func GCD(a, b value.Value) value.Value {
	if a.Kind() == value.KindInt32 && b.Kind() == value.KindInt32 {
		x, y := int64(a.AsInt32()), int64(b.AsInt32())
		if x < 0 {
			x = -x
		}
		if y < 0 {
			y = -y
		}
		for y != 0 {
			x, y = y, x%y
		}
		return value.Int32(int32(x))
	}
	return narrow(toBig(a).GCD(toBig(b)))
}

// LCM returns |a*b|/gcd(a,b), or 0 if either operand is 0 (spec.md §4.3).
func LCM(a, b value.Value) (value.Value, error) {
	if (a.Kind() == value.KindInt32 && a.AsInt32() == 0) || (b.Kind() == value.KindInt32 && b.AsInt32() == 0) {
		return value.Int32(0), nil
	}
	if a.Kind() == value.KindBigInt && a.AsBigInt().IsZero() {
		return value.Int32(0), nil
	}
	if b.Kind() == value.KindBigInt && b.AsBigInt().IsZero() {
		return value.Int32(0), nil
	}
	g := toBig(GCD(a, b))
	prod := toBig(a).Mul(toBig(b)).Abs()
	return narrow(prod.Quo(g)), nil
}

// Pow implements Int.pow(exp) and Int.pow(exp, mod): a non-negative
// exponent is required; with a modulus it uses binary modular
// exponentiation, otherwise safe binary exponentiation that promotes to
// bigint on overflow (spec.md §4.3).
func Pow(base, exp value.Value, mod *value.Value) (value.Value, error) {
	e := toBig(exp)
	if e.Sign() < 0 {
		return value.Value{}, vmerr.Domainf("pow: exponent must be non-negative")
	}
	if mod != nil {
		return narrow(toBig(base).PowMod(e, toBig(*mod))), nil
	}
	return narrow(toBig(base).Pow(e)), nil
}

// Factorial implements Int.factorial(): n >= 0, overflow-promoting
// safe multiplication (spec.md §4.3).
func Factorial(v value.Value) (value.Value, error) {
	n := toBig(v)
	if n.Sign() < 0 {
		return value.Value{}, vmerr.Domainf("factorial: n must be >= 0")
	}
	nn, ok := n.TryInt32()
	if !ok || nn > 1_000_000 {
		return value.Value{}, vmerr.Domainf("factorial: n too large")
	}
	result := bigint.FromInt64(1)
	for i := int32(2); i <= nn; i++ {
		result = result.Mul(bigint.FromInt32(i))
	}
	return narrow(result), nil
}
