// Package bigint provides the refcounted arbitrary-precision integer
// handle that backs the "bigint" tier of Slate's numeric tower (see
// spec.md §4.3). It wraps math/big.Int — the one stdlib exception in
// this codebase, justified in DESIGN.md: no third-party arbitrary
// precision integer library appears anywhere in the example pack, and
// the closest candidate found during survey (holiman/uint256) is fixed
// at 256 bits, the wrong shape for a tier that must grow without bound.
package bigint

import (
	"math"
	"math/big"
)

// Int is a heap-allocated, reference-counted arbitrary precision integer.
// It satisfies whatever heapObject interface internal/value defines
// (Retain/Release), so the value package can hold it directly as a
// payload without a parallel ownership scheme.
type Int struct {
	v    *big.Int
	refs int32
}

// New wraps v, taking ownership of it. Callers must not mutate v after
// handing it to New.
func New(v *big.Int) *Int {
	return &Int{v: v, refs: 1}
}

// FromInt64 returns a new handle around n.
func FromInt64(n int64) *Int {
	return New(big.NewInt(n))
}

// FromInt32 widens n into the bigint tier, the promotion path taken
// whenever an int32 arithmetic op overflows (spec.md §4.3).
func FromInt32(n int32) *Int {
	return New(big.NewInt(int64(n)))
}

// Retain increments the reference count and returns the receiver, for
// chaining at assignment sites.
func (i *Int) Retain() *Int {
	if i == nil {
		return nil
	}
	i.refs++
	return i
}

// Release decrements the reference count. Once it reaches zero the
// handle's big.Int is eligible for garbage collection like any other Go
// value; there is no native memory to free.
func (i *Int) Release() {
	if i == nil {
		return
	}
	i.refs--
}

// Big returns the underlying math/big.Int. Callers must treat it as
// read-only: Int values are immutable once constructed, matching
// spec.md's immutable-integer invariant.
func (i *Int) Big() *big.Int {
	return i.v
}

// TryInt32 narrows back to the int32 tier when the value fits, the
// inverse of the overflow promotion. Used after arithmetic that may
// have shrunk a bigint result back into range (e.g. subtracting two
// large bigints).
func (i *Int) TryInt32() (int32, bool) {
	if !i.v.IsInt64() {
		return 0, false
	}
	n := i.v.Int64()
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

// Add, Sub, Mul, Quo, Rem, and Exp each return a new handle; none
// mutate the receiver or argument, matching the immutable-integer
// invariant that callers holding prior references to i or other can
// rely on them remaining unchanged.
func (i *Int) Add(other *Int) *Int   { return New(new(big.Int).Add(i.v, other.v)) }
func (i *Int) Sub(other *Int) *Int   { return New(new(big.Int).Sub(i.v, other.v)) }
func (i *Int) Mul(other *Int) *Int   { return New(new(big.Int).Mul(i.v, other.v)) }
func (i *Int) Neg() *Int             { return New(new(big.Int).Neg(i.v)) }
func (i *Int) Abs() *Int             { return New(new(big.Int).Abs(i.v)) }

// Quo and Rem implement truncated division (the semantics `/` and `%`
// use for the bigint tier); FloorDiv implements floor division (the
// semantics `//` uses). Mod returns math/big's Euclidean remainder,
// which is never negative.
func (i *Int) Quo(other *Int) *Int { return New(new(big.Int).Quo(i.v, other.v)) }
func (i *Int) Rem(other *Int) *Int { return New(new(big.Int).Rem(i.v, other.v)) }
func (i *Int) FloorDiv(other *Int) *Int {
	// big.Int.DivMod implements Euclidean division (remainder always >=
	// 0), which equals floor division only when the divisor is positive;
	// with a negative divisor and a nonzero remainder the Euclidean
	// quotient is one above the floor.
	q, m := new(big.Int), new(big.Int)
	q.DivMod(i.v, other.v, m)
	if other.v.Sign() < 0 && m.Sign() != 0 {
		q.Sub(q, big.NewInt(1))
	}
	return New(q)
}
func (i *Int) Mod(other *Int) *Int {
	m := new(big.Int).Mod(i.v, other.v)
	return New(m)
}

func (i *Int) Pow(exp *Int) *Int { return New(new(big.Int).Exp(i.v, exp.v, nil)) }
func (i *Int) PowMod(exp, mod *Int) *Int {
	return New(new(big.Int).Exp(i.v, exp.v, mod.v))
}

func (i *Int) Cmp(other *Int) int { return i.v.Cmp(other.v) }
func (i *Int) Sign() int          { return i.v.Sign() }
func (i *Int) IsZero() bool       { return i.v.Sign() == 0 }

func (i *Int) String() string            { return i.v.String() }
func (i *Int) Text(base int) string      { return i.v.Text(base) }
func (i *Int) Float64() float64          { f, _ := new(big.Float).SetInt(i.v).Float64(); return f }

func (i *Int) BitLen() int { return i.v.BitLen() }
func (i *Int) Bit(n int) uint {
	return i.v.Bit(n)
}
func (i *Int) SetBit(n int, b uint) *Int {
	return New(new(big.Int).SetBit(i.v, n, b))
}

func (i *Int) And(other *Int) *Int { return New(new(big.Int).And(i.v, other.v)) }
func (i *Int) Or(other *Int) *Int  { return New(new(big.Int).Or(i.v, other.v)) }
func (i *Int) Xor(other *Int) *Int { return New(new(big.Int).Xor(i.v, other.v)) }
func (i *Int) Not() *Int           { return New(new(big.Int).Not(i.v)) }
func (i *Int) Lsh(n uint) *Int     { return New(new(big.Int).Lsh(i.v, n)) }
func (i *Int) Rsh(n uint) *Int     { return New(new(big.Int).Rsh(i.v, n)) }

func (i *Int) GCD(other *Int) *Int {
	return New(new(big.Int).GCD(nil, nil, new(big.Int).Abs(i.v), new(big.Int).Abs(other.v)))
}

// ProbablyPrime resolves OQ-2: Slate's Int.isPrime uses math/big's
// Baillie-PSW-based Miller-Rabin test (n=20 rounds), a probabilistic
// test whose error probability is astronomically small rather than an
// exact primality proof, the same tradeoff Go's own big.Int ships with.
func (i *Int) ProbablyPrime() bool {
	return i.v.ProbablyPrime(20)
}

// ParseString parses s in the given base (0 means auto-detect via Go's
// usual 0x/0o/0b prefixes), returning nil, false on a malformed literal.
func ParseString(s string, base int) (*Int, bool) {
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, false
	}
	return New(v), true
}
