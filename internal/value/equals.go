package value

import "github.com/edadma/slate/internal/bigint"

// Equals implements `==` per the Equality column of spec.md §3's value
// table: structural for null/undefined/bool/range/buffer/object/date-
// time, numeric (cross-kind) for int32/bigint/number, codepoint-wise
// for string, elementwise for array, and identity (pointer equality on
// the shared heap payload) for string-builder, class, iterator,
// closure, native, and bound-method.
func (v Value) Equals(other Value) bool {
	if v.IsNumeric() && other.IsNumeric() {
		return numericEquals(v, other)
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull, KindUndefined:
		return true
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.AsString() == other.AsString()
	case KindArray:
		a, b := v.ArrayElements(), other.ArrayElements()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equals(b[i]) {
				return false
			}
		}
		return true
	case KindObject:
		ak, bk := v.ObjectKeys(), other.ObjectKeys()
		if len(ak) != len(bk) {
			return false
		}
		for _, k := range ak {
			av, _ := v.ObjectGet(k)
			bv, ok := other.ObjectGet(k)
			if !ok || !av.Equals(bv) {
				return false
			}
		}
		return true
	case KindRange:
		return v.rng().start == other.rng().start &&
			v.rng().end == other.rng().end &&
			v.rng().exclusive == other.rng().exclusive
	case KindBuffer:
		a, b := v.BufferBytes(), other.BufferBytes()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	case KindLocalDate:
		return v.AsLocalDate() == other.AsLocalDate()
	case KindLocalTime:
		return v.AsLocalTime() == other.AsLocalTime()
	case KindLocalDateTime:
		return v.AsLocalDateTime() == other.AsLocalDateTime()
	case KindZonedDateTime:
		return v.AsZonedDateTime() == other.AsZonedDateTime()
	case KindInstant:
		return v.AsInstant() == other.AsInstant()
	case KindDuration:
		return v.AsDuration() == other.AsDuration()
	case KindPeriod:
		return v.AsPeriod() == other.AsPeriod()
	case KindStringBuilder, KindClass, KindIterator, KindClosure, KindNative, KindBoundMethod,
		KindBufferBuilder, KindBufferReader:
		return v.heap == other.heap
	default:
		return false
	}
}

// numericEquals cross-compares int32/bigint/number pairs: an int32 and
// a bigint of equal mathematical value are == but not identical
// (spec.md §3 invariant); a number compares equal to an integer tier
// iff it holds an exact integer value (spec.md §4.3: "a mixed int32 ==
// number is true iff the number is an integer representable exactly
// and numerically equal").
func numericEquals(a, b Value) bool {
	if a.kind == KindNumber && b.kind == KindNumber {
		return a.num == b.num
	}
	if a.kind == KindNumber || b.kind == KindNumber {
		num, other := a, b
		if b.kind == KindNumber {
			num, other = b, a
		}
		if num.num != float64(int64(num.num)) {
			return false
		}
		return intValueEqualsInt64(other, int64(num.num))
	}
	// Neither side is a float: both are int32 or bigint.
	if a.kind == KindInt32 && b.kind == KindInt32 {
		return a.i32 == b.i32
	}
	return asBig(a).Cmp(asBig(b)) == 0
}

func intValueEqualsInt64(v Value, n int64) bool {
	if v.kind == KindInt32 {
		return int64(v.i32) == n
	}
	return v.big.Big().IsInt64() && v.big.Big().Int64() == n
}

// asBig widens an int32 or bigint Value to a *bigint.Int; only used
// once at least one side is already bigint, so the int32 case doesn't
// need to special-case overflow.
func asBig(v Value) *bigint.Int {
	if v.kind == KindInt32 {
		return bigint.FromInt32(v.i32)
	}
	return v.big
}
