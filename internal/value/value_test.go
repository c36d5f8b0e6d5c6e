package value

import (
	"math"
	"testing"

	"github.com/edadma/slate/internal/bigint"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Null, false},
		{Undefined, false},
		{False, false},
		{True, true},
		{Int32(0), false},
		{Int32(1), true},
		{BigInt(bigint.FromInt64(0)), false},
		{BigInt(bigint.FromInt64(5)), true},
		{Number(0.0), false},
		{Number(math.NaN()), false},
		{Number(1.5), true},
		{String(""), false},
		{String("x"), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%v.Truthy() = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestArrayCopyIndependence(t *testing.T) {
	xs := Array([]Value{Int32(1), Int32(2), Int32(3)})
	cp := xs.ArrayCopy()
	cp.ArraySet(0, Int32(99))
	if xs.ArrayGet(0).AsInt32() != 1 {
		t.Fatalf("mutating copy affected original: got %d", xs.ArrayGet(0).AsInt32())
	}
	if !xs.Equals(Array([]Value{Int32(1), Int32(2), Int32(3)})) {
		t.Fatalf("original array mutated unexpectedly")
	}
}

func TestArrayReverseTwiceIsOriginal(t *testing.T) {
	xs := Array([]Value{Int32(1), Int32(2), Int32(3)})
	got := xs.ArrayReverse().ArrayReverse()
	if !got.Equals(xs) {
		t.Fatalf("reverse().reverse() = %v, want %v", got, xs)
	}
}

func TestArraySliceLength(t *testing.T) {
	xs := Array([]Value{Int32(1), Int32(2), Int32(3), Int32(4), Int32(5)})
	got := xs.ArraySlice(1, 4)
	if got.ArrayLen() != 3 {
		t.Fatalf("slice(1,4).length = %d, want 3", got.ArrayLen())
	}
}

func TestStringCaseAndSearch(t *testing.T) {
	s := String("Hello, World")
	if s.ToUpper().AsString() != "HELLO, WORLD" {
		t.Errorf("toUpper failed: %q", s.ToUpper().AsString())
	}
	if s.ToLower().AsString() != "hello, world" {
		t.Errorf("toLower failed: %q", s.ToLower().AsString())
	}
	if !s.Contains(String("World")) {
		t.Errorf("contains failed")
	}
	if idx := s.IndexOf(String("World")); idx != 7 {
		t.Errorf("indexOf(World) = %d, want 7", idx)
	}
}

func TestEqualsCrossKindNumeric(t *testing.T) {
	i32 := Int32(3)
	big := BigInt(bigint.FromInt64(3))
	num := Number(3.0)
	if !i32.Equals(big) {
		t.Error("int32(3) should equal bigint(3)")
	}
	if !i32.Equals(num) {
		t.Error("int32(3) should equal number(3.0)")
	}
	if i32.Equals(Number(3.5)) {
		t.Error("int32(3) should not equal number(3.5)")
	}
}

func TestEqualsStructuralArray(t *testing.T) {
	a := Array([]Value{Int32(1), String("x")})
	b := Array([]Value{Int32(1), String("x")})
	if !a.Equals(b) {
		t.Error("structurally identical arrays should be ==")
	}
}

func TestCompareRequiresLikeKinds(t *testing.T) {
	if _, err := Compare(Int32(1), String("a")); err == nil {
		t.Error("comparing int32 and string should error")
	}
}

func TestCompareStringLexicographic(t *testing.T) {
	c, err := Compare(String("apple"), String("banana"))
	if err != nil {
		t.Fatal(err)
	}
	if c != -1 {
		t.Errorf("Compare(apple, banana) = %d, want -1", c)
	}
}

func TestBufferHexRoundTrip(t *testing.T) {
	b := Buffer([]byte{0xde, 0xad, 0xbe, 0xef})
	hex := b.BufferToHex()
	got, ok := BufferFromHex(hex.AsString())
	if !ok {
		t.Fatal("BufferFromHex failed")
	}
	if !got.Equals(b) {
		t.Errorf("hex round trip mismatch: got %v, want %v", got.BufferBytes(), b.BufferBytes())
	}
}
