package builtins

import (
	"math/rand"
	"testing"

	"github.com/edadma/slate/internal/value"
)

func newRegistry() (map[string]value.Value, map[string]*value.Class) {
	globals := make(map[string]value.Value)
	classes := make(map[string]*value.Class)
	Register(globals, classes)
	return globals, classes
}

func callNative(t *testing.T, fn value.Value, args ...value.Value) value.Value {
	t.Helper()
	result, err := fn.AsNative()(&value.Context{}, args)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

// TestBufferHexRoundTrip is the property SPEC_FULL.md §8 calls out:
// encoding arbitrary byte sequences to hex and back must be lossless.
func TestBufferHexRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		n := rand.Intn(32)
		data := make([]byte, n)
		rand.Read(data)

		buf := value.Buffer(data)
		hex := buf.BufferToHex()
		back, ok := value.BufferFromHex(hex.AsString())
		if !ok {
			t.Fatalf("BufferFromHex rejected %q produced by BufferToHex", hex.AsString())
		}
		if !back.Equals(buf) {
			t.Errorf("round trip mismatch for %v: got %v", data, back.BufferBytes())
		}
	}
}

// TestIntConstructorParsesHex exercises spec.md §8 scenario 1.
func TestIntConstructorParsesHex(t *testing.T) {
	_, classes := newRegistry()
	cls := classes["Int"]
	result, err := cls.Native(&value.Context{}, []value.Value{value.String("ff"), value.Int32(16)})
	if err != nil {
		t.Fatal(err)
	}
	if result.Kind() != value.KindInt32 || result.AsInt32() != 255 {
		t.Errorf("Int(\"ff\", 16) = %v, want 255", result)
	}
}

// TestBufferFromHexSliceToHex exercises spec.md §8 scenario 6.
func TestBufferFromHexSliceToHex(t *testing.T) {
	_, classes := newRegistry()
	cls := classes["Buffer"]
	fromHex := cls.Methods["fromHex"]
	buf := callNative(t, fromHex, value.ClassValue(cls), value.String("cafebabe"))

	slice := cls.Methods["slice"]
	sliced := callNative(t, slice, buf, value.Int32(1), value.Int32(2))

	toHex := cls.Methods["toHex"]
	hex := callNative(t, toHex, sliced)

	if hex.AsString() != "feba" {
		t.Errorf("Buffer.fromHex(\"cafebabe\").slice(1,2).toHex() = %q, want %q", hex.AsString(), "feba")
	}
}

// TestRangeToArrayExclusive exercises spec.md §8 scenario 4.
func TestRangeToArrayExclusive(t *testing.T) {
	r := value.Range(1, 5, true)
	arr := r.RangeToArray()
	if arr.ArrayLen() != 4 {
		t.Fatalf("(1..<5).toArray() has length %d, want 4", arr.ArrayLen())
	}
	for i, want := range []int32{1, 2, 3, 4} {
		if got := arr.ArrayGet(i).AsInt32(); got != want {
			t.Errorf("element %d = %d, want %d", i, got, want)
		}
	}
}

// TestLocalDateLeapYearPlusYearsClamps exercises spec.md §8 scenario 5:
// Feb 29 on a leap year, plus one non-leap year, clamps to Feb 28.
func TestLocalDateLeapYearPlusYearsClamps(t *testing.T) {
	_, classes := newRegistry()
	cls := classes["LocalDate"]
	d, err := cls.Native(&value.Context{}, []value.Value{value.Int32(2024), value.Int32(2), value.Int32(29)})
	if err != nil {
		t.Fatal(err)
	}
	plusOne := callNative(t, cls.Methods["plusYears"], d, value.Int32(1))
	s := callNative(t, cls.Methods["toString"], plusOne)
	if s.AsString() != "2025-02-28" {
		t.Errorf("LocalDate(2024,2,29).plusYears(1).toString() = %q, want %q", s.AsString(), "2025-02-28")
	}
}

func TestArrayPushLength(t *testing.T) {
	_, classes := newRegistry()
	cls := classes["Array"]
	arr := value.Array([]value.Value{value.Int32(1), value.Int32(2), value.Int32(3)})
	callNative(t, cls.Methods["push"], arr, value.Int32(4))
	length := callNative(t, cls.Methods["length"], arr)
	if length.AsInt32() != 4 {
		t.Errorf("array length after push = %d, want 4", length.AsInt32())
	}
}
