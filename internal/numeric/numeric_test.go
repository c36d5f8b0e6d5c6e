package numeric

import (
	"testing"

	"github.com/edadma/slate/internal/value"
)

func mustAdd(t *testing.T, a, b value.Value) value.Value {
	t.Helper()
	v, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestAddSubtractRoundTrip(t *testing.T) {
	a, b := value.Int32(100), value.Int32(37)
	sum := mustAdd(t, a, b)
	back, err := Subtract(sum, b)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equals(a) {
		t.Errorf("(a+b)-b = %v, want %v", back, a)
	}
}

func TestOverflowPromotesToBigInt(t *testing.T) {
	// 2^31 overflows int32; Add must promote rather than wrap.
	max := value.Int32(2147483647)
	got, err := Add(max, value.Int32(1))
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind() != value.KindBigInt {
		t.Fatalf("expected overflow to promote to bigint, got kind %v", got.Kind())
	}
	s, _ := ToString(got, 10)
	if s != "2147483648" {
		t.Errorf("overflowed sum = %s, want 2147483648", s)
	}
}

func TestPowOverflowScenario(t *testing.T) {
	// spec.md §8 scenario 2: print(2.pow(31)) -> "2147483648".
	got, err := Pow(value.Int32(2), value.Int32(31), nil)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := ToString(got, 10)
	if s != "2147483648" {
		t.Errorf("2.pow(31) = %s, want 2147483648", s)
	}
}

func TestModSignFollowsDividend(t *testing.T) {
	got, err := Mod(value.Int32(-7), value.Int32(3))
	if err != nil {
		t.Fatal(err)
	}
	if got.AsInt32() != -1 {
		t.Errorf("-7 %% 3 = %d, want -1 (sign of dividend)", got.AsInt32())
	}
}

func TestFloorDivRoundsTowardNegativeInfinity(t *testing.T) {
	got, err := FloorDiv(value.Int32(-7), value.Int32(2))
	if err != nil {
		t.Fatal(err)
	}
	if got.AsInt32() != -4 {
		t.Errorf("-7 // 2 = %d, want -4", got.AsInt32())
	}
}

func TestIsEvenIsOddComplementary(t *testing.T) {
	for n := int32(0); n < 50; n++ {
		v := value.Int32(n)
		if IsEven(v) == IsOdd(v) {
			t.Errorf("IsEven(%d) and IsOdd(%d) both %v", n, n, IsEven(v))
		}
	}
}

func TestCountBitsMatchesGetBitSum(t *testing.T) {
	v := value.Int32(0b10110101)
	sum := 0
	for i := 0; i < 32; i++ {
		b, err := GetBit(v, i)
		if err != nil {
			t.Fatal(err)
		}
		if b {
			sum++
		}
	}
	if got := CountBits(v); got != sum {
		t.Errorf("CountBits = %d, want %d (sum of getBit)", got, sum)
	}
}

func TestGCDIdentities(t *testing.T) {
	n := value.Int32(84)
	if got := GCD(n, n); !got.Equals(n) {
		t.Errorf("gcd(n, n) = %v, want %v", got, n)
	}
	if got := GCD(n, value.Int32(0)); !got.Equals(n) {
		t.Errorf("gcd(n, 0) = %v, want %v", got, n)
	}
}

func TestPowIdentities(t *testing.T) {
	n := value.Int32(5)
	one, err := Pow(n, value.Int32(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if one.AsInt32() != 1 {
		t.Errorf("n.pow(0) = %v, want 1", one)
	}
	k3, err := Pow(n, value.Int32(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := Pow(n, value.Int32(2), nil)
	if err != nil {
		t.Fatal(err)
	}
	nTimesK2, err := Multiply(n, k2)
	if err != nil {
		t.Fatal(err)
	}
	if !k3.Equals(nTimesK2) {
		t.Errorf("n.pow(3) = %v, want n*n.pow(2) = %v", k3, nTimesK2)
	}
}

func TestFactorial(t *testing.T) {
	got, err := Factorial(value.Int32(10))
	if err != nil {
		t.Fatal(err)
	}
	s, _ := ToString(got, 10)
	if s != "3628800" {
		t.Errorf("10! = %s, want 3628800", s)
	}
}

func TestIsPrime(t *testing.T) {
	primes := []int32{2, 3, 5, 7, 11, 97}
	for _, p := range primes {
		if !IsPrime(value.Int32(p)) {
			t.Errorf("IsPrime(%d) = false, want true", p)
		}
	}
	composites := []int32{0, 1, 4, 9, 100}
	for _, c := range composites {
		if IsPrime(value.Int32(c)) {
			t.Errorf("IsPrime(%d) = true, want false", c)
		}
	}
}
