// Package test provides end-to-end tests for Slate: source text through
// the lexer, parser, and compiler, executed by the VM. These exercise
// the §8-style scenarios a full interpreter has to get right, as
// opposed to the package-level tests that drive internal/vm directly
// against hand-assembled bytecode.
package test

import (
	"fmt"
	"testing"

	"github.com/edadma/slate/internal/compiler"
	"github.com/edadma/slate/internal/parser"
	"github.com/edadma/slate/internal/vm"
)

func run(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(src)
	program, err := p.Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	fn, err := compiler.Compile(program)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	v := vm.New()
	result, err := v.Run(fn)
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	s, err := result.ToString(nil)
	if err != nil {
		t.Fatalf("ToString error: %v", err)
	}
	return s
}

func TestHexIntParse(t *testing.T) {
	got := run(t, `Int("ff", 16)`)
	if got != "255" {
		t.Errorf("Int(\"ff\", 16) = %s, want 255", got)
	}
}

func TestExclusiveRangeToArray(t *testing.T) {
	got := run(t, `(1..<5).toArray()`)
	if got != "[1, 2, 3, 4]" {
		t.Errorf("(1..<5).toArray() = %s, want [1, 2, 3, 4]", got)
	}
}

func TestLocalDateLeapYearArithmetic(t *testing.T) {
	got := run(t, `
		let d = LocalDate(2024, 2, 29);
		d.plusYears(1).toString()
	`)
	if got != "2025-02-28" {
		t.Errorf("plusYears(1) on a leap day = %s, want 2025-02-28", got)
	}
}

func TestBufferHexRoundTrip(t *testing.T) {
	got := run(t, `
		let b = Buffer.fromHex("cafebabe");
		b.slice(1, 2).toHex()
	`)
	if got != "feba" {
		t.Errorf("slice(1, 2).toHex() = %s, want feba", got)
	}
}

func TestArithmeticAndVariables(t *testing.T) {
	got := run(t, `
		let x = 3;
		let y = 4;
		x * x + y * y
	`)
	if got != "25" {
		t.Errorf("3*3 + 4*4 = %s, want 25", got)
	}
}

func TestIfElseBranching(t *testing.T) {
	src := `
		let classify = fn(n) {
			if (n < 0) {
				return "negative";
			} else if (n == 0) {
				return "zero";
			} else {
				return "positive";
			}
		};
		classify(%d)
	`
	cases := map[int]string{-5: "negative", 0: "zero", 5: "positive"}
	for n, want := range cases {
		if got := run(t, fmt.Sprintf(src, n)); got != want {
			t.Errorf("classify(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestWhileLoopSum(t *testing.T) {
	got := run(t, `
		let sum = fn(n) {
			let total = 0;
			let i = 1;
			while (i <= n) {
				total = total + i;
				i = i + 1;
			}
			return total;
		};
		sum(100)
	`)
	if got != "5050" {
		t.Errorf("sum(100) = %s, want 5050", got)
	}
}

// TestClosureCounter checks that a closure created by a factory function
// keeps mutating the same captured upvalue across calls.
func TestClosureCounter(t *testing.T) {
	got := run(t, `
		let makeCounter = fn() {
			let count = 0;
			return fn() {
				count = count + 1;
				return count;
			};
		};
		let counter = makeCounter();
		counter();
		counter();
		counter()
	`)
	if got != "3" {
		t.Errorf("third counter() call = %s, want 3", got)
	}
}

func TestArrayAndMapLiterals(t *testing.T) {
	got := run(t, `
		let xs = [1, 2, 3];
		let obj = {a: 1, b: 2};
		xs.length() + obj.a + obj.b
	`)
	if got != "6" {
		t.Errorf("array+object field sum = %s, want 6", got)
	}
}

func TestRangeMembershipOperator(t *testing.T) {
	got := run(t, `3 in 1..<5`)
	if got != "true" {
		t.Errorf("3 in 1..<5 = %s, want true", got)
	}
}

func TestNullCoalesce(t *testing.T) {
	got := run(t, `null ?? 42`)
	if got != "42" {
		t.Errorf("null ?? 42 = %s, want 42", got)
	}
}

func TestStringConcatenationAndCoercion(t *testing.T) {
	got := run(t, `"count: " + 3`)
	if got != "count: 3" {
		t.Errorf(`"count: " + 3 = %s, want "count: 3"`, got)
	}

	got = run(t, `"foo" + "bar"`)
	if got != "foobar" {
		t.Errorf(`"foo" + "bar" = %s, want "foobar"`, got)
	}
}

func TestZeroAndEmptyStringAreFalsy(t *testing.T) {
	src := `
		let describe = fn(n) {
			if (n) {
				return "truthy";
			} else {
				return "falsy";
			}
		};
		describe(%s)
	`
	cases := map[string]string{"0": "falsy", "1": "truthy"}
	for arg, want := range cases {
		if got := run(t, fmt.Sprintf(src, arg)); got != want {
			t.Errorf("describe(%s) = %s, want %s", arg, got, want)
		}
	}

	got := run(t, `
		let isEmpty = fn(s) {
			if (s) {
				return false;
			}
			return true;
		};
		isEmpty("")
	`)
	if got != "true" {
		t.Errorf(`isEmpty("") = %s, want true`, got)
	}
}

func TestInstanceOfBuiltinKind(t *testing.T) {
	got := run(t, `5 instanceof Int`)
	if got != "true" {
		t.Errorf("5 instanceof Int = %s, want true", got)
	}

	got = run(t, `"hi" instanceof Int`)
	if got != "false" {
		t.Errorf(`"hi" instanceof Int = %s, want false`, got)
	}
}
