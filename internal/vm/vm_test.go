package vm

import (
	"strings"
	"testing"

	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
	"github.com/edadma/slate/pkg/bytecode"
)

func TestReturnTopLevelArithmetic(t *testing.T) {
	a := newAsm()
	a.pushConst(int32(3))
	a.pushConst(int32(4))
	a.op(bytecode.OpAdd)
	a.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(a.fn(0, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.Kind() != value.KindInt32 || result.AsInt32() != 7 {
		t.Errorf("3 + 4 = %v, want 7", result)
	}
}

func TestGlobalDefineGetRoundtrip(t *testing.T) {
	a := newAsm()
	valIdx := a.constant(int32(10))
	nameIdx := a.constant("x")
	a.opn(bytecode.OpPushConstant, valIdx)
	a.opn(bytecode.OpDefineGlobal, nameIdx)
	a.opn(bytecode.OpGetGlobal, nameIdx)
	a.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(a.fn(0, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.AsInt32() != 10 {
		t.Errorf("global x = %v, want 10", result)
	}
}

func TestUndefinedGlobalIsNameError(t *testing.T) {
	a := newAsm()
	nameIdx := a.constant("missing")
	a.opn(bytecode.OpGetGlobal, nameIdx)
	a.op(bytecode.OpReturn)

	vm := New()
	_, err := vm.Run(a.fn(0, 0))
	re := requireRuntimeError(t, err)
	if inner, ok := vmerr.As(re.Unwrap(), vmerr.Name); !ok {
		t.Errorf("expected a NameError, got %v", re.Unwrap())
	} else if inner.Kind != vmerr.Name {
		t.Errorf("expected Name kind, got %v", inner.Kind)
	}
}

// TestClosureCallAddsArguments builds CLOSURE over a nested two-parameter
// function and calls it with CALL, exercising invoke/invokeClosure's
// recursive run(stopAt) termination.
func TestClosureCallAddsArguments(t *testing.T) {
	nested := newAsm()
	nested.opn(bytecode.OpGetLocal, 0)
	nested.opn(bytecode.OpGetLocal, 1)
	nested.op(bytecode.OpAdd)
	nested.op(bytecode.OpReturn)
	nestedFn := nested.fn(2, 2)

	a := newAsm()
	fnIdx := a.constant(nestedFn)
	a.opn(bytecode.OpClosure, fnIdx)
	a.pushConst(int32(3))
	a.pushConst(int32(4))
	a.opn(bytecode.OpCall, 2)
	a.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(a.fn(0, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.AsInt32() != 7 {
		t.Errorf("closure(3, 4) = %v, want 7", result)
	}
}

// TestClosureCapturesUpvalue builds an outer function with one local that
// a nested closure captures by UpvalueLocal, reads via GET_UPVALUE, and
// mutates via SET_UPVALUE; the mutation must be visible back through the
// captured cell after the closure returns (spec.md §4.5).
func TestClosureCapturesUpvalue(t *testing.T) {
	nested := newAsm()
	nested.opn(bytecode.OpGetUpvalue, 0)
	nested.op(bytecode.OpIncrement)
	nested.opn(bytecode.OpSetUpvalue, 0)
	nested.op(bytecode.OpReturn)
	nestedFn := nested.fn(0, 0)
	nestedFn.Upvalues = []bytecode.UpvalueDescriptor{{Kind: bytecode.UpvalueLocal, Index: 0}}
	nestedFn.NumUpvalues = 1

	outer := newAsm()
	outer.pushConst(int32(41))
	outer.opn(bytecode.OpSetLocal, 0)
	outer.op(bytecode.OpPop)
	fnIdx := outer.constant(nestedFn)
	outer.opn(bytecode.OpClosure, fnIdx)
	outer.opn(bytecode.OpCall, 0)
	outer.op(bytecode.OpPop) // discard the closure call's own return value
	outer.opn(bytecode.OpGetLocal, 0)
	outer.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(outer.fn(1, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.AsInt32() != 42 {
		t.Errorf("captured local after mutation = %v, want 42", result)
	}
}

// TestGetPropertyFallsBackToValueRoot exercises the getBuiltinMethod
// parent-chain walk: Array's own class never defines toString, so
// resolving it must climb to the shared "Value" root.
func TestGetPropertyFallsBackToValueRoot(t *testing.T) {
	a := newAsm()
	a.pushConst(int32(1))
	a.pushConst(int32(2))
	a.opn(bytecode.OpBuildArray, 2)
	nameIdx := a.constant("toString")
	a.opn(bytecode.OpGetProperty, nameIdx)
	a.opn(bytecode.OpCallMethod, 0)
	a.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(a.fn(0, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.Kind() != value.KindString || result.AsString() != "[1, 2]" {
		t.Errorf("[1, 2].toString() = %v, want \"[1, 2]\"", result)
	}
}

func TestCallMethodOnNonCallableIsTypeError(t *testing.T) {
	a := newAsm()
	a.pushConst(int32(42))
	a.opn(bytecode.OpCallMethod, 0)

	vm := New()
	_, err := vm.Run(a.fn(0, 0))
	re := requireRuntimeError(t, err)
	inner, ok := vmerr.As(re.Unwrap(), vmerr.Type)
	if !ok {
		t.Fatalf("expected a TypeError, got %v", re.Unwrap())
	}
	if !strings.Contains(inner.Message, "is not a method") {
		t.Errorf("message %q does not mention 'is not a method'", inner.Message)
	}
}

func TestPopOnEmptyStackIsStackError(t *testing.T) {
	a := newAsm()
	a.op(bytecode.OpPop)

	vm := New()
	_, err := vm.Run(a.fn(0, 0))
	re := requireRuntimeError(t, err)
	if _, ok := vmerr.As(re.Unwrap(), vmerr.Stack); !ok {
		t.Errorf("expected a StackError, got %v", re.Unwrap())
	}
}

func TestRangeMembership(t *testing.T) {
	a := newAsm()
	a.pushConst(int32(3))
	a.pushConst(int32(1))
	a.pushConst(int32(5))
	a.opn(bytecode.OpBuildRange, 1) // exclusive
	a.op(bytecode.OpIn)
	a.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(a.fn(0, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.Kind() != value.KindBool || !result.AsBool() {
		t.Errorf("3 in 1..<5 = %v, want true", result)
	}
}

// TestWhileLoopAccumulates sums 1..5 using locals, a backward LOOP, and
// the classic peek-then-pop JUMP_IF_FALSE pattern, exercising control
// flow end to end.
func TestWhileLoopAccumulates(t *testing.T) {
	a := newAsm()
	zeroIdx := a.constant(int32(0))
	oneIdx := a.constant(int32(1))
	limitIdx := a.constant(int32(5))

	a.opn(bytecode.OpPushConstant, zeroIdx)
	a.opn(bytecode.OpSetLocal, 0) // sum
	a.op(bytecode.OpPop)

	a.opn(bytecode.OpPushConstant, oneIdx)
	a.opn(bytecode.OpSetLocal, 1) // i
	a.op(bytecode.OpPop)

	loopStart := len(a.code)
	a.opn(bytecode.OpGetLocal, 1)
	a.opn(bytecode.OpPushConstant, limitIdx)
	a.op(bytecode.OpLessEqual)
	exitJump := a.emitJump(bytecode.OpJumpIfFalse)
	a.op(bytecode.OpPop)

	a.opn(bytecode.OpGetLocal, 0)
	a.opn(bytecode.OpGetLocal, 1)
	a.op(bytecode.OpAdd)
	a.opn(bytecode.OpSetLocal, 0)
	a.op(bytecode.OpPop)

	a.opn(bytecode.OpGetLocal, 1)
	a.op(bytecode.OpIncrement)
	a.opn(bytecode.OpSetLocal, 1)
	a.op(bytecode.OpPop)

	a.emitLoop(loopStart)

	a.patchJump(exitJump)
	a.op(bytecode.OpPop)

	a.opn(bytecode.OpGetLocal, 0)
	a.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(a.fn(2, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.AsInt32() != 15 {
		t.Errorf("sum(1..5) = %v, want 15", result)
	}
}

// TestAddConcatenatesStrings exercises the two-string branch of ADD
// (spec.md §4.2): "a" + "b" concatenates rather than raising a Type
// error from the numeric tower.
func TestAddConcatenatesStrings(t *testing.T) {
	a := newAsm()
	a.pushConst("foo")
	a.pushConst("bar")
	a.op(bytecode.OpAdd)
	a.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(a.fn(0, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.Kind() != value.KindString || result.AsString() != "foobar" {
		t.Errorf(`"foo" + "bar" = %v, want "foobar"`, result)
	}
}

// TestAddCoercesNonStringViaToString exercises the string/other-kind
// branch of ADD: the non-string operand goes through the universal
// toString before concatenating, regardless of which side it's on.
func TestAddCoercesNonStringViaToString(t *testing.T) {
	a := newAsm()
	a.pushConst("x=")
	a.pushConst(int32(5))
	a.op(bytecode.OpAdd)
	a.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(a.fn(0, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.Kind() != value.KindString || result.AsString() != "x=5" {
		t.Errorf(`"x=" + 5 = %v, want "x=5"`, result)
	}

	b := newAsm()
	b.pushConst(int32(5))
	b.pushConst("=x")
	b.op(bytecode.OpAdd)
	b.op(bytecode.OpReturn)

	vm2 := New()
	result2, err := vm2.Run(b.fn(0, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result2.Kind() != value.KindString || result2.AsString() != "5=x" {
		t.Errorf(`5 + "=x" = %v, want "5=x"`, result2)
	}
}

// TestAddStillRejectsNonStringNonNumeric keeps ADD's numeric-tower error
// path alive for operand pairs that are neither numeric nor stringy.
func TestAddStillRejectsNonStringNonNumeric(t *testing.T) {
	a := newAsm()
	a.op(bytecode.OpPushNull)
	a.pushConst(int32(1))
	a.op(bytecode.OpAdd)
	a.op(bytecode.OpReturn)

	vm := New()
	_, err := vm.Run(a.fn(0, 0))
	requireRuntimeError(t, err)
}

// TestJumpIfFalseTreatsZeroAndEmptyStringAsFalsy exercises the falsy
// set spec.md §4.2 mandates (int32 0 and empty string), routed through
// the same JUMP_IF_FALSE peek-then-pop pattern `if`/`while` compile to.
func TestJumpIfFalseTreatsZeroAndEmptyStringAsFalsy(t *testing.T) {
	cases := []struct {
		name string
		lit  interface{}
	}{
		{"zero int32", int32(0)},
		{"empty string", ""},
	}
	for _, c := range cases {
		a := newAsm()
		a.pushConst(c.lit)
		jumpPos := a.emitJump(bytecode.OpJumpIfFalse)
		a.op(bytecode.OpPop)
		a.pushConst("truthy")
		takenEnd := a.emitJump(bytecode.OpJump)
		a.patchJump(jumpPos)
		a.op(bytecode.OpPop)
		a.pushConst("falsy")
		a.patchJump(takenEnd)
		a.op(bytecode.OpReturn)

		vm := New()
		result, err := vm.Run(a.fn(0, 0))
		if err != nil {
			t.Fatalf("%s: VM error: %v", c.name, err)
		}
		if result.AsString() != "falsy" {
			t.Errorf("%s: JUMP_IF_FALSE branch = %v, want \"falsy\"", c.name, result)
		}
	}
}

// TestInstanceOfBuiltinKind exercises INSTANCEOF against a builtin,
// non-KindObject receiver (spec.md §4.2/SPEC_FULL.md's uniform
// instanceof promise): 5 instanceof Int must walk vm.classes the same
// way getBuiltinMethod does, not hard-require KindObject.
func TestInstanceOfBuiltinKind(t *testing.T) {
	a := newAsm()
	a.pushConst(int32(5))
	nameIdx := a.constant("Int")
	a.opn(bytecode.OpGetGlobal, nameIdx)
	a.op(bytecode.OpInstanceOf)
	a.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(a.fn(0, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.Kind() != value.KindBool || !result.AsBool() {
		t.Errorf("5 instanceof Int = %v, want true", result)
	}
}

// TestInstanceOfBuiltinKindMismatch checks the negative case: a builtin
// value is not an instance of an unrelated builtin class.
func TestInstanceOfBuiltinKindMismatch(t *testing.T) {
	a := newAsm()
	a.pushConst("hello")
	nameIdx := a.constant("Int")
	a.opn(bytecode.OpGetGlobal, nameIdx)
	a.op(bytecode.OpInstanceOf)
	a.op(bytecode.OpReturn)

	vm := New()
	result, err := vm.Run(a.fn(0, 0))
	if err != nil {
		t.Fatalf("VM error: %v", err)
	}
	if result.Kind() != value.KindBool || result.AsBool() {
		t.Errorf(`"hello" instanceof Int = %v, want false`, result)
	}
}

func requireRuntimeError(t *testing.T, err error) *RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	return re
}
