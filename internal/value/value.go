// Package value implements Slate's tagged-value representation: the
// small struct every VM stack slot, local, global, and field holds, plus
// the reference-counted heap object families it can point to (strings,
// arrays, objects, classes, ranges, iterators, buffers, closures, and
// the seven date/time kinds).
//
// The design mirrors the teacher's own split between an unboxed
// primitive tier and a `heapObject`-rooted family of reference types —
// smog's pkg/vm held primitives inline on interface{} stack slots and
// pointer types for everything else; Slate tags that same split
// explicitly with a Kind discriminant so dispatch and refcounting don't
// need a type switch on every operation.
package value

import (
	"math"

	"github.com/edadma/slate/internal/bigint"
	"github.com/edadma/slate/pkg/bytecode"
)

// Kind discriminates the variant held by a Value.
type Kind byte

const (
	KindNull Kind = iota
	KindUndefined
	KindBool
	KindInt32
	KindBigInt
	KindNumber
	KindString
	KindStringBuilder
	KindArray
	KindObject
	KindClass
	KindRange
	KindIterator
	KindBuffer
	KindBufferBuilder
	KindBufferReader
	KindClosure
	KindNative
	KindBoundMethod
	KindLocalDate
	KindLocalTime
	KindLocalDateTime
	KindZonedDateTime
	KindInstant
	KindDuration
	KindPeriod
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindUndefined:
		return "Undefined"
	case KindBool:
		return "Boolean"
	case KindInt32:
		return "Int"
	case KindBigInt:
		return "Int"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindStringBuilder:
		return "StringBuilder"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	case KindClass:
		return "Class"
	case KindRange:
		return "Range"
	case KindIterator:
		return "Iterator"
	case KindBuffer:
		return "Buffer"
	case KindBufferBuilder:
		return "BufferBuilder"
	case KindBufferReader:
		return "BufferReader"
	case KindClosure:
		return "Function"
	case KindNative:
		return "Function"
	case KindBoundMethod:
		return "Function"
	case KindLocalDate:
		return "LocalDate"
	case KindLocalTime:
		return "LocalTime"
	case KindLocalDateTime:
		return "LocalDateTime"
	case KindZonedDateTime:
		return "ZonedDateTime"
	case KindInstant:
		return "Instant"
	case KindDuration:
		return "Duration"
	case KindPeriod:
		return "Period"
	default:
		return "Unknown"
	}
}

// heapObject is satisfied by every reference-counted payload a Value
// can carry. Retain/Release follow the teacher's ownership discipline
// (pkg/vm's push/pop retain/release protocol), generalized from smog's
// single Instance/Array pair to Slate's full heap type family.
type heapObject interface {
	retain()
	release()
}

// Value is the VM's universal tagged union. It is deliberately a plain
// struct (not an interface) so that pushing and popping the operand
// stack never allocates: only the heap-backed kinds carry a pointer.
type Value struct {
	kind Kind

	b   bool
	i32 int32
	num float64

	big *bigint.Int

	heap heapObject

	native NativeFunc

	// class is an optional, non-owning pointer to the Class an Object
	// instance was constructed from; used by property lookup to walk
	// the prototype chain. It is nil for every non-Object kind.
	class *Class

	// loc is an optional source location carried by the value, set only
	// through WithLocation. The interpreter does not set it:
	// SET_DEBUG_LOCATION records the location on the VM, and runtime
	// errors take it from there.
	loc *bytecode.DebugLocation
}

// NativeFunc is the signature of a Go-implemented builtin. Context
// carries what natives need to call back into running Slate code (e.g.
// invoking a user-overridden toString) without the value package
// importing internal/vm.
type NativeFunc func(ctx *Context, args []Value) (Value, error)

// Context is handed to every native call.
type Context struct {
	Globals  map[string]Value
	Location *bytecode.DebugLocation
	// Invoke calls a Slate-level callable (closure, bound method, or
	// another native) with the given arguments, returning its result.
	// Supplied by internal/vm; nil in tests that don't need callbacks.
	Invoke func(callee Value, args []Value) (Value, error)
}

// --- constructors ---

var (
	Null      = Value{kind: KindNull}
	Undefined = Value{kind: KindUndefined}
	True      = Value{kind: KindBool, b: true}
	False     = Value{kind: KindBool, b: false}
)

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

func Int32(n int32) Value { return Value{kind: KindInt32, i32: n} }

func BigInt(b *bigint.Int) Value { return Value{kind: KindBigInt, heap: bigHeap{b}, big: b} }

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func Native(fn NativeFunc) Value { return Value{kind: KindNative, native: fn} }

// bigHeap adapts *bigint.Int to heapObject without exporting bigint's
// own Retain/Release naming into the value package's vocabulary.
type bigHeap struct{ i *bigint.Int }

func (h bigHeap) retain()  { h.i.Retain() }
func (h bigHeap) release() { h.i.Release() }

// --- accessors ---

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNullish() bool   { return v.kind == KindNull || v.kind == KindUndefined }
func (v Value) IsBool() bool      { return v.kind == KindBool }
func (v Value) IsInt32() bool     { return v.kind == KindInt32 }
func (v Value) IsBigInt() bool    { return v.kind == KindBigInt }
func (v Value) IsNumber() bool    { return v.kind == KindNumber }
func (v Value) IsNumeric() bool {
	return v.kind == KindInt32 || v.kind == KindBigInt || v.kind == KindNumber
}
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsCallable() bool {
	return v.kind == KindClosure || v.kind == KindNative || v.kind == KindBoundMethod || v.kind == KindClass
}

func (v Value) AsBool() bool           { return v.b }
func (v Value) AsInt32() int32         { return v.i32 }
func (v Value) AsBigInt() *bigint.Int  { return v.big }
func (v Value) AsNumber() float64      { return v.num }
func (v Value) AsNative() NativeFunc   { return v.native }
func (v Value) Class() *Class          { return v.class }
func (v Value) Location() *bytecode.DebugLocation { return v.loc }

// WithLocation returns a copy of v tagged with loc. The interpreter does
// not call it (see the loc field).
func (v Value) WithLocation(loc *bytecode.DebugLocation) Value {
	v.loc = loc
	return v
}

// WithClass returns a copy of v bound to cls, used when constructing an
// instance of a user-defined class.
func (v Value) WithClass(cls *Class) Value {
	v.class = cls
	return v
}

// Heap exposes the underlying heap object for kind-specific accessors
// defined alongside each heap type (e.g. AsString, AsArray).
func (v Value) heapPtr() heapObject { return v.heap }

// Retain/Release implement the teacher's push/pop ownership protocol,
// generalized across every heap-backed kind: stack slots, locals, and
// object fields retain on store and release on overwrite/pop.
func (v Value) Retain() Value {
	if v.heap != nil {
		v.heap.retain()
	}
	return v
}

func (v Value) Release() {
	if v.heap != nil {
		v.heap.release()
	}
}

// Truthy implements Slate's truthiness rule (spec.md §4.2): null,
// undefined, and false are falsy, as are the numeric/string zero
// values (int32 0, bigint 0, number 0.0, number NaN, empty string).
// Everything else, including every heap-backed object/array/map kind,
// is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull, KindUndefined:
		return false
	case KindBool:
		return v.b
	case KindInt32:
		return v.i32 != 0
	case KindBigInt:
		return !v.big.IsZero()
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindString:
		return v.AsString() != ""
	default:
		return true
	}
}

// TypeName returns the Slate-visible class name used in error messages
// and by the `typeof`-style builtins.
func (v Value) TypeName() string {
	if v.kind == KindObject && v.class != nil {
		return v.class.Name
	}
	return v.kind.String()
}
