package value

import "github.com/edadma/slate/pkg/bytecode"

// closureObj pairs a compiled Function with the upvalues it captured at
// creation time, generalizing the teacher's block model (which simply
// shared the parent frame's locals array) into Slate's explicit
// upvalue-array closures (spec.md §4.5): each captured variable gets
// its own cell so a closure keeps working correctly after its
// defining frame has returned.
type closureObj struct {
	fn       *bytecode.Function
	upvalues []*Upvalue
	refs     int32
}

func (c *closureObj) retain()  { c.refs++ }
func (c *closureObj) release() { c.refs-- }

// Upvalue is a single captured-variable cell. Open upvalues alias a
// live stack slot (via Location); Close copies the current value in
// and severs the alias, the point at which the captured frame returns.
type Upvalue struct {
	Location *Value // non-nil while open: a pointer into the VM's stack
	Closed   Value  // valid once Location is nil
}

func (u *Upvalue) Get() Value {
	if u.Location != nil {
		return *u.Location
	}
	return u.Closed
}

func (u *Upvalue) Set(v Value) {
	if u.Location != nil {
		*u.Location = v
		return
	}
	u.Closed = v
}

func (u *Upvalue) Close() {
	if u.Location != nil {
		u.Closed = *u.Location
		u.Location = nil
	}
}

// Closure constructs a closure value over fn with the given upvalue
// cells, already resolved by the interpreter's CLOSURE handler.
func Closure(fn *bytecode.Function, upvalues []*Upvalue) Value {
	return Value{kind: KindClosure, heap: &closureObj{fn: fn, upvalues: upvalues, refs: 1}}
}

func (v Value) AsClosure() (*bytecode.Function, []*Upvalue) {
	c := v.heap.(*closureObj)
	return c.fn, c.upvalues
}

// --- BoundMethod: a method looked up from an instance, paired with its
// receiver, the value GET_PROPERTY produces for a method name so it can
// later be CALLed without a separate receiver argument. ---

type boundMethodObj struct {
	receiver Value
	method   Value // KindClosure or KindNative
	refs     int32
}

func (b *boundMethodObj) retain() {
	b.refs++
}
func (b *boundMethodObj) release() { b.refs-- }

func BoundMethod(receiver, method Value) Value {
	return Value{kind: KindBoundMethod, heap: &boundMethodObj{receiver: receiver.Retain(), method: method.Retain()}}
}

func (v Value) AsBoundMethod() (receiver, method Value) {
	b := v.heap.(*boundMethodObj)
	return b.receiver, b.method
}
