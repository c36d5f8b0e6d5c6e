// Package vm implements the bytecode virtual machine for Slate.
//
// The VM is a stack-based interpreter, descended in shape from the
// teacher's pkg/vm: a flat value stack, an instruction pointer per call
// frame, a global map, and a switch-per-opcode dispatch loop. What
// changed going from smog to Slate is the opcode set (arithmetic goes
// through internal/numeric's promoting tower, property access walks
// internal/value's prototype chain, CLOSURE captures real upvalues
// instead of sharing a parent locals array) and the value
// representation itself (internal/value.Value instead of interface{}).
package vm

import (
	"fmt"

	"github.com/edadma/slate/internal/builtins"
	"github.com/edadma/slate/internal/numeric"
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
	"github.com/edadma/slate/pkg/bytecode"
)

const (
	stackSize   = 2048
	framesLimit = 512
)

// frame is one call-frame activation: the closure being executed, its
// instruction pointer, and the stack slot its locals begin at. Unlike
// the teacher's single fixed-size locals array shared by the whole VM,
// each Slate frame owns a window of the shared value stack (basePointer
// onward) so recursive and re-entrant calls don't clobber each other.
type frame struct {
	closure     *value.Value // nil for the top-level script frame
	fn          *bytecode.Function
	ip          int
	basePointer int
	name        string
}

// VM executes compiled Function records against Slate's Value
// representation. It is reusable: globals and registered classes
// persist across Run calls, mirroring the teacher's VM lifecycle.
type VM struct {
	stack []value.Value
	sp    int

	frames    []frame
	frameIdx  int
	openUpval map[int]*value.Upvalue // stack slot -> still-open upvalue

	globals map[string]value.Value
	classes map[string]*value.Class

	currentLocation *bytecode.DebugLocation
	debugger        *Debugger
}

// New creates a VM with the builtin class and function registry
// installed (spec.md §6.3's String/Array/Range/.../Period surface).
func New() *VM {
	vm := &VM{
		stack:     make([]value.Value, stackSize),
		frames:    make([]frame, framesLimit),
		openUpval: make(map[int]*value.Upvalue),
		globals:   make(map[string]value.Value),
		classes:   make(map[string]*value.Class),
	}
	builtins.Register(vm.globals, vm.classes)
	return vm
}

// Globals exposes the global table, used by the REPL driver to report
// top-level bindings and by tests to seed fixtures.
func (vm *VM) Globals() map[string]value.Value { return vm.globals }

// Run executes fn as the top-level script body. The stack is reset on
// every call; globals persist, matching the teacher's Run semantics.
func (vm *VM) Run(fn *bytecode.Function) (value.Value, error) {
	vm.sp = 0
	vm.frameIdx = 0
	// Reserve fn.NumLocals slots above basePointer before execution
	// starts, the same way invokeClosure reserves a callee's locals;
	// otherwise a top-level GET_LOCAL/SET_LOCAL would alias whatever the
	// expression stack happens to be using at slot 0..NumLocals-1.
	for i := 0; i < fn.NumLocals; i++ {
		if err := vm.push(value.Null); err != nil {
			return value.Value{}, vm.wrapError(err)
		}
	}
	vm.frames[0] = frame{fn: fn, ip: 0, basePointer: 0, name: "<script>"}
	vm.frameIdx = 1

	result, err := vm.run(0)
	if err != nil {
		return value.Value{}, vm.wrapError(err)
	}
	return result, nil
}

func (vm *VM) curFrame() *frame { return &vm.frames[vm.frameIdx-1] }

func (vm *VM) push(v value.Value) error {
	if vm.sp >= len(vm.stack) {
		return vmerr.Stackf("stack overflow")
	}
	vm.stack[vm.sp] = v
	vm.sp++
	return nil
}

func (vm *VM) pop() (value.Value, error) {
	if vm.sp <= 0 {
		return value.Value{}, vmerr.Stackf("stack underflow")
	}
	vm.sp--
	v := vm.stack[vm.sp]
	vm.stack[vm.sp] = value.Value{}
	return v, nil
}

func (vm *VM) top() value.Value {
	if vm.sp <= 0 {
		return value.Value{}
	}
	return vm.stack[vm.sp-1]
}

func (vm *VM) popN(n int) ([]value.Value, error) {
	if vm.sp < n {
		return nil, vmerr.Stackf("stack underflow: need %d, have %d", n, vm.sp)
	}
	out := make([]value.Value, n)
	copy(out, vm.stack[vm.sp-n:vm.sp])
	vm.sp -= n
	return out, nil
}

// nativeContext builds the callback context natives receive, wiring
// Invoke back through vm.callValue so a native (e.g. Value.ToString
// running a user-defined toString) can call Slate-level functions without this package's
// internal/value dependency becoming circular.
func (vm *VM) nativeContext() *value.Context {
	return &value.Context{
		Globals:  vm.globals,
		Location: vm.currentLocation,
		Invoke:   vm.callValue,
	}
}

// run is the main opcode dispatch loop. It returns when the outermost
// frame executes RETURN/HALT, or propagates the first runtime error.
func (vm *VM) run(stopAt int) (value.Value, error) {
	var scriptResult value.Value

	for vm.frameIdx > stopAt {
		f := vm.curFrame()
		if f.ip >= len(f.fn.Code) {
			return scriptResult, nil
		}
		op := bytecode.Opcode(f.fn.Code[f.ip])
		f.ip++

		var operand uint16
		if op.HasOperand() {
			operand = bytecode.DecodeOperand(f.fn.Code[f.ip:])
			f.ip += bytecode.OperandWidth
		}

		switch op {

		// --- stack ---

		case bytecode.OpPushConstant:
			c, err := vm.constantValue(f.fn, int(operand))
			if err != nil {
				return value.Value{}, err
			}
			if err := vm.push(c.Retain()); err != nil {
				return value.Value{}, err
			}

		case bytecode.OpPushNull:
			if err := vm.push(value.Null); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpPushUndefined:
			if err := vm.push(value.Undefined); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpPushTrue:
			if err := vm.push(value.True); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpPushFalse:
			if err := vm.push(value.False); err != nil {
				return value.Value{}, err
			}

		case bytecode.OpPop:
			v, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			v.Release()

		case bytecode.OpDup:
			if err := vm.push(vm.top().Retain()); err != nil {
				return value.Value{}, err
			}

		case bytecode.OpSetResult:
			scriptResult = vm.top()

		case bytecode.OpPopN:
			vs, err := vm.popN(int(operand))
			if err != nil {
				return value.Value{}, err
			}
			for _, v := range vs {
				v.Release()
			}

		case bytecode.OpPopNPreserveTop:
			top, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			vs, err := vm.popN(int(operand))
			if err != nil {
				return value.Value{}, err
			}
			for _, v := range vs {
				v.Release()
			}
			if err := vm.push(top); err != nil {
				return value.Value{}, err
			}

		// --- arithmetic ---

		case bytecode.OpAdd:
			if err := vm.add(); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpSubtract:
			if err := vm.binaryNumeric(numeric.Subtract); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpMultiply:
			if err := vm.binaryNumeric(numeric.Multiply); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpDivide:
			if err := vm.binaryNumeric(numeric.Divide); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpMod:
			if err := vm.binaryNumeric(numeric.Mod); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpPower:
			if err := vm.binaryNumeric(numeric.Power); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpFloorDiv:
			if err := vm.binaryNumeric(numeric.FloorDiv); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpNegate:
			a, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			r, err := numeric.Negate(a)
			a.Release()
			if err != nil {
				return value.Value{}, err
			}
			if err := vm.push(r); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpIncrement:
			a, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			r, err := numeric.Add(a, value.Int32(1))
			a.Release()
			if err != nil {
				return value.Value{}, err
			}
			if err := vm.push(r); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpDecrement:
			a, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			r, err := numeric.Subtract(a, value.Int32(1))
			a.Release()
			if err != nil {
				return value.Value{}, err
			}
			if err := vm.push(r); err != nil {
				return value.Value{}, err
			}

		// --- comparison ---

		case bytecode.OpEqual:
			if err := vm.binaryBool(func(a, b value.Value) (bool, error) { return a.Equals(b), nil }); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpNotEqual:
			if err := vm.binaryBool(func(a, b value.Value) (bool, error) { return !a.Equals(b), nil }); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpLess:
			if err := vm.binaryCompare(func(c int) bool { return c < 0 }); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpLessEqual:
			if err := vm.binaryCompare(func(c int) bool { return c <= 0 }); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpGreater:
			if err := vm.binaryCompare(func(c int) bool { return c > 0 }); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpGreaterEqual:
			if err := vm.binaryCompare(func(c int) bool { return c >= 0 }); err != nil {
				return value.Value{}, err
			}

		// --- logical ---

		case bytecode.OpNot:
			a, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			t := a.Truthy()
			a.Release()
			if err := vm.push(value.Bool(!t)); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpAnd:
			if err := vm.binaryBool(func(a, b value.Value) (bool, error) { return a.Truthy() && b.Truthy(), nil }); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpOr:
			if err := vm.binaryBool(func(a, b value.Value) (bool, error) { return a.Truthy() || b.Truthy(), nil }); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpNullCoalesce:
			b, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			a, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			if a.IsNullish() {
				a.Release()
				if err := vm.push(b); err != nil {
					return value.Value{}, err
				}
			} else {
				b.Release()
				if err := vm.push(a); err != nil {
					return value.Value{}, err
				}
			}

		// --- bitwise ---

		case bytecode.OpBitwiseAnd:
			if err := vm.binaryNumeric(numeric.BitwiseAnd); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpBitwiseOr:
			if err := vm.binaryNumeric(numeric.BitwiseOr); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpBitwiseXor:
			if err := vm.binaryNumeric(numeric.BitwiseXor); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpBitwiseNot:
			a, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			r, err := numeric.BitwiseNot(a)
			a.Release()
			if err != nil {
				return value.Value{}, err
			}
			if err := vm.push(r); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpLeftShift:
			if err := vm.binaryNumeric(numeric.LeftShift); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpRightShift:
			if err := vm.binaryNumeric(numeric.RightShift); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpLogicalRightShift:
			if err := vm.binaryNumeric(numeric.LogicalRightShift); err != nil {
				return value.Value{}, err
			}

		// --- variables ---

		case bytecode.OpGetLocal:
			slot := f.basePointer + int(operand)
			if err := vm.push(vm.stack[slot].Retain()); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpSetLocal:
			slot := f.basePointer + int(operand)
			v := vm.top()
			old := vm.stack[slot]
			vm.stack[slot] = v.Retain()
			old.Release()

		case bytecode.OpGetUpvalue:
			if f.closure == nil {
				return value.Value{}, vmerr.Compilef("GET_UPVALUE outside a closure frame")
			}
			_, upvalues := f.closure.AsClosure()
			if int(operand) >= len(upvalues) {
				return value.Value{}, vmerr.Boundsf("upvalue index %d out of range", operand)
			}
			if err := vm.push(upvalues[operand].Get().Retain()); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpSetUpvalue:
			if f.closure == nil {
				return value.Value{}, vmerr.Compilef("SET_UPVALUE outside a closure frame")
			}
			_, upvalues := f.closure.AsClosure()
			if int(operand) >= len(upvalues) {
				return value.Value{}, vmerr.Boundsf("upvalue index %d out of range", operand)
			}
			upvalues[operand].Set(vm.top().Retain())

		case bytecode.OpGetGlobal:
			name, err := vm.constantString(f.fn, int(operand))
			if err != nil {
				return value.Value{}, err
			}
			g, ok := vm.globals[name]
			if !ok {
				return value.Value{}, vmerr.Namef("undefined global: %s", name)
			}
			if err := vm.push(g.Retain()); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpSetGlobal:
			name, err := vm.constantString(f.fn, int(operand))
			if err != nil {
				return value.Value{}, err
			}
			if _, ok := vm.globals[name]; !ok {
				return value.Value{}, vmerr.Namef("undefined global: %s", name)
			}
			v := vm.top()
			old := vm.globals[name]
			vm.globals[name] = v.Retain()
			old.Release()
		case bytecode.OpDefineGlobal:
			name, err := vm.constantString(f.fn, int(operand))
			if err != nil {
				return value.Value{}, err
			}
			v, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			vm.globals[name] = v

		// --- property / index ---

		case bytecode.OpGetProperty:
			name, err := vm.constantString(f.fn, int(operand))
			if err != nil {
				return value.Value{}, err
			}
			recv, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			result, err := vm.getProperty(recv, name)
			recv.Release()
			if err != nil {
				return value.Value{}, err
			}
			if err := vm.push(result); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpSetProperty:
			name, err := vm.constantString(f.fn, int(operand))
			if err != nil {
				return value.Value{}, err
			}
			val, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			recv, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			if recv.Kind() != value.KindObject {
				recv.Release()
				val.Release()
				return value.Value{}, vmerr.Typef("cannot set property %q on a %s", name, recv.TypeName())
			}
			recv.ObjectSet(name, val.Retain())
			if err := vm.push(val); err != nil {
				return value.Value{}, err
			}
			recv.Release()

		case bytecode.OpGetIndex:
			idx, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			recv, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			result, err := vm.getIndex(recv, idx)
			recv.Release()
			idx.Release()
			if err != nil {
				return value.Value{}, err
			}
			if err := vm.push(result); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpSetIndex:
			val, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			idx, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			recv, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			if err := vm.setIndex(recv, idx, val); err != nil {
				recv.Release()
				idx.Release()
				val.Release()
				return value.Value{}, err
			}
			recv.Release()
			idx.Release()
			if err := vm.push(val); err != nil {
				return value.Value{}, err
			}

		case bytecode.OpIn:
			b, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			a, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			result, err := vm.inOperator(a, b)
			a.Release()
			b.Release()
			if err != nil {
				return value.Value{}, err
			}
			if err := vm.push(value.Bool(result)); err != nil {
				return value.Value{}, err
			}

		case bytecode.OpInstanceOf:
			b, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			a, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			result := b.Kind() == value.KindClass && vm.instanceOf(a, b.AsClass())
			a.Release()
			b.Release()
			if err := vm.push(value.Bool(result)); err != nil {
				return value.Value{}, err
			}

		// --- aggregates ---

		case bytecode.OpBuildArray:
			elems, err := vm.popN(int(operand))
			if err != nil {
				return value.Value{}, err
			}
			if err := vm.push(value.Array(elems)); err != nil {
				return value.Value{}, err
			}

		case bytecode.OpBuildObject:
			pairs, err := vm.popN(int(operand) * 2)
			if err != nil {
				return value.Value{}, err
			}
			obj := value.Object()
			for i := 0; i < len(pairs); i += 2 {
				key := pairs[i]
				obj.ObjectSet(key.AsString(), pairs[i+1])
				key.Release()
			}
			if err := vm.push(obj); err != nil {
				return value.Value{}, err
			}

		case bytecode.OpBuildRange:
			end, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			start, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			r := value.Range(int64(rangeEndpoint(start)), int64(rangeEndpoint(end)), operand != 0)
			start.Release()
			end.Release()
			if err := vm.push(r); err != nil {
				return value.Value{}, err
			}

		case bytecode.OpClosure:
			if int(operand) >= len(f.fn.Constants) {
				return value.Value{}, vmerr.Boundsf("constant index %d out of range", operand)
			}
			nestedFn, ok := f.fn.Constants[operand].(*bytecode.Function)
			if !ok {
				return value.Value{}, vmerr.Compilef("CLOSURE operand %d is not a function constant", operand)
			}
			upvalues := make([]*value.Upvalue, len(nestedFn.Upvalues))
			for i, desc := range nestedFn.Upvalues {
				switch desc.Kind {
				case bytecode.UpvalueLocal:
					upvalues[i] = vm.captureUpvalue(f.basePointer + int(desc.Index))
				case bytecode.UpvalueUpvalue:
					curClosure := f.closure
					if curClosure == nil {
						return value.Value{}, vmerr.Compilef("upvalue capture outside a closure frame")
					}
					_, parentUpvalues := curClosure.AsClosure()
					upvalues[i] = parentUpvalues[desc.Index]
				}
			}
			if err := vm.push(value.Closure(nestedFn, upvalues)); err != nil {
				return value.Value{}, err
			}

		// --- calls ---

		case bytecode.OpCall:
			if err := vm.call(int(operand)); err != nil {
				return value.Value{}, err
			}
		case bytecode.OpCallMethod:
			if err := vm.callMethod(int(operand)); err != nil {
				return value.Value{}, err
			}

		// --- control flow ---

		case bytecode.OpJump:
			f.ip += bytecode.DecodeJumpOffset(operand)
		case bytecode.OpJumpIfFalse:
			v := vm.top()
			if !v.Truthy() {
				f.ip += bytecode.DecodeJumpOffset(operand)
			}
		case bytecode.OpJumpIfTrue:
			v := vm.top()
			if v.Truthy() {
				f.ip += bytecode.DecodeJumpOffset(operand)
			}
		case bytecode.OpLoop:
			f.ip -= int(operand)

		case bytecode.OpReturn:
			ret, err := vm.pop()
			if err != nil {
				return value.Value{}, err
			}
			vm.closeUpvaluesFrom(f.basePointer)
			for vm.sp > f.basePointer {
				vm.sp--
				vm.stack[vm.sp].Release()
				vm.stack[vm.sp] = value.Value{}
			}
			vm.frameIdx--
			if vm.frameIdx == stopAt {
				return ret, nil
			}
			if err := vm.push(ret); err != nil {
				return value.Value{}, err
			}

		case bytecode.OpHalt:
			return scriptResult, nil

		// --- debug ---

		case bytecode.OpSetDebugLocation:
			if int(operand) >= len(f.fn.Constants) {
				return value.Value{}, vmerr.Boundsf("constant index %d out of range", operand)
			}
			loc, ok := f.fn.Constants[operand].(*bytecode.DebugLocation)
			if !ok {
				return value.Value{}, vmerr.Compilef("SET_DEBUG_LOCATION operand %d is not a debug location constant", operand)
			}
			vm.currentLocation = loc
		case bytecode.OpClearDebugLocation:
			vm.currentLocation = nil

		default:
			return value.Value{}, vmerr.Compilef("unimplemented opcode %s", op)
		}

		if vm.debugger != nil && vm.debugger.ShouldPause() {
			if !vm.debugger.InteractivePrompt(vm, f.fn) {
				return value.Value{}, fmt.Errorf("debugging session terminated")
			}
		}
	}
}

func rangeEndpoint(v value.Value) int32 {
	if v.Kind() == value.KindInt32 {
		return v.AsInt32()
	}
	if v.Kind() == value.KindNumber {
		return int32(v.AsNumber())
	}
	if b, ok := v.AsBigInt().TryInt32(); ok {
		return b
	}
	return 0
}

// add implements ADD (spec.md §4.2): two strings concatenate; a string
// and anything else concatenates after converting the other operand
// through the universal toString. Otherwise it falls back to the
// numeric tower.
func (vm *VM) add() error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}
	if a.Kind() == value.KindString || b.Kind() == value.KindString {
		as, err := a.ToString(vm.nativeContext())
		if err != nil {
			a.Release()
			b.Release()
			return err
		}
		bs, err := b.ToString(vm.nativeContext())
		a.Release()
		b.Release()
		if err != nil {
			return err
		}
		return vm.push(value.String(as + bs))
	}
	r, err := numeric.Add(a, b)
	a.Release()
	b.Release()
	if err != nil {
		return err
	}
	return vm.push(r)
}

func (vm *VM) binaryNumeric(op func(a, b value.Value) (value.Value, error)) error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}
	r, err := op(a, b)
	a.Release()
	b.Release()
	if err != nil {
		return err
	}
	return vm.push(r)
}

func (vm *VM) binaryBool(op func(a, b value.Value) (bool, error)) error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}
	r, err := op(a, b)
	a.Release()
	b.Release()
	if err != nil {
		return err
	}
	return vm.push(value.Bool(r))
}

func (vm *VM) binaryCompare(test func(int) bool) error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}
	c, err := value.Compare(a, b)
	a.Release()
	b.Release()
	if err != nil {
		return err
	}
	return vm.push(value.Bool(test(c)))
}

func (vm *VM) constantValue(fn *bytecode.Function, idx int) (value.Value, error) {
	if idx < 0 || idx >= len(fn.Constants) {
		return value.Value{}, vmerr.Boundsf("constant index %d out of range", idx)
	}
	return constantToValue(fn.Constants[idx])
}

func (vm *VM) constantString(fn *bytecode.Function, idx int) (string, error) {
	if idx < 0 || idx >= len(fn.Constants) {
		return "", vmerr.Boundsf("constant index %d out of range", idx)
	}
	s, ok := fn.Constants[idx].(string)
	if !ok {
		return "", vmerr.Typef("expected string constant at index %d", idx)
	}
	return s, nil
}

// captureStackTrace snapshots the active call frames, innermost last,
// for attachment to a RuntimeError (spec.md §7).
func (vm *VM) captureStackTrace() []StackFrame {
	trace := make([]StackFrame, 0, vm.frameIdx)
	for i := 0; i < vm.frameIdx; i++ {
		f := &vm.frames[i]
		loc := f.fn.LocationAt(f.ip)
		trace = append(trace, StackFrame{Name: f.name, Location: loc})
	}
	return trace
}
