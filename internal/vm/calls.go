package vm

import (
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// call implements CALL: argCount arguments and the callee sit on top of
// the stack (callee below its arguments), popped and dispatched
// according to the callee's kind (spec.md §4.5).
func (vm *VM) call(argCount int) error {
	args, err := vm.popN(argCount)
	if err != nil {
		return err
	}
	callee, err := vm.pop()
	if err != nil {
		return err
	}
	result, err := vm.invoke(callee, args)
	callee.Release()
	for _, a := range args {
		a.Release()
	}
	if err != nil {
		return err
	}
	return vm.push(result)
}

// callMethod implements CALL_METHOD. GET_PROPERTY already resolves a
// method name to a self-contained BoundMethod (receiver folded in per
// spec.md §4.4), so the stack shape at this point is identical to a
// plain CALL; the separate opcode exists so callMethod can report a
// method-call-specific arity/type error instead of a generic one.
func (vm *VM) callMethod(argCount int) error {
	args, err := vm.popN(argCount)
	if err != nil {
		return err
	}
	methodVal, err := vm.pop()
	if err != nil {
		return err
	}
	if !methodVal.IsCallable() {
		methodVal.Release()
		for _, a := range args {
			a.Release()
		}
		return vmerr.Typef("%s is not a method", methodVal.TypeName())
	}
	result, err := vm.invoke(methodVal, args)
	methodVal.Release()
	for _, a := range args {
		a.Release()
	}
	if err != nil {
		return err
	}
	return vm.push(result)
}

// callValue is the Invoke callback handed to natives via Context, so a
// builtin (e.g. Value.ToString running a user-defined toString) can call back into Slate code
// without internal/value importing this package.
func (vm *VM) callValue(callee value.Value, args []value.Value) (value.Value, error) {
	return vm.invoke(callee, args)
}

// invoke dispatches a call to a closure, a bound method, or a native
// function, regardless of which opcode produced the callee value.
func (vm *VM) invoke(callee value.Value, args []value.Value) (value.Value, error) {
	switch callee.Kind() {
	case value.KindClosure:
		return vm.invokeClosure(callee, args)
	case value.KindNative:
		return callee.AsNative()(vm.nativeContext(), args)
	case value.KindBoundMethod:
		receiver, method := callee.AsBoundMethod()
		full := make([]value.Value, 0, len(args)+1)
		full = append(full, receiver)
		full = append(full, args...)
		return vm.invoke(method, full)
	case value.KindClass:
		cls := callee.AsClass()
		if cls.Native == nil {
			return value.Value{}, vmerr.Typef("%s has no constructor", cls.Name)
		}
		return cls.Native(vm.nativeContext(), args)
	default:
		return value.Value{}, vmerr.Typef("%s is not callable", callee.TypeName())
	}
}

func (vm *VM) invokeClosure(closureVal value.Value, args []value.Value) (value.Value, error) {
	fn, _ := closureVal.AsClosure()
	if len(args) != fn.NumParams {
		return value.Value{}, vmerr.Arityf("%s expects %d argument(s), got %d", nameOrAnon(fn.Name), fn.NumParams, len(args))
	}
	if vm.frameIdx >= len(vm.frames) {
		return value.Value{}, vmerr.Stackf("call stack overflow")
	}

	base := vm.sp
	for _, a := range args {
		if err := vm.push(a.Retain()); err != nil {
			return value.Value{}, err
		}
	}
	for i := len(args); i < fn.NumLocals; i++ {
		if err := vm.push(value.Null); err != nil {
			return value.Value{}, err
		}
	}

	stopAt := vm.frameIdx
	vm.frames[vm.frameIdx] = frame{closure: &closureVal, fn: fn, ip: 0, basePointer: base, name: nameOrAnon(fn.Name)}
	vm.frameIdx++

	result, err := vm.run(stopAt)
	if err != nil {
		return value.Value{}, err
	}
	return result, nil
}

func nameOrAnon(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}
