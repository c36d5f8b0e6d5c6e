// Package builtins implements Slate's native surface: the free
// functions and builtin classes spec.md §6.3 names. Every builtin is a
// plain value.NativeFunc, so this package never imports internal/vm —
// internal/vm imports builtins instead, the same dependency direction
// the teacher keeps between pkg/vm and its primitives table
// (pkg/vm/primitives.go registers Go funcs into the VM, never the
// reverse).
package builtins

import "github.com/edadma/slate/internal/value"

// Register installs every free function into globals and every builtin
// class (with its method table and, where applicable, constructor) into
// both globals (by name) and classes (by the same name, keyed the way
// Value.TypeName() reports it, so property/method dispatch can find it).
func Register(globals map[string]value.Value, classes map[string]*value.Class) {
	registerNumeric(globals)
	registerIO(globals)
	registerParsing(globals)
	registerTypeIteration(globals)
	registerBufferFreeFunctions(globals)

	root := registerValueClass(globals, classes)
	registerStringClass(globals, classes, root)
	registerStringBuilderClass(globals, classes, root)
	registerArrayClass(globals, classes, root)
	registerObjectClass(globals, classes, root)
	registerRangeClass(globals, classes, root)
	registerIteratorClass(globals, classes, root)
	registerBufferClass(globals, classes, root)
	registerBufferBuilderClass(globals, classes, root)
	registerBufferReaderClass(globals, classes, root)
	registerIntClass(globals, classes, root)
	registerLocalDateClass(globals, classes, root)
	registerLocalTimeClass(globals, classes, root)
	registerLocalDateTimeClass(globals, classes, root)
	registerZonedDateTimeClass(globals, classes, root)
	registerInstantClass(globals, classes, root)
	registerDurationClass(globals, classes, root)
	registerPeriodClass(globals, classes, root)
}

// defineClass builds a *value.Class parented on root (spec.md §4.4's
// single-parent chain terminating at the universal "Value" class),
// registers it into both maps under name, and returns it so callers can
// populate Methods/Native afterward.
func defineClass(globals map[string]value.Value, classes map[string]*value.Class, name string, root *value.Class) *value.Class {
	cls := value.NewClass(name, root)
	classes[name] = cls
	globals[name] = value.ClassValue(cls)
	return cls
}

func native(fn value.NativeFunc) value.Value { return value.Native(fn) }

// method wraps fn as a native method with a fixed arity check, args[0]
// being the receiver (the shape every BoundMethod call produces — see
// internal/vm/properties.go's getProperty/getBuiltinMethod). name is
// used only for the arity error message.
func method(name string, arity int, fn func(ctx *value.Context, args []value.Value) (value.Value, error)) value.Value {
	return native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, arity, name); err != nil {
			return value.Value{}, err
		}
		return fn(ctx, args)
	})
}
