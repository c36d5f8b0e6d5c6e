package builtins

import (
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// registerIteratorClass installs Iterator's constructor and instance
// methods, the same operations the iterator/hasNext/next free
// functions expose, as a receiver-style interface (`it.hasNext()`/
// `it.next()`) alongside the free-function form.
func registerIteratorClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "Iterator", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "Iterator"); err != nil {
			return value.Value{}, err
		}
		switch args[0].Kind() {
		case value.KindArray, value.KindRange:
			return value.Iterator(args[0]), nil
		default:
			return value.Value{}, vmerr.Typef("Iterator: %s is not iterable", args[0].TypeName())
		}
	}

	cls.Methods["hasNext"] = method("hasNext", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].HasNext()), nil
	})
	cls.Methods["next"] = method("next", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		v, ok := args[0].Next()
		if !ok {
			return value.Value{}, vmerr.Boundsf("next: iterator exhausted")
		}
		return v, nil
	})

	return cls
}
