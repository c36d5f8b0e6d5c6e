package builtins

import (
	"github.com/edadma/slate/internal/value"
)

// registerObjectClass installs the map-style methods SPEC_FULL.md §6.3
// adds on top of bare GET_INDEX/SET_INDEX/IN support for object
// literals: keys(), values(), has(), delete(), size().
func registerObjectClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "Object", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 0, "Object"); err != nil {
			return value.Value{}, err
		}
		return value.Object(), nil
	}

	cls.Methods["keys"] = method("keys", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		keys := args[0].ObjectKeys()
		elems := make([]value.Value, len(keys))
		for i, k := range keys {
			elems[i] = value.String(k)
		}
		return value.Array(elems), nil
	})
	cls.Methods["values"] = method("values", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		keys := args[0].ObjectKeys()
		elems := make([]value.Value, len(keys))
		for i, k := range keys {
			v, _ := args[0].ObjectGet(k)
			elems[i] = v
		}
		return value.Array(elems), nil
	})
	cls.Methods["has"] = method("has", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireString(args[1], "has"); err != nil {
			return value.Value{}, err
		}
		_, ok := args[0].ObjectGet(args[1].AsString())
		return value.Bool(ok), nil
	})
	cls.Methods["delete"] = method("delete", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireString(args[1], "delete"); err != nil {
			return value.Value{}, err
		}
		return value.Bool(args[0].ObjectDelete(args[1].AsString())), nil
	})
	cls.Methods["size"] = method("size", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].ObjectLen())), nil
	})

	return cls
}
