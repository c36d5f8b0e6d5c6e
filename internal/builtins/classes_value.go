package builtins

import (
	"github.com/edadma/slate/internal/value"
)

// registerValueClass installs the root "Value" class every other
// builtin class parents on (spec.md §4.4/§9: "a root class ('Value')
// that carries universal methods such as toString"). Object instances
// created without an explicit class also resolve here once their own
// lookup fails, since Object's class chain terminates at this record.
func registerValueClass(globals map[string]value.Value, classes map[string]*value.Class) *value.Class {
	root := defineClass(globals, classes, "Value", nil)

	root.Methods["toString"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "toString"); err != nil {
			return value.Value{}, err
		}
		s, err := args[0].ToString(ctx)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	})

	root.Methods["equals"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 2, "equals"); err != nil {
			return value.Value{}, err
		}
		return value.Bool(args[0].Equals(args[1])), nil
	})

	root.Methods["type"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "type"); err != nil {
			return value.Value{}, err
		}
		return value.String(args[0].TypeName()), nil
	})

	return root
}
