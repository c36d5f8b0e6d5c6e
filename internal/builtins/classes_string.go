package builtins

import (
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

func requireString(v value.Value, who string) error {
	if !v.IsString() {
		return vmerr.Typef("%s expects a String, got %s", who, v.TypeName())
	}
	return nil
}

// registerStringClass installs String's instance methods over
// internal/value's rune-indexed string operations.
func registerStringClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "String", root)

	cls.Methods["length"] = method("length", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].RuneLen())), nil
	})
	cls.Methods["toUpper"] = method("toUpper", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return args[0].ToUpper(), nil
	})
	cls.Methods["toLower"] = method("toLower", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return args[0].ToLower(), nil
	})
	cls.Methods["trim"] = method("trim", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return args[0].Trim(), nil
	})
	cls.Methods["isBlank"] = method("isBlank", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Bool(args[0].IsBlank()), nil
	})
	cls.Methods["slice"] = method("slice", 3, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		start, err := requireInt(args[1], "slice")
		if err != nil {
			return value.Value{}, err
		}
		end, err := requireInt(args[2], "slice")
		if err != nil {
			return value.Value{}, err
		}
		n := args[0].RuneLen()
		if start < 0 || end > n || start > end {
			return value.Value{}, vmerr.Boundsf("slice: range [%d, %d) out of bounds for length %d", start, end, n)
		}
		return args[0].StringSlice(start, end), nil
	})
	cls.Methods["contains"] = method("contains", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireString(args[1], "contains"); err != nil {
			return value.Value{}, err
		}
		return value.Bool(args[0].Contains(args[1])), nil
	})
	cls.Methods["indexOf"] = method("indexOf", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireString(args[1], "indexOf"); err != nil {
			return value.Value{}, err
		}
		return value.Int32(int32(args[0].IndexOf(args[1]))), nil
	})
	cls.Methods["startsWith"] = method("startsWith", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireString(args[1], "startsWith"); err != nil {
			return value.Value{}, err
		}
		return value.Bool(args[0].StartsWith(args[1])), nil
	})
	cls.Methods["endsWith"] = method("endsWith", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireString(args[1], "endsWith"); err != nil {
			return value.Value{}, err
		}
		return value.Bool(args[0].EndsWith(args[1])), nil
	})
	cls.Methods["split"] = method("split", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireString(args[1], "split"); err != nil {
			return value.Value{}, err
		}
		return args[0].Split(args[1]), nil
	})
	cls.Methods["replace"] = method("replace", 3, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireString(args[1], "replace"); err != nil {
			return value.Value{}, err
		}
		if err := requireString(args[2], "replace"); err != nil {
			return value.Value{}, err
		}
		return args[0].Replace(args[1], args[2]), nil
	})
	cls.Methods["repeat"] = method("repeat", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "repeat")
		if err != nil {
			return value.Value{}, err
		}
		if n < 0 {
			return value.Value{}, vmerr.Domainf("repeat: count must be >= 0, got %d", n)
		}
		return args[0].Repeat(n), nil
	})
	cls.Methods["charAt"] = method("charAt", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		i, err := requireInt(args[1], "charAt")
		if err != nil {
			return value.Value{}, err
		}
		if i < 0 || i >= args[0].RuneLen() {
			return value.Value{}, vmerr.Boundsf("charAt: index %d out of range [0, %d)", i, args[0].RuneLen())
		}
		return value.String(string(args[0].RuneAt(i))), nil
	})

	return cls
}

// registerStringBuilderClass installs StringBuilder's append/string
// methods (spec.md §6.3) alongside its free constructor.
func registerStringBuilderClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "StringBuilder", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 0, "StringBuilder"); err != nil {
			return value.Value{}, err
		}
		return value.NewStringBuilder(), nil
	}

	cls.Methods["append"] = method("append", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireString(args[1], "append"); err != nil {
			return value.Value{}, err
		}
		args[0].BuilderAppend(args[1])
		return args[0], nil
	})
	cls.Methods["length"] = method("length", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].BuilderLen())), nil
	})
	cls.Methods["toString"] = method("toString", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return args[0].BuilderString(), nil
	})

	return cls
}
