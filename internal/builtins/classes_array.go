package builtins

import (
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

func requireArray(v value.Value, who string) error {
	if v.Kind() != value.KindArray {
		return vmerr.Typef("%s expects an Array, got %s", who, v.TypeName())
	}
	return nil
}

// registerArrayClass installs Array's instance methods over
// internal/value's arrayObj operations (spec.md §8 scenario 3: push
// then length).
func registerArrayClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "Array", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Array(args), nil
	}

	cls.Methods["length"] = method("length", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].ArrayLen())), nil
	})
	cls.Methods["push"] = method("push", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		args[0].ArrayPush(args[1])
		return args[0], nil
	})
	cls.Methods["pop"] = method("pop", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		v, ok := args[0].ArrayPop()
		if !ok {
			return value.Value{}, vmerr.Boundsf("pop: array is empty")
		}
		return v, nil
	})
	cls.Methods["copy"] = method("copy", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return args[0].ArrayCopy(), nil
	})
	cls.Methods["reverse"] = method("reverse", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return args[0].ArrayReverse(), nil
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
		n := args[0].ArrayLen()
		if start < 0 || end > n || start > end {
			return value.Value{}, vmerr.Boundsf("slice: range [%d, %d) out of bounds for length %d", start, end, n)
		}
		return args[0].ArraySlice(start, end), nil
	})
	cls.Methods["concat"] = method("concat", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArray(args[1], "concat"); err != nil {
			return value.Value{}, err
		}
		return args[0].ArrayConcat(args[1]), nil
	})
	cls.Methods["indexOf"] = method("indexOf", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		idx := args[0].ArrayIndexOf(args[1], func(a, b value.Value) bool { return a.Equals(b) })
		return value.Int32(int32(idx)), nil
	})
	cls.Methods["insert"] = method("insert", 3, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		i, err := requireInt(args[1], "insert")
		if err != nil {
			return value.Value{}, err
		}
		if i < 0 || i > args[0].ArrayLen() {
			return value.Value{}, vmerr.Boundsf("insert: index %d out of range [0, %d]", i, args[0].ArrayLen())
		}
		args[0].ArrayInsert(i, args[2])
		return args[0], nil
	})
	cls.Methods["removeAt"] = method("removeAt", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		i, err := requireInt(args[1], "removeAt")
		if err != nil {
			return value.Value{}, err
		}
		if i < 0 || i >= args[0].ArrayLen() {
			return value.Value{}, vmerr.Boundsf("removeAt: index %d out of range [0, %d)", i, args[0].ArrayLen())
		}
		return args[0].ArrayRemoveAt(i), nil
	})
	cls.Methods["toArray"] = method("toArray", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return args[0].ArrayCopy(), nil
	})

	return cls
}
