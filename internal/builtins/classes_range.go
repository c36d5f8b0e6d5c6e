package builtins

import (
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

func requireRangeEndpoint(v value.Value, who string) (int64, error) {
	switch v.Kind() {
	case value.KindInt32:
		return int64(v.AsInt32()), nil
	case value.KindBigInt:
		b := v.AsBigInt().Big()
		if !b.IsInt64() {
			return 0, vmerr.Domainf("%s: endpoint out of range", who)
		}
		return b.Int64(), nil
	default:
		return 0, vmerr.Typef("%s expects an Int endpoint, got %s", who, v.TypeName())
	}
}

// registerRangeClass installs Range's constructor and instance methods
// (spec.md §8 scenario 4: (1..<5).toArray() -> [1,2,3,4]). BUILD_RANGE
// constructs ranges directly via the `..`/`..<` operators; the class
// constructor exists so code can also write `Range(1, 5, true)`.
func registerRangeClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "Range", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 3, "Range"); err != nil {
			return value.Value{}, err
		}
		start, err := requireRangeEndpoint(args[0], "Range")
		if err != nil {
			return value.Value{}, err
		}
		end, err := requireRangeEndpoint(args[1], "Range")
		if err != nil {
			return value.Value{}, err
		}
		if args[2].Kind() != value.KindBool {
			return value.Value{}, vmerr.Typef("Range expects a Boolean exclusive argument, got %s", args[2].TypeName())
		}
		return value.Range(start, end, args[2].AsBool()), nil
	}

	cls.Methods["start"] = method("start", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].RangeStart())), nil
	})
	cls.Methods["end"] = method("end", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].RangeEnd())), nil
	})
	cls.Methods["length"] = method("length", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].RangeLen())), nil
	})
	cls.Methods["contains"] = method("contains", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireRangeEndpoint(args[1], "contains")
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(args[0].RangeContains(n)), nil
	})
	cls.Methods["toArray"] = method("toArray", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return args[0].RangeToArray(), nil
	})

	return cls
}
