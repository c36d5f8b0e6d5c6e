package builtins

import (
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// registerTypeIteration installs the type-introspection and iteration
// free functions shared across every builtin container (Array, Range).
func registerTypeIteration(g map[string]value.Value) {
	g["type"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "type"); err != nil {
			return value.Value{}, err
		}
		return value.String(args[0].TypeName()), nil
	})

	g["iterator"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "iterator"); err != nil {
			return value.Value{}, err
		}
		switch args[0].Kind() {
		case value.KindArray, value.KindRange:
			return value.Iterator(args[0]), nil
		default:
			return value.Value{}, vmerr.Typef("iterator: %s is not iterable", args[0].TypeName())
		}
	})

	g["hasNext"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "hasNext"); err != nil {
			return value.Value{}, err
		}
		if args[0].Kind() != value.KindIterator {
			return value.Value{}, vmerr.Typef("hasNext expects an Iterator, got %s", args[0].TypeName())
		}
		return value.Bool(args[0].HasNext()), nil
	})

	g["next"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "next"); err != nil {
			return value.Value{}, err
		}
		if args[0].Kind() != value.KindIterator {
			return value.Value{}, vmerr.Typef("next expects an Iterator, got %s", args[0].TypeName())
		}
		val, ok := args[0].Next()
		if !ok {
			return value.Value{}, vmerr.Boundsf("next: iterator exhausted")
		}
		return val, nil
	})
}
