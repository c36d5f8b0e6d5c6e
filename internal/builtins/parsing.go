package builtins

import (
	"math/big"
	"strconv"

	"github.com/edadma/slate/internal/bigint"
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// registerParsing installs parse_int/parse_number, the free-function
// counterparts to Int's constructor (which additionally accepts a
// radix) for callers that just want base-10 text parsed into the
// numeric tower.
func registerParsing(g map[string]value.Value) {
	g["parse_int"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "parse_int"); err != nil {
			return value.Value{}, err
		}
		if !args[0].IsString() {
			return value.Value{}, vmerr.Typef("parse_int expects a String, got %s", args[0].TypeName())
		}
		s := args[0].AsString()
		if n, err := strconv.ParseInt(s, 10, 32); err == nil {
			return value.Int32(int32(n)), nil
		}
		b, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return value.Value{}, vmerr.Domainf("parse_int: %q is not a valid integer", s)
		}
		return value.BigInt(bigint.New(b)), nil
	})

	g["parse_number"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "parse_number"); err != nil {
			return value.Value{}, err
		}
		if !args[0].IsString() {
			return value.Value{}, vmerr.Typef("parse_number expects a String, got %s", args[0].TypeName())
		}
		f, err := strconv.ParseFloat(args[0].AsString(), 64)
		if err != nil {
			return value.Value{}, vmerr.Domainf("parse_number: %q is not a valid number", args[0].AsString())
		}
		return value.Number(f), nil
	})
}
