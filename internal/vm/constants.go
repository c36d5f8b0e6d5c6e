package vm

import (
	"math/big"

	"github.com/edadma/slate/internal/bigint"
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// constantToValue converts one entry of a Function's untyped constant
// pool into a Value. pkg/bytecode keeps constants as interface{} so it
// never has to import internal/value (see pkg/bytecode/function.go); the
// VM is the one place that reconnects the two.
func constantToValue(c interface{}) (value.Value, error) {
	switch v := c.(type) {
	case nil:
		return value.Null, nil
	case bool:
		return value.Bool(v), nil
	case int32:
		return value.Int32(v), nil
	case *big.Int:
		return value.BigInt(bigint.New(v)), nil
	case float64:
		return value.Number(v), nil
	case string:
		return value.String(v), nil
	default:
		return value.Value{}, vmerr.Compilef("constant pool entry of unexpected type %T", c)
	}
}
