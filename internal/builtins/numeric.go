package builtins

import (
	"math"
	"math/rand"

	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// toFloat64 coerces any numeric Value to float64 for the math/* free
// functions, which always operate in the Number tier (spec.md's
// Numeric builtins never promote to bigint).
func toFloat64(v value.Value) (float64, error) {
	switch v.Kind() {
	case value.KindInt32:
		return float64(v.AsInt32()), nil
	case value.KindNumber:
		return v.AsNumber(), nil
	case value.KindBigInt:
		return v.AsBigInt().Float64(), nil
	default:
		return 0, vmerr.Typef("expected a numeric argument, got %s", v.TypeName())
	}
}

func requireArity(args []value.Value, n int, name string) error {
	if len(args) != n {
		return vmerr.Arityf("%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func unaryMath(name string, f func(float64) float64) value.Value {
	return native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, name); err != nil {
			return value.Value{}, err
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return value.Value{}, err
		}
		return value.Number(f(x)), nil
	})
}

func registerNumeric(g map[string]value.Value) {
	g["abs"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "abs"); err != nil {
			return value.Value{}, err
		}
		switch args[0].Kind() {
		case value.KindInt32:
			n := args[0].AsInt32()
			if n < 0 {
				n = -n
			}
			return value.Int32(n), nil
		case value.KindBigInt:
			return value.BigInt(args[0].AsBigInt().Abs()), nil
		default:
			x, err := toFloat64(args[0])
			if err != nil {
				return value.Value{}, err
			}
			return value.Number(math.Abs(x)), nil
		}
	})

	g["sqrt"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "sqrt"); err != nil {
			return value.Value{}, err
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return value.Value{}, err
		}
		if x < 0 {
			return value.Value{}, vmerr.Domainf("sqrt: argument must be >= 0, got %g", x)
		}
		return value.Number(math.Sqrt(x)), nil
	})

	g["floor"] = unaryMath("floor", math.Floor)
	g["ceil"] = unaryMath("ceil", math.Ceil)
	g["round"] = unaryMath("round", math.Round)
	g["sin"] = unaryMath("sin", math.Sin)
	g["cos"] = unaryMath("cos", math.Cos)
	g["tan"] = unaryMath("tan", math.Tan)
	g["exp"] = unaryMath("exp", math.Exp)
	g["degrees"] = unaryMath("degrees", func(r float64) float64 { return r * 180 / math.Pi })
	g["radians"] = unaryMath("radians", func(d float64) float64 { return d * math.Pi / 180 })

	g["asin"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "asin"); err != nil {
			return value.Value{}, err
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return value.Value{}, err
		}
		if x < -1 || x > 1 {
			return value.Value{}, vmerr.Domainf("asin: argument must be in [-1, 1], got %g", x)
		}
		return value.Number(math.Asin(x)), nil
	})
	g["acos"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "acos"); err != nil {
			return value.Value{}, err
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return value.Value{}, err
		}
		if x < -1 || x > 1 {
			return value.Value{}, vmerr.Domainf("acos: argument must be in [-1, 1], got %g", x)
		}
		return value.Number(math.Acos(x)), nil
	})
	g["atan"] = unaryMath("atan", math.Atan)
	g["atan2"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 2, "atan2"); err != nil {
			return value.Value{}, err
		}
		y, err := toFloat64(args[0])
		if err != nil {
			return value.Value{}, err
		}
		x, err := toFloat64(args[1])
		if err != nil {
			return value.Value{}, err
		}
		return value.Number(math.Atan2(y, x)), nil
	})

	g["ln"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "ln"); err != nil {
			return value.Value{}, err
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return value.Value{}, err
		}
		if x <= 0 {
			return value.Value{}, vmerr.Domainf("ln: argument must be > 0, got %g", x)
		}
		return value.Number(math.Log(x)), nil
	})

	g["sign"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "sign"); err != nil {
			return value.Value{}, err
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return value.Value{}, err
		}
		switch {
		case x > 0:
			return value.Int32(1), nil
		case x < 0:
			return value.Int32(-1), nil
		default:
			return value.Int32(0), nil
		}
	})

	g["min"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 2, "min"); err != nil {
			return value.Value{}, err
		}
		c, err := value.Compare(args[0], args[1])
		if err != nil {
			return value.Value{}, err
		}
		if c <= 0 {
			return args[0], nil
		}
		return args[1], nil
	})
	g["max"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 2, "max"); err != nil {
			return value.Value{}, err
		}
		c, err := value.Compare(args[0], args[1])
		if err != nil {
			return value.Value{}, err
		}
		if c >= 0 {
			return args[0], nil
		}
		return args[1], nil
	})

	g["random"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 0, "random"); err != nil {
			return value.Value{}, err
		}
		return value.Number(rand.Float64()), nil
	})
}
