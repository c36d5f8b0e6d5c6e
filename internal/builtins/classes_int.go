package builtins

import (
	"math/big"

	"github.com/edadma/slate/internal/bigint"
	"github.com/edadma/slate/internal/numeric"
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// registerIntClass installs Int's constructor (`Int(text, radix)`,
// spec.md §8 scenario 1: Int("ff", 16) -> 255) and the numeric-tower
// instance methods of internal/numeric's int-specific algorithms
// (bit ops, primality, gcd/lcm/pow/factorial).
func registerIntClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "Int", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 2, "Int"); err != nil {
			return value.Value{}, err
		}
		if !args[0].IsString() {
			return value.Value{}, vmerr.Typef("Int expects a String text argument, got %s", args[0].TypeName())
		}
		if !args[1].IsInt32() {
			return value.Value{}, vmerr.Typef("Int expects an Int radix argument, got %s", args[1].TypeName())
		}
		radix := int(args[1].AsInt32())
		if radix < 2 || radix > 36 {
			return value.Value{}, vmerr.Domainf("Int: radix must be in [2, 36], got %d", radix)
		}
		text := args[0].AsString()
		b, ok := new(big.Int).SetString(text, radix)
		if !ok {
			return value.Value{}, vmerr.Domainf("Int: %q is not valid base-%d text", text, radix)
		}
		if n, exact := b.Int64(), b.IsInt64(); exact && n >= -(1<<31) && n < (1<<31) {
			return value.Int32(int32(n)), nil
		}
		return value.BigInt(bigint.New(b)), nil
	}

	cls.Methods["toString"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return value.Value{}, vmerr.Arityf("toString expects 1 or 2 argument(s), got %d", len(args))
		}
		base := 10
		if len(args) == 2 {
			if !args[1].IsInt32() {
				return value.Value{}, vmerr.Typef("toString expects an Int base, got %s", args[1].TypeName())
			}
			base = int(args[1].AsInt32())
		}
		s, err := numeric.ToString(args[0], base)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	})

	cls.Methods["getBit"] = method("getBit", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "getBit")
		if err != nil {
			return value.Value{}, err
		}
		b, err := numeric.GetBit(args[0], n)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(b), nil
	})
	cls.Methods["setBit"] = method("setBit", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "setBit")
		if err != nil {
			return value.Value{}, err
		}
		return numeric.SetBit(args[0], n)
	})
	cls.Methods["clearBit"] = method("clearBit", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "clearBit")
		if err != nil {
			return value.Value{}, err
		}
		return numeric.ClearBit(args[0], n)
	})
	cls.Methods["toggleBit"] = method("toggleBit", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "toggleBit")
		if err != nil {
			return value.Value{}, err
		}
		return numeric.ToggleBit(args[0], n)
	})
	cls.Methods["countBits"] = method("countBits", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(numeric.CountBits(args[0]))), nil
	})
	cls.Methods["leadingZeros"] = method("leadingZeros", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(numeric.LeadingZeros(args[0]))), nil
	})
	cls.Methods["trailingZeros"] = method("trailingZeros", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(numeric.TrailingZeros(args[0]))), nil
	})
	cls.Methods["isEven"] = method("isEven", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Bool(numeric.IsEven(args[0])), nil
	})
	cls.Methods["isOdd"] = method("isOdd", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Bool(numeric.IsOdd(args[0])), nil
	})
	cls.Methods["isPrime"] = method("isPrime", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Bool(numeric.IsPrime(args[0])), nil
	})
	cls.Methods["gcd"] = method("gcd", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return numeric.GCD(args[0], args[1]), nil
	})
	cls.Methods["lcm"] = method("lcm", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return numeric.LCM(args[0], args[1])
	})
	cls.Methods["pow"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if len(args) < 2 || len(args) > 3 {
			return value.Value{}, vmerr.Arityf("pow expects 2 or 3 argument(s), got %d", len(args))
		}
		if len(args) == 3 {
			if k := args[2].Kind(); k != value.KindInt32 && k != value.KindBigInt {
				return value.Value{}, vmerr.Typef("pow expects an Int modulus, got %s", args[2].TypeName())
			}
			return numeric.Pow(args[0], args[1], &args[2])
		}
		return numeric.Pow(args[0], args[1], nil)
	})
	cls.Methods["factorial"] = method("factorial", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return numeric.Factorial(args[0])
	})

	return cls
}
