package builtins

import (
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

func requireBuffer(v value.Value, who string) error {
	if v.Kind() != value.KindBuffer {
		return vmerr.Typef("%s expects a Buffer, got %s", who, v.TypeName())
	}
	return nil
}

func requireInt(v value.Value, who string) (int, error) {
	if v.Kind() != value.KindInt32 {
		return 0, vmerr.Typef("%s expects an Int, got %s", who, v.TypeName())
	}
	return int(v.AsInt32()), nil
}

// registerBufferFreeFunctions installs the free-function wrappers
// around internal/value's Buffer* methods spec.md §6.3 names alongside
// the Buffer class itself.
func registerBufferFreeFunctions(g map[string]value.Value) {
	g["buffer"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "buffer"); err != nil {
			return value.Value{}, err
		}
		if args[0].Kind() != value.KindArray {
			return value.Value{}, vmerr.Typef("buffer expects an Array of byte-sized Ints, got %s", args[0].TypeName())
		}
		elems := args[0].ArrayElements()
		data := make([]byte, len(elems))
		for i, e := range elems {
			n, err := requireInt(e, "buffer")
			if err != nil {
				return value.Value{}, err
			}
			if n < 0 || n > 255 {
				return value.Value{}, vmerr.Domainf("buffer: byte value %d out of range [0, 255]", n)
			}
			data[i] = byte(n)
		}
		return value.Buffer(data), nil
	})

	g["buffer_from_hex"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "buffer_from_hex"); err != nil {
			return value.Value{}, err
		}
		if !args[0].IsString() {
			return value.Value{}, vmerr.Typef("buffer_from_hex expects a String, got %s", args[0].TypeName())
		}
		buf, ok := value.BufferFromHex(args[0].AsString())
		if !ok {
			return value.Value{}, vmerr.Domainf("buffer_from_hex: %q is not valid hex", args[0].AsString())
		}
		return buf, nil
	})

	g["buffer_slice"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 3, "buffer_slice"); err != nil {
			return value.Value{}, err
		}
		if err := requireBuffer(args[0], "buffer_slice"); err != nil {
			return value.Value{}, err
		}
		start, err := requireInt(args[1], "buffer_slice")
		if err != nil {
			return value.Value{}, err
		}
		end, err := requireInt(args[2], "buffer_slice")
		if err != nil {
			return value.Value{}, err
		}
		if start < 0 || end > args[0].BufferLen() || start > end {
			return value.Value{}, vmerr.Boundsf("buffer_slice: range [%d, %d) out of bounds for length %d", start, end, args[0].BufferLen())
		}
		return args[0].BufferSlice(start, end), nil
	})

	g["buffer_concat"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 2, "buffer_concat"); err != nil {
			return value.Value{}, err
		}
		if err := requireBuffer(args[0], "buffer_concat"); err != nil {
			return value.Value{}, err
		}
		if err := requireBuffer(args[1], "buffer_concat"); err != nil {
			return value.Value{}, err
		}
		return args[0].BufferConcat(args[1]), nil
	})

	g["buffer_to_hex"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "buffer_to_hex"); err != nil {
			return value.Value{}, err
		}
		if err := requireBuffer(args[0], "buffer_to_hex"); err != nil {
			return value.Value{}, err
		}
		return args[0].BufferToHex(), nil
	})
}
