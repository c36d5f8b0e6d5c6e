package builtins

import (
	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// registerBufferClass installs Buffer's constructor/static helpers and
// instance methods (spec.md §8 scenario 6: Buffer.fromHex("cafebabe")
// .slice(1,2).toHex() -> "feba"). Because static methods accessed via
// ClassValue.method(...) go through getProperty's KindClass path (see
// internal/vm/properties.go), which wraps the found method in a
// BoundMethod with the class value as receiver, fromHex's args[0] is
// the Buffer class value itself and is simply ignored.
func registerBufferClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "Buffer", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "Buffer"); err != nil {
			return value.Value{}, err
		}
		if args[0].Kind() != value.KindArray {
			return value.Value{}, vmerr.Typef("Buffer expects an Array of byte-sized Ints, got %s", args[0].TypeName())
		}
		elems := args[0].ArrayElements()
		data := make([]byte, len(elems))
		for i, e := range elems {
			n, err := requireInt(e, "Buffer")
			if err != nil {
				return value.Value{}, err
			}
			if n < 0 || n > 255 {
				return value.Value{}, vmerr.Domainf("Buffer: byte value %d out of range [0, 255]", n)
			}
			data[i] = byte(n)
		}
		return value.Buffer(data), nil
	}

	cls.Methods["fromHex"] = method("fromHex", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireString(args[1], "fromHex"); err != nil {
			return value.Value{}, err
		}
		buf, ok := value.BufferFromHex(args[1].AsString())
		if !ok {
			return value.Value{}, vmerr.Domainf("fromHex: %q is not valid hex", args[1].AsString())
		}
		return buf, nil
	})

	cls.Methods["length"] = method("length", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].BufferLen())), nil
	})
	cls.Methods["byteAt"] = method("byteAt", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		i, err := requireInt(args[1], "byteAt")
		if err != nil {
			return value.Value{}, err
		}
		if i < 0 || i >= args[0].BufferLen() {
			return value.Value{}, vmerr.Boundsf("byteAt: index %d out of range [0, %d)", i, args[0].BufferLen())
		}
		return value.Int32(int32(args[0].BufferByteAt(i))), nil
	})
	cls.Methods["slice"] = method("slice", 3, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		start, err := requireInt(args[1], "slice")
		if err != nil {
			return value.Value{}, err
		}
		length, err := requireInt(args[2], "slice")
		if err != nil {
			return value.Value{}, err
		}
		n := args[0].BufferLen()
		if start < 0 || length < 0 || start > n-length {
			return value.Value{}, vmerr.Boundsf("slice: start %d, length %d out of bounds for length %d", start, length, n)
		}
		return args[0].BufferSlice(start, start+length), nil
	})
	cls.Methods["concat"] = method("concat", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireBuffer(args[1], "concat"); err != nil {
			return value.Value{}, err
		}
		return args[0].BufferConcat(args[1]), nil
	})
	cls.Methods["toHex"] = method("toHex", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return args[0].BufferToHex(), nil
	})

	return cls
}

// registerBufferBuilderClass installs BufferBuilder, the mutable
// append-only byte sink counterpart to StringBuilder.
func registerBufferBuilderClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "BufferBuilder", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 0, "BufferBuilder"); err != nil {
			return value.Value{}, err
		}
		return value.NewBufferBuilder(), nil
	}

	cls.Methods["appendByte"] = method("appendByte", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "appendByte")
		if err != nil {
			return value.Value{}, err
		}
		if n < 0 || n > 255 {
			return value.Value{}, vmerr.Domainf("appendByte: value %d out of range [0, 255]", n)
		}
		args[0].BuilderAppendByte(byte(n))
		return args[0], nil
	})
	cls.Methods["appendBytes"] = method("appendBytes", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireBuffer(args[1], "appendBytes"); err != nil {
			return value.Value{}, err
		}
		args[0].BuilderAppendBytes(args[1].BufferBytes())
		return args[0], nil
	})
	cls.Methods["buffer"] = method("buffer", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return args[0].BuilderBuffer(), nil
	})

	return cls
}

// registerBufferReaderClass installs BufferReader, a stateful cursor
// for sequential binary decoding (spec.md §6.3).
func registerBufferReaderClass(globals map[string]value.Value, classes map[string]*value.Class, root *value.Class) *value.Class {
	cls := defineClass(globals, classes, "BufferReader", root)

	cls.Native = func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "BufferReader"); err != nil {
			return value.Value{}, err
		}
		if err := requireBuffer(args[0], "BufferReader"); err != nil {
			return value.Value{}, err
		}
		return value.NewBufferReader(args[0]), nil
	}

	cls.Methods["remaining"] = method("remaining", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		return value.Int32(int32(args[0].ReaderRemaining())), nil
	})
	cls.Methods["readByte"] = method("readByte", 1, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		b, ok := args[0].ReaderReadByte()
		if !ok {
			return value.Value{}, vmerr.Boundsf("readByte: reader exhausted")
		}
		return value.Int32(int32(b)), nil
	})
	cls.Methods["readN"] = method("readN", 2, func(ctx *value.Context, args []value.Value) (value.Value, error) {
		n, err := requireInt(args[1], "readN")
		if err != nil {
			return value.Value{}, err
		}
		if n < 0 {
			return value.Value{}, vmerr.Domainf("readN: count must be >= 0, got %d", n)
		}
		buf, ok := args[0].ReaderReadN(n)
		if !ok {
			return value.Value{}, vmerr.Boundsf("readN: only %d byte(s) remaining, requested %d", args[0].ReaderRemaining(), n)
		}
		return buf, nil
	})

	return cls
}
