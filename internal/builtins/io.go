package builtins

import (
	"bufio"
	"fmt"
	"os"

	"github.com/edadma/slate/internal/value"
	"github.com/edadma/slate/internal/vmerr"
)

// registerIO installs the I/O free functions. The tokenizer/parser/
// compiler and the CLI driver's own file handling live outside this
// module's scope, but a runnable program still needs print/input/
// read_file/write_file/args as ordinary native calls.
func registerIO(g map[string]value.Value) {
	g["print"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "print"); err != nil {
			return value.Value{}, err
		}
		s, err := args[0].ToString(ctx)
		if err != nil {
			return value.Value{}, err
		}
		fmt.Println(s)
		return value.Null, nil
	})

	stdin := bufio.NewReader(os.Stdin)
	g["input"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if len(args) > 1 {
			return value.Value{}, vmerr.Arityf("input expects 0 or 1 argument(s), got %d", len(args))
		}
		if len(args) == 1 {
			prompt, err := args[0].ToString(ctx)
			if err != nil {
				return value.Value{}, err
			}
			fmt.Print(prompt)
		}
		line, err := stdin.ReadString('\n')
		if err != nil && line == "" {
			return value.Null, nil
		}
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		return value.String(line), nil
	})

	g["read_file"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 1, "read_file"); err != nil {
			return value.Value{}, err
		}
		if !args[0].IsString() {
			return value.Value{}, vmerr.Typef("read_file expects a String path, got %s", args[0].TypeName())
		}
		data, err := os.ReadFile(args[0].AsString())
		if err != nil {
			return value.Value{}, vmerr.Domainf("read_file: %v", err)
		}
		return value.String(string(data)), nil
	})

	g["write_file"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 2, "write_file"); err != nil {
			return value.Value{}, err
		}
		if !args[0].IsString() {
			return value.Value{}, vmerr.Typef("write_file expects a String path, got %s", args[0].TypeName())
		}
		if !args[1].IsString() {
			return value.Value{}, vmerr.Typef("write_file expects String content, got %s", args[1].TypeName())
		}
		if err := os.WriteFile(args[0].AsString(), []byte(args[1].AsString()), 0o644); err != nil {
			return value.Value{}, vmerr.Domainf("write_file: %v", err)
		}
		return value.Null, nil
	})

	g["args"] = native(func(ctx *value.Context, args []value.Value) (value.Value, error) {
		if err := requireArity(args, 0, "args"); err != nil {
			return value.Value{}, err
		}
		rest := os.Args[1:]
		elems := make([]value.Value, len(rest))
		for i, a := range rest {
			elems[i] = value.String(a)
		}
		return value.Array(elems), nil
	})
}
