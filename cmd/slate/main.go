// Command slate is the Slate language driver: it runs source files,
// hosts a REPL, and can compile source to (or disassemble) the
// bytecode the VM executes.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edadma/slate/internal/compiler"
	"github.com/edadma/slate/internal/parser"
	"github.com/edadma/slate/internal/vm"
	"github.com/edadma/slate/pkg/bytecode"
)

const version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:     "slate [file]",
		Short:   "Slate is a small dynamically-typed scripting language",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				runREPL()
				return nil
			}
			return runFile(args[0])
		},
	}

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a .slate source file or .slc bytecode file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			runREPL()
			return nil
		},
	}

	var outFile string
	compileCmd := &cobra.Command{
		Use:   "compile <input.slate> [output.slc]",
		Short: "Compile a .slate source file to .slc bytecode",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			out := outFile
			if len(args) == 2 {
				out = args[1]
			}
			if out == "" {
				out = withExt(in, ".slc")
			}
			return compileFile(in, out)
		},
	}
	compileCmd.Flags().StringVarP(&outFile, "output", "o", "", "output bytecode file")

	disasmCmd := &cobra.Command{
		Use:     "disassemble <file>",
		Aliases: []string{"disasm"},
		Short:   "Print a human-readable disassembly of a bytecode file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return disassembleFile(args[0])
		},
	}

	root.AddCommand(runCmd, replCmd, compileCmd, disasmCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func withExt(path, ext string) string {
	if old := filepath.Ext(path); old != "" {
		return path[:len(path)-len(old)] + ext
	}
	return path + ext
}

// runFile runs a .slate source file (parsed and compiled first) or a
// .slc bytecode file (loaded directly).
func runFile(filename string) error {
	if filepath.Ext(filename) == ".slc" {
		return runBytecodeFile(filename)
	}
	return runSourceFile(filename)
}

func runSourceFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	fn, err := compileSource(string(data))
	if err != nil {
		return err
	}
	v := vm.New()
	if _, err := v.Run(fn); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}

func runBytecodeFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	defer f.Close()

	fn, err := bytecode.Read(f)
	if err != nil {
		return fmt.Errorf("loading bytecode: %w", err)
	}
	v := vm.New()
	if _, err := v.Run(fn); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}

func compileSource(src string) (*bytecode.Function, error) {
	p := parser.New(src)
	program, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	fn, err := compiler.Compile(program)
	if err != nil {
		return nil, fmt.Errorf("compile error: %w", err)
	}
	return fn, nil
}

func compileFile(inputFile, outputFile string) error {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputFile, err)
	}
	fn, err := compileSource(string(data))
	if err != nil {
		return err
	}
	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputFile, err)
	}
	defer out.Close()
	if err := bytecode.Write(out, fn); err != nil {
		return fmt.Errorf("writing bytecode: %w", err)
	}
	fmt.Printf("Compiled %s -> %s\n", inputFile, outputFile)
	return nil
}

func disassembleFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	defer f.Close()
	fn, err := bytecode.Read(f)
	if err != nil {
		return fmt.Errorf("loading bytecode: %w", err)
	}
	fmt.Print(bytecode.Disassemble(fn))
	return nil
}

// runREPL hosts a persistent VM across inputs so that globals defined
// by one line (`let x = 5;`) remain visible to the next, mirroring the
// teacher's persistent-VM REPL design (cmd/smog's evalREPL).
func runREPL() {
	fmt.Printf("slate %s\n", version)
	fmt.Println("Type :quit or :exit to leave.")

	v := vm.New()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("slate> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":quit", ":exit":
			return
		}

		fn, err := compileSource(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		result, err := v.Run(fn)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if !result.IsNull() && !result.IsUndefined() {
			if s, err := result.ToString(nil); err == nil {
				fmt.Println(s)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "reading input:", err)
	}
}
