package vm

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/edadma/slate/pkg/bytecode"
)

// Debugger provides an interactive breakpoint/step prompt over a
// running VM, descended from the teacher's pkg/vm/debugger.go: the same
// breakpoint-set/step-mode/interactive-prompt shape, retargeted from
// smog's flat Instruction slice to Slate's per-frame Function.Code, and
// using go-spew instead of %v/%T for the stack/locals/globals dumps so
// heap-backed Values (arrays, objects, closures) render their contents
// instead of a pointer.
type Debugger struct {
	vm          *VM
	breakpoints map[int]bool
	stepMode    bool
	enabled     bool
}

// NewDebugger creates a debugger for vm. It starts disabled; callers
// enable it explicitly via Enable or SetStepMode.
func NewDebugger(vm *VM) *Debugger {
	return &Debugger{vm: vm, breakpoints: make(map[int]bool)}
}

// EnableDebugger installs and enables a debugger on the VM, returning it
// so callers can set breakpoints before running.
func (vm *VM) EnableDebugger() *Debugger {
	d := NewDebugger(vm)
	d.Enable()
	vm.debugger = d
	return d
}

func (d *Debugger) Enable()  { d.enabled = true }
func (d *Debugger) Disable() { d.enabled = false }

func (d *Debugger) SetStepMode(enabled bool) { d.stepMode = enabled }

func (d *Debugger) AddBreakpoint(ip int)    { d.breakpoints[ip] = true }
func (d *Debugger) RemoveBreakpoint(ip int) { delete(d.breakpoints, ip) }
func (d *Debugger) ClearBreakpoints()       { d.breakpoints = make(map[int]bool) }

// ShouldPause reports whether execution should pause before the current
// frame's next instruction: either step mode is on, or the current IP
// hits a registered breakpoint.
func (d *Debugger) ShouldPause() bool {
	if !d.enabled {
		return false
	}
	if d.stepMode {
		return true
	}
	return d.breakpoints[d.vm.curFrame().ip]
}

func (d *Debugger) showCurrentInstruction(fn *bytecode.Function) {
	f := d.vm.curFrame()
	if f.ip >= len(fn.Code) {
		fmt.Println("no current instruction")
		return
	}
	op := bytecode.Opcode(fn.Code[f.ip])
	fmt.Printf("  %04d: %s", f.ip, op)
	if op.HasOperand() && f.ip+1+bytecode.OperandWidth <= len(fn.Code) {
		fmt.Printf(" %d", bytecode.DecodeOperand(fn.Code[f.ip+1:]))
	}
	fmt.Println()
}

func (d *Debugger) showStack() {
	fmt.Println("stack (top to bottom):")
	if d.vm.sp == 0 {
		fmt.Println("  (empty)")
		return
	}
	for i := d.vm.sp - 1; i >= 0; i-- {
		fmt.Printf("  [%d] %s\n", i, spew.Sdump(d.vm.stack[i]))
	}
}

func (d *Debugger) showLocals() {
	f := d.vm.curFrame()
	fmt.Println("locals:")
	for i := 0; i < f.fn.NumLocals; i++ {
		slot := f.basePointer + i
		if slot >= d.vm.sp {
			break
		}
		fmt.Printf("  [%d] %s\n", i, spew.Sdump(d.vm.stack[slot]))
	}
}

func (d *Debugger) showGlobals() {
	fmt.Println("globals:")
	if len(d.vm.globals) == 0 {
		fmt.Println("  (none)")
		return
	}
	for name, val := range d.vm.globals {
		fmt.Printf("  %s = %s\n", name, spew.Sdump(val))
	}
}

func (d *Debugger) showCallStack() {
	fmt.Println("call stack (innermost first):")
	for i := d.vm.frameIdx - 1; i >= 0; i-- {
		f := d.vm.frames[i]
		fmt.Printf("  %s [ip=%d]\n", f.name, f.ip)
	}
}

// InteractivePrompt pauses execution and reads debugger commands from
// stdin until the user resumes or quits.
func (d *Debugger) InteractivePrompt(vm *VM, fn *bytecode.Function) (continueExecution bool) {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("\n=== debugger paused ===")
	d.showCurrentInstruction(fn)

	for {
		fmt.Print("debug> ")
		if !scanner.Scan() {
			return false
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		switch parts[0] {
		case "help", "h", "?":
			d.printHelp()
		case "continue", "c":
			d.SetStepMode(false)
			return true
		case "step", "s", "next", "n":
			d.SetStepMode(true)
			return true
		case "stack", "st":
			d.showStack()
		case "locals", "l":
			d.showLocals()
		case "globals", "g":
			d.showGlobals()
		case "callstack", "cs":
			d.showCallStack()
		case "instruction", "i":
			d.showCurrentInstruction(fn)
		case "breakpoint", "b":
			if len(parts) < 2 {
				fmt.Println("usage: breakpoint <offset>")
				continue
			}
			ip, err := strconv.Atoi(parts[1])
			if err != nil {
				fmt.Println("invalid offset")
				continue
			}
			d.AddBreakpoint(ip)
			fmt.Printf("breakpoint set at %d\n", ip)
		case "delete", "d":
			if len(parts) < 2 {
				fmt.Println("usage: delete <offset>")
				continue
			}
			ip, err := strconv.Atoi(parts[1])
			if err != nil {
				fmt.Println("invalid offset")
				continue
			}
			d.RemoveBreakpoint(ip)
		case "quit", "q":
			return false
		default:
			fmt.Printf("unknown command: %s (type 'help')\n", parts[0])
		}
	}
}

func (d *Debugger) printHelp() {
	fmt.Println("debugger commands:")
	fmt.Println("  help, h, ?         show this help")
	fmt.Println("  continue, c        resume execution")
	fmt.Println("  step, s, next, n   execute one instruction")
	fmt.Println("  stack, st          show the value stack")
	fmt.Println("  locals, l          show the current frame's locals")
	fmt.Println("  globals, g         show global bindings")
	fmt.Println("  callstack, cs      show the active call stack")
	fmt.Println("  instruction, i     show the current instruction")
	fmt.Println("  breakpoint <n>, b  break at code offset n")
	fmt.Println("  delete <n>, d      remove a breakpoint")
	fmt.Println("  quit, q            abort execution")
}
