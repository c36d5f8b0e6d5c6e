// Error handling with stack traces, descended from the teacher's
// pkg/vm/errors.go: same RuntimeError/StackFrame shape, generalized
// from one undifferentiated message string to wrapping one of
// internal/vmerr's eight kinded errors and carrying a source
// DebugLocation per frame instead of bare IP/line/col ints.
package vm

import (
	"fmt"
	"strings"

	"github.com/edadma/slate/internal/vmerr"
	"github.com/edadma/slate/pkg/bytecode"
)

// StackFrame is a single frame in the call stack captured at the point
// an error was raised.
type StackFrame struct {
	Name     string
	Location *bytecode.DebugLocation
}

// RuntimeError is a kinded error (Arity/Type/Domain/.../Compile) plus
// the call-stack snapshot active when it was raised (spec.md §7: "the
// runtime prints a single diagnostic that includes the error kind's
// message and the current debug location").
type RuntimeError struct {
	Inner      *vmerr.Error
	Location   *bytecode.DebugLocation
	StackTrace []StackFrame
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Inner.Error())
	if e.Location != nil {
		fmt.Fprintf(&b, " at line %d, column %d", e.Location.Line, e.Location.Column)
	}
	if len(e.StackTrace) > 0 {
		b.WriteString("\n\nStack trace:")
		for i := len(e.StackTrace) - 1; i >= 0; i-- {
			frame := e.StackTrace[i]
			fmt.Fprintf(&b, "\n  at %s", frame.Name)
			if frame.Location != nil {
				fmt.Fprintf(&b, " [line %d:%d]", frame.Location.Line, frame.Location.Column)
			}
		}
	}
	return b.String()
}

// Unwrap exposes the kinded error so callers can vmerr.As(err, ...).
func (e *RuntimeError) Unwrap() error { return e.Inner }

func newRuntimeError(inner *vmerr.Error, loc *bytecode.DebugLocation, trace []StackFrame) *RuntimeError {
	return &RuntimeError{Inner: inner, Location: loc, StackTrace: trace}
}

// wrapError adapts any error raised by internal/value, internal/numeric,
// or internal/builtins into a *RuntimeError carrying the VM's current
// location and stack trace. Errors that are not already a *vmerr.Error
// (a native Go panic surfaced as error, for instance) are wrapped as an
// internal Compile-kind error rather than silently discarded.
func (vm *VM) wrapError(err error) *RuntimeError {
	if re, ok := err.(*RuntimeError); ok {
		return re
	}
	inner, ok := err.(*vmerr.Error)
	if !ok {
		inner = vmerr.Compilef("%v", err)
	}
	return newRuntimeError(inner, vm.currentLocation, vm.captureStackTrace())
}
