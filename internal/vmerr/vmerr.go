// Package vmerr defines the runtime error taxonomy shared by every layer
// of the VM (value model, numeric tower, builtins, interpreter loop).
//
// Keeping the taxonomy in its own leaf package lets internal/value,
// internal/numeric, internal/datetime, and internal/builtins all raise
// precisely-kinded errors without importing internal/vm (which in turn
// imports all of them) — the same role smog's single undifferentiated
// `fmt.Errorf` plays, just split into the eight kinds spec.md §7 names.
package vmerr

import "fmt"

// Kind is one of the eight runtime error categories spec.md §7 defines.
type Kind int

const (
	Arity Kind = iota
	Type
	Domain
	Bounds
	Arithmetic
	Name
	Stack
	Compile
)

func (k Kind) String() string {
	switch k {
	case Arity:
		return "ArityError"
	case Type:
		return "TypeError"
	case Domain:
		return "DomainError"
	case Bounds:
		return "BoundsError"
	case Arithmetic:
		return "ArithmeticError"
	case Name:
		return "NameError"
	case Stack:
		return "StackError"
	case Compile:
		return "CompileError"
	default:
		return "Error"
	}
}

// Error is a kinded runtime error, deliberately free of any stack-trace
// or source-location bookkeeping — that context is layered on by
// internal/vm's RuntimeError, which wraps one of these.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Arityf(format string, args ...interface{}) *Error      { return newf(Arity, format, args...) }
func Typef(format string, args ...interface{}) *Error       { return newf(Type, format, args...) }
func Domainf(format string, args ...interface{}) *Error     { return newf(Domain, format, args...) }
func Boundsf(format string, args ...interface{}) *Error     { return newf(Bounds, format, args...) }
func Arithmeticf(format string, args ...interface{}) *Error { return newf(Arithmetic, format, args...) }
func Namef(format string, args ...interface{}) *Error       { return newf(Name, format, args...) }
func Stackf(format string, args ...interface{}) *Error      { return newf(Stack, format, args...) }
func Compilef(format string, args ...interface{}) *Error    { return newf(Compile, format, args...) }

// As reports whether err is a *Error of the given kind, returning it if so.
func As(err error, kind Kind) (*Error, bool) {
	e, ok := err.(*Error)
	if !ok || e.Kind != kind {
		return nil, false
	}
	return e, true
}
