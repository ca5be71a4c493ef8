// Package errors implements PriamosBASIC's error model (§4.K): a
// single carrier type for every category the interpreter surfaces to
// its REPL seam, each wrapping an optional cause via
// github.com/pkg/errors so a diagnostic trace survives across the
// evaluator's call stack.
//
// The shape (a struct with a Category, a human message, and an
// optional wrapped cause plus a line-number anchor) is grounded on the
// teacher's internal/errors.CompilerError, trimmed to this dialect's
// flat category list instead of the teacher's compiler-phase taxonomy.
package errors

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Category names one of the error classes the contract surface
// recognizes (§4.K).
type Category string

const (
	Syntax             Category = "syntax error"
	Interpret          Category = "interpret error"
	TypeMismatch       Category = "type mismatch"
	DivisionByZero     Category = "division by zero"
	ArrayNotDimension  Category = "array not dimensioned"
	FunctionNotDeclare Category = "function not declared"
	DimensionCount     Category = "too few/many dimensions"
	BadSubscript       Category = "bad subscript"
	OutOfMemory        Category = "out of memory"
	ArrayTooLarge      Category = "array too large"
	PairingMismatch    Category = "pairing mismatch"
	NotImplemented     Category = "not implemented"
)

// BasicError is the interpreter's single error carrier. LineNo is 0
// when the error occurred in direct mode or has no line association.
type BasicError struct {
	Category Category
	Message  string
	LineNo   uint32
	cause    error
}

// New builds a BasicError with no wrapped cause.
func New(cat Category, format string, args ...any) *BasicError {
	return &BasicError{Category: cat, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a BasicError that records cause via pkg/errors'
// WithStack. The stack travels with the cause returned by Unwrap;
// formatting the BasicError itself prints only Error().
func Wrap(cause error, cat Category, format string, args ...any) *BasicError {
	return &BasicError{
		Category: cat,
		Message:  fmt.Sprintf(format, args...),
		cause:    pkgerrors.WithStack(cause),
	}
}

// AtLine annotates the error with the program line it occurred on and
// returns the receiver for chaining.
func (e *BasicError) AtLine(lineNo uint32) *BasicError {
	e.LineNo = lineNo
	return e
}

func (e *BasicError) Error() string {
	if e.LineNo != 0 {
		return fmt.Sprintf("%s in line %d: %s", e.Category, e.LineNo, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Format renders the error for the CLI host. Without withCaret it is
// "? " followed by Error(), the REPL's plain surface; with withCaret
// (used by the run subcommand) it leads with the line number and adds,
// when a cause was recorded via Wrap, that cause's own message on a
// continuation line.
func (e *BasicError) Format(withCaret bool) string {
	if !withCaret {
		return "? " + e.Error()
	}
	var b strings.Builder
	if e.LineNo != 0 {
		fmt.Fprintf(&b, "line %d: %s: %s", e.LineNo, e.Category, e.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s", e.Category, e.Message)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, "\n  caused by: %v", e.cause)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *BasicError) Unwrap() error { return e.cause }

// Is reports whether target names the same category, letting callers
// write errors.Is(err, errors.New(TypeMismatch, "")).
func (e *BasicError) Is(target error) bool {
	other, ok := target.(*BasicError)
	if !ok {
		return false
	}
	return e.Category == other.Category
}
