package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Lexical errors.
var (
	ErrUnterminatedString     = NewError("unterminated string literal")
	ErrUnterminatedComment    = NewError("unterminated multi-line comment")
	ErrUnmatchedExprDelimiter = NewError("unmatched expression delimiter")
	ErrInvalidCharacter       = NewError("invalid character")
)

// Parse errors.
var (
	ErrUnexpectedToken  = NewError("unexpected token")
	ErrUnmatchedBracket = NewError("unmatched bracket")
	ErrMalformedDefine  = NewError("malformed define")
	ErrMaxDepthExceeded = NewError("maximum nesting depth exceeded")
)

// Evaluation errors.
var (
	ErrUndefinedSymbol     = NewError("undefined symbol")
	ErrStackUnderflow      = NewError("expression stack underflow")
	ErrMalformedExpression = NewError("malformed expression")
	ErrDivisionByZero      = NewError("division by zero")
	ErrUnknownOperator     = NewError("unknown operator")
	ErrInvalidOperand      = NewError("invalid operand type")
)

// Emission and I/O errors.
var (
	ErrNonFiniteNumber  = NewError("non-finite number")
	ErrCannotOpenOutput = NewError("cannot open output")
	ErrReadInput        = NewError("failed to read input")
)

// Error represents a compilation error with optional structured logging
// attributes and a source position.
// It implements error, errors.Unwrap, and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // wrapped error (for errors.Unwrap)
	base  *Error      // originating sentinel (for errors.Is)
	pos   *Position   // source position, if known
	attrs []slog.Attr // attributes for structured logging
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> at <line>:<col>: <err>"
	//   2. "<msg>: <err>"
	//   3. "<msg>"
	//   4. "<err>"
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if e.pos != nil {
			msg += " at " + e.pos.String()
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether the error derives from the target sentinel.
// Derived copies created by Wrap, With, and WithPosition keep a reference
// to their originating sentinel so errors.Is keeps working.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || e.base == t
}

// Position returns the source position attached to the error, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos != nil {
		attrs = append(attrs, slog.String("position", e.pos.String()))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// sentinel returns the error the derived copies should compare against.
func (e *Error) sentinel() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		base:  e.sentinel(),
		pos:   e.pos,
		attrs: e.attrs, // share attrs
	}
}

// With adds attributes to the error for structured logging.
// A new Error instance is created to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		base:  e.sentinel(),
		pos:   e.pos,
		attrs: newAttrs,
	}
}

// WithPosition attaches a source position to the error.
func (e *Error) WithPosition(pos Position) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		base:  e.sentinel(),
		pos:   &pos,
		attrs: e.attrs,
	}
}

// FormatDiagnostic renders err against its source text with the offending
// line and a caret marker pointing at the error column:
//
//	line 2, column 7:
//	  2 | port .{1 +}.
//	           ^
//
// If err carries no position, only its message is returned.
func FormatDiagnostic(source string, err error) string {
	ee := &Error{}
	if !errors.As(err, &ee) {
		return err.Error()
	}

	pos, ok := ee.Position()
	if !ok {
		return ee.Error()
	}

	lines := strings.Split(source, "\n")

	var buf strings.Builder

	buf.WriteString(ee.Error())
	buf.WriteString("\n")

	// Show the offending line if within bounds
	if pos.Line > 0 && pos.Line <= len(lines) {
		lineText := lines[pos.Line-1]

		buf.WriteString("  ")
		buf.WriteString(strconv.Itoa(pos.Line))
		buf.WriteString(" | ")
		buf.WriteString(lineText)
		buf.WriteString("\n")

		// Marker pointing to the column.
		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		lineNumWidth := len(strconv.Itoa(pos.Line))
		padding := strings.Repeat(" ", lineNumWidth+5)

		if pos.Column > 0 {
			padding += strings.Repeat(" ", pos.Column-1)
		}

		buf.WriteString(padding + "^\n")
	}

	return buf.String()
}
