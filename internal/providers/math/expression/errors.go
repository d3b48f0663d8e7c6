package expression

import (
	"errors"
	"fmt"
)

// Error classes.
var (
	// ErrSyntax indicates malformed expression text.
	ErrSyntax = errors.New("syntax error")

	// ErrName indicates a reference to an unknown identifier.
	ErrName = errors.New("name error")

	// ErrType indicates an operation on incompatible operands.
	ErrType = errors.New("type error")
)

// Error is an evaluation or compilation failure with its source position.
type Error struct {
	Class error
	Pos   int // byte offset into the source, -1 when unknown
	Msg   string
}

func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Class, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Class, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Class
}

// Kind returns a short machine readable class name.
func (e *Error) Kind() string {
	switch e.Class {
	case ErrSyntax:
		return "syntax"
	case ErrName:
		return "name"
	case ErrType:
		return "type"
	default:
		return "unknown"
	}
}

func syntaxErrorf(pos int, format string, args ...interface{}) *Error {
	return &Error{Class: ErrSyntax, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func nameErrorf(pos int, format string, args ...interface{}) *Error {
	return &Error{Class: ErrName, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func typeErrorf(pos int, format string, args ...interface{}) *Error {
	return &Error{Class: ErrType, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// ErrorKind reports the class name of err, or "" if err is not an *Error.
func ErrorKind(err error) string {
	var exprErr *Error
	if errors.As(err, &exprErr) {
		return exprErr.Kind()
	}
	return ""
}
