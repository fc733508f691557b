package types

import (
	"errors"
	"fmt"
)

// CalcError represents a failed calculator operation
type CalcError struct {
	Type    ErrorType
	Op      string
	Input   string
	Column  int
	Message string
	Cause   error
}

func (e *CalcError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Type.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Column > 0 {
		return fmt.Sprintf("%s at column %d", msg, e.Column)
	}
	return msg
}

func (e *CalcError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *CalcError of the same kind. The sentinel
// values below carry only a Type, so errors.Is(err, ErrDivisionByZero)
// matches any division by zero regardless of operation or input.
func (e *CalcError) Is(target error) bool {
	t, ok := target.(*CalcError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// ErrorType classifies a CalcError. The zero value is Unknown, so an
// unset Type never reads as a real failure kind.
type ErrorType int

const (
	Unknown ErrorType = iota
	DivisionByZero
	SyntaxError
	UnsupportedExpression
	EmptyInput
)

func (t ErrorType) String() string {
	switch t {
	case DivisionByZero:
		return "division by zero"
	case SyntaxError:
		return "syntax error"
	case UnsupportedExpression:
		return "unsupported expression"
	case EmptyInput:
		return "empty input"
	default:
		return "unknown error"
	}
}

var (
	ErrDivisionByZero        = &CalcError{Type: DivisionByZero}
	ErrSyntax                = &CalcError{Type: SyntaxError}
	ErrUnsupportedExpression = &CalcError{Type: UnsupportedExpression}
	ErrEmptyInput            = &CalcError{Type: EmptyInput}
)

// KindOf returns the ErrorType carried by err, or false if err is not
// (and does not wrap) a *CalcError.
func KindOf(err error) (ErrorType, bool) {
	var ce *CalcError
	if errors.As(err, &ce) {
		return ce.Type, true
	}
	return Unknown, false
}
