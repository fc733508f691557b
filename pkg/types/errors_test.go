package types

import (
	"errors"
	"fmt"
	"go/scanner"
	"go/token"
	"testing"
)

func TestCalcError(t *testing.T) {
	err := &CalcError{
		Type:    SyntaxError,
		Op:      "evaluate",
		Input:   "1 +",
		Column:  4,
		Message: "expected operand",
	}

	if err.Type != SyntaxError {
		t.Errorf("Expected Type to be SyntaxError, got %v", err.Type)
	}

	if err.Input != "1 +" {
		t.Errorf("Expected Input to be '1 +', got '%s'", err.Input)
	}
}

func TestCalcError_Error(t *testing.T) {
	testCases := []struct {
		name     string
		err      *CalcError
		expected string
	}{
		{
			name: "With column",
			err: &CalcError{
				Type:    SyntaxError,
				Op:      "evaluate",
				Column:  4,
				Message: "expected operand",
			},
			expected: "evaluate: expected operand at column 4",
		},
		{
			name: "Without column",
			err: &CalcError{
				Type:    DivisionByZero,
				Op:      "divide",
				Message: "division by zero",
			},
			expected: "divide: division by zero",
		},
		{
			name:     "Kind only",
			err:      &CalcError{Type: EmptyInput},
			expected: "empty input",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.err.Error()
			if result != tc.expected {
				t.Errorf("Expected error message '%s', got '%s'", tc.expected, result)
			}
		})
	}
}

func TestCalcError_Unwrap(t *testing.T) {
	var list scanner.ErrorList
	list.Add(token.Position{Line: 1, Column: 3}, "illegal rune literal")

	err := &CalcError{
		Type:    SyntaxError,
		Message: "illegal rune literal",
		Cause:   list,
	}

	var got scanner.ErrorList
	if !errors.As(err, &got) {
		t.Fatal("Expected errors.As to find the scanner error list")
	}
	if len(got) != 1 {
		t.Errorf("Expected 1 scanner error, got %d", len(got))
	}

	errNoCause := &CalcError{Type: EmptyInput}
	if errNoCause.Unwrap() != nil {
		t.Errorf("Expected unwrapped error to be nil, got %v", errNoCause.Unwrap())
	}
}

func TestCalcError_Is(t *testing.T) {
	err := fmt.Errorf("demo: %w", &CalcError{Type: DivisionByZero, Op: "divide"})

	if !errors.Is(err, ErrDivisionByZero) {
		t.Error("Expected wrapped division error to match ErrDivisionByZero")
	}
	if errors.Is(err, ErrSyntax) {
		t.Error("Did not expect division error to match ErrSyntax")
	}
	if errors.Is(errors.New("division by zero"), ErrDivisionByZero) {
		t.Error("Did not expect a plain error to match ErrDivisionByZero")
	}
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("wrapped: %w", &CalcError{Type: UnsupportedExpression}))
	if !ok || kind != UnsupportedExpression {
		t.Errorf("Expected UnsupportedExpression, got %v (ok=%v)", kind, ok)
	}

	kind, ok = KindOf(errors.New("plain"))
	if ok {
		t.Error("Expected KindOf to report false for a plain error")
	}
	if kind != Unknown {
		t.Errorf("Expected Unknown for a plain error, got %v", kind)
	}
}

func TestCalcError_ZeroValue(t *testing.T) {
	var err CalcError
	if err.Type != Unknown {
		t.Errorf("Expected zero Type to be Unknown, got %v", err.Type)
	}
	if errors.Is(&err, ErrDivisionByZero) {
		t.Error("Did not expect a zero-valued error to match ErrDivisionByZero")
	}
	if got := err.Error(); got != "unknown error" {
		t.Errorf("Expected 'unknown error', got %q", got)
	}
}

func TestErrorType_String(t *testing.T) {
	testCases := []struct {
		errType  ErrorType
		expected string
	}{
		{DivisionByZero, "division by zero"},
		{SyntaxError, "syntax error"},
		{UnsupportedExpression, "unsupported expression"},
		{EmptyInput, "empty input"},
		{Unknown, "unknown error"},
		{ErrorType(42), "unknown error"},
	}

	for _, tc := range testCases {
		if got := tc.errType.String(); got != tc.expected {
			t.Errorf("Expected %d to render %q, got %q", tc.errType, tc.expected, got)
		}
	}
}
