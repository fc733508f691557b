package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamaar/gocalc/pkg/types"
)

func TestEvaluate_Arithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want types.Number
	}{
		{"2 + 2", types.Int(4)},
		{"2 + 2 * (3 - 1)", types.Int(6)},
		{"-3 + 4", types.Int(1)},
		{"10 + 5 * 2", types.Int(20)},
		{"8 - 2 * 3", types.Int(2)},
		{"10 - 4 - 3", types.Int(3)},
		{"(8 - 2) * (5 - 3)", types.Int(12)},
		{"3 * -2", types.Int(-6)},
		{"+5", types.Int(5)},
		{"- -5", types.Int(5)},
		{"-(-5)", types.Int(5)},
		{"((((7))))", types.Int(7)},
		{"0x10 + 1", types.Int(17)},
		{"1_000 * 2", types.Int(2000)},
		{"18 / 3 + 2", types.Float(8)},
		{"7 / 2", types.Float(3.5)},
		{"4 / 2", types.Float(2)},
		{"0 / 5", types.Float(0)},
		{"1.5 * 2", types.Float(3)},
		{"0.1 + 0.2", types.Float(0.1 + 0.2)},
		{"1e3", types.Float(1000)},
		{"--5", types.Int(5)},
		{"1--2", types.Int(3)},
		{"++1", types.Int(1)},
		{"+++1", types.Int(1)},
		{"---5", types.Int(-5)},
		{"2*--3", types.Int(6)},
		{"1 - -(--2)", types.Int(3)},
		{"0b101", types.Int(5)},
		{"0o17", types.Int(15)},
		{"1_0", types.Int(10)},
		{"00", types.Int(0)},
		{"017.5", types.Float(17.5)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind(), got.Kind(), "kind of %q", tt.expr)
			assert.InDelta(t, tt.want.Float64(), got.Float64(), 1e-9)
		})
	}
}

func TestEvaluate_IntegerOverflowFallsBackToFloat(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"9223372036854775807 + 1", 9223372036854775808},
		{"-9223372036854775807 - 2", -9223372036854775809},
		{"9223372036854775807 * 2", 2 * 9223372036854775807.0},
		{"99999999999999999999", 1e20},
		{"-9223372036854775808", -9223372036854775808},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			require.NoError(t, err)
			assert.False(t, got.IsInt())
			assert.Equal(t, tt.want, got.Float64())
		})
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	for _, expr := range []string{"1/0", "1 / 0.0", "5 / (2 - 2)", "1 / -0.0", "0/0"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Evaluate(expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrDivisionByZero), "got %v", err)
		})
	}

	_, err := Evaluate("1/0")
	var ce *types.CalcError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "evaluate", ce.Op)
	assert.Equal(t, "1/0", ce.Input)
	assert.Equal(t, 3, ce.Column)
}

func TestEvaluate_RejectsNonArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		kind types.ErrorType
	}{
		{"__import__('os')", types.SyntaxError},
		{"1; 2", types.SyntaxError},
		{"", types.SyntaxError},
		{"   ", types.SyntaxError},
		{"(1 + 2", types.SyntaxError},
		{"1 +", types.SyntaxError},
		{"x = 1", types.SyntaxError},
		{"08", types.SyntaxError},
		{"1e400", types.SyntaxError},
		{"1++", types.SyntaxError},
		{"x + 1", types.UnsupportedExpression},
		{"abs(-1)", types.UnsupportedExpression},
		{"os.Exit(1)", types.UnsupportedExpression},
		{"2 ** 3", types.UnsupportedExpression},
		{"1 < 2", types.UnsupportedExpression},
		{"1 == 1", types.UnsupportedExpression},
		{"7 % 2", types.UnsupportedExpression},
		{"1 << 3", types.UnsupportedExpression},
		{"^1", types.UnsupportedExpression},
		{"!1", types.UnsupportedExpression},
		{`"a" + "b"`, types.UnsupportedExpression},
		{"'a'", types.UnsupportedExpression},
		{"2i", types.UnsupportedExpression},
		{"[]int{1}", types.UnsupportedExpression},
		{"func() int { return 1 }()", types.UnsupportedExpression},
		{"a[0]", types.UnsupportedExpression},
		{"true", types.UnsupportedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			require.Error(t, err)
			assert.Equal(t, types.Number{}, got)

			kind, ok := types.KindOf(err)
			require.True(t, ok, "expected a *types.CalcError, got %T", err)
			assert.Equal(t, tt.kind, kind, "error: %v", err)
		})
	}
}

// The Go scanner accepts these, but they are not arithmetic: comments would
// silently drop text and a leading zero would change the value to octal.
func TestEvaluate_RejectsGoLexicalForms(t *testing.T) {
	tests := []struct {
		expr   string
		column int
	}{
		{"7 // 2", 3},
		{"1 /* x */ + 2", 3},
		{"2 + 2 // anything at all import os", 7},
		{"/* */ 1", 1},
		{"1 /* unterminated", 3},
		{"017", 1},
		{"1 + 0_7", 5},
		{"--017", 3},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			require.Error(t, err)
			assert.Equal(t, types.Number{}, got)
			assert.ErrorIs(t, err, types.ErrSyntax)

			var ce *types.CalcError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "parse", ce.Op)
			assert.Equal(t, tt.expr, ce.Input)
			assert.Equal(t, tt.column, ce.Column, "error: %v", err)
		})
	}
}

func TestEvaluate_ErrorColumns(t *testing.T) {
	tests := []struct {
		expr   string
		column int
	}{
		{"1 + x", 5},
		{"1 < 2", 3},
		{"(1 + 2", 7},
		{"1 +\n  y", 3},
		{"--x", 3},
		{"1--x", 4},
		{"1 ++ 2 < 3", 8},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Evaluate(tt.expr)
			var ce *types.CalcError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.column, ce.Column, "error: %v", err)
			assert.Equal(t, "parse", ce.Op)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	for _, expr := range []string{"2 + 2 * (3 - 1)", "7 / 2", "1/0", "x"} {
		first, err1 := Evaluate(expr)
		second, err2 := Evaluate(expr)
		assert.Equal(t, first, second, expr)
		if err1 == nil {
			assert.NoError(t, err2)
			continue
		}
		require.Error(t, err2)
		assert.Equal(t, err1.Error(), err2.Error())
	}
}

func TestEval_Tree(t *testing.T) {
	lit := func(n types.Number) *types.NumberLit { return &types.NumberLit{Value: n} }

	tree := &types.BinaryOp{
		Op:   types.Mul,
		Left: &types.UnaryOp{Op: types.Minus, Operand: lit(types.Int(3))},
		Right: &types.BinaryOp{
			Op:    types.Add,
			Left:  lit(types.Float(0.5)),
			Right: lit(types.Int(1)),
		},
	}

	got, err := Eval(tree)
	require.NoError(t, err)
	assert.Equal(t, types.Float(-4.5), got)

	got, err = Eval(&types.UnaryOp{Op: types.Minus, Operand: lit(types.Int(math.MinInt64))})
	require.NoError(t, err)
	assert.Equal(t, types.Float(9223372036854775808), got)
}

func TestEval_UnsupportedNodes(t *testing.T) {
	one := &types.NumberLit{Value: types.Int(1)}

	tests := []struct {
		name string
		node types.Node
	}{
		{"nil interface", nil},
		{"nil literal", (*types.NumberLit)(nil)},
		{"nil binary", (*types.BinaryOp)(nil)},
		{"nil operand", &types.UnaryOp{Op: types.Minus}},
		{"unknown binary operator", &types.BinaryOp{Op: types.BinaryOperator(9), Left: one, Right: one}},
		{"unknown unary operator", &types.UnaryOp{Op: types.UnaryOperator(9), Operand: one}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Eval(tt.node)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrUnsupportedExpression)
		})
	}
}
