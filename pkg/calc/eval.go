package calc

import (
	"fmt"
	"math"

	"github.com/mamaar/gocalc/pkg/types"
)

// Evaluate parses expression and evaluates it. Parse failures come back
// as SyntaxError or UnsupportedExpression, evaluation failures as
// DivisionByZero.
func Evaluate(expression string) (types.Number, error) {
	node, err := Parse(expression)
	if err != nil {
		return types.Number{}, err
	}
	ev := evaluator{src: expression}
	return ev.eval(node)
}

// Eval evaluates a tree produced by Parse or built by hand.
//
// Integer operands stay integer under +, - and *, falling back to float64
// when the result does not fit in int64. Division always yields a float.
func Eval(node types.Node) (types.Number, error) {
	var ev evaluator
	return ev.eval(node)
}

type evaluator struct {
	src string
}

func (ev evaluator) eval(node types.Node) (types.Number, error) {
	switch n := node.(type) {
	case *types.NumberLit:
		if n == nil {
			break
		}
		return n.Value, nil

	case *types.UnaryOp:
		if n == nil {
			break
		}
		v, err := ev.eval(n.Operand)
		if err != nil {
			return types.Number{}, err
		}
		switch n.Op {
		case types.Plus:
			return v, nil
		case types.Minus:
			return negate(v), nil
		}
		return types.Number{}, ev.unsupported(n, fmt.Sprintf("unary operator %d", n.Op))

	case *types.BinaryOp:
		if n == nil {
			break
		}
		l, err := ev.eval(n.Left)
		if err != nil {
			return types.Number{}, err
		}
		r, err := ev.eval(n.Right)
		if err != nil {
			return types.Number{}, err
		}
		return ev.binary(n, l, r)
	}

	return types.Number{}, ev.unsupported(node, fmt.Sprintf("node %T", node))
}

func (ev evaluator) binary(n *types.BinaryOp, l, r types.Number) (types.Number, error) {
	switch n.Op {
	case types.Add:
		if l.IsInt() && r.IsInt() {
			if s, ok := addInt(l.Int64(), r.Int64()); ok {
				return types.Int(s), nil
			}
		}
		return types.Float(l.Float64() + r.Float64()), nil

	case types.Sub:
		if l.IsInt() && r.IsInt() {
			if d, ok := subInt(l.Int64(), r.Int64()); ok {
				return types.Int(d), nil
			}
		}
		return types.Float(l.Float64() - r.Float64()), nil

	case types.Mul:
		if l.IsInt() && r.IsInt() {
			if p, ok := mulInt(l.Int64(), r.Int64()); ok {
				return types.Int(p), nil
			}
		}
		return types.Float(l.Float64() * r.Float64()), nil

	case types.Div:
		if r.IsZero() {
			return types.Number{}, &types.CalcError{
				Type:    types.DivisionByZero,
				Op:      opEvaluate,
				Input:   ev.src,
				Column:  ev.column(n.Right),
				Message: "division by zero",
			}
		}
		return types.Float(l.Float64() / r.Float64()), nil
	}

	return types.Number{}, ev.unsupported(n, fmt.Sprintf("binary operator %d", n.Op))
}

func (ev evaluator) unsupported(node types.Node, what string) error {
	return &types.CalcError{
		Type:    types.UnsupportedExpression,
		Op:      opEvaluate,
		Input:   ev.src,
		Column:  ev.column(node),
		Message: "unsupported expression: " + what,
	}
}

// column maps a node's byte offset to a 1-based column on its source line.
// Nodes that carry no usable position report 0.
func (ev evaluator) column(node types.Node) int {
	if node == nil || isNilNode(node) {
		return 0
	}
	return columnAt(ev.src, node.Offset())
}

func isNilNode(node types.Node) bool {
	switch n := node.(type) {
	case *types.NumberLit:
		return n == nil
	case *types.BinaryOp:
		return n == nil
	case *types.UnaryOp:
		return n == nil
	}
	return false
}

func negate(v types.Number) types.Number {
	if v.IsInt() {
		if v.Int64() == math.MinInt64 {
			return types.Float(-float64(v.Int64()))
		}
		return types.Int(-v.Int64())
	}
	return types.Float(-v.Float64())
}

func addInt(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

func subInt(a, b int64) (int64, bool) {
	d := a - b
	if (b > 0 && d > a) || (b < 0 && d < a) {
		return 0, false
	}
	return d, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}
