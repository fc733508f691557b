// Package calc implements the arithmetic utilities and the restricted
// expression evaluator.
//
// Expressions are tokenised and parsed with the standard Go expression
// parser, then converted into the closed node set of pkg/types. Only
// numeric literals, the four binary operators, unary sign and parentheses
// survive the conversion; every other construct is rejected before any
// evaluation happens.
package calc

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"math/big"
	"strconv"
	"strings"

	"github.com/mamaar/gocalc/pkg/types"
)

const (
	opParse    = "parse"
	opEvaluate = "evaluate"
)

var binaryOps = map[token.Token]types.BinaryOperator{
	token.ADD: types.Add,
	token.SUB: types.Sub,
	token.MUL: types.Mul,
	token.QUO: types.Div,
}

var unaryOps = map[token.Token]types.UnaryOperator{
	token.ADD: types.Plus,
	token.SUB: types.Minus,
}

// Parse converts expression into an expression tree.
func Parse(expression string) (types.Node, error) {
	src, err := prepare(expression)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "", src.text, 0)
	if err != nil {
		return nil, syntaxError(expression, src, err)
	}

	c := &converter{fset: fset, src: expression, shift: src}
	return c.convert(expr)
}

// source is the text handed to the Go parser. It differs from the input
// only by the blanks inserted to split "++" and "--".
type source struct {
	text    string
	inserts []int // offsets of inserted blanks in text, ascending
}

// original maps an offset in s.text back to the input expression.
func (s source) original(off int) int {
	n := 0
	for _, p := range s.inserts {
		if p >= off {
			break
		}
		n++
	}
	return off - n
}

// prepare scans expression with the Go scanner. Comments are rejected: the
// parser would otherwise drop them, so "7 // 2" would read as 7. The INC
// and DEC tokens are split into two signs, so "--5" is a double negation.
func prepare(expression string) (source, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(expression))

	var s scanner.Scanner
	s.Init(file, []byte(expression), nil, scanner.ScanComments)

	var (
		sb   strings.Builder
		out  source
		last int
	)
	for {
		pos, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
		off := file.Offset(pos)
		switch tok {
		case token.COMMENT:
			return source{}, &types.CalcError{
				Type:    types.SyntaxError,
				Op:      opParse,
				Input:   expression,
				Column:  columnAt(expression, off),
				Message: "comments are not allowed",
			}
		case token.INC, token.DEC:
			sign := expression[off : off+1]
			sb.WriteString(expression[last:off])
			sb.WriteString(sign)
			out.inserts = append(out.inserts, sb.Len())
			sb.WriteString(" ")
			sb.WriteString(sign)
			out.inserts = append(out.inserts, sb.Len())
			sb.WriteString(" ")
			last = off + 2
		}
	}
	if out.inserts == nil {
		out.text = expression
		return out, nil
	}
	sb.WriteString(expression[last:])
	out.text = sb.String()
	return out, nil
}

func syntaxError(input string, src source, err error) *types.CalcError {
	ce := &types.CalcError{
		Type:    types.SyntaxError,
		Op:      opParse,
		Input:   input,
		Message: err.Error(),
		Cause:   err,
	}

	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		ce.Message = list[0].Msg
		ce.Column = list[0].Pos.Column
		if src.inserts != nil {
			ce.Column = columnAt(input, src.original(list[0].Pos.Offset))
		}
	}
	return ce
}

// columnAt maps a byte offset in src to a 1-based column on its line.
func columnAt(src string, off int) int {
	if off < 0 {
		return 0
	}
	if off > len(src) {
		return off + 1
	}
	return off - strings.LastIndexByte(src[:off], '\n')
}

type converter struct {
	fset  *token.FileSet
	src   string
	shift source
}

func (c *converter) convert(e ast.Expr) (types.Node, error) {
	switch n := e.(type) {
	case *ast.BasicLit:
		return c.literal(n)

	case *ast.ParenExpr:
		return c.convert(n.X)

	case *ast.UnaryExpr:
		op, ok := unaryOps[n.Op]
		if !ok {
			return nil, c.unsupported(n, fmt.Sprintf("unary operator %s", n.Op))
		}
		operand, err := c.convert(n.X)
		if err != nil {
			return nil, err
		}
		return &types.UnaryOp{Op: op, Operand: operand, Pos: c.offset(n)}, nil

	case *ast.BinaryExpr:
		op, ok := binaryOps[n.Op]
		if !ok {
			return nil, c.unsupportedAt(n.OpPos, fmt.Sprintf("operator %s", n.Op))
		}
		left, err := c.convert(n.X)
		if err != nil {
			return nil, err
		}
		right, err := c.convert(n.Y)
		if err != nil {
			return nil, err
		}
		return &types.BinaryOp{Op: op, Left: left, Right: right, Pos: c.offset(n)}, nil

	default:
		return nil, c.unsupported(e, describe(e))
	}
}

func (c *converter) literal(lit *ast.BasicLit) (types.Node, error) {
	pos := c.offset(lit)

	switch lit.Kind {
	case token.INT:
		if hasLeadingZero(lit.Value) {
			return nil, c.malformed(lit, fmt.Sprintf("leading zeros in decimal literal %s; use 0o for octal", lit.Value))
		}
		if v, err := strconv.ParseInt(lit.Value, 0, 64); err == nil {
			return &types.NumberLit{Value: types.Int(v), Pos: pos}, nil
		}
		// Beyond int64: keep the magnitude as a float.
		b, ok := new(big.Int).SetString(lit.Value, 0)
		if !ok {
			return nil, c.malformed(lit, fmt.Sprintf("invalid integer literal %s", lit.Value))
		}
		f, _ := new(big.Float).SetInt(b).Float64()
		return &types.NumberLit{Value: types.Float(f), Pos: pos}, nil

	case token.FLOAT:
		v, err := strconv.ParseFloat(strings.ReplaceAll(lit.Value, "_", ""), 64)
		if err != nil {
			return nil, c.malformed(lit, fmt.Sprintf("floating-point literal %s out of range", lit.Value))
		}
		return &types.NumberLit{Value: types.Float(v), Pos: pos}, nil

	case token.IMAG:
		return nil, c.unsupported(lit, "imaginary literal")
	case token.CHAR:
		return nil, c.unsupported(lit, "character literal")
	case token.STRING:
		return nil, c.unsupported(lit, "string literal")
	default:
		return nil, c.unsupported(lit, "literal "+lit.Value)
	}
}

func (c *converter) offset(n ast.Node) int {
	return c.shift.original(c.fset.Position(n.Pos()).Offset)
}

func (c *converter) column(pos token.Pos) int {
	return columnAt(c.src, c.shift.original(c.fset.Position(pos).Offset))
}

func (c *converter) unsupported(n ast.Node, what string) error {
	return c.unsupportedAt(n.Pos(), what)
}

func (c *converter) unsupportedAt(pos token.Pos, what string) error {
	return &types.CalcError{
		Type:    types.UnsupportedExpression,
		Op:      opParse,
		Input:   c.src,
		Column:  c.column(pos),
		Message: "unsupported expression: " + what,
	}
}

func (c *converter) malformed(n ast.Node, msg string) error {
	return &types.CalcError{
		Type:    types.SyntaxError,
		Op:      opParse,
		Input:   c.src,
		Column:  c.column(n.Pos()),
		Message: msg,
	}
}

// describe names a rejected construct for error messages.
func describe(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Ident:
		return fmt.Sprintf("identifier %q", n.Name)
	case *ast.CallExpr:
		return "function call"
	case *ast.SelectorExpr:
		return "attribute access"
	case *ast.IndexExpr, *ast.IndexListExpr:
		return "index expression"
	case *ast.SliceExpr:
		return "slice expression"
	case *ast.StarExpr:
		return "pointer dereference"
	case *ast.CompositeLit:
		return "composite literal"
	case *ast.FuncLit:
		return "function literal"
	case *ast.TypeAssertExpr:
		return "type assertion"
	case *ast.KeyValueExpr:
		return "key-value pair"
	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.InterfaceType, *ast.StructType:
		return "type expression"
	case *ast.BadExpr:
		return "malformed expression"
	default:
		return fmt.Sprintf("%T", e)
	}
}

// hasLeadingZero reports a legacy octal literal such as 017. Zero itself,
// written with any number of zeros, is still accepted.
func hasLeadingZero(lit string) bool {
	if len(lit) < 2 || lit[0] != '0' {
		return false
	}
	if c := lit[1]; c != '_' && (c < '0' || c > '9') {
		return false
	}
	return strings.Trim(lit, "0_") != ""
}
