package calc

import (
	"strings"

	"github.com/mamaar/gocalc/pkg/types"
)

// Format renders node back to source text with every binary operation
// parenthesised, so the grouping the parser chose is explicit:
// "2 + 2 * (3 - 1)" becomes "(2 + (2 * (3 - 1)))".
// The output parses back to an equivalent tree.
func Format(node types.Node) string {
	var sb strings.Builder
	writeNode(&sb, node)
	return sb.String()
}

func writeNode(sb *strings.Builder, node types.Node) {
	if node == nil || isNilNode(node) {
		sb.WriteString("<nil>")
		return
	}

	switch n := node.(type) {
	case *types.NumberLit:
		s := n.Value.String()
		if strings.HasPrefix(s, "-") {
			sb.WriteString("(" + s + ")")
			return
		}
		sb.WriteString(s)

	case *types.UnaryOp:
		sb.WriteString(n.Op.String())
		var inner strings.Builder
		writeNode(&inner, n.Operand)
		s := inner.String()
		// "--3" would scan as a decrement token.
		if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
			s = "(" + s + ")"
		}
		sb.WriteString(s)

	case *types.BinaryOp:
		sb.WriteByte('(')
		writeNode(sb, n.Left)
		sb.WriteString(" " + n.Op.String() + " ")
		writeNode(sb, n.Right)
		sb.WriteByte(')')

	default:
		sb.WriteString("<invalid>")
	}
}
