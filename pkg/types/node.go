package types

// Node is one node of a parsed arithmetic expression. The set of
// implementations is closed: only NumberLit, BinaryOp and UnaryOp exist.
type Node interface {
	// Offset is the 0-based byte offset where the node starts in the source.
	Offset() int
	exprNode()
}

// BinaryOperator identifies one of the four arithmetic operators.
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
)

func (op BinaryOperator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// UnaryOperator identifies a prefix sign.
type UnaryOperator int

const (
	Plus UnaryOperator = iota
	Minus
)

func (op UnaryOperator) String() string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	default:
		return "?"
	}
}

// NumberLit is an integer or floating-point literal.
type NumberLit struct {
	Value Number
	Pos   int
}

// BinaryOp applies Op to Left and Right.
type BinaryOp struct {
	Op    BinaryOperator
	Left  Node
	Right Node
	Pos   int
}

// UnaryOp applies a sign to Operand.
type UnaryOp struct {
	Op      UnaryOperator
	Operand Node
	Pos     int
}

func (n *NumberLit) Offset() int { return n.Pos }
func (n *BinaryOp) Offset() int  { return n.Pos }
func (n *UnaryOp) Offset() int   { return n.Pos }

func (*NumberLit) exprNode() {}
func (*BinaryOp) exprNode()  {}
func (*UnaryOp) exprNode()   {}
