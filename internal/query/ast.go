package query

// Expr is a node of a parsed filter expression.
type Expr interface {
	exprNode()
}

// CompOp is a comparison operator.
type CompOp int

const (
	CompEQ CompOp = iota
	CompNEQ
	CompLT
	CompLTE
	CompGT
	CompGTE
	CompLike
	CompNotLike
)

func (op CompOp) String() string {
	switch op {
	case CompEQ:
		return "="
	case CompNEQ:
		return "!="
	case CompLT:
		return "<"
	case CompLTE:
		return "<="
	case CompGT:
		return ">"
	case CompGTE:
		return ">="
	case CompLike:
		return "LIKE"
	case CompNotLike:
		return "NOT LIKE"
	default:
		return "?"
	}
}

// Literal is the right-hand side of a comparison, kept as typed by the user.
type Literal struct {
	Raw    string
	Quoted bool
	Pos    int
}

// ComparisonExpr is `column op value`.
type ComparisonExpr struct {
	Column    string
	ColumnPos int
	Op        CompOp
	Value     Literal
}

// NullCheckExpr is `column IS [NOT] NULL`.
type NullCheckExpr struct {
	Column    string
	ColumnPos int
	Negated   bool
}

// LogicOp joins two filter expressions.
type LogicOp int

const (
	LogicAnd LogicOp = iota
	LogicOr
)

// BinaryLogicExpr is `left AND right` or `left OR right`.
type BinaryLogicExpr struct {
	Op    LogicOp
	Left  Expr
	Right Expr
}

// NotExpr negates its operand.
type NotExpr struct {
	Inner Expr
}

func (*ComparisonExpr) exprNode()  {}
func (*NullCheckExpr) exprNode()   {}
func (*BinaryLogicExpr) exprNode() {}
func (*NotExpr) exprNode()         {}

// OrderItem is one `column DIRECTION` pair of an order expression.
type OrderItem struct {
	Column    string
	ColumnPos int
	Direction string // ASC or DESC
}
