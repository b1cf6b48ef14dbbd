package logic

// Literal is a constant written directly in source.
type Literal interface {
	Node
	literalNode()
}

var (
	_ Literal = (*NoneLiteral)(nil)
	_ Literal = (*BooleanLiteral)(nil)
	_ Literal = (*NumberLiteral)(nil)
	_ Literal = (*StringLiteral)(nil)
	_ Literal = (*ColorLiteral)(nil)
	_ Literal = (*ArrayLiteral)(nil)
)

type NoneLiteral struct {
	ID ID `json:"id"`
}

func NewNoneLiteral() *NoneLiteral { return &NoneLiteral{ID: NewID()} }

func (*NoneLiteral) literalNode()                       {}
func (n *NoneLiteral) NodeID() ID                       { return n.ID }
func (n *NoneLiteral) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *NoneLiteral) withID(id ID) Node                { return &NoneLiteral{ID: id} }
func (n *NoneLiteral) MarshalJSON() ([]byte, error) {
	type payload NoneLiteral
	return encodeCase("none", (*payload)(n))
}

type BooleanLiteral struct {
	ID    ID   `json:"id"`
	Value bool `json:"value"`
}

func NewBooleanLiteral(v bool) *BooleanLiteral { return &BooleanLiteral{ID: NewID(), Value: v} }

func (*BooleanLiteral) literalNode()                       {}
func (n *BooleanLiteral) NodeID() ID                       { return n.ID }
func (n *BooleanLiteral) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *BooleanLiteral) withID(id ID) Node                { return &BooleanLiteral{ID: id, Value: n.Value} }
func (n *BooleanLiteral) MarshalJSON() ([]byte, error) {
	type payload BooleanLiteral
	return encodeCase("boolean", (*payload)(n))
}

type NumberLiteral struct {
	ID    ID      `json:"id"`
	Value float64 `json:"value"`
}

func NewNumberLiteral(v float64) *NumberLiteral { return &NumberLiteral{ID: NewID(), Value: v} }

func (*NumberLiteral) literalNode()                       {}
func (n *NumberLiteral) NodeID() ID                       { return n.ID }
func (n *NumberLiteral) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *NumberLiteral) withID(id ID) Node                { return &NumberLiteral{ID: id, Value: n.Value} }
func (n *NumberLiteral) MarshalJSON() ([]byte, error) {
	type payload NumberLiteral
	return encodeCase("number", (*payload)(n))
}

type StringLiteral struct {
	ID    ID     `json:"id"`
	Value string `json:"value"`
}

func NewStringLiteral(v string) *StringLiteral { return &StringLiteral{ID: NewID(), Value: v} }

func (*StringLiteral) literalNode()                       {}
func (n *StringLiteral) NodeID() ID                       { return n.ID }
func (n *StringLiteral) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *StringLiteral) withID(id ID) Node                { return &StringLiteral{ID: id, Value: n.Value} }
func (n *StringLiteral) MarshalJSON() ([]byte, error) {
	type payload StringLiteral
	return encodeCase("string", (*payload)(n))
}

// ColorLiteral holds a CSS hex colour such as #ff8800.
type ColorLiteral struct {
	ID    ID     `json:"id"`
	Value string `json:"value"`
}

func NewColorLiteral(v string) *ColorLiteral { return &ColorLiteral{ID: NewID(), Value: v} }

func (*ColorLiteral) literalNode()                       {}
func (n *ColorLiteral) NodeID() ID                       { return n.ID }
func (n *ColorLiteral) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *ColorLiteral) withID(id ID) Node                { return &ColorLiteral{ID: id, Value: n.Value} }
func (n *ColorLiteral) MarshalJSON() ([]byte, error) {
	type payload ColorLiteral
	return encodeCase("color", (*payload)(n))
}

type ArrayLiteral struct {
	ID       ID               `json:"id"`
	Elements List[Expression] `json:"value"`
}

func NewArrayLiteral(elems ...Expression) *ArrayLiteral {
	return &ArrayLiteral{ID: NewID(), Elements: ListOf(elems...)}
}

func (*ArrayLiteral) literalNode()  {}
func (n *ArrayLiteral) NodeID() ID { return n.ID }
func (n *ArrayLiteral) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *ArrayLiteral) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Elements = mapNodes(n.Elements, f)
	return &c
}
func (n *ArrayLiteral) MarshalJSON() ([]byte, error) {
	type payload ArrayLiteral
	return encodeCase("array", (*payload)(n))
}

// Shorthands for literal expressions, used heavily when building trees by
// hand.

func NumberExpr(v float64) *LiteralExpression { return NewLiteralExpression(NewNumberLiteral(v)) }
func StringExpr(v string) *LiteralExpression  { return NewLiteralExpression(NewStringLiteral(v)) }
func BoolExpr(v bool) *LiteralExpression      { return NewLiteralExpression(NewBooleanLiteral(v)) }
func ColorExpr(v string) *LiteralExpression   { return NewLiteralExpression(NewColorLiteral(v)) }
func NoneExpr() *LiteralExpression            { return NewLiteralExpression(NewNoneLiteral()) }
