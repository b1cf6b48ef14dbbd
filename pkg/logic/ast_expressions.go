package logic

import "strings"

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

var (
	_ Expression = (*BinaryExpression)(nil)
	_ Expression = (*IdentifierExpression)(nil)
	_ Expression = (*MemberExpression)(nil)
	_ Expression = (*FunctionCallExpression)(nil)
	_ Expression = (*LiteralExpression)(nil)
	_ Expression = (*ExpressionPlaceholder)(nil)
)

type BinaryExpression struct {
	ID       ID              `json:"id"`
	Left     Expression      `json:"left"`
	Operator *BinaryOperator `json:"op"`
	Right    Expression      `json:"right"`
}

func NewBinaryExpression(left Expression, op Operator, right Expression) *BinaryExpression {
	return &BinaryExpression{ID: NewID(), Left: left, Operator: NewBinaryOperator(op), Right: right}
}

func (*BinaryExpression) expressionNode() {}
func (n *BinaryExpression) NodeID() ID      { return n.ID }
func (n *BinaryExpression) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *BinaryExpression) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Left = f(n.Left).(Expression)
	c.Operator = f(n.Operator).(*BinaryOperator)
	c.Right = f(n.Right).(Expression)
	return &c
}
func (n *BinaryExpression) MarshalJSON() ([]byte, error) {
	type payload BinaryExpression
	return encodeCase("binaryExpression", (*payload)(n))
}

type IdentifierExpression struct {
	ID         ID          `json:"id"`
	Identifier *Identifier `json:"identifier"`
}

func NewIdentifierExpression(name string) *IdentifierExpression {
	return &IdentifierExpression{ID: NewID(), Identifier: NewIdentifier(name)}
}

func (*IdentifierExpression) expressionNode() {}
func (n *IdentifierExpression) NodeID() ID      { return n.ID }
func (n *IdentifierExpression) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *IdentifierExpression) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Identifier = f(n.Identifier).(*Identifier)
	return &c
}
func (n *IdentifierExpression) MarshalJSON() ([]byte, error) {
	type payload IdentifierExpression
	return encodeCase("identifierExpression", (*payload)(n))
}

// MemberExpression selects Member from Expression. When Expression names a
// namespace, enumeration or built-in module the pair forms a qualified name
// such as Color.saturate.
type MemberExpression struct {
	ID         ID          `json:"id"`
	Expression Expression  `json:"expression"`
	Member     *Identifier `json:"memberName"`
}

func NewMemberExpression(expr Expression, member string) *MemberExpression {
	return &MemberExpression{ID: NewID(), Expression: expr, Member: NewIdentifier(member)}
}

// NewQualifiedExpression builds the member chain for a dotted name.
func NewQualifiedExpression(name string) Expression {
	parts := strings.Split(name, ".")
	var expr Expression = NewIdentifierExpression(parts[0])
	for _, part := range parts[1:] {
		expr = NewMemberExpression(expr, part)
	}
	return expr
}

func (*MemberExpression) expressionNode() {}
func (n *MemberExpression) NodeID() ID      { return n.ID }
func (n *MemberExpression) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *MemberExpression) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Expression = f(n.Expression).(Expression)
	c.Member = f(n.Member).(*Identifier)
	return &c
}
func (n *MemberExpression) MarshalJSON() ([]byte, error) {
	type payload MemberExpression
	return encodeCase("memberExpression", (*payload)(n))
}

type FunctionCallExpression struct {
	ID         ID                         `json:"id"`
	Expression Expression                 `json:"expression"`
	Arguments  List[FunctionCallArgument] `json:"arguments"`
}

func NewFunctionCallExpression(callee Expression, args ...FunctionCallArgument) *FunctionCallExpression {
	return &FunctionCallExpression{ID: NewID(), Expression: callee, Arguments: ListOf(args...)}
}

func (*FunctionCallExpression) expressionNode() {}
func (n *FunctionCallExpression) NodeID() ID      { return n.ID }
func (n *FunctionCallExpression) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *FunctionCallExpression) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Expression = f(n.Expression).(Expression)
	c.Arguments = mapNodes(n.Arguments, f)
	return &c
}
func (n *FunctionCallExpression) MarshalJSON() ([]byte, error) {
	type payload FunctionCallExpression
	return encodeCase("functionCallExpression", (*payload)(n))
}

type LiteralExpression struct {
	ID      ID      `json:"id"`
	Literal Literal `json:"literal"`
}

func NewLiteralExpression(lit Literal) *LiteralExpression {
	return &LiteralExpression{ID: NewID(), Literal: lit}
}

func (*LiteralExpression) expressionNode() {}
func (n *LiteralExpression) NodeID() ID      { return n.ID }
func (n *LiteralExpression) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *LiteralExpression) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Literal = f(n.Literal).(Literal)
	return &c
}
func (n *LiteralExpression) MarshalJSON() ([]byte, error) {
	type payload LiteralExpression
	return encodeCase("literalExpression", (*payload)(n))
}

type ExpressionPlaceholder struct {
	ID ID `json:"id"`
}

func NewExpressionPlaceholder() *ExpressionPlaceholder {
	return &ExpressionPlaceholder{ID: NewID()}
}

func (*ExpressionPlaceholder) expressionNode()                    {}
func (n *ExpressionPlaceholder) NodeID() ID                       { return n.ID }
func (n *ExpressionPlaceholder) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *ExpressionPlaceholder) withID(id ID) Node                { return &ExpressionPlaceholder{ID: id} }
func (n *ExpressionPlaceholder) MarshalJSON() ([]byte, error) {
	type payload ExpressionPlaceholder
	return encodeCase("placeholder", (*payload)(n))
}

// QualifiedName flattens a chain of member expressions rooted at an
// identifier, e.g. Color.saturate. It reports false for any other shape.
func QualifiedName(expr Expression) (string, bool) {
	switch e := expr.(type) {
	case *IdentifierExpression:
		if e.Identifier.IsPlaceholder {
			return "", false
		}
		return e.Identifier.Name, true
	case *MemberExpression:
		base, ok := QualifiedName(e.Expression)
		if !ok {
			return "", false
		}
		return base + "." + e.Member.Name, true
	default:
		return "", false
	}
}
