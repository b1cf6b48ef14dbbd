package logic

// Statement is a node that can appear in a block.
type Statement interface {
	Node
	statementNode()
}

var (
	_ Statement = (*Branch)(nil)
	_ Statement = (*Loop)(nil)
	_ Statement = (*DeclarationStatement)(nil)
	_ Statement = (*ExpressionStatement)(nil)
	_ Statement = (*ReturnStatement)(nil)
	_ Statement = (*StatementPlaceholder)(nil)
)

// Branch runs its block when the condition holds.
type Branch struct {
	ID        ID              `json:"id"`
	Condition Expression      `json:"condition"`
	Block     List[Statement] `json:"block"`
}

func NewBranch(condition Expression, block ...Statement) *Branch {
	return &Branch{ID: NewID(), Condition: condition, Block: ListOf(block...)}
}

func (*Branch) statementNode() {}
func (n *Branch) NodeID() ID     { return n.ID }
func (n *Branch) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *Branch) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Condition = f(n.Condition).(Expression)
	c.Block = mapNodes(n.Block, f)
	return &c
}
func (n *Branch) MarshalJSON() ([]byte, error) {
	type payload Branch
	return encodeCase("branch", (*payload)(n))
}

// Loop runs its block once per element of an array, binding the element to
// Pattern.
type Loop struct {
	ID         ID              `json:"id"`
	Pattern    *Pattern        `json:"pattern"`
	Expression Expression      `json:"expression"`
	Block      List[Statement] `json:"block"`
}

func NewLoop(pattern *Pattern, expr Expression, block ...Statement) *Loop {
	return &Loop{ID: NewID(), Pattern: pattern, Expression: expr, Block: ListOf(block...)}
}

func (*Loop) statementNode() {}
func (n *Loop) NodeID() ID     { return n.ID }
func (n *Loop) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *Loop) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Pattern = f(n.Pattern).(*Pattern)
	c.Expression = f(n.Expression).(Expression)
	c.Block = mapNodes(n.Block, f)
	return &c
}
func (n *Loop) MarshalJSON() ([]byte, error) {
	type payload Loop
	return encodeCase("loop", (*payload)(n))
}

// DeclarationStatement places a declaration in a block.
type DeclarationStatement struct {
	ID      ID          `json:"id"`
	Content Declaration `json:"content"`
}

func NewDeclarationStatement(decl Declaration) *DeclarationStatement {
	return &DeclarationStatement{ID: NewID(), Content: decl}
}

func (*DeclarationStatement) statementNode() {}
func (n *DeclarationStatement) NodeID() ID     { return n.ID }
func (n *DeclarationStatement) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *DeclarationStatement) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Content = f(n.Content).(Declaration)
	return &c
}
func (n *DeclarationStatement) MarshalJSON() ([]byte, error) {
	type payload DeclarationStatement
	return encodeCase("declaration", (*payload)(n))
}

// ExpressionStatement evaluates an expression for its effect, typically an
// assignment.
type ExpressionStatement struct {
	ID         ID         `json:"id"`
	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{ID: NewID(), Expression: expr}
}

func (*ExpressionStatement) statementNode() {}
func (n *ExpressionStatement) NodeID() ID     { return n.ID }
func (n *ExpressionStatement) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *ExpressionStatement) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Expression = f(n.Expression).(Expression)
	return &c
}
func (n *ExpressionStatement) MarshalJSON() ([]byte, error) {
	type payload ExpressionStatement
	return encodeCase("expressionStatement", (*payload)(n))
}

// ReturnStatement leaves the enclosing function with a value.
type ReturnStatement struct {
	ID         ID         `json:"id"`
	Expression Expression `json:"expression"`
}

func NewReturnStatement(expr Expression) *ReturnStatement {
	return &ReturnStatement{ID: NewID(), Expression: expr}
}

func (*ReturnStatement) statementNode() {}
func (n *ReturnStatement) NodeID() ID     { return n.ID }
func (n *ReturnStatement) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *ReturnStatement) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Expression = f(n.Expression).(Expression)
	return &c
}
func (n *ReturnStatement) MarshalJSON() ([]byte, error) {
	type payload ReturnStatement
	return encodeCase("returnStatement", (*payload)(n))
}

// StatementPlaceholder marks an empty statement slot.
type StatementPlaceholder struct {
	ID ID `json:"id"`
}

func NewStatementPlaceholder() *StatementPlaceholder {
	return &StatementPlaceholder{ID: NewID()}
}

func (*StatementPlaceholder) statementNode()                     {}
func (n *StatementPlaceholder) NodeID() ID                       { return n.ID }
func (n *StatementPlaceholder) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *StatementPlaceholder) withID(id ID) Node                { return &StatementPlaceholder{ID: id} }
func (n *StatementPlaceholder) MarshalJSON() ([]byte, error) {
	type payload StatementPlaceholder
	return encodeCase("placeholder", (*payload)(n))
}
