package logic

import (
	"encoding/json"
	"fmt"
)

// Node is any syntax tree node. Nodes are immutable: every edit builds a new
// tree through Replace, sharing the subtrees it did not touch.
type Node interface {
	NodeID() ID

	// mapChildren returns a shallow copy of the node with f applied to each
	// direct child, in projection order. The copy keeps the receiver's ID.
	mapChildren(f func(Node) Node) Node

	// withID returns a shallow copy carrying a different identity.
	withID(ID) Node
}

// Category is the discriminant of the syntax node union. Replacements are
// only accepted between nodes of the same category.
type Category string

const (
	CategoryProgram              Category = "program"
	CategoryStatement            Category = "statement"
	CategoryDeclaration          Category = "declaration"
	CategoryExpression           Category = "expression"
	CategoryIdentifier           Category = "identifier"
	CategoryPattern              Category = "pattern"
	CategoryLiteral              Category = "literal"
	CategoryTypeAnnotation       Category = "typeAnnotation"
	CategoryBinaryOperator       Category = "binaryOperator"
	CategoryFunctionParameter    Category = "functionParameter"
	CategoryFunctionCallArgument Category = "functionCallArgument"
	CategoryEnumerationCase      Category = "enumerationCase"
)

// CategoryOf reports which category a node belongs to.
func CategoryOf(n Node) Category {
	switch n.(type) {
	case *Program:
		return CategoryProgram
	case Statement:
		return CategoryStatement
	case Declaration:
		return CategoryDeclaration
	case Expression:
		return CategoryExpression
	case *Identifier:
		return CategoryIdentifier
	case *Pattern:
		return CategoryPattern
	case Literal:
		return CategoryLiteral
	case TypeAnnotation:
		return CategoryTypeAnnotation
	case *BinaryOperator:
		return CategoryBinaryOperator
	case FunctionParameter:
		return CategoryFunctionParameter
	case FunctionCallArgument:
		return CategoryFunctionCallArgument
	case EnumerationCase:
		return CategoryEnumerationCase
	default:
		panic(fmt.Sprintf("unknown node type %T", n))
	}
}

// Children returns the direct children of n in projection order.
func Children(n Node) []Node {
	var children []Node
	n.mapChildren(func(c Node) Node {
		children = append(children, c)
		return c
	})
	return children
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

func mapNodes[T Node](l List[T], f func(Node) Node) List[T] {
	return Map(l, func(x T) T { return f(x).(T) })
}

// mapOptional is mapChildren for optional slots, which hold nil when empty.
func mapOptional[T Node](x T, f func(Node) Node) T {
	if any(x) == nil {
		return x
	}
	return f(x).(T)
}

// Program is the root of a document.
type Program struct {
	ID    ID              `json:"id"`
	Block List[Statement] `json:"block"`
}

func NewProgram(statements ...Statement) *Program {
	return &Program{ID: NewID(), Block: ListOf(statements...)}
}

func (n *Program) NodeID() ID { return n.ID }
func (n *Program) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *Program) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Block = mapNodes(n.Block, f)
	return &c
}
func (n *Program) MarshalJSON() ([]byte, error) {
	type payload Program
	return encodeCase("program", (*payload)(n))
}

// Identifier is a reference to a named binding.
type Identifier struct {
	ID            ID     `json:"id"`
	Name          string `json:"string"`
	IsPlaceholder bool   `json:"isPlaceholder"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{ID: NewID(), Name: name}
}

func NewIdentifierPlaceholder() *Identifier {
	return &Identifier{ID: NewID(), IsPlaceholder: true}
}

func (n *Identifier) NodeID() ID                       { return n.ID }
func (n *Identifier) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *Identifier) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}

// Pattern introduces a name, e.g. the name of a declaration or loop variable.
type Pattern struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func NewPattern(name string) *Pattern {
	return &Pattern{ID: NewID(), Name: name}
}

func (n *Pattern) NodeID() ID                       { return n.ID }
func (n *Pattern) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *Pattern) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}

// Operator names a binary operation.
type Operator string

const (
	OpIsEqualTo              Operator = "isEqualTo"
	OpIsNotEqualTo           Operator = "isNotEqualTo"
	OpIsLessThan             Operator = "isLessThan"
	OpIsGreaterThan          Operator = "isGreaterThan"
	OpIsLessThanOrEqualTo    Operator = "isLessThanOrEqualTo"
	OpIsGreaterThanOrEqualTo Operator = "isGreaterThanOrEqualTo"
	OpSetEqualTo             Operator = "setEqualTo"
)

// Operators lists every operator in menu order.
var Operators = []Operator{
	OpIsEqualTo,
	OpIsNotEqualTo,
	OpIsLessThan,
	OpIsGreaterThan,
	OpIsLessThanOrEqualTo,
	OpIsGreaterThanOrEqualTo,
	OpSetEqualTo,
}

// Symbol is the operator's source spelling.
func (op Operator) Symbol() string {
	switch op {
	case OpIsEqualTo:
		return "=="
	case OpIsNotEqualTo:
		return "!="
	case OpIsLessThan:
		return "<"
	case OpIsGreaterThan:
		return ">"
	case OpIsLessThanOrEqualTo:
		return "<="
	case OpIsGreaterThanOrEqualTo:
		return ">="
	case OpSetEqualTo:
		return "="
	default:
		return string(op)
	}
}

// IsComparison reports whether the operator produces a Boolean.
func (op Operator) IsComparison() bool {
	return op != OpSetEqualTo
}

// BinaryOperator is the operator slot of a binary expression.
type BinaryOperator struct {
	ID ID
	Op Operator
}

func NewBinaryOperator(op Operator) *BinaryOperator {
	return &BinaryOperator{ID: NewID(), Op: op}
}

func (n *BinaryOperator) NodeID() ID                       { return n.ID }
func (n *BinaryOperator) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *BinaryOperator) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *BinaryOperator) MarshalJSON() ([]byte, error) {
	return encodeCase(string(n.Op), struct {
		ID ID `json:"id"`
	}{n.ID})
}

func encodeCase(tag string, data any) ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Data any    `json:"data"`
	}{tag, data})
}
