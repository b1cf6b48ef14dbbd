package logic

import (
	"fmt"
	"strconv"
	"strings"
)

// ElementKind distinguishes visible text from layout markers.
type ElementKind int

const (
	TextElement ElementKind = iota
	IndentElement
	LineBreakElement
)

func (k ElementKind) String() string {
	switch k {
	case TextElement:
		return "text"
	case IndentElement:
		return "indent"
	case LineBreakElement:
		return "lineBreak"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
}

func (k ElementKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Style is the rendering-agnostic role of an element's text.
type Style string

const (
	StylePlain       Style = "plain"
	StyleKeyword     Style = "keyword"
	StyleIdentifier  Style = "identifier"
	StyleLiteral     Style = "literal"
	StyleOperator    Style = "operator"
	StylePlaceholder Style = "placeholder"
	StylePunctuation Style = "punctuation"
)

// Element is one run of the formatted projection. NodeID is empty for
// elements that cannot be activated, such as indentation and punctuation.
type Element struct {
	Kind   ElementKind `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Style  Style       `json:"style,omitempty"`
	NodeID ID          `json:"nodeId,omitempty"`
}

// Activatable reports whether the element maps back to a node.
func (e Element) Activatable() bool {
	return e.NodeID != ""
}

// FormatOptions control layout. They never affect element ranges.
type FormatOptions struct {
	Indent string
}

const defaultIndent = "  "

func DefaultFormatOptions() FormatOptions {
	return FormatOptions{Indent: defaultIndent}
}

// Placeholder words shown for empty slots.
const (
	statementPlaceholder   = "statement"
	declarationPlaceholder = "declaration"
	valuePlaceholder       = "value"
	namePlaceholder        = "name"
	typePlaceholder        = "type"
	argumentPlaceholder    = "argument"
	parameterPlaceholder   = "parameter"
	casePlaceholder        = "case"
)

// Format builds the formatted projection of a tree with default options.
func Format(tree Node) *Projection {
	return FormatWithOptions(tree, DefaultFormatOptions())
}

// FormatWithOptions builds the formatted projection of a tree.
func FormatWithOptions(tree Node, opts FormatOptions) *Projection {
	if opts.Indent == "" {
		opts.Indent = defaultIndent
	}
	f := &Formatter{opts: opts, ranges: map[ID]Range{}}
	f.formatNode(tree)
	return newProjection(tree, f.elements, f.ranges)
}

// Formatter lays a tree out as elements, recording the element range covered
// by every node it visits.
type Formatter struct {
	opts     FormatOptions
	indent   int
	elements []Element
	ranges   map[ID]Range
}

func (f *Formatter) emit(e Element) {
	f.elements = append(f.elements, e)
}

// text writes untagged punctuation or whitespace.
func (f *Formatter) text(s string) {
	f.emit(Element{Kind: TextElement, Text: s, Style: StylePunctuation})
}

func (f *Formatter) token(s string, style Style, id ID) {
	f.emit(Element{Kind: TextElement, Text: s, Style: style, NodeID: id})
}

func (f *Formatter) keyword(s string, owner Node) {
	f.token(s, StyleKeyword, owner.NodeID())
}

func (f *Formatter) newline() {
	f.emit(Element{Kind: LineBreakElement})
}

func (f *Formatter) writeIndent() {
	if f.indent == 0 {
		return
	}
	f.emit(Element{Kind: IndentElement, Text: strings.Repeat(f.opts.Indent, f.indent)})
}

func (f *Formatter) indented(fn func()) {
	f.indent++
	fn()
	f.indent--
}

// lines writes each node on its own line at the current indentation.
func lines[T Node](f *Formatter, l List[T]) {
	for _, n := range l.All() {
		f.writeIndent()
		f.formatNode(n)
		f.newline()
	}
}

// body writes " {", the indented nodes, and the closing brace.
func body[T Node](f *Formatter, l List[T]) {
	f.text(" {")
	f.newline()
	f.indented(func() {
		lines(f, l)
	})
	f.writeIndent()
	f.text("}")
}

func separated[T Node](f *Formatter, l List[T], sep string) {
	for i, n := range l.All() {
		if i > 0 {
			f.text(sep)
		}
		f.formatNode(n)
	}
}

func (f *Formatter) formatNode(node Node) {
	start := len(f.elements)
	defer func() {
		f.ranges[node.NodeID()] = Range{Start: start, End: len(f.elements)}
	}()

	switch n := node.(type) {
	case *Program:
		lines(f, n.Block)

	// statements
	case *Branch:
		f.keyword("if", n)
		f.text(" (")
		f.formatNode(n.Condition)
		f.text(")")
		body(f, n.Block)
	case *Loop:
		f.keyword("for", n)
		f.text(" ")
		f.formatNode(n.Pattern)
		f.text(" ")
		f.keyword("in", n)
		f.text(" ")
		f.formatNode(n.Expression)
		body(f, n.Block)
	case *DeclarationStatement:
		f.formatNode(n.Content)
	case *ExpressionStatement:
		f.formatNode(n.Expression)
	case *ReturnStatement:
		f.keyword("return", n)
		f.text(" ")
		f.formatNode(n.Expression)
	case *StatementPlaceholder:
		f.token(statementPlaceholder, StylePlaceholder, n.ID)

	// declarations
	case *VariableDeclaration:
		f.keyword("let", n)
		f.text(" ")
		f.formatNode(n.Name)
		if n.Annotation != nil {
			f.text(": ")
			f.formatNode(n.Annotation)
		}
		if n.Initializer != nil {
			f.text(" = ")
			f.formatNode(n.Initializer)
		}
	case *FunctionDeclaration:
		f.keyword("func", n)
		f.text(" ")
		f.formatNode(n.Name)
		f.text("(")
		separated(f, n.Parameters, ", ")
		f.text(") -> ")
		f.formatNode(n.ReturnType)
		body(f, n.Block)
	case *RecordDeclaration:
		f.keyword("record", n)
		f.text(" ")
		f.formatNode(n.Name)
		body(f, n.Declarations)
	case *EnumerationDeclaration:
		f.keyword("enum", n)
		f.text(" ")
		f.formatNode(n.Name)
		body(f, n.Cases)
	case *NamespaceDeclaration:
		f.keyword("namespace", n)
		f.text(" ")
		f.formatNode(n.Name)
		body(f, n.Declarations)
	case *ImportDeclaration:
		f.keyword("import", n)
		f.text(" ")
		f.formatNode(n.Name)
	case *DeclarationPlaceholder:
		f.token(declarationPlaceholder, StylePlaceholder, n.ID)

	// expressions
	case *BinaryExpression:
		f.formatNode(n.Left)
		f.text(" ")
		f.formatNode(n.Operator)
		f.text(" ")
		f.formatNode(n.Right)
	case *IdentifierExpression:
		f.formatNode(n.Identifier)
	case *MemberExpression:
		f.formatNode(n.Expression)
		f.text(".")
		f.formatNode(n.Member)
	case *FunctionCallExpression:
		f.formatNode(n.Expression)
		f.text("(")
		separated(f, n.Arguments, ", ")
		f.text(")")
	case *LiteralExpression:
		f.formatNode(n.Literal)
	case *ExpressionPlaceholder:
		f.token(valuePlaceholder, StylePlaceholder, n.ID)

	// literals
	case *NoneLiteral:
		f.token("none", StyleLiteral, n.ID)
	case *BooleanLiteral:
		f.token(strconv.FormatBool(n.Value), StyleLiteral, n.ID)
	case *NumberLiteral:
		f.token(FormatNumber(n.Value), StyleLiteral, n.ID)
	case *StringLiteral:
		f.token(strconv.Quote(n.Value), StyleLiteral, n.ID)
	case *ColorLiteral:
		f.token(n.Value, StyleLiteral, n.ID)
	case *ArrayLiteral:
		f.token("[", StylePunctuation, n.ID)
		separated(f, n.Elements, ", ")
		f.token("]", StylePunctuation, n.ID)

	// leaves
	case *Identifier:
		if n.IsPlaceholder {
			f.token(namePlaceholder, StylePlaceholder, n.ID)
		} else {
			f.token(n.Name, StyleIdentifier, n.ID)
		}
	case *Pattern:
		if n.Name == "" {
			f.token(namePlaceholder, StylePlaceholder, n.ID)
		} else {
			f.token(n.Name, StyleIdentifier, n.ID)
		}
	case *BinaryOperator:
		f.token(n.Op.Symbol(), StyleOperator, n.ID)

	// types
	case *TypeIdentifier:
		f.formatNode(n.Identifier)
		if !n.GenericArguments.IsEmpty() {
			f.text("<")
			separated(f, n.GenericArguments, ", ")
			f.text(">")
		}
	case *FunctionTypeAnnotation:
		f.text("(")
		separated(f, n.ArgumentTypes, ", ")
		f.text(") -> ")
		f.formatNode(n.ReturnType)
	case *TypeAnnotationPlaceholder:
		f.token(typePlaceholder, StylePlaceholder, n.ID)

	// parameters, arguments, cases
	case *Parameter:
		f.formatNode(n.Name)
		f.text(": ")
		f.formatNode(n.Annotation)
		if n.DefaultValue != nil {
			f.text(" = ")
			f.formatNode(n.DefaultValue)
		}
	case *ParameterPlaceholder:
		f.token(parameterPlaceholder, StylePlaceholder, n.ID)
	case *Argument:
		if n.Label != "" {
			f.token(n.Label, StyleIdentifier, n.ID)
			f.text(": ")
		}
		f.formatNode(n.Expression)
	case *ArgumentPlaceholder:
		f.token(argumentPlaceholder, StylePlaceholder, n.ID)
	case *EnumCase:
		f.keyword("case", n)
		f.text(" ")
		f.formatNode(n.Name)
		if !n.AssociatedValueTypes.IsEmpty() {
			f.text("(")
			separated(f, n.AssociatedValueTypes, ", ")
			f.text(")")
		}
	case *EnumerationCasePlaceholder:
		f.token(casePlaceholder, StylePlaceholder, n.ID)

	default:
		panic(fmt.Sprintf("format: unknown node type %T", node))
	}
}

// FormatNumber prints a number the way number literals are written.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Source returns the plain text of a node's projection on one line, as used
// for menu labels and breadcrumbs.
func Source(n Node) string {
	p := Format(n)
	var sb strings.Builder
	for i, e := range p.Elements {
		switch e.Kind {
		case LineBreakElement:
			if i < len(p.Elements)-1 {
				sb.WriteString(" ")
			}
		case IndentElement:
		default:
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}
