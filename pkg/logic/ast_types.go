package logic

// TypeAnnotation is a type written in source.
type TypeAnnotation interface {
	Node
	typeAnnotationNode()
}

var (
	_ TypeAnnotation = (*TypeIdentifier)(nil)
	_ TypeAnnotation = (*FunctionTypeAnnotation)(nil)
	_ TypeAnnotation = (*TypeAnnotationPlaceholder)(nil)
)

// TypeIdentifier names a type, optionally applied to generic arguments as in
// Array<Number>.
type TypeIdentifier struct {
	ID               ID                   `json:"id"`
	Identifier       *Identifier          `json:"identifier"`
	GenericArguments List[TypeAnnotation] `json:"genericArguments"`
}

func NewTypeIdentifier(name string, args ...TypeAnnotation) *TypeIdentifier {
	return &TypeIdentifier{ID: NewID(), Identifier: NewIdentifier(name), GenericArguments: ListOf(args...)}
}

func (*TypeIdentifier) typeAnnotationNode() {}
func (n *TypeIdentifier) NodeID() ID        { return n.ID }
func (n *TypeIdentifier) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *TypeIdentifier) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Identifier = f(n.Identifier).(*Identifier)
	c.GenericArguments = mapNodes(n.GenericArguments, f)
	return &c
}
func (n *TypeIdentifier) MarshalJSON() ([]byte, error) {
	type payload TypeIdentifier
	return encodeCase("typeIdentifier", (*payload)(n))
}

// FunctionTypeAnnotation is written (A, B) -> R.
type FunctionTypeAnnotation struct {
	ID            ID                   `json:"id"`
	ArgumentTypes List[TypeAnnotation] `json:"argumentTypes"`
	ReturnType    TypeAnnotation       `json:"returnType"`
}

func NewFunctionTypeAnnotation(ret TypeAnnotation, args ...TypeAnnotation) *FunctionTypeAnnotation {
	return &FunctionTypeAnnotation{ID: NewID(), ArgumentTypes: ListOf(args...), ReturnType: ret}
}

func (*FunctionTypeAnnotation) typeAnnotationNode() {}
func (n *FunctionTypeAnnotation) NodeID() ID        { return n.ID }
func (n *FunctionTypeAnnotation) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *FunctionTypeAnnotation) mapChildren(f func(Node) Node) Node {
	c := *n
	c.ArgumentTypes = mapNodes(n.ArgumentTypes, f)
	c.ReturnType = f(n.ReturnType).(TypeAnnotation)
	return &c
}
func (n *FunctionTypeAnnotation) MarshalJSON() ([]byte, error) {
	type payload FunctionTypeAnnotation
	return encodeCase("functionType", (*payload)(n))
}

type TypeAnnotationPlaceholder struct {
	ID ID `json:"id"`
}

func NewTypeAnnotationPlaceholder() *TypeAnnotationPlaceholder {
	return &TypeAnnotationPlaceholder{ID: NewID()}
}

func (*TypeAnnotationPlaceholder) typeAnnotationNode()                {}
func (n *TypeAnnotationPlaceholder) NodeID() ID                       { return n.ID }
func (n *TypeAnnotationPlaceholder) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *TypeAnnotationPlaceholder) withID(id ID) Node                { return &TypeAnnotationPlaceholder{ID: id} }
func (n *TypeAnnotationPlaceholder) MarshalJSON() ([]byte, error) {
	type payload TypeAnnotationPlaceholder
	return encodeCase("placeholder", (*payload)(n))
}

// FunctionParameter is a slot in a function declaration's parameter list.
type FunctionParameter interface {
	Node
	functionParameterNode()
}

var (
	_ FunctionParameter = (*Parameter)(nil)
	_ FunctionParameter = (*ParameterPlaceholder)(nil)
)

// Parameter declares a labelled, typed parameter. DefaultValue is nil for
// required parameters.
type Parameter struct {
	ID           ID             `json:"id"`
	Name         *Pattern       `json:"localName"`
	Annotation   TypeAnnotation `json:"annotation"`
	DefaultValue Expression     `json:"defaultValue"`
}

func NewParameter(name string, annotation TypeAnnotation, def Expression) *Parameter {
	return &Parameter{ID: NewID(), Name: NewPattern(name), Annotation: annotation, DefaultValue: def}
}

func (*Parameter) functionParameterNode() {}
func (n *Parameter) NodeID() ID           { return n.ID }
func (n *Parameter) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *Parameter) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Name = f(n.Name).(*Pattern)
	c.Annotation = f(n.Annotation).(TypeAnnotation)
	c.DefaultValue = mapOptional(n.DefaultValue, f)
	return &c
}
func (n *Parameter) MarshalJSON() ([]byte, error) {
	type payload Parameter
	return encodeCase("parameter", (*payload)(n))
}

type ParameterPlaceholder struct {
	ID ID `json:"id"`
}

func NewParameterPlaceholder() *ParameterPlaceholder {
	return &ParameterPlaceholder{ID: NewID()}
}

func (*ParameterPlaceholder) functionParameterNode()             {}
func (n *ParameterPlaceholder) NodeID() ID                       { return n.ID }
func (n *ParameterPlaceholder) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *ParameterPlaceholder) withID(id ID) Node                { return &ParameterPlaceholder{ID: id} }
func (n *ParameterPlaceholder) MarshalJSON() ([]byte, error) {
	type payload ParameterPlaceholder
	return encodeCase("placeholder", (*payload)(n))
}

// FunctionCallArgument is a slot in a call's argument list.
type FunctionCallArgument interface {
	Node
	functionCallArgumentNode()
}

var (
	_ FunctionCallArgument = (*Argument)(nil)
	_ FunctionCallArgument = (*ArgumentPlaceholder)(nil)
)

// Argument passes Expression for the parameter named Label. An empty label
// passes positionally.
type Argument struct {
	ID         ID         `json:"id"`
	Label      string     `json:"label"`
	Expression Expression `json:"expression"`
}

func NewArgument(label string, expr Expression) *Argument {
	return &Argument{ID: NewID(), Label: label, Expression: expr}
}

func (*Argument) functionCallArgumentNode() {}
func (n *Argument) NodeID() ID              { return n.ID }
func (n *Argument) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *Argument) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Expression = f(n.Expression).(Expression)
	return &c
}
func (n *Argument) MarshalJSON() ([]byte, error) {
	type payload Argument
	return encodeCase("argument", (*payload)(n))
}

type ArgumentPlaceholder struct {
	ID ID `json:"id"`
}

func NewArgumentPlaceholder() *ArgumentPlaceholder {
	return &ArgumentPlaceholder{ID: NewID()}
}

func (*ArgumentPlaceholder) functionCallArgumentNode()          {}
func (n *ArgumentPlaceholder) NodeID() ID                       { return n.ID }
func (n *ArgumentPlaceholder) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *ArgumentPlaceholder) withID(id ID) Node                { return &ArgumentPlaceholder{ID: id} }
func (n *ArgumentPlaceholder) MarshalJSON() ([]byte, error) {
	type payload ArgumentPlaceholder
	return encodeCase("placeholder", (*payload)(n))
}

// EnumerationCase is a slot in an enumeration's case list.
type EnumerationCase interface {
	Node
	enumerationCaseNode()
}

var (
	_ EnumerationCase = (*EnumCase)(nil)
	_ EnumerationCase = (*EnumerationCasePlaceholder)(nil)
)

// EnumCase declares one case of an enumeration with its associated value
// types.
type EnumCase struct {
	ID                   ID                   `json:"id"`
	Name                 *Pattern             `json:"name"`
	AssociatedValueTypes List[TypeAnnotation] `json:"associatedValueTypes"`
}

func NewEnumCase(name string, types ...TypeAnnotation) *EnumCase {
	return &EnumCase{ID: NewID(), Name: NewPattern(name), AssociatedValueTypes: ListOf(types...)}
}

func (*EnumCase) enumerationCaseNode() {}
func (n *EnumCase) NodeID() ID         { return n.ID }
func (n *EnumCase) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *EnumCase) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Name = f(n.Name).(*Pattern)
	c.AssociatedValueTypes = mapNodes(n.AssociatedValueTypes, f)
	return &c
}
func (n *EnumCase) MarshalJSON() ([]byte, error) {
	type payload EnumCase
	return encodeCase("enumerationCase", (*payload)(n))
}

type EnumerationCasePlaceholder struct {
	ID ID `json:"id"`
}

func NewEnumerationCasePlaceholder() *EnumerationCasePlaceholder {
	return &EnumerationCasePlaceholder{ID: NewID()}
}

func (*EnumerationCasePlaceholder) enumerationCaseNode()                {}
func (n *EnumerationCasePlaceholder) NodeID() ID                       { return n.ID }
func (n *EnumerationCasePlaceholder) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *EnumerationCasePlaceholder) withID(id ID) Node                { return &EnumerationCasePlaceholder{ID: id} }
func (n *EnumerationCasePlaceholder) MarshalJSON() ([]byte, error) {
	type payload EnumerationCasePlaceholder
	return encodeCase("placeholder", (*payload)(n))
}
