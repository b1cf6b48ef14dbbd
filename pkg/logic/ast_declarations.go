package logic

// Declaration introduces a named binding.
type Declaration interface {
	Node
	declarationNode()
}

var (
	_ Declaration = (*VariableDeclaration)(nil)
	_ Declaration = (*FunctionDeclaration)(nil)
	_ Declaration = (*RecordDeclaration)(nil)
	_ Declaration = (*EnumerationDeclaration)(nil)
	_ Declaration = (*NamespaceDeclaration)(nil)
	_ Declaration = (*ImportDeclaration)(nil)
	_ Declaration = (*DeclarationPlaceholder)(nil)
)

// DeclaredName returns the name a declaration binds, if it has one.
func DeclaredName(d Declaration) (string, bool) {
	switch d := d.(type) {
	case *VariableDeclaration:
		return d.Name.Name, true
	case *FunctionDeclaration:
		return d.Name.Name, true
	case *RecordDeclaration:
		return d.Name.Name, true
	case *EnumerationDeclaration:
		return d.Name.Name, true
	case *NamespaceDeclaration:
		return d.Name.Name, true
	case *ImportDeclaration:
		return d.Name.Name, true
	default:
		return "", false
	}
}

// VariableDeclaration binds a name to a value. Annotation and Initializer
// are optional and hold nil when absent.
type VariableDeclaration struct {
	ID          ID             `json:"id"`
	Name        *Pattern       `json:"name"`
	Annotation  TypeAnnotation `json:"annotation"`
	Initializer Expression     `json:"initializer"`
}

func NewVariableDeclaration(name string, annotation TypeAnnotation, initializer Expression) *VariableDeclaration {
	return &VariableDeclaration{ID: NewID(), Name: NewPattern(name), Annotation: annotation, Initializer: initializer}
}

func (*VariableDeclaration) declarationNode() {}
func (n *VariableDeclaration) NodeID() ID       { return n.ID }
func (n *VariableDeclaration) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *VariableDeclaration) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Name = f(n.Name).(*Pattern)
	c.Annotation = mapOptional(n.Annotation, f)
	c.Initializer = mapOptional(n.Initializer, f)
	return &c
}
func (n *VariableDeclaration) MarshalJSON() ([]byte, error) {
	type payload VariableDeclaration
	return encodeCase("variable", (*payload)(n))
}

// FunctionDeclaration declares a named function with a statement body.
type FunctionDeclaration struct {
	ID         ID                      `json:"id"`
	Name       *Pattern                `json:"name"`
	Parameters List[FunctionParameter] `json:"parameters"`
	ReturnType TypeAnnotation          `json:"returnType"`
	Block      List[Statement]         `json:"block"`
}

func NewFunctionDeclaration(name string, params []FunctionParameter, ret TypeAnnotation, block ...Statement) *FunctionDeclaration {
	return &FunctionDeclaration{
		ID:         NewID(),
		Name:       NewPattern(name),
		Parameters: ListOf(params...),
		ReturnType: ret,
		Block:      ListOf(block...),
	}
}

func (*FunctionDeclaration) declarationNode() {}
func (n *FunctionDeclaration) NodeID() ID       { return n.ID }
func (n *FunctionDeclaration) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *FunctionDeclaration) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Name = f(n.Name).(*Pattern)
	c.Parameters = mapNodes(n.Parameters, f)
	c.ReturnType = f(n.ReturnType).(TypeAnnotation)
	c.Block = mapNodes(n.Block, f)
	return &c
}
func (n *FunctionDeclaration) MarshalJSON() ([]byte, error) {
	type payload FunctionDeclaration
	return encodeCase("function", (*payload)(n))
}

// RecordDeclaration declares a record type whose members are the variable
// declarations in its body.
type RecordDeclaration struct {
	ID           ID                `json:"id"`
	Name         *Pattern          `json:"name"`
	Declarations List[Declaration] `json:"declarations"`
}

func NewRecordDeclaration(name string, members ...Declaration) *RecordDeclaration {
	return &RecordDeclaration{ID: NewID(), Name: NewPattern(name), Declarations: ListOf(members...)}
}

func (*RecordDeclaration) declarationNode() {}
func (n *RecordDeclaration) NodeID() ID       { return n.ID }
func (n *RecordDeclaration) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *RecordDeclaration) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Name = f(n.Name).(*Pattern)
	c.Declarations = mapNodes(n.Declarations, f)
	return &c
}
func (n *RecordDeclaration) MarshalJSON() ([]byte, error) {
	type payload RecordDeclaration
	return encodeCase("record", (*payload)(n))
}

// EnumerationDeclaration declares a tagged union.
type EnumerationDeclaration struct {
	ID    ID                    `json:"id"`
	Name  *Pattern              `json:"name"`
	Cases List[EnumerationCase] `json:"cases"`
}

func NewEnumerationDeclaration(name string, cases ...EnumerationCase) *EnumerationDeclaration {
	return &EnumerationDeclaration{ID: NewID(), Name: NewPattern(name), Cases: ListOf(cases...)}
}

func (*EnumerationDeclaration) declarationNode() {}
func (n *EnumerationDeclaration) NodeID() ID       { return n.ID }
func (n *EnumerationDeclaration) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *EnumerationDeclaration) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Name = f(n.Name).(*Pattern)
	c.Cases = mapNodes(n.Cases, f)
	return &c
}
func (n *EnumerationDeclaration) MarshalJSON() ([]byte, error) {
	type payload EnumerationDeclaration
	return encodeCase("enumeration", (*payload)(n))
}

// NamespaceDeclaration groups declarations under a qualifying name.
type NamespaceDeclaration struct {
	ID           ID                `json:"id"`
	Name         *Pattern          `json:"name"`
	Declarations List[Declaration] `json:"declarations"`
}

func NewNamespaceDeclaration(name string, decls ...Declaration) *NamespaceDeclaration {
	return &NamespaceDeclaration{ID: NewID(), Name: NewPattern(name), Declarations: ListOf(decls...)}
}

func (*NamespaceDeclaration) declarationNode() {}
func (n *NamespaceDeclaration) NodeID() ID       { return n.ID }
func (n *NamespaceDeclaration) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *NamespaceDeclaration) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Name = f(n.Name).(*Pattern)
	c.Declarations = mapNodes(n.Declarations, f)
	return &c
}
func (n *NamespaceDeclaration) MarshalJSON() ([]byte, error) {
	type payload NamespaceDeclaration
	return encodeCase("namespace", (*payload)(n))
}

// ImportDeclaration names a library whose declarations become visible.
type ImportDeclaration struct {
	ID   ID       `json:"id"`
	Name *Pattern `json:"name"`
}

func NewImportDeclaration(name string) *ImportDeclaration {
	return &ImportDeclaration{ID: NewID(), Name: NewPattern(name)}
}

func (*ImportDeclaration) declarationNode() {}
func (n *ImportDeclaration) NodeID() ID       { return n.ID }
func (n *ImportDeclaration) withID(id ID) Node {
	c := *n
	c.ID = id
	return &c
}
func (n *ImportDeclaration) mapChildren(f func(Node) Node) Node {
	c := *n
	c.Name = f(n.Name).(*Pattern)
	return &c
}
func (n *ImportDeclaration) MarshalJSON() ([]byte, error) {
	type payload ImportDeclaration
	return encodeCase("importDeclaration", (*payload)(n))
}

// DeclarationPlaceholder marks an empty declaration slot.
type DeclarationPlaceholder struct {
	ID ID `json:"id"`
}

func NewDeclarationPlaceholder() *DeclarationPlaceholder {
	return &DeclarationPlaceholder{ID: NewID()}
}

func (*DeclarationPlaceholder) declarationNode()                   {}
func (n *DeclarationPlaceholder) NodeID() ID                       { return n.ID }
func (n *DeclarationPlaceholder) mapChildren(func(Node) Node) Node { c := *n; return &c }
func (n *DeclarationPlaceholder) withID(id ID) Node                { return &DeclarationPlaceholder{ID: id} }
func (n *DeclarationPlaceholder) MarshalJSON() ([]byte, error) {
	type payload DeclarationPlaceholder
	return encodeCase("placeholder", (*payload)(n))
}
