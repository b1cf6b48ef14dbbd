package logic

import (
	"encoding/json"
	"fmt"
	"slices"
)

// DecodeError reports a tagged-union case the decoder does not recognize.
type DecodeError struct {
	Category Category
	Tag      string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown %s case %q", e.Category, e.Tag)
}

// EncodeNode serializes any node, wrapping it with its category so that
// DecodeNode can restore it without knowing the category up front.
func EncodeNode(n Node) ([]byte, error) {
	return encodeCase(string(CategoryOf(n)), n)
}

// DecodeNode restores a node written by EncodeNode.
func DecodeNode(data []byte) (Node, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	decode, ok := categoryDecoders[Category(env.Type)]
	if !ok {
		return nil, &DecodeError{Category: "node", Tag: env.Type}
	}
	return decode(env.Data)
}

// DecodeProgram restores a program encoded with json.Marshal.
func DecodeProgram(data []byte) (*Program, error) {
	return decodeProgram(data)
}

var categoryDecoders map[Category]func(json.RawMessage) (Node, error)

func init() {
	categoryDecoders = map[Category]func(json.RawMessage) (Node, error){
		CategoryProgram:              asNode(decodeProgram),
		CategoryStatement:            asNode(decodeStatement),
		CategoryDeclaration:          asNode(decodeDeclaration),
		CategoryExpression:           asNode(decodeExpression),
		CategoryIdentifier:           asNode(decodeIdentifier),
		CategoryPattern:              asNode(decodePattern),
		CategoryLiteral:              asNode(decodeLiteral),
		CategoryTypeAnnotation:       asNode(decodeTypeAnnotation),
		CategoryBinaryOperator:       asNode(decodeBinaryOperator),
		CategoryFunctionParameter:    asNode(decodeFunctionParameter),
		CategoryFunctionCallArgument: asNode(decodeFunctionCallArgument),
		CategoryEnumerationCase:      asNode(decodeEnumerationCase),
	}
}

func asNode[T Node](decode func(json.RawMessage) (T, error)) func(json.RawMessage) (Node, error) {
	return func(raw json.RawMessage) (Node, error) {
		n, err := decode(raw)
		if err != nil {
			return nil, err
		}
		return n, nil
	}
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func openCase(category Category, raw json.RawMessage) (string, *fields, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil, fmt.Errorf("decode %s: %w", category, err)
	}
	f := &fields{category: category, tag: env.Type}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &f.raw); err != nil {
			return "", nil, fmt.Errorf("decode %s %q: %w", category, env.Type, err)
		}
	}
	return env.Type, f, nil
}

// fields reads the payload of one case. The first failure sticks and every
// later read becomes a no-op.
type fields struct {
	category Category
	tag      string
	raw      map[string]json.RawMessage
	err      error
}

func (f *fields) fail(key string, err error) {
	if f.err == nil {
		f.err = fmt.Errorf("decode %s %q field %q: %w", f.category, f.tag, key, err)
	}
}

func (f *fields) present(key string) bool {
	raw, ok := f.raw[key]
	return ok && string(raw) != "null"
}

func (f *fields) scalar(key string, dst any) {
	if f.err != nil || !f.present(key) {
		return
	}
	if err := json.Unmarshal(f.raw[key], dst); err != nil {
		f.fail(key, err)
	}
}

func (f *fields) id() ID {
	var id ID
	f.scalar("id", &id)
	return id
}

func (f *fields) str(key string) string {
	var s string
	f.scalar(key, &s)
	return s
}

func (f *fields) done() error {
	return f.err
}

func field[T any](f *fields, key string, decode func(json.RawMessage) (T, error)) T {
	var zero T
	if f.err != nil {
		return zero
	}
	if !f.present(key) {
		f.fail(key, fmt.Errorf("missing"))
		return zero
	}
	v, err := decode(f.raw[key])
	if err != nil {
		if f.err == nil {
			f.err = err
		}
		return zero
	}
	return v
}

func optionalField[T any](f *fields, key string, decode func(json.RawMessage) (T, error)) T {
	var zero T
	if f.err != nil || !f.present(key) {
		return zero
	}
	return field(f, key, decode)
}

func listField[T any](f *fields, key string, decode func(json.RawMessage) (T, error)) List[T] {
	if f.err != nil {
		return List[T]{}
	}
	l, err := decodeList(f.raw[key], decode)
	if err != nil {
		if f.err == nil {
			f.err = err
		}
		return List[T]{}
	}
	return l
}

func decodeProgram(raw json.RawMessage) (*Program, error) {
	tag, f, err := openCase(CategoryProgram, raw)
	if err != nil {
		return nil, err
	}
	if tag != "program" {
		return nil, &DecodeError{Category: CategoryProgram, Tag: tag}
	}
	n := &Program{ID: f.id(), Block: listField(f, "block", decodeStatement)}
	return n, f.done()
}

func decodeStatement(raw json.RawMessage) (Statement, error) {
	tag, f, err := openCase(CategoryStatement, raw)
	if err != nil {
		return nil, err
	}
	var n Statement
	switch tag {
	case "branch":
		n = &Branch{
			ID:        f.id(),
			Condition: field(f, "condition", decodeExpression),
			Block:     listField(f, "block", decodeStatement),
		}
	case "loop":
		n = &Loop{
			ID:         f.id(),
			Pattern:    field(f, "pattern", decodePattern),
			Expression: field(f, "expression", decodeExpression),
			Block:      listField(f, "block", decodeStatement),
		}
	case "declaration":
		n = &DeclarationStatement{ID: f.id(), Content: field(f, "content", decodeDeclaration)}
	case "expressionStatement":
		n = &ExpressionStatement{ID: f.id(), Expression: field(f, "expression", decodeExpression)}
	case "returnStatement":
		n = &ReturnStatement{ID: f.id(), Expression: field(f, "expression", decodeExpression)}
	case "placeholder":
		n = &StatementPlaceholder{ID: f.id()}
	default:
		return nil, &DecodeError{Category: CategoryStatement, Tag: tag}
	}
	return n, f.done()
}

func decodeDeclaration(raw json.RawMessage) (Declaration, error) {
	tag, f, err := openCase(CategoryDeclaration, raw)
	if err != nil {
		return nil, err
	}
	var n Declaration
	switch tag {
	case "variable":
		n = &VariableDeclaration{
			ID:          f.id(),
			Name:        field(f, "name", decodePattern),
			Annotation:  optionalField(f, "annotation", decodeTypeAnnotation),
			Initializer: optionalField(f, "initializer", decodeExpression),
		}
	case "function":
		n = &FunctionDeclaration{
			ID:         f.id(),
			Name:       field(f, "name", decodePattern),
			Parameters: listField(f, "parameters", decodeFunctionParameter),
			ReturnType: field(f, "returnType", decodeTypeAnnotation),
			Block:      listField(f, "block", decodeStatement),
		}
	case "record":
		n = &RecordDeclaration{
			ID:           f.id(),
			Name:         field(f, "name", decodePattern),
			Declarations: listField(f, "declarations", decodeDeclaration),
		}
	case "enumeration":
		n = &EnumerationDeclaration{
			ID:    f.id(),
			Name:  field(f, "name", decodePattern),
			Cases: listField(f, "cases", decodeEnumerationCase),
		}
	case "namespace":
		n = &NamespaceDeclaration{
			ID:           f.id(),
			Name:         field(f, "name", decodePattern),
			Declarations: listField(f, "declarations", decodeDeclaration),
		}
	case "importDeclaration":
		n = &ImportDeclaration{ID: f.id(), Name: field(f, "name", decodePattern)}
	case "placeholder":
		n = &DeclarationPlaceholder{ID: f.id()}
	default:
		return nil, &DecodeError{Category: CategoryDeclaration, Tag: tag}
	}
	return n, f.done()
}

func decodeExpression(raw json.RawMessage) (Expression, error) {
	tag, f, err := openCase(CategoryExpression, raw)
	if err != nil {
		return nil, err
	}
	var n Expression
	switch tag {
	case "binaryExpression":
		n = &BinaryExpression{
			ID:       f.id(),
			Left:     field(f, "left", decodeExpression),
			Operator: field(f, "op", decodeBinaryOperator),
			Right:    field(f, "right", decodeExpression),
		}
	case "identifierExpression":
		n = &IdentifierExpression{ID: f.id(), Identifier: field(f, "identifier", decodeIdentifier)}
	case "memberExpression":
		n = &MemberExpression{
			ID:         f.id(),
			Expression: field(f, "expression", decodeExpression),
			Member:     field(f, "memberName", decodeIdentifier),
		}
	case "functionCallExpression":
		n = &FunctionCallExpression{
			ID:         f.id(),
			Expression: field(f, "expression", decodeExpression),
			Arguments:  listField(f, "arguments", decodeFunctionCallArgument),
		}
	case "literalExpression":
		n = &LiteralExpression{ID: f.id(), Literal: field(f, "literal", decodeLiteral)}
	case "placeholder":
		n = &ExpressionPlaceholder{ID: f.id()}
	default:
		return nil, &DecodeError{Category: CategoryExpression, Tag: tag}
	}
	return n, f.done()
}

func decodeLiteral(raw json.RawMessage) (Literal, error) {
	tag, f, err := openCase(CategoryLiteral, raw)
	if err != nil {
		return nil, err
	}
	var n Literal
	switch tag {
	case "none":
		n = &NoneLiteral{ID: f.id()}
	case "boolean":
		lit := &BooleanLiteral{ID: f.id()}
		f.scalar("value", &lit.Value)
		n = lit
	case "number":
		lit := &NumberLiteral{ID: f.id()}
		f.scalar("value", &lit.Value)
		n = lit
	case "string":
		n = &StringLiteral{ID: f.id(), Value: f.str("value")}
	case "color":
		n = &ColorLiteral{ID: f.id(), Value: f.str("value")}
	case "array":
		n = &ArrayLiteral{ID: f.id(), Elements: listField(f, "value", decodeExpression)}
	default:
		return nil, &DecodeError{Category: CategoryLiteral, Tag: tag}
	}
	return n, f.done()
}

func decodeTypeAnnotation(raw json.RawMessage) (TypeAnnotation, error) {
	tag, f, err := openCase(CategoryTypeAnnotation, raw)
	if err != nil {
		return nil, err
	}
	var n TypeAnnotation
	switch tag {
	case "typeIdentifier":
		n = &TypeIdentifier{
			ID:               f.id(),
			Identifier:       field(f, "identifier", decodeIdentifier),
			GenericArguments: listField(f, "genericArguments", decodeTypeAnnotation),
		}
	case "functionType":
		n = &FunctionTypeAnnotation{
			ID:            f.id(),
			ArgumentTypes: listField(f, "argumentTypes", decodeTypeAnnotation),
			ReturnType:    field(f, "returnType", decodeTypeAnnotation),
		}
	case "placeholder":
		n = &TypeAnnotationPlaceholder{ID: f.id()}
	default:
		return nil, &DecodeError{Category: CategoryTypeAnnotation, Tag: tag}
	}
	return n, f.done()
}

func decodeFunctionParameter(raw json.RawMessage) (FunctionParameter, error) {
	tag, f, err := openCase(CategoryFunctionParameter, raw)
	if err != nil {
		return nil, err
	}
	var n FunctionParameter
	switch tag {
	case "parameter":
		n = &Parameter{
			ID:           f.id(),
			Name:         field(f, "localName", decodePattern),
			Annotation:   field(f, "annotation", decodeTypeAnnotation),
			DefaultValue: optionalField(f, "defaultValue", decodeExpression),
		}
	case "placeholder":
		n = &ParameterPlaceholder{ID: f.id()}
	default:
		return nil, &DecodeError{Category: CategoryFunctionParameter, Tag: tag}
	}
	return n, f.done()
}

func decodeFunctionCallArgument(raw json.RawMessage) (FunctionCallArgument, error) {
	tag, f, err := openCase(CategoryFunctionCallArgument, raw)
	if err != nil {
		return nil, err
	}
	var n FunctionCallArgument
	switch tag {
	case "argument":
		n = &Argument{
			ID:         f.id(),
			Label:      f.str("label"),
			Expression: field(f, "expression", decodeExpression),
		}
	case "placeholder":
		n = &ArgumentPlaceholder{ID: f.id()}
	default:
		return nil, &DecodeError{Category: CategoryFunctionCallArgument, Tag: tag}
	}
	return n, f.done()
}

func decodeEnumerationCase(raw json.RawMessage) (EnumerationCase, error) {
	tag, f, err := openCase(CategoryEnumerationCase, raw)
	if err != nil {
		return nil, err
	}
	var n EnumerationCase
	switch tag {
	case "enumerationCase":
		n = &EnumCase{
			ID:                   f.id(),
			Name:                 field(f, "name", decodePattern),
			AssociatedValueTypes: listField(f, "associatedValueTypes", decodeTypeAnnotation),
		}
	case "placeholder":
		n = &EnumerationCasePlaceholder{ID: f.id()}
	default:
		return nil, &DecodeError{Category: CategoryEnumerationCase, Tag: tag}
	}
	return n, f.done()
}

func decodeBinaryOperator(raw json.RawMessage) (*BinaryOperator, error) {
	tag, f, err := openCase(CategoryBinaryOperator, raw)
	if err != nil {
		return nil, err
	}
	op := Operator(tag)
	if !slices.Contains(Operators, op) {
		return nil, &DecodeError{Category: CategoryBinaryOperator, Tag: tag}
	}
	n := &BinaryOperator{ID: f.id(), Op: op}
	return n, f.done()
}

func decodeIdentifier(raw json.RawMessage) (*Identifier, error) {
	var n Identifier
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("decode identifier: %w", err)
	}
	return &n, nil
}

func decodePattern(raw json.RawMessage) (*Pattern, error) {
	var n Pattern
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("decode pattern: %w", err)
	}
	return &n, nil
}
