package logic

import (
	"github.com/vito/logic/pkg/hm"
)

type Type = hm.Type

var (
	UnitType    = hm.NewConstructor("Unit")
	BooleanType = hm.NewConstructor("Boolean")
	NumberType  = hm.NewConstructor("Number")
	StringType  = hm.NewConstructor("String")
	ColorType   = hm.NewConstructor("Color")
)

const (
	arrayTypeName    = "Array"
	optionalTypeName = "Optional"
)

func ArrayType(elem Type) Type {
	return hm.NewConstructor(arrayTypeName, elem)
}

func OptionalType(elem Type) Type {
	return hm.NewConstructor(optionalTypeName, elem)
}

// builtinTypeArity lists the type names that need no declaration, with the
// number of type arguments each takes.
var builtinTypeArity = map[string]int{
	"Unit":           0,
	"Boolean":        0,
	"Number":         0,
	"String":         0,
	"Color":          0,
	arrayTypeName:    1,
	optionalTypeName: 1,
}

// BuiltinTypeNames returns the names usable in type annotations without a
// declaration.
func BuiltinTypeNames() []string {
	return []string{"Boolean", "Number", "String", "Color", "Unit", arrayTypeName, optionalTypeName}
}

// TypeVar returns the named type variable. Built-in signatures use it for
// their generic parameters.
func TypeVar(name string) hm.TypeVariable {
	return hm.TypeVariable(name)
}

// elementType returns the element type of an Array type, if t is one.
func elementType(t Type) (Type, bool) {
	c, ok := t.(hm.Constructor)
	if !ok || c.Named != arrayTypeName || len(c.Args) != 1 {
		return nil, false
	}
	return c.Args[0], true
}
