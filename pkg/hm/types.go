package hm

import (
	"fmt"
	"strings"
)

// Type represents all possible type terms: variables, constructors and
// functions.
type Type interface {
	Substitutable
	Name() string
	Types() Types
	Eq(Type) bool
	fmt.Stringer
}

// Substitutable is any type that can have substitutions applied and knows its free type variables
type Substitutable interface {
	Apply(Subs) Substitutable
	FreeTypeVar() TypeVarSet
}

// TypeVariable represents a type variable. Variables are the only non-ground
// terms.
type TypeVariable string

func (tv TypeVariable) Name() string {
	return string(tv)
}

func (tv TypeVariable) Apply(subs Subs) Substitutable {
	if t, exists := subs[tv]; exists {
		return t
	}
	return tv
}

func (tv TypeVariable) FreeTypeVar() TypeVarSet {
	return NewTypeVarSet(tv)
}

func (tv TypeVariable) Types() Types {
	return nil
}

func (tv TypeVariable) Eq(other Type) bool {
	if ot, ok := other.(TypeVariable); ok {
		return tv == ot
	}
	return false
}

func (tv TypeVariable) String() string {
	return string(tv)
}

// Constructor is a named type applied to ordered type arguments, e.g.
// Number or Array<String>.
type Constructor struct {
	Named string
	Args  Types
}

// NewConstructor creates a constructor term.
func NewConstructor(name string, args ...Type) Constructor {
	return Constructor{Named: name, Args: args}
}

func (c Constructor) Name() string {
	return c.Named
}

func (c Constructor) Apply(subs Subs) Substitutable {
	if len(c.Args) == 0 {
		return c
	}
	args := make(Types, len(c.Args))
	for i, arg := range c.Args {
		args[i] = arg.Apply(subs).(Type)
	}
	return Constructor{Named: c.Named, Args: args}
}

func (c Constructor) FreeTypeVar() TypeVarSet {
	ftvs := NewTypeVarSet()
	for _, arg := range c.Args {
		ftvs = ftvs.Union(arg.FreeTypeVar())
	}
	return ftvs
}

func (c Constructor) Types() Types {
	return c.Args
}

func (c Constructor) Eq(other Type) bool {
	oc, ok := other.(Constructor)
	if !ok {
		return false
	}
	return c.Named == oc.Named && c.Args.Eq(oc.Args)
}

func (c Constructor) String() string {
	if len(c.Args) == 0 {
		return c.Named
	}
	return fmt.Sprintf("%s<%s>", c.Named, c.Args)
}

// FunctionType represents a function type with ordered parameters
type FunctionType struct {
	params Types
	ret    Type
}

func NewFnType(params Types, ret Type) *FunctionType {
	return &FunctionType{params: params, ret: ret}
}

func (ft *FunctionType) Name() string {
	return ft.String()
}

func (ft *FunctionType) Apply(subs Subs) Substitutable {
	params := make(Types, len(ft.params))
	for i, p := range ft.params {
		params[i] = p.Apply(subs).(Type)
	}
	return &FunctionType{
		params: params,
		ret:    ft.ret.Apply(subs).(Type),
	}
}

func (ft *FunctionType) FreeTypeVar() TypeVarSet {
	result := ft.ret.FreeTypeVar()
	for _, p := range ft.params {
		result = result.Union(p.FreeTypeVar())
	}
	return result
}

func (ft *FunctionType) Types() Types {
	return append(append(Types{}, ft.params...), ft.ret)
}

func (ft *FunctionType) Eq(other Type) bool {
	if ot, ok := other.(*FunctionType); ok {
		return ft.params.Eq(ot.params) && ft.ret.Eq(ot.ret)
	}
	return false
}

func (ft *FunctionType) String() string {
	return fmt.Sprintf("(%s) -> %s", ft.params, ft.ret)
}

// Params returns the parameter types
func (ft *FunctionType) Params() Types {
	return ft.params
}

// Ret returns the return type
func (ft *FunctionType) Ret() Type {
	return ft.ret
}

// Types represents a slice of types
type Types []Type

// Eq compares two type lists element-wise.
func (ts Types) Eq(other Types) bool {
	if len(ts) != len(other) {
		return false
	}
	for i := range ts {
		if !ts[i].Eq(other[i]) {
			return false
		}
	}
	return true
}

func (ts Types) String() string {
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = t.String()
	}
	return strings.Join(strs, ", ")
}
