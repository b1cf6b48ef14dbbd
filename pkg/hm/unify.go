package hm

import (
	"fmt"
)

// UnificationError represents two terms that cannot be made equal
type UnificationError struct {
	Expected Type
	Actual   Type
}

func (e UnificationError) Error() string {
	if _, ok := e.Expected.(*FunctionType); ok {
		if _, ok := e.Actual.(*FunctionType); !ok {
			return fmt.Sprintf("cannot unify function type %s with non-function type %s", e.Expected, e.Actual)
		}
	}
	return fmt.Sprintf("cannot unify %s with %s", e.Expected, e.Actual)
}

// ArityError is returned when two function types take a different number of
// parameters.
type ArityError struct {
	Expected Types
	Actual   Types
}

func (e ArityError) Error() string {
	return fmt.Sprintf("arity mismatch: expected %d parameters (%s), got %d (%s)",
		len(e.Expected), e.Expected, len(e.Actual), e.Actual)
}

// OccursError is returned when binding a variable would build an infinite
// type.
type OccursError struct {
	Var  TypeVariable
	Type Type
}

func (e OccursError) Error() string {
	return fmt.Sprintf("occurs check failed: %s occurs in %s", e.Var, e.Type)
}

// Unify attempts to unify two types, returning a substitution or error
func Unify(expected, actual Type) (Subs, error) {
	return unify(expected, actual)
}

func unify(t1, t2 Type) (Subs, error) {
	// Handle type variables
	if tv1, ok := t1.(TypeVariable); ok {
		return bindVar(tv1, t2)
	}

	if tv2, ok := t2.(TypeVariable); ok {
		return bindVar(tv2, t1)
	}

	// Handle function types
	if ft1, ok := t1.(*FunctionType); ok {
		ft2, ok := t2.(*FunctionType)
		if !ok {
			return nil, UnificationError{Expected: t1, Actual: t2}
		}
		if len(ft1.params) != len(ft2.params) {
			return nil, ArityError{Expected: ft1.params, Actual: ft2.params}
		}
		return unifyPairs(
			append(append(Types{}, ft1.params...), ft1.ret),
			append(append(Types{}, ft2.params...), ft2.ret),
		)
	}

	if _, ok := t2.(*FunctionType); ok {
		return nil, UnificationError{Expected: t1, Actual: t2}
	}

	// Handle constructors
	if c1, ok := t1.(Constructor); ok {
		c2, ok := t2.(Constructor)
		if !ok || c1.Named != c2.Named || len(c1.Args) != len(c2.Args) {
			return nil, UnificationError{Expected: t1, Actual: t2}
		}
		return unifyPairs(c1.Args, c2.Args)
	}

	return nil, UnificationError{Expected: t1, Actual: t2}
}

// unifyPairs unifies two equally long lists left to right, applying the
// substitution found so far before each step.
func unifyPairs(expected, actual Types) (Subs, error) {
	subs := NewSubs()
	for i := range expected {
		s, err := unify(subs.Apply(expected[i]), subs.Apply(actual[i]))
		if err != nil {
			return nil, err
		}
		subs = subs.Compose(s)
	}
	return subs, nil
}

// bindVar binds a type variable to a type
func bindVar(tv TypeVariable, t Type) (Subs, error) {
	// Check if tv and t are the same
	if tv2, ok := t.(TypeVariable); ok && tv == tv2 {
		return NewSubs(), nil
	}

	if occursCheck(tv, t) {
		return nil, OccursError{Var: tv, Type: t}
	}

	subs := NewSubs()
	subs.Add(tv, t)
	return subs, nil
}

// occursCheck checks if a type variable occurs in a type
func occursCheck(tv TypeVariable, t Type) bool {
	return t.FreeTypeVar().Contains(tv)
}
