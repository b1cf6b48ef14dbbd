package hm

import "slices"

// TypeVarSet represents a set of type variables
type TypeVarSet map[TypeVariable]struct{}

// NewTypeVarSet creates a new TypeVarSet
func NewTypeVarSet(tvs ...TypeVariable) TypeVarSet {
	set := make(TypeVarSet, len(tvs))
	for _, tv := range tvs {
		set[tv] = struct{}{}
	}
	return set
}

// Union returns the union of two TypeVarSets
func (tvs TypeVarSet) Union(other TypeVarSet) TypeVarSet {
	result := make(TypeVarSet, len(tvs)+len(other))
	for tv := range tvs {
		result[tv] = struct{}{}
	}
	for tv := range other {
		result[tv] = struct{}{}
	}
	return result
}

// Contains checks if a type variable is in the set
func (tvs TypeVarSet) Contains(tv TypeVariable) bool {
	_, ok := tvs[tv]
	return ok
}

// Sorted returns the members in a stable order.
func (tvs TypeVarSet) Sorted() []TypeVariable {
	result := make([]TypeVariable, 0, len(tvs))
	for tv := range tvs {
		result = append(result, tv)
	}
	slices.Sort(result)
	return result
}
