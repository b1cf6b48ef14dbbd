package hm

import "fmt"

// Generalize creates a type scheme by quantifying over type variables
// that are free in the type but not free in the environment
func Generalize(env Env, t Type) *Scheme {
	var envFtvs TypeVarSet
	if env != nil {
		envFtvs = env.FreeTypeVar()
	}

	var quantifiedVars []TypeVariable
	for _, tv := range t.FreeTypeVar().Sorted() {
		if !envFtvs.Contains(tv) {
			quantifiedVars = append(quantifiedVars, tv)
		}
	}

	return NewScheme(quantifiedVars, t)
}

// Instantiate creates a fresh instance of a type scheme
func Instantiate(fresher Fresher, scheme *Scheme) Type {
	if len(scheme.tvs) == 0 {
		return scheme.t
	}

	subs := NewSubs()
	for _, tv := range scheme.tvs {
		subs.Add(tv, fresher.Fresh())
	}

	return subs.Apply(scheme.t)
}

// Fresher interface for generating fresh type variables
type Fresher interface {
	Fresh() TypeVariable
}

// SimpleFresher hands out a, b, ... z, then a1, b1, ... so names never
// repeat within one inference context.
type SimpleFresher struct {
	counter int
}

// NewSimpleFresher creates a new SimpleFresher
func NewSimpleFresher() *SimpleFresher {
	return &SimpleFresher{}
}

const letters = "abcdefghijklmnopqrstuvwxyz"

// Fresh generates a fresh type variable
func (f *SimpleFresher) Fresh() TypeVariable {
	n := f.counter
	f.counter++
	if n < len(letters) {
		return TypeVariable(letters[n : n+1])
	}
	return TypeVariable(fmt.Sprintf("%c%d", letters[n%len(letters)], n/len(letters)))
}
