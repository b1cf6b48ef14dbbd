package hm

import (
	"maps"
	"slices"
)

// Env represents a type environment
type Env interface {
	SchemeOf(name string) (*Scheme, bool)
	Clone() Env
	Add(name string, scheme *Scheme) Env
	Remove(name string) Env
	Names() []string
	FreeTypeVar() TypeVarSet
	Apply(subs Subs) Substitutable
}

// SimpleEnv is a simple implementation of Env
type SimpleEnv struct {
	schemes map[string]*Scheme
}

var _ Env = (*SimpleEnv)(nil)

// NewSimpleEnv creates a new SimpleEnv
func NewSimpleEnv() *SimpleEnv {
	return &SimpleEnv{
		schemes: make(map[string]*Scheme),
	}
}

// SchemeOf returns the scheme for a name
func (env *SimpleEnv) SchemeOf(name string) (*Scheme, bool) {
	scheme, exists := env.schemes[name]
	return scheme, exists
}

// Clone creates a copy of the environment
func (env *SimpleEnv) Clone() Env {
	return &SimpleEnv{schemes: maps.Clone(env.schemes)}
}

// Add adds a binding to the environment
func (env *SimpleEnv) Add(name string, scheme *Scheme) Env {
	env.schemes[name] = scheme
	return env
}

// Remove returns a copy of the environment without name
func (env *SimpleEnv) Remove(name string) Env {
	newEnv := &SimpleEnv{schemes: maps.Clone(env.schemes)}
	delete(newEnv.schemes, name)
	return newEnv
}

// Names returns the bound names in sorted order
func (env *SimpleEnv) Names() []string {
	return slices.Sorted(maps.Keys(env.schemes))
}

// FreeTypeVar returns the free type variables in the environment
func (env *SimpleEnv) FreeTypeVar() TypeVarSet {
	ftvs := NewTypeVarSet()
	for _, scheme := range env.schemes {
		ftvs = ftvs.Union(scheme.FreeTypeVar())
	}
	return ftvs
}

// Apply applies a substitution to the environment
func (env *SimpleEnv) Apply(subs Subs) Substitutable {
	newEnv := NewSimpleEnv()
	for name, scheme := range env.schemes {
		newEnv.schemes[name] = scheme.Apply(subs).(*Scheme)
	}
	return newEnv
}
