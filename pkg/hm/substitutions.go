package hm

import (
	"fmt"
	"slices"
	"strings"
)

// Subs represents a substitution mapping from type variables to types
type Subs map[TypeVariable]Type

// NewSubs creates a new substitution
func NewSubs() Subs {
	return make(Subs)
}

// Apply applies a substitution to a type
func (s Subs) Apply(t Type) Type {
	if len(s) == 0 {
		return t
	}
	return t.Apply(s).(Type)
}

// Compose returns a substitution equivalent to applying s and then other.
//
// other is applied to every binding of s so that the result stays
// idempotent as long as both inputs are.
func (s Subs) Compose(other Subs) Subs {
	result := make(Subs, len(s)+len(other))

	for tv, t := range s {
		result[tv] = other.Apply(t)
	}

	for tv, t := range other {
		if _, exists := result[tv]; !exists {
			result[tv] = t
		}
	}

	return result
}

// Clone creates a copy of the substitution
func (s Subs) Clone() Subs {
	result := make(Subs, len(s))
	for tv, t := range s {
		result[tv] = t
	}
	return result
}

// Add adds a substitution mapping and returns the updated substitution
func (s Subs) Add(tv TypeVariable, t Type) Subs {
	s[tv] = t
	return s
}

// Get gets a type for a type variable
func (s Subs) Get(tv TypeVariable) (Type, bool) {
	t, exists := s[tv]
	return t, exists
}

// IsIdentity reports whether applying s never changes a type.
func (s Subs) IsIdentity() bool {
	for tv, t := range s {
		if !t.Eq(tv) {
			return false
		}
	}
	return true
}

func (s Subs) String() string {
	tvs := make([]TypeVariable, 0, len(s))
	for tv := range s {
		tvs = append(tvs, tv)
	}
	slices.Sort(tvs)
	parts := make([]string, len(tvs))
	for i, tv := range tvs {
		parts[i] = fmt.Sprintf("%s := %s", tv, s[tv])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
