package hm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleEnv(t *testing.T) {
	env := NewSimpleEnv()
	env.Add("length", Generalize(env, NewFnType(Types{arrayOf(TypeVariable("T"))}, number)))
	env.Add("x", Mono(TypeVariable("a")))

	require.Equal(t, []string{"length", "x"}, env.Names())
	require.Equal(t, []TypeVariable{"a"}, env.FreeTypeVar().Sorted(), "quantified variables are not free")

	removed := env.Remove("x")
	require.Equal(t, []string{"length"}, removed.Names())
	require.Equal(t, []string{"length", "x"}, env.Names(), "Remove leaves the receiver alone")

	clone := env.Clone()
	clone.Add("y", Mono(number))
	_, ok := env.SchemeOf("y")
	require.False(t, ok)

	applied := env.Apply(NewSubs().Add("a", str).Add("T", boolean)).(Env)
	x, ok := applied.SchemeOf("x")
	require.True(t, ok)
	require.Equal(t, "String", x.String())
	length, ok := applied.SchemeOf("length")
	require.True(t, ok)
	require.Equal(t, "forall T. (Array<T>) -> Number", length.String(), "bound variables survive substitution")
}

func TestGeneralizeSkipsEnvironmentVariables(t *testing.T) {
	env := NewSimpleEnv()
	env.Add("x", Mono(TypeVariable("a")))

	scheme := Generalize(env, NewFnType(Types{TypeVariable("a")}, TypeVariable("b")))
	require.Equal(t, []TypeVariable{"b"}, scheme.TypeVars())
	require.Equal(t, []TypeVariable{"a"}, scheme.FreeTypeVar().Sorted())
}
