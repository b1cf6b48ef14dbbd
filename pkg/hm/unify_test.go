package hm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	number  = NewConstructor("Number")
	str     = NewConstructor("String")
	boolean = NewConstructor("Boolean")
)

func arrayOf(t Type) Type { return NewConstructor("Array", t) }

func TestUnifyReflexive(t *testing.T) {
	ground := []Type{
		number,
		str,
		arrayOf(number),
		arrayOf(arrayOf(str)),
		NewFnType(Types{number, str}, boolean),
		NewFnType(nil, arrayOf(number)),
		NewConstructor("Pair", number, NewFnType(Types{str}, str)),
	}

	for _, typ := range ground {
		t.Run(typ.String(), func(t *testing.T) {
			subs, err := Unify(typ, typ)
			require.NoError(t, err)
			require.True(t, subs.IsIdentity(), "expected identity, got %s", subs)
		})
	}
}

func TestUnifyBindsVariables(t *testing.T) {
	subs, err := Unify(arrayOf(TypeVariable("a")), arrayOf(number))
	require.NoError(t, err)
	require.True(t, number.Eq(subs.Apply(TypeVariable("a"))))

	subs, err = Unify(TypeVariable("a"), TypeVariable("a"))
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestUnifyConstructorMismatch(t *testing.T) {
	_, err := Unify(number, str)
	var uerr UnificationError
	require.ErrorAs(t, err, &uerr)
	require.True(t, uerr.Expected.Eq(number))
	require.True(t, uerr.Actual.Eq(str))

	_, err = Unify(NewConstructor("Pair", number), NewConstructor("Pair", number, number))
	require.ErrorAs(t, err, &uerr)
}

func TestUnifyFunctionAgainstNonFunction(t *testing.T) {
	fn := NewFnType(Types{number}, number)

	_, err := Unify(fn, number)
	var uerr UnificationError
	require.ErrorAs(t, err, &uerr)
	require.Contains(t, err.Error(), "non-function")

	_, err = Unify(number, fn)
	require.ErrorAs(t, err, &uerr)
}

func TestUnifyFunctionsPairwise(t *testing.T) {
	a, b := TypeVariable("a"), TypeVariable("b")

	cases := []struct {
		name    string
		left    Type
		right   Type
		succeed bool
	}{
		{"both succeed", NewFnType(Types{a}, b), NewFnType(Types{number}, str), true},
		{"param fails", NewFnType(Types{number}, b), NewFnType(Types{str}, str), false},
		{"return fails", NewFnType(Types{a}, number), NewFnType(Types{number}, str), false},
		{"shared variable", NewFnType(Types{a}, a), NewFnType(Types{number}, str), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unify(tc.left, tc.right)
			if tc.succeed {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestUnifyArity(t *testing.T) {
	// parameter element types are irrelevant when lengths differ
	left := NewFnType(Types{TypeVariable("a")}, TypeVariable("r"))
	right := NewFnType(Types{number, number}, number)

	_, err := Unify(left, right)
	var aerr ArityError
	require.ErrorAs(t, err, &aerr)
	require.Len(t, aerr.Expected, 1)
	require.Len(t, aerr.Actual, 2)

	var uerr UnificationError
	require.False(t, errors.As(err, &uerr))
}

func TestUnifyOccursCheck(t *testing.T) {
	a := TypeVariable("a")
	_, err := Unify(a, arrayOf(a))
	var oerr OccursError
	require.ErrorAs(t, err, &oerr)
	require.Equal(t, a, oerr.Var)
}

func TestSubstitutionIdempotent(t *testing.T) {
	a, b, c := TypeVariable("a"), TypeVariable("b"), TypeVariable("c")

	left := NewFnType(Types{a, arrayOf(b)}, c)
	right := NewFnType(Types{arrayOf(c), a}, number)

	subs, err := Unify(left, right)
	require.NoError(t, err)

	for _, typ := range []Type{a, b, c, left, right} {
		once := subs.Apply(typ)
		twice := subs.Apply(once)
		require.True(t, once.Eq(twice), "%s: %s != %s", typ, once, twice)
	}

	require.True(t, subs.Apply(left).Eq(subs.Apply(right)))
}

func TestInstantiateFresh(t *testing.T) {
	scheme := Generalize(nil, NewFnType(Types{arrayOf(TypeVariable("T")), number}, TypeVariable("T")))
	require.Equal(t, []TypeVariable{"T"}, scheme.TypeVars())

	fresh := NewSimpleFresher()
	first := Instantiate(fresh, scheme)
	second := Instantiate(fresh, scheme)
	require.False(t, first.Eq(second))
	require.Equal(t, "(Array<a>, Number) -> a", first.String())
	require.Equal(t, "(Array<b>, Number) -> b", second.String())
}

func TestFresherNeverRepeats(t *testing.T) {
	fresh := NewSimpleFresher()
	seen := map[TypeVariable]bool{}
	for range 100 {
		tv := fresh.Fresh()
		require.False(t, seen[tv], "repeated %s", tv)
		seen[tv] = true
	}
}
