package logic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/logic/pkg/hm"
)

func decl(d Declaration) Statement { return NewDeclarationStatement(d) }

func expr(e Expression) Statement { return NewExpressionStatement(e) }

func typeOf(t *testing.T, tc *TypeCheck, n Node) string {
	t.Helper()
	typ, ok := tc.TypeOf(n.NodeID())
	require.True(t, ok, "no type for %s", Describe(n))
	return typ.String()
}

func requireTypeErrors(t *testing.T, tc *TypeCheck, n int) []*TypeError {
	t.Helper()
	errs := tc.Errors()
	require.Len(t, errs, n, "errors: %v", errs)
	return errs
}

func TestCheckScenario(t *testing.T) {
	s := newScenario()
	tc := Check(context.Background(), s.program)
	requireTypeErrors(t, tc, 0)

	assert.Equal(t, "Boolean", typeOf(t, tc, s.condition))
	assert.Equal(t, "Number", typeOf(t, tc, s.left))
	assert.Equal(t, "Number", typeOf(t, tc, s.age))
	assert.Equal(t, "Unit", typeOf(t, tc, s.assignment))
	assert.Equal(t, "(Number, Number) -> Boolean", typeOf(t, tc, s.condition.Operator))

	expected, ok := tc.ExpectedType(s.condition.ID)
	require.True(t, ok)
	assert.Equal(t, "Boolean", expected.String())

	expected, ok = tc.ExpectedType(s.left.ID)
	require.True(t, ok)
	assert.Equal(t, "Number", expected.String(), "operands expect each other's type")

	_, ok = tc.ExpectedType(s.branch.ID)
	assert.False(t, ok)

	var names []string
	for _, b := range tc.ScopeAt(s.assignment.ID).All() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"text", "page", "age"}, names, "innermost first")
	assert.False(t, tc.InFunction(s.assignment.ID))
}

func TestCheckMismatch(t *testing.T) {
	initializer := StringExpr("eighteen")
	tc := Check(context.Background(), NewProgram(
		decl(NewVariableDeclaration("age", NewTypeIdentifier("Number"), initializer)),
	))
	errs := requireTypeErrors(t, tc, 1)
	assert.Equal(t, initializer.ID, errs[0].NodeID)

	var uerr hm.UnificationError
	require.True(t, errors.As(errs[0], &uerr))
	assert.Equal(t, "Number", uerr.Expected.String())
	assert.Equal(t, "String", uerr.Actual.String())
}

func TestCheckKeepsGoing(t *testing.T) {
	first := NewIdentifierExpression("missing")
	second := NewBinaryExpression(NumberExpr(1), OpIsEqualTo, StringExpr("one"))
	tc := Check(context.Background(), NewProgram(
		expr(first),
		expr(second),
		NewReturnStatement(NumberExpr(1)),
	))
	errs := requireTypeErrors(t, tc, 3)

	var unresolved *UnresolvedError
	require.ErrorAs(t, errs[0], &unresolved)
	assert.Equal(t, "missing", unresolved.Name)
	assert.Equal(t, first.ID, errs[0].NodeID)

	assert.Equal(t, second.Right.NodeID(), errs[1].NodeID)
	assert.Contains(t, errs[2].Error(), "return outside of a function")

	assert.Equal(t, "Boolean", typeOf(t, tc, second), "a failed comparison still has a type")
}

func TestCheckPlaceholders(t *testing.T) {
	hole := NewExpressionPlaceholder()
	cmp := NewBinaryExpression(NewIdentifierExpression("age"), OpIsLessThan, hole)
	tc := Check(context.Background(), NewProgram(
		decl(NewVariableDeclaration("age", NewTypeIdentifier("Number"), NumberExpr(3))),
		NewBranch(cmp, NewStatementPlaceholder()),
		decl(NewDeclarationPlaceholder()),
	))
	requireTypeErrors(t, tc, 0)

	assert.Equal(t, "Number", typeOf(t, tc, hole), "placeholders take the type of their context")
	expected, ok := tc.ExpectedType(hole.ID)
	require.True(t, ok)
	assert.Equal(t, "Number", expected.String())
}

func TestCheckAssignment(t *testing.T) {
	bad := NewBinaryExpression(NumberExpr(1), OpSetEqualTo, NumberExpr(2))
	good := NewBinaryExpression(NewIdentifierExpression("n"), OpSetEqualTo, NumberExpr(2))
	tc := Check(context.Background(), NewProgram(
		decl(NewVariableDeclaration("n", nil, NumberExpr(1))),
		expr(good),
		expr(bad),
	))
	errs := requireTypeErrors(t, tc, 1)
	assert.Equal(t, bad.Left.NodeID(), errs[0].NodeID)
	assert.Contains(t, errs[0].Error(), "cannot assign to 1")
	assert.Equal(t, "Unit", typeOf(t, tc, good))
}

func TestCheckFunctions(t *testing.T) {
	ret := NewReturnStatement(NewIdentifierExpression("a"))
	add := NewFunctionDeclaration("add",
		[]FunctionParameter{
			NewParameter("a", NewTypeIdentifier("Number"), nil),
			NewParameter("b", NewTypeIdentifier("Number"), NumberExpr(1)),
		},
		NewTypeIdentifier("Number"),
		ret,
	)
	call := func(args ...FunctionCallArgument) *FunctionCallExpression {
		return NewFunctionCallExpression(NewIdentifierExpression("add"), args...)
	}

	t.Run("hoisted and labelled", func(t *testing.T) {
		early := call(NewArgument("a", NumberExpr(1)))
		late := call(positional(2), NewArgument("b", NumberExpr(3)))
		tc := Check(context.Background(), NewProgram(expr(early), decl(add), expr(late)))
		requireTypeErrors(t, tc, 0)

		assert.Equal(t, "Number", typeOf(t, tc, early))
		assert.Equal(t, "Number", typeOf(t, tc, late))
		assert.Equal(t, "(Number, Number) -> Number", typeOf(t, tc, add))
		assert.True(t, tc.InFunction(ret.ID))

		b, ok := LookupBinding(tc.ScopeAt(ret.ID), "b")
		require.True(t, ok)
		assert.Equal(t, BindingParameter, b.Kind)
	})

	for name, tt := range map[string]struct {
		call    *FunctionCallExpression
		message string
	}{
		"missing": {
			call:    call(NewArgument("b", NumberExpr(2))),
			message: `missing argument "a"`,
		},
		"unknown label": {
			call:    call(positional(1), NewArgument("c", NumberExpr(2))),
			message: `no parameter labelled "c"`,
		},
		"too many": {
			call:    call(positional(1), positional(2), positional(3)),
			message: "too many arguments",
		},
		"duplicate": {
			call:    call(NewArgument("a", NumberExpr(1)), NewArgument("a", NumberExpr(2))),
			message: `duplicate argument "a"`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			tc := Check(context.Background(), NewProgram(decl(add), expr(tt.call)))
			errs := requireTypeErrors(t, tc, 1)
			var argErr *ArgumentError
			require.ErrorAs(t, errs[0], &argErr)
			assert.Equal(t, "add", argErr.Function)
			assert.Equal(t, tt.message, argErr.Message)
		})
	}

	t.Run("wrong return type", func(t *testing.T) {
		bad := NewReturnStatement(StringExpr("nope"))
		tc := Check(context.Background(), NewProgram(decl(
			NewFunctionDeclaration("f", nil, NewTypeIdentifier("Number"), bad),
		)))
		errs := requireTypeErrors(t, tc, 1)
		assert.Equal(t, bad.Expression.NodeID(), errs[0].NodeID)
	})
}

func positional(n float64) *Argument {
	return NewArgument("", NumberExpr(n))
}

func TestCheckBuiltinsAreFreshPerUse(t *testing.T) {
	numbers := NewFunctionCallExpression(NewQualifiedExpression("Array.at"),
		NewArgument("array", NewLiteralExpression(NewArrayLiteral(NumberExpr(1)))),
		NewArgument("index", NumberExpr(0)),
	)
	strings := NewFunctionCallExpression(NewQualifiedExpression("Array.at"),
		NewArgument("array", NewLiteralExpression(NewArrayLiteral(StringExpr("a")))),
		NewArgument("index", NumberExpr(0)),
	)
	tc := Check(context.Background(), NewProgram(expr(numbers), expr(strings)))
	requireTypeErrors(t, tc, 0)

	assert.Equal(t, "Number", typeOf(t, tc, numbers))
	assert.Equal(t, "String", typeOf(t, tc, strings))
}

func TestCheckRecords(t *testing.T) {
	point := NewRecordDeclaration("Point",
		NewVariableDeclaration("x", NewTypeIdentifier("Number"), NumberExpr(0)),
		NewVariableDeclaration("y", NewTypeIdentifier("Number"), nil),
	)
	p := NewVariableDeclaration("p", NewTypeIdentifier("Point"),
		NewFunctionCallExpression(NewIdentifierExpression("Point"), NewArgument("y", NumberExpr(2))))
	px := NewMemberExpression(NewIdentifierExpression("p"), "x")
	pz := NewMemberExpression(NewIdentifierExpression("p"), "z")

	tc := Check(context.Background(), NewProgram(decl(p), decl(point), expr(px), expr(pz)))
	errs := requireTypeErrors(t, tc, 1)
	assert.Equal(t, pz.ID, errs[0].NodeID)
	assert.Contains(t, errs[0].Error(), "Point has no member z")

	assert.Equal(t, "Point", typeOf(t, tc, p))
	assert.Equal(t, "Number", typeOf(t, tc, px))

	members, ok := tc.RecordMembers("Point")
	require.True(t, ok)
	require.Len(t, members, 2)
	assert.Equal(t, "x", members[0].Name)
}

func TestCheckRecordsWithSameName(t *testing.T) {
	member := func(name string) *VariableDeclaration {
		return NewVariableDeclaration(name, NewTypeIdentifier("Number"), nil)
	}

	t.Run("same block", func(t *testing.T) {
		wide := NewRecordDeclaration("R", member("x"), member("y"))
		narrow := NewRecordDeclaration("R", member("x"))
		program := NewProgram(decl(wide), decl(narrow))

		var tc *TypeCheck
		require.NotPanics(t, func() { tc = Check(context.Background(), program) })
		errs := requireTypeErrors(t, tc, 1)
		assert.Equal(t, narrow.ID, errs[0].NodeID)
		assert.Contains(t, errs[0].Error(), "R is already declared in this block")

		require.NotPanics(t, func() {
			Suggest(program, nil, wide.Declarations.Slice()[1].NodeID(), "", DefaultSuggestOptions())
		})
	})

	t.Run("namespace shadowed by outer record", func(t *testing.T) {
		program := NewProgram(
			decl(NewNamespaceDeclaration("Ns", NewRecordDeclaration("R", member("x")))),
			decl(NewRecordDeclaration("R", member("x"), member("y"))),
		)

		var tc *TypeCheck
		require.NotPanics(t, func() { tc = Check(context.Background(), program) })
		assert.Empty(t, tc.Errors())
	})
}

func TestCheckEnumerations(t *testing.T) {
	shape := NewEnumerationDeclaration("Shape",
		NewEnumCase("circle", NewTypeIdentifier("Number")),
		NewEnumCase("empty"),
	)
	circle := NewFunctionCallExpression(NewQualifiedExpression("Shape.circle"), positional(2))
	empty := NewQualifiedExpression("Shape.empty")
	cmp := NewBinaryExpression(circle, OpIsEqualTo, empty)

	tc := Check(context.Background(), NewProgram(decl(shape), expr(cmp)))
	requireTypeErrors(t, tc, 0)
	assert.Equal(t, "Shape", typeOf(t, tc, circle))
	assert.Equal(t, "Shape", typeOf(t, tc, empty))

	cases, ok := tc.EnumCases("Shape")
	require.True(t, ok)
	assert.Equal(t, []string{"circle", "empty"}, cases)
}

func TestCheckNamespaces(t *testing.T) {
	accent := NewQualifiedExpression("Palette.accent")
	tc := Check(context.Background(), NewProgram(
		decl(NewNamespaceDeclaration("Palette",
			NewVariableDeclaration("accent", nil, ColorExpr("#ff0000")),
		)),
		expr(accent),
		decl(NewImportDeclaration("Color")),
		decl(NewImportDeclaration("Nope")),
		expr(ColorExpr("#nothex")),
	))
	errs := requireTypeErrors(t, tc, 2)
	assert.Equal(t, "Color", typeOf(t, tc, accent))

	var unresolved *UnresolvedError
	require.ErrorAs(t, errs[0], &unresolved)
	assert.Equal(t, "Nope", unresolved.Name)
	assert.Contains(t, errs[1].Error(), "invalid color")
}

func TestCheckLoops(t *testing.T) {
	use := NewFunctionCallExpression(NewQualifiedExpression("Number.add"),
		NewArgument("a", NewIdentifierExpression("n")),
		NewArgument("b", NumberExpr(1)),
	)
	loop := NewLoop(NewPattern("n"),
		NewFunctionCallExpression(NewQualifiedExpression("Number.range"),
			NewArgument("from", NumberExpr(0)),
			NewArgument("to", NumberExpr(3)),
		),
		expr(use),
	)
	tc := Check(context.Background(), NewProgram(loop))
	requireTypeErrors(t, tc, 0)
	assert.Equal(t, "Number", typeOf(t, tc, loop.Pattern))

	notArray := NewLoop(NewPattern("n"), NumberExpr(3))
	tc = Check(context.Background(), NewProgram(notArray))
	errs := requireTypeErrors(t, tc, 1)
	assert.Equal(t, notArray.Expression.NodeID(), errs[0].NodeID)
}

func TestCheckTypeAnnotations(t *testing.T) {
	tc := Check(context.Background(), NewProgram(
		decl(NewVariableDeclaration("xs", NewTypeIdentifier("Array"), nil)),
		decl(NewVariableDeclaration("y", NewTypeIdentifier("Widget"), nil)),
		decl(NewVariableDeclaration("maybe", NewTypeIdentifier("Optional", NewTypeIdentifier("Number")), NoneExpr())),
	))
	errs := requireTypeErrors(t, tc, 2)
	assert.Contains(t, errs[0].Error(), "type Array takes 1 type arguments, got 0")

	var unresolved *UnresolvedError
	require.ErrorAs(t, errs[1], &unresolved)
	assert.Equal(t, "Widget", unresolved.Name)
}

func TestCheckKitchenSink(t *testing.T) {
	tree := kitchenSink()
	tc := Check(context.Background(), tree)

	// Every node is visited and gets a scope, even past failures.
	Walk(tree, func(n Node) bool {
		_, ok := tc.scopes[n.NodeID()]
		assert.True(t, ok, "no scope for %s", Describe(n))
		return true
	})
}
