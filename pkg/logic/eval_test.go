package logic

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/logic/pkg/ioctx"
)

func evaluate(t *testing.T, ctx context.Context, stmts ...Statement) *Evaluation {
	t.Helper()
	ev, err := Evaluate(ctx, NewProgram(stmts...), nil)
	require.NoError(t, err)
	return ev
}

func global(t *testing.T, ev *Evaluation, name string) LogicValue {
	t.Helper()
	v, ok := ev.Global(name)
	require.True(t, ok, "no global %s in %v", name, ev.Globals())
	return v
}

func call(name string, args ...FunctionCallArgument) *FunctionCallExpression {
	return NewFunctionCallExpression(NewQualifiedExpression(name), args...)
}

func TestEvaluateScenario(t *testing.T) {
	ctx := context.Background()
	s := newScenario()

	ev, err := Evaluate(ctx, s.program, nil)
	require.NoError(t, err)
	assert.Equal(t, StringValue("Congrats, you're an adult!"), global(t, ev, "text"))
	assert.Equal(t, []string{"age", "page", "text"}, ev.Globals())

	cond, ok := ev.ValueOf(s.condition.ID)
	require.True(t, ok)
	assert.Equal(t, BoolValue(true), cond)

	young := s.program.Replace(s.age.Initializer.NodeID(), NumberExpr(15))
	ev, err = Evaluate(ctx, young, nil)
	require.NoError(t, err)
	assert.Equal(t, StringValue(""), global(t, ev, "text"))
	_, ok = ev.ValueOf(s.assignment.Expression.NodeID())
	assert.False(t, ok, "the branch was not taken")
}

func TestEvaluateRefusesTypeErrors(t *testing.T) {
	_, err := Evaluate(context.Background(), NewProgram(
		decl(NewVariableDeclaration("n", NewTypeIdentifier("Number"), StringExpr("one"))),
		expr(NewIdentifierExpression("nope")),
	), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 type errors")

	var typeErr *TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestEvaluatePlaceholder(t *testing.T) {
	hole := NewExpressionPlaceholder()
	_, err := Evaluate(context.Background(), NewProgram(
		decl(NewVariableDeclaration("x", nil, hole)),
	), nil)

	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, hole.ID, evalErr.NodeID)
	assert.Contains(t, err.Error(), "missing expression")
}

func TestEvaluateUninitialized(t *testing.T) {
	ev := evaluate(t, context.Background(),
		decl(NewVariableDeclaration("maybe", NewTypeIdentifier("Number"), nil)),
	)
	v := global(t, ev, "maybe")
	assert.Equal(t, Enum{Case: "none"}, v.Memory)
	assert.Equal(t, "Optional<Number>", v.Type.String())
}

func TestEvaluateFunctions(t *testing.T) {
	ctx := context.Background()

	// func fact(n: Number) -> Number {
	//   if (n < 2) { return 1 }
	//   return Number.multiply(a: n, b: fact(n: Number.subtract(a: n, b: 1)))
	// }
	fact := NewFunctionDeclaration("fact",
		[]FunctionParameter{NewParameter("n", NewTypeIdentifier("Number"), nil)},
		NewTypeIdentifier("Number"),
		NewBranch(
			NewBinaryExpression(NewIdentifierExpression("n"), OpIsLessThan, NumberExpr(2)),
			NewReturnStatement(NumberExpr(1)),
		),
		NewReturnStatement(call("Number.multiply",
			NewArgument("a", NewIdentifierExpression("n")),
			NewArgument("b", call("fact",
				NewArgument("n", call("Number.subtract",
					NewArgument("a", NewIdentifierExpression("n")),
					NewArgument("b", NumberExpr(1)),
				)),
			)),
		)),
	)

	greet := NewFunctionDeclaration("greet",
		[]FunctionParameter{NewParameter("name", NewTypeIdentifier("String"), StringExpr("world"))},
		NewTypeIdentifier("String"),
		NewReturnStatement(call("String.concat",
			NewArgument("a", StringExpr("hello ")),
			NewArgument("b", NewIdentifierExpression("name")),
		)),
	)

	noop := NewFunctionDeclaration("noop", nil, NewTypeIdentifier("Unit"))

	ev := evaluate(t, ctx,
		decl(NewVariableDeclaration("early", nil, call("fact", NewArgument("n", NumberExpr(5))))),
		decl(fact),
		decl(greet),
		decl(noop),
		decl(NewVariableDeclaration("world", nil, call("greet"))),
		decl(NewVariableDeclaration("you", nil, call("greet", NewArgument("name", StringExpr("you"))))),
		decl(NewVariableDeclaration("nothing", nil, call("noop"))),
	)
	assert.Equal(t, NumberValue(120), global(t, ev, "early"))
	assert.Equal(t, StringValue("hello world"), global(t, ev, "world"))
	assert.Equal(t, StringValue("hello you"), global(t, ev, "you"))
	assert.Equal(t, UnitValue(), global(t, ev, "nothing"))
}

func TestEvaluateCallDepth(t *testing.T) {
	forever := NewFunctionDeclaration("forever", nil, NewTypeIdentifier("Number"),
		NewReturnStatement(call("forever")),
	)
	_, err := Evaluate(context.Background(), NewProgram(
		decl(forever),
		expr(call("forever")),
	), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call depth exceeded 512")
}

func TestEvaluateRecords(t *testing.T) {
	ev := evaluate(t, context.Background(),
		decl(NewRecordDeclaration("Point",
			NewVariableDeclaration("x", NewTypeIdentifier("Number"), NumberExpr(0)),
			NewVariableDeclaration("y", NewTypeIdentifier("Number"), nil),
		)),
		decl(NewVariableDeclaration("p", nil, call("Point", NewArgument("y", NumberExpr(2))))),
		decl(NewVariableDeclaration("q", nil, NewIdentifierExpression("p"))),
		expr(NewBinaryExpression(NewMemberExpression(NewIdentifierExpression("p"), "x"), OpSetEqualTo, NumberExpr(5))),
		decl(NewVariableDeclaration("px", nil, NewMemberExpression(NewIdentifierExpression("p"), "x"))),
		decl(NewVariableDeclaration("qx", nil, NewMemberExpression(NewIdentifierExpression("q"), "x"))),
		decl(NewVariableDeclaration("py", nil, NewMemberExpression(NewIdentifierExpression("p"), "y"))),
	)
	assert.Equal(t, NumberValue(5), global(t, ev, "px"))
	assert.Equal(t, NumberValue(0), global(t, ev, "qx"), "records are values")
	assert.Equal(t, NumberValue(2), global(t, ev, "py"))
	assert.Equal(t, "Point", global(t, ev, "p").Type.String())
}

func TestEvaluateEnumerations(t *testing.T) {
	ev := evaluate(t, context.Background(),
		decl(NewEnumerationDeclaration("Shape",
			NewEnumCase("circle", NewTypeIdentifier("Number")),
			NewEnumCase("empty"),
		)),
		decl(NewVariableDeclaration("c", nil, call("Shape.circle", positional(3)))),
		decl(NewVariableDeclaration("e", nil, NewQualifiedExpression("Shape.empty"))),
		decl(NewVariableDeclaration("same", nil,
			NewBinaryExpression(NewIdentifierExpression("c"), OpIsEqualTo, call("Shape.circle", positional(3))))),
		decl(NewVariableDeclaration("different", nil,
			NewBinaryExpression(NewIdentifierExpression("c"), OpIsEqualTo, NewIdentifierExpression("e")))),
	)
	assert.Equal(t, NewEnum("Shape", "circle", NumberValue(3)), global(t, ev, "c"))
	assert.Equal(t, NewEnum("Shape", "empty"), global(t, ev, "e"))
	assert.Equal(t, BoolValue(true), global(t, ev, "same"))
	assert.Equal(t, BoolValue(false), global(t, ev, "different"))
}

func TestEvaluateNamespaces(t *testing.T) {
	ev := evaluate(t, context.Background(),
		decl(NewNamespaceDeclaration("Palette",
			NewVariableDeclaration("accent", nil, ColorExpr("#ff0000")),
			NewFunctionDeclaration("muted", nil, NewTypeIdentifier("Color"),
				NewReturnStatement(call("Color.saturate",
					NewArgument("color", NewIdentifierExpression("accent")),
					NewArgument("factor", NumberExpr(0.5)),
				)),
			),
		)),
		decl(NewVariableDeclaration("muted", nil, call("Palette.muted"))),
	)
	assert.Equal(t, ColorValue("#bf4040"), global(t, ev, "muted"))
	assert.Equal(t, ColorValue("#ff0000"), global(t, ev, "Palette.accent"))
}

func TestEvaluateLoops(t *testing.T) {
	var out bytes.Buffer
	ctx := ioctx.StdoutToContext(context.Background(), &out)

	ev := evaluate(t, ctx,
		decl(NewVariableDeclaration("total", nil, NumberExpr(0))),
		NewLoop(NewPattern("n"), call("Number.range", NewArgument("from", NumberExpr(0)), NewArgument("to", NumberExpr(3))),
			expr(call("Debug.log", NewArgument("value", NewIdentifierExpression("n")))),
			expr(NewBinaryExpression(NewIdentifierExpression("total"), OpSetEqualTo, call("Number.add",
				NewArgument("a", NewIdentifierExpression("total")),
				NewArgument("b", NewIdentifierExpression("n")),
			))),
		),
	)
	assert.Equal(t, "0\n1\n2\n", out.String())
	assert.Equal(t, NumberValue(3), global(t, ev, "total"))
	_, leaked := ev.Global("n")
	assert.False(t, leaked, "loop variables are scoped to the loop")
}

func TestEvaluateCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Evaluate(ctx, NewProgram(
		NewLoop(NewPattern("n"), NewLiteralExpression(NewArrayLiteral(NumberExpr(1)))),
	), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateBuiltinFailures(t *testing.T) {
	for name, tt := range map[string]struct {
		call    *FunctionCallExpression
		message string
	}{
		"divide by zero": {
			call:    call("Number.divide", NewArgument("a", NumberExpr(1)), NewArgument("b", NumberExpr(0))),
			message: "division by zero",
		},
		"index out of range": {
			call: call("Array.at",
				NewArgument("array", NewLiteralExpression(NewArrayLiteral(NumberExpr(1)))),
				NewArgument("index", NumberExpr(4)),
			),
			message: "index 4 out of range for length 1",
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Evaluate(context.Background(), NewProgram(expr(tt.call)), nil)

			var evalErr *EvalError
			require.True(t, errors.As(err, &evalErr), "got %v", err)
			assert.Equal(t, tt.call.ID, evalErr.NodeID)

			var argErr *ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.message, argErr.Message)
		})
	}
}

func TestEnv(t *testing.T) {
	outer := NewEnv()
	outer.Define("x", NumberValue(1))
	inner := outer.Child()
	inner.Define("y", NumberValue(2))

	v, ok := inner.Get("x")
	require.True(t, ok)
	assert.Equal(t, NumberValue(1), v)

	require.True(t, inner.Assign("x", NumberValue(3)))
	v, _ = outer.Get("x")
	assert.Equal(t, NumberValue(3), v, "assignment reaches the defining env")

	assert.False(t, inner.Assign("z", NumberValue(0)))
	_, ok = outer.Get("y")
	assert.False(t, ok)
	assert.Equal(t, []string{"y"}, inner.Names())
}
