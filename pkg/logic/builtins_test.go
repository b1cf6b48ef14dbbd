package logic

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/logic/pkg/hm"
	"github.com/vito/logic/pkg/ioctx"
)

func applyBuiltin(t *testing.T, ctx context.Context, name string, args ...LogicValue) (LogicValue, error) {
	t.Helper()
	_, ok := LookupBuiltin(name)
	require.True(t, ok, "no builtin %s", name)
	return NewEvaluator(NewProgram(), nil).Apply(ctx, BuiltinFunc{Name: name}, args)
}

func TestBuiltinTable(t *testing.T) {
	defs := Builtins()
	require.NotEmpty(t, defs)
	for i, def := range defs {
		if i > 0 {
			assert.Less(t, defs[i-1].Name, def.Name, "sorted by name")
		}
		assert.NotEmpty(t, def.Doc, def.Name)
		assert.NotNil(t, def.Impl, def.Name)

		// Instantiating twice yields independent type variables.
		fresh := hm.NewSimpleFresher()
		a := hm.Instantiate(fresh, def.Scheme())
		b := hm.Instantiate(fresh, def.Scheme())
		if len(def.Type().FreeTypeVar().Sorted()) > 0 {
			assert.False(t, a.Eq(b), "%s: %s vs %s", def.Name, a, b)
		}
	}

	assert.Len(t, builtinEnv.Names(), len(defs))
	assert.Empty(t, builtinEnv.FreeTypeVar(), "built-in schemes are closed")
	def, _ := LookupBuiltin("Array.at")
	assert.Same(t, def.Scheme(), def.Scheme())
	assert.Equal(t, "forall T. (Array<T>, Number) -> T", def.Scheme().String())

	assert.Subset(t, BuiltinNamespaces(), []string{"Array", "Boolean", "Color", "Debug", "Number", "String"})

	_, ok := LookupBuiltin("Number.frobnicate")
	assert.False(t, ok)
}

func TestBuiltinSignature(t *testing.T) {
	def, ok := LookupBuiltin("Number.range")
	require.True(t, ok)
	assert.Equal(t, "Number.range(from: Number, to: Number, by: Number = 1) -> Array<Number>", def.Signature())
	assert.Equal(t, "numberRange", def.Tag())
	assert.Equal(t, "Number", def.Namespace())
}

func TestNumberRange(t *testing.T) {
	ctx := context.Background()

	v, err := applyBuiltin(t, ctx, "Number.range", NumberValue(0), NumberValue(5), NumberValue(2))
	require.NoError(t, err)
	assert.Equal(t, Array{NumberValue(0), NumberValue(2), NumberValue(4)}, v.Memory)
	assert.Equal(t, "Array<Number>", v.Type.String())

	v, err = applyBuiltin(t, ctx, "Number.range", NumberValue(1), NumberValue(3))
	require.NoError(t, err)
	assert.Equal(t, Array{NumberValue(1), NumberValue(2)}, v.Memory, "by defaults to 1")

	v, err = applyBuiltin(t, ctx, "Number.range", NumberValue(3), NumberValue(3))
	require.NoError(t, err)
	assert.Empty(t, v.Memory)

	_, err = applyBuiltin(t, ctx, "Number.range", NumberValue(0), NumberValue(3), NumberValue(0))
	assert.ErrorContains(t, err, "step must be positive")

	_, err = applyBuiltin(t, ctx, "Number.range", NumberValue(0))
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "missing argument to", argErr.Message)

	_, err = applyBuiltin(t, ctx, "Number.range", NumberValue(0), NumberValue(1), NumberValue(1), NumberValue(1))
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "expected at most 3 arguments, got 4", argErr.Message)
}

func TestNumberRangeBounds(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var argErr *ArgumentError

	_, err := applyBuiltin(t, ctx, "Number.range", NumberValue(1e17), NumberValue(1e17+64), NumberValue(1))
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, argErr.Message, "does not advance")

	_, err = applyBuiltin(t, ctx, "Number.range", NumberValue(0), NumberValue(1e12))
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, argErr.Message, "exceeds")

	_, err = applyBuiltin(t, ctx, "Number.range", NumberValue(0), NumberValue(math.Inf(1)))
	require.ErrorAs(t, err, &argErr)

	v, err := applyBuiltin(t, ctx, "Number.range", NumberValue(5), NumberValue(1))
	require.NoError(t, err)
	assert.Empty(t, v.Memory, "a backwards range is empty")

	canceled, stop := context.WithCancel(ctx)
	stop()
	_, err = applyBuiltin(t, canceled, "Number.range", NumberValue(0), NumberValue(10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuiltinArgumentShapes(t *testing.T) {
	ctx := context.Background()
	for _, tt := range []struct {
		name    string
		args    []LogicValue
		message string
	}{
		{"Number.add", []LogicValue{StringValue("a"), BoolValue(true)}, "argument a: expected Number, got String"},
		{"Boolean.not", []LogicValue{NumberValue(1)}, "argument value: expected Boolean, got Number"},
		{"Array.length", []LogicValue{StringValue("abc")}, "argument array: expected Array<T>, got String"},
		{"Color.saturate", []LogicValue{NumberValue(1), NumberValue(1)}, "argument color: expected Color, got Number"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyBuiltin(t, ctx, tt.name, tt.args...)
			var argErr *ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.name, argErr.Function)
			assert.Equal(t, tt.message, argErr.Message)
		})
	}

	// type variables accept any shape
	v, err := applyBuiltin(t, ctx, "Array.append", ArrayValue(NumberType), StringValue("x"))
	require.NoError(t, err)
	assert.Len(t, v.Memory, 1)
}

func TestColorSaturate(t *testing.T) {
	ctx := context.Background()
	for _, tt := range []struct {
		color  string
		factor float64
		want   string
	}{
		{"#ff0000", 0.5, "#bf4040"},
		{"#ff0000", 2, "#ff0000"},
		{"#ff0000", 0, "#808080"},
	} {
		v, err := applyBuiltin(t, ctx, "Color.saturate", ColorValue(tt.color), NumberValue(tt.factor))
		require.NoError(t, err)
		assert.Equal(t, ColorValue(tt.want), v, "%s * %v", tt.color, tt.factor)
	}

	_, err := applyBuiltin(t, ctx, "Color.saturate", ColorValue("red"), NumberValue(1))
	assert.Error(t, err)
}

func TestArrayBuiltins(t *testing.T) {
	ctx := context.Background()
	xs := ArrayValue(StringType, StringValue("a"), StringValue("b"))

	v, err := applyBuiltin(t, ctx, "Array.at", xs, NumberValue(1))
	require.NoError(t, err)
	assert.Equal(t, StringValue("b"), v)

	for _, idx := range []float64{-1, 2, 0.5} {
		_, err = applyBuiltin(t, ctx, "Array.at", xs, NumberValue(idx))
		assert.Error(t, err, "index %v", idx)
	}

	v, err = applyBuiltin(t, ctx, "Array.length", xs)
	require.NoError(t, err)
	assert.Equal(t, NumberValue(2), v)

	v, err = applyBuiltin(t, ctx, "Array.append", xs, StringValue("c"))
	require.NoError(t, err)
	assert.Equal(t, Array{StringValue("a"), StringValue("b"), StringValue("c")}, v.Memory)
	assert.Len(t, xs.Memory, 2, "the input is not modified")
}

func TestScalarBuiltins(t *testing.T) {
	ctx := context.Background()
	for _, tt := range []struct {
		name string
		args []LogicValue
		want LogicValue
	}{
		{"Boolean.and", []LogicValue{BoolValue(true), BoolValue(false)}, BoolValue(false)},
		{"Boolean.or", []LogicValue{BoolValue(true), BoolValue(false)}, BoolValue(true)},
		{"Boolean.not", []LogicValue{BoolValue(true)}, BoolValue(false)},
		{"Number.add", []LogicValue{NumberValue(2), NumberValue(3)}, NumberValue(5)},
		{"Number.subtract", []LogicValue{NumberValue(2), NumberValue(3)}, NumberValue(-1)},
		{"Number.multiply", []LogicValue{NumberValue(2), NumberValue(3)}, NumberValue(6)},
		{"Number.divide", []LogicValue{NumberValue(3), NumberValue(2)}, NumberValue(1.5)},
		{"String.concat", []LogicValue{StringValue("ab"), StringValue("cd")}, StringValue("abcd")},
		{"String.length", []LogicValue{StringValue("héllo")}, NumberValue(5)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			v, err := applyBuiltin(t, ctx, tt.name, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	_, err := applyBuiltin(t, ctx, "Number.divide", NumberValue(1), NumberValue(0))
	assert.ErrorContains(t, err, "division by zero")
}

func TestDebugLog(t *testing.T) {
	var out bytes.Buffer
	ctx := ioctx.StdoutToContext(context.Background(), &out)

	v, err := applyBuiltin(t, ctx, "Debug.log", ArrayValue(NumberType, NumberValue(1), NumberValue(2)))
	require.NoError(t, err)
	assert.Equal(t, UnitValue(), v)

	_, err = applyBuiltin(t, ctx, "Debug.log", StringValue("hi"))
	require.NoError(t, err)

	assert.Equal(t, "[1, 2]\n\"hi\"\n", out.String())
}
