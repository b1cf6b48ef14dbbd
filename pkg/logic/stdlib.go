package logic

import (
	"context"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/vito/logic/pkg/ioctx"
)

// maxRangeLength caps the arrays built by Number.range.
const maxRangeLength = 1 << 20

// registerStdlib registers the built-in table.
func registerStdlib() {
	t := TypeVar("T")

	Builtin("Boolean.and").
		Doc("true when both values are true").
		Params("a", BooleanType, "b", BooleanType).
		Returns(BooleanType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			return BoolValue(args.Bool("a") && args.Bool("b")), nil
		})

	Builtin("Boolean.or").
		Doc("true when either value is true").
		Params("a", BooleanType, "b", BooleanType).
		Returns(BooleanType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			return BoolValue(args.Bool("a") || args.Bool("b")), nil
		})

	Builtin("Boolean.not").
		Doc("negates a value").
		Params("value", BooleanType).
		Returns(BooleanType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			return BoolValue(!args.Bool("value")), nil
		})

	Builtin("Number.add").
		Doc("adds two numbers").
		Params("a", NumberType, "b", NumberType).
		Returns(NumberType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			return NumberValue(args.Number("a") + args.Number("b")), nil
		})

	Builtin("Number.subtract").
		Doc("subtracts b from a").
		Params("a", NumberType, "b", NumberType).
		Returns(NumberType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			return NumberValue(args.Number("a") - args.Number("b")), nil
		})

	Builtin("Number.multiply").
		Doc("multiplies two numbers").
		Params("a", NumberType, "b", NumberType).
		Returns(NumberType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			return NumberValue(args.Number("a") * args.Number("b")), nil
		})

	Builtin("Number.divide").
		Doc("divides a by b").
		Params("a", NumberType, "b", NumberType).
		Returns(NumberType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			if args.Number("b") == 0 {
				return LogicValue{}, &ArgumentError{Function: "Number.divide", Message: "division by zero"}
			}
			return NumberValue(args.Number("a") / args.Number("b")), nil
		})

	Builtin("Number.range").
		Doc("numbers from `from` up to but excluding `to`, stepping by `by`").
		Params(
			"from", NumberType,
			"to", NumberType,
			"by", NumberType, NumberValue(1),
		).
		Returns(ArrayType(NumberType)).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			from, to, by := args.Number("from"), args.Number("to"), args.Number("by")
			if by <= 0 || math.IsNaN(by) {
				return LogicValue{}, &ArgumentError{Function: "Number.range", Message: fmt.Sprintf("step must be positive, got %s", FormatNumber(by))}
			}
			count := math.Ceil((to - from) / by)
			if count <= 0 {
				return ArrayValue(NumberType), nil
			}
			if count > maxRangeLength || math.IsNaN(count) {
				return LogicValue{}, &ArgumentError{Function: "Number.range", Message: fmt.Sprintf("range of %s elements exceeds %d", FormatNumber(count), maxRangeLength)}
			}
			if from+by == from {
				return LogicValue{}, &ArgumentError{Function: "Number.range", Message: fmt.Sprintf("step %s does not advance from %s", FormatNumber(by), FormatNumber(from))}
			}
			values := make([]LogicValue, 0, int(count))
			for i := 0; i < int(count); i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return LogicValue{}, err
					}
				}
				values = append(values, NumberValue(from+float64(i)*by))
			}
			return ArrayValue(NumberType, values...), nil
		})

	Builtin("String.concat").
		Doc("joins two strings").
		Params("a", StringType, "b", StringType).
		Returns(StringType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			return StringValue(args.String("a") + args.String("b")), nil
		})

	Builtin("String.length").
		Doc("number of characters in a string").
		Params("string", StringType).
		Returns(NumberType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			return NumberValue(float64(len([]rune(args.String("string"))))), nil
		})

	Builtin("Array.at").
		Doc("element at a zero-based index").
		Params("array", ArrayType(t), "index", NumberType).
		Returns(t).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			arr := args.Array("array")
			idx := args.Number("index")
			if idx != math.Trunc(idx) || idx < 0 || int(idx) >= len(arr) {
				return LogicValue{}, &ArgumentError{
					Function: "Array.at",
					Message:  fmt.Sprintf("index %s out of range for length %d", FormatNumber(idx), len(arr)),
				}
			}
			return arr[int(idx)], nil
		})

	Builtin("Array.length").
		Doc("number of elements in an array").
		Params("array", ArrayType(t)).
		Returns(NumberType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			return NumberValue(float64(len(args.Array("array")))), nil
		})

	Builtin("Array.append").
		Doc("a copy of the array with a value added at the end").
		Params("array", ArrayType(t), "value", t).
		Returns(ArrayType(t)).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			arr, _ := args.Get("array")
			value, _ := args.Get("value")
			out := append(Array{}, args.Array("array")...)
			out = append(out, value)
			return LogicValue{Type: arr.Type, Memory: out}, nil
		})

	Builtin("Color.saturate").
		Doc("scales the HSL saturation of a colour by a factor, clamped to the valid range").
		Params("color", ColorType, "factor", NumberType).
		Returns(ColorType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			c, err := colorful.Hex(args.String("color"))
			if err != nil {
				return LogicValue{}, &ArgumentError{Function: "Color.saturate", Message: err.Error()}
			}
			h, s, l := c.Hsl()
			s = math.Max(0, math.Min(1, s*args.Number("factor")))
			return ColorValue(colorful.Hsl(h, s, l).Clamped().Hex()), nil
		})

	Builtin("Debug.log").
		Doc("prints a value to the output").
		Params("value", t).
		Returns(UnitType).
		Impl(func(ctx context.Context, args Args) (LogicValue, error) {
			value, _ := args.Get("value")
			fmt.Fprintln(ioctx.StdoutFromContext(ctx), value)
			return UnitValue(), nil
		})
}
