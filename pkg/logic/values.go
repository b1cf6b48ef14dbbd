package logic

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/vito/logic/pkg/hm"
)

// LogicValue is a runtime value paired with its type. The zero LogicValue
// has no memory and stands for an omitted argument.
type LogicValue struct {
	Type   Type
	Memory Memory
}

// IsZero reports whether the value is the omitted-argument marker.
func (v LogicValue) IsZero() bool {
	return v.Memory == nil
}

func (v LogicValue) String() string {
	if v.Memory == nil {
		return "<omitted>"
	}
	return v.Memory.String()
}

// Memory is the payload of a LogicValue.
type Memory interface {
	memory()
	String() string
}

type Unit struct{}
type Bool bool
type Number float64
type String string
type Array []LogicValue

// Enum is a case of an enumeration with its associated values.
type Enum struct {
	Case   string
	Values []LogicValue
}

// Record maps member names to values. A nil entry marks an absent member.
type Record map[string]*LogicValue

// Func wraps a callable.
type Func struct {
	Function Function
}

func (Unit) memory()   {}
func (Bool) memory()   {}
func (Number) memory() {}
func (String) memory() {}
func (Array) memory()  {}
func (Enum) memory()   {}
func (Record) memory() {}
func (Func) memory()   {}

func (Unit) String() string     { return "()" }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }
func (n Number) String() string { return FormatNumber(float64(n)) }
func (s String) String() string { return strconv.Quote(string(s)) }

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (e Enum) String() string {
	if len(e.Values) == 0 {
		return "." + e.Case
	}
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = v.String()
	}
	return "." + e.Case + "(" + strings.Join(parts, ", ") + ")"
}

func (r Record) String() string {
	names := slices.Sorted(maps.Keys(r))
	parts := make([]string, len(names))
	for i, name := range names {
		if v := r[name]; v != nil {
			parts[i] = name + ": " + v.String()
		} else {
			parts[i] = name + ": none"
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (f Func) String() string {
	return "<function " + f.Function.Tag() + ">"
}

// Function is the callable payload of a Func value.
type Function interface {
	function()
	// Tag names the function variant, e.g. colorSaturate for a built-in.
	Tag() string
}

// BuiltinFunc refers to an entry of the built-in table by qualified name.
type BuiltinFunc struct {
	Name string
}

// Member describes a record member or an associated value of an enum case.
// Default is nil for required members.
type Member struct {
	Name    string
	Type    Type
	Default *LogicValue
}

// EnumInit builds a case of an enumeration from its associated values.
type EnumInit struct {
	Enum    string
	Case    string
	Members []Member
}

// RecordInit builds a record from its members in declaration order.
type RecordInit struct {
	Record  string
	Members []Member
}

// Impl defers to a function declaration in the program.
type Impl struct {
	DeclarationID ID
}

// ValueFunc ignores its arguments and returns Value.
type ValueFunc struct {
	Value LogicValue
}

func (BuiltinFunc) function() {}
func (EnumInit) function()    {}
func (RecordInit) function()  {}
func (Impl) function()        {}
func (ValueFunc) function()   {}

func (f BuiltinFunc) Tag() string { return strcase.ToLowerCamel(f.Name) }
func (f EnumInit) Tag() string    { return "enumInit" }
func (f RecordInit) Tag() string  { return "recordInit" }
func (f Impl) Tag() string        { return "impl" }
func (f ValueFunc) Tag() string   { return "value" }

// Constructors. None of them validate the memory against the type; that is
// the type checker's job.

func UnitValue() LogicValue { return LogicValue{Type: UnitType, Memory: Unit{}} }

func BoolValue(b bool) LogicValue { return LogicValue{Type: BooleanType, Memory: Bool(b)} }

func NumberValue(n float64) LogicValue { return LogicValue{Type: NumberType, Memory: Number(n)} }

func StringValue(s string) LogicValue { return LogicValue{Type: StringType, Memory: String(s)} }

func ColorValue(hex string) LogicValue { return LogicValue{Type: ColorType, Memory: String(hex)} }

func ArrayValue(elem Type, values ...LogicValue) LogicValue {
	return LogicValue{Type: ArrayType(elem), Memory: Array(values)}
}

func NoneValue(elem Type) LogicValue {
	return LogicValue{Type: OptionalType(elem), Memory: Enum{Case: "none"}}
}

func NewEnum(enum string, caseName string, values ...LogicValue) LogicValue {
	return LogicValue{Type: hm.NewConstructor(enum), Memory: Enum{Case: caseName, Values: values}}
}

func NewRecord(record string, members Record) LogicValue {
	return LogicValue{Type: hm.NewConstructor(record), Memory: members}
}

func FuncValue(t Type, fn Function) LogicValue {
	return LogicValue{Type: t, Memory: Func{Function: fn}}
}

// Equal compares two values structurally, ignoring their types.
func Equal(a, b LogicValue) bool {
	switch am := a.Memory.(type) {
	case Array:
		bm, ok := b.Memory.(Array)
		if !ok || len(am) != len(bm) {
			return false
		}
		for i := range am {
			if !Equal(am[i], bm[i]) {
				return false
			}
		}
		return true
	case Enum:
		bm, ok := b.Memory.(Enum)
		if !ok || am.Case != bm.Case || len(am.Values) != len(bm.Values) {
			return false
		}
		for i := range am.Values {
			if !Equal(am.Values[i], bm.Values[i]) {
				return false
			}
		}
		return true
	case Record:
		bm, ok := b.Memory.(Record)
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || (av == nil) != (bv == nil) {
				return false
			}
			if av != nil && !Equal(*av, *bv) {
				return false
			}
		}
		return true
	case Func:
		return false
	default:
		return a.Memory == b.Memory
	}
}

// compare orders numbers and strings.
func compare(a, b LogicValue) (int, error) {
	switch am := a.Memory.(type) {
	case Number:
		if bm, ok := b.Memory.(Number); ok {
			switch {
			case am < bm:
				return -1, nil
			case am > bm:
				return 1, nil
			}
			return 0, nil
		}
	case String:
		if bm, ok := b.Memory.(String); ok {
			return strings.Compare(string(am), string(bm)), nil
		}
	}
	return 0, fmt.Errorf("cannot order %s and %s", a, b)
}
