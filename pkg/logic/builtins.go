package logic

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/vito/logic/pkg/hm"
)

// Args provides access to the arguments of a built-in call by label. Omitted
// arguments have already been replaced with their defaults.
type Args struct {
	params []ParamDef
	values []LogicValue
}

// Get retrieves an argument by label.
func (a Args) Get(label string) (LogicValue, bool) {
	for i, p := range a.params {
		if p.Label == label && i < len(a.values) {
			return a.values[i], true
		}
	}
	return LogicValue{}, false
}

// Number retrieves a Number argument.
func (a Args) Number(label string) float64 {
	v, _ := a.Get(label)
	n, _ := v.Memory.(Number)
	return float64(n)
}

// String retrieves a String or Color argument.
func (a Args) String(label string) string {
	v, _ := a.Get(label)
	s, _ := v.Memory.(String)
	return string(s)
}

// Bool retrieves a Boolean argument.
func (a Args) Bool(label string) bool {
	v, _ := a.Get(label)
	b, _ := v.Memory.(Bool)
	return bool(b)
}

// Array retrieves an Array argument.
func (a Args) Array(label string) Array {
	v, _ := a.Get(label)
	arr, _ := v.Memory.(Array)
	return arr
}

// BuiltinDef defines an entry of the built-in table.
type BuiltinDef struct {
	// Name is the dotted qualified name, e.g. Color.saturate.
	Name    string
	Doc     string
	Params  []ParamDef
	Returns Type
	Impl    func(ctx context.Context, args Args) (LogicValue, error)
}

// ParamDef defines a parameter with optional default value.
type ParamDef struct {
	Label   string
	Type    Type
	Default *LogicValue
}

// Type is the function type of the built-in, with its generic parameters as
// free type variables.
func (d BuiltinDef) Type() *hm.FunctionType {
	params := make(hm.Types, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.Type
	}
	return hm.NewFnType(params, d.Returns)
}

// Scheme quantifies over every type variable of the signature.
func (d BuiltinDef) Scheme() *hm.Scheme {
	if scheme, ok := builtinEnv.SchemeOf(d.Name); ok {
		return scheme
	}
	return hm.Generalize(builtinEnv, d.Type())
}

// Tag is the lower camel case form of the name, e.g. colorSaturate.
func (d BuiltinDef) Tag() string {
	return strcase.ToLowerCamel(d.Name)
}

// Namespace is the part of the name before the last dot.
func (d BuiltinDef) Namespace() string {
	ns, _, _ := strings.Cut(d.Name, ".")
	return ns
}

// Signature renders the definition as documentation, e.g.
// Number.range(from: Number, to: Number, by: Number = 1) -> Array<Number>.
func (d BuiltinDef) Signature() string {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Label, p.Type)
		if p.Default != nil {
			params[i] += " = " + p.Default.String()
		}
	}
	return fmt.Sprintf("%s(%s) -> %s", d.Name, strings.Join(params, ", "), d.Returns)
}

// BuiltinBuilder provides a fluent API for defining built-ins.
type BuiltinBuilder struct {
	def BuiltinDef
}

// Builtin starts the definition of a built-in with a qualified name.
func Builtin(name string) *BuiltinBuilder {
	return &BuiltinBuilder{def: BuiltinDef{Name: name}}
}

func (b *BuiltinBuilder) Doc(doc string) *BuiltinBuilder {
	b.def.Doc = doc
	return b
}

// Params adds parameters.
// Usage: Params("label", type) or Params("label", type, defaultValue, "label2", type2, ...)
func (b *BuiltinBuilder) Params(pairs ...any) *BuiltinBuilder {
	for i := 0; i < len(pairs); {
		if i+1 >= len(pairs) {
			panic(fmt.Sprintf("Params: missing type for parameter at position %d", i))
		}
		label, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("Params: expected string at position %d, got %T", i, pairs[i]))
		}
		typ, ok := pairs[i+1].(hm.Type)
		if !ok {
			panic(fmt.Sprintf("Params: expected hm.Type at position %d, got %T", i+1, pairs[i+1]))
		}
		param := ParamDef{Label: label, Type: typ}
		i += 2
		if i < len(pairs) {
			if def, isValue := pairs[i].(LogicValue); isValue {
				param.Default = &def
				i++
			}
		}
		b.def.Params = append(b.def.Params, param)
	}
	return b
}

func (b *BuiltinBuilder) Returns(typ hm.Type) *BuiltinBuilder {
	b.def.Returns = typ
	return b
}

// Impl sets the implementation and registers the built-in.
func (b *BuiltinBuilder) Impl(fn func(context.Context, Args) (LogicValue, error)) {
	b.def.Impl = fn
	register(b.def)
}

var registry = map[string]BuiltinDef{}

// builtinEnv binds every built-in name to its closed type scheme.
var builtinEnv = hm.NewSimpleEnv()

func register(def BuiltinDef) {
	if _, exists := registry[def.Name]; exists {
		panic(fmt.Sprintf("builtin %s registered twice", def.Name))
	}
	registry[def.Name] = def
	builtinEnv.Add(def.Name, hm.Generalize(builtinEnv, def.Type()))
}


// LookupBuiltin finds a built-in by qualified name.
func LookupBuiltin(name string) (BuiltinDef, bool) {
	def, ok := registry[name]
	return def, ok
}

// Builtins returns every built-in sorted by name.
func Builtins() []BuiltinDef {
	names := builtinEnv.Names()
	defs := make([]BuiltinDef, 0, len(names))
	for _, name := range names {
		defs = append(defs, registry[name])
	}
	return defs
}

// BuiltinNamespaces returns the namespaces that hold built-ins, e.g. Color.
func BuiltinNamespaces() []string {
	var namespaces []string
	for _, def := range Builtins() {
		if ns := def.Namespace(); !slices.Contains(namespaces, ns) {
			namespaces = append(namespaces, ns)
		}
	}
	return namespaces
}

func init() {
	registerStdlib()
}
