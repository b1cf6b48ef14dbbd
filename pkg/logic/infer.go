package logic

import (
	"context"
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/vito/logic/pkg/hm"
	"github.com/vito/logic/pkg/ioctx"
)

// BindingKind says what introduced a name.
type BindingKind string

const (
	BindingVariable     BindingKind = "variable"
	BindingParameter    BindingKind = "parameter"
	BindingLoopVariable BindingKind = "loopVariable"
	BindingFunction     BindingKind = "function"
	BindingRecord       BindingKind = "record"
	BindingEnumeration  BindingKind = "enumeration"
	BindingEnumCase     BindingKind = "enumCase"
	BindingNamespace    BindingKind = "namespace"
	BindingBuiltin      BindingKind = "builtin"
)

// Binding is a name visible at some point of the program. Names declared in
// a namespace or enumeration are visible under their qualified form, e.g.
// Shapes.area.
type Binding struct {
	Name      string
	Kind      BindingKind
	Type      Type
	NodeID    ID
	Signature *Signature
}

// Callable reports whether the binding can be called with labelled
// arguments.
func (b Binding) Callable() bool {
	return b.Signature != nil
}

// Signature carries the parameter labels of a callable binding.
type Signature struct {
	Params []SignatureParam
}

type SignatureParam struct {
	Label      string
	Type       Type
	HasDefault bool
}

// Scope is a persistent stack of bindings, innermost first.
type Scope = List[Binding]

// LookupBinding finds the innermost binding with the given name.
func LookupBinding(scope Scope, name string) (Binding, bool) {
	for _, b := range scope.All() {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}

// TypeCheck is the result of checking a program. Checking never stops at the
// first failure; every constraint that fails to unify is recorded as a
// TypeError and the rest of the program is still checked.
type TypeCheck struct {
	types    map[ID]Type
	expected map[ID]Type
	scopes   map[ID]Scope
	errors   []*TypeError
	subs     hm.Subs
	fresh    hm.Fresher
	records  map[string][]Member
	enums    map[string][]string
	inFunc   map[ID]bool
}

// TypeOf returns the inferred type of a node with the final substitution
// applied.
func (tc *TypeCheck) TypeOf(id ID) (Type, bool) {
	t, ok := tc.types[id]
	if !ok {
		return nil, false
	}
	return tc.subs.Apply(t), true
}

// ExpectedType returns the type the context of a slot demands, regardless
// of what currently fills it. Slots with no demand report false.
func (tc *TypeCheck) ExpectedType(id ID) (Type, bool) {
	t, ok := tc.expected[id]
	if !ok {
		return nil, false
	}
	return tc.subs.Apply(t), true
}

// ScopeAt returns the bindings visible at a node.
func (tc *TypeCheck) ScopeAt(id ID) Scope {
	return tc.scopes[id]
}

// InFunction reports whether a node sits inside a function body.
func (tc *TypeCheck) InFunction(id ID) bool {
	return tc.inFunc[id]
}

// Errors returns every failure in the order it was found.
func (tc *TypeCheck) Errors() []*TypeError {
	return tc.errors
}

// Resolve applies the final substitution to a type.
func (tc *TypeCheck) Resolve(t Type) Type {
	return tc.subs.Apply(t)
}

// Fresh returns a type variable unused by the check.
func (tc *TypeCheck) Fresh() hm.TypeVariable {
	return tc.fresh.Fresh()
}

// Unifies reports whether a value of type actual fits a slot expecting
// expected under the check's substitution.
func (tc *TypeCheck) Unifies(expected, actual Type) bool {
	_, err := hm.Unify(tc.subs.Apply(expected), tc.subs.Apply(actual))
	return err == nil
}

// RecordMembers returns the members of a record declared in the program.
func (tc *TypeCheck) RecordMembers(name string) ([]Member, bool) {
	members, ok := tc.records[name]
	return members, ok
}

// EnumCases returns the case names of an enumeration declared in the
// program.
func (tc *TypeCheck) EnumCases(name string) ([]string, bool) {
	cases, ok := tc.enums[name]
	return cases, ok
}

func newTypeCheck() *TypeCheck {
	return &TypeCheck{
		types:    map[ID]Type{},
		expected: map[ID]Type{},
		scopes:   map[ID]Scope{},
		subs:     hm.NewSubs(),
		fresh:    hm.NewSimpleFresher(),
		records:  map[string][]Member{},
		enums:    map[string][]string{},
		inFunc:   map[ID]bool{},
	}
}

// Check type checks a program.
func Check(ctx context.Context, program *Program) *TypeCheck {
	tc := newTypeCheck()
	c := &checker{tc: tc, hoisted: map[ID]Binding{}}
	tc.scopes[program.ID] = Empty[Binding]()
	tc.types[program.ID] = UnitType
	c.block(program.Block, Empty[Binding]())

	ioctx.LoggerFromContext(ctx).Debug("type check completed",
		"nodes", len(tc.types),
		"errors", len(tc.errors))
	return tc
}

type checker struct {
	tc      *TypeCheck
	hoisted map[ID]Binding
	returns []Type
}

func (c *checker) fresh() Type {
	return c.tc.fresh.Fresh()
}

func (c *checker) fail(id ID, err error) {
	c.tc.errors = append(c.tc.errors, &TypeError{NodeID: id, Err: err})
}

func (c *checker) unify(id ID, expected, actual Type) {
	s, err := hm.Unify(c.tc.subs.Apply(expected), c.tc.subs.Apply(actual))
	if err != nil {
		c.fail(id, err)
		return
	}
	c.tc.subs = c.tc.subs.Compose(s)
}

func (c *checker) visit(n Node, scope Scope) {
	c.tc.scopes[n.NodeID()] = scope
	if len(c.returns) > 0 {
		c.tc.inFunc[n.NodeID()] = true
	}
}

// lookup resolves a name, consulting the built-in table before the scope.
func (c *checker) lookup(name string, scope Scope) (Binding, bool) {
	if def, ok := LookupBuiltin(name); ok {
		ft := hm.Instantiate(c.tc.fresh, def.Scheme()).(*hm.FunctionType)
		sig := &Signature{}
		for i, p := range def.Params {
			sig.Params = append(sig.Params, SignatureParam{
				Label:      p.Label,
				Type:       ft.Params()[i],
				HasDefault: p.Default != nil,
			})
		}
		return Binding{Name: def.Name, Kind: BindingBuiltin, Type: ft, Signature: sig}, true
	}
	return LookupBinding(scope, name)
}

func (c *checker) block(stmts List[Statement], scope Scope) Scope {
	var decls []Declaration
	for _, s := range stmts.All() {
		if ds, ok := s.(*DeclarationStatement); ok {
			decls = append(decls, ds.Content)
		}
	}
	scope = c.hoist(decls, scope)
	for _, s := range stmts.All() {
		scope = c.statement(s, scope)
	}
	return scope
}

// hoist binds the records, enumerations and functions of a block before
// any of its statements are checked, so they can be used before the point
// of declaration.
func (c *checker) hoist(decls []Declaration, scope Scope) Scope {
	declared := map[string]bool{}
	for _, d := range decls {
		switch d.(type) {
		case *RecordDeclaration, *EnumerationDeclaration, *FunctionDeclaration, *NamespaceDeclaration:
			name, ok := DeclaredName(d)
			if !ok {
				continue
			}
			if declared[name] {
				c.fail(d.NodeID(), fmt.Errorf("%s is already declared in this block", name))
			}
			declared[name] = true
		}
	}
	for _, d := range decls {
		switch d := d.(type) {
		case *RecordDeclaration:
			scope = scope.Prepend(c.bind(d.ID, Binding{
				Name:   d.Name.Name,
				Kind:   BindingRecord,
				Type:   hm.NewConstructor(d.Name.Name),
				NodeID: d.ID,
			}))
		case *EnumerationDeclaration:
			scope = scope.Prepend(c.bind(d.ID, Binding{
				Name:   d.Name.Name,
				Kind:   BindingEnumeration,
				Type:   hm.NewConstructor(d.Name.Name),
				NodeID: d.ID,
			}))
		}
	}
	for _, d := range decls {
		switch d := d.(type) {
		case *RecordDeclaration:
			scope = c.hoistRecord(d, scope)
		case *EnumerationDeclaration:
			scope = c.hoistEnumeration(d, scope)
		}
	}
	for _, d := range decls {
		if fn, ok := d.(*FunctionDeclaration); ok {
			scope = scope.Prepend(c.hoistFunction(fn, scope))
		}
	}
	return scope
}

func (c *checker) bind(id ID, b Binding) Binding {
	c.hoisted[id] = b
	return b
}

func (c *checker) hoistRecord(d *RecordDeclaration, scope Scope) Scope {
	recordType := hm.NewConstructor(d.Name.Name)
	var members []Member
	sig := &Signature{}
	var params hm.Types
	for _, m := range d.Declarations.All() {
		v, ok := m.(*VariableDeclaration)
		if !ok {
			continue
		}
		var t Type
		if v.Annotation != nil {
			t = c.annotation(v.Annotation, scope)
		} else {
			t = c.fresh()
		}
		c.tc.types[v.ID] = t
		c.tc.types[v.Name.ID] = t
		members = append(members, Member{Name: v.Name.Name, Type: t})
		sig.Params = append(sig.Params, SignatureParam{Label: v.Name.Name, Type: t, HasDefault: v.Initializer != nil})
		params = append(params, t)
	}
	c.tc.records[d.Name.Name] = members
	c.tc.types[d.ID] = hm.NewFnType(params, recordType)
	c.tc.types[d.Name.ID] = recordType
	// the record's own name resolves to its initializer
	return scope.Prepend(c.bind(d.ID, Binding{
		Name:      d.Name.Name,
		Kind:      BindingRecord,
		Type:      hm.NewFnType(params, recordType),
		NodeID:    d.ID,
		Signature: sig,
	}))
}

func (c *checker) hoistEnumeration(d *EnumerationDeclaration, scope Scope) Scope {
	enumType := hm.NewConstructor(d.Name.Name)
	c.tc.types[d.ID] = enumType
	c.tc.types[d.Name.ID] = enumType
	var cases []string
	for _, ec := range d.Cases.All() {
		ec, ok := ec.(*EnumCase)
		if !ok {
			continue
		}
		cases = append(cases, ec.Name.Name)
		var params hm.Types
		sig := &Signature{}
		for _, ta := range ec.AssociatedValueTypes.All() {
			t := c.annotation(ta, scope)
			params = append(params, t)
			sig.Params = append(sig.Params, SignatureParam{Type: t})
		}
		var t Type = enumType
		if len(params) > 0 {
			t = hm.NewFnType(params, enumType)
		} else {
			sig = nil
		}
		c.tc.types[ec.ID] = t
		c.tc.types[ec.Name.ID] = t
		scope = scope.Prepend(Binding{
			Name:      d.Name.Name + "." + ec.Name.Name,
			Kind:      BindingEnumCase,
			Type:      t,
			NodeID:    ec.ID,
			Signature: sig,
		})
	}
	c.tc.enums[d.Name.Name] = cases
	return scope
}

func (c *checker) hoistFunction(d *FunctionDeclaration, scope Scope) Binding {
	sig := &Signature{}
	var params hm.Types
	for _, p := range d.Parameters.All() {
		p, ok := p.(*Parameter)
		if !ok {
			continue
		}
		t := c.annotation(p.Annotation, scope)
		c.tc.types[p.ID] = t
		c.tc.types[p.Name.ID] = t
		params = append(params, t)
		sig.Params = append(sig.Params, SignatureParam{Label: p.Name.Name, Type: t, HasDefault: p.DefaultValue != nil})
	}
	ret := c.annotation(d.ReturnType, scope)
	ft := hm.NewFnType(params, ret)
	c.tc.types[d.ID] = ft
	c.tc.types[d.Name.ID] = ft
	return c.bind(d.ID, Binding{
		Name:      d.Name.Name,
		Kind:      BindingFunction,
		Type:      ft,
		NodeID:    d.ID,
		Signature: sig,
	})
}

// annotation converts a written type to a type term.
func (c *checker) annotation(ta TypeAnnotation, scope Scope) Type {
	if ta == nil {
		return c.fresh()
	}
	c.visit(ta, scope)
	var t Type
	switch ta := ta.(type) {
	case *TypeIdentifier:
		c.visit(ta.Identifier, scope)
		var args hm.Types
		for _, arg := range ta.GenericArguments.All() {
			args = append(args, c.annotation(arg, scope))
		}
		name := ta.Identifier.Name
		if arity, ok := builtinTypeArity[name]; ok {
			if arity != len(args) {
				c.fail(ta.ID, fmt.Errorf("type %s takes %d type arguments, got %d", name, arity, len(args)))
				t = c.fresh()
				break
			}
			t = hm.NewConstructor(name, args...)
			break
		}
		if b, ok := LookupBinding(scope, name); ok && (b.Kind == BindingRecord || b.Kind == BindingEnumeration) {
			t = hm.NewConstructor(name, args...)
			break
		}
		if ta.Identifier.IsPlaceholder {
			t = c.fresh()
			break
		}
		c.fail(ta.ID, &UnresolvedError{Name: name})
		t = c.fresh()
	case *FunctionTypeAnnotation:
		var params hm.Types
		for _, arg := range ta.ArgumentTypes.All() {
			params = append(params, c.annotation(arg, scope))
		}
		t = hm.NewFnType(params, c.annotation(ta.ReturnType, scope))
	default:
		t = c.fresh()
	}
	c.tc.types[ta.NodeID()] = t
	return t
}

func (c *checker) statement(s Statement, scope Scope) Scope {
	c.visit(s, scope)
	switch s := s.(type) {
	case *Branch:
		ct := c.expression(s.Condition, scope)
		c.tc.expected[s.Condition.NodeID()] = BooleanType
		c.unify(s.Condition.NodeID(), BooleanType, ct)
		c.block(s.Block, scope)
	case *Loop:
		elem := c.fresh()
		xt := c.expression(s.Expression, scope)
		c.tc.expected[s.Expression.NodeID()] = ArrayType(elem)
		c.unify(s.Expression.NodeID(), ArrayType(elem), xt)
		c.visit(s.Pattern, scope)
		c.tc.types[s.Pattern.ID] = elem
		inner := scope.Prepend(Binding{
			Name:   s.Pattern.Name,
			Kind:   BindingLoopVariable,
			Type:   elem,
			NodeID: s.Pattern.ID,
		})
		c.block(s.Block, inner)
	case *DeclarationStatement:
		scope = c.declaration(s.Content, scope)
		if t, ok := c.tc.types[s.Content.NodeID()]; ok {
			c.tc.types[s.ID] = t
		}
		return scope
	case *ExpressionStatement:
		c.tc.types[s.ID] = c.expression(s.Expression, scope)
	case *ReturnStatement:
		t := c.expression(s.Expression, scope)
		if len(c.returns) == 0 {
			c.fail(s.ID, fmt.Errorf("return outside of a function"))
			break
		}
		ret := c.returns[len(c.returns)-1]
		c.tc.expected[s.Expression.NodeID()] = ret
		c.unify(s.Expression.NodeID(), ret, t)
	case *StatementPlaceholder:
	}
	if _, ok := c.tc.types[s.NodeID()]; !ok {
		c.tc.types[s.NodeID()] = UnitType
	}
	return scope
}

func (c *checker) declaration(d Declaration, scope Scope) Scope {
	c.visit(d, scope)
	switch d := d.(type) {
	case *VariableDeclaration:
		c.visit(d.Name, scope)
		var t Type
		if d.Annotation != nil {
			t = c.annotation(d.Annotation, scope)
		} else {
			t = c.fresh()
		}
		if d.Initializer != nil {
			it := c.expression(d.Initializer, scope)
			if d.Annotation != nil {
				c.tc.expected[d.Initializer.NodeID()] = t
			}
			c.unify(d.Initializer.NodeID(), t, it)
		}
		c.tc.types[d.ID] = t
		c.tc.types[d.Name.ID] = t
		return scope.Prepend(Binding{Name: d.Name.Name, Kind: BindingVariable, Type: t, NodeID: d.ID})

	case *FunctionDeclaration:
		b, ok := c.hoisted[d.ID]
		if !ok {
			b = c.hoistFunction(d, scope)
			scope = scope.Prepend(b)
		}
		ft := b.Type.(*hm.FunctionType)
		c.visit(d.Name, scope)
		inner := scope
		i := 0
		for _, p := range d.Parameters.All() {
			c.visit(p, scope)
			p, ok := p.(*Parameter)
			if !ok {
				continue
			}
			pt := ft.Params()[i]
			i++
			c.visit(p.Name, scope)
			if p.DefaultValue != nil {
				dt := c.expression(p.DefaultValue, scope)
				c.tc.expected[p.DefaultValue.NodeID()] = pt
				c.unify(p.DefaultValue.NodeID(), pt, dt)
			}
			inner = inner.Prepend(Binding{Name: p.Name.Name, Kind: BindingParameter, Type: pt, NodeID: p.ID})
		}
		c.returns = append(c.returns, ft.Ret())
		c.block(d.Block, inner)
		c.returns = c.returns[:len(c.returns)-1]
		return scope

	case *RecordDeclaration:
		if _, ok := c.hoisted[d.ID]; !ok {
			scope = c.hoistRecord(d, scope)
		}
		c.visit(d.Name, scope)
		// member types come from this declaration's own signature; another
		// record of the same name may have replaced tc.records[name]
		params := c.hoisted[d.ID].Signature.Params
		i := 0
		for _, m := range d.Declarations.All() {
			c.visit(m, scope)
			v, ok := m.(*VariableDeclaration)
			if !ok {
				continue
			}
			mt := params[i].Type
			i++
			c.visit(v.Name, scope)
			if v.Annotation != nil {
				c.visit(v.Annotation, scope)
			}
			if v.Initializer != nil {
				it := c.expression(v.Initializer, scope)
				c.tc.expected[v.Initializer.NodeID()] = mt
				c.unify(v.Initializer.NodeID(), mt, it)
			}
		}
		return scope

	case *EnumerationDeclaration:
		if _, ok := c.hoisted[d.ID]; !ok {
			scope = c.hoistEnumeration(d, scope.Prepend(c.bind(d.ID, Binding{
				Name:   d.Name.Name,
				Kind:   BindingEnumeration,
				Type:   hm.NewConstructor(d.Name.Name),
				NodeID: d.ID,
			})))
		}
		c.visit(d.Name, scope)
		for _, ec := range d.Cases.All() {
			c.visit(ec, scope)
			if ec, ok := ec.(*EnumCase); ok {
				c.visit(ec.Name, scope)
			}
		}
		return scope

	case *NamespaceDeclaration:
		c.visit(d.Name, scope)
		members := d.Declarations.Slice()
		inner := c.hoist(members, scope)
		for _, m := range members {
			inner = c.declaration(m, inner)
		}
		// re-export everything the namespace added under its qualified name
		added := inner.Slice()[:inner.Len()-scope.Len()]
		c.tc.types[d.ID] = UnitType
		scope = scope.Prepend(Binding{Name: d.Name.Name, Kind: BindingNamespace, Type: UnitType, NodeID: d.ID})
		for i := len(added) - 1; i >= 0; i-- {
			b := added[i]
			b.Name = d.Name.Name + "." + b.Name
			scope = scope.Prepend(b)
		}
		return scope

	case *ImportDeclaration:
		c.visit(d.Name, scope)
		c.tc.types[d.ID] = UnitType
		if !slices.Contains(BuiltinNamespaces(), d.Name.Name) {
			c.fail(d.ID, &UnresolvedError{Name: d.Name.Name})
		}
		return scope

	case *DeclarationPlaceholder:
	}
	return scope
}

func (c *checker) expression(e Expression, scope Scope) Type {
	c.visit(e, scope)
	t := c.inferExpression(e, scope)
	c.tc.types[e.NodeID()] = t
	return t
}

func (c *checker) inferExpression(e Expression, scope Scope) Type {
	switch e := e.(type) {
	case *IdentifierExpression:
		c.visit(e.Identifier, scope)
		var t Type
		if e.Identifier.IsPlaceholder {
			t = c.fresh()
		} else if b, ok := c.lookup(e.Identifier.Name, scope); ok {
			t = b.Type
		} else {
			c.fail(e.ID, &UnresolvedError{Name: e.Identifier.Name})
			t = c.fresh()
		}
		c.tc.types[e.Identifier.ID] = t
		return t

	case *MemberExpression:
		c.visit(e.Member, scope)
		if name, ok := QualifiedName(e); ok {
			if b, ok := c.lookup(name, scope); ok {
				c.visitQualifier(e.Expression, scope)
				c.tc.types[e.Member.ID] = b.Type
				return b.Type
			}
		}
		base := c.tc.subs.Apply(c.expression(e.Expression, scope))
		if con, ok := base.(hm.Constructor); ok {
			if members, ok := c.tc.records[con.Named]; ok {
				for _, m := range members {
					if m.Name == e.Member.Name {
						c.tc.types[e.Member.ID] = m.Type
						return m.Type
					}
				}
			}
		}
		c.fail(e.ID, fmt.Errorf("%s has no member %s", base, e.Member.Name))
		return c.fresh()

	case *FunctionCallExpression:
		return c.call(e, scope)

	case *LiteralExpression:
		return c.literal(e.Literal, scope)

	case *BinaryExpression:
		lt := c.expression(e.Left, scope)
		rt := c.expression(e.Right, scope)
		c.visit(e.Operator, scope)
		c.tc.expected[e.Left.NodeID()] = rt
		c.tc.expected[e.Right.NodeID()] = lt
		c.unify(e.Right.NodeID(), lt, rt)
		result := UnitType
		if e.Operator.Op.IsComparison() {
			result = BooleanType
		} else if !assignable(e.Left) {
			c.fail(e.Left.NodeID(), fmt.Errorf("cannot assign to %s", Source(e.Left)))
		}
		c.tc.types[e.Operator.ID] = hm.NewFnType(hm.Types{lt, rt}, result)
		return result

	case *ExpressionPlaceholder:
		return c.fresh()

	default:
		panic(fmt.Sprintf("check: unknown expression %T", e))
	}
}

// visitQualifier records scopes for the namespace part of a qualified name,
// which has no type of its own.
func (c *checker) visitQualifier(e Expression, scope Scope) {
	Walk(e, func(n Node) bool {
		c.visit(n, scope)
		c.tc.types[n.NodeID()] = UnitType
		return true
	})
}

func assignable(e Expression) bool {
	switch e.(type) {
	case *IdentifierExpression, *MemberExpression, *ExpressionPlaceholder:
		return true
	}
	return false
}

func (c *checker) literal(l Literal, scope Scope) Type {
	c.visit(l, scope)
	var t Type
	switch l := l.(type) {
	case *NoneLiteral:
		t = OptionalType(c.fresh())
	case *BooleanLiteral:
		t = BooleanType
	case *NumberLiteral:
		t = NumberType
	case *StringLiteral:
		t = StringType
	case *ColorLiteral:
		if _, err := colorful.Hex(l.Value); err != nil {
			c.fail(l.ID, fmt.Errorf("invalid color %q: %w", l.Value, err))
		}
		t = ColorType
	case *ArrayLiteral:
		elem := c.fresh()
		for _, x := range l.Elements.All() {
			xt := c.expression(x, scope)
			c.tc.expected[x.NodeID()] = elem
			c.unify(x.NodeID(), elem, xt)
		}
		t = ArrayType(elem)
	}
	c.tc.types[l.NodeID()] = t
	return t
}

func (c *checker) call(e *FunctionCallExpression, scope Scope) Type {
	calleeType := c.expression(e.Expression, scope)
	name, _ := QualifiedName(e.Expression)
	if name == "" {
		name = Source(e.Expression)
	}

	var sig *Signature
	if qn, ok := QualifiedName(e.Expression); ok {
		if b, ok := c.lookup(qn, scope); ok {
			sig = b.Signature
		}
	}

	var args []*Argument
	for _, a := range e.Arguments.All() {
		c.visit(a, scope)
		if a, ok := a.(*Argument); ok {
			args = append(args, a)
			c.tc.types[a.ID] = c.expression(a.Expression, scope)
		}
	}

	ft, isFn := c.tc.subs.Apply(calleeType).(*hm.FunctionType)
	if sig == nil || !isFn || len(ft.Params()) != len(sig.Params) {
		ret := c.fresh()
		params := make(hm.Types, len(args))
		for i, a := range args {
			params[i] = c.tc.types[a.ID]
		}
		c.unify(e.ID, calleeType, hm.NewFnType(params, ret))
		return ret
	}

	assigned := make([]bool, len(sig.Params))
	next := 0
	for _, a := range args {
		idx := -1
		if a.Label != "" {
			idx = slices.IndexFunc(sig.Params, func(p SignatureParam) bool { return p.Label == a.Label })
			if idx == -1 {
				c.fail(a.ID, &ArgumentError{Function: name, Message: fmt.Sprintf("no parameter labelled %q", a.Label)})
				continue
			}
		} else {
			for next < len(assigned) && assigned[next] {
				next++
			}
			if next == len(assigned) {
				c.fail(a.ID, &ArgumentError{Function: name, Message: "too many arguments"})
				continue
			}
			idx = next
		}
		if assigned[idx] {
			c.fail(a.ID, &ArgumentError{Function: name, Message: fmt.Sprintf("duplicate argument %q", sig.Params[idx].Label)})
			continue
		}
		assigned[idx] = true
		pt := ft.Params()[idx]
		c.tc.expected[a.ID] = pt
		c.tc.expected[a.Expression.NodeID()] = pt
		c.unify(a.Expression.NodeID(), pt, c.tc.types[a.ID])
	}
	for i, p := range sig.Params {
		if !assigned[i] && !p.HasDefault {
			c.fail(e.ID, &ArgumentError{Function: name, Message: fmt.Sprintf("missing argument %q", p.Label)})
		}
	}
	return ft.Ret()
}
