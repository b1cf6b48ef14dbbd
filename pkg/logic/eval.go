package logic

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/pkg/errors"
	"github.com/vito/logic/pkg/hm"
	"github.com/vito/logic/pkg/ioctx"
)

// maxCallDepth bounds recursion through user functions.
const maxCallDepth = 512

// Env maps names to values. Lookups fall through to the parent.
type Env struct {
	parent *Env
	vars   map[string]LogicValue
}

func NewEnv() *Env {
	return &Env{vars: map[string]LogicValue{}}
}

// Child returns an empty env whose lookups fall through to e.
func (e *Env) Child() *Env {
	return &Env{parent: e, vars: map[string]LogicValue{}}
}

// Define binds a name in this env, shadowing any outer binding.
func (e *Env) Define(name string, v LogicValue) {
	e.vars[name] = v
}

func (e *Env) Get(name string) (LogicValue, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return LogicValue{}, false
}

// Assign rebinds the innermost existing binding of name.
func (e *Env) Assign(name string, v LogicValue) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return true
		}
	}
	return false
}

// Names lists the names bound directly in this env.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// Evaluation holds the results of running a program.
type Evaluation struct {
	values map[ID]LogicValue
	global *Env
}

// ValueOf returns the value an expression last evaluated to.
func (ev *Evaluation) ValueOf(id ID) (LogicValue, bool) {
	v, ok := ev.values[id]
	return v, ok
}

// Global returns a top-level binding after the program ran.
func (ev *Evaluation) Global(name string) (LogicValue, bool) {
	return ev.global.Get(name)
}

// Globals lists the top-level names.
func (ev *Evaluation) Globals() []string {
	return ev.global.Names()
}

// Evaluate runs a program. Programs with type errors are not run; the first
// error is returned. A nil check runs the type checker first.
func Evaluate(ctx context.Context, program *Program, check *TypeCheck) (*Evaluation, error) {
	if check == nil {
		check = Check(ctx, program)
	}
	if errs := check.Errors(); len(errs) > 0 {
		return nil, errors.Wrapf(errs[0], "%d type errors", len(errs))
	}
	ev := NewEvaluator(program, check)
	if _, err := ev.block(ctx, program.Block, ev.global); err != nil {
		return nil, err
	}
	ioctx.LoggerFromContext(ctx).Debug("evaluation completed",
		"values", len(ev.values),
		"globals", len(ev.global.vars))
	return &Evaluation{values: ev.values, global: ev.global}, nil
}

// Evaluator runs the statements of one program.
type Evaluator struct {
	program *Program
	check   *TypeCheck
	global  *Env
	values  map[ID]LogicValue
	// closures remembers the env each function was declared in
	closures map[ID]*Env
	depth    int
}

func NewEvaluator(program *Program, check *TypeCheck) *Evaluator {
	return &Evaluator{
		program:  program,
		check:    check,
		global:   NewEnv(),
		values:   map[ID]LogicValue{},
		closures: map[ID]*Env{},
	}
}

// flow carries the value of a return statement out of nested blocks.
type flow struct {
	returned bool
	value    LogicValue
}

func (ev *Evaluator) typeOf(id ID) Type {
	if ev.check != nil {
		if t, ok := ev.check.TypeOf(id); ok {
			return t
		}
	}
	return hm.TypeVariable("_")
}

func (ev *Evaluator) block(ctx context.Context, stmts List[Statement], env *Env) (flow, error) {
	var decls []Declaration
	for _, s := range stmts.All() {
		if ds, ok := s.(*DeclarationStatement); ok {
			decls = append(decls, ds.Content)
		}
	}
	if err := ev.hoist(ctx, decls, env); err != nil {
		return flow{}, err
	}
	for _, s := range stmts.All() {
		f, err := ev.statement(ctx, s, env)
		if err != nil || f.returned {
			return f, err
		}
	}
	return flow{}, nil
}

func (ev *Evaluator) hoist(ctx context.Context, decls []Declaration, env *Env) error {
	for _, d := range decls {
		switch d := d.(type) {
		case *RecordDeclaration:
			if err := ev.defineRecord(ctx, d, env); err != nil {
				return err
			}
		case *EnumerationDeclaration:
			ev.defineEnumeration(d, env)
		}
	}
	for _, d := range decls {
		if fn, ok := d.(*FunctionDeclaration); ok {
			ev.closures[fn.ID] = env
			env.Define(fn.Name.Name, FuncValue(ev.typeOf(fn.ID), Impl{DeclarationID: fn.ID}))
		}
	}
	return nil
}

func (ev *Evaluator) defineRecord(ctx context.Context, d *RecordDeclaration, env *Env) error {
	init := RecordInit{Record: d.Name.Name}
	for _, m := range d.Declarations.All() {
		v, ok := m.(*VariableDeclaration)
		if !ok {
			continue
		}
		member := Member{Name: v.Name.Name, Type: ev.typeOf(v.ID)}
		if v.Initializer != nil {
			def, err := ev.expression(ctx, v.Initializer, env)
			if err != nil {
				return errors.Wrapf(err, "default of %s.%s", d.Name.Name, v.Name.Name)
			}
			member.Default = &def
		}
		init.Members = append(init.Members, member)
	}
	env.Define(d.Name.Name, FuncValue(ev.typeOf(d.ID), init))
	return nil
}

func (ev *Evaluator) defineEnumeration(d *EnumerationDeclaration, env *Env) {
	for _, ec := range d.Cases.All() {
		ec, ok := ec.(*EnumCase)
		if !ok {
			continue
		}
		name := d.Name.Name + "." + ec.Name.Name
		if ec.AssociatedValueTypes.Len() == 0 {
			env.Define(name, NewEnum(d.Name.Name, ec.Name.Name))
			continue
		}
		init := EnumInit{Enum: d.Name.Name, Case: ec.Name.Name}
		for _, ta := range ec.AssociatedValueTypes.All() {
			init.Members = append(init.Members, Member{Type: ev.typeOf(ta.NodeID())})
		}
		env.Define(name, FuncValue(ev.typeOf(ec.ID), init))
	}
}

func (ev *Evaluator) statement(ctx context.Context, s Statement, env *Env) (flow, error) {
	switch s := s.(type) {
	case *Branch:
		cond, err := ev.expression(ctx, s.Condition, env)
		if err != nil {
			return flow{}, err
		}
		b, ok := cond.Memory.(Bool)
		if !ok {
			return flow{}, &EvalError{NodeID: s.Condition.NodeID(), Err: fmt.Errorf("condition is %s, not a boolean", cond)}
		}
		if b {
			return ev.block(ctx, s.Block, env.Child())
		}
		return flow{}, nil

	case *Loop:
		xs, err := ev.expression(ctx, s.Expression, env)
		if err != nil {
			return flow{}, err
		}
		arr, ok := xs.Memory.(Array)
		if !ok {
			return flow{}, &EvalError{NodeID: s.Expression.NodeID(), Err: fmt.Errorf("cannot loop over %s", xs)}
		}
		for _, x := range arr {
			if err := ctx.Err(); err != nil {
				return flow{}, err
			}
			inner := env.Child()
			inner.Define(s.Pattern.Name, x)
			f, err := ev.block(ctx, s.Block, inner)
			if err != nil || f.returned {
				return f, err
			}
		}
		return flow{}, nil

	case *DeclarationStatement:
		return flow{}, ev.declaration(ctx, s.Content, env)

	case *ExpressionStatement:
		_, err := ev.expression(ctx, s.Expression, env)
		return flow{}, err

	case *ReturnStatement:
		v, err := ev.expression(ctx, s.Expression, env)
		if err != nil {
			return flow{}, err
		}
		return flow{returned: true, value: v}, nil

	case *StatementPlaceholder:
		return flow{}, nil

	default:
		return flow{}, &EvalError{NodeID: s.NodeID(), Err: fmt.Errorf("unknown statement %T", s)}
	}
}

func (ev *Evaluator) declaration(ctx context.Context, d Declaration, env *Env) error {
	switch d := d.(type) {
	case *VariableDeclaration:
		var v LogicValue
		if d.Initializer != nil {
			var err error
			v, err = ev.expression(ctx, d.Initializer, env)
			if err != nil {
				return err
			}
		} else {
			v = NoneValue(ev.typeOf(d.ID))
		}
		env.Define(d.Name.Name, v)

	case *NamespaceDeclaration:
		inner := env.Child()
		members := d.Declarations.Slice()
		if err := ev.hoist(ctx, members, inner); err != nil {
			return err
		}
		for _, m := range members {
			if err := ev.declaration(ctx, m, inner); err != nil {
				return err
			}
		}
		for _, name := range inner.Names() {
			v, _ := inner.Get(name)
			env.Define(d.Name.Name+"."+name, v)
		}

	case *FunctionDeclaration, *RecordDeclaration, *EnumerationDeclaration:
		// bound when the enclosing block was hoisted

	case *ImportDeclaration, *DeclarationPlaceholder:
	}
	return nil
}

func (ev *Evaluator) expression(ctx context.Context, e Expression, env *Env) (LogicValue, error) {
	v, err := ev.evalExpression(ctx, e, env)
	if err != nil {
		return LogicValue{}, err
	}
	ev.values[e.NodeID()] = v
	return v, nil
}

func (ev *Evaluator) evalExpression(ctx context.Context, e Expression, env *Env) (LogicValue, error) {
	switch e := e.(type) {
	case *IdentifierExpression:
		return ev.lookup(e.ID, e.Identifier.Name, env)

	case *MemberExpression:
		if name, ok := QualifiedName(e); ok {
			if v, err := ev.lookup(e.ID, name, env); err == nil {
				return v, nil
			}
		}
		base, err := ev.expression(ctx, e.Expression, env)
		if err != nil {
			return LogicValue{}, err
		}
		rec, ok := base.Memory.(Record)
		if !ok {
			return LogicValue{}, &EvalError{NodeID: e.ID, Err: fmt.Errorf("%s has no member %s", base, e.Member.Name)}
		}
		m, ok := rec[e.Member.Name]
		if !ok || m == nil {
			return LogicValue{}, &EvalError{NodeID: e.ID, Err: fmt.Errorf("member %s is not set", e.Member.Name)}
		}
		return *m, nil

	case *FunctionCallExpression:
		return ev.call(ctx, e, env)

	case *LiteralExpression:
		return ev.literal(ctx, e, env)

	case *BinaryExpression:
		return ev.binary(ctx, e, env)

	case *ExpressionPlaceholder:
		return LogicValue{}, &EvalError{NodeID: e.ID, Err: fmt.Errorf("missing expression")}

	default:
		return LogicValue{}, &EvalError{NodeID: e.NodeID(), Err: fmt.Errorf("unknown expression %T", e)}
	}
}

// lookup resolves a name against the built-in table before the env.
func (ev *Evaluator) lookup(id ID, name string, env *Env) (LogicValue, error) {
	if def, ok := LookupBuiltin(name); ok {
		return FuncValue(def.Type(), BuiltinFunc{Name: def.Name}), nil
	}
	if v, ok := env.Get(name); ok {
		return v, nil
	}
	return LogicValue{}, &EvalError{NodeID: id, Err: &UnresolvedError{Name: name}}
}

func (ev *Evaluator) literal(ctx context.Context, e *LiteralExpression, env *Env) (LogicValue, error) {
	var v LogicValue
	switch l := e.Literal.(type) {
	case *NoneLiteral:
		elem, ok := elementType(ev.typeOf(l.ID))
		if !ok {
			elem = hm.TypeVariable("_")
		}
		v = NoneValue(elem)
	case *BooleanLiteral:
		v = BoolValue(l.Value)
	case *NumberLiteral:
		v = NumberValue(l.Value)
	case *StringLiteral:
		v = StringValue(l.Value)
	case *ColorLiteral:
		v = ColorValue(l.Value)
	case *ArrayLiteral:
		var xs []LogicValue
		for _, x := range l.Elements.All() {
			xv, err := ev.expression(ctx, x, env)
			if err != nil {
				return LogicValue{}, err
			}
			xs = append(xs, xv)
		}
		v = LogicValue{Type: ev.typeOf(l.ID), Memory: Array(xs)}
	default:
		return LogicValue{}, &EvalError{NodeID: e.ID, Err: fmt.Errorf("unknown literal %T", l)}
	}
	ev.values[e.Literal.NodeID()] = v
	return v, nil
}

func (ev *Evaluator) binary(ctx context.Context, e *BinaryExpression, env *Env) (LogicValue, error) {
	right, err := ev.expression(ctx, e.Right, env)
	if err != nil {
		return LogicValue{}, err
	}
	if e.Operator.Op == OpSetEqualTo {
		if err := ev.assign(ctx, e.Left, right, env); err != nil {
			return LogicValue{}, err
		}
		ev.values[e.Left.NodeID()] = right
		return UnitValue(), nil
	}
	left, err := ev.expression(ctx, e.Left, env)
	if err != nil {
		return LogicValue{}, err
	}
	switch e.Operator.Op {
	case OpIsEqualTo:
		return BoolValue(Equal(left, right)), nil
	case OpIsNotEqualTo:
		return BoolValue(!Equal(left, right)), nil
	}
	cmp, err := compare(left, right)
	if err != nil {
		return LogicValue{}, &EvalError{NodeID: e.ID, Err: err}
	}
	switch e.Operator.Op {
	case OpIsLessThan:
		return BoolValue(cmp < 0), nil
	case OpIsGreaterThan:
		return BoolValue(cmp > 0), nil
	case OpIsLessThanOrEqualTo:
		return BoolValue(cmp <= 0), nil
	case OpIsGreaterThanOrEqualTo:
		return BoolValue(cmp >= 0), nil
	}
	return LogicValue{}, &EvalError{NodeID: e.ID, Err: fmt.Errorf("unknown operator %s", e.Operator.Op)}
}

// assign stores a value through an identifier or a chain of record members.
// Records are copied on write so values captured earlier do not change.
func (ev *Evaluator) assign(ctx context.Context, target Expression, v LogicValue, env *Env) error {
	switch t := target.(type) {
	case *IdentifierExpression:
		if !env.Assign(t.Identifier.Name, v) {
			return &EvalError{NodeID: t.ID, Err: &UnresolvedError{Name: t.Identifier.Name}}
		}
		return nil
	case *MemberExpression:
		base, err := ev.expression(ctx, t.Expression, env)
		if err != nil {
			return err
		}
		rec, ok := base.Memory.(Record)
		if !ok {
			return &EvalError{NodeID: t.ID, Err: fmt.Errorf("cannot set member %s of %s", t.Member.Name, base)}
		}
		updated := maps.Clone(rec)
		updated[t.Member.Name] = &v
		return ev.assign(ctx, t.Expression, LogicValue{Type: base.Type, Memory: updated}, env)
	default:
		return &EvalError{NodeID: target.NodeID(), Err: fmt.Errorf("cannot assign to %s", Source(target))}
	}
}

func (ev *Evaluator) call(ctx context.Context, e *FunctionCallExpression, env *Env) (LogicValue, error) {
	callee, err := ev.expression(ctx, e.Expression, env)
	if err != nil {
		return LogicValue{}, err
	}
	fn, ok := callee.Memory.(Func)
	if !ok {
		return LogicValue{}, &EvalError{NodeID: e.ID, Err: fmt.Errorf("%s is not a function", callee)}
	}
	labels := ev.labels(fn.Function)

	args := make([]LogicValue, len(labels))
	next := 0
	for _, a := range e.Arguments.All() {
		a, ok := a.(*Argument)
		if !ok {
			continue
		}
		v, err := ev.expression(ctx, a.Expression, env)
		if err != nil {
			return LogicValue{}, err
		}
		idx := -1
		if a.Label != "" {
			idx = slices.Index(labels, a.Label)
		} else {
			for next < len(args) && !args[next].IsZero() {
				next++
			}
			if next < len(args) {
				idx = next
			}
		}
		if idx == -1 {
			if _, isConst := fn.Function.(ValueFunc); isConst {
				continue
			}
			return LogicValue{}, &EvalError{NodeID: a.ID, Err: &ArgumentError{
				Function: Source(e.Expression),
				Message:  fmt.Sprintf("unexpected argument %s", Source(a)),
			}}
		}
		args[idx] = v
	}

	v, err := ev.Apply(ctx, fn.Function, args)
	if err != nil {
		return LogicValue{}, &EvalError{NodeID: e.ID, Err: err}
	}
	return v, nil
}

// labels returns the parameter labels of a function in order. Enum case
// values are positional and have empty labels.
func (ev *Evaluator) labels(fn Function) []string {
	switch fn := fn.(type) {
	case BuiltinFunc:
		def, _ := LookupBuiltin(fn.Name)
		labels := make([]string, len(def.Params))
		for i, p := range def.Params {
			labels[i] = p.Label
		}
		return labels
	case EnumInit:
		return make([]string, len(fn.Members))
	case RecordInit:
		labels := make([]string, len(fn.Members))
		for i, m := range fn.Members {
			labels[i] = m.Name
		}
		return labels
	case Impl:
		decl, ok := ev.declarationOf(fn)
		if !ok {
			return nil
		}
		var labels []string
		for _, p := range decl.Parameters.All() {
			if p, ok := p.(*Parameter); ok {
				labels = append(labels, p.Name.Name)
			}
		}
		return labels
	}
	return nil
}

func (ev *Evaluator) declarationOf(fn Impl) (*FunctionDeclaration, bool) {
	n, ok := Find(ev.program, fn.DeclarationID)
	if !ok {
		return nil, false
	}
	decl, ok := n.(*FunctionDeclaration)
	return decl, ok
}

// Apply calls a function with arguments in parameter order. A zero
// LogicValue marks an omitted argument, which is replaced by the
// parameter's default.
func (ev *Evaluator) Apply(ctx context.Context, fn Function, args []LogicValue) (LogicValue, error) {
	switch fn := fn.(type) {
	case BuiltinFunc:
		def, ok := LookupBuiltin(fn.Name)
		if !ok {
			return LogicValue{}, &UnresolvedError{Name: fn.Name}
		}
		members := make([]Member, len(def.Params))
		for i, p := range def.Params {
			members[i] = Member{Name: p.Label, Type: p.Type, Default: p.Default}
		}
		values, err := withDefaults(def.Name, members, args)
		if err != nil {
			return LogicValue{}, err
		}
		for i, p := range def.Params {
			if !memoryFits(p.Type, values[i].Memory) {
				return LogicValue{}, &ArgumentError{
					Function: def.Name,
					Message:  fmt.Sprintf("argument %s: expected %s, got %s", p.Label, p.Type, describeMemory(values[i])),
				}
			}
		}
		ioctx.LoggerFromContext(ctx).Debug("calling builtin", "name", def.Name)
		return def.Impl(ctx, Args{params: def.Params, values: values})

	case EnumInit:
		values, err := withDefaults(fn.Enum+"."+fn.Case, fn.Members, args)
		if err != nil {
			return LogicValue{}, err
		}
		return NewEnum(fn.Enum, fn.Case, values...), nil

	case RecordInit:
		values, err := withDefaults(fn.Record, fn.Members, args)
		if err != nil {
			return LogicValue{}, err
		}
		rec := Record{}
		for i, m := range fn.Members {
			v := values[i]
			rec[m.Name] = &v
		}
		return NewRecord(fn.Record, rec), nil

	case Impl:
		return ev.applyImpl(ctx, fn, args)

	case ValueFunc:
		return fn.Value, nil

	default:
		return LogicValue{}, errors.Errorf("cannot apply %T", fn)
	}
}

// memoryFits reports whether a runtime value has the shape a parameter of
// type t expects. Type variables and user-declared types accept anything.
func memoryFits(t Type, m Memory) bool {
	con, ok := t.(hm.Constructor)
	if !ok {
		return true
	}
	switch con.Named {
	case "Unit":
		_, ok = m.(Unit)
	case "Boolean":
		_, ok = m.(Bool)
	case "Number":
		_, ok = m.(Number)
	case "String", "Color":
		_, ok = m.(String)
	case arrayTypeName:
		_, ok = m.(Array)
	}
	return ok
}

func describeMemory(v LogicValue) string {
	if v.Type != nil {
		return v.Type.String()
	}
	return fmt.Sprintf("%T", v.Memory)
}

func withDefaults(name string, members []Member, args []LogicValue) ([]LogicValue, error) {
	if len(args) > len(members) {
		return nil, &ArgumentError{
			Function: name,
			Message:  fmt.Sprintf("expected at most %d arguments, got %d", len(members), len(args)),
		}
	}
	values := make([]LogicValue, len(members))
	for i, m := range members {
		if i < len(args) && !args[i].IsZero() {
			values[i] = args[i]
			continue
		}
		if m.Default == nil {
			label := m.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			return nil, &ArgumentError{Function: name, Message: fmt.Sprintf("missing argument %s", label)}
		}
		values[i] = *m.Default
	}
	return values, nil
}

func (ev *Evaluator) applyImpl(ctx context.Context, fn Impl, args []LogicValue) (LogicValue, error) {
	decl, ok := ev.declarationOf(fn)
	if !ok {
		return LogicValue{}, &EvalError{NodeID: fn.DeclarationID, Err: fmt.Errorf("no function declaration")}
	}
	var params []*Parameter
	for _, p := range decl.Parameters.All() {
		if p, ok := p.(*Parameter); ok {
			params = append(params, p)
		}
	}
	if len(args) > len(params) {
		return LogicValue{}, &ArgumentError{
			Function: decl.Name.Name,
			Message:  fmt.Sprintf("expected at most %d arguments, got %d", len(params), len(args)),
		}
	}
	if ev.depth >= maxCallDepth {
		return LogicValue{}, &EvalError{NodeID: decl.ID, Err: fmt.Errorf("call depth exceeded %d", maxCallDepth)}
	}
	ev.depth++
	defer func() { ev.depth-- }()

	closure, ok := ev.closures[decl.ID]
	if !ok {
		closure = ev.global
	}
	env := closure.Child()
	for i, p := range params {
		if i < len(args) && !args[i].IsZero() {
			env.Define(p.Name.Name, args[i])
			continue
		}
		if p.DefaultValue == nil {
			return LogicValue{}, &ArgumentError{Function: decl.Name.Name, Message: fmt.Sprintf("missing argument %s", p.Name.Name)}
		}
		def, err := ev.expression(ctx, p.DefaultValue, env)
		if err != nil {
			return LogicValue{}, errors.Wrapf(err, "default of %s", p.Name.Name)
		}
		env.Define(p.Name.Name, def)
	}

	f, err := ev.block(ctx, decl.Block, env)
	if err != nil {
		return LogicValue{}, errors.Wrapf(err, "in %s", decl.Name.Name)
	}
	if !f.returned {
		return UnitValue(), nil
	}
	return f.value, nil
}
