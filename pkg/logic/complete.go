package logic

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/samber/lo"
	"github.com/vito/logic/pkg/hm"
)

// Movement says where the cursor goes after a suggestion is accepted.
type Movement string

const (
	// MoveNext advances to the first placeholder of the inserted node, or to
	// the next activatable element after it.
	MoveNext Movement = "next"
	// MoveStay re-activates the inserted node.
	MoveStay Movement = "stay"
)

// Suggestion is a candidate replacement for the activated node.
type Suggestion struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Detail        string   `json:"detail,omitempty"`
	Documentation string   `json:"documentation,omitempty"`
	Disabled      bool     `json:"disabled"`
	Movement      Movement `json:"movement"`
	Node          Node     `json:"node"`
}

// Row is either a category header or a suggestion.
type Row struct {
	Header     string      `json:"header,omitempty"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`
}

func (r Row) IsHeader() bool {
	return r.Suggestion == nil
}

// Selectable reports whether the row can be chosen.
func (r Row) Selectable() bool {
	return r.Suggestion != nil && !r.Suggestion.Disabled
}

// SuggestionList is the grouped, filtered result of Suggest.
type SuggestionList struct {
	// Target is the outermost node sharing the activated node's elements; it
	// is what an accepted suggestion replaces.
	Target Node   `json:"-"`
	Prefix string `json:"prefix"`
	Rows   []Row  `json:"rows"`
}

// Suggestions returns the suggestion rows without headers.
func (l *SuggestionList) Suggestions() []Suggestion {
	var out []Suggestion
	for _, r := range l.Rows {
		if r.Suggestion != nil {
			out = append(out, *r.Suggestion)
		}
	}
	return out
}

// DefaultIndex is the first selectable row, or -1.
func (l *SuggestionList) DefaultIndex() int {
	return slices.IndexFunc(l.Rows, Row.Selectable)
}

// NextSelectable finds the next selectable row after i, wrapping around.
func (l *SuggestionList) NextSelectable(i int) int {
	for step := 1; step <= len(l.Rows); step++ {
		j := (i + step) % len(l.Rows)
		if j < 0 {
			j += len(l.Rows)
		}
		if l.Rows[j].Selectable() {
			return j
		}
	}
	return -1
}

// PreviousSelectable finds the previous selectable row before i, wrapping
// around.
func (l *SuggestionList) PreviousSelectable(i int) int {
	n := len(l.Rows)
	for step := 1; step <= n; step++ {
		j := ((i-step)%n + n) % n
		if l.Rows[j].Selectable() {
			return j
		}
	}
	return -1
}

// SuggestOptions tunes filtering.
type SuggestOptions struct {
	// Fuzzy admits subsequence matches below substring matches.
	Fuzzy bool
	// Limit caps the number of suggestions; zero means no limit.
	Limit int
}

func DefaultSuggestOptions() SuggestOptions {
	return SuggestOptions{Fuzzy: true}
}

// Suggestion categories, in the order they are generated.
const (
	CategoryVariables    = "Variables"
	CategoryMembers      = "Members"
	CategoryFunctions    = "Functions"
	CategoryValues       = "Values"
	CategoryLiterals     = "Literals"
	CategoryComparisons  = "Comparisons"
	CategoryStatements   = "Statements"
	CategoryDeclarations = "Declarations"
	CategoryAssignments  = "Assignments"
	CategoryCalls        = "Calls"
	CategoryOperators    = "Operators"
	CategoryTypes        = "Types"
	CategoryNames        = "Names"
	CategoryParameters   = "Parameters"
	CategoryCases        = "Cases"
)

// Suggest computes the suggestions for the node with the given id, filtered
// by prefix. It never fails: an absent id yields an empty list. A nil check
// type checks tree first.
//
// Rows are grouped by category. Categories appear in the order of their
// best ranked suggestion and keep rank order inside, so with prefix "a" the
// substring match page sits with the prefix match age, above Array.at.
func Suggest(tree Node, check *TypeCheck, id ID, prefix string, opts SuggestOptions) *SuggestionList {
	list := &SuggestionList{Prefix: prefix}
	target, ok := TopNodeWithEqualElements(tree, id)
	if !ok {
		return list
	}
	list.Target = target
	if check == nil {
		if p, ok := tree.(*Program); ok {
			check = Check(context.Background(), p)
		} else {
			check = newTypeCheck()
		}
	}
	s := &suggester{tree: tree, check: check, target: target, prefix: prefix}
	candidates := s.candidates()
	list.Rows = group(rank(candidates, prefix, opts))
	return list
}

type suggester struct {
	tree   Node
	check  *TypeCheck
	target Node
	prefix string
}

func (s *suggester) candidates() []Suggestion {
	switch CategoryOf(s.target) {
	case CategoryStatement:
		return s.statements()
	case CategoryDeclaration:
		return s.declarations(false)
	case CategoryExpression:
		return s.expressions(s.target.NodeID())
	case CategoryFunctionCallArgument:
		return s.arguments()
	case CategoryLiteral:
		return s.literals(s.target.NodeID())
	case CategoryIdentifier:
		return s.identifiers()
	case CategoryPattern:
		return s.patterns()
	case CategoryBinaryOperator:
		return s.operators()
	case CategoryTypeAnnotation:
		return s.types()
	case CategoryFunctionParameter:
		return s.parameters()
	case CategoryEnumerationCase:
		return s.cases()
	default:
		return nil
	}
}

// fits reports whether a candidate of type t can fill the slot.
func (s *suggester) fits(slot ID, t Type) bool {
	expected, ok := s.check.ExpectedType(slot)
	if !ok || t == nil {
		return true
	}
	return s.check.Unifies(expected, t)
}

func (s *suggester) scope() Scope {
	return s.check.ScopeAt(s.target.NodeID())
}

func (s *suggester) resolve(t Type) string {
	return s.check.Resolve(t).String()
}

func (s *suggester) expressions(slot ID) []Suggestion {
	var out []Suggestion
	scope := s.scope()
	seen := map[string]bool{}

	for _, b := range scope.All() {
		if seen[b.Name] {
			continue
		}
		seen[b.Name] = true
		switch b.Kind {
		case BindingVariable, BindingParameter, BindingLoopVariable:
			out = append(out, Suggestion{
				Title:    b.Name,
				Category: CategoryVariables,
				Detail:   s.resolve(b.Type),
				Disabled: !s.fits(slot, b.Type),
				Movement: MoveNext,
				Node:     NewIdentifierExpression(b.Name),
			})
		}
	}

	for _, b := range scope.All() {
		if b.Kind != BindingVariable && b.Kind != BindingParameter && b.Kind != BindingLoopVariable {
			continue
		}
		con, ok := s.check.Resolve(b.Type).(hm.Constructor)
		if !ok {
			continue
		}
		members, _ := s.check.RecordMembers(con.Named)
		for _, m := range members {
			out = append(out, Suggestion{
				Title:    b.Name + "." + m.Name,
				Category: CategoryMembers,
				Detail:   s.resolve(m.Type),
				Disabled: !s.fits(slot, m.Type),
				Movement: MoveNext,
				Node:     NewMemberExpression(NewIdentifierExpression(b.Name), m.Name),
			})
		}
	}

	out = append(out, s.functions(slot, false)...)

	seen = map[string]bool{}
	for _, b := range scope.All() {
		if b.Kind != BindingEnumCase || b.Callable() || seen[b.Name] {
			continue
		}
		seen[b.Name] = true
		out = append(out, Suggestion{
			Title:    b.Name,
			Category: CategoryValues,
			Detail:   s.resolve(b.Type),
			Disabled: !s.fits(slot, b.Type),
			Movement: MoveNext,
			Node:     NewQualifiedExpression(b.Name),
		})
	}

	for _, lit := range s.literals(slot) {
		lit.Node = NewLiteralExpression(lit.Node.(Literal))
		out = append(out, lit)
	}

	out = append(out, s.comparisons(slot)...)
	return out
}

// functions suggests calls with a placeholder for every required argument.
// With unitOnly set, only calls usable as statements are kept.
func (s *suggester) functions(slot ID, unitOnly bool) []Suggestion {
	var out []Suggestion
	category := CategoryFunctions
	if unitOnly {
		category = CategoryCalls
	}
	add := func(name string, ft *hm.FunctionType, sig *Signature, doc string) {
		if unitOnly && !s.check.Unifies(UnitType, ft.Ret()) {
			return
		}
		var args []FunctionCallArgument
		for _, p := range sig.Params {
			if !p.HasDefault {
				args = append(args, NewArgument(p.Label, NewExpressionPlaceholder()))
			}
		}
		var node Node = NewFunctionCallExpression(NewQualifiedExpression(name), args...)
		if unitOnly {
			node = NewExpressionStatement(node.(Expression))
		}
		out = append(out, Suggestion{
			Title:         name,
			Category:      category,
			Detail:        s.resolve(ft),
			Documentation: doc,
			Disabled:      !unitOnly && !s.fits(slot, ft.Ret()),
			Movement:      MoveNext,
			Node:          node,
		})
	}

	seen := map[string]bool{}
	for _, b := range s.scope().All() {
		if !b.Callable() || seen[b.Name] {
			continue
		}
		seen[b.Name] = true
		ft, ok := s.check.Resolve(b.Type).(*hm.FunctionType)
		if !ok {
			continue
		}
		add(b.Name, ft, b.Signature, fmt.Sprintf("%s: %s", b.Kind, s.resolve(ft)))
	}

	for _, def := range Builtins() {
		if seen[def.Name] {
			continue
		}
		ft := hm.Instantiate(freshFrom(s.check), def.Scheme()).(*hm.FunctionType)
		sig := &Signature{}
		for i, p := range def.Params {
			sig.Params = append(sig.Params, SignatureParam{Label: p.Label, Type: ft.Params()[i], HasDefault: p.Default != nil})
		}
		add(def.Name, ft, sig, def.Signature()+"\n\n"+def.Doc)
	}
	return out
}

type checkFresher struct{ tc *TypeCheck }

func (f checkFresher) Fresh() hm.TypeVariable { return f.tc.Fresh() }

func freshFrom(tc *TypeCheck) hm.Fresher {
	return checkFresher{tc}
}

func (s *suggester) literals(slot ID) []Suggestion {
	lit := func(title string, l Literal, t Type) Suggestion {
		return Suggestion{
			Title:    title,
			Category: CategoryLiterals,
			Detail:   s.resolve(t),
			Disabled: !s.fits(slot, t),
			Movement: MoveNext,
			Node:     l,
		}
	}
	var out []Suggestion
	if n, err := strconv.ParseFloat(s.prefix, 64); err == nil {
		out = append(out, lit(FormatNumber(n), NewNumberLiteral(n), NumberType))
	}
	if strings.HasPrefix(s.prefix, "#") {
		out = append(out, lit(s.prefix, NewColorLiteral(s.prefix), ColorType))
	}
	out = append(out,
		lit("true", NewBooleanLiteral(true), BooleanType),
		lit("false", NewBooleanLiteral(false), BooleanType),
	)
	if s.prefix != "" {
		out = append(out, lit(strconv.Quote(s.prefix), NewStringLiteral(s.prefix), StringType))
	} else {
		out = append(out,
			lit("0", NewNumberLiteral(0), NumberType),
			lit(`""`, NewStringLiteral(""), StringType),
			lit("#000000", NewColorLiteral("#000000"), ColorType),
		)
	}
	elem := s.check.Fresh()
	out = append(out,
		lit("none", NewNoneLiteral(), OptionalType(elem)),
		lit("[]", NewArrayLiteral(NewExpressionPlaceholder()), ArrayType(elem)),
	)
	return out
}

// comparisons wrap the target, when it is a filled expression, as the left
// operand of each comparison.
func (s *suggester) comparisons(slot ID) []Suggestion {
	var left Expression = NewExpressionPlaceholder()
	if e, ok := s.target.(Expression); ok {
		if _, isPlaceholder := e.(*ExpressionPlaceholder); !isPlaceholder {
			left = e
		}
	}
	var out []Suggestion
	for _, op := range Operators {
		if !op.IsComparison() {
			continue
		}
		out = append(out, Suggestion{
			Title:    operatorTitle(op),
			Category: CategoryComparisons,
			Detail:   op.Symbol(),
			Disabled: !s.fits(slot, BooleanType),
			Movement: MoveNext,
			Node:     NewBinaryExpression(left, op, NewExpressionPlaceholder()),
		})
	}
	return out
}

func operatorTitle(op Operator) string {
	return strcase.ToDelimited(string(op), ' ')
}

func (s *suggester) statements() []Suggestion {
	out := []Suggestion{
		{
			Title:    "if",
			Category: CategoryStatements,
			Detail:   "branch",
			Movement: MoveNext,
			Node:     NewBranch(NewExpressionPlaceholder(), NewStatementPlaceholder()),
		},
		{
			Title:    "for",
			Category: CategoryStatements,
			Detail:   "loop",
			Movement: MoveNext,
			Node:     NewLoop(NewPattern("item"), NewExpressionPlaceholder(), NewStatementPlaceholder()),
		},
		{
			Title:    "return",
			Category: CategoryStatements,
			Disabled: !s.check.InFunction(s.target.NodeID()),
			Movement: MoveNext,
			Node:     NewReturnStatement(NewExpressionPlaceholder()),
		},
	}
	for _, d := range s.declarations(true) {
		d.Node = NewDeclarationStatement(d.Node.(Declaration))
		out = append(out, d)
	}

	seen := map[string]bool{}
	for _, b := range s.scope().All() {
		if seen[b.Name] {
			continue
		}
		seen[b.Name] = true
		if b.Kind != BindingVariable && b.Kind != BindingParameter {
			continue
		}
		out = append(out, Suggestion{
			Title:    b.Name + " =",
			Category: CategoryAssignments,
			Detail:   s.resolve(b.Type),
			Movement: MoveNext,
			Node: NewExpressionStatement(NewBinaryExpression(
				NewIdentifierExpression(b.Name),
				OpSetEqualTo,
				NewExpressionPlaceholder(),
			)),
		})
	}
	out = append(out, s.functions(s.target.NodeID(), true)...)
	return out
}

func (s *suggester) declarations(topLevel bool) []Suggestion {
	decl := func(title string, d Declaration) Suggestion {
		return Suggestion{Title: title, Category: CategoryDeclarations, Movement: MoveNext, Node: d}
	}
	name := "name"
	typeName := "Name"
	if s.prefix != "" {
		name = strcase.ToLowerCamel(s.prefix)
		typeName = strcase.ToCamel(s.prefix)
	}
	out := []Suggestion{
		decl("let", NewVariableDeclaration(name, NewTypeAnnotationPlaceholder(), NewExpressionPlaceholder())),
		decl("func", NewFunctionDeclaration(name, nil, NewTypeIdentifier("Unit"), NewStatementPlaceholder())),
		decl("record", NewRecordDeclaration(typeName, NewDeclarationPlaceholder())),
		decl("enum", NewEnumerationDeclaration(typeName, NewEnumerationCasePlaceholder())),
		decl("namespace", NewNamespaceDeclaration(typeName, NewDeclarationPlaceholder())),
	}
	if topLevel {
		for _, ns := range BuiltinNamespaces() {
			out = append(out, decl("import "+ns, NewImportDeclaration(ns)))
		}
	}
	return out
}

func (s *suggester) arguments() []Suggestion {
	label := ""
	if a, ok := s.target.(*Argument); ok {
		label = a.Label
	}
	var out []Suggestion
	for _, e := range s.expressions(s.target.NodeID()) {
		e.Node = NewArgument(label, e.Node.(Expression))
		out = append(out, e)
	}
	return out
}

func (s *suggester) identifiers() []Suggestion {
	var out []Suggestion
	seen := map[string]bool{}
	for _, b := range s.scope().All() {
		if seen[b.Name] {
			continue
		}
		seen[b.Name] = true
		out = append(out, Suggestion{
			Title:    b.Name,
			Category: CategoryVariables,
			Detail:   s.resolve(b.Type),
			Movement: MoveNext,
			Node:     NewIdentifier(b.Name),
		})
	}
	return out
}

func (s *suggester) patterns() []Suggestion {
	if s.prefix == "" {
		return nil
	}
	return []Suggestion{{
		Title:    s.prefix,
		Category: CategoryNames,
		Movement: MoveNext,
		Node:     NewPattern(s.prefix),
	}}
}

func (s *suggester) operators() []Suggestion {
	// assignment only makes sense where a statement is expected
	comparisonOnly := false
	if parent, ok := Parent(s.tree, s.target.NodeID()); ok {
		if grand, ok := Parent(s.tree, parent.NodeID()); ok {
			_, isStatement := grand.(*ExpressionStatement)
			comparisonOnly = !isStatement
		}
	}
	var out []Suggestion
	for _, op := range Operators {
		out = append(out, Suggestion{
			Title:    operatorTitle(op),
			Category: CategoryOperators,
			Detail:   op.Symbol(),
			Disabled: comparisonOnly && !op.IsComparison(),
			Movement: MoveStay,
			Node:     NewBinaryOperator(op),
		})
	}
	return out
}

func (s *suggester) types() []Suggestion {
	ty := func(title string, ta TypeAnnotation) Suggestion {
		return Suggestion{Title: title, Category: CategoryTypes, Movement: MoveNext, Node: ta}
	}
	var out []Suggestion
	for _, name := range BuiltinTypeNames() {
		args := make([]TypeAnnotation, builtinTypeArity[name])
		for i := range args {
			args[i] = NewTypeAnnotationPlaceholder()
		}
		out = append(out, ty(name, NewTypeIdentifier(name, args...)))
	}
	seen := map[string]bool{}
	for _, b := range s.scope().All() {
		if (b.Kind != BindingRecord && b.Kind != BindingEnumeration) || seen[b.Name] {
			continue
		}
		seen[b.Name] = true
		out = append(out, ty(b.Name, NewTypeIdentifier(b.Name)))
	}
	out = append(out, ty("Function", NewFunctionTypeAnnotation(NewTypeAnnotationPlaceholder(), NewTypeAnnotationPlaceholder())))
	return out
}

func (s *suggester) parameters() []Suggestion {
	name := "name"
	if s.prefix != "" {
		name = strcase.ToLowerCamel(s.prefix)
	}
	return []Suggestion{{
		Title:    name,
		Category: CategoryParameters,
		Movement: MoveNext,
		Node:     NewParameter(name, NewTypeAnnotationPlaceholder(), nil),
	}}
}

func (s *suggester) cases() []Suggestion {
	if s.prefix == "" {
		return nil
	}
	name := strcase.ToLowerCamel(s.prefix)
	return []Suggestion{
		{Title: name, Category: CategoryCases, Movement: MoveNext, Node: NewEnumCase(name)},
		{Title: name + "(…)", Category: CategoryCases, Movement: MoveNext, Node: NewEnumCase(name, NewTypeAnnotationPlaceholder())},
	}
}

// matchClass ranks how title matches prefix: 0 for a prefix match, 1 for a
// substring match, 2 for a subsequence match, and -1 for no match. Matching
// ignores case.
func matchClass(title, prefix string, fuzzy bool) int {
	if prefix == "" {
		return 0
	}
	t, p := strings.ToLower(title), strings.ToLower(prefix)
	switch {
	case strings.HasPrefix(t, p):
		return 0
	case strings.Contains(t, p):
		return 1
	case fuzzy && isSubsequence(t, p):
		return 2
	}
	return -1
}

func isSubsequence(s, sub string) bool {
	rs := []rune(sub)
	i := 0
	for _, r := range s {
		if i < len(rs) && r == rs[i] {
			i++
		}
	}
	return i == len(rs)
}

// rank drops candidates that do not match and orders the rest by match
// class, keeping generation order within a class.
func rank(candidates []Suggestion, prefix string, opts SuggestOptions) []Suggestion {
	type ranked struct {
		Suggestion
		class int
	}
	matched := lo.FilterMap(candidates, func(s Suggestion, _ int) (ranked, bool) {
		class := matchClass(s.Title, prefix, opts.Fuzzy)
		return ranked{s, class}, class >= 0
	})
	slices.SortStableFunc(matched, func(a, b ranked) int {
		return a.class - b.class
	})
	out := lo.Map(matched, func(r ranked, _ int) Suggestion {
		return r.Suggestion
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// group interleaves a header before each category, categories ordered by
// their best ranked member. Ranking only orders within a category: a weak
// match in an earlier category still precedes a strong one in a later
// category.
func group(suggestions []Suggestion) []Row {
	categories := lo.Uniq(lo.Map(suggestions, func(s Suggestion, _ int) string {
		return s.Category
	}))
	var rows []Row
	for _, category := range categories {
		rows = append(rows, Row{Header: category})
		for _, s := range lo.Filter(suggestions, func(s Suggestion, _ int) bool {
			return s.Category == category
		}) {
			rows = append(rows, Row{Suggestion: &s})
		}
	}
	return rows
}
