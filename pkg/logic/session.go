package logic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/vito/logic/pkg/ioctx"
)

var (
	ErrNotActive     = errors.New("no node is active")
	ErrUnknownNode   = errors.New("node is not in the program")
	ErrNotSelectable = errors.New("row cannot be selected")
)

// SessionOptions configure a Session.
type SessionOptions struct {
	Format  FormatOptions
	Suggest SuggestOptions
}

func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Format:  DefaultFormatOptions(),
		Suggest: DefaultSuggestOptions(),
	}
}

// Session owns the current program of one editor and the activation state
// of its suggestion window. It is either inactive or active on one node with
// a prefix. The program is only ever swapped wholesale.
type Session struct {
	opts   SessionOptions
	logger *slog.Logger

	program    *Program
	projection *Projection
	check      *TypeCheck
	history    []*Program

	active      bool
	activeID    ID
	prefix      string
	suggestions *SuggestionList
	highlighted int
}

func NewSession(ctx context.Context, program *Program, opts SessionOptions) *Session {
	s := &Session{
		opts:   opts,
		logger: ioctx.LoggerFromContext(ctx),
	}
	s.load(ctx, program)
	return s
}

func (s *Session) load(ctx context.Context, program *Program) {
	s.program = program
	s.projection = FormatWithOptions(program, s.opts.Format)
	s.check = Check(ctx, program)
}

// Load replaces the program and deactivates. The previous program is kept
// for Undo.
func (s *Session) Load(ctx context.Context, program *Program) {
	s.history = append(s.history, s.program)
	s.load(ctx, program)
	s.Escape()
}

func (s *Session) Program() *Program { return s.program }

func (s *Session) Projection() *Projection { return s.projection }

func (s *Session) Check() *TypeCheck { return s.check }

// Active returns the active node, if any.
func (s *Session) Active() (ID, bool) {
	return s.activeID, s.active
}

func (s *Session) Prefix() string { return s.prefix }

// Suggestions returns the current list, or nil when inactive.
func (s *Session) Suggestions() *SuggestionList {
	if !s.active {
		return nil
	}
	return s.suggestions
}

// Highlighted returns the index of the highlighted row, or -1.
func (s *Session) Highlighted() int {
	if !s.active {
		return -1
	}
	return s.highlighted
}

// Activate starts editing the node with the given identity, with an empty
// prefix.
func (s *Session) Activate(id ID) error {
	if _, ok := s.projection.ElementRange(id); !ok {
		return fmt.Errorf("activate %s: %w", id, ErrUnknownNode)
	}
	s.active = true
	s.activeID = id
	s.prefix = ""
	s.recompute()
	s.logger.Debug("activated", "id", id, "suggestions", len(s.suggestions.Rows))
	return nil
}

// ActivateElement activates the node drawn by the element at index.
func (s *Session) ActivateElement(index int) error {
	if index < 0 || index >= len(s.projection.Elements) {
		return fmt.Errorf("element %d out of range", index)
	}
	e := s.projection.Elements[index]
	if !e.Activatable() {
		return fmt.Errorf("element %d: %w", index, ErrUnknownNode)
	}
	return s.Activate(e.NodeID)
}

// ActivateLine activates the first activatable element on a line.
func (s *Session) ActivateLine(line int) error {
	i, ok := s.projection.FirstActivatableOnLine(line)
	if !ok {
		return fmt.Errorf("line %d has no activatable element", line)
	}
	return s.ActivateElement(i)
}

// SetPrefix changes the filter text and recomputes the suggestions.
func (s *Session) SetPrefix(prefix string) error {
	if !s.active {
		return ErrNotActive
	}
	s.prefix = prefix
	s.recompute()
	return nil
}

func (s *Session) recompute() {
	s.suggestions = Suggest(s.program, s.check, s.activeID, s.prefix, s.opts.Suggest)
	s.highlighted = s.suggestions.DefaultIndex()
}

// SelectNext highlights the next selectable row.
func (s *Session) SelectNext() error {
	if !s.active {
		return ErrNotActive
	}
	if next := s.suggestions.NextSelectable(s.highlighted); next >= 0 {
		s.highlighted = next
	}
	return nil
}

// SelectPrevious highlights the previous selectable row.
func (s *Session) SelectPrevious() error {
	if !s.active {
		return ErrNotActive
	}
	if prev := s.suggestions.PreviousSelectable(s.highlighted); prev >= 0 {
		s.highlighted = prev
	}
	return nil
}

// CommitHighlighted commits the highlighted row.
func (s *Session) CommitHighlighted(ctx context.Context) error {
	return s.Commit(ctx, s.Highlighted())
}

// Commit replaces the target of the suggestion list with the node of the
// given row. The session then follows the row's movement policy, or becomes
// inactive when there is nowhere to go.
func (s *Session) Commit(ctx context.Context, row int) error {
	if !s.active {
		return ErrNotActive
	}
	if row < 0 || row >= len(s.suggestions.Rows) || !s.suggestions.Rows[row].Selectable() {
		return fmt.Errorf("row %d: %w", row, ErrNotSelectable)
	}
	suggestion := s.suggestions.Rows[row].Suggestion
	target := s.suggestions.Target

	updated := s.program.Replace(target.NodeID(), suggestion.Node)
	if updated == s.program {
		return fmt.Errorf("cannot replace %s with %s", CategoryOf(target), CategoryOf(suggestion.Node))
	}
	s.history = append(s.history, s.program)
	s.load(ctx, updated)
	s.Escape()

	s.logger.Debug("committed",
		"target", target.NodeID(),
		"title", suggestion.Title,
		"movement", suggestion.Movement)

	switch suggestion.Movement {
	case MoveStay:
		return s.Activate(suggestion.Node.NodeID())
	case MoveNext:
		if id, ok := firstPlaceholder(suggestion.Node); ok {
			return s.Activate(id)
		}
		r, _ := s.projection.ElementRange(suggestion.Node.NodeID())
		if i, ok := s.projection.NextActivatableIndex(r.End - 1); ok {
			return s.ActivateElement(i)
		}
	}
	return nil
}

// Escape deactivates without changing the program.
func (s *Session) Escape() {
	s.active = false
	s.activeID = ""
	s.prefix = ""
	s.suggestions = nil
	s.highlighted = -1
}

// Undo restores the program before the last commit or load.
func (s *Session) Undo(ctx context.Context) bool {
	if len(s.history) == 0 {
		return false
	}
	prev := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.load(ctx, prev)
	s.Escape()
	return true
}

// Breadcrumb describes an ancestor of the suggestion target.
type Breadcrumb struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

// Breadcrumbs lists the ancestors of the target, root first, ending with
// the target itself.
func (s *Session) Breadcrumbs() []Breadcrumb {
	if !s.active || s.suggestions.Target == nil {
		return nil
	}
	var crumbs []Breadcrumb
	for _, n := range PathTo(s.program, s.suggestions.Target.NodeID()) {
		crumbs = append(crumbs, Breadcrumb{ID: n.NodeID(), Title: Describe(n)})
	}
	return crumbs
}

// ActivateBreadcrumb activates the i-th ancestor listed by Breadcrumbs.
func (s *Session) ActivateBreadcrumb(i int) error {
	crumbs := s.Breadcrumbs()
	if i < 0 || i >= len(crumbs) {
		return fmt.Errorf("breadcrumb %d out of range", i)
	}
	return s.Activate(crumbs[i].ID)
}

// NextElement activates the first activatable element after the active
// node, or the first one in the program when inactive.
func (s *Session) NextElement() error {
	after := -1
	if s.active {
		r, _ := s.projection.ElementRange(s.activeID)
		after = r.End - 1
	}
	i, ok := s.projection.NextActivatableIndex(after)
	if !ok {
		s.Escape()
		return nil
	}
	return s.ActivateElement(i)
}

// PreviousElement activates the last activatable element before the active
// node, or the last one in the program when inactive.
func (s *Session) PreviousElement() error {
	before := len(s.projection.Elements)
	if s.active {
		r, _ := s.projection.ElementRange(s.activeID)
		before = r.Start
	}
	i, ok := s.projection.PreviousActivatableIndex(before)
	if !ok {
		s.Escape()
		return nil
	}
	return s.ActivateElement(i)
}

// SelectedRange is the element range drawn as selected: the suggestion
// target's range while active.
func (s *Session) SelectedRange() Range {
	if !s.active || s.suggestions.Target == nil {
		return Range{}
	}
	r, _ := s.projection.ElementRange(s.suggestions.Target.NodeID())
	return r
}

// Window is the payload of the suggestion window.
type Window struct {
	Rows          []Row        `json:"rows"`
	Selected      int          `json:"selected"`
	Breadcrumbs   []Breadcrumb `json:"breadcrumbs"`
	Documentation string       `json:"documentation,omitempty"`
}

// Window returns the suggestion window contents, or nil when inactive.
func (s *Session) Window() *Window {
	if !s.active {
		return nil
	}
	w := &Window{
		Rows:        s.suggestions.Rows,
		Selected:    s.highlighted,
		Breadcrumbs: s.Breadcrumbs(),
	}
	if s.highlighted >= 0 {
		sug := s.suggestions.Rows[s.highlighted].Suggestion
		w.Documentation = sug.Documentation
		if w.Documentation == "" && sug.Detail != "" {
			w.Documentation = sug.Title + ": " + sug.Detail
		}
	}
	return w
}

// State is everything a view needs to redraw.
type State struct {
	Program  *Program  `json:"program"`
	Elements []Element `json:"elements"`
	Text     string    `json:"text"`
	Selected Range     `json:"selected"`
	Active   ID        `json:"active,omitempty"`
	Prefix   string    `json:"prefix,omitempty"`
	Window   *Window   `json:"window,omitempty"`
	Errors   []string  `json:"errors,omitempty"`
}

func (s *Session) State() State {
	st := State{
		Program:  s.program,
		Elements: s.projection.Elements,
		Text:     s.projection.String(),
		Selected: s.SelectedRange(),
		Active:   s.activeID,
		Prefix:   s.prefix,
		Window:   s.Window(),
	}
	for _, err := range s.check.Errors() {
		st.Errors = append(st.Errors, err.Error())
	}
	return st
}

// IsPlaceholder reports whether a node is an unfilled slot.
func IsPlaceholder(n Node) bool {
	switch n := n.(type) {
	case *StatementPlaceholder, *DeclarationPlaceholder, *ExpressionPlaceholder,
		*TypeAnnotationPlaceholder, *ParameterPlaceholder, *ArgumentPlaceholder,
		*EnumerationCasePlaceholder:
		return true
	case *Identifier:
		return n.IsPlaceholder
	}
	return false
}

func firstPlaceholder(n Node) (ID, bool) {
	var found ID
	Walk(n, func(c Node) bool {
		if found != "" {
			return false
		}
		if IsPlaceholder(c) {
			found = c.NodeID()
			return false
		}
		return true
	})
	return found, found != ""
}

// Describe names a node for breadcrumbs, e.g. "function call expression".
func Describe(n Node) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", n), "*logic.")
	desc := strcase.ToDelimited(name, ' ')
	if label, ok := describeLabel(n); ok {
		desc += " " + label
	}
	return desc
}

func describeLabel(n Node) (string, bool) {
	switch n := n.(type) {
	case Declaration:
		return DeclaredName(n)
	case *Identifier:
		return n.Name, !n.IsPlaceholder
	case *Pattern:
		return n.Name, true
	case *BinaryOperator:
		return n.Op.Symbol(), true
	}
	return "", false
}
