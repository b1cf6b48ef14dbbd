package logic

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, program *Program) *Session {
	t.Helper()
	return NewSession(context.Background(), program, DefaultSessionOptions())
}

func activeID(t *testing.T, s *Session) ID {
	t.Helper()
	id, ok := s.Active()
	require.True(t, ok, "session is inactive")
	return id
}

func TestSessionCommit(t *testing.T) {
	ctx := context.Background()
	sc := newScenario()
	sess := newSession(t, sc.program)

	_, ok := sess.Active()
	assert.False(t, ok)
	assert.Nil(t, sess.Window())
	assert.Equal(t, -1, sess.Highlighted())

	require.NoError(t, sess.Activate(sc.left.Identifier.ID))
	require.NoError(t, sess.SetPrefix("ag"))
	assert.Equal(t, "ag", sess.Prefix())
	assert.Equal(t, 1, sess.Highlighted())
	assert.Equal(t, Range{26, 27}, sess.SelectedRange())

	w := sess.Window()
	require.NotNil(t, w)
	assert.Equal(t, "age: Number", w.Documentation)

	require.NoError(t, sess.CommitHighlighted(ctx))
	assert.NotSame(t, sc.program, sess.Program())
	assert.Equal(t, scenarioSource, sess.Projection().String())

	// the committed expression has no holes, so the cursor moves on
	assert.Equal(t, sess.Projection().Elements[28].NodeID, activeID(t, sess))
	assert.Equal(t, "", sess.Prefix())

	require.True(t, sess.Undo(ctx))
	assert.Same(t, sc.program, sess.Program())
	_, ok = sess.Active()
	assert.False(t, ok)
	assert.False(t, sess.Undo(ctx))
}

func TestSessionSelection(t *testing.T) {
	sc := newScenario()
	sess := newSession(t, sc.program)

	require.NoError(t, sess.Activate(sc.left.ID))
	require.NoError(t, sess.SetPrefix("ag"))
	list := sess.Suggestions()
	require.NotNil(t, list)

	require.NoError(t, sess.SelectNext())
	assert.Equal(t, rowIndex(list, "page"), sess.Highlighted())
	require.NoError(t, sess.SelectPrevious())
	assert.Equal(t, 1, sess.Highlighted())

	sess.Escape()
	assert.Nil(t, sess.Suggestions())
	assert.ErrorIs(t, sess.SelectNext(), ErrNotActive)
	assert.ErrorIs(t, sess.SelectPrevious(), ErrNotActive)
}

func TestSessionErrors(t *testing.T) {
	ctx := context.Background()
	sc := newScenario()
	sess := newSession(t, sc.program)

	assert.ErrorIs(t, sess.Activate(NewID()), ErrUnknownNode)
	assert.ErrorIs(t, sess.SetPrefix("x"), ErrNotActive)
	assert.ErrorIs(t, sess.Commit(ctx, 1), ErrNotActive)
	assert.ErrorIs(t, sess.ActivateElement(25), ErrUnknownNode, "punctuation cannot be activated")
	assert.Error(t, sess.ActivateElement(100))
	assert.Error(t, sess.ActivateLine(9))

	require.NoError(t, sess.Activate(sc.left.ID))
	require.NoError(t, sess.SetPrefix("ag"))
	assert.ErrorIs(t, sess.Commit(ctx, 0), ErrNotSelectable, "headers are not selectable")
	assert.ErrorIs(t, sess.Commit(ctx, rowIndex(sess.Suggestions(), `"ag"`)), ErrNotSelectable)
	assert.ErrorIs(t, sess.Commit(ctx, -1), ErrNotSelectable)
	assert.Same(t, sc.program, sess.Program(), "failed commits change nothing")
}

func TestSessionBreadcrumbs(t *testing.T) {
	sc := newScenario()
	sess := newSession(t, sc.program)
	assert.Nil(t, sess.Breadcrumbs())

	require.NoError(t, sess.Activate(sc.limit.ID))
	var names []string
	for _, c := range sess.Breadcrumbs() {
		names = append(names, c.Title)
	}
	assert.Equal(t, []string{"program", "branch", "binary expression", "literal expression"}, names)
	assert.Equal(t, sess.Breadcrumbs(), sess.Window().Breadcrumbs)

	require.NoError(t, sess.ActivateBreadcrumb(1))
	assert.Equal(t, sc.branch.ID, activeID(t, sess))
	assert.Equal(t, Range{24, 42}, sess.SelectedRange())

	assert.Error(t, sess.ActivateBreadcrumb(5))
}

func TestSessionElementNavigation(t *testing.T) {
	sc := newScenario()
	sess := newSession(t, sc.program)
	p := sess.Projection()

	require.NoError(t, sess.NextElement())
	assert.Equal(t, p.Elements[0].NodeID, activeID(t, sess))

	require.NoError(t, sess.Activate(sc.left.ID))
	require.NoError(t, sess.NextElement())
	assert.Equal(t, sc.condition.Operator.ID, activeID(t, sess))

	require.NoError(t, sess.Activate(sc.left.ID))
	require.NoError(t, sess.PreviousElement())
	assert.Equal(t, sc.branch.ID, activeID(t, sess))

	require.NoError(t, sess.ActivateLine(4))
	assert.Equal(t, p.Elements[35].NodeID, activeID(t, sess))
	assert.Equal(t, "text", p.Elements[35].Text)

	sess.Escape()
	require.NoError(t, sess.PreviousElement())
	assert.Equal(t, p.Elements[39].NodeID, activeID(t, sess))
}

func TestSessionState(t *testing.T) {
	sc := newScenario()
	sess := newSession(t, sc.program)

	st := sess.State()
	assert.Equal(t, scenarioSource, st.Text)
	assert.Empty(t, st.Errors)
	assert.Nil(t, st.Window)
	assert.Equal(t, Range{}, st.Selected)

	require.NoError(t, sess.Activate(sc.condition.ID))
	st = sess.State()
	assert.Equal(t, sc.condition.ID, st.Active)
	assert.Equal(t, Range{26, 31}, st.Selected)
	require.NotNil(t, st.Window)
	assert.Equal(t, sess.Highlighted(), st.Window.Selected)
	assert.Len(t, st.Elements, 43)
}

func TestSessionMoveStay(t *testing.T) {
	ctx := context.Background()
	sc := newScenario()
	sess := newSession(t, sc.program)

	require.NoError(t, sess.Activate(sc.condition.Operator.ID))
	list := sess.Suggestions()
	row := rowIndex(list, "is less than")
	require.GreaterOrEqual(t, row, 0)
	committed := list.Rows[row].Suggestion.Node

	require.NoError(t, sess.Commit(ctx, row))
	assert.Contains(t, sess.Projection().String(), "if (age < 17) {")
	assert.Equal(t, committed.NodeID(), activeID(t, sess), "operators stay active")
	assert.Empty(t, sess.Check().Errors())
}

func TestSessionFillsPlaceholders(t *testing.T) {
	ctx := context.Background()
	hole := NewStatementPlaceholder()
	sess := newSession(t, NewProgram(hole))

	require.NoError(t, sess.Activate(hole.ID))
	require.NoError(t, sess.SetPrefix("if"))
	row := rowIndex(sess.Suggestions(), "if")
	require.GreaterOrEqual(t, row, 0)
	require.NoError(t, sess.Commit(ctx, row))

	branch, ok := sess.Program().Block.Slice()[0].(*Branch)
	require.True(t, ok)
	assert.Equal(t, branch.Condition.NodeID(), activeID(t, sess), "the first hole is activated")
	assert.True(t, strings.HasPrefix(sess.Projection().String(), "if ("))

	sess.Load(ctx, NewProgram())
	_, ok = sess.Active()
	assert.False(t, ok)
	require.True(t, sess.Undo(ctx))
	assert.IsType(t, &Branch{}, sess.Program().Block.Slice()[0])
}

func TestDescribe(t *testing.T) {
	sc := newScenario()
	for _, tt := range []struct {
		node Node
		want string
	}{
		{sc.program, "program"},
		{sc.age, "variable declaration age"},
		{sc.left.Identifier, "identifier age"},
		{sc.condition.Operator, "binary operator >"},
		{NewFunctionCallExpression(NewIdentifierExpression("f")), "function call expression"},
		{NewPattern("item"), "pattern item"},
	} {
		assert.Equal(t, tt.want, Describe(tt.node))
	}
}
