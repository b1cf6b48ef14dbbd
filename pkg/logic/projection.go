package logic

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Range is a half-open interval of element indices.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Len() int { return r.End - r.Start }

func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// Line is the half-open element range of one visual line, excluding its
// line break.
type Line = Range

// Projection is the formatted element sequence of a tree together with the
// range each node occupies in it.
type Projection struct {
	Elements []Element

	root   Node
	ranges map[ID]Range
	lines  []Line
}

func newProjection(root Node, elements []Element, ranges map[ID]Range) *Projection {
	p := &Projection{Elements: elements, root: root, ranges: ranges}
	start := 0
	for i, e := range elements {
		if e.Kind == LineBreakElement {
			p.lines = append(p.lines, Line{Start: start, End: i})
			start = i + 1
		}
	}
	if start < len(elements) {
		p.lines = append(p.lines, Line{Start: start, End: len(elements)})
	}
	return p
}

// Root is the tree the projection was built from.
func (p *Projection) Root() Node {
	return p.root
}

// ElementRange returns the elements covering the node with the given
// identity.
func (p *Projection) ElementRange(id ID) (Range, bool) {
	r, ok := p.ranges[id]
	return r, ok
}

// TopNode walks up from the node with the given identity while the ancestor
// covers exactly the same elements, and returns the outermost such node.
func (p *Projection) TopNode(id ID) (Node, bool) {
	path := PathTo(p.root, id)
	if len(path) == 0 {
		return nil, false
	}
	leaf := path[len(path)-1]
	want := p.ranges[id]
	top := leaf
	for i := len(path) - 2; i >= 0; i-- {
		if p.ranges[path[i].NodeID()] != want {
			break
		}
		top = path[i]
	}
	return top, true
}

// NextActivatableIndex returns the first activatable element after the given
// index. Pass -1 to search from the beginning.
func (p *Projection) NextActivatableIndex(after int) (int, bool) {
	for i := max(after+1, 0); i < len(p.Elements); i++ {
		if p.Elements[i].Activatable() {
			return i, true
		}
	}
	return -1, false
}

// PreviousActivatableIndex returns the last activatable element before the
// given index. Pass len(Elements) to search from the end.
func (p *Projection) PreviousActivatableIndex(before int) (int, bool) {
	for i := min(before, len(p.Elements)) - 1; i >= 0; i-- {
		if p.Elements[i].Activatable() {
			return i, true
		}
	}
	return -1, false
}

// Lines returns the element range of each visual line.
func (p *Projection) Lines() []Line {
	return p.lines
}

// LineOf returns the line containing the element at index.
func (p *Projection) LineOf(index int) (int, bool) {
	for i, l := range p.lines {
		if index >= l.Start && index <= l.End {
			return i, true
		}
	}
	return -1, false
}

// ElementAt maps a display column on a line to the element drawn there.
// Columns are counted in terminal cells.
func (p *Projection) ElementAt(line, column int) (int, bool) {
	if line < 0 || line >= len(p.lines) || column < 0 {
		return -1, false
	}
	col := 0
	l := p.lines[line]
	for i := l.Start; i < l.End; i++ {
		w := ansi.StringWidth(p.Elements[i].Text)
		if column < col+w {
			return i, true
		}
		col += w
	}
	return -1, false
}

// FirstActivatableOnLine returns the first element on the line that maps to
// a node.
func (p *Projection) FirstActivatableOnLine(line int) (int, bool) {
	if line < 0 || line >= len(p.lines) {
		return -1, false
	}
	l := p.lines[line]
	for i := l.Start; i < l.End; i++ {
		if p.Elements[i].Activatable() {
			return i, true
		}
	}
	return -1, false
}

// String returns the plain text of the projection.
func (p *Projection) String() string {
	var sb strings.Builder
	for _, e := range p.Elements {
		if e.Kind == LineBreakElement {
			sb.WriteString("\n")
		} else {
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}

// ElementRange formats the tree and returns the range of the node with the
// given identity.
func ElementRange(tree Node, id ID) (Range, bool) {
	return Format(tree).ElementRange(id)
}

// TopNodeWithEqualElements returns the outermost ancestor of the node with
// the given identity whose element range is identical to the node's own.
func TopNodeWithEqualElements(tree Node, id ID) (Node, bool) {
	return Format(tree).TopNode(id)
}
