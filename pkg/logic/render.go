package logic

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Theme styles projection elements for terminal output.
type Theme struct {
	Styles    map[Style]lipgloss.Style
	Selection lipgloss.Style
}

const selectionKey = "selection"

func DefaultTheme() Theme {
	return Theme{
		Styles: map[Style]lipgloss.Style{
			StyleKeyword:     lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true),
			StyleIdentifier:  lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
			StyleLiteral:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			StyleOperator:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			StylePlaceholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			StylePunctuation: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("237")),
	}
}

func knownThemeKey(key string) bool {
	switch Style(key) {
	case StyleKeyword, StyleIdentifier, StyleLiteral, StyleOperator, StylePlaceholder, StylePunctuation:
		return true
	}
	return key == selectionKey
}

// WithColor returns a copy of the theme with the foreground of one style
// (or the background of the selection) replaced.
func (t Theme) WithColor(key, color string) Theme {
	styles := make(map[Style]lipgloss.Style, len(t.Styles))
	for k, v := range t.Styles {
		styles[k] = v
	}
	out := Theme{Styles: styles, Selection: t.Selection}
	if key == selectionKey {
		out.Selection = out.Selection.Background(lipgloss.Color(color))
		return out
	}
	style := Style(key)
	out.Styles[style] = out.Styles[style].Foreground(lipgloss.Color(color))
	return out
}

// Render draws the projection, highlighting the elements in selected. Pass
// an empty range for no selection.
func (t Theme) Render(p *Projection, selected Range) string {
	var sb strings.Builder
	for i, e := range p.Elements {
		switch e.Kind {
		case LineBreakElement:
			sb.WriteString("\n")
			continue
		case IndentElement:
			sb.WriteString(e.Text)
			continue
		}
		style, ok := t.Styles[e.Style]
		if !ok {
			style = lipgloss.NewStyle()
		}
		if selected.Contains(i) {
			style = style.Background(t.Selection.GetBackground())
		}
		sb.WriteString(style.Render(e.Text))
	}
	return sb.String()
}
