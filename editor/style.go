package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dannysmith/draftsmith/althover"
	"github.com/dannysmith/draftsmith/focus"
	"github.com/dannysmith/draftsmith/markdown"
)

// Style bundles the lipgloss styles used by the renderer. Decoration
// classes resolve to entries here; unknown classes render with Text.
type Style struct {
	Text        lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style
	CurrentLine lipgloss.Style

	// Mark decorations.
	Dim      lipgloss.Style
	URLHover lipgloss.Style
	Mark     lipgloss.Style

	// Line decorations. Heading is indexed by level-1.
	BlockquoteLine lipgloss.Style
	Heading        [6]lipgloss.Style

	PaletteBox      lipgloss.Style
	PaletteQuery    lipgloss.Style
	PaletteItem     lipgloss.Style
	PaletteSelected lipgloss.Style
}

// DefaultStyle returns a readable 256-color default.
func DefaultStyle() Style {
	st := Style{
		Text:        lipgloss.NewStyle(),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		CurrentLine: lipgloss.NewStyle().Background(lipgloss.Color("236")),

		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		URLHover: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		Mark:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		BlockquoteLine: lipgloss.NewStyle().Foreground(lipgloss.Color("108")),

		PaletteBox:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		PaletteQuery:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		PaletteItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		PaletteSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("254")).Background(lipgloss.Color("237")).Bold(true),
	}
	for i := range st.Heading {
		st.Heading[i] = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	}
	return st
}

// markStyle resolves a mark-decoration class. Later decoration layers apply
// on top, so callers layer results with Inherit.
func (st Style) markStyle(class string) (lipgloss.Style, bool) {
	switch class {
	case focus.ClassDim:
		return st.Dim, true
	case althover.ClassHover:
		return st.URLHover, true
	case markdown.ClassHeadingMark, markdown.ClassEmphasisMark:
		return st.Mark, true
	}
	return lipgloss.Style{}, false
}

// lineStyle resolves a line-decoration class.
func (st Style) lineStyle(class string) (lipgloss.Style, bool) {
	if class == markdown.ClassBlockquoteLine {
		return st.BlockquoteLine, true
	}
	if lv, ok := headingLevel(class); ok {
		return st.Heading[lv-1], true
	}
	return lipgloss.Style{}, false
}

func headingLevel(class string) (int, bool) {
	rest, ok := strings.CutPrefix(class, "heading-")
	if !ok {
		return 0, false
	}
	lv, err := strconv.Atoi(rest)
	if err != nil || lv < 1 || lv > 6 {
		return 0, false
	}
	return lv, true
}
