package editor

import (
	"strings"

	"github.com/dannysmith/draftsmith/internal/segment"
	"github.com/dannysmith/draftsmith/state"
)

// View renders the component.
func (m Model) View() string {
	base := m.viewport.View()
	if composed, ok := m.paletteOverlay(base); ok {
		return composed
	}
	return base
}

// renderContent renders the whole document, one row per line, with
// typewriter padding rows above and below. The viewport does the vertical
// slicing.
func (m *Model) renderContent() string {
	doc := m.session.State().Doc()
	sel := m.session.State().Selection()
	settings := m.settings()
	pad := m.session.ScrollPadding()

	cursorLine := doc.LineAt(sel.MainRange().Head).Number

	lines := make([]string, 0, doc.LineCount()+2*pad)
	for i := 0; i < pad; i++ {
		lines = append(lines, "")
	}
	for n := 0; n < doc.LineCount(); n++ {
		line := doc.Line(n)
		lines = append(lines, m.renderLine(line, sel, n == cursorLine, settings))
	}
	for i := 0; i < pad; i++ {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderLine(line state.Line, sel state.Selection, onCursorLine bool, settings Settings) string {
	st := m.style

	base := st.Text
	for _, class := range m.session.LineClasses(line.From) {
		if ls, ok := st.lineStyle(class); ok {
			base = ls.Inherit(base)
		}
	}
	if onCursorLine && m.focused && settings.General.HighlightCurrentLine {
		base = st.CurrentLine.Inherit(base)
	}

	cursorCol := -1
	if onCursorLine && m.focused {
		cursorCol = sel.MainRange().Head - line.From
	}

	left := m.xOffset
	right := left + m.viewport.Width
	if m.viewport.Width <= 0 {
		right = int(^uint(0) >> 1)
	}

	var sb strings.Builder
	col := 0
	for _, c := range segment.Clusters(line.Text) {
		w := cellWidth(c.Text, col)
		spanL := max(col, left)
		spanR := min(col+w, right)
		col += w
		if spanR <= spanL {
			if col >= right {
				break
			}
			continue
		}

		style := base
		for _, class := range m.session.ClassesAt(line.From + c.From) {
			if ms, ok := st.markStyle(class); ok {
				style = ms.Inherit(style)
			}
		}
		if selectionCovers(sel, line.From+c.From) {
			style = st.Selection.Inherit(style)
		}
		// Offsets clamp to rune boundaries, so a cursor can sit inside a
		// multi-rune cluster; the whole cluster takes the cursor style.
		if cursorCol >= c.From && cursorCol < c.To {
			style = st.Cursor.Inherit(style)
		}

		if spanR-spanL < w {
			// Partially clipped wide cluster or tab: keep alignment with blanks.
			sb.WriteString(base.Render(strings.Repeat(" ", spanR-spanL)))
			continue
		}
		sb.WriteString(style.Render(expandCell(c.Text, w)))
	}

	// Cursor at EOL renders as a 1-cell placeholder space.
	if cursorCol == len(line.Text) && col >= left && col < right {
		sb.WriteString(st.Cursor.Inherit(base).Render(" "))
	}
	return sb.String()
}

func expandCell(cluster string, w int) string {
	if cluster == "\t" {
		return strings.Repeat(" ", w)
	}
	return cluster
}
