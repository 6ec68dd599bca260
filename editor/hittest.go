package editor

import (
	"github.com/dannysmith/draftsmith/internal/segment"
	"github.com/dannysmith/draftsmith/state"
)

const tabWidth = 4

// cellWidth returns the rendered width of one cluster starting at cell
// column col. Tabs advance to the next tab stop; zero-width clusters
// occupy one cell so every offset stays addressable.
func cellWidth(cluster string, col int) int {
	if cluster == "\t" {
		return tabWidth - col%tabWidth
	}
	if w := segment.Width(cluster); w > 0 {
		return w
	}
	return 1
}

// columnOf returns the cell column of byte offset byteCol within lineText.
func columnOf(lineText string, byteCol int) int {
	col := 0
	for _, c := range segment.Clusters(lineText) {
		if c.From >= byteCol {
			break
		}
		col += cellWidth(c.Text, col)
	}
	return col
}

// screenToOffset maps component-local cell coordinates to a document
// offset. Coordinates past the line end map to the line end.
func (m *Model) screenToOffset(x, y int) int {
	doc := m.session.State().Doc()
	pad := m.session.ScrollPadding()
	row := clampInt(m.viewport.YOffset+y-pad, 0, doc.LineCount()-1)
	line := doc.Line(row)

	target := m.xOffset + x
	if target < 0 {
		return line.From
	}
	col := 0
	for _, c := range segment.Clusters(line.Text) {
		w := cellWidth(c.Text, col)
		if target < col+w {
			return line.From + c.From
		}
		col += w
	}
	return line.To
}

// offsetToScreen maps a document offset to component-local cell
// coordinates. ok is false when the offset is outside the visible cells.
func (m *Model) offsetToScreen(off int) (x, y int, ok bool) {
	doc := m.session.State().Doc()
	off = doc.ClampOffset(off)
	line := doc.LineAt(off)
	pad := m.session.ScrollPadding()

	y = line.Number + pad - m.viewport.YOffset
	if y < 0 || y >= m.visibleRows() {
		return 0, 0, false
	}
	x = columnOf(line.Text, off-line.From) - m.xOffset
	if x < 0 || (m.viewport.Width > 0 && x >= m.viewport.Width) {
		return 0, 0, false
	}
	return x, y, true
}

// followCursorX keeps the caret column inside the horizontal clip window.
func (m *Model) followCursorX() {
	if m.viewport.Width <= 0 {
		m.xOffset = 0
		return
	}
	doc := m.session.State().Doc()
	head := m.session.State().Selection().MainRange().Head
	line := doc.LineAt(head)
	col := columnOf(line.Text, head-line.From)
	switch {
	case col < m.xOffset:
		m.xOffset = col
	case col >= m.xOffset+m.viewport.Width:
		m.xOffset = col - m.viewport.Width + 1
	}
}

func selectionCovers(sel state.Selection, off int) bool {
	for _, r := range sel.Ranges {
		if !r.Empty() && off >= r.From() && off < r.To() {
			return true
		}
	}
	return false
}
