package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

const paletteMaxVisibleRows = 8

// paletteOverlay composites the command palette over the base view.
func (m Model) paletteOverlay(base string) (string, bool) {
	if !m.palette.visible {
		return "", false
	}
	viewWidth := m.viewport.Width
	viewHeight := m.visibleRows()
	if viewWidth <= 0 || viewHeight <= 0 {
		return "", false
	}

	st := m.style
	rowWidth := clampInt(viewWidth-6, 16, 48)

	start := 0
	if m.palette.selected >= paletteMaxVisibleRows {
		start = m.palette.selected - paletteMaxVisibleRows + 1
	}
	end := min(start+paletteMaxVisibleRows, len(m.palette.matches))

	rows := make([]string, 0, end-start+2)
	rows = append(rows, st.PaletteQuery.Width(rowWidth).Render("> "+m.palette.query))
	for i := start; i < end; i++ {
		rowStyle := st.PaletteItem
		if i == m.palette.selected {
			rowStyle = st.PaletteSelected
		}
		rows = append(rows, rowStyle.Width(rowWidth).Render(truncateRow(m.palette.matches[i], rowWidth)))
	}
	if len(m.palette.matches) == 0 {
		rows = append(rows, st.PaletteItem.Width(rowWidth).Render("no matching commands"))
	}

	popup := st.PaletteBox.Render(strings.Join(rows, "\n"))

	x := max((viewWidth-lipgloss.Width(popup))/2, 0)
	y := min(1, max(viewHeight-lipgloss.Height(popup), 0))
	return overlay.Composite(popup, base, overlay.Left, overlay.Top, x, y), true
}

func truncateRow(id string, width int) string {
	if width > 0 && len(id) > width {
		return id[:width]
	}
	return id
}
