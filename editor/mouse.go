package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dannysmith/draftsmith/state"
)

// updateMouse handles click, drag, and wheel input. Coordinates are
// component-local cells; hosts translate window coordinates before
// forwarding.
func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			// Hover decorations track the camera.
			m.refreshContent()
			return m, cmd
		case tea.MouseButtonLeft:
			return m.pressLeft(msg)
		}

	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
		off := m.screenToOffset(m.clampX(msg.X), m.clampY(msg.Y))
		m.dispatchPointerSelect(m.dragAnchor, off)
		return m.afterDispatch()

	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft || !m.dragging {
			return m, nil
		}
		m.dragging = false
		return m, m.scheduleCmd()
	}
	return m, nil
}

func (m Model) pressLeft(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.inBounds(msg.X, msg.Y) {
		return m, nil
	}
	off := m.screenToOffset(msg.X, msg.Y)

	if msg.Alt {
		// Opening never blocks caret placement; the result is advisory.
		m.session.OpenURLAt(off)
	}

	anchor := off
	if msg.Shift {
		anchor = m.session.State().Selection().MainRange().Anchor
	}
	m.dragging = true
	m.dragAnchor = anchor
	m.dispatchPointerSelect(anchor, off)
	return m.afterDispatch()
}

func (m *Model) dispatchPointerSelect(anchor, head int) {
	sel := state.Single(anchor, head)
	if sel.Eq(m.session.State().Selection()) {
		return
	}
	m.session.Dispatch(state.TransactionSpec{
		Selection: &sel,
		Events:    []string{state.EventSelectPointer},
	})
}

func (m *Model) inBounds(x, y int) bool {
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.visibleRows()
}

func (m *Model) clampX(x int) int { return clampInt(x, 0, m.viewport.Width-1) }

func (m *Model) clampY(y int) int {
	rows := m.visibleRows()
	if rows <= 0 {
		return 0
	}
	return clampInt(y, 0, rows-1)
}
