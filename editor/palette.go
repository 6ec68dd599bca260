package editor

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// paletteState is the command palette: a query line over the registry's
// fuzzy search. It owns key input while visible.
type paletteState struct {
	visible  bool
	query    string
	matches  []string
	selected int
}

func (m Model) openPalette() Model {
	m.palette = paletteState{visible: true, matches: m.session.Commands().IDs()}
	return m
}

func (m Model) closePalette() Model {
	m.palette = paletteState{}
	return m
}

// PaletteVisible reports whether the command palette is open.
func (m Model) PaletteVisible() bool { return m.palette.visible }

func (m Model) updatePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.closePalette(), nil

	case tea.KeyEnter:
		var id string
		if m.palette.selected >= 0 && m.palette.selected < len(m.palette.matches) {
			id = m.palette.matches[m.palette.selected]
		}
		m = m.closePalette()
		if id != "" {
			m.session.Commands().Execute(id)
		}
		return m.afterDispatch()

	case tea.KeyUp:
		if m.palette.selected > 0 {
			m.palette.selected--
		}
		return m, nil

	case tea.KeyDown:
		if m.palette.selected < len(m.palette.matches)-1 {
			m.palette.selected++
		}
		return m, nil

	case tea.KeyBackspace:
		if m.palette.query != "" {
			m.palette.query = trimLastRune(m.palette.query)
			m.refilterPalette()
		}
		return m, nil

	case tea.KeyRunes:
		if !msg.Alt && len(msg.Runes) > 0 {
			m.palette.query += string(msg.Runes)
			m.refilterPalette()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) refilterPalette() {
	if m.palette.query == "" {
		m.palette.matches = m.session.Commands().IDs()
	} else {
		m.palette.matches = m.session.Commands().Search(m.palette.query)
	}
	m.palette.selected = 0
}

func trimLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
