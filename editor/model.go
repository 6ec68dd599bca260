package editor

import (
	"reflect"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/dannysmith/draftsmith/keymap"
	"github.com/dannysmith/draftsmith/state"
)

// Model is the Bubble Tea view over a Session. It has value semantics:
// methods return updated copies, and every copy shares the same session.
type Model struct {
	cfg      Config
	style    Style
	session  *Session
	keymap   keymap.Keymap
	viewport viewport.Model
	focused  bool

	dragging   bool
	dragAnchor int
	xOffset    int

	palette paletteState
}

// New builds an editor component from cfg.
func New(cfg Config) Model {
	st := cfg.Style
	if reflect.DeepEqual(st, Style{}) {
		st = DefaultStyle()
	}
	m := Model{
		cfg:     cfg,
		style:   st,
		session: newSession(cfg),
		keymap: keymap.New(keymap.Options{
			Builder:   cfg.Builder,
			Linker:    cfg.Linker,
			Navigator: cfg.Navigator,
		}),
		viewport: viewport.New(0, 0),
		focused:  true,
	}
	m.refreshContent()
	return m
}

// Session exposes the editing session shared by all copies of the model.
func (m Model) Session() *Session { return m.session }

// SetSize resizes the component to a cell rectangle.
func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = width
	m.viewport.Height = height
	m.refreshContent()
	return m
}

// Focus enables cursor rendering and key handling.
func (m Model) Focus() Model {
	m.focused = true
	m.refreshContent()
	return m
}

// Blur disables cursor rendering and key handling.
func (m Model) Blur() Model {
	m.focused = false
	m.dragging = false
	m.refreshContent()
	return m
}

// Focused reports whether the component accepts input.
func (m Model) Focused() bool { return m.focused }

// Text returns the current document.
func (m Model) Text() string { return m.session.State().Doc().String() }

// SetText replaces the whole document and collapses the caret to the end
// of the new text.
func (m Model) SetText(text string) Model {
	doc := m.session.State().Doc()
	sel := state.Cursor(len(text))
	m.session.Dispatch(state.TransactionSpec{
		Changes:   []state.Change{{From: 0, To: doc.Len(), Insert: text}},
		Selection: &sel,
	})
	m.refreshContent()
	return m
}

// Close releases the session. Call it when removing the component from a
// program that keeps running.
func (m Model) Close() {
	m.session.Close()
}
