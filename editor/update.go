package editor

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dannysmith/draftsmith/althover"
	"github.com/dannysmith/draftsmith/drop"
	"github.com/dannysmith/draftsmith/state"
)

// frameMsg drives deferred session work once the current gesture has
// resolved.
type frameMsg struct{}

func frameTick() tea.Msg { return frameMsg{} }

// dropResultMsg delivers an asynchronous drop resolution.
type dropResultMsg struct {
	result drop.Result
}

// Update routes Bubble Tea messages to the editor.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case frameMsg:
		m.session.FlushScheduled()
		if m.applyScrollRequests() {
			m.refreshContent()
		}
		return m, m.scheduleCmd()
	case dropResultMsg:
		return m.finishDrop(msg.result)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	if m.palette.visible {
		return m.updatePaletteKey(msg)
	}

	// Paste events should always insert literal text and never trigger
	// shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		spec := state.ReplaceSelection(m.session.State(), normalizeNewlines(string(msg.Runes)))
		spec.Events = append(spec.Events, state.EventPaste)
		m.session.Dispatch(spec)
		return m.afterDispatch()
	}

	if m.keymap.Handle(msg, m.session) {
		return m.afterDispatch()
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
		spec := state.ReplaceSelection(m.session.State(), string(msg.Runes))
		spec.Events = append(spec.Events, state.EventInput)
		m.session.Dispatch(spec)
		return m.afterDispatch()
	}
	return m, nil
}

// afterDispatch settles the view after input reached the session: palette
// requests open the palette, scroll requests move the camera, and deferred
// work arms the frame tick.
func (m Model) afterDispatch() (Model, tea.Cmd) {
	if m.session.takePaletteRequest() {
		m = m.openPalette()
	}
	m.refreshContent()
	if m.applyScrollRequests() {
		m.refreshContent()
	}
	return m, m.scheduleCmd()
}

// scheduleCmd arms the frame tick when deferred work is queued. Nothing is
// armed mid-drag; the release arms it, so deferrals span the whole gesture.
func (m Model) scheduleCmd() tea.Cmd {
	if m.dragging || !m.session.HasScheduled() {
		return nil
	}
	return frameTick
}

// SetAltHeld publishes the alt modifier state that drives hover
// decorations. Hosts with window-level input call it on modifier
// transitions and with false on window blur.
func (m Model) SetAltHeld(held bool) Model {
	if althover.Held(m.session.State()) == held {
		return m
	}
	m.session.Dispatch(state.TransactionSpec{
		Effects: []state.Effect{althover.SetHeld.Of(held)},
	})
	m.refreshContent()
	return m
}

// DropFiles resolves a platform file-drop payload off the update loop and
// delivers the outcome back as a message. Drop positions are interpreted in
// the component's own cell rectangle.
func (m Model) DropFiles(payload any) tea.Cmd {
	handler := drop.Handler{
		Processor: m.cfg.AssetProcessor,
		Settings:  m.cfg.AssetSettings,
		Context:   m.cfg.ProjectContext,
		Log:       m.session.log,
	}
	bounds := drop.Bounds{
		Width:  float64(m.viewport.Width),
		Height: float64(m.viewport.Height),
	}
	return func() tea.Msg {
		return dropResultMsg{result: handler.Process(context.Background(), payload, bounds)}
	}
}

// finishDrop inserts the resolved snippet at the caret as it stands now,
// not where it was when the drop started.
func (m Model) finishDrop(res drop.Result) (Model, tea.Cmd) {
	if !res.OK || res.Snippet == "" {
		return m, nil
	}
	spec := state.ReplaceSelection(m.session.State(), res.Snippet)
	spec.Events = append(spec.Events, state.EventDrop)
	m.session.Dispatch(spec)
	return m.afterDispatch()
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
