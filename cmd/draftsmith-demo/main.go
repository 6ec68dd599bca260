package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dannysmith/draftsmith/althover"
	"github.com/dannysmith/draftsmith/editor"
	"github.com/dannysmith/draftsmith/focus"
	"github.com/dannysmith/draftsmith/typewriter"
)

const demoText = `# Draftsmith demo

Write markdown here. The editor understands headings, **emphasis**,
> blockquotes,
and bare URLs like https://example.com in running prose.

Alt+F toggles focus mode: the sentence around the caret stays bright and
the rest of the paragraph dims. Alt+T toggles typewriter mode, which keeps
the caret line vertically centered. Ctrl+P opens the command palette.

Hold alt and click a URL to open it. Ctrl+B and Alt+I wrap the selection.
Ctrl+Q quits.`

type status struct {
	changes int
	version uint64
	opened  string
}

func (s *status) handleChange(ev editor.ChangeEvent) {
	s.changes++
	s.version = ev.Version
}

type model struct {
	editor editor.Model
	status *status
}

func newModel() model {
	st := &status{}
	cfg := editor.Config{
		Text:     demoText,
		Style:    editor.DefaultStyle(),
		OnChange: st.handleChange,
		OpenURL: althover.OpenerFunc(func(target string) error {
			st.opened = target
			return nil
		}),
	}
	return model{editor: editor.New(cfg), status: st}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, editorHeight(msg.Height))
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+q" {
			return m, tea.Quit
		}
		// Terminals report modifiers per event, not as key-up/key-down, so
		// the held state tracks the most recent event's alt bit.
		m.editor = m.editor.SetAltHeld(msg.Alt)
	case tea.MouseMsg:
		m.editor = m.editor.SetAltHeld(msg.Alt)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string {
	st := m.editor.Session().State()

	opened := m.status.opened
	if opened == "" {
		opened = "none"
	}
	bar := strings.Join([]string{
		"",
		fmt.Sprintf("focus: %s   typewriter: %s   palette: ctrl+p",
			onOff(focus.Get(st).Enabled), onOff(typewriter.Enabled(st))),
		fmt.Sprintf("changes: %d   version: %d   last opened: %s",
			m.status.changes, m.status.version, opened),
	}, "\n")
	return m.editor.View() + bar
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func editorHeight(total int) int {
	h := total - 3
	if h < 0 {
		return 0
	}
	return h
}

func main() {
	p := tea.NewProgram(newModel(), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
