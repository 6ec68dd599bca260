package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dannysmith/draftsmith/drop"
	"github.com/dannysmith/draftsmith/focus"
	"github.com/dannysmith/draftsmith/keymap"
	"github.com/dannysmith/draftsmith/state"
	"github.com/dannysmith/draftsmith/typewriter"
)

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runesMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func altRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		msg := runesMsg(string(r))
		if r == '\n' {
			msg = keyMsg(tea.KeyEnter)
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestUpdate_TypedRunesInsert(t *testing.T) {
	m := New(testConfig(""))
	m = typeText(t, m, "hello\nworld")

	if got, want := m.Text(), "hello\nworld"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := m.Session().State().Selection().MainRange().Head, len("hello\nworld"); got != want {
		t.Fatalf("caret: got %d, want %d", got, want)
	}
}

func TestUpdate_AltRunesAreNotText(t *testing.T) {
	m := New(testConfig(""))
	m, _ = m.Update(altRune('x')) // unbound alt chord

	if got := m.Text(); got != "" {
		t.Fatalf("alt-modified rune inserted text %q", got)
	}
}

func TestUpdate_BlurredEditorIgnoresKeys(t *testing.T) {
	m := New(testConfig("")).Blur()
	m, _ = m.Update(runesMsg("x"))

	if got := m.Text(); got != "" {
		t.Fatalf("blurred editor inserted %q", got)
	}
}

type stubNavigator struct {
	next, prev int
	handle     bool
}

func (n *stubNavigator) NextField(keymap.Target) bool { n.next++; return n.handle }
func (n *stubNavigator) PrevField(keymap.Target) bool { n.prev++; return n.handle }

func TestUpdate_TabIsAlwaysTrapped(t *testing.T) {
	// Without a navigator, Tab inserts a literal tab.
	m := New(testConfig("ab"))
	m, _ = m.Update(keyMsg(tea.KeyTab))
	if got, want := m.Text(), "\tab"; got != want {
		t.Fatalf("tab insert: got %q, want %q", got, want)
	}

	// Shift-Tab is consumed without editing.
	m, _ = m.Update(keyMsg(tea.KeyShiftTab))
	if got, want := m.Text(), "\tab"; got != want {
		t.Fatalf("shift-tab edited the document: got %q, want %q", got, want)
	}

	// With an active snippet field, navigation wins over the literal tab.
	nav := &stubNavigator{handle: true}
	cfg := testConfig("cd")
	cfg.Navigator = nav
	m2 := New(cfg)
	m2, _ = m2.Update(keyMsg(tea.KeyTab))
	m2, _ = m2.Update(keyMsg(tea.KeyShiftTab))
	if got, want := m2.Text(), "cd"; got != want {
		t.Fatalf("navigated tab edited the document: got %q, want %q", got, want)
	}
	if nav.next != 1 || nav.prev != 1 {
		t.Fatalf("navigator calls: next=%d prev=%d, want 1 and 1", nav.next, nav.prev)
	}
}

func TestUpdate_PastedRunesInsertLiterally(t *testing.T) {
	m := New(testConfig(""))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\r\nb\rc"), Paste: true})

	if got, want := m.Text(), "a\nb\nc"; got != want {
		t.Fatalf("pasted text: got %q, want %q", got, want)
	}
}

func TestUpdate_ModeToggleChords(t *testing.T) {
	m := New(testConfig("one. two."))

	m, _ = m.Update(altRune('f'))
	if !focus.Get(m.Session().State()).Enabled {
		t.Fatalf("alt+f should enable focus mode")
	}

	m, _ = m.Update(altRune('t'))
	if !typewriter.Enabled(m.Session().State()) {
		t.Fatalf("alt+t should enable typewriter mode")
	}

	m, _ = m.Update(altRune('f'))
	if focus.Get(m.Session().State()).Enabled {
		t.Fatalf("alt+f again should disable focus mode")
	}
	if !typewriter.Enabled(m.Session().State()) {
		t.Fatalf("modes are independent; typewriter must stay on")
	}
}

func TestUpdate_BoldChordWrapsSelection(t *testing.T) {
	m := New(testConfig("word"))
	sel := state.Single(0, 4)
	m.Session().Dispatch(state.TransactionSpec{Selection: &sel, Events: []string{state.EventSelect}})

	m, _ = m.Update(keyMsg(tea.KeyCtrlB))

	if got, want := m.Text(), "**word**"; got != want {
		t.Fatalf("bold toggle: got %q, want %q", got, want)
	}
}

func TestUpdate_UndoRedoChords(t *testing.T) {
	m := New(testConfig(""))
	m = typeText(t, m, "ab")

	m, _ = m.Update(keyMsg(tea.KeyCtrlZ))
	if got, want := m.Text(), "a"; got != want {
		t.Fatalf("after undo: got %q, want %q", got, want)
	}
	m, _ = m.Update(keyMsg(tea.KeyCtrlY))
	if got, want := m.Text(), "ab"; got != want {
		t.Fatalf("after redo: got %q, want %q", got, want)
	}
}

func TestUpdate_CopyPasteRoundTrip(t *testing.T) {
	clip := &MemoryClipboard{}
	cfg := testConfig("copy me")
	cfg.Clipboard = clip
	m := New(cfg)

	sel := state.Single(0, 4)
	m.Session().Dispatch(state.TransactionSpec{Selection: &sel, Events: []string{state.EventSelect}})
	m, _ = m.Update(keyMsg(tea.KeyCtrlC))

	if got, err := clip.ReadText(); err != nil || got != "copy" {
		t.Fatalf("clipboard: got %q (err %v), want %q", got, err, "copy")
	}

	end := state.Cursor(len("copy me"))
	m.Session().Dispatch(state.TransactionSpec{Selection: &end, Events: []string{state.EventSelect}})
	m, _ = m.Update(keyMsg(tea.KeyCtrlV))

	if got, want := m.Text(), "copy mecopy"; got != want {
		t.Fatalf("after paste: got %q, want %q", got, want)
	}
}

func TestUpdate_DropResultInsertsAtCaretNow(t *testing.T) {
	m := New(testConfig("AB"))

	// The caret moves after the drop begins; insertion follows the caret.
	sel := state.Cursor(1)
	m.Session().Dispatch(state.TransactionSpec{Selection: &sel, Events: []string{state.EventSelectPointer}})

	res := drop.Result{OK: true, Snippet: "![x](/assets/x.png)"}
	m, _ = m.Update(dropResultMsg{result: res})

	if got, want := m.Text(), "A![x](/assets/x.png)B"; got != want {
		t.Fatalf("drop insert: got %q, want %q", got, want)
	}
}

func TestUpdate_DropFilesWithoutContextFallsBack(t *testing.T) {
	m := New(testConfig(""))

	cmd := m.DropFiles([]string{"/tmp/shot.png", "/tmp/notes.txt"})
	if cmd == nil {
		t.Fatalf("DropFiles returned no command")
	}
	msg, ok := cmd().(dropResultMsg)
	if !ok {
		t.Fatalf("drop command produced %T, want dropResultMsg", cmd())
	}
	m, _ = m.Update(msg)

	want := "![shot.png](/tmp/shot.png)\n[notes.txt](/tmp/notes.txt)"
	if got := m.Text(); got != want {
		t.Fatalf("fallback snippet: got %q, want %q", got, want)
	}
}

func TestUpdate_FailedDropLeavesDocumentUntouched(t *testing.T) {
	m := New(testConfig("keep"))

	cmd := m.DropFiles(struct{ bogus int }{1})
	msg := cmd().(dropResultMsg)
	if msg.result.OK {
		t.Fatalf("malformed payload should not produce an insertable result")
	}
	m, _ = m.Update(msg)

	if got, want := m.Text(), "keep"; got != want {
		t.Fatalf("document changed on failed drop: got %q, want %q", got, want)
	}
}

func TestUpdate_FrameFlushAppliesDeferredCentering(t *testing.T) {
	text := strings.Repeat("line\n", 30)
	m := New(testConfig(text))
	m = m.SetSize(20, 9)
	m, _ = m.Update(altRune('t'))

	if got := m.Session().ScrollPadding(); got != 4 {
		t.Fatalf("padding: got %d, want 4", got)
	}

	sel := state.Single(42, 42)
	m.Session().Dispatch(state.TransactionSpec{Selection: &sel, Events: []string{state.EventSelectPointer}})
	if !m.Session().HasScheduled() {
		t.Fatalf("pointer selection should defer centering")
	}

	m, cmd := m.Update(frameMsg{})
	if m.Session().HasScheduled() {
		t.Fatalf("frame flush should drain the queue")
	}
	if cmd != nil {
		t.Fatalf("no further work should be armed")
	}

	line := m.Session().State().Doc().LineAt(42).Number
	wantOffset := line + 4 - 9/2 // padded row minus half the window
	if got := m.viewport.YOffset; got != wantOffset {
		t.Fatalf("camera offset: got %d, want %d", got, wantOffset)
	}
}
