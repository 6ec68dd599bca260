package keymap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/dannysmith/draftsmith/internal/segment"
	"github.com/dannysmith/draftsmith/markdown"
	"github.com/dannysmith/draftsmith/state"
)

// ComponentBuilder offers structured-content insertion (the host's MDX
// component picker). BuildComponent reports whether it consumed the
// invocation; declining falls back to the comment toggle.
type ComponentBuilder interface {
	BuildComponent(t Target) bool
}

// ContentLinker offers linking to existing project content. LinkContent
// reports whether it consumed the invocation; declining releases the key to
// lower tiers.
type ContentLinker interface {
	LinkContent(t Target) bool
}

// FieldNavigator steps through active snippet placeholder fields. Either
// method reports whether a field existed to navigate to.
type FieldNavigator interface {
	NextField(t Target) bool
	PrevField(t Target) bool
}

// Options inject the host capabilities consulted by the tab and compound
// bindings. Any field may be nil.
type Options struct {
	Builder   ComponentBuilder
	Linker    ContentLinker
	Navigator FieldNavigator
}

// Command ids executed by the mode-toggle and palette bindings. The editor
// session registers the matching entries.
const (
	CmdFocusMode      = "mode.focus"
	CmdTypewriterMode = "mode.typewriter"
	CmdShowPalette    = "palette.show"
)

// New builds the standard three-tier keymap: tab trap, domain shortcuts,
// then the editing defaults with the comment-toggle chord removed (the
// compound binding in the domain tier owns that key).
func New(opts Options) Keymap {
	return Keymap{Tiers: []Tier{
		tabTrapTier(opts.Navigator),
		domainTier(opts),
		defaultTier(),
	}}
}

// tabTrapTier always consumes Tab and Shift-Tab so focus never leaves the
// editing surface. Snippet navigation is consulted first; without an active
// field, Tab inserts a literal tab and Shift-Tab does nothing.
func tabTrapTier(nav FieldNavigator) Tier {
	return Tier{
		{
			Keys: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field / indent")),
			Run: func(t Target) bool {
				if nav != nil && nav.NextField(t) {
					return true
				}
				spec := state.ReplaceSelection(t.State(), "\t")
				spec.Events = []string{state.EventInput}
				t.Dispatch(spec)
				return true
			},
		},
		{
			Keys: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
			Run: func(t Target) bool {
				if nav != nil && nav.PrevField(t) {
					return true
				}
				return true
			},
		},
	}
}

func domainTier(opts Options) Tier {
	tier := Tier{
		{
			Keys: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bold")),
			Run:  runTransform(markdown.ToggleBold),
		},
		{
			// ctrl+i arrives as tab in most terminals, so italic rides alt+i.
			Keys: key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
			Run:  runTransform(markdown.ToggleItalic),
		},
		{
			Keys: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "insert link")),
			Run:  runTransform(markdown.InsertLink),
		},
	}

	for level := 1; level <= 4; level++ {
		lv := level
		chord := fmt.Sprintf("alt+%d", lv)
		tier = append(tier, Binding{
			Keys: key.NewBinding(key.WithKeys(chord), key.WithHelp(chord, fmt.Sprintf("heading %d", lv))),
			Run: runTransform(func(s *state.EditorState) (state.TransactionSpec, bool) {
				return markdown.SetHeadingLevel(s, lv)
			}),
		})
	}
	tier = append(tier, Binding{
		Keys: key.NewBinding(key.WithKeys("alt+0"), key.WithHelp("alt+0", "paragraph")),
		Run: runTransform(func(s *state.EditorState) (state.TransactionSpec, bool) {
			return markdown.SetHeadingLevel(s, 0)
		}),
	})

	tier = append(tier,
		Binding{
			// Terminals deliver ctrl+/ as ctrl+_.
			Keys: key.NewBinding(key.WithKeys("ctrl+_"), key.WithHelp("ctrl+/", "component / comment")),
			Run: func(t Target) bool {
				if opts.Builder != nil && opts.Builder.BuildComponent(t) {
					return true
				}
				return runTransform(markdown.ToggleComment)(t)
			},
		},
		Binding{
			Keys: key.NewBinding(key.WithKeys("alt+k"), key.WithHelp("alt+k", "link content")),
			Run: func(t Target) bool {
				return opts.Linker != nil && opts.Linker.LinkContent(t)
			},
		},
		Binding{
			Keys: key.NewBinding(key.WithKeys("alt+f"), key.WithHelp("alt+f", "focus mode")),
			Run:  runCommand(CmdFocusMode),
		},
		Binding{
			Keys: key.NewBinding(key.WithKeys("alt+t"), key.WithHelp("alt+t", "typewriter mode")),
			Run:  runCommand(CmdTypewriterMode),
		},
		Binding{
			Keys: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "command palette")),
			Run:  runCommand(CmdShowPalette),
		},
		Binding{
			Keys: key.NewBinding(key.WithKeys("alt+e"), key.WithHelp("alt+e", "cursors to line ends")),
			Run:  runTransform(markdown.DuplicateCursorToLineEnds),
		},
	)
	return tier
}

// DefaultKeyMap is the baseline editing table.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type DefaultKeyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	WordLeft, WordRight                       key.Binding
	Home, End                                 key.Binding
	DocHome, DocEnd                           key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding

	Undo, Redo       key.Binding
	Copy, Cut, Paste key.Binding

	ToggleComment key.Binding
}

func StandardKeyMap() DefaultKeyMap {
	return DefaultKeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		// Portable word movement: terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:  key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt/ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt/ctrl+→", "word right")),

		Home: key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),

		DocHome: key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "document start")),
		DocEnd:  key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "document end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		ToggleComment: key.NewBinding(key.WithKeys("ctrl+_"), key.WithHelp("ctrl+/", "toggle comment")),
	}
}

// defaultTier converts the baseline table into bindings, then filters out
// the comment-toggle chord: the domain tier owns that key, and registering
// it twice would make the fallback order ambiguous.
func defaultTier() Tier {
	km := StandardKeyMap()
	all := Tier{
		{Keys: km.Left, Run: runMove(state.Move{Unit: state.MoveGrapheme, Dir: state.DirLeft})},
		{Keys: km.Right, Run: runMove(state.Move{Unit: state.MoveGrapheme, Dir: state.DirRight})},
		{Keys: km.Up, Run: runMove(state.Move{Unit: state.MoveGrapheme, Dir: state.DirUp})},
		{Keys: km.Down, Run: runMove(state.Move{Unit: state.MoveGrapheme, Dir: state.DirDown})},

		{Keys: km.ShiftLeft, Run: runMove(state.Move{Unit: state.MoveGrapheme, Dir: state.DirLeft, Extend: true})},
		{Keys: km.ShiftRight, Run: runMove(state.Move{Unit: state.MoveGrapheme, Dir: state.DirRight, Extend: true})},
		{Keys: km.ShiftUp, Run: runMove(state.Move{Unit: state.MoveGrapheme, Dir: state.DirUp, Extend: true})},
		{Keys: km.ShiftDown, Run: runMove(state.Move{Unit: state.MoveGrapheme, Dir: state.DirDown, Extend: true})},

		{Keys: km.WordLeft, Run: runMove(state.Move{Unit: state.MoveWord, Dir: state.DirLeft})},
		{Keys: km.WordRight, Run: runMove(state.Move{Unit: state.MoveWord, Dir: state.DirRight})},

		{Keys: km.Home, Run: runMove(state.Move{Unit: state.MoveLine, Dir: state.DirHome})},
		{Keys: km.End, Run: runMove(state.Move{Unit: state.MoveLine, Dir: state.DirEnd})},

		{Keys: km.DocHome, Run: runMove(state.Move{Unit: state.MoveDoc, Dir: state.DirHome})},
		{Keys: km.DocEnd, Run: runMove(state.Move{Unit: state.MoveDoc, Dir: state.DirEnd})},

		{Keys: km.Backspace, Run: runBackspace},
		{Keys: km.Delete, Run: runDeleteForward},
		{Keys: km.Enter, Run: runEnter},

		{Keys: km.Undo, Run: runUndo},
		{Keys: km.Redo, Run: runRedo},

		{Keys: km.Copy, Run: runCopy},
		{Keys: km.Cut, Run: runCut},
		{Keys: km.Paste, Run: runPaste},

		{Keys: km.ToggleComment, Run: runTransform(markdown.ToggleComment)},
	}

	out := make(Tier, 0, len(all))
	for _, b := range all {
		if sharesKey(b.Keys, km.ToggleComment) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func sharesKey(a, b key.Binding) bool {
	for _, ka := range a.Keys() {
		for _, kb := range b.Keys() {
			if ka == kb {
				return true
			}
		}
	}
	return false
}

// runTransform adapts a document transform into a handler. The chord is
// owned either way; a transform that does not apply consumes it unchanged.
func runTransform(fn func(*state.EditorState) (state.TransactionSpec, bool)) func(Target) bool {
	return func(t Target) bool {
		if spec, ok := fn(t.State()); ok {
			t.Dispatch(spec)
		}
		return true
	}
}

func runCommand(id string) func(Target) bool {
	return func(t Target) bool {
		if reg := t.Commands(); reg != nil {
			reg.Execute(id)
		}
		return true
	}
}

func runMove(m state.Move) func(Target) bool {
	return func(t Target) bool {
		t.Dispatch(state.MoveSelection(t.State(), m))
		return true
	}
}

func runBackspace(t Target) bool {
	t.Dispatch(state.DeleteSelection(t.State(), graphemeBack, nil))
	return true
}

func runDeleteForward(t Target) bool {
	t.Dispatch(state.DeleteSelection(t.State(), nil, graphemeForward))
	return true
}

func runEnter(t Target) bool {
	spec := state.ReplaceSelection(t.State(), "\n")
	spec.Events = []string{state.EventInput}
	t.Dispatch(spec)
	return true
}

func runUndo(t Target) bool {
	if h := t.History(); h != nil {
		if spec, ok := h.Undo(t.State()); ok {
			t.Dispatch(spec)
		}
	}
	return true
}

func runRedo(t Target) bool {
	if h := t.History(); h != nil {
		if spec, ok := h.Redo(t.State()); ok {
			t.Dispatch(spec)
		}
	}
	return true
}

func runCopy(t Target) bool {
	if text := selectionText(t.State()); text != "" {
		_ = t.WriteClipboard(text)
	}
	return true
}

func runCut(t Target) bool {
	s := t.State()
	text := selectionText(s)
	if text == "" {
		return true
	}
	_ = t.WriteClipboard(text)
	t.Dispatch(state.DeleteSelection(s, nil, nil))
	return true
}

func runPaste(t Target) bool {
	text, err := t.ReadClipboard()
	if err != nil || text == "" {
		return true
	}
	// Normalize newlines from external sources.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	spec := state.ReplaceSelection(t.State(), text)
	spec.Events = []string{state.EventPaste}
	t.Dispatch(spec)
	return true
}

// selectionText joins the text of every non-empty range with newlines.
func selectionText(s *state.EditorState) string {
	doc := s.Doc()
	var parts []string
	for _, r := range s.Selection().Ranges {
		if !r.Empty() {
			parts = append(parts, doc.Slice(r.From(), r.To()))
		}
	}
	return strings.Join(parts, "\n")
}

func graphemeBack(doc *state.Document, off int) int {
	return segment.PrevBoundary(doc.String(), off)
}

func graphemeForward(doc *state.Document, off int) int {
	return segment.NextBoundary(doc.String(), off)
}
