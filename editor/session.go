package editor

import (
	"log/slog"

	"github.com/dannysmith/draftsmith/althover"
	"github.com/dannysmith/draftsmith/commands"
	"github.com/dannysmith/draftsmith/decor"
	"github.com/dannysmith/draftsmith/focus"
	"github.com/dannysmith/draftsmith/keymap"
	"github.com/dannysmith/draftsmith/state"
	"github.com/dannysmith/draftsmith/typewriter"
)

// ScrollRequest asks the view to bring a document offset on screen. Center
// requests put the offset's line on the vertical middle row.
type ScrollRequest struct {
	Offset int
	Center bool
}

// Session owns the editing side of the component: the immutable state, the
// undo history, the command registry, and the plugin list. The Model holds
// a pointer to it, so copies of the Model share one session.
//
// Session implements keymap.Target.
type Session struct {
	cfg      Config
	state    *state.EditorState
	history  *state.History
	registry *commands.Registry
	clip     Clipboard
	plugins  []Plugin
	log      *slog.Logger

	view    Viewport
	padRows int

	layers     map[string]decor.Set
	layerOrder []string

	scheduled      []func()
	scrolls        []ScrollRequest
	paletteWanted  bool
	sharedRegistry bool
	version        uint64
}

const defaultHistoryLimit = 100

func newSession(cfg Config) *Session {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	clip := cfg.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}
	registry := cfg.Commands
	shared := registry != nil
	if registry == nil {
		registry = commands.NewWithLogger(log)
	}

	s := &Session{
		cfg: cfg,
		state: state.NewState(state.Config{
			Doc:          cfg.Text,
			Fields:       []*state.Field{focus.Field, typewriter.Field, althover.Field},
			Interceptors: []state.Interceptor{typewriter.Interceptor},
		}),
		history:        state.NewHistory(limit),
		registry:       registry,
		clip:           clip,
		plugins:        append(defaultPlugins(), cfg.Plugins...),
		log:            log,
		layers:         make(map[string]decor.Set),
		sharedRegistry: shared,
	}
	s.registry.Register(keymap.CmdFocusMode, s.toggleFocusMode)
	s.registry.Register(keymap.CmdTypewriterMode, s.toggleTypewriterMode)
	s.registry.Register(keymap.CmdShowPalette, s.requestPalette)

	// Fix the built-in layer order up front; plugins publishing later keep
	// these slots. Hover comes last so held-modifier styling wins.
	for _, name := range []string{LayerHeadings, LayerBlockquotes, LayerMarks, LayerFocus, LayerHover} {
		s.SetLayer(name, decor.Set{})
	}
	s.runPlugins(ViewUpdate{Old: s.state, New: s.state, Viewport: s.view})
	return s
}

// State returns the current editor state.
func (s *Session) State() *state.EditorState { return s.state }

// History returns the undo history.
func (s *Session) History() *state.History { return s.history }

// Commands returns the session's command registry.
func (s *Session) Commands() *commands.Registry { return s.registry }

// Version increments once per applied transaction.
func (s *Session) Version() uint64 { return s.version }

func (s *Session) ReadClipboard() (string, error) { return s.clip.ReadText() }

func (s *Session) WriteClipboard(text string) error { return s.clip.WriteText(text) }

// Dispatch applies the specs as one transaction, records it for undo, and
// runs the plugin pass. Empty calls are no-ops.
func (s *Session) Dispatch(specs ...state.TransactionSpec) {
	if len(specs) == 0 {
		return
	}
	old := s.state
	tx := old.Update(specs...)
	s.history.Record(tx)
	s.state = tx.State()
	s.version++

	if tx.ScrollIntoView {
		s.RequestScroll(ScrollRequest{Offset: s.state.Selection().MainRange().Head})
	}
	s.runPlugins(ViewUpdate{Old: old, New: s.state, Tx: tx, Viewport: s.view})

	if s.cfg.OnChange != nil && (tx.DocChanged() || tx.SelectionChanged()) {
		s.cfg.OnChange(changeEvent(s, tx.DocChanged()))
	}
}

// SetViewport publishes the visible slice to plugins. Calls with an
// unchanged viewport are no-ops.
func (s *Session) SetViewport(v Viewport) {
	if v == s.view {
		return
	}
	heightChanged := v.Height != s.view.Height
	s.view = v
	s.runPlugins(ViewUpdate{
		Old:             s.state,
		New:             s.state,
		Viewport:        v,
		ViewportChanged: true,
		HeightChanged:   heightChanged,
	})
}

// Viewport returns the last published visible slice.
func (s *Session) Viewport() Viewport { return s.view }

func (s *Session) runPlugins(u ViewUpdate) {
	for _, p := range s.plugins {
		p.Update(s, u)
	}
}

// SetLayer publishes a named decoration layer. First publish fixes the
// layer's position in render order.
func (s *Session) SetLayer(name string, set decor.Set) {
	if _, ok := s.layers[name]; !ok {
		s.layerOrder = append(s.layerOrder, name)
	}
	s.layers[name] = set
}

// Layer returns a published decoration layer by name.
func (s *Session) Layer(name string) decor.Set { return s.layers[name] }

// ClassesAt returns the mark classes covering off, merged across layers in
// render order.
func (s *Session) ClassesAt(off int) []string {
	var classes []string
	for _, name := range s.layerOrder {
		classes = append(classes, s.layers[name].ClassesAt(off)...)
	}
	return classes
}

// LineClasses returns the line classes anchored at lineFrom, merged across
// layers in render order.
func (s *Session) LineClasses(lineFrom int) []string {
	var classes []string
	for _, name := range s.layerOrder {
		classes = append(classes, s.layers[name].LineClasses(lineFrom)...)
	}
	return classes
}

// Schedule queues fn to run on the next flush. The view flushes after the
// current input gesture resolves, so deferred work observes the state the
// gesture settled on.
func (s *Session) Schedule(fn func()) {
	s.scheduled = append(s.scheduled, fn)
}

// HasScheduled reports whether deferred work is queued.
func (s *Session) HasScheduled() bool { return len(s.scheduled) > 0 }

// FlushScheduled runs the queued deferred work. Work scheduled during the
// flush waits for the next one.
func (s *Session) FlushScheduled() {
	queued := s.scheduled
	s.scheduled = nil
	for _, fn := range queued {
		fn()
	}
}

// RequestScroll queues a scroll for the view to apply.
func (s *Session) RequestScroll(r ScrollRequest) {
	s.scrolls = append(s.scrolls, r)
}

func (s *Session) takeScrollRequests() []ScrollRequest {
	out := s.scrolls
	s.scrolls = nil
	return out
}

func (s *Session) setScrollPadding(rows int) { s.padRows = rows }

// ScrollPadding returns the blank rows rendered above and below the
// document while typewriter mode is on.
func (s *Session) ScrollPadding() int { return s.padRows }

// OpenURLAt opens the URL or image path under off when one is visible
// there. The caller places the caret regardless of the result.
func (s *Session) OpenURLAt(off int) bool {
	if s.cfg.OpenURL == nil {
		return false
	}
	opened, err := althover.OpenTarget(
		s.state.Doc(), althover.Value{Held: true},
		s.view.From, s.view.To, off, s.cfg.OpenURL,
	)
	if err != nil {
		s.log.Warn("open url failed", "error", err)
		return false
	}
	return opened
}

func (s *Session) toggleFocusMode() {
	s.Dispatch(state.TransactionSpec{
		Effects: []state.Effect{focus.Toggle.Of(!focus.Get(s.state).Enabled)},
	})
}

func (s *Session) toggleTypewriterMode() {
	s.Dispatch(state.TransactionSpec{
		Effects: []state.Effect{typewriter.Toggle.Of(!typewriter.Enabled(s.state))},
	})
}

func (s *Session) requestPalette() { s.paletteWanted = true }

func (s *Session) takePaletteRequest() bool {
	wanted := s.paletteWanted
	s.paletteWanted = false
	return wanted
}

// Close releases the session: plugin teardown runs and the mode commands
// leave the registry. Required when the registry is shared across editors.
func (s *Session) Close() {
	for _, p := range s.plugins {
		if c, ok := p.(pluginCloser); ok {
			c.Close(s)
		}
	}
	if s.sharedRegistry {
		s.registry.Deregister(keymap.CmdFocusMode)
		s.registry.Deregister(keymap.CmdTypewriterMode)
		s.registry.Deregister(keymap.CmdShowPalette)
	}
	s.scheduled = nil
	s.scrolls = nil
}
