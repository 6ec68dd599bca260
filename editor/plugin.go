package editor

import (
	"github.com/dannysmith/draftsmith/althover"
	"github.com/dannysmith/draftsmith/decor"
	"github.com/dannysmith/draftsmith/focus"
	"github.com/dannysmith/draftsmith/markdown"
	"github.com/dannysmith/draftsmith/state"
	"github.com/dannysmith/draftsmith/typewriter"
)

// Viewport is the visible slice of the document plus the camera geometry.
// From and To are byte offsets covering the visible lines; Height counts
// content rows, including typewriter padding rows.
type Viewport struct {
	From, To      int
	Width, Height int
}

// ViewUpdate is what plugins observe. Tx is nil when only the viewport
// moved; Old and New are then the same state.
type ViewUpdate struct {
	Old, New *state.EditorState
	Tx       *state.Transaction
	Viewport Viewport

	ViewportChanged bool
	HeightChanged   bool
}

// Plugin reacts to session updates by publishing decoration layers,
// requesting scrolls, or scheduling deferred work. Plugins run in order
// after every transaction and after viewport moves.
type Plugin interface {
	Update(s *Session, u ViewUpdate)
}

// pluginCloser is implemented by plugins that hold view state needing
// restore when the session shuts down.
type pluginCloser interface {
	Close(s *Session)
}

// Decoration layer names, in render order. Later layers win where styles
// overlap. Host plugins may publish additional layers; they render after
// the built-ins in first-publish order.
const (
	LayerHeadings    = "syntax.headings"
	LayerBlockquotes = "syntax.blockquotes"
	LayerMarks       = "syntax.marks"
	LayerFocus       = "focus.dim"
	LayerHover       = "althover.targets"
)

func defaultPlugins() []Plugin {
	return []Plugin{
		&syntaxPlugin{},
		&focusPlugin{},
		hoverPlugin{},
		&typewriterPlugin{},
	}
}

// syntaxPlugin derives markdown decorations from the document. One parse
// per document change feeds all three layers; selection-only and
// viewport-only updates keep the previous sets.
type syntaxPlugin struct {
	built bool
}

func (p *syntaxPlugin) Update(s *Session, u ViewUpdate) {
	if p.built && (u.Tx == nil || !u.Tx.DocChanged()) {
		return
	}
	p.built = true
	tree := markdown.Parse(u.New.Doc())
	s.SetLayer(LayerHeadings, tree.HeadingLines())
	s.SetLayer(LayerBlockquotes, tree.BlockquoteLines())
	s.SetLayer(LayerMarks, tree.MarkRanges())
}

// focusPlugin projects the focus field into dim decorations. The field
// already tracks the active sentence, so the layer only rebuilds when the
// value or the document changes.
type focusPlugin struct {
	last    focus.Value
	hasLast bool
}

func (p *focusPlugin) Update(s *Session, u ViewUpdate) {
	if u.Tx == nil {
		return
	}
	v := focus.Get(u.New)
	if p.hasLast && v == p.last && !u.Tx.DocChanged() {
		return
	}
	p.last, p.hasLast = v, true
	if !v.Enabled {
		s.SetLayer(LayerFocus, decor.Set{})
		return
	}
	s.SetLayer(LayerFocus, focus.Decorations(u.New.Doc(), v))
}

// hoverPlugin rescans the visible range for URL targets while the alt
// modifier is held. The scan window is only the viewport slice, so it also
// reruns when the camera moves.
type hoverPlugin struct{}

func (hoverPlugin) Update(s *Session, u ViewUpdate) {
	v := althover.Get(u.New)
	if !v.Held {
		s.SetLayer(LayerHover, decor.Set{})
		return
	}
	s.SetLayer(LayerHover, althover.Scan(u.New.Doc(), v, u.Viewport.From, u.Viewport.To))
}

// typewriterPlugin owns the view half of typewriter mode: padding rows so
// boundary lines can reach the vertical center, immediate centering for
// CenterCursor effects, and deferred centering for pointer selections so a
// click is not recentered mid-gesture.
type typewriterPlugin struct {
	pendingCenter bool
}

func (p *typewriterPlugin) Update(s *Session, u ViewUpdate) {
	pad := 0
	if typewriter.Enabled(u.New) && u.Viewport.Height > 0 {
		pad = (u.Viewport.Height - 1) / 2
	}
	s.setScrollPadding(pad)

	if u.Tx == nil || !typewriter.Enabled(u.New) {
		return
	}
	for _, e := range u.Tx.Effects {
		if off, ok := typewriter.CenterCursor.Get(e); ok {
			s.RequestScroll(ScrollRequest{Offset: off, Center: true})
		}
	}
	if u.Tx.SelectionChanged() && u.Tx.IsUserEvent(state.EventSelectPointer) && !p.pendingCenter {
		p.pendingCenter = true
		s.Schedule(func() {
			p.pendingCenter = false
			if !typewriter.Enabled(s.State()) {
				return
			}
			s.RequestScroll(ScrollRequest{
				Offset: s.State().Selection().MainRange().Head,
				Center: true,
			})
		})
	}
}

func (p *typewriterPlugin) Close(s *Session) {
	s.setScrollPadding(0)
}
