// Package althover implements modifier-hover URL interaction: while the alt
// key is held, URLs in the visible text are marked as hover targets and an
// alt-click opens the one under the pointer.
//
// Held state changes arrive only through the SetHeld effect, dispatched by
// the host input layer on modifier down, modifier up, and window blur.
// Opening a target never consumes the click; the caret is placed regardless.
package althover

import (
	"github.com/dannysmith/draftsmith/decor"
	"github.com/dannysmith/draftsmith/state"
	"github.com/dannysmith/draftsmith/urls"
)

// ClassHover marks spans that react to alt-click.
const ClassHover = "url-hover"

// SetHeld records whether the alt modifier is currently held.
var SetHeld = state.NewEffectType[bool]("althover.held")

// Value is the althover field.
type Value struct {
	Held bool
}

// Field holds the althover state.
var Field = state.NewField("althover",
	func(*state.EditorState) any { return Value{} },
	func(prev any, tx *state.Transaction) any {
		v := prev.(Value)
		for _, e := range tx.Effects {
			if held, ok := SetHeld.Get(e); ok {
				v.Held = held
			}
		}
		return v
	},
)

// Get returns the althover value for s, or the zero Value when the field is
// not registered.
func Get(s *state.EditorState) Value {
	v, ok := s.Field(Field)
	if !ok {
		return Value{}
	}
	return v.(Value)
}

// Held reports whether the modifier is held in s.
func Held(s *state.EditorState) bool { return Get(s).Held }

// Opener opens a URL or file path in the host environment.
type Opener interface {
	Open(target string) error
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(target string) error

func (f OpenerFunc) Open(target string) error { return f(target) }

// Scan returns the hover layer for the visible byte range [from, to) of
// doc. The layer is empty unless the modifier is held; match offsets are in
// document coordinates.
func Scan(doc *state.Document, v Value, from, to int) decor.Set {
	if !v.Held {
		return decor.Set{}
	}
	from = doc.ClampOffset(from)
	to = doc.ClampOffset(to)
	if to < from {
		from, to = to, from
	}
	var b decor.Builder
	for _, m := range urls.FindInText(doc.Slice(from, to), from) {
		b.Add(decor.Mark(m.From, m.To, ClassHover))
	}
	return b.Finish()
}

// TargetAt returns the URL covering off, scanning only the visible range
// [visibleFrom, visibleTo).
func TargetAt(doc *state.Document, visibleFrom, visibleTo, off int) (string, bool) {
	for _, m := range urls.FindInText(doc.Slice(visibleFrom, visibleTo), visibleFrom) {
		if off >= m.From && off < m.To {
			return m.URL, true
		}
	}
	return "", false
}

// OpenTarget opens the URL under off via opener when the modifier is held.
// The first result reports whether a target was opened; it must never be
// used to suppress caret placement, which proceeds for every click.
func OpenTarget(doc *state.Document, v Value, visibleFrom, visibleTo, off int, opener Opener) (bool, error) {
	if !v.Held || opener == nil {
		return false, nil
	}
	target, ok := TargetAt(doc, visibleFrom, visibleTo, off)
	if !ok {
		return false, nil
	}
	return true, opener.Open(target)
}
