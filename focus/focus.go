// Package focus implements focus mode: the sentence containing the main
// cursor stays at full intensity while the rest of the document is dimmed.
//
// The mode lives in a state field toggled by the Toggle effect. While
// enabled, every document or selection change recomputes the active sentence
// from the main cursor; the renderer derives the dim layer with Decorations.
package focus

import (
	"github.com/dannysmith/draftsmith/decor"
	"github.com/dannysmith/draftsmith/internal/segment"
	"github.com/dannysmith/draftsmith/state"
)

// ClassDim marks the stretches outside the active sentence.
const ClassDim = "dim"

// Toggle switches focus mode on or off.
var Toggle = state.NewEffectType[bool]("focus.toggle")

// Value is the focus field: whether the mode is on and, when a sentence
// could be found, its span in byte offsets.
type Value struct {
	Enabled  bool
	From, To int
	HasRange bool
}

// Field holds the focus state. Register it with state.Config to enable the
// mode's bookkeeping.
var Field = state.NewField("focus",
	func(*state.EditorState) any { return Value{} },
	func(prev any, tx *state.Transaction) any { return advance(prev.(Value), tx) },
)

// Get returns the focus value for s, or the zero Value when the field is
// not registered.
func Get(s *state.EditorState) Value {
	v, ok := s.Field(Field)
	if !ok {
		return Value{}
	}
	return v.(Value)
}

func advance(v Value, tx *state.Transaction) Value {
	toggled := false
	for _, e := range tx.Effects {
		if on, ok := Toggle.Get(e); ok {
			v.Enabled = on
			toggled = true
		}
	}
	if !v.Enabled {
		return Value{}
	}
	if !toggled && !tx.DocChanged() && !tx.SelectionChanged() {
		return v
	}
	sent, ok := segment.SentenceAt(tx.NewDoc().String(), tx.NewSelection().MainRange().Head)
	if !ok {
		return Value{Enabled: true}
	}
	return Value{Enabled: true, From: sent.From, To: sent.To, HasRange: true}
}

// Decorations returns the dim layer for v over doc: at most two marks
// covering everything outside the active sentence. Zero-width edges are
// dropped, so the dim marks and the sentence span tile the document exactly.
func Decorations(doc *state.Document, v Value) decor.Set {
	if !v.Enabled || !v.HasRange {
		return decor.Set{}
	}
	var b decor.Builder
	b.Add(decor.Mark(0, v.From, ClassDim))
	b.Add(decor.Mark(v.To, doc.Len(), ClassDim))
	return b.Finish()
}
