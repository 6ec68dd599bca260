// Package typewriter implements typewriter mode: the line holding the main
// cursor is kept vertically centered while text is typed or the caret moves.
//
// The mode is a state field plus an interceptor. The interceptor appends a
// CenterCursor effect to qualifying transactions; the view applies it by
// scrolling. Pointer-driven selections never center synchronously, so click
// and drag place the caret freely; the view schedules a deferred centering
// once the gesture has resolved.
package typewriter

import "github.com/dannysmith/draftsmith/state"

// Toggle switches typewriter mode on or off.
var Toggle = state.NewEffectType[bool]("typewriter.toggle")

// CenterCursor asks the view to vertically center the given byte offset.
var CenterCursor = state.NewEffectType[int]("typewriter.center")

// Value is the typewriter field.
type Value struct {
	Enabled bool
}

// Field holds the typewriter state.
var Field = state.NewField("typewriter",
	func(*state.EditorState) any { return Value{} },
	func(prev any, tx *state.Transaction) any {
		v := prev.(Value)
		for _, e := range tx.Effects {
			if on, ok := Toggle.Get(e); ok {
				v.Enabled = on
			}
		}
		return v
	},
)

// Get returns the typewriter value for s, or the zero Value when the field
// is not registered.
func Get(s *state.EditorState) Value {
	v, ok := s.Field(Field)
	if !ok {
		return Value{}
	}
	return v.(Value)
}

// Enabled reports whether the mode is on in s.
func Enabled(s *state.EditorState) bool { return Get(s).Enabled }

// Interceptor appends a CenterCursor effect to transactions that should keep
// the cursor centered: document edits, keyboard-driven cursor motion, and
// the enabling toggle itself.
func Interceptor(tx *state.Transaction) []state.Effect {
	enabled := Get(tx.Start).Enabled
	justEnabled := false
	for _, e := range tx.Effects {
		if on, ok := Toggle.Get(e); ok {
			enabled = on
			justEnabled = on
		}
	}
	if !enabled {
		return nil
	}

	switch {
	case justEnabled:
	case tx.DocChanged():
	case tx.SelectionChanged() && tx.IsUserEvent(state.EventMove):
	case tx.SelectionChanged() && tx.IsUserEvent(state.EventSelect) && !tx.IsUserEvent(state.EventSelectPointer):
	default:
		return nil
	}
	return []state.Effect{CenterCursor.Of(tx.NewSelection().MainRange().Head)}
}
