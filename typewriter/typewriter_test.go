package typewriter

import (
	"testing"

	"github.com/dannysmith/draftsmith/state"
)

func newState(doc string, sel state.Selection) *state.EditorState {
	return state.NewState(state.Config{
		Doc:          doc,
		Selection:    &sel,
		Fields:       []*state.Field{Field},
		Interceptors: []state.Interceptor{Interceptor},
	})
}

func centerTarget(tx *state.Transaction) (int, bool) {
	for _, e := range tx.Effects {
		if off, ok := CenterCursor.Get(e); ok {
			return off, true
		}
	}
	return 0, false
}

func TestToggleOn_CentersImmediately(t *testing.T) {
	s := newState("a\nb\nc", state.Cursor(2))
	tx := s.Update(state.TransactionSpec{Effects: []state.Effect{Toggle.Of(true)}})

	if off, ok := centerTarget(tx); !ok || off != 2 {
		t.Fatalf("center target: got %d,%v, want 2,true", off, ok)
	}
	if !Enabled(tx.State()) {
		t.Fatal("mode not enabled after toggle")
	}
}

func TestDisabled_NoCentering(t *testing.T) {
	s := newState("abc", state.Cursor(1))
	tx := s.Update(state.TransactionSpec{
		Changes: []state.Change{{From: 1, To: 1, Insert: "x"}},
		Events:  []string{state.EventInput},
	})

	if _, ok := centerTarget(tx); ok {
		t.Fatal("centering fired while disabled")
	}
}

func TestTyping_CentersAtNewCaret(t *testing.T) {
	s := newState("a\nb\nc", state.Cursor(2))
	s = s.Update(state.TransactionSpec{Effects: []state.Effect{Toggle.Of(true)}}).State()

	spec := state.ReplaceSelection(s, "x")
	spec.Events = []string{state.EventInput}
	tx := s.Update(spec)

	if off, ok := centerTarget(tx); !ok || off != 3 {
		t.Fatalf("center target: got %d,%v, want 3,true", off, ok)
	}
}

func TestKeyboardMove_Centers(t *testing.T) {
	s := newState("a\nb\nc", state.Cursor(0))
	s = s.Update(state.TransactionSpec{Effects: []state.Effect{Toggle.Of(true)}}).State()

	sel := state.Cursor(4)
	tx := s.Update(state.TransactionSpec{Selection: &sel, Events: []string{state.EventMove}})

	if off, ok := centerTarget(tx); !ok || off != 4 {
		t.Fatalf("center target: got %d,%v, want 4,true", off, ok)
	}
}

func TestKeyboardExtend_Centers(t *testing.T) {
	s := newState("a\nb\nc", state.Cursor(0))
	s = s.Update(state.TransactionSpec{Effects: []state.Effect{Toggle.Of(true)}}).State()

	sel := state.Single(0, 4)
	tx := s.Update(state.TransactionSpec{Selection: &sel, Events: []string{state.EventSelect}})

	if off, ok := centerTarget(tx); !ok || off != 4 {
		t.Fatalf("center target: got %d,%v, want 4,true", off, ok)
	}
}

// Pointer selections must not center synchronously; the view defers their
// centering until the gesture resolves.
func TestPointerSelection_NoSynchronousCentering(t *testing.T) {
	s := newState("a\nb\nc", state.Cursor(0))
	s = s.Update(state.TransactionSpec{Effects: []state.Effect{Toggle.Of(true)}}).State()

	sel := state.Cursor(4)
	tx := s.Update(state.TransactionSpec{Selection: &sel, Events: []string{state.EventSelectPointer}})

	if _, ok := centerTarget(tx); ok {
		t.Fatal("pointer selection produced a synchronous centering effect")
	}
	if !tx.SelectionChanged() {
		t.Fatal("selection should still move")
	}
}

func TestToggleOff_StopsCentering(t *testing.T) {
	s := newState("abc", state.Cursor(1))
	s = s.Update(state.TransactionSpec{Effects: []state.Effect{Toggle.Of(true)}}).State()

	tx := s.Update(state.TransactionSpec{Effects: []state.Effect{Toggle.Of(false)}})
	if _, ok := centerTarget(tx); ok {
		t.Fatal("disable toggle produced a centering effect")
	}

	s = tx.State()
	tx = s.Update(state.TransactionSpec{
		Changes: []state.Change{{From: 1, To: 1, Insert: "x"}},
		Events:  []string{state.EventInput},
	})
	if _, ok := centerTarget(tx); ok {
		t.Fatal("centering fired after disable")
	}
}

func TestUnchangedSelection_NoCentering(t *testing.T) {
	s := newState("abc", state.Cursor(1))
	s = s.Update(state.TransactionSpec{Effects: []state.Effect{Toggle.Of(true)}}).State()

	sel := state.Cursor(1)
	tx := s.Update(state.TransactionSpec{Selection: &sel, Events: []string{state.EventMove}})

	if _, ok := centerTarget(tx); ok {
		t.Fatal("no-op move produced a centering effect")
	}
}
