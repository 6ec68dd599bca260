package state

import "testing"

func TestHistory_UndoRedo(t *testing.T) {
	h := NewHistory(10)
	s := NewState(Config{Doc: "one"})

	tx := s.Update(ReplaceSelection(s, "X"))
	h.Record(tx)
	s = tx.State()
	if got := s.Doc().String(); got != "Xone" {
		t.Fatalf("after edit: got %q", got)
	}

	spec, ok := h.Undo(s)
	if !ok {
		t.Fatal("expected undo")
	}
	tx = s.Update(spec)
	if !tx.IsUserEvent(EventUndo) {
		t.Fatal("undo transaction must carry the undo tag")
	}
	h.Record(tx)
	s = tx.State()
	if got := s.Doc().String(); got != "one" {
		t.Fatalf("after undo: got %q", got)
	}
	if h.CanUndo() {
		t.Fatal("undo stack should be empty")
	}

	spec, ok = h.Redo(s)
	if !ok {
		t.Fatal("expected redo")
	}
	tx = s.Update(spec)
	h.Record(tx)
	s = tx.State()
	if got := s.Doc().String(); got != "Xone" {
		t.Fatalf("after redo: got %q", got)
	}
}

func TestHistory_NewEditClearsRedo(t *testing.T) {
	h := NewHistory(10)
	s := NewState(Config{Doc: ""})

	tx := s.Update(ReplaceSelection(s, "a"))
	h.Record(tx)
	s = tx.State()

	spec, _ := h.Undo(s)
	tx = s.Update(spec)
	h.Record(tx)
	s = tx.State()
	if !h.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	tx = s.Update(ReplaceSelection(s, "b"))
	h.Record(tx)
	if h.CanRedo() {
		t.Fatal("new edit must clear redo stack")
	}
}

func TestHistory_IgnoresSelectionOnly(t *testing.T) {
	h := NewHistory(10)
	s := NewState(Config{Doc: "abc"})

	tx := s.Update(TransactionSpec{Selection: selPtr(Cursor(2)), Events: []string{EventSelect}})
	h.Record(tx)
	if h.CanUndo() {
		t.Fatal("selection-only transaction must not be recorded")
	}
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(2)
	s := NewState(Config{Doc: ""})

	for i := 0; i < 5; i++ {
		tx := s.Update(ReplaceSelection(s, "x"))
		h.Record(tx)
		s = tx.State()
	}

	n := 0
	for h.CanUndo() {
		spec, _ := h.Undo(s)
		s = s.Update(spec).State()
		n++
	}
	if n != 2 {
		t.Fatalf("undo depth: got %d, want 2", n)
	}
	if got := s.Doc().String(); got != "xxx" {
		t.Fatalf("after exhausting undo: got %q", got)
	}
}
