package state

import "testing"

func TestReplaceSelection_CaretAfterInsert(t *testing.T) {
	s := NewState(Config{Doc: "hello", Selection: selPtr(Cursor(5))})
	next := s.Update(ReplaceSelection(s, " world")).State()

	if got := next.Doc().String(); got != "hello world" {
		t.Fatalf("doc: got %q", got)
	}
	if got := next.Selection().MainRange(); got != (Range{Anchor: 11, Head: 11}) {
		t.Fatalf("caret: got %+v, want 11", got)
	}
}

func TestReplaceSelection_MultiCursor(t *testing.T) {
	s := NewState(Config{
		Doc:       "ab\ncd",
		Selection: selPtr(Selection{Ranges: []Range{{Anchor: 0, Head: 0}, {Anchor: 3, Head: 3}}}),
	})
	next := s.Update(ReplaceSelection(s, "--")).State()

	if got := next.Doc().String(); got != "--ab\n--cd" {
		t.Fatalf("doc: got %q", got)
	}
	sel := next.Selection()
	if len(sel.Ranges) != 2 {
		t.Fatalf("ranges: got %d, want 2", len(sel.Ranges))
	}
	if sel.Ranges[0].Head != 2 || sel.Ranges[1].Head != 7 {
		t.Fatalf("carets: got %d and %d, want 2 and 7", sel.Ranges[0].Head, sel.Ranges[1].Head)
	}
}

func TestReplaceSelection_ReplacesRange(t *testing.T) {
	s := NewState(Config{Doc: "hello world", Selection: selPtr(Single(0, 5))})
	next := s.Update(ReplaceSelection(s, "goodbye")).State()

	if got := next.Doc().String(); got != "goodbye world" {
		t.Fatalf("doc: got %q", got)
	}
	if got := next.Selection().MainRange().Head; got != 7 {
		t.Fatalf("caret: got %d, want 7", got)
	}
}

func TestDeleteSelection(t *testing.T) {
	t.Run("removes ranges", func(t *testing.T) {
		s := NewState(Config{Doc: "hello world", Selection: selPtr(Single(5, 11))})
		next := s.Update(DeleteSelection(s, nil, nil)).State()
		if got := next.Doc().String(); got != "hello" {
			t.Fatalf("doc: got %q", got)
		}
		if got := next.Selection().MainRange().Head; got != 5 {
			t.Fatalf("caret: got %d, want 5", got)
		}
	})

	t.Run("backspace step", func(t *testing.T) {
		back := func(doc *Document, off int) int {
			if off > 0 {
				return doc.ClampOffset(off - 1)
			}
			return 0
		}
		s := NewState(Config{Doc: "abc", Selection: selPtr(Cursor(2))})
		next := s.Update(DeleteSelection(s, back, nil)).State()
		if got := next.Doc().String(); got != "ac" {
			t.Fatalf("doc: got %q", got)
		}
	})

	t.Run("backspace at start is no doc change", func(t *testing.T) {
		back := func(doc *Document, off int) int { return off - 1 }
		s := NewState(Config{Doc: "abc", Selection: selPtr(Cursor(0))})
		tx := s.Update(DeleteSelection(s, back, nil))
		if tx.DocChanged() {
			t.Fatal("expected no document change")
		}
	})
}
