package state

type historyEntry struct {
	doc *Document
	sel Selection
}

// History keeps undo/redo snapshots of document and selection. It is owned
// by the editing session; Record is called once per applied transaction.
type History struct {
	limit int
	undo  []historyEntry
	redo  []historyEntry
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1000
	}
	return &History{limit: limit}
}

// Record snapshots the pre-transaction state when tx changed the document.
// Undo and redo transactions are not recorded; any other edit clears the
// redo stack.
func (h *History) Record(tx *Transaction) {
	if !tx.DocChanged() || tx.IsUserEvent(EventUndo) || tx.IsUserEvent(EventRedo) {
		return
	}
	h.undo = append(h.undo, historyEntry{doc: tx.Start.doc, sel: tx.Start.sel})
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo returns a spec restoring the most recent snapshot as a whole-document
// replacement tagged EventUndo.
func (h *History) Undo(s *EditorState) (TransactionSpec, bool) {
	if len(h.undo) == 0 {
		return TransactionSpec{}, false
	}
	i := len(h.undo) - 1
	entry := h.undo[i]
	h.undo = h.undo[:i]
	h.redo = append(h.redo, historyEntry{doc: s.doc, sel: s.sel})
	return restoreSpec(s, entry, EventUndo), true
}

// Redo returns a spec restoring the most recently undone snapshot, tagged
// EventRedo.
func (h *History) Redo(s *EditorState) (TransactionSpec, bool) {
	if len(h.redo) == 0 {
		return TransactionSpec{}, false
	}
	i := len(h.redo) - 1
	entry := h.redo[i]
	h.redo = h.redo[:i]
	h.undo = append(h.undo, historyEntry{doc: s.doc, sel: s.sel})
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	return restoreSpec(s, entry, EventRedo), true
}

func restoreSpec(s *EditorState, entry historyEntry, event string) TransactionSpec {
	sel := entry.sel
	return TransactionSpec{
		Changes:        []Change{{From: 0, To: s.doc.Len(), Insert: entry.doc.String()}},
		Selection:      &sel,
		Events:         []string{event},
		ScrollIntoView: true,
	}
}
