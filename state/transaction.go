package state

import "strings"

// User-event tags carried by transactions. Dotted segments form a hierarchy:
// IsUserEvent("select") matches "select.pointer".
const (
	EventInput         = "input.type"
	EventPaste         = "input.paste"
	EventDrop          = "input.drop"
	EventDelete        = "delete"
	EventMove          = "move"
	EventSelect        = "select"
	EventSelectPointer = "select.pointer"
	EventUndo          = "undo"
	EventRedo          = "redo"
)

// TransactionSpec describes one requested update. Changes address the
// current document; Selection, when set, addresses the post-change document.
type TransactionSpec struct {
	Changes        []Change
	Selection      *Selection
	Effects        []Effect
	Events         []string
	ScrollIntoView bool
}

// Transaction is one atomic, fully resolved update: normalized changes, the
// resulting document and selection, effects, and user-event tags. It is
// created by EditorState.Update and consumed once via State.
type Transaction struct {
	Start          *EditorState
	Changes        ChangeSet
	Effects        []Effect
	Events         []string
	ScrollIntoView bool

	selection    *Selection
	newDoc       *Document
	newSelection Selection
	next         *EditorState
}

// DocChanged reports whether the transaction changes the document.
func (tx *Transaction) DocChanged() bool { return !tx.Changes.Empty() }

// SelectionSet reports whether the transaction carries an explicit selection
// (as opposed to the start selection mapped through the changes).
func (tx *Transaction) SelectionSet() bool { return tx.selection != nil }

// SelectionChanged reports whether the resulting selection differs from the
// start selection.
func (tx *Transaction) SelectionChanged() bool {
	return !tx.newSelection.Eq(tx.Start.sel)
}

// NewDoc returns the post-transaction document.
func (tx *Transaction) NewDoc() *Document { return tx.newDoc }

// NewSelection returns the post-transaction selection.
func (tx *Transaction) NewSelection() Selection { return tx.newSelection }

// IsUserEvent reports whether any event tag equals prefix or sits below it
// in the dotted hierarchy.
func (tx *Transaction) IsUserEvent(prefix string) bool {
	for _, ev := range tx.Events {
		if ev == prefix {
			return true
		}
		if len(ev) > len(prefix) && strings.HasPrefix(ev, prefix) && ev[len(prefix)] == '.' {
			return true
		}
	}
	return false
}

func (tx *Transaction) resolve() {
	start := tx.Start
	tx.newDoc = start.doc
	if !tx.Changes.Empty() {
		tx.newDoc = tx.Changes.Apply(start.doc)
	}
	switch {
	case tx.selection != nil:
		tx.newSelection = (*tx.selection).clamp(tx.newDoc)
	case !tx.Changes.Empty():
		tx.newSelection = start.sel.Map(tx.Changes).clamp(tx.newDoc)
	default:
		tx.newSelection = start.sel
	}
}

// State applies the transaction, updating every registered field in
// registration order, and returns the next state. The result is memoized; a
// transaction that carries nothing returns the start state unchanged.
func (tx *Transaction) State() *EditorState {
	if tx.next != nil {
		return tx.next
	}
	start := tx.Start
	if !tx.DocChanged() && tx.selection == nil && len(tx.Effects) == 0 && len(tx.Events) == 0 {
		tx.next = start
		return start
	}

	next := &EditorState{
		doc:    tx.newDoc,
		sel:    tx.newSelection,
		shared: start.shared,
		values: make([]any, len(start.values)),
	}
	for i, f := range start.shared.fields {
		next.values[i] = f.update(start.values[i], tx)
	}
	tx.next = next
	return next
}
