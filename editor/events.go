package editor

import "github.com/dannysmith/draftsmith/state"

// ChangeEvent notifies the host that a transaction changed the document or
// the selection. Pure effect transactions (mode toggles, hover state) do
// not fire it.
type ChangeEvent struct {
	// Version increments once per applied transaction.
	Version    uint64
	DocChanged bool
	Text       string
	Selection  state.Selection
}

func changeEvent(s *Session, docChanged bool) ChangeEvent {
	return ChangeEvent{
		Version:    s.version,
		DocChanged: docChanged,
		Text:       s.state.Doc().String(),
		Selection:  s.state.Selection(),
	}
}
