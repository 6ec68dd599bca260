// Package keymap layers editor key bindings into fixed precedence tiers:
// the tab trap, domain shortcuts, then the editing defaults. Higher tiers
// are consulted first and the first handler that reports true wins, so
// domain shortcuts can override the defaults without editing their table.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dannysmith/draftsmith/commands"
	"github.com/dannysmith/draftsmith/state"
)

// Target is the editing surface a binding acts on.
type Target interface {
	State() *state.EditorState
	Dispatch(specs ...state.TransactionSpec)
	Commands() *commands.Registry
	History() *state.History
	ReadClipboard() (string, error)
	WriteClipboard(text string) error
}

// Binding pairs a key chord with its handler. Run reports whether the key
// was fully handled; false falls through to the remaining bindings.
type Binding struct {
	Keys key.Binding
	Run  func(t Target) bool
}

// Tier is one ordered group of bindings sharing a precedence level.
type Tier []Binding

// Keymap is an ordered stack of tiers, highest precedence first. Tier order
// is fixed at construction and never changes at runtime.
type Keymap struct {
	Tiers []Tier
}

// Handle offers msg to every tier in precedence order. The first handler
// reporting true short-circuits everything below it.
func (k Keymap) Handle(msg tea.KeyMsg, t Target) bool {
	for _, tier := range k.Tiers {
		for _, b := range tier {
			if !key.Matches(msg, b.Keys) {
				continue
			}
			if b.Run(t) {
				return true
			}
		}
	}
	return false
}
