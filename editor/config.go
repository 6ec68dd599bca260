package editor

import (
	"log/slog"

	"github.com/dannysmith/draftsmith/althover"
	"github.com/dannysmith/draftsmith/assets"
	"github.com/dannysmith/draftsmith/commands"
	"github.com/dannysmith/draftsmith/drop"
	"github.com/dannysmith/draftsmith/keymap"
)

// Config describes a new editor component. The zero value is a usable
// plain-text editor; every field is optional.
type Config struct {
	// Text is the initial document.
	Text string

	// Style overrides the render styles. The zero value uses DefaultStyle.
	Style Style

	// Settings supplies the host preference snapshot consumed on render.
	// Nil uses DefaultSettings.
	Settings func() Settings

	// Builder handles the compound component-insert chord. Nil or a
	// declining builder falls through to the comment toggle.
	Builder keymap.ComponentBuilder

	// Linker handles the content-link chord, with the same decline
	// contract as Builder.
	Linker keymap.ContentLinker

	// Navigator consumes Tab/Shift-Tab for snippet field traversal before
	// the literal-tab fallback.
	Navigator keymap.FieldNavigator

	// OpenURL opens alt-clicked URL and image targets. Nil disables
	// opening; the caret still moves.
	OpenURL althover.Opener

	// Clipboard backs copy/cut/paste. Nil uses the system clipboard.
	Clipboard Clipboard

	// Commands is a shared registry. Nil gives the session its own. The
	// session registers the mode-toggle and palette commands either way
	// and deregisters them from shared registries on Close.
	Commands *commands.Registry

	// AssetProcessor resolves dropped files into project assets. Nil makes
	// every drop use plain-path fallback formatting.
	AssetProcessor assets.Processor

	// AssetSettings is passed through to the processor.
	AssetSettings assets.Settings

	// ProjectContext supplies the project root, current file, and
	// collection for drops. Nil or incomplete context falls back to plain
	// formatting.
	ProjectContext func() drop.ProjectContext

	// OnChange is called after transactions that change the document or
	// the selection.
	OnChange func(ChangeEvent)

	// Plugins run after the built-in view plugins.
	Plugins []Plugin

	// HistoryLimit caps undo depth. Zero means the default of 100.
	HistoryLimit int

	// Log receives component diagnostics. Nil uses slog.Default.
	Log *slog.Logger
}
