// Package editor provides a terminal markdown editor component for Bubble
// Tea programs.
//
// The component is a thin view over an immutable editor state: every
// keystroke, mouse gesture, and command becomes a transaction dispatched
// through a Session, and the Model re-renders from whatever state the
// session holds afterwards. Hosts embed the Model, forward messages to
// Update, and compose View into their own layout.
//
// Editing behavior is extended through view plugins rather than
// subclassing: syntax decorations, focus-mode dimming, typewriter
// centering, and alt-hover URL targets all observe session updates and
// publish decoration layers that the renderer applies per grapheme
// cluster. Hosts can append their own plugins via Config.
//
// The component intentionally renders one row per document line. Long
// lines clip at the right edge and follow the cursor horizontally; there
// is no soft wrap.
package editor
