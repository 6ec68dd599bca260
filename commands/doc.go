// Package commands implements the session command registry: a mapping from
// stable command ids to zero-argument callbacks, populated by the hosting
// application at editor-session start and discarded at session end.
//
// Keybindings and menus invoke commands by id instead of mutating state
// directly, which decouples input handling from state ownership. Executing an
// unknown id is a logged no-op rather than an error, tolerating registration
// races during setup and teardown.
//
// The registry is owned by the single-threaded editor loop and needs no
// locking.
package commands
