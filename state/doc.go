// Package state implements the transactional document model for draftsmith.
//
// An EditorState is an immutable aggregate of document text, selection, and
// registered field values. Every mutation is described by a transaction
// (changes + selection + effects + user-event tags) and produces a new state;
// nothing is edited in place. Offsets are 0-based byte offsets into UTF-8
// text and always sit on rune boundaries.
package state
