// Package markdown provides the syntax-derived decoration providers and the
// editing transforms for markdown documents.
//
// Decorations come from a goldmark syntax-tree walk: hanging-header line
// classes, blockquote line styling, and direct mark classes for heading and
// emphasis delimiter runs. Providers rebuild their sets wholesale on document
// change; callers reuse mapped sets on selection-only updates.
//
// Transforms are pure functions from an editor state to a transaction spec:
// bold/italic wrap-or-unwrap, link creation, heading-level rewrites, HTML
// comment toggling, and cursor duplication to line ends.
package markdown
