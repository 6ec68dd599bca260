package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dannysmith/draftsmith/state"
)

// A transform inspects the current state and produces a transaction spec.
// The bool result is false when the transform does not apply, in which case
// the spec must be ignored.

// ToggleBold wraps every selection range (or the word around a caret) in
// "**", or unwraps it when the delimiters are already present.
func ToggleBold(s *state.EditorState) (state.TransactionSpec, bool) {
	return toggleWrap(s, "**")
}

// ToggleItalic is ToggleBold with a single "*".
func ToggleItalic(s *state.EditorState) (state.TransactionSpec, bool) {
	return toggleWrap(s, "*")
}

func toggleWrap(s *state.EditorState, delim string) (state.TransactionSpec, bool) {
	doc := s.Doc()
	text := doc.String()
	sel := s.Selection()
	d := len(delim)

	var changes []state.Change
	ranges := make([]state.Range, len(sel.Ranges))
	delta := 0

	for i, r := range sel.Ranges {
		from, to := r.From(), r.To()

		if from == to {
			ws, we, ok := wordAround(text, from)
			if !ok {
				// No word context: insert the pair and park the caret inside.
				changes = append(changes, state.Change{From: from, To: from, Insert: delim + delim})
				caret := from + delta + d
				ranges[i] = state.Range{Anchor: caret, Head: caret}
				delta += 2 * d
				continue
			}
			from, to = ws, we
		}

		switch {
		case from >= d && to+d <= len(text) &&
			text[from-d:from] == delim && text[to:to+d] == delim:
			// Delimiters sit just outside the span: unwrap.
			changes = append(changes,
				state.Change{From: from - d, To: from},
				state.Change{From: to, To: to + d},
			)
			ranges[i] = state.Range{Anchor: from - d + delta, Head: to - d + delta}
			delta -= 2 * d

		case to-from >= 2*d && text[from:from+d] == delim && text[to-d:to] == delim:
			// The span includes its own delimiters: unwrap from the inside.
			changes = append(changes,
				state.Change{From: from, To: from + d},
				state.Change{From: to - d, To: to},
			)
			ranges[i] = state.Range{Anchor: from + delta, Head: to - 2*d + delta}
			delta -= 2 * d

		default:
			changes = append(changes,
				state.Change{From: from, To: from, Insert: delim},
				state.Change{From: to, To: to, Insert: delim},
			)
			ranges[i] = state.Range{Anchor: from + d + delta, Head: to + d + delta}
			delta += 2 * d
		}
	}

	next := state.Selection{Ranges: ranges, Main: sel.Main}
	return state.TransactionSpec{
		Changes:        changes,
		Selection:      &next,
		Events:         []string{state.EventInput},
		ScrollIntoView: true,
	}, true
}

// InsertLink turns each selection into "[selection](url)" with the url
// placeholder selected; a caret inserts "[](url)" with the caret in the
// label slot.
func InsertLink(s *state.EditorState) (state.TransactionSpec, bool) {
	sel := s.Selection()

	var changes []state.Change
	ranges := make([]state.Range, len(sel.Ranges))
	delta := 0

	for i, r := range sel.Ranges {
		from, to := r.From(), r.To()
		if from == to {
			changes = append(changes, state.Change{From: from, To: from, Insert: "[](url)"})
			caret := from + delta + 1
			ranges[i] = state.Range{Anchor: caret, Head: caret}
		} else {
			changes = append(changes,
				state.Change{From: from, To: from, Insert: "["},
				state.Change{From: to, To: to, Insert: "](url)"},
			)
			// Select the "url" placeholder: past "](", before ")".
			ranges[i] = state.Range{Anchor: to + delta + 3, Head: to + delta + 6}
		}
		delta += 7
	}

	next := state.Selection{Ranges: ranges, Main: sel.Main}
	return state.TransactionSpec{
		Changes:        changes,
		Selection:      &next,
		Events:         []string{state.EventInput},
		ScrollIntoView: true,
	}, true
}

// SetHeadingLevel rewrites the ATX marker of every line touched by the
// selection. Level 0 demotes to a plain paragraph; levels outside 0..6 do
// not apply.
func SetHeadingLevel(s *state.EditorState, level int) (state.TransactionSpec, bool) {
	if level < 0 || level > 6 {
		return state.TransactionSpec{}, false
	}
	doc := s.Doc()

	prefix := ""
	if level > 0 {
		prefix = strings.Repeat("#", level) + " "
	}

	var changes []state.Change
	for _, ln := range selectedLines(s) {
		line := doc.Line(ln)
		markerLen := atxPrefixLen(line.Text)
		if line.Text[:markerLen] == prefix {
			continue // already at the requested level
		}
		changes = append(changes, state.Change{From: line.From, To: line.From + markerLen, Insert: prefix})
	}
	if len(changes) == 0 {
		return state.TransactionSpec{}, false
	}
	return state.TransactionSpec{
		Changes:        changes,
		Events:         []string{state.EventInput},
		ScrollIntoView: true,
	}, true
}

// ToggleComment wraps the lines spanned by each selection range in an HTML
// comment, or removes the wrapping when the block already carries one.
func ToggleComment(s *state.EditorState) (state.TransactionSpec, bool) {
	doc := s.Doc()
	text := doc.String()

	var changes []state.Change
	seen := map[int]bool{}
	for _, r := range s.Selection().Ranges {
		first := doc.LineAt(r.From())
		lastOff := r.To()
		if lastOff > r.From() {
			lastOff--
		}
		last := doc.LineAt(lastOff)
		if seen[first.From] {
			continue
		}
		seen[first.From] = true

		blockFrom, blockTo := first.From, last.To
		inner := text[blockFrom:blockTo]
		trimmed := strings.TrimSpace(inner)

		if strings.HasPrefix(trimmed, "<!--") && strings.HasSuffix(trimmed, "-->") && len(trimmed) >= 7 {
			openAt := blockFrom + strings.Index(inner, "<!--")
			openEnd := openAt + 4
			if openEnd < blockTo && text[openEnd] == ' ' {
				openEnd++
			}
			closeEnd := blockFrom + strings.LastIndex(inner, "-->") + 3
			closeAt := closeEnd - 3
			if closeAt > openEnd && text[closeAt-1] == ' ' {
				closeAt--
			}
			changes = append(changes,
				state.Change{From: openAt, To: openEnd},
				state.Change{From: closeAt, To: closeEnd},
			)
		} else {
			changes = append(changes,
				state.Change{From: blockFrom, To: blockFrom, Insert: "<!-- "},
				state.Change{From: blockTo, To: blockTo, Insert: " -->"},
			)
		}
	}
	if len(changes) == 0 {
		return state.TransactionSpec{}, false
	}
	return state.TransactionSpec{
		Changes:        changes,
		Events:         []string{state.EventInput},
		ScrollIntoView: true,
	}, true
}

// DuplicateCursorToLineEnds replaces the selection with one caret at the end
// of every line any range touches.
func DuplicateCursorToLineEnds(s *state.EditorState) (state.TransactionSpec, bool) {
	doc := s.Doc()
	lines := selectedLines(s)
	if len(lines) == 0 {
		return state.TransactionSpec{}, false
	}
	ranges := make([]state.Range, len(lines))
	for i, ln := range lines {
		end := doc.Line(ln).To
		ranges[i] = state.Range{Anchor: end, Head: end}
	}
	next := state.Selection{Ranges: ranges, Main: len(ranges) - 1}
	if next.Eq(s.Selection()) {
		return state.TransactionSpec{}, false
	}
	return state.TransactionSpec{
		Selection:      &next,
		Events:         []string{state.EventSelect},
		ScrollIntoView: true,
	}, true
}

// selectedLines returns the distinct line numbers touched by the selection,
// in document order.
func selectedLines(s *state.EditorState) []int {
	doc := s.Doc()
	seen := map[int]bool{}
	var out []int
	for _, r := range s.Selection().Ranges {
		from := doc.LineAt(r.From()).Number
		toOff := r.To()
		if toOff > r.From() {
			// A range ending exactly at a line start does not touch that line.
			toOff--
		}
		to := doc.LineAt(toOff).Number
		for ln := from; ln <= to; ln++ {
			if !seen[ln] {
				seen[ln] = true
				out = append(out, ln)
			}
		}
	}
	return out
}

// atxPrefixLen returns the byte length of the line's ATX marker including
// indent and trailing spacing, or 0 when the line is not a heading.
func atxPrefixLen(lineText string) int {
	indent, level, ok := atxMarker(lineText)
	if !ok {
		return 0
	}
	i := indent + level
	for i < len(lineText) && (lineText[i] == ' ' || lineText[i] == '\t') {
		i++
	}
	return i
}

// wordAround expands off to the word containing or immediately preceding it.
func wordAround(text string, off int) (from, to int, ok bool) {
	isWord := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}

	from, to = off, off
	for from > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:from])
		if !isWord(r) {
			break
		}
		from -= size
	}
	for to < len(text) {
		r, size := utf8.DecodeRuneInString(text[to:])
		if !isWord(r) {
			break
		}
		to += size
	}
	return from, to, from < to
}
