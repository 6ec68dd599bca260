package state

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Document is an immutable text snapshot with a line index.
type Document struct {
	text       string
	lineStarts []int
}

// Line describes one logical line. [From, To) excludes the trailing newline.
type Line struct {
	From   int
	To     int
	Number int // 0-based
	Text   string
}

func NewDocument(text string) *Document {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	starts[0] = 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Document{text: text, lineStarts: starts}
}

func (d *Document) String() string { return d.text }

func (d *Document) Len() int { return len(d.text) }

func (d *Document) LineCount() int { return len(d.lineStarts) }

// Line returns line n, clamped into the document's line range.
func (d *Document) Line(n int) Line {
	if n < 0 {
		n = 0
	}
	if n >= len(d.lineStarts) {
		n = len(d.lineStarts) - 1
	}
	from := d.lineStarts[n]
	to := len(d.text)
	if n+1 < len(d.lineStarts) {
		to = d.lineStarts[n+1] - 1
	}
	return Line{From: from, To: to, Number: n, Text: d.text[from:to]}
}

// LineAt returns the line containing byte offset off. An offset at the very
// end of the document resolves to the last line.
func (d *Document) LineAt(off int) Line {
	off = d.ClampOffset(off)
	n := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > off
	}) - 1
	return d.Line(n)
}

// Slice returns the text in [from, to), clamped to document bounds.
func (d *Document) Slice(from, to int) string {
	from = d.ClampOffset(from)
	to = d.ClampOffset(to)
	if to < from {
		from, to = to, from
	}
	return d.text[from:to]
}

// ClampOffset clamps off into [0, Len()] and snaps it back onto a rune
// boundary.
func (d *Document) ClampOffset(off int) int {
	if off < 0 {
		return 0
	}
	if off >= len(d.text) {
		return len(d.text)
	}
	for off > 0 && !utf8.RuneStart(d.text[off]) {
		off--
	}
	return off
}
