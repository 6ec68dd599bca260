// Package decor implements presentation-only annotations over document
// ranges and lines. A Set is one decoration layer: ordered by position and
// free of overlapping mark ranges. Sets are value types; deriving a new one
// never mutates the old.
package decor

import (
	"sort"

	"github.com/dannysmith/draftsmith/state"
)

// Kind distinguishes mark decorations (a byte range) from line decorations
// (a whole line, addressed by the line's start offset).
type Kind uint8

const (
	KindMark Kind = iota
	KindLine
)

// Decoration tags a range or line with a semantic class. Class names are
// resolved to styles by the rendering layer.
type Decoration struct {
	Kind  Kind
	From  int
	To    int
	Class string
}

// Mark returns a mark decoration over [from, to).
func Mark(from, to int, class string) Decoration {
	return Decoration{Kind: KindMark, From: from, To: to, Class: class}
}

// Line returns a line decoration anchored at the line's start offset.
func Line(lineFrom int, class string) Decoration {
	return Decoration{Kind: KindLine, From: lineFrom, To: lineFrom, Class: class}
}

// Set is one ordered decoration layer.
type Set struct {
	decos []Decoration
}

// Builder accumulates decorations for a Set.
type Builder struct {
	decos []Decoration
}

func (b *Builder) Add(d Decoration) {
	if d.Kind == KindMark {
		if d.To < d.From {
			d.From, d.To = d.To, d.From
		}
		if d.From == d.To {
			return
		}
	}
	b.decos = append(b.decos, d)
}

// Finish sorts the accumulated decorations and enforces the layer contract:
// overlapping marks are dropped deterministically (first in document order
// wins), duplicate line decorations collapse.
func (b *Builder) Finish() Set {
	if len(b.decos) == 0 {
		return Set{}
	}
	decos := append([]Decoration(nil), b.decos...)
	sort.SliceStable(decos, func(i, j int) bool {
		if decos[i].From != decos[j].From {
			return decos[i].From < decos[j].From
		}
		if decos[i].Kind != decos[j].Kind {
			return decos[i].Kind == KindLine
		}
		if decos[i].To != decos[j].To {
			return decos[i].To < decos[j].To
		}
		return decos[i].Class < decos[j].Class
	})

	out := decos[:0]
	lastMarkTo := -1
	for _, d := range decos {
		switch d.Kind {
		case KindMark:
			if d.From < lastMarkTo {
				continue
			}
			lastMarkTo = d.To
		case KindLine:
			if n := len(out); n > 0 && out[n-1].Kind == KindLine &&
				out[n-1].From == d.From && out[n-1].Class == d.Class {
				continue
			}
		}
		out = append(out, d)
	}
	return Set{decos: out}
}

// Len returns the number of decorations in the set.
func (s Set) Len() int { return len(s.decos) }

// Empty reports whether the set holds no decorations.
func (s Set) Empty() bool { return len(s.decos) == 0 }

// ForEach visits every decoration in document order.
func (s Set) ForEach(fn func(Decoration)) {
	for _, d := range s.decos {
		fn(d)
	}
}

// All returns the decorations in document order.
func (s Set) All() []Decoration {
	return append([]Decoration(nil), s.decos...)
}

// ClassesAt returns the mark classes covering byte offset off, in document
// order.
func (s Set) ClassesAt(off int) []string {
	var out []string
	for _, d := range s.decos {
		if d.Kind != KindMark {
			continue
		}
		if d.From > off {
			break
		}
		if off < d.To {
			out = append(out, d.Class)
		}
	}
	return out
}

// LineClasses returns the line classes anchored at lineFrom.
func (s Set) LineClasses(lineFrom int) []string {
	var out []string
	for _, d := range s.decos {
		if d.Kind != KindLine {
			continue
		}
		if d.From > lineFrom {
			break
		}
		if d.From == lineFrom {
			out = append(out, d.Class)
		}
	}
	return out
}

// Map shifts the set through cs against the post-change document. Marks
// shrink away from edge insertions and vanish when their range collapses;
// line decorations re-anchor to the line containing their mapped position.
func (s Set) Map(cs state.ChangeSet, doc *state.Document) Set {
	if cs.Empty() || len(s.decos) == 0 {
		return s
	}
	var b Builder
	for _, d := range s.decos {
		switch d.Kind {
		case KindMark:
			from := cs.MapPos(d.From, 1)
			to := cs.MapPos(d.To, -1)
			if to > from {
				b.Add(Mark(from, to, d.Class))
			}
		case KindLine:
			from := doc.LineAt(cs.MapPos(d.From, -1)).From
			b.Add(Line(from, d.Class))
		}
	}
	return b.Finish()
}
