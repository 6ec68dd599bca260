package state

import "sort"

// Range is one selection range. Anchor is the fixed side, Head the moving
// side; Head < Anchor describes a backwards selection.
type Range struct {
	Anchor int
	Head   int
}

// From returns the lower bound of the range.
func (r Range) From() int {
	if r.Head < r.Anchor {
		return r.Head
	}
	return r.Anchor
}

// To returns the upper bound of the range.
func (r Range) To() int {
	if r.Head > r.Anchor {
		return r.Head
	}
	return r.Anchor
}

// Empty reports whether the range is a bare cursor.
func (r Range) Empty() bool { return r.Anchor == r.Head }

// Selection is an ordered set of ranges with one designated main range.
type Selection struct {
	Ranges []Range
	Main   int
}

// Cursor returns a single-cursor selection at off.
func Cursor(off int) Selection {
	return Selection{Ranges: []Range{{Anchor: off, Head: off}}}
}

// Single returns a one-range selection.
func Single(anchor, head int) Selection {
	return Selection{Ranges: []Range{{Anchor: anchor, Head: head}}}
}

// MainRange returns the designated main range.
func (s Selection) MainRange() Range {
	if len(s.Ranges) == 0 {
		return Range{}
	}
	if s.Main < 0 || s.Main >= len(s.Ranges) {
		return s.Ranges[0]
	}
	return s.Ranges[s.Main]
}

// Eq reports structural equality.
func (s Selection) Eq(o Selection) bool {
	if len(s.Ranges) != len(o.Ranges) || s.Main != o.Main {
		return false
	}
	for i := range s.Ranges {
		if s.Ranges[i] != o.Ranges[i] {
			return false
		}
	}
	return true
}

// Map shifts every range through cs. A cursor stays before text inserted at
// its own position; a non-empty range shrinks away from insertions at its
// edges rather than swallowing them.
func (s Selection) Map(cs ChangeSet) Selection {
	if cs.Empty() {
		return s
	}
	out := Selection{Ranges: make([]Range, len(s.Ranges)), Main: s.Main}
	for i, r := range s.Ranges {
		if r.Empty() {
			p := cs.MapPos(r.Head, -1)
			out.Ranges[i] = Range{Anchor: p, Head: p}
			continue
		}
		from := cs.MapPos(r.From(), 1)
		to := cs.MapPos(r.To(), -1)
		if to < from {
			to = from
		}
		if r.Anchor <= r.Head {
			out.Ranges[i] = Range{Anchor: from, Head: to}
		} else {
			out.Ranges[i] = Range{Anchor: to, Head: from}
		}
	}
	return normalizeSelection(out)
}

// normalizeSelection sorts ranges by From and drops ranges that overlap an
// earlier one, keeping Main pointed at the same surviving range.
func normalizeSelection(s Selection) Selection {
	if len(s.Ranges) == 0 {
		return Selection{Ranges: []Range{{}}}
	}
	if s.Main < 0 || s.Main >= len(s.Ranges) {
		s.Main = 0
	}
	if len(s.Ranges) == 1 {
		return s
	}

	type indexed struct {
		r    Range
		main bool
	}
	tmp := make([]indexed, len(s.Ranges))
	for i, r := range s.Ranges {
		tmp[i] = indexed{r: r, main: i == s.Main}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		if tmp[i].r.From() != tmp[j].r.From() {
			return tmp[i].r.From() < tmp[j].r.From()
		}
		return tmp[i].r.To() < tmp[j].r.To()
	})

	out := Selection{Ranges: make([]Range, 0, len(tmp))}
	lastTo := -1
	for _, e := range tmp {
		if len(out.Ranges) > 0 && e.r.From() < lastTo {
			if e.main && len(out.Ranges) > 0 {
				out.Main = len(out.Ranges) - 1
			}
			continue
		}
		// Two cursors at the same spot collapse into one.
		if len(out.Ranges) > 0 && e.r.Empty() && e.r.From() == lastTo &&
			out.Ranges[len(out.Ranges)-1].Empty() {
			if e.main {
				out.Main = len(out.Ranges) - 1
			}
			continue
		}
		if e.main {
			out.Main = len(out.Ranges)
		}
		out.Ranges = append(out.Ranges, e.r)
		lastTo = e.r.To()
	}
	return out
}

// clamp restricts every range to valid offsets of doc.
func (s Selection) clamp(doc *Document) Selection {
	out := Selection{Ranges: make([]Range, len(s.Ranges)), Main: s.Main}
	for i, r := range s.Ranges {
		out.Ranges[i] = Range{
			Anchor: doc.ClampOffset(r.Anchor),
			Head:   doc.ClampOffset(r.Head),
		}
	}
	return normalizeSelection(out)
}
