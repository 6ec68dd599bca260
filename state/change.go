package state

import (
	"sort"
	"strings"
)

// Change replaces the bytes in [From, To) of the pre-transaction document
// with Insert. A pure insertion has From == To; a pure deletion an empty
// Insert.
type Change struct {
	From   int
	To     int
	Insert string
}

// ChangeSet is a normalized group of changes: clamped to the document,
// sorted by From, non-overlapping. All coordinates address the document the
// set was built against.
type ChangeSet struct {
	changes   []Change
	lenBefore int
	lenAfter  int
}

// NewChangeSet normalizes changes against doc. Out-of-bounds offsets are
// clamped, inverted ranges swapped, no-ops dropped, and any change
// overlapping an earlier one is dropped deterministically.
func NewChangeSet(doc *Document, changes ...Change) ChangeSet {
	cs := ChangeSet{lenBefore: doc.Len(), lenAfter: doc.Len()}
	if len(changes) == 0 {
		return cs
	}

	norm := make([]Change, 0, len(changes))
	for _, ch := range changes {
		from := doc.ClampOffset(ch.From)
		to := doc.ClampOffset(ch.To)
		if to < from {
			from, to = to, from
		}
		if from == to && ch.Insert == "" {
			continue
		}
		norm = append(norm, Change{From: from, To: to, Insert: ch.Insert})
	}
	if len(norm) == 0 {
		return cs
	}

	sort.SliceStable(norm, func(i, j int) bool {
		if norm[i].From != norm[j].From {
			return norm[i].From < norm[j].From
		}
		return norm[i].To < norm[j].To
	})

	kept := norm[:0]
	lastTo := -1
	for _, ch := range norm {
		if len(kept) > 0 && ch.From < lastTo {
			continue
		}
		// Two insertions at the same point keep their order; a replacement
		// starting exactly at a previous insertion point is fine too.
		kept = append(kept, ch)
		if ch.To > lastTo {
			lastTo = ch.To
		}
	}

	cs.changes = kept
	for _, ch := range kept {
		cs.lenAfter += len(ch.Insert) - (ch.To - ch.From)
	}
	return cs
}

// Empty reports whether the set contains no effective change.
func (cs ChangeSet) Empty() bool { return len(cs.changes) == 0 }

// LenBefore returns the length of the document the set was built against.
func (cs ChangeSet) LenBefore() int { return cs.lenBefore }

// LenAfter returns the document length after applying the set.
func (cs ChangeSet) LenAfter() int { return cs.lenAfter }

// Changes returns the normalized changes in document order.
func (cs ChangeSet) Changes() []Change {
	return append([]Change(nil), cs.changes...)
}

// Apply produces the document that results from applying the set to doc.
func (cs ChangeSet) Apply(doc *Document) *Document {
	if cs.Empty() {
		return doc
	}
	var sb strings.Builder
	if cs.lenAfter > 0 {
		sb.Grow(cs.lenAfter)
	}
	text := doc.String()
	last := 0
	for _, ch := range cs.changes {
		sb.WriteString(text[last:ch.From])
		sb.WriteString(ch.Insert)
		last = ch.To
	}
	sb.WriteString(text[last:])
	return NewDocument(sb.String())
}

// MapPos maps a pre-change offset into post-change coordinates. assoc
// controls behavior at insertion points and inside deleted spans: assoc <= 0
// stays before inserted text (a deleted position collapses to the change
// start), assoc > 0 lands after it.
func (cs ChangeSet) MapPos(pos, assoc int) int {
	delta := 0
	for _, ch := range cs.changes {
		insLen := len(ch.Insert)
		deadLen := ch.To - ch.From
		switch {
		case ch.To < pos, ch.To == pos && deadLen > 0:
			delta += insLen - deadLen
		case ch.From > pos, ch.From == pos && deadLen > 0:
			return pos + delta
		case ch.From == pos && deadLen == 0:
			if assoc > 0 {
				delta += insLen
			}
		default: // ch.From < pos < ch.To
			if assoc <= 0 {
				return ch.From + delta
			}
			return ch.From + delta + insLen
		}
	}
	return pos + delta
}
