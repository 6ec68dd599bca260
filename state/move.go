package state

import "github.com/dannysmith/draftsmith/internal/segment"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, keeps each anchor and moves the head; if false collapses to a caret
}

// MoveSelection returns a spec that moves every selection range's head by m.
// Plain moves are tagged EventMove, extending moves EventSelect; both request
// ScrollIntoView so the caller's camera can follow.
func MoveSelection(s *EditorState, m Move) TransactionSpec {
	sel := s.Selection()
	ranges := make([]Range, len(sel.Ranges))
	for i, r := range sel.Ranges {
		head := moveOffset(s.doc, r.Head, m)
		if m.Extend {
			ranges[i] = Range{Anchor: r.Anchor, Head: head}
		} else {
			ranges[i] = Range{Anchor: head, Head: head}
		}
	}
	next := Selection{Ranges: ranges, Main: sel.Main}
	event := EventMove
	if m.Extend {
		event = EventSelect
	}
	return TransactionSpec{
		Selection:      &next,
		Events:         []string{event},
		ScrollIntoView: true,
	}
}

func moveOffset(doc *Document, off int, m Move) int {
	off = doc.ClampOffset(off)
	switch m.Unit {
	case MoveGrapheme:
		return moveGrapheme(doc, off, m.Dir)
	case MoveWord:
		return moveWord(doc, off, m.Dir)
	case MoveLine:
		return moveGrapheme(doc, off, m.Dir)
	case MoveDoc:
		return moveDoc(doc, off, m.Dir)
	default:
		return off
	}
}

func moveGrapheme(doc *Document, off int, dir MoveDir) int {
	switch dir {
	case DirLeft:
		return segment.PrevBoundary(doc.String(), off)
	case DirRight:
		return segment.NextBoundary(doc.String(), off)
	case DirUp:
		line := doc.LineAt(off)
		if line.Number == 0 {
			return off
		}
		col := segment.Count(doc.Slice(line.From, off))
		return offsetAtColumn(doc.Line(line.Number-1), col)
	case DirDown:
		line := doc.LineAt(off)
		if line.Number == doc.LineCount()-1 {
			return off
		}
		col := segment.Count(doc.Slice(line.From, off))
		return offsetAtColumn(doc.Line(line.Number+1), col)
	case DirHome:
		return doc.LineAt(off).From
	case DirEnd:
		return doc.LineAt(off).To
	default:
		return off
	}
}

// Word boundary rules follow a single logical line: skip whitespace, then
// skip non-whitespace; the newline is a hard boundary.
func moveWord(doc *Document, off int, dir MoveDir) int {
	line := doc.LineAt(off)
	clusters := segment.Clusters(line.Text)
	col := segment.Count(doc.Slice(line.From, off))

	switch dir {
	case DirLeft:
		i := col
		for i > 0 && segment.IsSpace(clusters[i-1].Text) {
			i--
		}
		for i > 0 && !segment.IsSpace(clusters[i-1].Text) {
			i--
		}
		return offsetAtColumn(line, i)
	case DirRight:
		i := col
		for i < len(clusters) && segment.IsSpace(clusters[i].Text) {
			i++
		}
		for i < len(clusters) && !segment.IsSpace(clusters[i].Text) {
			i++
		}
		return offsetAtColumn(line, i)
	case DirHome:
		return line.From
	case DirEnd:
		return line.To
	default:
		return off
	}
}

func moveDoc(doc *Document, off int, dir MoveDir) int {
	switch dir {
	case DirHome, DirUp:
		return 0
	case DirEnd, DirDown:
		return doc.Len()
	default:
		return off
	}
}

// offsetAtColumn returns the byte offset of grapheme column col in line,
// clamped to the line's cluster count.
func offsetAtColumn(line Line, col int) int {
	if col <= 0 {
		return line.From
	}
	clusters := segment.Clusters(line.Text)
	if col >= len(clusters) {
		return line.To
	}
	return line.From + clusters[col].From
}
