package state

// ReplaceSelection replaces every selection range with text and parks each
// caret just after its inserted copy. The caller tags the returned spec with
// the appropriate user event.
func ReplaceSelection(s *EditorState, text string) TransactionSpec {
	sel := s.Selection()
	changes := make([]Change, 0, len(sel.Ranges))
	ranges := make([]Range, len(sel.Ranges))
	delta := 0
	for i, r := range sel.Ranges {
		changes = append(changes, Change{From: r.From(), To: r.To(), Insert: text})
		caret := r.From() + delta + len(text)
		ranges[i] = Range{Anchor: caret, Head: caret}
		delta += len(text) - (r.To() - r.From())
	}
	next := Selection{Ranges: ranges, Main: sel.Main}
	return TransactionSpec{
		Changes:        changes,
		Selection:      &next,
		ScrollIntoView: true,
	}
}

// DeleteSelection removes every non-empty selection range. Empty ranges
// delete one grapheme-sized step supplied by stepBack (backspace) or
// stepForward; pass nil for plain selection deletion only.
func DeleteSelection(s *EditorState, stepBack, stepForward func(doc *Document, off int) int) TransactionSpec {
	sel := s.Selection()
	changes := make([]Change, 0, len(sel.Ranges))
	ranges := make([]Range, len(sel.Ranges))
	delta := 0
	for i, r := range sel.Ranges {
		from, to := r.From(), r.To()
		if from == to {
			switch {
			case stepBack != nil:
				from = stepBack(s.doc, from)
			case stepForward != nil:
				to = stepForward(s.doc, to)
			}
		}
		if to > from {
			changes = append(changes, Change{From: from, To: to})
		}
		caret := from + delta
		ranges[i] = Range{Anchor: caret, Head: caret}
		delta -= to - from
	}
	next := Selection{Ranges: ranges, Main: sel.Main}
	return TransactionSpec{
		Changes:        changes,
		Selection:      &next,
		Events:         []string{EventDelete},
		ScrollIntoView: true,
	}
}
