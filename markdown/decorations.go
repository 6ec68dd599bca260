package markdown

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/dannysmith/draftsmith/decor"
	"github.com/dannysmith/draftsmith/state"
)

// Decoration classes produced by the providers. The rendering layer resolves
// them to styles; "heading-1".."heading-6" are produced via HeadingClass.
const (
	ClassBlockquoteLine = "blockquote-line"
	ClassHeadingMark    = "heading-mark"
	ClassEmphasisMark   = "emphasis-mark"
)

// HeadingClass returns the line class for an ATX heading of the given level.
func HeadingClass(level int) string {
	return fmt.Sprintf("heading-%d", level)
}

var mdParser = goldmark.DefaultParser()

// Tree is one parse of a document, shared by the decoration providers so a
// document-changed update walks a single syntax tree.
type Tree struct {
	doc    *state.Document
	source []byte
	root   ast.Node
}

// Parse builds the syntax tree for doc.
func Parse(doc *state.Document) *Tree {
	source := []byte(doc.String())
	return &Tree{
		doc:    doc,
		source: source,
		root:   mdParser.Parse(gmtext.NewReader(source)),
	}
}

// HeadingLines tags the starting line of every ATX heading (levels 1-6) with
// a level-specific class. Setext headings are excluded: their opening line
// carries no valid '#' marker run.
func (t *Tree) HeadingLines() decor.Set {
	var b decor.Builder
	t.eachATXHeading(func(n *ast.Heading, lineFrom, _, _ int) {
		b.Add(decor.Line(lineFrom, HeadingClass(n.Level)))
	})
	return b.Finish()
}

// BlockquoteLines tags every line a blockquote spans, first to last
// inclusive. Child paragraphs do not inherit a class put on the blockquote
// node alone, so each spanned line is tagged individually.
func (t *Tree) BlockquoteLines() decor.Set {
	var b decor.Builder
	_ = ast.Walk(t.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindBlockquote {
			return ast.WalkContinue, nil
		}
		start, stop, ok := t.subtreeSpan(n)
		if !ok {
			return ast.WalkContinue, nil
		}
		first := t.doc.LineAt(start).Number
		last := t.doc.LineAt(stop - 1).Number
		for ln := first; ln <= last; ln++ {
			b.Add(decor.Line(t.doc.Line(ln).From, ClassBlockquoteLine))
		}
		return ast.WalkContinue, nil
	})
	return b.Finish()
}

// MarkRanges tags heading '#' runs and emphasis '*'/'_' delimiter runs with
// mark classes. The highlighting engine's own tagging wins over custom tag
// rules for these nodes, so the delimiter spans are decorated directly from
// node segments instead.
func (t *Tree) MarkRanges() decor.Set {
	var b decor.Builder

	t.eachATXHeading(func(_ *ast.Heading, _, markFrom, markTo int) {
		b.Add(decor.Mark(markFrom, markTo, ClassHeadingMark))
	})

	_ = ast.Walk(t.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		em, ok := n.(*ast.Emphasis)
		if !ok {
			return ast.WalkContinue, nil
		}
		start, stop, ok := t.subtreeSpan(em)
		if !ok {
			return ast.WalkContinue, nil
		}
		level := em.Level
		if t.isDelimiterRun(start-level, start) {
			b.Add(decor.Mark(start-level, start, ClassEmphasisMark))
		}
		if t.isDelimiterRun(stop, stop+level) {
			b.Add(decor.Mark(stop, stop+level, ClassEmphasisMark))
		}
		return ast.WalkContinue, nil
	})
	return b.Finish()
}

// eachATXHeading calls fn for every ATX-style heading with the heading's
// line start and the byte span of its opening '#' run.
func (t *Tree) eachATXHeading(fn func(n *ast.Heading, lineFrom, markFrom, markTo int)) {
	_ = ast.Walk(t.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		line := t.doc.LineAt(h.Lines().At(0).Start)
		indent, level, ok := atxMarker(line.Text)
		if !ok || level != h.Level {
			// Setext heading, or a marker that does not match the node.
			return ast.WalkContinue, nil
		}
		fn(h, line.From, line.From+indent, line.From+indent+level)
		return ast.WalkContinue, nil
	})
}

// subtreeSpan returns the [start, stop) byte span covered by the segments of
// n's subtree.
func (t *Tree) subtreeSpan(root ast.Node) (start, stop int, ok bool) {
	start, stop = -1, -1
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		add := func(seg gmtext.Segment) {
			if seg.Start >= seg.Stop {
				return
			}
			if start < 0 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > stop {
				stop = seg.Stop
			}
		}
		if txt, isText := n.(*ast.Text); isText {
			add(txt.Segment)
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				add(lines.At(i))
			}
		}
		return ast.WalkContinue, nil
	})
	return start, stop, start >= 0
}

// isDelimiterRun reports whether [from, to) is a uniform '*' or '_' run.
func (t *Tree) isDelimiterRun(from, to int) bool {
	if from < 0 || to > len(t.source) || from >= to {
		return false
	}
	first := t.source[from]
	if first != '*' && first != '_' {
		return false
	}
	for i := from + 1; i < to; i++ {
		if t.source[i] != first {
			return false
		}
	}
	return true
}

// atxMarker parses an ATX heading marker at the start of a line: up to three
// spaces of indent, one to six '#'s, then a space, tab, or end of line.
func atxMarker(lineText string) (indent, level int, ok bool) {
	i := 0
	for i < len(lineText) && i < 3 && lineText[i] == ' ' {
		i++
	}
	indent = i
	for i < len(lineText) && lineText[i] == '#' {
		i++
	}
	level = i - indent
	if level < 1 || level > 6 {
		return 0, 0, false
	}
	if i < len(lineText) && lineText[i] != ' ' && lineText[i] != '\t' {
		return 0, 0, false
	}
	return indent, level, true
}
