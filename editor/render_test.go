package editor

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dannysmith/draftsmith/althover"
	"github.com/dannysmith/draftsmith/decor"
	"github.com/dannysmith/draftsmith/focus"
	"github.com/dannysmith/draftsmith/state"
)

func TestRender_CursorStylesTheCaretCluster(t *testing.T) {
	m := New(Config{
		Text:  "ab",
		Style: Style{Text: lipgloss.NewStyle(), Cursor: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)},
	})

	got := m.renderContent()
	want := " a b"
	if got != want {
		t.Fatalf("unexpected cursor rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_CursorAtEOLTakesOneCell(t *testing.T) {
	m := New(Config{
		Style: Style{Text: lipgloss.NewStyle(), Cursor: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)},
	})
	m = m.SetText("a")

	got := m.renderContent()
	want := "a   "
	if got != want {
		t.Fatalf("unexpected EOL rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_SelectionCoversTheRange(t *testing.T) {
	m := New(Config{
		Text:  "abcd",
		Style: Style{Text: lipgloss.NewStyle(), Selection: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)},
	})
	sel := state.Single(1, 3)
	m.session.Dispatch(state.TransactionSpec{Selection: &sel})

	got := m.renderContent()
	want := "a b  c d"
	if got != want {
		t.Fatalf("unexpected selection rendering:\n got: %q\nwant: %q", got, want)
	}
}

// staticDim is a test plugin that publishes one dim mark on every pass.
type staticDim struct{ from, to int }

func (p staticDim) Update(s *Session, u ViewUpdate) {
	var b decor.Builder
	b.Add(decor.Mark(p.from, p.to, focus.ClassDim))
	s.SetLayer("test.dim", b.Finish())
}

func TestRender_DecorationsStyleTheMarkedClusters(t *testing.T) {
	m := New(Config{
		Text:    "abc",
		Style:   Style{Text: lipgloss.NewStyle(), Dim: lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)},
		Plugins: []Plugin{staticDim{from: 1, to: 2}},
	})
	m = m.Blur()

	got := m.renderContent()
	want := "a b c"
	if got != want {
		t.Fatalf("unexpected mark rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_HoverStyleAppliesLast(t *testing.T) {
	m := New(Config{
		Text: "x",
		Style: Style{
			Text:     lipgloss.NewStyle(),
			Dim:      lipgloss.NewStyle().PaddingLeft(1),
			URLHover: lipgloss.NewStyle().PaddingRight(1),
		},
	})
	m = m.Blur()

	var db decor.Builder
	db.Add(decor.Mark(0, 1, focus.ClassDim))
	m.session.SetLayer(LayerFocus, db.Finish())

	var hb decor.Builder
	hb.Add(decor.Mark(0, 1, althover.ClassHover))
	m.session.SetLayer(LayerHover, hb.Finish())

	// Padding is never inherited, so the surviving padding identifies the
	// style applied last.
	got := m.renderContent()
	want := "x "
	if got != want {
		t.Fatalf("unexpected layered rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_CurrentLineSelectionAndCursorCompose(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)

	textStyle := r.NewStyle()
	lineStyle := r.NewStyle().Background(lipgloss.Color("236"))
	selStyle := r.NewStyle().Background(lipgloss.Color("237"))
	cursorStyle := r.NewStyle().Reverse(true)

	m := New(Config{
		Text: "word here\nother",
		Style: Style{
			Text:        textStyle,
			CurrentLine: lineStyle,
			Selection:   selStyle,
			Cursor:      cursorStyle,
		},
	})
	m = m.SetSize(20, 4)
	sel := state.Single(0, 4)
	m.session.Dispatch(state.TransactionSpec{Selection: &sel})

	lineBase := lineStyle.Inherit(textStyle)
	selStyled := selStyle.Inherit(lineBase)
	curStyled := cursorStyle.Inherit(lineBase)

	var want strings.Builder
	for _, c := range "word" {
		want.WriteString(selStyled.Render(string(c)))
	}
	want.WriteString(curStyled.Render(" "))
	for _, c := range "here" {
		want.WriteString(lineBase.Render(string(c)))
	}
	want.WriteString("\n")
	for _, c := range "other" {
		want.WriteString(textStyle.Render(string(c)))
	}

	if got := m.renderContent(); got != want.String() {
		t.Fatalf("unexpected styled render:\n got: %q\nwant: %q", got, want.String())
	}
}

func TestRender_TypewriterPaddingAddsBlankRows(t *testing.T) {
	m := New(testConfig("a\nb"))
	m = m.SetSize(10, 5)
	m, _ = m.Update(altRune('t'))

	got := m.renderContent()
	want := "\n\na\nb\n\n"
	if got != want {
		t.Fatalf("unexpected padded content:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_HorizontalClipFollowsCursor(t *testing.T) {
	m := New(Config{Style: Style{Text: lipgloss.NewStyle()}})
	m = m.SetSize(5, 3)
	m = m.SetText("abcdefghij")

	got := m.renderContent()
	want := "ghij "
	if got != want {
		t.Fatalf("unexpected clipped rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_TabsExpandToStops(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"\tx", 10, "    x"},
		{"a\tb", 10, "a   b"},
		// A tab clipped mid-stop renders as blanks to keep columns aligned.
		{"\tx", 3, "   "},
	}
	for _, tt := range tests {
		m := New(Config{Text: tt.text, Style: Style{Text: lipgloss.NewStyle()}})
		m = m.SetSize(tt.width, 3)
		m = m.Blur()

		if got := m.renderContent(); got != tt.want {
			t.Fatalf("render %q at width %d: got %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
