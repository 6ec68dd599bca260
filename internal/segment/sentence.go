package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Sentence is one sentence span [From, To) in byte offsets. Spans tile the
// source text exactly: trailing whitespace after terminal punctuation belongs
// to the preceding sentence.
type Sentence struct {
	From int
	To   int
}

// Abbreviations that UAX#29 splits on when an uppercase word follows. The
// following sentence chunk is merged back into the abbreviation's sentence.
var abbreviations = map[string]bool{
	"mr.":   true,
	"mrs.":  true,
	"ms.":   true,
	"dr.":   true,
	"prof.": true,
	"sr.":   true,
	"jr.":   true,
	"st.":   true,
	"vs.":   true,
	"e.g.":  true,
	"i.e.":  true,
}

// Sentences splits text into sentence spans using uniseg's UAX#29 segmenter,
// then rejoins breaks caused by known abbreviations and single initials.
func Sentences(text string) []Sentence {
	if text == "" {
		return nil
	}

	raw := make([]Sentence, 0, 8)
	state := -1
	var chunk string
	rest := text
	off := 0
	for len(rest) > 0 {
		chunk, rest, state = uniseg.FirstSentenceInString(rest, state)
		raw = append(raw, Sentence{From: off, To: off + len(chunk)})
		off += len(chunk)
	}

	merged := raw[:0]
	for _, s := range raw {
		if n := len(merged); n > 0 && endsWithAbbreviation(text[merged[n-1].From:merged[n-1].To]) {
			merged[n-1].To = s.To
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// SentenceAt returns the sentence span containing off. An offset at or past
// the end of text resolves to the last sentence.
func SentenceAt(text string, off int) (Sentence, bool) {
	sents := Sentences(text)
	if len(sents) == 0 {
		return Sentence{}, false
	}
	if off < 0 {
		off = 0
	}
	for _, s := range sents {
		if off < s.To {
			return s, true
		}
	}
	return sents[len(sents)-1], true
}

func endsWithAbbreviation(chunk string) bool {
	trimmed := strings.TrimRightFunc(chunk, unicode.IsSpace)
	if trimmed == "" || !strings.HasSuffix(trimmed, ".") {
		return false
	}
	// Never merge across a hard line break.
	if strings.ContainsRune(chunk[len(trimmed):], '\n') {
		return false
	}
	word := trimmed
	if i := strings.LastIndexFunc(trimmed, unicode.IsSpace); i >= 0 {
		word = trimmed[i+1:]
	}
	if abbreviations[strings.ToLower(word)] {
		return true
	}
	// Single initials ("J. Smith").
	r, size := utf8.DecodeRuneInString(word)
	return len(word) == size+1 && unicode.IsUpper(r)
}
