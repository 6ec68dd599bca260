// Package segment wraps uniseg with byte-offset helpers for grapheme
// clusters, terminal cell widths, and sentence boundaries.
package segment

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cluster is one grapheme cluster and its byte span [From, To) in the
// source text.
type Cluster struct {
	From int
	To   int
	Text string
}

// Clusters returns the grapheme clusters of text in order.
func Clusters(text string) []Cluster {
	if text == "" {
		return nil
	}
	out := make([]Cluster, 0, len(text))
	state := -1
	var c string
	rest := text
	off := 0
	for len(rest) > 0 {
		c, rest, _, state = uniseg.StepString(rest, state)
		out = append(out, Cluster{From: off, To: off + len(c), Text: c})
		off += len(c)
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	n := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		n++
	}
	return n
}

// NextBoundary returns the byte offset of the first grapheme boundary
// strictly after off, or len(text) if off is at or past the last one.
func NextBoundary(text string, off int) int {
	if off < 0 {
		off = 0
	}
	if off >= len(text) {
		return len(text)
	}
	c, _, _, _ := uniseg.StepString(text[off:], -1)
	return off + len(c)
}

// PrevBoundary returns the byte offset of the last grapheme boundary
// strictly before off, or 0 if off is at or before the first one.
func PrevBoundary(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	if off <= 0 {
		return 0
	}
	prev := 0
	state := -1
	var c string
	rest := text
	at := 0
	for len(rest) > 0 && at < off {
		c, rest, _, state = uniseg.StepString(rest, state)
		prev = at
		at += len(c)
	}
	return prev
}

// Width returns the terminal cell width of text. Tabs are not expanded here;
// callers align them against a tab stop.
func Width(text string) int {
	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		if fallback := uniseg.StringWidth(text); fallback > w {
			w = fallback
		}
	}
	return w
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
