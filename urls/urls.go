// Package urls finds HTTP(S) URLs and image references in arbitrary text.
//
// All functions are pure and never fail; unmatched input yields an empty
// result. Reported offsets are byte offsets shifted by the caller-supplied
// base offset, so viewport-relative scans can report document coordinates.
package urls

import (
	"regexp"
	"sort"
	"strings"
)

// Match is one detected URL or path span.
type Match struct {
	URL  string
	From int
	To   int
}

var (
	markdownLinkRE = regexp.MustCompile(`!?\[[^\]]*\]\(([^)]+)\)`)

	// Bare tokens stop at whitespace and a closing paren, nothing else:
	// trailing commas and similar punctuation stay part of the match.
	bareURLRE = regexp.MustCompile(`https?://[^\s)]+`)

	relativePathRE = regexp.MustCompile(`\.\.?/[^\s)]+`)
	absolutePathRE = regexp.MustCompile(`/[^\s)/][^\s)]*`)
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp", ".ico"}

// FindInText returns every URL in text, ordered by position. Markdown
// link/image syntax is scanned first and claims its whole span, reporting
// only the URL between the parens; a second scan for bare http(s) tokens
// skips anything starting inside a claimed span.
func FindInText(text string, offset int) []Match {
	var matches []Match
	var claimed [][2]int

	for _, m := range markdownLinkRE.FindAllStringSubmatchIndex(text, -1) {
		claimed = append(claimed, [2]int{m[0], m[1]})
		matches = append(matches, Match{
			URL:  text[m[2]:m[3]],
			From: m[2] + offset,
			To:   m[3] + offset,
		})
	}

	for _, m := range bareURLRE.FindAllStringIndex(text, -1) {
		if insideAny(claimed, m[0]) {
			continue
		}
		matches = append(matches, Match{
			URL:  text[m[0]:m[1]],
			From: m[0] + offset,
			To:   m[1] + offset,
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].From < matches[j].From })
	return matches
}

// IsImageURL reports whether path, with query string and fragment stripped,
// ends in a known image extension.
func IsImageURL(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	lower := strings.ToLower(path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// FindImagePaths returns image references in text: remote http(s) URLs,
// ./ or ../ relative paths, and single-leading-slash absolute paths
// (protocol-relative // tokens are excluded). Scans run in that order; a
// later scan never re-reports a span overlapping an earlier match, so the
// result is overlap-free.
func FindImagePaths(text string, offset int) []Match {
	var matches []Match
	var claimed [][2]int

	scan := func(re *regexp.Regexp, guard func(start int) bool) {
		for _, m := range re.FindAllStringIndex(text, -1) {
			if guard != nil && !guard(m[0]) {
				continue
			}
			if overlapsAny(claimed, m[0], m[1]) {
				continue
			}
			tok := text[m[0]:m[1]]
			if !IsImageURL(tok) {
				continue
			}
			claimed = append(claimed, [2]int{m[0], m[1]})
			matches = append(matches, Match{URL: tok, From: m[0] + offset, To: m[1] + offset})
		}
	}

	scan(bareURLRE, nil)
	scan(relativePathRE, nil)
	scan(absolutePathRE, func(start int) bool {
		// A slash preceded by another slash is the tail of a protocol-relative
		// URL, not an absolute path.
		return start == 0 || text[start-1] != '/'
	})

	sort.Slice(matches, func(i, j int) bool { return matches[i].From < matches[j].From })
	return matches
}

func insideAny(spans [][2]int, pos int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}

func overlapsAny(spans [][2]int, from, to int) bool {
	for _, s := range spans {
		if from < s[1] && s[0] < to {
			return true
		}
	}
	return false
}
