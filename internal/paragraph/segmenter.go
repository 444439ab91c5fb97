// Package paragraph groups caption fragments or sentences into paragraphs.
package paragraph

import (
	"regexp"
	"strings"
)

// FlushFunc decides whether the paragraph being built is complete. count is
// the number of fragments collected so far, last the most recent one.
type FlushFunc func(count int, last string) bool

// Segmenter accumulates fragments and emits a paragraph whenever Flush says
// so. Whatever is left at the end becomes the final paragraph.
type Segmenter struct {
	Flush FlushFunc
	// Separator is placed between fragments of one paragraph.
	Separator string
	// Terminate appends a period to paragraphs lacking terminal punctuation.
	Terminate bool
}

const (
	minSentences  = 4
	maxSentences  = 6
	DefaultWindow = 4
)

// Markers are phrases that usually open a new line of thought in speech.
var Markers = []string{
	"so", "now", "but", "however", "first", "second", "third",
	"next", "then", "finally", "in conclusion", "moving on",
	"let me", "let's", "okay", "alright", "well",
}

var reSentenceEnd = regexp.MustCompile(`[.!?]+\s+`)

// SentenceThreshold breaks after at least four sentences once a sentence
// carries a discourse marker, and always after six.
func SentenceThreshold() Segmenter {
	return Segmenter{
		Flush: func(count int, last string) bool {
			return count >= minSentences && (count >= maxSentences || HasMarker(last))
		},
		Separator: ". ",
		Terminate: true,
	}
}

// FixedCount breaks after every n fragments.
func FixedCount(n int) Segmenter {
	if n <= 0 {
		n = DefaultWindow
	}
	return Segmenter{
		Flush: func(count int, _ string) bool {
			return count >= n
		},
		Separator: " ",
	}
}

// Segment returns the paragraphs built from fragments. Blank fragments are
// skipped, so no paragraph is ever empty.
func (s Segmenter) Segment(fragments []string) []string {
	var (
		out     []string
		current []string
	)

	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		current = append(current, f)
		if s.Flush != nil && s.Flush(len(current), f) {
			out = append(out, s.join(current))
			current = nil
		}
	}
	if len(current) > 0 {
		out = append(out, s.join(current))
	}
	return out
}

func (s Segmenter) join(parts []string) string {
	text := strings.Join(parts, s.Separator)
	if s.Terminate && !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		text += "."
	}
	return text
}

// HasMarker reports whether text contains a discourse marker. Matching is a
// case-insensitive substring test, so "also" counts for "so".
func HasMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range Markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// SplitSentences splits on runs of . ! ? followed by whitespace. The
// punctuation at each split point is consumed.
func SplitSentences(text string) []string {
	return reSentenceEnd.Split(text, -1)
}
