package reflow

import (
	"strings"
	"unicode/utf8"
)

// Wrap fills text greedily into lines of at most width runes. first prefixes
// the first line and rest every following line; both count toward width.
// Words are never split, so a single overlong word gets a line of its own.
func Wrap(text string, width int, first, rest string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{strings.TrimRight(first, " ")}
	}

	var (
		lines   []string
		b       strings.Builder
		n       int
		hasWord bool
	)
	b.WriteString(first)
	n = utf8.RuneCountInString(first)

	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if hasWord && n+1+wl > width {
			lines = append(lines, b.String())
			b.Reset()
			b.WriteString(rest)
			n = utf8.RuneCountInString(rest)
			hasWord = false
		}
		if hasWord {
			b.WriteByte(' ')
			n++
		}
		b.WriteString(w)
		n += wl
		hasWord = true
	}
	return append(lines, b.String())
}
