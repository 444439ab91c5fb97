// Package reflow rewraps text into width-bounded lines while keeping
// markdown headers, bullets and numbered items recognisable.
package reflow

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultWidth       = 80
	DefaultListWidth   = 75
	DefaultHeaderLimit = 120
	TranscriptWidth    = 100
)

// Options controls line widths. Lines no longer than Threshold are left
// alone; Threshold defaults to Width.
type Options struct {
	Width       int
	ListWidth   int
	HeaderLimit int
	Threshold   int
}

// Formatter reflows text line by line.
type Formatter struct {
	opts Options
}

// New returns a Formatter, filling zero options with defaults.
func New(opts Options) *Formatter {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.ListWidth <= 0 {
		opts.ListWidth = DefaultListWidth
	}
	if opts.HeaderLimit <= 0 {
		opts.HeaderLimit = DefaultHeaderLimit
	}
	if opts.Threshold <= 0 {
		opts.Threshold = opts.Width
	}
	return &Formatter{opts: opts}
}

// Options returns the effective options.
func (f *Formatter) Options() Options {
	return f.opts
}

// Format reflows every line of text and keeps line order.
func (f *Formatter) Format(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, f.Line(line)...)
	}
	return strings.Join(out, "\n")
}

// Line reflows a single line into one or more lines.
func (f *Formatter) Line(line string) []string {
	if strings.TrimSpace(line) == "" {
		return []string{line}
	}
	length := utf8.RuneCountInString(line)
	if length <= f.opts.Threshold {
		return []string{line}
	}

	stripped := strings.TrimLeftFunc(line, unicode.IsSpace)
	indent := line[:len(line)-len(stripped)]

	if strings.HasPrefix(stripped, "#") && length < f.opts.HeaderLimit {
		return []string{line}
	}

	if marker, body, ok := bullet(stripped); ok {
		prefix := indent + marker + " "
		return Wrap(body, f.opts.ListWidth, prefix, hanging(prefix))
	}

	if number, body, ok := numbered(stripped); ok {
		prefix := indent + number + ". "
		return Wrap(body, f.opts.ListWidth, prefix, hanging(prefix))
	}

	return Wrap(stripped, f.opts.Width, indent, indent)
}

// bullet splits "- text" or "* text". The marker must be followed by
// whitespace so that "**bold**" stays a plain line.
func bullet(s string) (marker, body string, ok bool) {
	if len(s) < 2 || (s[0] != '-' && s[0] != '*') {
		return "", "", false
	}
	if s[1] != ' ' && s[1] != '\t' {
		return "", "", false
	}
	return s[:1], strings.TrimSpace(s[1:]), true
}

// numbered splits "12. text"; the period has to fall within the first five
// characters and be followed by whitespace, so "1.5 million" stays plain.
func numbered(s string) (number, body string, ok bool) {
	dot := strings.IndexByte(s, '.')
	if dot <= 0 || dot >= 5 {
		return "", "", false
	}
	if dot+1 >= len(s) || (s[dot+1] != ' ' && s[dot+1] != '\t') {
		return "", "", false
	}
	for i := 0; i < dot; i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", "", false
		}
	}
	return s[:dot], strings.TrimSpace(s[dot+1:]), true
}

func hanging(prefix string) string {
	return strings.Repeat(" ", utf8.RuneCountInString(prefix))
}
