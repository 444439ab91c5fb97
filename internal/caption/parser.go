package caption

import (
	"regexp"
	"strings"
)

const (
	timecueSeparator = "-->"
	directiveMarker  = "WEBVTT"
	annotationMarker = "NOTE"
)

var reTag = regexp.MustCompile(`<[^>]+>`)

// Parser turns WebVTT-style caption text into cues. Auto-generated captions
// repeat every line across rolling blocks, so a Parser drops any text it has
// already emitted. The set of seen texts spans every Parse call on the same
// Parser: use one Parser per document.
type Parser struct {
	seen map[string]struct{}
}

// NewParser returns a Parser with an empty dedup set.
func NewParser() *Parser {
	return &Parser{seen: make(map[string]struct{})}
}

// Parse splits content into blank-line separated blocks and returns the new
// cues in stream order. It returns ErrEmptyStream when nothing survives.
func (p *Parser) Parse(content string) ([]Cue, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var cues []Cue
	for _, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		cueLine := -1
		for i := 0; i < 2; i++ {
			if strings.Contains(lines[i], timecueSeparator) {
				cueLine = i
				break
			}
		}
		if cueLine < 0 {
			continue
		}

		start := strings.TrimSpace(strings.SplitN(lines[cueLine], timecueSeparator, 2)[0])
		for _, line := range lines[cueLine+1:] {
			text, ok := p.clean(line)
			if !ok {
				continue
			}
			cues = append(cues, Cue{Start: start, Text: text})
		}
	}

	if len(cues) == 0 {
		return nil, ErrEmptyStream
	}
	return cues, nil
}

// clean strips markup from one caption line and reports whether it should be
// emitted.
func (p *Parser) clean(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, directiveMarker) || strings.HasPrefix(line, annotationMarker) {
		return "", false
	}

	text := strings.TrimSpace(reTag.ReplaceAllString(line, ""))
	if text == "" {
		return "", false
	}
	if _, dup := p.seen[text]; dup {
		return "", false
	}
	p.seen[text] = struct{}{}
	return text, true
}
