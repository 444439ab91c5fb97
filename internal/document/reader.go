package document

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MalformedChapterHeaderError reports a chapter heading whose number could
// not be read. The reader skips the heading and the lines under it.
type MalformedChapterHeaderError struct {
	Line string
	Err  error
}

func (e *MalformedChapterHeaderError) Error() string {
	return fmt.Sprintf("malformed chapter header %q: %v", e.Line, e.Err)
}

func (e *MalformedChapterHeaderError) Unwrap() error {
	return e.Err
}

// Chapter is one entry of the chapter list.
type Chapter struct {
	Number int
	Title  string
	Clock  string
}

// Parsed is what the reader recovers from a transcript document.
type Parsed struct {
	// Entries holds the chapter list lines as written, e.g. "1. Intro (00:00)".
	Entries []string
	// Sections maps a zero-based chapter index to its trimmed, non-empty lines.
	Sections map[int][]string
	// Skipped collects headings that could not be parsed.
	Skipped []error
}

// Parse reads the chapter list and per-chapter lines of a document. It never
// fails: a document without markers yields an empty result.
func Parse(content string) *Parsed {
	p := &Parsed{Sections: make(map[int][]string)}

	var (
		inList    bool
		inContent bool
		current   = -1
	)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.Contains(line, ChaptersMarker):
			inList = true
		case strings.Contains(line, ContentMarker):
			inList = false
			inContent = true
		case inList:
			if trimmed != "" && !strings.HasPrefix(line, "=") {
				p.Entries = append(p.Entries, trimmed)
			}
		case inContent && strings.HasPrefix(line, headingPrefix):
			idx, err := headingIndex(line)
			if err != nil {
				p.Skipped = append(p.Skipped, &MalformedChapterHeaderError{Line: line, Err: err})
				current = -1
				continue
			}
			current = idx
			if _, ok := p.Sections[idx]; !ok {
				p.Sections[idx] = []string{}
			}
		case inContent && current >= 0 && trimmed != "":
			p.Sections[current] = append(p.Sections[current], trimmed)
		}
	}
	return p
}

// headingIndex reads N from "## Chapter N: ..." as a zero-based index.
func headingIndex(line string) (int, error) {
	head := strings.SplitN(line, ":", 2)[0]
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return 0, fmt.Errorf("no chapter number")
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, fmt.Errorf("parse chapter number: %w", err)
	}
	if n < 1 {
		return 0, fmt.Errorf("chapter number %d out of range", n)
	}
	return n - 1, nil
}

// HasChapters reports whether the document carried a chapter list.
func (p *Parsed) HasChapters() bool {
	return len(p.Entries) > 0
}

// Chapters parses the chapter list entries. Entries that do not follow the
// "N. Title (MM:SS)" layout are returned with the whole line as title.
func (p *Parsed) Chapters() []Chapter {
	out := make([]Chapter, 0, len(p.Entries))
	for i, e := range p.Entries {
		m := reEntry.FindStringSubmatch(e)
		if m == nil {
			out = append(out, Chapter{Number: i + 1, Title: e})
			continue
		}
		n, _ := strconv.Atoi(m[1])
		out = append(out, Chapter{Number: n, Title: m[2], Clock: m[3]})
	}
	return out
}

// Titles returns the chapter titles in list order.
func (p *Parsed) Titles() []string {
	chapters := p.Chapters()
	out := make([]string, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, c.Title)
	}
	return out
}

// Text returns the lines of chapter idx joined by newlines.
func (p *Parsed) Text(idx int) string {
	return strings.Join(p.Sections[idx], "\n")
}

// Indexes returns the section indexes in ascending order.
func (p *Parsed) Indexes() []int {
	out := make([]int, 0, len(p.Sections))
	for idx := range p.Sections {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
