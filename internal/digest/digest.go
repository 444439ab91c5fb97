// Package digest turns summary files into the JSON records the web index
// reads.
package digest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/nguyentantai21042004/transcript-flow/internal/naming"
	"github.com/nguyentantai21042004/transcript-flow/pkg/fileutil"
)

const (
	untitled = "Untitled"

	overviewHeading = "Overview"
	topicsHeading   = "Main Topics Covered"
	chaptersHeading = "Chapter Breakdown"
)

var reDate = regexp.MustCompile(`(?m)^\*\*Date:\*\* (.+)$`)

// Record is one summary as published to the web index.
type Record struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	SortDate string `json:"sort_date"`
	Overview string `json:"overview"`
	Topics   string `json:"topics"`
	Chapters string `json:"chapters"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Parse extracts a Record from summary markdown.
func Parse(filename string, src []byte) Record {
	r := Record{
		Title:    untitled,
		Filename: filename,
		Content:  string(src),
	}

	if m := reDate.FindSubmatch(src); m != nil {
		r.Date = strings.TrimSpace(string(m[1]))
	}
	r.SortDate = sortDate(r.Date)

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var headings []*ast.Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		if h.Level == 1 && r.Title == untitled {
			r.Title = strings.TrimSpace(string(h.Text(src)))
		}
		if h.Level <= 2 {
			headings = append(headings, h)
		}
	}

	for i, h := range headings {
		if h.Level != 2 {
			continue
		}
		name := string(h.Text(src))
		var next *ast.Heading
		if i+1 < len(headings) {
			next = headings[i+1]
		}
		body := sectionBody(src, h, next)

		switch {
		case strings.Contains(name, overviewHeading) && r.Overview == "":
			r.Overview = body
		case strings.Contains(name, topicsHeading) && r.Topics == "":
			r.Topics = body
		case strings.Contains(name, chaptersHeading) && r.Chapters == "":
			r.Chapters = body
		}
	}
	return r
}

// sectionBody returns the raw markdown between heading h and next, cut at a
// thematic break so the footer is not part of the last section.
func sectionBody(src []byte, h, next *ast.Heading) string {
	start := lineEnd(src, headingStop(h))
	end := len(src)
	if next != nil {
		end = lineStart(src, headingStart(next))
	}
	if start >= end {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(string(src[start:end]), "\n") {
		if strings.TrimSpace(line) == "---" {
			break
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func headingStart(h *ast.Heading) int {
	if h.Lines().Len() == 0 {
		return 0
	}
	return h.Lines().At(0).Start
}

func headingStop(h *ast.Heading) int {
	lines := h.Lines()
	if lines.Len() == 0 {
		return 0
	}
	return lines.At(lines.Len() - 1).Stop
}

func lineStart(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

func lineEnd(src []byte, pos int) int {
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

func sortDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("2006-01-02T15:04:05")
}

// Collect parses every summary file in dir, newest first.
func Collect(dir string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read summaries dir: %w", err)
	}

	records := []Record{}
	for _, e := range entries {
		if e.IsDir() || !naming.IsSummary(e.Name()) {
			continue
		}
		src, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read summary %s: %w", e.Name(), err)
		}
		records = append(records, Parse(e.Name(), src))
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].SortDate != records[j].SortDate {
			return records[i].SortDate > records[j].SortDate
		}
		return records[i].Filename < records[j].Filename
	})
	return records, nil
}

// WriteJSON writes records to path as indented JSON, replacing the file
// atomically.
func WriteJSON(path string, records []Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode digest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create digest dir: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	return nil
}
