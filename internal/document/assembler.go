package document

import (
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/caption"
	"github.com/nguyentantai21042004/transcript-flow/internal/chapter"
	"github.com/nguyentantai21042004/transcript-flow/internal/paragraph"
	"github.com/nguyentantai21042004/transcript-flow/internal/reflow"
)

const DefaultFlatWindow = 5

// Options tunes the transcript layout. Zero values take defaults.
type Options struct {
	// Width bounds chapter text lines.
	Width int
	// ParagraphSize is the number of cues per chapter paragraph.
	ParagraphSize int
	// FlatWindow is the number of timestamped cues per line in flat mode.
	FlatWindow int
}

// Assembler renders cues into the transcript document.
type Assembler struct {
	segmenter  paragraph.Segmenter
	formatter  *reflow.Formatter
	flatWindow int
}

// NewAssembler returns an Assembler for opts.
func NewAssembler(opts Options) *Assembler {
	if opts.Width <= 0 {
		opts.Width = reflow.TranscriptWidth
	}
	if opts.FlatWindow <= 0 {
		opts.FlatWindow = DefaultFlatWindow
	}
	return &Assembler{
		segmenter:  paragraph.FixedCount(opts.ParagraphSize),
		formatter:  reflow.New(reflow.Options{Width: opts.Width}),
		flatWindow: opts.FlatWindow,
	}
}

// Build parses raw caption content with a fresh Parser and assembles the
// document. With no boundaries the flat timestamped layout is used.
// caption.ErrEmptyStream is returned unwrapped.
func (a *Assembler) Build(content string, boundaries []chapter.Boundary) (string, error) {
	cues, err := caption.NewParser().Parse(content)
	if err != nil {
		return "", err
	}
	if len(boundaries) == 0 {
		return a.Flat(cues), nil
	}
	return a.Assemble(boundaries, chapter.Align(cues, boundaries)), nil
}

// Assemble renders the chapter list followed by one section per boundary,
// both in source order.
func (a *Assembler) Assemble(boundaries []chapter.Boundary, assignment chapter.Assignment) string {
	parts := []string{ChaptersMarker + "\n"}
	for i, b := range boundaries {
		parts = append(parts, entryLine(i+1, b.Title, b.Clock()))
	}
	parts = append(parts, "\n"+ContentMarker+"\n")

	for i, b := range boundaries {
		parts = append(parts, "\n"+headingLine(i+1, b.Title, b.Clock())+"\n")
		if cues := assignment[b.Index]; len(cues) > 0 {
			parts = append(parts, a.ChapterText(cues))
		} else {
			parts = append(parts, EmptyChapter+"\n")
		}
	}
	return strings.Join(parts, "\n")
}

// ChapterText groups cue texts into paragraphs separated by blank lines.
func (a *Assembler) ChapterText(cues []caption.Cue) string {
	paragraphs := a.segmenter.Segment(caption.Texts(cues))
	if len(paragraphs) == 0 {
		return EmptyChapter
	}
	for i, p := range paragraphs {
		paragraphs[i] = a.formatter.Format(p)
	}
	return strings.Join(paragraphs, "\n\n")
}

// Flat renders cues with their timestamps, a fixed number per line, with a
// blank line after every full line.
func (a *Assembler) Flat(cues []caption.Cue) string {
	parts := []string{FlatMarker + "\n"}
	var window []string
	for _, c := range cues {
		window = append(window, c.String())
		if len(window) >= a.flatWindow {
			parts = append(parts, strings.Join(window, " "), "")
			window = nil
		}
	}
	if len(window) > 0 {
		parts = append(parts, strings.Join(window, " "))
	}
	return strings.Join(parts, "\n")
}
