package reflow

import (
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/paragraph"
)

// Transcript turns running caption text into sentence-grouped paragraphs,
// each wrapped at width, one wrapped line per output line.
func Transcript(fragments []string, width int) string {
	if width <= 0 {
		width = TranscriptWidth
	}

	sentences := paragraph.SplitSentences(strings.Join(fragments, " "))
	var lines []string
	for _, p := range paragraph.SentenceThreshold().Segment(sentences) {
		lines = append(lines, Wrap(p, width, "", "")...)
	}
	return strings.Join(lines, "\n")
}
