// Package document builds the chaptered transcript text file and reads it
// back. Both directions share the section markers and the chapter heading
// layout defined here.
package document

import (
	"fmt"
	"regexp"
)

const (
	ChaptersMarker = "=== VIDEO CHAPTERS ==="
	ContentMarker  = "=== TRANSCRIPT BY CHAPTERS ==="
	FlatMarker     = "=== TRANSCRIPT WITH TIMESTAMPS ==="

	// EmptyChapter is written for chapters that received no cues.
	EmptyChapter = "No content found for this chapter."

	headingPrefix = "## Chapter"
)

var reEntry = regexp.MustCompile(`^(\d+)\.\s+(.*?)\s+\((\d+:\d{2})\)$`)

func entryLine(n int, title, clock string) string {
	return fmt.Sprintf("%d. %s (%s)", n, title, clock)
}

func headingLine(n int, title, clock string) string {
	return fmt.Sprintf("%s %d: %s (%s)", headingPrefix, n, title, clock)
}
