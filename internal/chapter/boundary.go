package chapter

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/caption"
)

// Boundary marks where a chapter starts. Index is the chapter's position in
// the source list and is what assignments are keyed by.
type Boundary struct {
	Index        int
	StartSeconds float64
	Title        string
}

// Clock renders the boundary start as MM:SS.
func (b Boundary) Clock() string {
	return caption.FormatClock(b.StartSeconds)
}

// Metadata is a chapter entry as reported by yt-dlp.
type Metadata struct {
	StartTime float64 `json:"start_time" validate:"gte=0"`
	EndTime   float64 `json:"end_time"`
	Title     string  `json:"title"`
}

// FromMetadata builds boundaries in source order. Untitled chapters are named
// after their 1-based position.
func FromMetadata(list []Metadata) []Boundary {
	out := make([]Boundary, 0, len(list))
	for i, m := range list {
		title := strings.TrimSpace(m.Title)
		if title == "" {
			title = fmt.Sprintf("Chapter %d", i+1)
		}
		out = append(out, Boundary{Index: i, StartSeconds: m.StartTime, Title: title})
	}
	return out
}
