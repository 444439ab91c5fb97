package processor

import (
	"context"

	"github.com/nguyentantai21042004/transcript-flow/internal/catalog"
	"github.com/nguyentantai21042004/transcript-flow/internal/search"
)

// Processor turns caption files into transcript documents.
type Processor interface {
	// Process builds the transcript for one caption file.
	Process(ctx context.Context, captionPath string) (*Result, error)
	// ProcessDir processes every caption file already in dir, a bounded
	// number at a time. Per-file failures are logged.
	ProcessDir(ctx context.Context, dir string) error
}

// Result describes a processed caption file.
type Result struct {
	Stem           string
	TranscriptPath string
	Chapters       int
	Cues           int
	// Empty is set when the caption held no cues and was archived.
	Empty bool
}

// Recorder keeps the catalog row of a video.
type Recorder interface {
	Upsert(ctx context.Context, v *catalog.Video) error
}

// Indexer adds a transcript to the search index.
type Indexer interface {
	IndexTranscript(ctx context.Context, v search.Video, content string) error
}
