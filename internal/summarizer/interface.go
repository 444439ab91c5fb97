package summarizer

import "context"

// Summarizer reads transcript documents and writes AI-generated summaries.
type Summarizer interface {
	// SummarizeAll summarizes every transcript in transcriptsDir into
	// summariesDir. Per-file failures are counted in the report, not returned.
	SummarizeAll(ctx context.Context, transcriptsDir, summariesDir string) (Report, error)
	// SummarizeFile summarizes one transcript into summariesDir.
	SummarizeFile(ctx context.Context, transcriptPath, summariesDir string) (Outcome, error)
}

// Generator produces text from a system and user prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is one generation call.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Recorder is told where a video's summary was written.
type Recorder interface {
	SetSummary(ctx context.Context, stem, path string) error
}
