package processor

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/document"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/summarizer"
)

// Deps are the optional collaborators of a Processor. Nil fields are skipped.
type Deps struct {
	Catalog    Recorder
	Index      Indexer
	Summarizer summarizer.Summarizer
}

type implProcessor struct {
	cfg       *config.Config
	deps      Deps
	assembler *document.Assembler
	logger    logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	return &implProcessor{
		cfg:  cfg,
		deps: deps,
		assembler: document.NewAssembler(document.Options{
			Width:         cfg.Transcript.Width,
			ParagraphSize: cfg.Transcript.ParagraphSize,
			FlatWindow:    cfg.Transcript.FlatWindow,
		}),
		logger: log,
	}
}
