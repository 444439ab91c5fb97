package summarizer

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/cache"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/reflow"
)

// Options tunes how summaries are requested and written.
type Options struct {
	Provider    string
	Model       string
	MinWords    int
	Overwrite   bool
	MaxTokens   int
	Temperature float64
	Format      reflow.Options
	Docx        bool
}

type implSummarizer struct {
	opts      Options
	generator Generator
	recorder  Recorder
	formatter *reflow.Formatter
	logger    logger.Logger
}

// New creates a Summarizer. rec may be nil when no catalog is kept.
func New(opts Options, gen Generator, rec Recorder, log logger.Logger) Summarizer {
	return &implSummarizer{
		opts:      opts,
		generator: gen,
		recorder:  rec,
		formatter: reflow.New(opts.Format),
		logger:    log,
	}
}

// OptionsFromConfig maps the summary section of cfg to Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Provider:    cfg.Summary.Provider,
		Model:       cfg.Model(),
		MinWords:    cfg.Summary.MinWords,
		Overwrite:   cfg.Summary.Overwrite,
		MaxTokens:   cfg.Summary.MaxTokens,
		Temperature: cfg.Summary.Temperature,
		Format: reflow.Options{
			Width:       cfg.Summary.Width,
			ListWidth:   cfg.Summary.ListWidth,
			HeaderLimit: cfg.Summary.HeaderLimit,
			Threshold:   cfg.Summary.Threshold,
		},
		Docx: cfg.Summary.Docx,
	}
}

// NewGenerator builds the configured provider, paced by the request rate and
// answered from c when a response is already cached. c may be nil.
func NewGenerator(cfg *config.Config, c *cache.Cache, log logger.Logger) (Generator, error) {
	var (
		gen Generator
		err error
	)
	switch cfg.Summary.Provider {
	case config.ProviderOpenAI:
		gen, err = NewOpenAI(cfg.OpenAI)
	default:
		gen, err = NewGemini(cfg.Gemini, log)
	}
	if err != nil {
		return nil, err
	}

	gen = RateLimited(gen, cfg.Summary.RequestsPerMinute)
	return Cached(gen, c, cfg.Summary.Provider, cfg.Model(), log), nil
}
