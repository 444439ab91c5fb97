package fetcher

import (
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

type implFetcher struct {
	cfg      config.FetchConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Fetcher backed by the yt-dlp binary in cfg.
func New(cfg config.FetchConfig, exec executor.Executor, log logger.Logger) Fetcher {
	return &implFetcher{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
