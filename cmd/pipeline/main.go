package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/api"
	"github.com/nguyentantai21042004/transcript-flow/internal/cache"
	"github.com/nguyentantai21042004/transcript-flow/internal/catalog"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/credentials"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
	"github.com/nguyentantai21042004/transcript-flow/internal/search"
	"github.com/nguyentantai21042004/transcript-flow/internal/summarizer"
	"github.com/nguyentantai21042004/transcript-flow/internal/watcher"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run owns every resource of the pipeline, so its deferred Close calls run on
// both the error and the shutdown path.
func run(configPath string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	log := logger.NewWithConfig(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Configuration loaded successfully")

	if err := credentials.Resolve(cfg); err != nil {
		log.Warn(ctx, "Keyring lookup failed: %v", err)
	}

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		return fmt.Errorf("create directories: %w", err)
	}

	// Initialize storage
	store, err := catalog.Open(cfg.Storage.Catalog)
	if err != nil {
		log.Error(ctx, "Failed to open catalog: %v", err)
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	index, err := search.Open(cfg.Storage.Index)
	if err != nil {
		log.Error(ctx, "Failed to open search index: %v", err)
		return fmt.Errorf("open search index: %w", err)
	}
	defer index.Close()

	respCache, err := cache.Open(cfg.Storage.Cache, cache.Options{})
	if err != nil {
		log.Error(ctx, "Failed to open response cache: %v", err)
		return fmt.Errorf("open response cache: %w", err)
	}
	defer respCache.Close()

	// Summaries are optional: without credentials the pipeline only builds
	// transcripts
	var sum summarizer.Summarizer
	gen, err := summarizer.NewGenerator(cfg, respCache, log)
	if err != nil {
		log.Warn(ctx, "Summaries disabled: %v", err)
	} else {
		sum = summarizer.New(summarizer.OptionsFromConfig(cfg), gen, store, log)
	}

	proc := processor.New(cfg, processor.Deps{
		Catalog:    store,
		Index:      index,
		Summarizer: sum,
	}, log)

	// Create watcher with processor as handler and concurrency control
	handler := func(ctx context.Context, path string) error {
		_, err := proc.Process(ctx, path)
		return err
	}
	w, err := watcher.New(cfg.Paths.Inbox, handler, log, cfg.Performance.MaxConcurrent, watcher.DefaultSettle)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start watcher in goroutine
	errChan := make(chan error, 2)
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- fmt.Errorf("watcher: %w", err)
		}
	}()

	// Pick up captions that landed while the pipeline was down
	backlogDone := make(chan struct{})
	go func() {
		defer close(backlogDone)
		if err := proc.ProcessDir(ctx, cfg.Paths.Inbox); err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "Failed to process backlog: %v", err)
		}
	}()

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewServer(api.Options{
			Catalog:        store,
			Index:          index,
			TranscriptsDir: cfg.Paths.Transcripts,
			SummariesDir:   cfg.Paths.Summaries,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Token:          cfg.Server.Token,
		}, log.Slog()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("api server: %w", err)
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Transcripts: %s", cfg.Paths.Transcripts)
	log.Info(ctx, "Summaries: %s (auto: %t)", cfg.Paths.Summaries, cfg.Summary.AutoSummarize && sum != nil)
	log.Info(ctx, "API: %s", cfg.Server.Addr)
	log.Info(ctx, "")
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "%v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "API shutdown: %v", err)
	}

	if err := waitAll(shutdownCtx, watcherDone, backlogDone); err != nil {
		log.Warn(shutdownCtx, "Timed out waiting for processing to finish")
		return err
	}

	log.Info(shutdownCtx, "Transcript Pipeline stopped")
	return nil
}

// waitAll blocks until every channel is closed or ctx ends.
func waitAll(ctx context.Context, dones ...<-chan struct{}) error {
	for _, done := range dones {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	for _, dir := range cfg.Directories() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
