package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
)

func TestWaitAll(t *testing.T) {
	watcherDone := make(chan struct{})
	backlogDone := make(chan struct{})
	close(watcherDone)

	finished := false
	go func() {
		time.Sleep(20 * time.Millisecond)
		finished = true
		close(backlogDone)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, waitAll(ctx, watcherDone, backlogDone))
	assert.True(t, finished, "returned before the backlog finished")
}

func TestWaitAll_Timeout(t *testing.T) {
	pending := make(chan struct{})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, waitAll(ctx, pending), context.DeadlineExceeded)
}

func TestRun_MissingConfig(t *testing.T) {
	err := run(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "load config")
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{Paths: config.PathsConfig{
		Inbox:       filepath.Join(root, "in"),
		Transcripts: filepath.Join(root, "out"),
		Videos:      filepath.Join(root, "videos"),
		Summaries:   filepath.Join(root, "summaries"),
		Archived:    filepath.Join(root, "archived"),
		Data:        filepath.Join(root, "data"),
		Digest:      filepath.Join(root, "web", "summaries.json"),
	}}
	require.NoError(t, cfg.Validate())
	require.NoError(t, ensureDirectories(cfg))
	assert.DirExists(t, filepath.Join(root, "in"))
	assert.DirExists(t, filepath.Join(root, "data"))
}
