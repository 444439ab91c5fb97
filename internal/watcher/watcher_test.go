package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

func TestWatcher_HandlesCaptionFiles(t *testing.T) {
	dir := t.TempDir()
	seen := make(chan string, 4)

	w, err := New(dir, func(_ context.Context, path string) error {
		seen <- filepath.Base(path)
		return nil
	}, logger.New("error"), 1, 0)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "talk.en.vtt"), []byte("WEBVTT"), 0644))

	select {
	case name := <-seen:
		assert.Equal(t, "talk.en.vtt", name)
	case <-time.After(5 * time.Second):
		t.Fatal("caption file was not handled")
	}

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Empty(t, seen)
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.New("error"), 1, 0)
	assert.Error(t, err)
}
