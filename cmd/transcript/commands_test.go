package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

const sampleVTT = `WEBVTT

00:00:01.000 --> 00:00:03.000
welcome to the channel.

00:00:04.000 --> 00:00:06.000
today we talk about essays.
`

func newTestApp(t *testing.T) (*app, string) {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{Paths: config.PathsConfig{
		Inbox:       filepath.Join(root, "in"),
		Transcripts: filepath.Join(root, "transcripts"),
	}}
	require.NoError(t, cfg.Validate())
	require.NoError(t, os.MkdirAll(cfg.Paths.Inbox, 0755))
	return &app{cfg: cfg, log: logger.New("error")}, root
}

func TestRunBuild_ReplacesTranscript(t *testing.T) {
	a, root := newTestApp(t)
	captionPath := filepath.Join(a.cfg.Paths.Inbox, "2024-01-02_Talk.en.vtt")
	require.NoError(t, os.WriteFile(captionPath, []byte(sampleVTT), 0644))

	out := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(out, 0755))
	target := filepath.Join(out, "2024-01-02_Talk.txt")
	require.NoError(t, os.WriteFile(target, []byte("stale"), 0644))

	require.NoError(t, runBuild(context.Background(), a, []string{"-out", out, captionPath}))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "=== TRANSCRIPT WITH TIMESTAMPS ==="))
	assert.Contains(t, string(data), "welcome to the channel.")

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunBuild_Plain(t *testing.T) {
	a, root := newTestApp(t)
	captionPath := filepath.Join(a.cfg.Paths.Inbox, "2024-01-02_Talk.en.vtt")
	require.NoError(t, os.WriteFile(captionPath, []byte(sampleVTT), 0644))

	out := filepath.Join(root, "plain")
	require.NoError(t, runBuild(context.Background(), a, []string{"-out", out, "-plain", captionPath}))

	data, err := os.ReadFile(filepath.Join(out, "2024-01-02_Talk.txt"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "===")
	assert.NotContains(t, string(data), "[00:")
	assert.Contains(t, string(data), "today we talk about essays.")
}

func TestRunBuild_Usage(t *testing.T) {
	a, _ := newTestApp(t)
	assert.ErrorIs(t, runBuild(context.Background(), a, nil), errUsage)
}
