package fetcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/metadata"
)

type fakeExecutor struct {
	out   string
	err   error
	calls [][]string
	// write runs inside ExecuteInDir to mimic files yt-dlp would create.
	write func(dir string)
}

func (f *fakeExecutor) Execute(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.out, f.err
}

func (f *fakeExecutor) ExecuteInDir(_ context.Context, dir string, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.write != nil {
		f.write(dir)
	}
	return f.out, f.err
}

func newTestFetcher(exec *fakeExecutor) Fetcher {
	cfg := config.FetchConfig{Binary: "yt-dlp", Language: "en", MaxVideos: 2}
	return New(cfg, exec, logger.New("error"))
}

func TestListVideos(t *testing.T) {
	exec := &fakeExecutor{out: `{"entries": [
		{"id": "a", "title": "A"}, {"id": "b", "title": "B"}, {"id": "c", "title": "C"}
	]}`}

	videos, err := newTestFetcher(exec).ListVideos(context.Background(), "https://www.youtube.com/@chan", 0)
	require.NoError(t, err)
	assert.Len(t, videos, 2)
	assert.Contains(t, exec.calls[0], "--flat-playlist")
	assert.Contains(t, exec.calls[0], "2")
}

func TestListVideos_CommandFails(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("boom")}
	_, err := newTestFetcher(exec).ListVideos(context.Background(), "x", 5)
	assert.Error(t, err)
}

func TestProbe(t *testing.T) {
	exec := &fakeExecutor{out: `{"id": "a", "title": "A talk", "upload_date": "20240102",
		"chapters": [{"start_time": 0, "title": "Intro"}]}`}

	info, err := newTestFetcher(exec).Probe(context.Background(), "https://www.youtube.com/watch?v=a")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02_A talk", info.Stem())
	assert.Len(t, info.Boundaries(), 1)
}

func TestDownload(t *testing.T) {
	dir := t.TempDir()
	info := &metadata.Info{ID: "a", Title: "A [live] talk", UploadDate: "20240102"}

	exec := &fakeExecutor{write: func(dir string) {
		stem := info.Stem()
		_ = os.WriteFile(filepath.Join(dir, stem+".en.vtt"), []byte("WEBVTT"), 0644)
		_ = os.WriteFile(filepath.Join(dir, stem+metadata.InfoSuffix), []byte("{}"), 0644)
	}}

	res, err := newTestFetcher(exec).Download(context.Background(), info, dir)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02_A [live] talk", res.Stem)
	assert.Equal(t, filepath.Join(dir, res.Stem+".en.vtt"), res.CaptionPath)
	assert.True(t, strings.HasSuffix(res.InfoPath, ".info.json"))
	assert.Contains(t, exec.calls[0], "https://www.youtube.com/watch?v=a")
}

func TestDownload_NoCaptions(t *testing.T) {
	info := &metadata.Info{ID: "a", Title: "Silent"}
	_, err := newTestFetcher(&fakeExecutor{}).Download(context.Background(), info, t.TempDir())
	assert.ErrorIs(t, err, ErrNoCaptions)
}
