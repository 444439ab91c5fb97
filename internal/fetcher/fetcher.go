package fetcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/metadata"
)

// ErrNoCaptions is returned when yt-dlp finished but wrote no caption file.
var ErrNoCaptions = errors.New("no captions available")

// ListVideos returns the newest entries of a channel or playlist.
func (f *implFetcher) ListVideos(ctx context.Context, channelURL string, max int) ([]metadata.Info, error) {
	if max <= 0 {
		max = f.cfg.MaxVideos
	}

	f.logger.Info(ctx, "Listing up to %d videos from %s", max, channelURL)
	out, err := f.executor.Execute(ctx, f.cfg.Binary,
		"--flat-playlist",
		"--dump-single-json",
		"--playlist-end", strconv.Itoa(max),
		channelURL,
	)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	entries, err := metadata.DecodePlaylist([]byte(out))
	if err != nil {
		return nil, err
	}
	if len(entries) > max {
		entries = entries[:max]
	}
	return entries, nil
}

// Probe fetches full metadata, including chapters and upload date, for one
// video.
func (f *implFetcher) Probe(ctx context.Context, videoURL string) (*metadata.Info, error) {
	out, err := f.executor.Execute(ctx, f.cfg.Binary,
		"--skip-download",
		"--dump-single-json",
		"--no-warnings",
		videoURL,
	)
	if err != nil {
		return nil, fmt.Errorf("probe video: %w", err)
	}
	return metadata.Decode(strings.NewReader(out))
}

// Download writes <stem>.<lang>.vtt and <stem>.info.json into destDir.
func (f *implFetcher) Download(ctx context.Context, info *metadata.Info, destDir string) (*Result, error) {
	stem := info.Stem()
	f.logger.Info(ctx, "Downloading captions: %s", stem)

	_, err := f.executor.ExecuteInDir(ctx, destDir, f.cfg.Binary,
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", f.cfg.Language,
		"--sub-format", "vtt",
		"--write-info-json",
		"--no-warnings",
		"-o", stem+".%(ext)s",
		info.Link(),
	)
	if err != nil {
		return nil, fmt.Errorf("download captions: %w", err)
	}

	caption, err := findCaption(destDir, stem)
	if err != nil {
		return nil, err
	}

	return &Result{
		Stem:        stem,
		CaptionPath: caption,
		InfoPath:    filepath.Join(destDir, stem+metadata.InfoSuffix),
		Info:        info,
	}, nil
}

func findCaption(dir, stem string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, globEscape(stem)+".*.vtt"))
	if err != nil {
		return "", fmt.Errorf("find captions: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%s: %w", stem, ErrNoCaptions)
	}
	sort.Strings(matches)
	return matches[0], nil
}

// globEscape quotes the glob metacharacters that survive title cleaning.
func globEscape(s string) string {
	r := strings.NewReplacer(`[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
