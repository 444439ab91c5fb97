package fetcher

import (
	"context"

	"github.com/nguyentantai21042004/transcript-flow/internal/metadata"
)

// Fetcher pulls caption files and metadata with yt-dlp. No media is
// downloaded.
type Fetcher interface {
	ListVideos(ctx context.Context, channelURL string, max int) ([]metadata.Info, error)
	Probe(ctx context.Context, videoURL string) (*metadata.Info, error)
	Download(ctx context.Context, info *metadata.Info, destDir string) (*Result, error)
}

// Result points at the files written for one video.
type Result struct {
	Stem        string
	CaptionPath string
	InfoPath    string
	Info        *metadata.Info
}
