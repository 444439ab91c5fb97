package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/caption"
	"github.com/nguyentantai21042004/transcript-flow/internal/catalog"
	"github.com/nguyentantai21042004/transcript-flow/internal/chapter"
	"github.com/nguyentantai21042004/transcript-flow/internal/export"
	"github.com/nguyentantai21042004/transcript-flow/internal/metadata"
	"github.com/nguyentantai21042004/transcript-flow/internal/naming"
	"github.com/nguyentantai21042004/transcript-flow/internal/search"
	"github.com/nguyentantai21042004/transcript-flow/pkg/fileutil"
)

// Process orchestrates the transcript build for one caption file
func (p *implProcessor) Process(ctx context.Context, captionPath string) (*Result, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting transcript build: %s", captionPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Load the sidecar metadata, when yt-dlp wrote one
	captionStem := naming.StemFromCaption(captionPath)
	infoPath := filepath.Join(filepath.Dir(captionPath), captionStem+metadata.InfoSuffix)
	info, infoFound := p.readInfo(ctx, infoPath)

	video := &catalog.Video{Stem: captionStem, Status: catalog.StatusTranscribed}
	var boundaries []chapter.Boundary
	if info != nil {
		boundaries = info.Boundaries()
		video.Stem = info.Stem()
		video.VideoID = info.ID
		video.Title = info.Title
		video.Published = info.PublishedDate()
		video.URL = info.Link()
	} else {
		date, title := naming.SplitStem(captionStem)
		video.Title = title
		video.Published = naming.NormalizeDate(date)
	}
	video.Chapters = len(boundaries)

	// Step 2: Parse cues
	content, err := caption.ReadFile(captionPath)
	var cues []caption.Cue
	if err == nil {
		cues, err = caption.NewParser().Parse(content)
	}
	if errors.Is(err, caption.ErrEmptyStream) {
		return p.archiveEmpty(ctx, video, captionPath, infoPath, infoFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read caption: %w", err)
	}
	video.Cues = len(cues)

	// Step 3: Assemble the document
	var doc string
	if len(boundaries) == 0 {
		p.logger.Info(ctx, "No chapters for %s, writing timestamped transcript", video.Stem)
		doc = p.assembler.Flat(cues)
	} else {
		doc = p.assembler.Assemble(boundaries, chapter.Align(cues, boundaries))
	}

	// Step 4: Write it next to the other transcripts
	transcriptPath := filepath.Join(p.cfg.Paths.Transcripts, naming.TranscriptName(video.Stem))
	if err := os.MkdirAll(p.cfg.Paths.Transcripts, 0755); err != nil {
		return nil, fmt.Errorf("create transcripts dir: %w", err)
	}
	if err := fileutil.WriteFileAtomic(transcriptPath, []byte(doc)); err != nil {
		video.Status = catalog.StatusFailed
		video.Error = err.Error()
		p.record(ctx, video)
		return nil, fmt.Errorf("write transcript: %w", err)
	}
	video.TranscriptPath = transcriptPath

	// Step 5: Drop the inputs, record, index and export
	p.cleanupTempFile(ctx, captionPath)
	if infoFound {
		p.cleanupTempFile(ctx, infoPath)
	}

	p.record(ctx, video)

	if p.deps.Index != nil {
		sv := search.Video{Stem: video.Stem, Title: video.Title, Published: video.Published}
		if err := p.deps.Index.IndexTranscript(ctx, sv, doc); err != nil {
			p.logger.Warn(ctx, "Failed to index %s: %v", video.Stem, err)
		}
	}

	if p.cfg.Transcript.Docx {
		if err := export.Transcript(video.Title, doc, export.Path(transcriptPath)); err != nil {
			p.logger.Warn(ctx, "Failed to export %s: %v", transcriptPath, err)
		}
	}

	// Step 6: Summarize right away when configured
	if p.cfg.Summary.AutoSummarize && p.deps.Summarizer != nil {
		outcome, err := p.deps.Summarizer.SummarizeFile(ctx, transcriptPath, p.cfg.Paths.Summaries)
		if err != nil {
			p.logger.Warn(ctx, "Failed to summarize %s: %v", video.Stem, err)
		} else {
			p.logger.Info(ctx, "Summary for %s: %s", video.Stem, outcome)
		}
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Transcript completed: %s", transcriptPath)
	p.logger.Info(ctx, "Chapters: %d, cues: %d", video.Chapters, video.Cues)
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return &Result{
		Stem:           video.Stem,
		TranscriptPath: transcriptPath,
		Chapters:       video.Chapters,
		Cues:           video.Cues,
	}, nil
}

// ProcessDir processes the caption files already waiting in dir
func (p *implProcessor) ProcessDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && caption.IsCaptionFile(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil
	}
	p.logger.Info(ctx, "Found %d caption files waiting in %s", len(files), dir)

	sem := newSemaphore(p.cfg.Performance.MaxConcurrent)
	var wg sync.WaitGroup

	for _, path := range files {
		if err := sem.acquire(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.release()

			if _, err := p.Process(ctx, path); err != nil {
				p.logger.Error(ctx, "Failed to process %s: %v", path, err)
			}
		}(path)
	}

	wg.Wait()
	return ctx.Err()
}

// readInfo loads the metadata sidecar. A missing or invalid sidecar is not an
// error: the transcript is built without chapters.
func (p *implProcessor) readInfo(ctx context.Context, path string) (*metadata.Info, bool) {
	if _, err := os.Stat(path); err != nil {
		return nil, false
	}
	info, err := metadata.ReadFile(path)
	if err != nil {
		p.logger.Warn(ctx, "Ignoring metadata %s: %v", path, err)
		return nil, true
	}
	return info, true
}

func (p *implProcessor) archiveEmpty(ctx context.Context, video *catalog.Video, captionPath, infoPath string, infoFound bool) (*Result, error) {
	p.logger.Warn(ctx, "No cues in %s, moving to archived", captionPath)

	if err := p.moveToArchived(ctx, captionPath); err != nil {
		p.logger.Warn(ctx, "Failed to archive %s: %v", captionPath, err)
	}
	if infoFound {
		if err := p.moveToArchived(ctx, infoPath); err != nil {
			p.logger.Warn(ctx, "Failed to archive %s: %v", infoPath, err)
		}
	}

	video.Status = catalog.StatusEmpty
	video.Error = caption.ErrEmptyStream.Error()
	p.record(ctx, video)

	return &Result{Stem: video.Stem, Chapters: video.Chapters, Empty: true}, nil
}

func (p *implProcessor) record(ctx context.Context, video *catalog.Video) {
	if p.deps.Catalog == nil {
		return
	}
	if err := p.deps.Catalog.Upsert(ctx, video); err != nil {
		p.logger.Warn(ctx, "Failed to record %s: %v", video.Stem, err)
	}
}
