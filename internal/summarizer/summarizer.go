package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/catalog"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/document"
	"github.com/nguyentantai21042004/transcript-flow/internal/export"
	"github.com/nguyentantai21042004/transcript-flow/internal/naming"
	"github.com/nguyentantai21042004/transcript-flow/pkg/fileutil"
)

// Outcome is what SummarizeFile did with a transcript.
type Outcome int

const (
	Summarized Outcome = iota
	SkippedExisting
	SkippedShort
)

func (o Outcome) String() string {
	switch o {
	case Summarized:
		return "summarized"
	case SkippedExisting:
		return "skipped (summary exists)"
	case SkippedShort:
		return "skipped (too short)"
	default:
		return "unknown"
	}
}

// Failure is a transcript that could not be summarized.
type Failure struct {
	File string
	Err  error
}

// Report counts what SummarizeAll did.
type Report struct {
	Total      int
	Summarized int
	Existing   int
	Short      int
	Failures   []Failure
}

// Failed is the number of transcripts that failed.
func (r Report) Failed() int {
	return len(r.Failures)
}

// SummarizeAll summarizes every transcript in transcriptsDir, in name order.
func (s *implSummarizer) SummarizeAll(ctx context.Context, transcriptsDir, summariesDir string) (Report, error) {
	var report Report

	files, err := discoverTranscripts(transcriptsDir)
	if err != nil {
		return report, fmt.Errorf("discover transcripts: %w", err)
	}
	report.Total = len(files)

	if len(files) == 0 {
		s.logger.Info(ctx, "No transcript files found in %s", transcriptsDir)
		return report, nil
	}

	if err := os.MkdirAll(summariesDir, 0755); err != nil {
		return report, fmt.Errorf("create summaries dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d transcript files", len(files))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		name := filepath.Base(path)
		s.logger.Info(ctx, "[%d/%d] Processing: %s", i+1, len(files), name)

		outcome, err := s.SummarizeFile(ctx, path, summariesDir)
		if err != nil {
			s.logger.Error(ctx, "Failed to process %s: %v", name, err)
			report.Failures = append(report.Failures, Failure{File: name, Err: err})
			continue
		}

		switch outcome {
		case Summarized:
			report.Summarized++
		case SkippedExisting:
			s.logger.Info(ctx, "Skipping %s - summary already exists", name)
			report.Existing++
		case SkippedShort:
			s.logger.Info(ctx, "Skipping %s - too short to summarize", name)
			report.Short++
		}
	}

	s.logger.Info(ctx, "Summary complete: %d summarized, %d existing, %d too short, %d failed",
		report.Summarized, report.Existing, report.Short, report.Failed())
	return report, nil
}

// SummarizeFile summarizes one transcript and writes <stem>_summary.txt into
// summariesDir.
func (s *implSummarizer) SummarizeFile(ctx context.Context, transcriptPath, summariesDir string) (Outcome, error) {
	name := filepath.Base(transcriptPath)
	summaryPath := filepath.Join(summariesDir, naming.SummaryName(name))

	if !s.opts.Overwrite {
		if _, err := os.Stat(summaryPath); err == nil {
			return SkippedExisting, nil
		}
	}

	raw, err := os.ReadFile(transcriptPath)
	if err != nil {
		return Summarized, fmt.Errorf("read transcript: %w", err)
	}
	content := strings.TrimSpace(string(raw))

	if len(strings.Fields(content)) < s.opts.MinWords {
		return SkippedShort, nil
	}

	parsed := document.Parse(content)
	for _, skipped := range parsed.Skipped {
		s.logger.Warn(ctx, "%s: %v", name, skipped)
	}

	text, err := s.generator.Generate(ctx, Request{
		System:      SystemPrompt,
		Prompt:      BuildPrompt(content, parsed),
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return Summarized, fmt.Errorf("generate summary: %w", err)
	}

	summary := s.formatter.Format(strings.TrimSpace(text))

	if err := os.MkdirAll(summariesDir, 0755); err != nil {
		return Summarized, fmt.Errorf("create summaries dir: %w", err)
	}
	if err := fileutil.WriteFileAtomic(summaryPath, []byte(s.render(name, summary))); err != nil {
		return Summarized, err
	}
	s.logger.Info(ctx, "Summary saved: %s", summaryPath)

	stem := strings.TrimSuffix(name, naming.TranscriptExt)

	if s.opts.Docx {
		_, title := naming.SplitStem(stem)
		if err := export.Summary(title, summary, export.Path(summaryPath)); err != nil {
			s.logger.Warn(ctx, "Failed to export %s: %v", summaryPath, err)
		}
	}

	if s.recorder != nil {
		err := s.recorder.SetSummary(ctx, stem, summaryPath)
		if err != nil && !errors.Is(err, catalog.ErrNotFound) {
			s.logger.Warn(ctx, "Failed to record summary of %s: %v", stem, err)
		}
	}

	return Summarized, nil
}

// render wraps a summary in the header and footer of a summary file.
func (s *implSummarizer) render(transcriptName, summary string) string {
	stem := strings.TrimSuffix(transcriptName, naming.TranscriptExt)
	date, title := naming.SplitStem(stem)

	return fmt.Sprintf("# %s\n**Date:** %s  \n**Original File:** %s\n\n---\n\n%s\n\n---\n*Summary generated by AI using %s %s model*\n",
		title, date, transcriptName, summary, providerLabel(s.opts.Provider), s.opts.Model)
}

func providerLabel(provider string) string {
	if provider == config.ProviderOpenAI {
		return "OpenAI's"
	}
	return "Google's"
}

func discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || naming.IsSummary(name) {
			continue
		}
		if strings.ToLower(filepath.Ext(name)) == naming.TranscriptExt {
			files = append(files, filepath.Join(dir, name))
		}
	}

	sort.Strings(files)
	return files, nil
}
