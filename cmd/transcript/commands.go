package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/transcript-flow/internal/cache"
	"github.com/nguyentantai21042004/transcript-flow/internal/caption"
	"github.com/nguyentantai21042004/transcript-flow/internal/catalog"
	"github.com/nguyentantai21042004/transcript-flow/internal/chapter"
	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/credentials"
	"github.com/nguyentantai21042004/transcript-flow/internal/digest"
	"github.com/nguyentantai21042004/transcript-flow/internal/document"
	"github.com/nguyentantai21042004/transcript-flow/internal/fetcher"
	"github.com/nguyentantai21042004/transcript-flow/internal/metadata"
	"github.com/nguyentantai21042004/transcript-flow/internal/naming"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
	"github.com/nguyentantai21042004/transcript-flow/internal/reflow"
	"github.com/nguyentantai21042004/transcript-flow/internal/search"
	"github.com/nguyentantai21042004/transcript-flow/internal/summarizer"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
	"github.com/nguyentantai21042004/transcript-flow/pkg/fileutil"
)

var errUsage = errors.New("invalid arguments")

func parse(fs *flag.FlagSet, args []string, minArgs, maxArgs int) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < minArgs || (maxArgs >= 0 && fs.NArg() > maxArgs) {
		fs.Usage()
		return errUsage
	}
	return nil
}

func runFetch(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("fetch")
	single := fs.Bool("video", false, "treat the URL as a single video")
	maxVideos := fs.Int("max", a.cfg.Fetch.MaxVideos, "number of newest videos to fetch")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}

	f := fetcher.New(a.cfg.Fetch, executor.New(), a.log)

	urls := []string{fs.Arg(0)}
	if !*single {
		entries, err := f.ListVideos(ctx, fs.Arg(0), *maxVideos)
		if err != nil {
			return err
		}
		urls = urls[:0]
		for _, e := range entries {
			urls = append(urls, e.Link())
		}
	}
	title("Fetching %d videos", len(urls))

	st, err := openStores(a.cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var sum summarizer.Summarizer
	if a.cfg.Summary.AutoSummarize {
		if sum, err = st.summarizer(a); err != nil {
			step("Summaries disabled: %v", err)
		}
	}
	proc := processor.New(a.cfg, processor.Deps{Catalog: st.catalog, Index: st.index, Summarizer: sum}, a.log)

	if err := os.MkdirAll(a.cfg.Paths.Videos, 0755); err != nil {
		return fmt.Errorf("create videos dir: %w", err)
	}

	var built, skipped, failed int
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := f.Probe(ctx, url)
		if err != nil {
			step("[%d/%d] %s: %v", i+1, len(urls), url, err)
			failed++
			continue
		}
		stem := info.Stem()

		if _, err := os.Stat(filepath.Join(a.cfg.Paths.Transcripts, naming.TranscriptName(stem))); err == nil {
			step("[%d/%d] %s: transcript exists", i+1, len(urls), stem)
			skipped++
			continue
		}

		res, err := f.Download(ctx, info, a.cfg.Paths.Videos)
		if errors.Is(err, fetcher.ErrNoCaptions) {
			step("[%d/%d] %s: no captions", i+1, len(urls), stem)
			skipped++
			continue
		}
		if err != nil {
			step("[%d/%d] %s: %v", i+1, len(urls), stem, err)
			failed++
			continue
		}

		out, err := proc.Process(ctx, res.CaptionPath)
		if err != nil {
			step("[%d/%d] %s: %v", i+1, len(urls), stem, err)
			failed++
			continue
		}
		if out.Empty {
			step("[%d/%d] %s: captions were empty", i+1, len(urls), stem)
			skipped++
			continue
		}
		step("[%d/%d] %s: %d chapters, %d cues", i+1, len(urls), stem, out.Chapters, out.Cues)
		built++
	}

	done("Built %d, skipped %d, failed %d", built, skipped, failed)
	return nil
}

func runBuild(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("build")
	outDir := fs.String("out", a.cfg.Paths.Transcripts, "directory to write the transcript into")
	plain := fs.Bool("plain", false, "write sentence paragraphs without chapters or timestamps")
	if err := parse(fs, args, 1, 2); err != nil {
		return err
	}

	captionPath := fs.Arg(0)
	infoPath := fs.Arg(1)
	stem := naming.StemFromCaption(captionPath)
	if infoPath == "" {
		sidecar := filepath.Join(filepath.Dir(captionPath), stem+metadata.InfoSuffix)
		if _, err := os.Stat(sidecar); err == nil {
			infoPath = sidecar
		}
	}

	var boundaries []chapter.Boundary
	if infoPath != "" {
		info, err := metadata.ReadFile(infoPath)
		if err != nil {
			return err
		}
		boundaries = info.Boundaries()
		stem = info.Stem()
	}

	content, err := caption.ReadFile(captionPath)
	if err != nil {
		return err
	}

	var doc string
	if *plain {
		cues, err := caption.NewParser().Parse(content)
		if err != nil {
			return err
		}
		doc = reflow.Transcript(caption.Texts(cues), a.cfg.Transcript.Width)
	} else {
		doc, err = document.NewAssembler(document.Options{
			Width:         a.cfg.Transcript.Width,
			ParagraphSize: a.cfg.Transcript.ParagraphSize,
			FlatWindow:    a.cfg.Transcript.FlatWindow,
		}).Build(content, boundaries)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(*outDir, naming.TranscriptName(stem))
	if err := fileutil.WriteFileAtomic(outPath, []byte(doc)); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	step("Chapters: %d", len(boundaries))
	done("Transcript saved: %s", outPath)
	return nil
}

func runSummarize(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("summarize")
	overwrite := fs.Bool("overwrite", a.cfg.Summary.Overwrite, "replace existing summaries")
	if err := parse(fs, args, 0, -1); err != nil {
		return err
	}
	a.cfg.Summary.Overwrite = *overwrite

	st, err := openStores(a.cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sum, err := st.summarizer(a)
	if err != nil {
		return err
	}

	if fs.NArg() == 0 {
		title("Summarizing %s", a.cfg.Paths.Transcripts)
		report, err := sum.SummarizeAll(ctx, a.cfg.Paths.Transcripts, a.cfg.Paths.Summaries)
		if err != nil {
			return err
		}
		for _, f := range report.Failures {
			step("%s: %v", f.File, f.Err)
		}
		done("Summarized %d, skipped %d existing, %d too short, failed %d",
			report.Summarized, report.Existing, report.Short, report.Failed())
		return nil
	}

	var ok int
	for _, name := range fs.Args() {
		path := name
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(a.cfg.Paths.Transcripts, name)
		}
		outcome, err := sum.SummarizeFile(ctx, path, a.cfg.Paths.Summaries)
		if err != nil {
			step("%s: %v", name, err)
			continue
		}
		step("%s: %s", name, outcome)
		if outcome == summarizer.Summarized {
			ok++
		}
	}
	done("Processed %d/%d files successfully", ok, fs.NArg())
	return nil
}

func runDigest(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("digest")
	out := fs.String("out", a.cfg.Paths.Digest, "path of the JSON file")
	if err := parse(fs, args, 0, 0); err != nil {
		return err
	}

	records, err := digest.Collect(a.cfg.Paths.Summaries)
	if err != nil {
		return err
	}
	if err := digest.WriteJSON(*out, records); err != nil {
		return err
	}
	done("Generated data for %d summaries: %s", len(records), *out)
	return nil
}

func runSearch(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("search")
	limit := fs.Int("limit", search.DefaultLimit, "maximum number of hits")
	if err := parse(fs, args, 1, -1); err != nil {
		return err
	}

	idx, err := search.Open(a.cfg.Storage.Index)
	if err != nil {
		return err
	}
	defer idx.Close()

	res, err := idx.Search(ctx, strings.Join(fs.Args(), " "), *limit)
	if err != nil {
		return err
	}

	title("%d matches for %q", res.Total, res.Query)
	for _, h := range res.Hits {
		step("%s  Chapter %d: %s", h.Title, h.Number, h.Chapter)
		detail("%s (%s)", h.Stem, h.Published)
		if h.Fragment != "" {
			detail("%s", h.Fragment)
		}
	}
	return nil
}

func runReindex(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("reindex")
	if err := parse(fs, args, 0, 0); err != nil {
		return err
	}

	st, err := openStores(a.cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := os.ReadDir(a.cfg.Paths.Transcripts)
	if err != nil {
		return fmt.Errorf("read transcripts dir: %w", err)
	}

	var indexed int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || naming.IsSummary(name) || filepath.Ext(name) != naming.TranscriptExt {
			continue
		}
		content, err := os.ReadFile(filepath.Join(a.cfg.Paths.Transcripts, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		stem := strings.TrimSuffix(name, naming.TranscriptExt)
		v := search.Video{Stem: stem}
		if row, err := st.catalog.GetByStem(ctx, stem); err == nil {
			v.Title, v.Published = row.Title, row.Published
		} else {
			date, t := naming.SplitStem(stem)
			v.Title, v.Published = t, naming.NormalizeDate(date)
		}

		if err := st.index.IndexTranscript(ctx, v, string(content)); err != nil {
			return err
		}
		indexed++
	}

	count, err := st.index.Count()
	if err != nil {
		return err
	}
	done("Indexed %d transcripts (%d chapter documents)", indexed, count)
	return nil
}

func runInspect(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("inspect")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}

	content, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	parsed := document.Parse(string(content))

	if !parsed.HasChapters() {
		done("No chapters in %s", fs.Arg(0))
		return nil
	}

	title("%d chapters", len(parsed.Entries))
	for i, c := range parsed.Chapters() {
		step("%d. %s (%s)", c.Number, c.Title, c.Clock)
		detail("%d lines", len(parsed.Sections[i]))
	}
	for _, err := range parsed.Skipped {
		step("%v", err)
	}
	done("%d sections recovered", len(parsed.Sections))
	return nil
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("login")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}

	provider := fs.Arg(0)
	if provider != config.ProviderGemini && provider != config.ProviderOpenAI {
		return fmt.Errorf("unknown provider %q", provider)
	}

	label := BulletStyle.Render("├") + TextStyle.Render(fmt.Sprintf("Enter %s API key: ", provider))
	secret, err := credentials.Prompt(os.Stdout, label)
	if err != nil {
		return err
	}
	if secret == "" {
		return errors.New("an API key is required")
	}

	if err := credentials.Store(provider, secret); err != nil {
		return err
	}
	done("API key saved for %s", credentials.SystemUser())
	return nil
}

// stores are the on-disk stores a command opens.
type stores struct {
	catalog *catalog.Store
	index   *search.Index
	cache   *cache.Cache
}

func openStores(cfg *config.Config) (*stores, error) {
	if err := os.MkdirAll(cfg.Paths.Data, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	store, err := catalog.Open(cfg.Storage.Catalog)
	if err != nil {
		return nil, err
	}
	idx, err := search.Open(cfg.Storage.Index)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &stores{catalog: store, index: idx}, nil
}

// summarizer builds the configured summarizer, opening the response cache on
// first use.
func (s *stores) summarizer(a *app) (summarizer.Summarizer, error) {
	if s.cache == nil {
		c, err := cache.Open(a.cfg.Storage.Cache, cache.Options{})
		if err != nil {
			return nil, err
		}
		s.cache = c
	}

	gen, err := summarizer.NewGenerator(a.cfg, s.cache, a.log)
	if err != nil {
		return nil, err
	}
	return summarizer.New(summarizer.OptionsFromConfig(a.cfg), gen, s.catalog, a.log), nil
}

func (s *stores) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
	s.index.Close()
	s.catalog.Close()
}
