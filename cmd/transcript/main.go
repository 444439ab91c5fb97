// Command transcript runs the pipeline steps one at a time: fetch captions,
// build transcripts, summarize them, publish the web digest and query the
// search index.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/credentials"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

type command struct {
	name    string
	usage   string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

func allCommands() []command {
	return []command{
		{"fetch", "fetch [-video] [-max N] <url>", "download captions with yt-dlp and build transcripts", runFetch},
		{"build", "build [-out dir] [-plain] <caption> [info.json]", "build a transcript from a caption file", runBuild},
		{"summarize", "summarize [-overwrite] [transcript...]", "summarize transcripts", runSummarize},
		{"digest", "digest [-out path]", "write the web digest of all summaries", runDigest},
		{"search", "search [-limit N] <query>", "search transcript chapters", runSearch},
		{"reindex", "reindex", "rebuild the search index from the transcripts folder", runReindex},
		{"inspect", "inspect <transcript>", "show the chapters recovered from a transcript", runInspect},
		{"login", "login <gemini|openai>", "store a provider API key in the system keyring", runLogin},
	}
}

type app struct {
	cfg *config.Config
	log logger.Logger
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cmd, ok := lookup(flag.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail("Failed to load config: %v", err)
	}
	if err := credentials.Resolve(cfg); err != nil {
		fail("Failed to read keyring: %v", err)
	}

	a := &app{
		cfg: cfg,
		log: logger.NewWithConfig(logger.Config{
			Writer: os.Stderr,
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.run(ctx, a, flag.Args()[1:]); err != nil {
		fail("%s: %v", cmd.name, err)
	}
}

func lookup(name string) (command, bool) {
	for _, c := range allCommands() {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "Usage: transcript [-config path] <command> [args]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, c := range allCommands() {
		fmt.Fprintf(out, "  %-42s %s\n", c.usage, c.summary)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		c, _ := lookup(name)
		fmt.Fprintf(fs.Output(), "Usage: transcript %s\n", c.usage)
		fs.PrintDefaults()
	}
	return fs
}
