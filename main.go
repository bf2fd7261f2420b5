package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pipe01/tagstream/internal/lint"
	"github.com/pipe01/tagstream/internal/printer"
	"github.com/pipe01/tagstream/internal/workspace"
	"github.com/pipe01/tagstream/tokenizer"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var version = "0.1.0"

var (
	format  = kingpin.Flag("format", "Output format for events").Short('f').Envar("TAGSTREAM_FORMAT").Default("debug").Enum(printer.Formats...)
	runLint = kingpin.Flag("lint", "Run lint rules over the events").Envar("TAGSTREAM_LINT").Bool()
	allowed = kingpin.Flag("allow-element", "Element name accepted by the unknown-element lint rule").Strings()
	cascade = kingpin.Flag("cascade", "Run every token check on each loop iteration, like older versions did").Envar("TAGSTREAM_CASCADE").Bool()
	strict  = kingpin.Flag("strict", "Exit with status 1 if any diagnostic or lint issue was reported").Bool()
	quiet   = kingpin.Flag("quiet", "Only print problems, not events").Short('q').Bool()
	verbose = kingpin.Flag("verbose", "Increase logging verbosity, may be repeated").Short('v').Counter()
	watch   = kingpin.Flag("watch", "Watch files for changes and tokenize them again").Short('w').Bool()
	files   = kingpin.Arg("files", "List of files to tokenize").Required().ExistingFiles()

	outFormat printer.Format
	wsOpts    workspace.Options
)

var log = commonlog.GetLogger("tagstream")

func main() {
	kingpin.Version(version)
	kingpin.Parse()

	commonlog.Configure(*verbose, nil)
	if *verbose == 0 {
		// Diagnostics are printed to stderr already
		commonlog.SetMaxLevel(commonlog.Error, "tagstream", "tokenizer")
	}

	var err error
	outFormat, err = printer.ParseFormat(*format)
	if err != nil {
		kingpin.Fatalf("invalid format: %s", err)
	}

	wsOpts = workspace.Options{
		Tokenizer: tokenizer.Options{
			Cascade: *cascade,
		},
	}
	if *runLint {
		wsOpts.Lint = &lint.Options{
			AllowedElements: *allowed,
		}
	}

	if *watch {
		err := watchFiles()
		if err != nil {
			kingpin.Fatalf("failed to watch files: %s", err)
		}
		return
	}

	problems, err := tokenizeAll()
	if err != nil {
		kingpin.Fatalf("failed to tokenize files: %s", err)
	}

	if *strict && problems > 0 {
		os.Exit(1)
	}
}

func tokenizeAll() (problems int, err error) {
	wd, _ := os.Getwd()
	ws := workspace.New(wd, wsOpts)

	for _, fname := range *files {
		n, err := tokenizeFile(ws, fname, os.Stdout, os.Stderr)
		if err != nil {
			return problems, fmt.Errorf("load file %q: %w", fname, err)
		}

		problems += n
	}

	return problems, nil
}

func tokenizeFile(ws *workspace.Workspace, fname string, out, errOut io.Writer) (problems int, err error) {
	doc, err := ws.Load(fname)
	if err != nil {
		return 0, err
	}

	if !*quiet {
		err = printer.Write(out, doc.Events, outFormat)
		if err != nil {
			return 0, fmt.Errorf("print events: %w", err)
		}
	}

	probs := doc.Problems()
	for _, p := range probs {
		at := p.At()
		fmt.Fprintf(errOut, "%s: %s\n", &at, p.Unwrap())
	}

	return len(probs), nil
}

func watchFiles() error {
	wd, _ := os.Getwd()
	ws := workspace.New(wd, wsOpts)

	watcher, err := NewWatcher(ws)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, f := range *files {
		if _, err := tokenizeFile(ws, f, os.Stdout, os.Stderr); err != nil {
			return fmt.Errorf("load file %q: %w", f, err)
		}

		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	log.Notice("watching files for changes...")

	<-ch
	return nil
}
