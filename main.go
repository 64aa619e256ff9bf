// docbookgen generates DocBook 5.2 documents
// from a documentation model.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"

	"go.abhg.dev/docbookgen/internal/docbook"
	"go.abhg.dev/docbookgen/internal/flagvalue"
	"go.abhg.dev/docbookgen/internal/modelfile"
	"go.abhg.dev/docbookgen/internal/pathtree"
	"go.abhg.dev/docbookgen/internal/sliceutil"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(ctx, os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(ctx context.Context, args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// No need to print anything for bad arguments.
		// Parse prints messages.
		if !errors.Is(err, errInvalidArguments) {
			cmd.log.Printf("docbookgen: %v", err)
		}
		return 1
	}

	if err := cmd.run(ctx, opts); err != nil {
		cmd.log.Printf("docbookgen: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(ctx context.Context, opts *params) (err error) {
	debugw, closeDebug, err := opts.Debug.Create(cmd.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeDebug())
	}()

	tree, err := modelfile.LoadFile(opts.Model)
	if err != nil {
		return err
	}
	tree.OutputSubdirs = opts.Subdirs

	var exampleURLs pathtree.Root[string]
	for _, eu := range opts.ExampleURLs {
		exampleURLs.Set(eu.Path, eu.URL)
	}

	imageDirs := sliceutil.Transform(opts.ImageDirs, func(dir flagvalue.String) string {
		return string(dir)
	})

	var examples fs.FS
	if opts.ExamplesDir != "" {
		examples = os.DirFS(opts.ExamplesDir)
	}

	runner := Runner{
		Log:      cmd.log,
		DebugLog: log.New(debugw, "", 0),
		Config: docbook.Config{
			Project:             opts.Project,
			Description:         opts.Description,
			NaturalLanguage:     opts.Language,
			BuildVersion:        opts.BuildVersion,
			ExampleURLs:         &exampleURLs,
			ExamplesInstallPath: opts.ExamplesInstallPath,
			ShowInternal:        opts.Internal,
			Plain:               opts.Plain,
		},
		OutDir:       opts.OutputDir,
		ImageDirs:    imageDirs,
		Examples:     examples,
		ManifestFile: opts.Manifest,
		MetricsFile:  opts.Metrics,
	}
	return runner.Run(ctx, tree)
}
