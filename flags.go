package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/docbookgen/internal/flagvalue"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// _envVarPrefix is the prefix of environment variables
// that set flags, e.g. DOCBOOKGEN_PROJECT for -project.
const _envVarPrefix = "DOCBOOKGEN"

// params holds all arguments for docbookgen.
type params struct {
	version bool
	help    Help

	Config string
	Debug  flagvalue.FileSwitch

	OutputDir string
	Subdirs   bool

	Project      string
	Description  string
	Language     string
	BuildVersion string

	ExampleURLs         []exampleURL
	ExamplesDir         string
	ExamplesInstallPath string
	ImageDirs           []flagvalue.String

	Internal bool
	Plain    bool

	Manifest string
	Metrics  string

	// Model is the path to the documentation model.
	Model string
}

// cliParser parses the command line arguments for docbookgen.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("docbookgen", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		_ = DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Filesystem:
	flag.StringVar(&p.OutputDir, "out", "_docbook", "")
	flag.BoolVar(&p.Subdirs, "subdirs", false, "")
	flag.StringVar(&p.Manifest, "manifest", "", "")
	flag.StringVar(&p.Metrics, "metrics", "", "")

	// Project:
	flag.StringVar(&p.Project, "project", "", "")
	flag.StringVar(&p.Description, "description", "", "")
	flag.StringVar(&p.Language, "lang", "en", "")
	flag.StringVar(&p.BuildVersion, "build-version", "", "")

	// Examples and images:
	flag.Var(flagvalue.ListOf(&p.ExampleURLs), "example-url", "")
	flag.StringVar(&p.ExamplesDir, "examples", "", "")
	flag.StringVar(&p.ExamplesInstallPath, "examples-install-path", "", "")
	flag.Var(flagvalue.ListOf(&p.ImageDirs), "image-dir", "")

	// DocBook output:
	flag.BoolVar(&p.Internal, "internal", false, "")
	flag.BoolVar(&p.Plain, "plain", false, "")

	// Program-level:
	flag.StringVar(&p.Config, "config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()

	// Flags on the command line win over the environment,
	// which wins over the config file.
	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix(_envVarPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return nil, err
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "docbookgen", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil {
			if _, ok := _helpTopics[h]; ok {
				p.help = h
			}
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	if len(args) != 1 {
		fmt.Fprintln(cmd.Stderr, "Please provide exactly one model file.")
		_ = UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}
	p.Model = args[0]

	return p, nil
}

// exampleURL is the project URL for examples under a path.
//
//	-example-url https://code.example.com/examples/\1
//	-example-url widgets=https://code.example.com/widgets/\1
type exampleURL struct {
	Path string
	URL  string
}

var _ flag.Getter = (*exampleURL)(nil)

func (eu *exampleURL) Get() any { return eu }

func (eu *exampleURL) String() string {
	if eu.Path == "" {
		return eu.URL
	}
	return eu.Path + "=" + eu.URL
}

func (eu *exampleURL) Set(s string) error {
	if s == "" {
		return errors.New("expected form '[path=]url'")
	}

	// URLs may contain '=' in their query strings
	// but paths never contain "://".
	idx := strings.IndexRune(s, '=')
	if idx < 0 || strings.Contains(s[:idx], "://") {
		eu.Path = ""
		eu.URL = s
		return nil
	}

	eu.Path = strings.Trim(s[:idx], "/")
	eu.URL = s[idx+1:]
	if eu.URL == "" {
		return fmt.Errorf("no URL specified for %q", eu.Path)
	}
	return nil
}
