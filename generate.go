package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"github.com/prometheus/client_golang/prometheus"
	"go.abhg.dev/docbookgen/internal/docbook"
	"go.abhg.dev/docbookgen/internal/docmodel"
	"go.abhg.dev/docbookgen/internal/errdefer"
	"go.abhg.dev/docbookgen/internal/pathtree"
	"go.abhg.dev/docbookgen/internal/relative"
	"gopkg.in/yaml.v3"
)

var (
	_ docbook.Database    = (*docmodel.Tree)(nil)
	_ docbook.ExampleURLs = (*pathtree.Root[string])(nil)
	_ docbook.Sink        = (*dirSink)(nil)
)

// Runner generates DocBook documentation for a documentation model
// and writes the supporting files next to it.
//
// In terms of code organization,
// Runner's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Runner struct {
	Log      *log.Logger
	DebugLog *log.Logger

	Config docbook.Config

	// OutDir is the directory that documents are written to.
	OutDir string

	// ImageDirs are searched for images in order.
	ImageDirs []string

	// Examples holds the sources of examples, if available.
	Examples fs.FS

	// ManifestFile is where the image manifest is written.
	// Nothing is written if it's empty.
	ManifestFile string

	// MetricsFile is where metrics are written.
	// Nothing is written if it's empty.
	MetricsFile string
}

// Run generates documentation for the given tree.
func (r *Runner) Run(ctx context.Context, tree *docmodel.Tree) error {
	reg := prometheus.NewRegistry()
	images := &imageFinder{
		Dirs:   r.ImageDirs,
		Tree:   tree,
		Prefix: _imagesDir,
	}

	gen := docbook.Generator{
		Config:   r.Config,
		DB:       tree,
		Sink:     &dirSink{Dir: r.OutDir},
		Log:      r.Log,
		DebugLog: r.DebugLog,
		Images:   images,
		Examples: r.Examples,
		Metrics:  docbook.NewMetrics(reg),
	}
	if err := gen.Generate(ctx); err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if err := images.CopyTo(filepath.Join(r.OutDir, _imagesDir)); err != nil {
		return fmt.Errorf("copy images: %w", err)
	}

	if r.ManifestFile != "" {
		if err := writeManifest(r.ManifestFile, gen.ImageManifest()); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	}

	if r.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(r.MetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", errtrace.Wrap(err))
		}
	}

	if diags := gen.Diagnostics(); len(diags) > 0 {
		r.Log.Printf("%d warnings", len(diags))
	}
	return nil
}

func writeManifest(name string, m docbook.ImageManifest) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(enc.Close())
}

// dirSink writes documents to files inside a directory.
type dirSink struct {
	Dir string
}

func (s *dirSink) Create(p string) (io.WriteCloser, error) {
	name := filepath.Join(s.Dir, filepath.FromSlash(p))
	if err := os.MkdirAll(filepath.Dir(name), 0o1755); err != nil {
		return nil, errtrace.Wrap(err)
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return f, nil
}

// _imagesDir is the directory inside the output
// that found images are copied to.
const _imagesDir = "images"

// imageFinder resolves images by searching a list of directories.
// Found images are referenced from the images directory of the output.
type imageFinder struct {
	Dirs   []string
	Tree   *docmodel.Tree
	Prefix string

	found   map[string]string // output name -> source path
	outputs map[string]string // source path -> output name
}

var _ docbook.ImageResolver = (*imageFinder)(nil)

func (f *imageFinder) ResolveImage(rel *docmodel.Node, name string) (string, bool) {
	src, ok := f.find(name)
	if !ok {
		return "", false
	}

	out, ok := f.outputs[src]
	if !ok {
		if f.found == nil {
			f.found = make(map[string]string)
			f.outputs = make(map[string]string)
		}
		out = f.outputName(path.Base(name))
		f.found[out] = src
		f.outputs[src] = out
	}

	var dir string
	if rel != nil {
		dir = f.Tree.OutputDir(rel)
	}
	return relative.Path(dir, path.Join(f.Prefix, out)), true
}

// outputName picks a name for an image inside the images directory.
// Different images with the same base name get numbered names
// like logo-2.png.
func (f *imageFinder) outputName(base string) string {
	if _, taken := f.found[base]; !taken {
		return base
	}

	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if _, taken := f.found[name]; !taken {
			return name
		}
	}
}

// find looks for the image in the directories,
// first under its full name and then under its base name.
func (f *imageFinder) find(name string) (string, bool) {
	candidates := []string{name}
	if base := path.Base(name); base != name {
		candidates = append(candidates, base)
	}

	for _, dir := range f.Dirs {
		for _, c := range candidates {
			p := filepath.Join(dir, filepath.FromSlash(c))
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				return p, true
			}
		}
	}
	return "", false
}

// CopyTo copies all images resolved so far into the given directory.
func (f *imageFinder) CopyTo(dir string) error {
	if len(f.found) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o1755); err != nil {
		return errtrace.Wrap(err)
	}
	for base, src := range f.found {
		if err := copyFile(filepath.Join(dir, base), src); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(dst, src string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, in)

	out, err := os.Create(dst)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, out)

	_, err = io.Copy(out, in)
	return errtrace.Wrap(err)
}
