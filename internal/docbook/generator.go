// Package docbook renders a documentation model into DocBook 5.2 XML.
//
// A [Generator] walks the documentation tree
// and writes one XML document per page:
// classes, namespaces, QML types, pages, examples, and collections.
// The text of each page is a stream of atoms
// which the generator interprets into DocBook elements.
package docbook

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"sync"

	"go.abhg.dev/docbookgen/internal/atom"
	"go.abhg.dev/docbookgen/internal/docmodel"
	"golang.org/x/text/language"
)

const (
	_dbNamespace    = "http://docbook.org/ns/docbook"
	_xlinkNamespace = "http://www.w3.org/1999/xlink"

	_format = "DocBook"
)

// Database answers the questions the generator asks
// about the documentation model.
//
// [*docmodel.Tree] implements this interface.
type Database interface {
	Node(id docmodel.ID) *docmodel.Node
	Root() *docmodel.Node
	Parent(n *docmodel.Node) *docmodel.Node
	Children(n *docmodel.Node) []*docmodel.Node
	Members(n *docmodel.Node) []*docmodel.Node

	Collection(name string, typ docmodel.CollectionType) *docmodel.Node
	Collections(typ docmodel.CollectionType) []*docmodel.Node

	CppClasses() []*docmodel.Node
	ObsoleteClasses() []*docmodel.Node
	ClassesWithObsoleteMembers() []*docmodel.Node
	Namespaces() []*docmodel.Node
	QmlTypes() []*docmodel.Node
	ObsoleteQmlTypes() []*docmodel.Node
	QmlTypesWithObsoleteMembers() []*docmodel.Node
	QmlBasicTypes() []*docmodel.Node
	QmlSubtypes(n *docmodel.Node) []*docmodel.Node
	Examples() []*docmodel.Node
	Attributions() []*docmodel.Node
	FunctionIndex() []docmodel.FunctionIndexEntry
	LegaleseTexts() []docmodel.Legalese

	ResolveLink(text string, relative *docmodel.Node) (n *docmodel.Node, target string)
	FindNodeForTarget(target string, relative *docmodel.Node) *docmodel.Node
	FindTypeNode(name string, relative *docmodel.Node) *docmodel.Node
	FindClass(name string) *docmodel.Node

	PlainName(n *docmodel.Node) string
	PlainFullName(n, relative *docmodel.Node) string
	FullName(n, relative *docmodel.Node) string
	FullTitle(n *docmodel.Node) string
	Subtitle(n *docmodel.Node) string
	Signature(n *docmodel.Node, values, noReturnType bool) string
	ThreadSafety(n *docmodel.Node) docmodel.ThreadSafety
	LogicalModuleVersion(n *docmodel.Node) string

	Anchor(n *docmodel.Node) string
	FileName(n *docmodel.Node) string
	OutputDir(n *docmodel.Node) string
	ExampleFileName(example *docmodel.Node, file string) string
}

// Sink receives the generated documents.
type Sink interface {
	// Create opens a new document at the given path,
	// relative to the output root.
	Create(path string) (io.WriteCloser, error)
}

// ImageResolver locates images referenced from the documentation.
type ImageResolver interface {
	// ResolveImage returns the path to use in the output
	// for the named image referenced from the given node.
	// It reports false if the image doesn't exist.
	ResolveImage(relative *docmodel.Node, name string) (string, bool)
}

// ExampleURLs looks up the base URL of example projects by path.
//
// [*pathtree.Root] implements this interface.
type ExampleURLs interface {
	Lookup(path string) (string, bool)
}

// Config holds the project-wide settings of the generator.
type Config struct {
	// Project is the name of the documented project.
	Project string

	// Description of the project.
	// Defaults to Project followed by " Reference Documentation".
	Description string

	// NaturalLanguage is the BCP 47 language tag of the documentation.
	// Defaults to "en".
	NaturalLanguage string

	// BuildVersion is the version of the documented project.
	BuildVersion string

	// ExampleURLs maps example paths to the URLs of their projects.
	// Examples without a URL get pages for each of their files.
	ExampleURLs ExampleURLs

	// ExamplesInstallPath is the path that examples are installed under.
	ExamplesInstallPath string

	// ShowInternal generates pages for internal entities.
	ShowInternal bool

	// Plain restricts output to standard DocBook 5.2
	// by leaving out synopses, which use DocBook extensions.
	Plain bool
}

// Generator generates DocBook documents from a documentation model.
type Generator struct {
	Config Config
	DB     Database
	Sink   Sink

	// Log receives warnings about problems in the documentation.
	Log *log.Logger

	// DebugLog receives progress messages.
	DebugLog *log.Logger

	// Images resolves images. If unset, all images are reported missing.
	Images ImageResolver

	// Examples holds the sources of examples.
	// If unset, example files are listed without their contents.
	Examples fs.FS

	// Metrics records statistics about the generation.
	// If unset, nothing is recorded.
	Metrics *Metrics

	mu       sync.Mutex // guards diags and manifest
	diags    []Diagnostic
	manifest ImageManifest
}

// Diagnostic is a problem found in the documentation while generating it.
type Diagnostic struct {
	Location docmodel.Location
	Kind     DiagnosticKind
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: warning: %v", d.Location, d.Message)
}

// DiagnosticKind classifies diagnostics.
type DiagnosticKind string

// Diagnostic kinds.
const (
	UnhandledFormat DiagnosticKind = "unhandled-format"
	TableAttributes DiagnosticKind = "table-attributes"
	UnknownAtom     DiagnosticKind = "unknown-atom"
	SynopsisNode    DiagnosticKind = "synopsis-node"
	MissingSource   DiagnosticKind = "missing-source"
	UnbalancedText  DiagnosticKind = "unbalanced-text"
)

// Validate checks the configuration
// and fills in defaults for missing values.
func (c *Config) Validate() error {
	if c.Description == "" && c.Project != "" {
		c.Description = c.Project + " Reference Documentation"
	}
	if c.NaturalLanguage == "" {
		c.NaturalLanguage = "en"
	}
	tag, err := language.Parse(c.NaturalLanguage)
	if err != nil {
		return fmt.Errorf("natural language %q: %w", c.NaturalLanguage, err)
	}
	c.NaturalLanguage = tag.String()
	return nil
}

// Diagnostics returns all diagnostics reported so far.
func (g *Generator) Diagnostics() []Diagnostic {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Diagnostic(nil), g.diags...)
}

// ImageManifest returns the images referenced by generated documents.
func (g *Generator) ImageManifest() ImageManifest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.manifest.clone()
}

func (g *Generator) warn(loc docmodel.Location, kind DiagnosticKind, format string, args ...any) {
	d := Diagnostic{
		Location: loc,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	}

	g.mu.Lock()
	g.diags = append(g.diags, d)
	g.mu.Unlock()

	if g.Log != nil {
		g.Log.Print(d)
	}
	g.Metrics.diagnostic(kind)
}

func (g *Generator) debugf(format string, args ...any) {
	if g.DebugLog != nil {
		g.DebugLog.Printf(format, args...)
	}
}

func (g *Generator) addImage(relative *docmodel.Node, name, path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.manifest.add(ImageRef{
		Page:  g.DB.FileName(relative),
		Name:  name,
		Path:  path,
		Owner: g.DB.PlainFullName(relative, nil),
	})
}

// GenerateText renders a single documentation text as a DocBook fragment
// wrapped in an article element.
// It reports whether the text had anything to render.
func (g *Generator) GenerateText(w io.Writer, text atom.Text, relative *docmodel.Node) (bool, error) {
	d := g.newDocument(w, relative, "")
	d.w.Start("article")
	d.w.Attr("xmlns:db", _dbNamespace)
	d.w.Attr("xmlns:xlink", _xlinkNamespace)
	ok := d.generateText(text, relative)
	d.w.End()
	return ok, d.w.Close()
}
