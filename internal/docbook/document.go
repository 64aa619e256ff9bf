package docbook

import (
	"errors"
	"fmt"
	"io"
	"path"

	"braces.dev/errtrace"
	"go.abhg.dev/docbookgen/internal/atom"
	"go.abhg.dev/docbookgen/internal/docmodel"
	"go.abhg.dev/docbookgen/internal/errdefer"
	"go.abhg.dev/docbookgen/internal/xmlstream"
)

// paraState tracks which paragraph-like element is open, if any.
type paraState int

const (
	noPara paraState = iota
	inParagraph
	inQuotation
)

// openQuote is a quotation opened by the text.
type openQuote struct {
	// closed reports whether the blockquote was already closed
	// by a list or table inside it.
	closed bool
	// outer is the paragraph state around the quotation.
	// It's restored when the quotation ends.
	outer paraState
}

// textState is the state of the text being generated.
// Each text starts with a fresh state.
type textState struct {
	// floor is the writer depth below which
	// the text may not close elements.
	floor int

	// sections holds the sections opened by the text.
	sections            []openSection
	currentSectionLevel int

	para   paraState
	quotes []openQuote

	inLink                    bool
	inSectionHeading          bool
	inTableHeader             bool
	inListItemLineOpen        bool
	threeColumnEnumValueTable bool
	numTableRows              int
}

// document holds the state of a single output document.
// Nothing in it outlives the document.
type document struct {
	g  *Generator
	db Database
	w  *xmlstream.Writer

	// node is the entity documented by this document.
	node *docmodel.Node
	// dir is the directory of the document relative to the output root,
	// and file is its name within that directory.
	dir, file string

	textState

	// refs maps lowercased references to the references registered
	// under them.
	refs map[string]string

	// rewrite replaces the text of a single atom.
	// It's used to reword property briefs.
	rewrite     *atom.Atom
	rewriteText string

	errs []error
}

func (g *Generator) newDocument(w io.Writer, node *docmodel.Node, dir string) *document {
	return &document{
		g:    g,
		db:   g.DB,
		w:    xmlstream.New(w, "db"),
		node: node,
		dir:  dir,
		refs: make(map[string]string),
	}
}

// writeDocument creates a new document at the given path
// and fills it with the body function.
func (g *Generator) writeDocument(node *docmodel.Node, name string, body func(*document)) (err error) {
	dir := g.DB.OutputDir(node)
	p := path.Join(dir, name)
	g.debugf("Writing %v", p)

	f, err := g.Sink.Create(p)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	d := g.newDocument(f, node, dir)
	d.file = name
	d.startDocument()
	body(d)
	d.endDocument()

	if err := d.w.Close(); err != nil {
		d.errs = append(d.errs, fmt.Errorf("write %v: %w", p, err))
	}
	if err := errors.Join(d.errs...); err != nil {
		return err
	}

	g.Metrics.document(node.Kind())
	return nil
}

func (d *document) startDocument() {
	d.w.Declaration()
	d.newLine()

	d.w.Start("article")
	d.w.Attr("xmlns:db", _dbNamespace)
	d.w.Attr("xmlns:xlink", _xlinkNamespace)
	d.w.Attr("version", "5.2")
	if lang := d.g.Config.NaturalLanguage; lang != "" {
		d.w.Attr("xml:lang", lang)
	}
	d.newLine()
}

func (d *document) endDocument() {
	d.closeTextSections()
	d.w.End() // article
}

func (d *document) fail(err error) {
	if err != nil {
		d.errs = append(d.errs, err)
	}
}

func (d *document) newLine() { d.w.Newline() }

// end closes the element opened last by the current text.
// Texts may not close elements they did not open.
func (d *document) end() {
	if d.w.Depth() <= d.floor {
		d.g.warn(d.location(), UnbalancedText, "unbalanced end of element in documentation text")
		return
	}
	d.w.End()
}

func (d *document) location() docmodel.Location {
	if d.node == nil {
		return docmodel.Location{}
	}
	if d.node.Doc.Location.File != "" {
		return d.node.Doc.Location
	}
	return d.node.Location
}

func (d *document) startSectionBegin(id string) {
	d.w.Start("section")
	if id != "" {
		d.w.Attr("xml:id", id)
	}
	d.newLine()
	d.w.Start("title")
}

func (d *document) startSectionEnd() {
	d.w.End() // title
	d.newLine()
}

func (d *document) startSection(id, title string) {
	d.startSectionBegin(id)
	d.w.Text(title)
	d.startSectionEnd()
}

func (d *document) endSection() {
	d.w.End() // section
	d.newLine()
}

func (d *document) writeAnchor(id string) {
	d.w.Empty("anchor")
	d.w.Attr("xml:id", id)
	d.newLine()
}

// openSection is a section opened by a documentation text.
type openSection struct {
	level int
	// depth is the writer depth outside the section element.
	depth int
}

// closeSection closes the innermost section opened by the current text,
// along with anything left open inside it.
func (d *document) closeSection() {
	s := d.sections[len(d.sections)-1]
	d.sections = d.sections[:len(d.sections)-1]
	if d.w.Depth()-s.depth > 1 {
		d.g.warn(d.location(), UnbalancedText, "unclosed elements at the end of a section")
	}
	for d.w.Depth() > s.depth+1 {
		d.w.End()
	}
	d.endSection()
}

func (d *document) closeTextSections() {
	for len(d.sections) > 0 {
		d.closeSection()
	}
}

func (d *document) simpleLink(href, text string) {
	d.w.Start("link")
	d.w.Attr("xlink:href", href)
	d.w.Text(text)
	d.w.End()
}
