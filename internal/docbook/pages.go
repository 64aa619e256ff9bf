package docbook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"braces.dev/errtrace"
	"go.abhg.dev/docbookgen/internal/atom"
	"go.abhg.dev/docbookgen/internal/docmodel"
	"go.abhg.dev/docbookgen/internal/highlight"
)

// Generate writes documents for every documented entity in the database.
//
// Problems with the documentation are reported as diagnostics
// and don't stop generation.
// Generate only fails if documents can't be written.
func (g *Generator) Generate(ctx context.Context) error {
	if err := g.Config.Validate(); err != nil {
		return errtrace.Wrap(err)
	}

	start := time.Now()
	defer func() { g.Metrics.observeDuration(time.Since(start)) }()

	return g.generateDocumentation(ctx, g.DB.Root())
}

// generateDocumentation generates the page for n, if it has one,
// and recurses into its children.
func (g *Generator) generateDocumentation(ctx context.Context, n *docmodel.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.URL != "" {
		return nil
	}
	if n.IsInternal() && !g.Config.ShowInternal {
		return nil
	}

	var errs []error
	if n != g.DB.Root() {
		if err := g.generatePage(n); err != nil {
			errs = append(errs, fmt.Errorf("%v: %w", g.DB.FullTitle(n), err))
		}
	}

	if n.IsAggregate() && !n.IsPrivate() {
		for _, c := range g.DB.Children(n) {
			if err := g.generateDocumentation(ctx, c); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

// generatePage generates the document for n.
// Nodes documented on the page of their parent are ignored.
func (g *Generator) generatePage(n *docmodel.Node) error {
	switch v := n.Variant.(type) {
	case *docmodel.Collection:
		switch {
		case v.Seen:
			return g.generateCollectionPage(n, v)
		case v.Generic:
			return g.generateGenericCollectionPage(n)
		}

	case *docmodel.Page, *docmodel.Example:
		return g.generatePageNode(n)

	case *docmodel.Class, *docmodel.Namespace:
		if g.docMustBeGenerated(n) {
			return g.generateCppReferencePage(n)
		}

	case *docmodel.QmlType:
		return g.generateQmlTypePage(n, v)

	case *docmodel.QmlBasicType:
		return g.generateQmlBasicTypePage(n, v)

	case *docmodel.Proxy:
		return g.generateProxyPage(n)
	}
	return nil
}

// docMustBeGenerated reports whether a class or namespace gets a page.
// Undocumented namespaces get one only if they have documented members.
func (g *Generator) docMustBeGenerated(n *docmodel.Node) bool {
	if n.IsPrivate() {
		return false
	}
	if n.HasDoc() {
		return true
	}
	if ns, ok := n.Variant.(*docmodel.Namespace); ok && ns.DocNode != docmodel.None {
		return true
	}
	return slices.ContainsFunc(g.DB.Children(n), func(c *docmodel.Node) bool {
		return c.HasDoc() && !c.IsPrivate()
	})
}

func (g *Generator) writePage(n *docmodel.Node, body func(*document)) error {
	return g.writeDocument(n, g.DB.FileName(n), body)
}

// generateCppReferencePage generates the page of a class or namespace.
func (g *Generator) generateCppReferencePage(n *docmodel.Node) error {
	raw := g.DB.PlainName(n)
	full := g.DB.PlainFullName(n, nil)

	title := raw + " Class"
	if n.Kind() == docmodel.NamespaceKind {
		title = raw + " Namespace"
	}
	var subtitle string
	if raw != full {
		subtitle = full
	}

	return g.writePage(n, func(d *document) {
		d.generateHeader(title, subtitle, n)
		d.generateRequisites(n)
		d.generateDocBookSynopsis(n)
		d.generateDetailedDescription(n)

		var ss sectionSet
		if n.Kind() == docmodel.NamespaceKind {
			ss = d.namespaceSections(n)
		} else {
			ss = d.cppClassSections(n)
		}
		d.generateMemberSections(n, ss)
		d.generateObsoleteMembers(n, ss, false)
	})
}

// generateDetailedDescription writes the body of an aggregate
// in a section of its own.
func (d *document) generateDetailedDescription(n *docmodel.Node) {
	if !n.HasDoc() {
		return
	}
	d.startSection(d.sectionID("details"), "Detailed Description")
	d.generateBody(n)
	d.generateAlsoList(n)
	d.generateMaintainerList(n)
	d.endSection()
}

// generateMemberSections writes a section per category of members
// of a C++ aggregate.
func (d *document) generateMemberSections(n *docmodel.Node, ss sectionSet) {
	for _, s := range ss {
		if s.isEmpty() {
			continue
		}

		d.startSection(d.sectionID(strings.ToLower(s.title)), s.title)
		for _, m := range s.members {
			switch m.Kind() {
			case docmodel.ClassKind, docmodel.NamespaceKind:
				d.generateNestedAggregate(m, n)
			default:
				d.generateDetailedMember(m, n)
			}
		}
		d.endSection()
	}
}

// generateNestedAggregate links to the page of a class or namespace
// declared inside n.
func (d *document) generateNestedAggregate(m, n *docmodel.Node) {
	d.startSectionBegin("")
	d.w.Text(typeString(m) + " ")
	d.generateFullName(m, n)
	d.startSectionEnd()
	d.generateBrief(m)
	d.endSection()
}

// generateObsoleteMembers documents the obsolete members of n
// in a trailing section.
func (d *document) generateObsoleteMembers(n *docmodel.Node, ss sectionSet, qml bool) {
	if !ss.hasObsolete() {
		return
	}

	d.startSection(d.sectionID("obsolete"), "Obsolete Members for "+n.Name)

	what := typeString(n)
	if qml {
		what = "QML type"
	}
	d.w.Start("para")
	d.w.Start("emphasis")
	d.w.Attr("role", "bold")
	d.w.Text("The following members of " + what + " ")
	d.simpleLinkOrText(d.linkForNode(n, nil), n.Name)
	d.w.Text(" are obsolete.")
	d.w.End() // emphasis
	d.w.Text(" They are provided to keep old source code working. " +
		"We strongly advise against using them in new code.")
	d.w.End() // para
	d.newLine()

	for _, s := range ss {
		if len(s.obsolete) == 0 {
			continue
		}
		d.startSection(d.sectionID(strings.ToLower(s.title)), s.title)
		for _, m := range s.obsolete {
			if qml {
				d.generateDetailedQmlMember(m, n)
			} else {
				d.generateDetailedMember(m, n)
			}
		}
		d.endSection()
	}

	d.endSection()
}

// qmlText returns the parts of a text marked as QML documentation.
func qmlText(text atom.Text) atom.Text {
	var out atom.Text
	var in bool
	for a := text.First(); a != nil; a = a.Next() {
		switch {
		case a.Kind() == atom.QmlText:
			in = true
		case a.Kind() == atom.EndQmlText:
			in = false
		case in:
			out.Append(a.Kind(), a.Strings()...)
		}
	}
	return out
}

// generateQmlTypePage generates the page of a QML type.
func (g *Generator) generateQmlTypePage(n *docmodel.Node, qt *docmodel.QmlType) error {
	title := g.DB.FullTitle(n) + " QML Type"
	if qt.JavaScript {
		title = g.DB.FullTitle(n) + " JavaScript Type"
	}

	return g.writePage(n, func(d *document) {
		d.generateHeader(title, g.DB.Subtitle(n), n)
		d.generateQmlRequisites(n)
		d.generateDocBookSynopsis(n)

		d.startSection(d.sectionID("details"), "Detailed Description")
		d.generateBody(n)
		if cn := g.DB.Node(qt.Class); cn != nil {
			d.generateText(qmlText(cn.Doc.Body), cn)
		}
		d.generateAlsoList(n)
		d.endSection()

		ss := d.qmlTypeSections(n)
		d.generateQmlMemberSections(n, ss)
		d.generateObsoleteMembers(n, ss, true)
	})
}

// generateQmlBasicTypePage generates the page of a QML value type.
func (g *Generator) generateQmlBasicTypePage(n *docmodel.Node, bt *docmodel.QmlBasicType) error {
	title := g.DB.FullTitle(n) + " QML Basic Type"
	if bt.JavaScript {
		title = g.DB.FullTitle(n) + " JavaScript Basic Type"
	}

	return g.writePage(n, func(d *document) {
		d.generateHeader(title, g.DB.Subtitle(n), n)
		d.generateDocBookSynopsis(n)

		d.startSection(d.sectionID("details"), "Detailed Description")
		d.generateBody(n)
		d.generateAlsoList(n)
		d.endSection()

		d.generateQmlMemberSections(n, d.qmlTypeSections(n))
	})
}

func (d *document) generateQmlMemberSections(n *docmodel.Node, ss sectionSet) {
	for _, s := range ss {
		if s.isEmpty() {
			continue
		}
		d.startSection(d.sectionID(strings.ToLower(s.title)), s.title)
		for _, m := range s.members {
			d.generateDetailedQmlMember(m, n)
		}
		d.endSection()
	}
}

// generatePageNode generates a free-standing page or an example.
func (g *Generator) generatePageNode(n *docmodel.Node) error {
	return g.writePage(n, func(d *document) {
		d.generateHeader(g.DB.FullTitle(n), g.DB.Subtitle(n), n)
		d.generateBody(n)
		d.generateAlsoList(n)
	})
}

// generateProxyPage generates the page holding the related non-members
// of a class documented in another module.
func (g *Generator) generateProxyPage(n *docmodel.Node) error {
	return g.writePage(n, func(d *document) {
		d.generateHeader(g.DB.PlainFullName(n, nil), "", n)
		d.generateDetailedDescription(n)
		d.generateMemberSections(n, d.namespaceSections(n))
	})
}

// generateCollectionPage generates the page of a group or module.
func (g *Generator) generateCollectionPage(n *docmodel.Node, cn *docmodel.Collection) error {
	return g.writePage(n, func(d *document) {
		d.generateHeader(g.DB.FullTitle(n), g.DB.Subtitle(n), n)
		d.generateDocBookSynopsis(n)

		if cn.Type == docmodel.Module {
			d.generateBrief(n)
			d.generateStatus(n)
			d.generateSince(n)

			members := g.DB.Members(n)
			for _, kind := range []struct {
				kind  docmodel.Kind
				title string
			}{
				{docmodel.NamespaceKind, "Namespaces"},
				{docmodel.ClassKind, "Classes"},
			} {
				nodes := membersOfKind(g.DB, members, kind.kind)
				if len(nodes) == 0 {
					continue
				}
				ref := strings.ToLower(kind.title)
				d.startSection(d.sectionID(ref), kind.title)
				d.generateAnnotatedList(n, nodes, ref)
				d.endSection()
			}
		}

		var inSection bool
		if cn.Type == docmodel.Module && !n.Doc.Brief.IsEmpty() {
			d.startSection(d.sectionID("details"), "Detailed Description")
			inSection = true
		} else {
			d.writeAnchor(d.sectionID("details"))
		}

		d.generateBody(n)
		d.generateAlsoList(n)

		if !cn.NoAutoList && (cn.Type == docmodel.Group || cn.Type == docmodel.QmlModule) {
			d.generateAnnotatedList(n, g.DB.Members(n), "members")
		}

		if inSection {
			d.endSection()
		}
	})
}

// membersOfKind returns the listed members of a collection
// with the given kind, sorted by name.
func membersOfKind(db Database, members []*docmodel.Node, kind docmodel.Kind) []*docmodel.Node {
	var nodes []*docmodel.Node
	for _, m := range members {
		if m.Kind() == kind && !m.IsPrivate() && !m.IsInternal() {
			nodes = append(nodes, m)
		}
	}
	slices.SortStableFunc(nodes, func(a, b *docmodel.Node) int {
		return strings.Compare(db.PlainFullName(a, nil), db.PlainFullName(b, nil))
	})
	return nodes
}

// generateGenericCollectionPage generates the page holding entities
// related to classes or namespaces documented in a different module.
func (g *Generator) generateGenericCollectionPage(n *docmodel.Node) error {
	return g.writePage(n, func(d *document) {
		d.generateHeader(g.DB.FullTitle(n), g.DB.Subtitle(n), n)

		d.w.TextElement("para", "Each function or type documented here is related to a class or "+
			"namespace that is documented in a different module. The reference "+
			"page for that class or namespace will link to the function or type "+
			"on this page.")
		d.newLine()

		for _, m := range g.DB.Members(n) {
			if m.IsPrivate() {
				continue
			}
			d.generateDetailedMember(m, n)
		}
	})
}

// generateExampleFilePage generates a page with the contents
// of a single file of an example.
func (g *Generator) generateExampleFilePage(n *docmodel.Node, file string) error {
	ex, ok := n.Variant.(*docmodel.Example)
	if !ok {
		return nil
	}

	return g.writeDocument(n, g.DB.ExampleFileName(n, file), func(d *document) {
		title := g.DB.FullTitle(n)
		if title == "" {
			title = ex.Title
		}
		d.generateHeader(title, g.DB.Subtitle(n), n)

		code, err := g.readExampleFile(file)
		if err != nil {
			g.warn(d.location(), MissingSource, "cannot read example file %v: %v", file, err)
			d.w.Start("para")
			d.w.Text("The contents of ")
			d.w.TextElement("filename", file)
			d.w.Text(" are not available.")
			d.w.End() // para
			d.newLine()
			return
		}

		d.programListing(highlight.Language(file), "", code)
	})
}

func (g *Generator) readExampleFile(file string) (string, error) {
	if g.Examples == nil {
		return "", errors.New("no examples directory")
	}

	name := path.Clean(strings.TrimPrefix(file, "/"))
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("invalid path %q", file)
	}
	b, err := fs.ReadFile(g.Examples, name)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	return string(b), nil
}
