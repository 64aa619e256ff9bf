package docbook

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/docbookgen/internal/atom"
	"go.abhg.dev/docbookgen/internal/docmodel"
	"go.abhg.dev/docbookgen/internal/iotest"
	"go.abhg.dev/docbookgen/internal/xmltest"
	"golang.org/x/net/html"
)

// textFixture is a small documentation set
// that texts are rendered against.
type textFixture struct {
	tree *docmodel.Tree

	module, object, size, overview *docmodel.Node
	connection                     *docmodel.Node
}

func newTextFixture(t *testing.T) *textFixture {
	t.Helper()

	tree := docmodel.NewTree()
	add := func(parent docmodel.ID, n *docmodel.Node) *docmodel.Node {
		tree.Add(parent, n)
		return n
	}

	module := add(docmodel.None, &docmodel.Node{
		Name:    "QtCore",
		Variant: &docmodel.Collection{Type: docmodel.Module, Title: "Qt Core", Seen: true},
	})
	object := add(docmodel.None, &docmodel.Node{
		Name:    "QObject",
		Module:  "QtCore",
		Doc:     docmodel.Doc{Brief: atom.NewText(atom.New(atom.String, "The base class of all Qt objects"))},
		Variant: &docmodel.Class{},
	})
	size := add(object.ID, &docmodel.Node{
		Name:    "objectName",
		Variant: &docmodel.Property{DataType: "QString"},
	})
	connection := add(object.ID, &docmodel.Node{
		Name: "ConnectionType",
		Variant: &docmodel.Enum{Items: []docmodel.EnumItem{
			{Name: "DirectConnection", Value: "1"},
		}},
	})
	overview := add(docmodel.None, &docmodel.Node{
		Name:    "overview.html",
		Variant: &docmodel.Page{Title: "Object Model Overview"},
	})
	tree.Finish()

	return &textFixture{
		tree:       tree,
		module:     module,
		object:     object,
		size:       size,
		overview:   overview,
		connection: connection,
	}
}

func (f *textFixture) generator(t *testing.T) *Generator {
	return &Generator{
		DB:  f.tree,
		Log: log.New(iotest.Writer(t), "", 0),
	}
}

// render renders the given atoms relative to rel
// and returns the parsed fragment.
func render(t *testing.T, g *Generator, rel *docmodel.Node, atoms ...*atom.Atom) *html.Node {
	t.Helper()

	var buf bytes.Buffer
	ok, err := g.GenerateText(&buf, atom.NewText(atoms...), rel)
	require.NoError(t, err)
	require.True(t, ok, "text must not be empty")
	t.Logf("%s", buf.String())
	return xmltest.Parse(t, buf.String())
}

func trimmedTexts(t *testing.T, root *html.Node, selector string) []string {
	t.Helper()

	texts := xmltest.Texts(t, root, selector)
	for i, s := range texts {
		texts[i] = strings.TrimSpace(s)
	}
	return texts
}

func TestGenerateText_empty(t *testing.T) {
	t.Parallel()

	f := newTextFixture(t)
	var buf bytes.Buffer
	ok, err := f.generator(t).GenerateText(&buf, atom.Text{}, f.object)
	require.NoError(t, err)
	assert.False(t, ok)
}

func valueList(description string) []*atom.Atom {
	atoms := []*atom.Atom{
		atom.New(atom.ListLeft, atom.ListValue),
		atom.New(atom.ListTagLeft, atom.ListValue),
		atom.New(atom.String, "DirectConnection"),
		atom.New(atom.ListTagRight, atom.ListValue),
		atom.New(atom.ListItemLeft, atom.ListValue),
	}
	if description != "" {
		atoms = append(atoms, atom.New(atom.String, description))
	}
	return append(atoms,
		atom.New(atom.ListItemRight, atom.ListValue),
		atom.New(atom.ListRight, atom.ListValue),
	)
}

func TestGenerateText(t *testing.T) {
	t.Parallel()

	f := newTextFixture(t)

	tests := []struct {
		desc  string
		rel   *docmodel.Node
		give  []*atom.Atom
		check func(*testing.T, *html.Node)
	}{
		{
			desc: "paragraph with bold text",
			give: []*atom.Atom{
				atom.New(atom.ParaLeft),
				atom.New(atom.String, "Hello "),
				atom.New(atom.FormattingLeft, atom.FormattingBold),
				atom.New(atom.String, "world"),
				atom.New(atom.FormattingRight, atom.FormattingBold),
				atom.New(atom.ParaRight),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, []string{"Hello world"}, xmltest.Texts(t, root, "para"))
				em := xmltest.QueryOne(t, root, "para > emphasis")
				assert.Equal(t, "bold", xmltest.Attr(em, "role"))
			},
		},
		{
			desc: "formatting",
			give: []*atom.Atom{
				atom.New(atom.FormattingLeft, atom.FormattingItalic),
				atom.New(atom.String, "italic"),
				atom.New(atom.FormattingRight, atom.FormattingItalic),
				atom.New(atom.FormattingLeft, atom.FormattingSubscript),
				atom.New(atom.String, "2"),
				atom.New(atom.FormattingRight, atom.FormattingSubscript),
				atom.New(atom.FormattingLeft, atom.FormattingParameter),
				atom.New(atom.String, "parent"),
				atom.New(atom.FormattingRight, atom.FormattingParameter),
			},
			check: func(t *testing.T, root *html.Node) {
				em := xmltest.QueryOne(t, root, "emphasis")
				assert.Empty(t, xmltest.Attr(em, "role"))
				assert.Equal(t, "italic", xmltest.Text(em))
				assert.Equal(t, []string{"2"}, xmltest.Texts(t, root, "sub"))

				code := xmltest.QueryOne(t, root, "code")
				assert.Equal(t, "parameter", xmltest.Attr(code, "role"))
				assert.Equal(t, "parent", xmltest.Text(code))
			},
		},
		{
			desc: "inline code",
			give: []*atom.Atom{atom.New(atom.C, "QString &")},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, []string{"QString &"}, xmltest.Texts(t, root, "code"))
			},
		},
		{
			desc: "code block",
			give: []*atom.Atom{atom.New(atom.Code, "int x = 0;")},
			check: func(t *testing.T, root *html.Node) {
				listing := xmltest.QueryOne(t, root, "programlisting")
				assert.Equal(t, "cpp", xmltest.Attr(listing, "language"))
				assert.Equal(t, "int x = 0;", xmltest.Text(listing))
			},
		},
		{
			desc: "qml code",
			give: []*atom.Atom{atom.New(atom.Qml, "Item {}")},
			check: func(t *testing.T, root *html.Node) {
				listing := xmltest.QueryOne(t, root, "programlisting")
				assert.Equal(t, "qml", xmltest.Attr(listing, "language"))
			},
		},
		{
			desc: "old and new code",
			give: []*atom.Atom{
				atom.New(atom.CodeOld, "old();"),
				atom.New(atom.CodeNew, "updated();"),
			},
			check: func(t *testing.T, root *html.Node) {
				listings := xmltest.Query(t, root, "programlisting")
				require.Len(t, listings, 2)
				assert.Equal(t, "bad", xmltest.Attr(listings[0], "role"))
				assert.Equal(t, "new", xmltest.Attr(listings[1], "role"))
				assert.Equal(t,
					[]string{"For example, if you have code like", "you can rewrite it as"},
					xmltest.Texts(t, root, "para"))
			},
		},
		{
			desc: "bullet list",
			give: []*atom.Atom{
				atom.New(atom.ListLeft, atom.ListBullet),
				atom.New(atom.ListItemNumber, "1"),
				atom.New(atom.ListItemLeft, atom.ListBullet),
				atom.New(atom.String, "one"),
				atom.New(atom.ListItemRight, atom.ListBullet),
				atom.New(atom.ListItemLeft, atom.ListBullet),
				atom.New(atom.String, "two"),
				atom.New(atom.ListItemRight, atom.ListBullet),
				atom.New(atom.ListRight, atom.ListBullet),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, []string{"one", "two"}, trimmedTexts(t, root, "itemizedlist > listitem"))
			},
		},
		{
			desc: "numbered list",
			give: []*atom.Atom{
				atom.New(atom.ListLeft, atom.ListUpperRoman),
				atom.New(atom.ListItemNumber, "3"),
				atom.New(atom.ListItemLeft, atom.ListUpperRoman),
				atom.New(atom.String, "third"),
				atom.New(atom.ListItemRight, atom.ListUpperRoman),
				atom.New(atom.ListRight, atom.ListUpperRoman),
			},
			check: func(t *testing.T, root *html.Node) {
				list := xmltest.QueryOne(t, root, "orderedlist")
				assert.Equal(t, "3", xmltest.Attr(list, "startingnumber"))
				assert.Equal(t, "upperroman", xmltest.Attr(list, "numeration"))
			},
		},
		{
			desc: "variable list",
			give: []*atom.Atom{
				atom.New(atom.ListLeft, atom.ListTag),
				atom.New(atom.ListTagLeft, atom.ListTag),
				atom.New(atom.String, "parent"),
				atom.New(atom.ListTagRight, atom.ListTag),
				atom.New(atom.ListItemLeft, atom.ListTag),
				atom.New(atom.String, "The parent object."),
				atom.New(atom.ListItemRight, atom.ListTag),
				atom.New(atom.ListRight, atom.ListTag),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, []string{"parent"}, xmltest.Texts(t, root, "variablelist > varlistentry > term"))
				assert.Equal(t, []string{"The parent object."}, xmltest.Texts(t, root, "varlistentry > listitem > para"))
			},
		},
		{
			desc: "note",
			give: []*atom.Atom{
				atom.New(atom.NoteLeft),
				atom.New(atom.String, "Not thread-safe."),
				atom.New(atom.NoteRight),
				atom.New(atom.ImportantLeft),
				atom.New(atom.String, "Read this."),
				atom.New(atom.ImportantRight),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, []string{"Not thread-safe."}, xmltest.Texts(t, root, "note > para"))
				assert.Equal(t, []string{"Read this."}, xmltest.Texts(t, root, "important > para"))
			},
		},
		{
			desc: "footnote",
			give: []*atom.Atom{
				atom.New(atom.FootnoteLeft),
				atom.New(atom.String, "See the manual."),
				atom.New(atom.FootnoteRight),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, []string{"See the manual."}, xmltest.Texts(t, root, "footnote > para"))
			},
		},
		{
			desc: "quotation",
			give: []*atom.Atom{
				atom.New(atom.QuotationLeft),
				atom.New(atom.String, "quoted"),
				atom.New(atom.QuotationRight),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, []string{"quoted"}, xmltest.Texts(t, root, "blockquote"))
			},
		},
		{
			desc: "table",
			give: []*atom.Atom{
				atom.New(atom.TableLeft, "80%"),
				atom.New(atom.TableHeaderLeft),
				atom.New(atom.TableItemLeft),
				atom.New(atom.String, "Name"),
				atom.New(atom.TableItemRight),
				atom.New(atom.TableHeaderRight),
				atom.New(atom.TableRowLeft),
				atom.New(atom.TableItemLeft, "2,1"),
				atom.New(atom.String, "wide"),
				atom.New(atom.TableItemRight),
				atom.New(atom.TableRowRight),
				atom.New(atom.TableRight),
			},
			check: func(t *testing.T, root *html.Node) {
				table := xmltest.QueryOne(t, root, "informaltable")
				assert.Equal(t, "generic", xmltest.Attr(table, "style"))
				assert.Equal(t, "80%", xmltest.Attr(table, "width"))

				assert.Equal(t, []string{"Name"}, trimmedTexts(t, root, "thead > tr > th"))

				row := xmltest.QueryOne(t, root, "informaltable > tr")
				assert.Equal(t, "top", xmltest.Attr(row, "valign"))
				cell := xmltest.QueryOne(t, root, "informaltable > tr > td")
				assert.Equal(t, "2", xmltest.Attr(cell, "colspan"))
				assert.Empty(t, xmltest.Attr(cell, "rowspan"), "spans of 1 are left out")
				assert.Equal(t, "wide", strings.TrimSpace(xmltest.Text(cell)))
			},
		},
		{
			desc: "section",
			give: []*atom.Atom{
				atom.New(atom.SectionLeft, "1"),
				atom.New(atom.SectionHeadingLeft),
				atom.New(atom.String, "Thread Affinity"),
				atom.New(atom.SectionHeadingRight),
				atom.New(atom.ParaLeft),
				atom.New(atom.String, "Objects live in threads."),
				atom.New(atom.ParaRight),
				atom.New(atom.SectionRight, "1"),
				atom.New(atom.SectionLeft, "1"),
				atom.New(atom.SectionHeadingLeft),
				atom.New(atom.String, "Café Society"),
				atom.New(atom.SectionHeadingRight),
				atom.New(atom.SectionRight, "1"),
			},
			check: func(t *testing.T, root *html.Node) {
				sections := xmltest.Query(t, root, "article > section")
				require.Len(t, sections, 2, "sections at the same level are siblings")
				assert.Equal(t, "thread-affinity", xmltest.Attr(sections[0], "id"))
				assert.Equal(t, "cafe-society", xmltest.Attr(sections[1], "id"))
				assert.Equal(t, []string{"Thread Affinity", "Café Society"}, xmltest.Texts(t, root, "section > title"))
				assert.Equal(t, []string{"Objects live in threads."}, xmltest.Texts(t, root, "section > para"))
			},
		},
		{
			desc: "shallower section closes deeper ones",
			give: []*atom.Atom{
				atom.New(atom.SectionLeft, "1"),
				atom.New(atom.SectionHeadingLeft),
				atom.New(atom.String, "Outer"),
				atom.New(atom.SectionHeadingRight),
				atom.New(atom.SectionLeft, "2"),
				atom.New(atom.SectionHeadingLeft),
				atom.New(atom.String, "Inner"),
				atom.New(atom.SectionHeadingRight),
				atom.New(atom.SectionLeft, "3"),
				atom.New(atom.SectionHeadingLeft),
				atom.New(atom.String, "Innermost"),
				atom.New(atom.SectionHeadingRight),
				atom.New(atom.SectionLeft, "1"),
				atom.New(atom.SectionHeadingLeft),
				atom.New(atom.String, "Next"),
				atom.New(atom.SectionHeadingRight),
			},
			check: func(t *testing.T, root *html.Node) {
				top := xmltest.Query(t, root, "article > section")
				require.Len(t, top, 2)
				assert.Equal(t, "outer", xmltest.Attr(top[0], "id"))
				assert.Equal(t, "next", xmltest.Attr(top[1], "id"))

				inner := xmltest.QueryOne(t, root, "article > section > section")
				assert.Equal(t, "inner", xmltest.Attr(inner, "id"))
				innermost := xmltest.QueryOne(t, root, "section > section > section")
				assert.Equal(t, "innermost", xmltest.Attr(innermost, "id"))

				assert.Empty(t, xmltest.Query(t, top[1], "section"), "next section must be empty")
			},
		},
		{
			desc: "repeated ids",
			give: []*atom.Atom{
				atom.New(atom.SectionLeft, "1"),
				atom.New(atom.SectionHeadingLeft),
				atom.New(atom.String, "Details"),
				atom.New(atom.SectionHeadingRight),
				atom.New(atom.SectionLeft, "1"),
				atom.New(atom.SectionHeadingLeft),
				atom.New(atom.String, "Details"),
				atom.New(atom.SectionHeadingRight),
				atom.New(atom.Target, "Details"),
			},
			check: func(t *testing.T, root *html.Node) {
				var ids []string
				for _, n := range xmltest.Query(t, root, "[id]") {
					ids = append(ids, xmltest.Attr(n, "id"))
				}
				assert.Equal(t, []string{"details", "detailsx", "detailsxx"}, ids)
			},
		},
		{
			desc: "quotation inside paragraph",
			give: []*atom.Atom{
				atom.New(atom.ParaLeft),
				atom.New(atom.String, "a"),
				atom.New(atom.QuotationLeft),
				atom.New(atom.String, "q"),
				atom.New(atom.QuotationRight),
				atom.New(atom.ParaRight),
				atom.New(atom.ParaLeft),
				atom.New(atom.String, "b"),
				atom.New(atom.ParaRight),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, []string{"aq", "b"}, trimmedTexts(t, root, "article > para"))
				assert.Equal(t, []string{"q"}, xmltest.Texts(t, root, "para > blockquote"))
				assert.Empty(t, xmltest.Query(t, root, "para para"), "paragraphs must not nest")
			},
		},
		{
			desc: "enum value table",
			rel:  f.connection,
			give: valueList("Direct delivery."),
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t,
					[]string{"Constant", "Value", "Description"},
					trimmedTexts(t, root, "thead > tr > th"))
				cells := xmltest.Query(t, root, "informaltable > tr > td")
				require.Len(t, cells, 3)
				assert.Equal(t, []string{"1"}, xmltest.Texts(t, cells[1], "code"))
				assert.Equal(t, "Direct delivery.", strings.TrimSpace(xmltest.Text(cells[2])))
			},
		},
		{
			desc: "value table outside an enum",
			rel:  f.object,
			give: valueList("Direct delivery."),
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t,
					[]string{"Constant", "Description"},
					trimmedTexts(t, root, "thead > tr > th"))
				assert.Len(t, xmltest.Query(t, root, "informaltable > tr > td"), 2)
			},
		},
		{
			desc: "two column enum value table",
			rel:  f.connection,
			give: valueList(""),
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t,
					[]string{"Constant", "Value"},
					trimmedTexts(t, root, "thead > tr > th"))
				assert.Len(t, xmltest.Query(t, root, "informaltable > tr > td"), 2)
			},
		},
		{
			desc: "target",
			give: []*atom.Atom{atom.New(atom.Target, "Signals and Slots")},
			check: func(t *testing.T, root *html.Node) {
				anchor := xmltest.QueryOne(t, root, "anchor")
				assert.Equal(t, "signals-and-slots", xmltest.Attr(anchor, "id"))
			},
		},
		{
			desc: "auto link",
			rel:  f.overview,
			give: []*atom.Atom{
				atom.New(atom.String, "See "),
				atom.New(atom.AutoLink, "QObject"),
				atom.New(atom.String, " and "),
				atom.New(atom.AutoLink, "QNothing"),
			},
			check: func(t *testing.T, root *html.Node) {
				link := xmltest.QueryOne(t, root, "link")
				assert.Equal(t, "qobject.xml", xmltest.Attr(link, "href"))
				assert.Equal(t, "QObject", xmltest.Text(link))
				assert.Equal(t, "See QObject and QNothing", xmltest.Text(root))
			},
		},
		{
			desc: "external link",
			give: []*atom.Atom{
				atom.New(atom.Link, "https://www.qt.io"),
				atom.New(atom.FormattingLeft, atom.FormattingLink),
				atom.New(atom.String, "Qt"),
				atom.New(atom.FormattingRight, atom.FormattingLink),
			},
			check: func(t *testing.T, root *html.Node) {
				link := xmltest.QueryOne(t, root, "link")
				assert.Equal(t, "https://www.qt.io", xmltest.Attr(link, "href"))
				assert.Equal(t, "Qt", xmltest.Text(link))
			},
		},
		{
			desc: "function link parentheses",
			rel:  f.overview,
			give: []*atom.Atom{
				atom.New(atom.Link, "QObject"),
				atom.New(atom.FormattingLeft, atom.FormattingLink),
				atom.New(atom.String, "QObject()"),
				atom.New(atom.FormattingRight, atom.FormattingLink),
			},
			check: func(t *testing.T, root *html.Node) {
				link := xmltest.QueryOne(t, root, "link")
				assert.Equal(t, "QObject", xmltest.Text(link))
				assert.Equal(t, "QObject()", strings.TrimSpace(xmltest.Text(root)))
			},
		},
		{
			desc: "property brief",
			rel:  f.size,
			give: []*atom.Atom{
				atom.New(atom.BriefLeft),
				atom.New(atom.String, "The name of this object"),
				atom.New(atom.BriefRight),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, []string{"This property holds the name of this object"},
					xmltest.Texts(t, root, "para"))
			},
		},
		{
			desc: "brief skipped on pages",
			rel:  f.overview,
			give: []*atom.Atom{
				atom.New(atom.BriefLeft),
				atom.New(atom.String, "Shown in the header"),
				atom.New(atom.BriefRight),
				atom.New(atom.String, "body"),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Empty(t, xmltest.Query(t, root, "para"))
				assert.Equal(t, "body", xmltest.Text(root))
			},
		},
		{
			desc: "format if else",
			give: []*atom.Atom{
				atom.New(atom.FormatIf, "HTML"),
				atom.New(atom.String, "html only"),
				atom.New(atom.FormatElse),
				atom.New(atom.String, "everywhere else"),
				atom.New(atom.FormatEndif),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, "everywhere else", xmltest.Text(root))
			},
		},
		{
			desc: "format if docbook",
			give: []*atom.Atom{
				atom.New(atom.FormatIf, "docbook"),
				atom.New(atom.String, "docbook only"),
				atom.New(atom.FormatEndif),
			},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, "docbook only", xmltest.Text(root))
			},
		},
		{
			desc: "unknown command",
			give: []*atom.Atom{atom.New(atom.UnknownCommand, "frobnicate")},
			check: func(t *testing.T, root *html.Node) {
				em := xmltest.QueryOne(t, root, "emphasis")
				assert.Equal(t, "bold", xmltest.Attr(em, "role"))
				assert.Equal(t, []string{"frobnicate"}, xmltest.Texts(t, root, "emphasis > code"))
				assert.Contains(t, xmltest.Text(em), "<Unknown command>")
			},
		},
		{
			desc: "escaping",
			give: []*atom.Atom{atom.New(atom.String, `a < b && "c" > d`)},
			check: func(t *testing.T, root *html.Node) {
				assert.Equal(t, `a < b && "c" > d`, xmltest.Text(root))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			g := f.generator(t)
			root := render(t, g, tt.rel, tt.give...)
			tt.check(t, root)
			assert.Empty(t, g.Diagnostics())
		})
	}
}

func TestGenerateText_diagnostics(t *testing.T) {
	t.Parallel()

	f := newTextFixture(t)

	tests := []struct {
		desc     string
		give     []*atom.Atom
		wantKind DiagnosticKind
		wantText string
	}{
		{
			desc: "unhandled format",
			give: []*atom.Atom{
				atom.New(atom.FormatIf, "DocBook"),
				atom.New(atom.FormatEndif),
			},
			wantKind: UnhandledFormat,
			wantText: "<Missing DocBook>",
		},
		{
			desc:     "missing image",
			give:     []*atom.Atom{atom.New(atom.Image, "logo.png")},
			wantKind: MissingSource,
			wantText: "[Missing image logo.png]",
		},
		{
			desc: "unbalanced end",
			give: []*atom.Atom{
				atom.New(atom.String, "dangling"),
				atom.New(atom.FootnoteRight),
			},
			wantKind: UnbalancedText,
			wantText: "dangling",
		},
		{
			desc: "unclosed element",
			give: []*atom.Atom{
				atom.New(atom.SidebarLeft),
				atom.New(atom.String, "open"),
			},
			wantKind: UnbalancedText,
			wantText: "open",
		},
		{
			desc: "bad row attributes",
			give: []*atom.Atom{
				atom.New(atom.TableLeft),
				atom.New(atom.TableRowLeft, `bgcolor="`),
				atom.New(atom.TableItemLeft),
				atom.New(atom.String, "cell"),
				atom.New(atom.TableItemRight),
				atom.New(atom.TableRowRight),
				atom.New(atom.TableRight),
			},
			wantKind: TableAttributes,
			wantText: "cell",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			g := f.generator(t)
			root := render(t, g, f.object, tt.give...)
			assert.Contains(t, xmltest.Text(root), tt.wantText)

			diags := g.Diagnostics()
			require.NotEmpty(t, diags)
			assert.Equal(t, tt.wantKind, diags[0].Kind)
		})
	}
}

type stubImages map[string]string

func (s stubImages) ResolveImage(_ *docmodel.Node, name string) (string, bool) {
	p, ok := s[name]
	return p, ok
}

func TestGenerateText_image(t *testing.T) {
	t.Parallel()

	f := newTextFixture(t)
	g := f.generator(t)
	g.Images = stubImages{"logo.png": "images/logo.png"}

	root := render(t, g, f.object,
		atom.New(atom.Image, "logo.png"),
		atom.New(atom.ImageText, "The Qt logo"),
		atom.New(atom.InlineImage, "logo.png"),
	)

	assert.Len(t, xmltest.Query(t, root, "mediaobject"), 1)
	assert.Len(t, xmltest.Query(t, root, "inlinemediaobject"), 1)
	assert.Equal(t, []string{"The Qt logo"}, xmltest.Texts(t, root, "mediaobject > alt"))
	for _, img := range xmltest.Query(t, root, "imagedata") {
		assert.Equal(t, "images/logo.png", xmltest.Attr(img, "fileref"))
	}
	assert.Empty(t, g.Diagnostics())

	manifest := g.ImageManifest()
	assert.Equal(t, []string{"images/logo.png"}, manifest.Paths())
	require.NotEmpty(t, manifest.Images)
	assert.Equal(t, ImageRef{
		Page:  "qobject.xml",
		Name:  "logo.png",
		Path:  "images/logo.png",
		Owner: "QObject",
	}, manifest.Images[0])
}
