package docbook

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.abhg.dev/docbookgen/internal/atom"
	"go.abhg.dev/docbookgen/internal/docmodel"
)

// generateText renders a documentation text relative to the given node.
// It reports false if the text is empty.
//
// The text owns the elements it opens:
// sections it starts are closed when it ends,
// and it cannot close elements opened around it.
func (d *document) generateText(text atom.Text, rel *docmodel.Node) bool {
	if text.IsEmpty() {
		return false
	}

	// Texts nest: a list generated inside a text renders other texts.
	saved := d.textState
	d.textState = textState{floor: d.w.Depth()}
	defer func() { d.textState = saved }()

	var numAtoms int
	d.generateAtomList(text.First(), rel, true, &numAtoms)
	d.endLink()
	d.closeTextSections()

	if extra := d.w.Depth() - d.floor; extra > 0 {
		d.g.warn(d.location(), UnbalancedText, "%d unclosed elements at the end of the text", extra)
		for range extra {
			d.w.End()
		}
	}
	return true
}

// generateAtomList renders atoms starting at a,
// stopping at the end of the text or at a FormatElse or FormatEndif.
// Atoms are only written if generate is true.
// numAtoms is incremented by the number of atoms written.
// It returns the atom it stopped at.
func (d *document) generateAtomList(a *atom.Atom, rel *docmodel.Node, generate bool, numAtoms *int) *atom.Atom {
	for a != nil {
		switch a.Kind() {
		case atom.FormatIf:
			numAtoms0 := *numAtoms
			rightFormat := strings.EqualFold(a.String(), _format)

			a = d.generateAtomList(a.Next(), rel, generate && rightFormat, numAtoms)
			if a == nil {
				return nil
			}

			if a.Kind() == atom.FormatElse {
				*numAtoms++
				a = d.generateAtomList(a.Next(), rel, generate && !rightFormat, numAtoms)
				if a == nil {
					return nil
				}
			}

			if a.Kind() == atom.FormatEndif {
				if generate && numAtoms0 == *numAtoms {
					d.g.warn(d.location(), UnhandledFormat,
						"Output format %v not handled %v", _format, d.file)
					d.generateAtomList(atom.New(atom.UnhandledFormat, _format), rel, generate, numAtoms)
				}
				a = a.Next()
			}

		case atom.FormatElse, atom.FormatEndif:
			return a

		default:
			n := 1
			if generate {
				n += d.generateAtom(a, rel)
				*numAtoms += n
			}
			for ; n > 0 && a != nil; n-- {
				a = a.Next()
			}
		}
	}
	return nil
}

// generateAtom renders a single atom
// and returns the number of atoms after it that it consumed.
func (d *document) generateAtom(a *atom.Atom, rel *docmodel.Node) (skipAhead int) {
	d.g.Metrics.atom(a.Kind())

	switch a.Kind() {
	case atom.AutoLink, atom.NavAutoLink:
		if d.inLink || d.inSectionHeading {
			d.w.Text(a.String())
			break
		}
		link, n := d.getAutoLink(a.String(), rel)
		if link != "" && n != nil && n.IsObsolete() && rel != nil &&
			d.db.Parent(rel) != n && !rel.IsObsolete() {
			link = ""
		}
		if link == "" {
			d.w.Text(a.String())
		} else {
			d.beginLink(link, n, rel)
			d.generateLink(a.String())
			d.endLink()
		}

	case atom.BriefLeft:
		if !hasBrief(rel) {
			skipAhead = skipAtoms(a, atom.BriefRight)
			break
		}
		d.w.Start("para")
		d.rewritePropertyBrief(a, rel)

	case atom.BriefRight:
		if hasBrief(rel) {
			d.end() // para
			d.newLine()
		}

	case atom.C:
		d.w.TextElement("code", a.String())

	case atom.CaptionLeft:
		d.w.Start("title")

	case atom.CaptionRight:
		d.endLink()
		d.end() // title
		d.newLine()

	case atom.Qml:
		d.programListing("qml", "", a.String())

	case atom.JavaScript:
		d.programListing("js", "", a.String())

	case atom.Code:
		lang := a.StringAt(1)
		if lang == "" {
			lang = "cpp"
		}
		d.programListing(lang, "", a.String())

	case atom.CodeNew:
		d.w.TextElement("para", "you can rewrite it as")
		d.newLine()
		d.programListing("cpp", "new", a.String())

	case atom.CodeOld:
		d.w.TextElement("para", "For example, if you have code like")
		d.newLine()
		d.programListing("cpp", "bad", a.String())

	case atom.CodeBad:
		d.programListing("cpp", "bad", a.String())

	case atom.FootnoteLeft:
		d.w.Start("footnote")
		d.newLine()
		d.w.Start("para")

	case atom.FootnoteRight:
		d.end() // para
		d.newLine()
		d.end() // footnote

	case atom.FormattingLeft:
		d.formattingLeft(a.String())

	case atom.FormattingRight:
		switch a.String() {
		case atom.FormattingBold, atom.FormattingItalic, atom.FormattingUnderline,
			atom.FormattingSubscript, atom.FormattingSuperscript,
			atom.FormattingTeletype, atom.FormattingParameter:
			d.end()
		case atom.FormattingLink:
			d.endLink()
		}

	case atom.AnnotatedList:
		if cn := d.db.Collection(a.String(), docmodel.Group); cn != nil {
			d.generateList(cn, a.String())
		}

	case atom.GeneratedList:
		d.generateGeneratedList(a.String(), rel)

	case atom.Image, atom.InlineImage:
		d.generateImage(a, rel)

	case atom.ImportantLeft, atom.NoteLeft:
		tag := "note"
		if a.Kind() == atom.ImportantLeft {
			tag = "important"
		}
		d.w.Start(tag)
		d.newLine()
		d.w.Start("para")

	case atom.ImportantRight, atom.NoteRight:
		d.end() // para
		d.newLine()
		d.end() // note or important
		d.newLine()

	case atom.Link, atom.NavLink:
		link, n := d.getLink(a.String(), rel)
		d.beginLink(link, n, rel) // closed by FormattingRight
		skipAhead = 1

	case atom.LinkNode:
		var n *docmodel.Node
		if id, err := strconv.Atoi(a.String()); err == nil {
			n = d.db.Node(docmodel.ID(id))
		}
		d.beginLink(d.linkForNode(n, rel), n, rel)
		skipAhead = 1

	case atom.ListLeft:
		d.closePara()
		d.listLeft(a, rel)

	case atom.ListTagLeft:
		if a.String() == atom.ListTag {
			d.w.Start("varlistentry")
			d.newLine()
			d.w.Start("term")
			break
		}
		skipAhead = d.valueRow(a, rel)

	case atom.SinceTagRight, atom.ListTagRight:
		if a.String() == atom.ListTag {
			d.end() // term
			d.newLine()
		}

	case atom.ListItemLeft:
		d.inListItemLineOpen = false
		switch a.String() {
		case atom.ListTag:
			d.w.Start("listitem")
			d.newLine()
			d.w.Start("para")
		case atom.ListValue:
			if !d.threeColumnEnumValueTable {
				break
			}
			if matchAhead(a, atom.ListItemRight) {
				d.w.Empty("td")
				d.newLine()
			} else {
				d.w.Start("td")
				d.newLine()
				d.inListItemLineOpen = true
			}
		default:
			d.w.Start("listitem")
			d.newLine()
		}

	case atom.ListItemRight:
		switch a.String() {
		case atom.ListTag:
			d.end() // para
			d.newLine()
			d.end() // listitem
			d.newLine()
			d.end() // varlistentry
			d.newLine()
		case atom.ListValue:
			if d.inListItemLineOpen {
				d.end() // td
				d.newLine()
				d.inListItemLineOpen = false
			}
			d.end() // tr
			d.newLine()
		default:
			d.end() // listitem
			d.newLine()
		}

	case atom.ListRight:
		d.end() // itemizedlist, variablelist, informaltable, or orderedlist
		d.newLine()

	case atom.ParaLeft:
		d.w.Start("para")
		d.para = inParagraph

	case atom.ParaRight:
		d.endLink()
		if d.para == inParagraph {
			d.end() // para
			d.newLine()
			d.para = noPara
		}

	case atom.QuotationLeft:
		d.w.Start("blockquote")
		d.quotes = append(d.quotes, openQuote{outer: d.para})
		d.para = inQuotation

	case atom.QuotationRight:
		q := openQuote{outer: noPara}
		if n := len(d.quotes); n > 0 {
			q = d.quotes[n-1]
			d.quotes = d.quotes[:n-1]
		}
		if !q.closed {
			d.end() // blockquote
			d.newLine()
		}
		d.para = q.outer

	case atom.RawString:
		d.w.Text(a.String())

	case atom.SectionLeft:
		d.sectionLeft(a, rel)

	case atom.SectionHeadingLeft:
		if d.currentSectionLevel > 1 {
			d.w.Start("title")
			d.inSectionHeading = true
		}

	case atom.SectionHeadingRight:
		if d.currentSectionLevel > 1 {
			d.end() // title
			d.newLine()
			d.inSectionHeading = false
		}

	case atom.SidebarLeft:
		d.w.Start("sidebar")

	case atom.SidebarRight:
		d.end() // sidebar
		d.newLine()

	case atom.String:
		s := a.String()
		if a == d.rewrite {
			s = d.rewriteText
		}
		if d.inLink && !d.inSectionHeading {
			d.generateLink(s)
		} else {
			d.w.Text(s)
		}

	case atom.TableLeft:
		d.closePara()
		width, style := tableStyle(a.Strings())
		d.w.Start("informaltable")
		d.w.Attr("style", style)
		if width != "" {
			d.w.Attr("width", width)
		}
		d.newLine()
		d.numTableRows = 0

	case atom.TableRight:
		d.end() // informaltable
		d.newLine()

	case atom.TableHeaderLeft:
		d.w.Start("thead")
		d.newLine()
		d.w.Start("tr")
		d.newLine()
		d.inTableHeader = true

	case atom.TableHeaderRight:
		d.end() // tr
		d.newLine()
		if matchAhead(a, atom.TableHeaderLeft) {
			skipAhead = 1
			d.w.Start("tr")
			d.newLine()
		} else {
			d.end() // thead
			d.newLine()
			d.inTableHeader = false
		}

	case atom.TableRowLeft:
		d.w.Start("tr")
		attrs, err := parseRowAttrs(a.String())
		if err != nil {
			d.g.warn(d.location(), TableAttributes,
				"Error when parsing attributes for the table: got %q", a.String())
		}
		for _, at := range attrs {
			d.w.Attr(at.Key, at.Value)
		}
		d.newLine()
		d.numTableRows++

	case atom.TableRowRight:
		d.end() // tr
		d.newLine()

	case atom.TableItemLeft:
		if d.inTableHeader {
			d.w.Start("th")
		} else {
			d.w.Start("td")
		}
		attrs, err := parseCellAttrs(a.Strings())
		if err != nil {
			d.g.warn(d.location(), TableAttributes, "Error when parsing table cell: %v", err)
		}
		for _, at := range attrs {
			d.w.Attr(at.Key, at.Value)
		}
		d.newLine()

	case atom.TableItemRight:
		d.end() // th or td
		d.newLine()

	case atom.Target:
		d.writeAnchor(d.newID(canonicalTitle(a.String())))

	case atom.UnhandledFormat:
		d.w.Start("emphasis")
		d.w.Attr("role", "bold")
		d.w.Text("<Missing DocBook>")
		d.w.End()

	case atom.UnknownCommand:
		d.w.Start("emphasis")
		d.w.Attr("role", "bold")
		d.w.Text("<Unknown command>")
		d.w.TextElement("code", a.String())
		d.w.End()

	case atom.BaseName, atom.DivLeft, atom.DivRight,
		atom.FormatElse, atom.FormatEndif, atom.FormatIf,
		atom.ImageText, atom.LegaleseLeft, atom.LegaleseRight,
		atom.ListItemNumber, atom.Nop, atom.SectionRight,
		atom.SinceList, atom.LineBreak, atom.BR, atom.HR,
		atom.TableOfContents, atom.Keyword,
		atom.QmlText, atom.EndQmlText,
		atom.CodeQuoteArgument, atom.CodeQuoteCommand,
		atom.SnippetCommand, atom.SnippetIdentifier, atom.SnippetLocation:
		// Nothing to render:
		// DocBook processors generate tables of contents themselves
		// and there's no DocBook equivalent for line breaks and rules.

	default:
		d.g.warn(d.location(), UnknownAtom, "unknown atom type %v", a.Kind())
		d.w.Start("emphasis")
		d.w.Attr("role", "bold")
		d.w.Text("<Unknown command>")
		d.w.TextElement("code", a.Kind().String())
		d.w.End()
	}
	return skipAhead
}

func (d *document) programListing(lang, role, code string) {
	d.w.Start("programlisting")
	d.w.Attr("language", lang)
	if role != "" {
		d.w.Attr("role", role)
	}
	d.w.Text(code)
	d.w.End()
	d.newLine()
}

func (d *document) formattingLeft(format string) {
	switch format {
	case atom.FormattingBold:
		d.w.Start("emphasis")
		d.w.Attr("role", "bold")
	case atom.FormattingItalic:
		d.w.Start("emphasis")
	case atom.FormattingUnderline:
		d.w.Start("emphasis")
		d.w.Attr("role", "underline")
	case atom.FormattingSubscript:
		d.w.Start("sub")
	case atom.FormattingSuperscript:
		d.w.Start("sup")
	case atom.FormattingTeletype:
		d.w.Start("code")
	case atom.FormattingParameter:
		d.w.Start("code")
		d.w.Attr("role", "parameter")
	}
}

// closePara closes an open paragraph or quotation
// before a block element that can't be nested inside it.
func (d *document) closePara() {
	if d.para == noPara {
		return
	}
	if d.para == inQuotation && len(d.quotes) > 0 {
		d.quotes[len(d.quotes)-1].closed = true
	}
	d.end() // para or blockquote
	d.newLine()
	d.para = noPara
}

func (d *document) listLeft(a *atom.Atom, rel *docmodel.Node) {
	switch a.String() {
	case atom.ListBullet:
		d.w.Start("itemizedlist")
		d.newLine()

	case atom.ListTag:
		d.w.Start("variablelist")
		d.newLine()

	case atom.ListValue:
		d.threeColumnEnumValueTable = isThreeColumnEnumValueTable(a)

		d.w.Start("informaltable")
		d.newLine()
		d.w.Start("thead")
		d.newLine()
		d.w.Start("tr")
		d.newLine()
		d.w.TextElement("th", "Constant")
		d.newLine()
		if isEnum(rel) {
			d.w.TextElement("th", "Value")
			d.newLine()
		}
		if d.threeColumnEnumValueTable {
			d.w.TextElement("th", "Description")
			d.newLine()
		}
		d.w.End() // tr
		d.newLine()
		d.w.End() // thead
		d.newLine()

	default:
		d.w.Start("orderedlist")
		if next := a.Next(); next != nil {
			if n, err := strconv.Atoi(next.String()); err == nil && n > 1 {
				d.w.Attr("startingnumber", next.String())
			}
		}
		numeration := "arabic"
		switch a.String() {
		case atom.ListUpperAlpha:
			numeration = "upperalpha"
		case atom.ListLowerAlpha:
			numeration = "loweralpha"
		case atom.ListUpperRoman:
			numeration = "upperroman"
		case atom.ListLowerRoman:
			numeration = "lowerroman"
		}
		d.w.Attr("numeration", numeration)
		d.newLine()
	}
}

// valueRow starts a row of an enum value table
// and returns the number of atoms it consumed.
func (d *document) valueRow(a *atom.Atom, rel *docmodel.Node) int {
	name, skip := atomListValue(a)

	d.w.Start("tr")
	d.newLine()
	d.w.Start("td")
	d.newLine()
	d.w.Start("para")
	d.generateEnumValue(name, rel)
	d.w.End() // para
	d.newLine()
	d.w.End() // td
	d.newLine()

	if e, ok := enumOf(rel); ok {
		var value string
		if next := a.Next(); next != nil {
			value, _ = e.ItemValue(next.String())
		}
		d.w.Start("td")
		if value == "" {
			d.w.Text("?")
		} else {
			d.w.TextElement("code", value)
		}
		d.w.End() // td
		d.newLine()
	}
	return skip
}

func (d *document) sectionLeft(a *atom.Atom, rel *docmodel.Node) {
	level, _ := strconv.Atoi(a.String())
	d.currentSectionLevel = level + hOffset(rel)
	// Level 1 is the document itself.
	if d.currentSectionLevel <= 1 {
		return
	}

	// Sections are only ever started, never explicitly ended.
	// Starting one ends all sections at the same level or deeper.
	for len(d.sections) > 0 && d.sections[len(d.sections)-1].level >= d.currentSectionLevel {
		d.closeSection()
	}

	d.sections = append(d.sections, openSection{
		level: d.currentSectionLevel,
		depth: d.w.Depth(),
	})
	d.w.Start("section")
	d.w.Attr("xml:id", d.newID(canonicalTitle(atom.SectionHeading(a).PlainText())))
	d.newLine()
}

func (d *document) generateImage(a *atom.Atom, rel *docmodel.Node) {
	tag := "mediaobject"
	if a.Kind() == atom.InlineImage {
		tag = "inlinemediaobject"
	}
	d.w.Start(tag)
	d.newLine()

	var (
		fileName string
		ok       bool
	)
	if d.g.Images != nil {
		fileName, ok = d.g.Images.ResolveImage(rel, a.String())
	}
	if !ok {
		d.g.warn(d.location(), MissingSource, "Missing image: %v", a.String())
		d.w.Start("textobject")
		d.newLine()
		d.w.Start("para")
		d.w.TextElement("emphasis", "[Missing image "+a.String()+"]")
		d.w.End() // para
		d.newLine()
		d.w.End() // textobject
		d.newLine()
	} else {
		if next := a.Next(); next != nil && next.String() != "" {
			d.w.TextElement("alt", next.String())
		}
		d.w.Start("imageobject")
		d.newLine()
		d.w.Empty("imagedata")
		d.w.Attr("fileref", fileName)
		d.newLine()
		d.w.End() // imageobject
		d.newLine()

		owner := rel
		if owner == nil {
			owner = d.node
		}
		if owner != nil {
			d.g.addImage(owner, a.String(), fileName)
		}
	}

	d.w.End() // mediaobject or inlinemediaobject
	if a.Kind() == atom.Image {
		d.newLine()
	}
}

// _funcLeftParen matches the opening parenthesis of a function call
// like "QString::arg()".
var _funcLeftParen = regexp.MustCompile(`\S(\()`)

// generateLink writes the text of a link.
// Parentheses of function names are moved outside the link.
func (d *document) generateLink(s string) {
	if m := _funcLeftParen.FindStringSubmatchIndex(s); m != nil {
		k := m[2]
		d.w.Text(s[:k])
		d.endLink()
		d.w.Text(s[k:])
		return
	}
	d.w.Text(s)
}

// beginLink starts a link to the given target.
// An empty target only marks the link as open
// so that its text renders as plain text.
func (d *document) beginLink(link string, n, rel *docmodel.Node) {
	if link == "" {
		d.inLink = false
		return
	}
	d.w.Start("link")
	d.w.Attr("xlink:href", link)
	if n != nil && n.IsObsolete() && (rel == nil || n.Status != rel.Status) {
		d.w.Attr("role", "obsolete")
	}
	d.inLink = true
}

func (d *document) endLink() {
	if d.inLink {
		d.end() // link
	}
	d.inLink = false
}

// hasBrief reports whether briefs are rendered inline
// in the text of n.
// Pages and QML types show their brief in the header instead.
func hasBrief(n *docmodel.Node) bool {
	if n == nil {
		return true
	}
	return n.Kind() != docmodel.QmlTypeKind && !n.IsPageNode() && !n.IsCollection()
}

var _briefPropertyWords = map[string]struct{}{
	"the":     {},
	"a":       {},
	"an":      {},
	"whether": {},
	"which":   {},
}

// rewritePropertyBrief rewords briefs of properties and variables
// like "the width of the item" into
// "This property holds the width of the item".
func (d *document) rewritePropertyBrief(a *atom.Atom, rel *docmodel.Node) {
	if rel == nil {
		return
	}
	var what string
	switch rel.Kind() {
	case docmodel.PropertyKind:
		what = "property"
	case docmodel.VariableKind:
		what = "variable"
	default:
		return
	}

	next := a.Next()
	if next == nil || next.Kind() != atom.String {
		return
	}
	s := next.String()
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return
	}
	if _, ok := _briefPropertyWords[strings.ToLower(fields[0])]; !ok {
		return
	}

	r, size := utf8.DecodeRuneInString(s)
	d.rewrite = next
	d.rewriteText = "This " + what + " holds " + string(unicode.ToLower(r)) + s[size:]
}

// atomListValue returns the name of the value introduced by a ListTagLeft
// and the number of atoms after it that describe the value.
// A value may be followed by the version it was introduced in.
func atomListValue(a *atom.Atom) (string, int) {
	next := a.Next()
	if next == nil {
		return "", 0
	}
	name := next.String()

	since := next.Next()
	if since == nil || since.Kind() != atom.SinceTagLeft {
		return name, 1
	}
	version := since.Next()
	if version == nil || version.Kind() != atom.String {
		return name, 1
	}
	if end := version.Next(); end == nil || end.Kind() != atom.SinceTagRight {
		return name, 1
	}
	return name + " (since " + version.String() + ")", 4
}

// isThreeColumnEnumValueTable reports whether any item
// of the value list starting at a has a description.
func isThreeColumnEnumValueTable(a *atom.Atom) bool {
	for ; a != nil; a = a.Next() {
		if a.Kind() == atom.ListRight && a.String() == atom.ListValue {
			break
		}
		if a.Kind() == atom.ListItemLeft && !matchAhead(a, atom.ListItemRight) {
			return true
		}
	}
	return false
}

func matchAhead(a *atom.Atom, kind atom.Kind) bool {
	next := a.Next()
	return next != nil && next.Kind() == kind
}

// skipAtoms returns the number of atoms after a
// before the first atom of the given kind.
func skipAtoms(a *atom.Atom, kind atom.Kind) int {
	var n int
	for a = a.Next(); a != nil && a.Kind() != kind; a = a.Next() {
		n++
	}
	return n
}

func isEnum(n *docmodel.Node) bool {
	_, ok := enumOf(n)
	return ok
}

func enumOf(n *docmodel.Node) (*docmodel.Enum, bool) {
	if n == nil {
		return nil, false
	}
	e, ok := n.Variant.(*docmodel.Enum)
	return e, ok
}
