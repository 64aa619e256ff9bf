package docbook

import (
	"strconv"
	"strings"

	"go.abhg.dev/docbookgen/internal/atom"
	"go.abhg.dev/docbookgen/internal/docmodel"
)

// generateHeader writes the info element at the top of a page:
// the title, project metadata, navigation links, and an abstract.
func (d *document) generateHeader(title, subtitle string, n *docmodel.Node) {
	d.w.Start("info")
	d.newLine()
	d.w.TextElement("title", title)
	d.newLine()
	if subtitle != "" {
		d.w.TextElement("subtitle", subtitle)
		d.newLine()
	}

	cfg := d.g.Config
	if cfg.Project != "" {
		d.w.TextElement("productname", cfg.Project)
		d.newLine()
	}
	if cfg.BuildVersion != "" {
		d.w.TextElement("edition", cfg.BuildVersion)
		d.newLine()
	}
	if cfg.Description != "" {
		d.w.TextElement("titleabbrev", cfg.Description)
		d.newLine()
	}

	if n != nil {
		d.navLink("prev", n.Nav.Prev, n)
		d.navLink("next", n.Nav.Next, n)
		d.navLink("start", n.Nav.Start, n)
		d.generateAbstract(n)
	}

	d.w.End() // info
	d.newLine()
}

// navLink writes an extendedlink to the page before or after n,
// or to the start of the series n is part of.
func (d *document) navLink(role string, nav *docmodel.NavLink, n *docmodel.Node) {
	if nav == nil {
		return
	}

	to, label := nav.Target, nav.Text
	if target := d.db.FindNodeForTarget(nav.Target, n); target != nil && target != n {
		to = d.documentPath(target)
		label = ""
		if target.IsPageNode() {
			label = d.db.FullTitle(target)
		}
	}
	if nav.Target != nav.Text || label == "" {
		label = nav.Text
	}

	d.w.Start("extendedlink")
	d.w.Empty("link")
	d.w.Attr("xlink:to", to)
	d.w.Attr("xlink:title", role)
	d.w.Attr("xlink:label", label)
	d.w.End() // extendedlink
	d.newLine()
}

// generateAbstract writes the abstract of a page.
// DocBook does not allow empty abstracts
// so pages with nothing to say get the project description.
func (d *document) generateAbstract(n *docmodel.Node) {
	d.w.Start("abstract")
	d.newLine()

	var generated bool
	if brief := d.headerBrief(n); !brief.IsEmpty() {
		d.w.Start("para")
		d.generateText(withPeriod(brief), n)
		d.w.End() // para
		d.newLine()
		generated = true
	}

	// All three are always generated.
	if d.generateStatus(n) {
		generated = true
	}
	if d.generateSince(n) {
		generated = true
	}
	if d.generateThreadSafeness(n) {
		generated = true
	}

	if !generated {
		d.w.TextElement("para", d.g.Config.Description+".")
		d.newLine()
	}

	d.w.End() // abstract
	d.newLine()
}

// headerBrief returns the brief shown in the abstract of n.
//
// Namespaces that are only partially declared in this module
// point to the module that holds their documentation.
func (d *document) headerBrief(n *docmodel.Node) atom.Text {
	ns, ok := n.Variant.(*docmodel.Namespace)
	if !ok || n.HasDoc() {
		return n.Doc.Brief
	}
	full := d.db.Node(ns.DocNode)
	if full == nil {
		return n.Doc.Brief
	}

	var brief atom.Text
	brief.AppendString("The " + n.Name +
		" namespace includes the following elements from module " + n.Module +
		". The full namespace is documented in module " + full.Module)
	brief.Append(atom.LinkNode, strconv.Itoa(int(full.ID)))
	brief.Append(atom.FormattingLeft, atom.FormattingLink)
	brief.AppendString(" here.")
	brief.Append(atom.FormattingRight, atom.FormattingLink)
	return brief
}

// withPeriod returns a copy of the text that ends with a period.
func withPeriod(text atom.Text) atom.Text {
	if strings.HasSuffix(text.PlainText(), ".") {
		return text
	}
	text = text.Clone()
	text.AppendString(".")
	return text
}

// generateBrief writes the brief of n as a paragraph.
func (d *document) generateBrief(n *docmodel.Node) {
	if n.Doc.Brief.IsEmpty() {
		return
	}
	d.w.Start("para")
	d.generateText(withPeriod(n.Doc.Brief), n)
	d.w.End() // para
	d.newLine()
}

// generateSince reports the version that n was introduced in.
func (d *document) generateSince(n *docmodel.Node) bool {
	if n.Since == "" {
		return false
	}

	d.w.Start("para")
	d.w.Text("This " + typeString(n) + " was introduced")
	if n.Kind() == docmodel.EnumKind {
		d.w.Text(" or modified")
	}
	d.w.Text(" in " + d.formatSince(n) + ".")
	d.w.End() // para
	d.newLine()
	return true
}

// generateStatus warns about preliminary, deprecated, and obsolete entities.
func (d *document) generateStatus(n *docmodel.Node) bool {
	switch n.Status {
	case docmodel.Preliminary:
		d.w.Start("para")
		d.w.Start("emphasis")
		d.w.Attr("role", "bold")
		d.w.Text("This " + typeString(n) + " is under development and is subject to change.")
		d.w.End() // emphasis
		d.w.End() // para
		d.newLine()
		return true

	case docmodel.Deprecated, docmodel.Obsolete:
		d.w.Start("para")
		bold := n.IsAggregate()
		if bold {
			d.w.Start("emphasis")
			d.w.Attr("role", "bold")
		}
		d.w.Text("This " + typeString(n) + " is " + n.Status.String() + ".")
		if bold {
			d.w.End() // emphasis
		}
		if n.Status == docmodel.Obsolete {
			d.w.Text(" It is provided to keep old source code working. " +
				"We strongly advise against using it in new code.")
		}
		d.w.End() // para
		d.newLine()
		return true

	default:
		return false
	}
}

// threadSafety returns the thread-safety level to report for n.
// Pages report their effective level.
// Members only report a level that differs from their parent's.
func (d *document) threadSafety(n *docmodel.Node) docmodel.ThreadSafety {
	if n.IsPageNode() {
		return d.db.ThreadSafety(n)
	}
	if parent := d.db.Parent(n); parent != nil && n.ThreadSafety == d.db.ThreadSafety(parent) {
		return docmodel.UnspecifiedThreadSafety
	}
	return n.ThreadSafety
}

// generateThreadSafeness explains how reentrant or thread-safe n is.
func (d *document) generateThreadSafeness(n *docmodel.Node) bool {
	ts := d.threadSafety(n)

	reentrant, _ := d.getAutoLink("reentrant", n)
	threadSafe, _ := d.getAutoLink("thread-safe", n)
	levelLink := func(ts docmodel.ThreadSafety) {
		if ts == docmodel.ThreadSafe {
			d.simpleLinkOrText(threadSafe, "thread-safe")
		} else {
			d.simpleLinkOrText(reentrant, "reentrant")
		}
	}

	switch ts {
	case docmodel.NonReentrant:
		d.w.Start("warning")
		d.newLine()
		d.w.Start("para")
		d.w.Text("This " + typeString(n) + " is not ")
		d.simpleLinkOrText(reentrant, "reentrant")
		d.w.Text(".")
		d.w.End() // para
		d.newLine()
		d.w.End() // warning
		d.newLine()
		return true

	case docmodel.Reentrant, docmodel.ThreadSafe:
		// Handled below.

	default:
		return false
	}

	d.w.Start("note")
	d.newLine()
	d.w.Start("para")

	if !n.IsAggregate() {
		d.w.Text("This " + typeString(n) + " is ")
		levelLink(ts)
		d.w.Text(".")
		d.w.End() // para
		d.newLine()
		d.w.End() // note
		d.newLine()
		return true
	}

	d.w.Text("All functions in this " + typeString(n) + " are ")
	levelLink(ts)

	ex := d.threadSafetyExceptions(n, ts)
	if !ex.any || (ts == docmodel.Reentrant && len(ex.threadSafe) > 0) {
		d.w.Text(".")
		d.w.End() // para
		d.newLine()
		d.w.End() // note
		d.newLine()
		return true
	}

	d.w.Text(" with the following exceptions:")
	d.w.End() // para
	d.newLine()

	exceptionList := func(prefix string, level docmodel.ThreadSafety, nodes []*docmodel.Node) {
		if len(nodes) == 0 {
			return
		}
		d.w.Start("para")
		d.w.Text(prefix)
		levelLink(level)
		d.w.Text(":")
		d.w.End() // para
		d.newLine()
		d.generateSignatureList(nodes)
	}

	if ts == docmodel.Reentrant {
		exceptionList("These functions are not ", docmodel.Reentrant, ex.nonReentrant)
		exceptionList("These functions are also ", docmodel.ThreadSafe, ex.threadSafe)
	} else {
		exceptionList("These functions are only ", docmodel.Reentrant, ex.reentrant)
		exceptionList("These functions are not ", docmodel.Reentrant, ex.nonReentrant)
	}

	d.w.End() // note
	d.newLine()
	return true
}

type threadSafetyExceptions struct {
	reentrant, threadSafe, nonReentrant []*docmodel.Node

	// any is set if a member is less safe or safer than the aggregate.
	any bool
}

// threadSafetyExceptions collects the members of n
// whose thread safety differs from ts.
func (d *document) threadSafetyExceptions(n *docmodel.Node, ts docmodel.ThreadSafety) threadSafetyExceptions {
	var ex threadSafetyExceptions
	for _, c := range d.db.Children(n) {
		if c.IsObsolete() {
			continue
		}
		switch c.ThreadSafety {
		case docmodel.Reentrant:
			ex.reentrant = append(ex.reentrant, c)
			if ts == docmodel.ThreadSafe {
				ex.any = true
			}
		case docmodel.ThreadSafe:
			ex.threadSafe = append(ex.threadSafe, c)
			if ts == docmodel.Reentrant {
				ex.any = true
			}
		case docmodel.NonReentrant:
			ex.nonReentrant = append(ex.nonReentrant, c)
			ex.any = true
		}
	}
	return ex
}

// generateSignatureList lists links to the given functions
// named by their signatures.
func (d *document) generateSignatureList(nodes []*docmodel.Node) {
	d.w.Start("itemizedlist")
	d.newLine()
	for _, n := range nodes {
		d.w.Start("listitem")
		d.newLine()
		d.w.Start("para")
		d.simpleLink(d.fullDocumentLocation(n), d.db.Signature(n, false, true))
		d.w.End() // para
		d.newLine()
		d.w.End() // listitem
		d.newLine()
	}
	d.w.End() // itemizedlist
	d.newLine()
}

// simpleLinkOrText writes a link if there's somewhere to link to,
// and just the text otherwise.
func (d *document) simpleLinkOrText(href, text string) {
	if href == "" {
		d.w.Text(text)
		return
	}
	d.simpleLink(href, text)
}
