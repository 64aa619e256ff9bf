package docbook

import (
	"slices"
	"strings"

	"go.abhg.dev/docbookgen/internal/docmodel"
)

// memberRef returns the xml:id of the documentation of a member.
func (d *document) memberRef(n *docmodel.Node) string {
	return d.registerRef(d.db.Anchor(n))
}

// generateDetailedMember writes a section documenting a member
// of a C++ class, namespace, or collection.
func (d *document) generateDetailedMember(n, rel *docmodel.Node) {
	d.w.Start("section")

	var synopses []*docmodel.Node
	switch v := n.Variant.(type) {
	case *docmodel.SharedComment:
		first := true
		for _, id := range v.Collective {
			m := d.db.Node(id)
			if m == nil || m.Function() == nil {
				continue
			}
			synopses = append(synopses, m)

			if first {
				d.w.Attr("xml:id", d.memberRef(m))
				d.newLine()
				d.w.Start("title")
				d.generateSynopsis(m, rel, detailsStyle)
				d.w.End() // title
				d.newLine()
				first = false
				continue
			}

			d.w.Start("bridgehead")
			d.w.Attr("renderas", "sect2")
			d.w.Attr("xml:id", d.memberRef(m))
			d.generateSynopsis(m, rel, detailsStyle)
			d.w.End() // bridgehead
			d.newLine()
		}
		if first {
			d.newLine()
			d.w.TextElement("title", n.Name)
			d.newLine()
		}

	case *docmodel.Enum:
		d.w.Attr("xml:id", d.memberRef(n))
		d.newLine()
		d.w.Start("title")
		d.generateSynopsis(n, rel, detailsStyle)
		d.w.End() // title
		d.newLine()
		if flags := d.db.Node(v.Flags); flags != nil {
			d.w.Start("bridgehead")
			d.generateSynopsis(flags, rel, detailsStyle)
			d.w.End() // bridgehead
			d.newLine()
		}
		synopses = append(synopses, n)

	default:
		d.w.Attr("xml:id", d.memberRef(n))
		d.newLine()
		d.w.Start("title")
		d.generateSynopsis(n, rel, detailsStyle)
		d.w.End() // title
		d.newLine()
		synopses = append(synopses, n)
	}

	for _, m := range synopses {
		d.generateDocBookSynopsis(m)
	}

	d.generateStatus(n)
	d.generateBody(n)
	d.generateOverloadedSignal(n)
	d.generateThreadSafeness(n)
	d.generateSince(n)

	switch v := n.Variant.(type) {
	case *docmodel.Property:
		accessors := d.nodes(slices.Concat(v.Getters, v.Setters, v.Resetters))
		if len(accessors) > 0 {
			d.boldPara("Access functions:")
			d.generateSectionList(accessors, n, accessorsStyle)
		}
		if notifiers := d.nodes(v.Notifiers); len(notifiers) > 0 {
			d.boldPara("Notifier signal:")
			d.generateSectionList(notifiers, n, accessorsStyle)
		}

	case *docmodel.Function:
		if v.PrivateSignal {
			d.generatePrivateSignalNote()
		}
		if v.Invokable {
			d.generateInvokableNote(n)
		}
		d.generateAssociatedPropertyNotes(v)

	case *docmodel.Enum:
		if flags := d.db.Node(v.Flags); flags != nil {
			d.generateFlagsNote(n, flags)
		}
	}

	d.generateAlsoList(n)
	d.endSection()
}

func (d *document) nodes(ids []docmodel.ID) []*docmodel.Node {
	nodes := make([]*docmodel.Node, 0, len(ids))
	for _, id := range ids {
		if n := d.db.Node(id); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (d *document) boldPara(text string) {
	d.w.Start("para")
	d.newLine()
	d.w.Start("emphasis")
	d.w.Attr("role", "bold")
	d.w.Text(text)
	d.w.End() // emphasis
	d.newLine()
	d.w.End() // para
	d.newLine()
}

// generateFlagsNote explains the QFlags typedef of an enum.
func (d *document) generateFlagsNote(enum, flags *docmodel.Node) {
	var qflags string
	if cn := d.db.FindClass("QFlags"); cn != nil {
		qflags = d.linkForNode(cn, nil)
	}

	d.w.Start("para")
	d.w.Text("The " + flags.Name + " type is a typedef for ")
	d.simpleLinkOrText(qflags, "QFlags")
	d.w.Text("<" + enum.Name + ">. ")
	d.w.Text("It stores an OR combination of " + enum.Name + " values.")
	d.w.End() // para
	d.newLine()
}

// generateSectionList lists the signatures of the given members.
func (d *document) generateSectionList(members []*docmodel.Node, rel *docmodel.Node, style synopsisStyle) {
	members = slices.DeleteFunc(slices.Clone(members), (*docmodel.Node).IsPrivate)
	if len(members) == 0 {
		return
	}

	var hasPrivateSignals, hasInvokables bool
	d.w.Start("itemizedlist")
	d.newLine()
	for _, m := range members {
		d.w.Start("listitem")
		d.newLine()
		d.w.Start("para")
		d.generateSynopsis(m, rel, style)
		d.w.End() // para
		d.newLine()
		d.w.End() // listitem
		d.newLine()

		if fn := m.Function(); fn != nil {
			switch {
			case fn.PrivateSignal:
				hasPrivateSignals = true
			case fn.Invokable:
				hasInvokables = true
			}
		}
	}
	d.w.End() // itemizedlist
	d.newLine()

	if hasPrivateSignals {
		d.generatePrivateSignalNote()
	}
	if hasInvokables {
		d.generateInvokableNote(rel)
	}
}

// generateOverloadedSignal shows how to connect to an overloaded signal
// with the function pointer syntax.
func (d *document) generateOverloadedSignal(n *docmodel.Node) {
	fn := n.Function()
	if fn == nil || fn.Meta != docmodel.Signal || fn.SignalHelper == "" {
		return
	}

	d.w.Start("note")
	d.newLine()
	d.w.Start("para")
	d.w.Text("Signal ")
	d.w.TextElement("emphasis", n.Name)
	d.w.Text(" is overloaded in this class. " +
		"To connect to this signal by using the function pointer syntax, " +
		"Qt provides a convenient helper for obtaining the function pointer " +
		"as shown in this example:")
	d.w.TextElement("code", fn.SignalHelper)
	d.w.End() // para
	d.newLine()
	d.w.End() // note
	d.newLine()
}

func (d *document) generatePrivateSignalNote() {
	d.w.Start("note")
	d.newLine()
	d.w.TextElement("para", "This is a private signal. "+
		"It can be used in signal connections but cannot be emitted by the user.")
	d.newLine()
	d.w.End() // note
	d.newLine()
}

func (d *document) generateInvokableNote(rel *docmodel.Node) {
	href, _ := d.getAutoLink("Q_INVOKABLE", rel)

	d.w.Start("note")
	d.newLine()
	d.w.Start("para")
	d.w.Text("This function can be invoked via the meta-object system and from QML. See ")
	d.simpleLinkOrText(href, "Q_INVOKABLE")
	d.w.Text(".")
	d.w.End() // para
	d.newLine()
	d.w.End() // note
	d.newLine()
}

// generateAssociatedPropertyNotes explains the role of a function
// in each of the properties it's an accessor of.
func (d *document) generateAssociatedPropertyNotes(fn *docmodel.Function) {
	props := d.nodes(fn.AssociatedProperties)
	if len(props) == 0 {
		return
	}
	slices.SortStableFunc(props, func(a, b *docmodel.Node) int {
		return strings.Compare(a.Name, b.Name)
	})

	d.w.Start("note")
	d.newLine()
	d.w.Start("para")
	for _, pn := range props {
		var role string
		if p, ok := pn.Variant.(*docmodel.Property); ok {
			role = accessorRole(p, fn, d.db)
		}
		d.w.Text(role + "for property ")
		d.simpleLinkOrText(d.linkForNode(pn, nil), pn.Name)
		d.w.Text(". ")
	}
	d.w.End() // para
	d.newLine()
	d.w.End() // note
	d.newLine()
}

// accessorRole describes how fn accesses the property p.
func accessorRole(p *docmodel.Property, fn *docmodel.Function, db Database) string {
	is := func(ids []docmodel.ID) bool {
		return slices.ContainsFunc(ids, func(id docmodel.ID) bool {
			n := db.Node(id)
			return n != nil && n.Function() == fn
		})
	}

	switch {
	case is(p.Getters):
		return "Getter function "
	case is(p.Setters):
		return "Setter function "
	case is(p.Resetters):
		return "Resetter function "
	case is(p.Notifiers):
		return "Notifier signal "
	default:
		return ""
	}
}

// qmlPropertyTitle is the title of the documentation of a QML property.
func (d *document) qmlPropertyTitle(n *docmodel.Node, qp *docmodel.QmlProperty) string {
	var title strings.Builder
	if qp.ReadOnly {
		title.WriteString("[read-only] ")
	}
	if qp.Default {
		title.WriteString("[default] ")
	}
	if qp.Attached {
		if parent := d.db.Parent(n); parent != nil {
			title.WriteString(parent.Name + ".")
		}
	}
	title.WriteString(n.Name + " : " + qp.DataType)
	return title.String()
}

// generateDetailedQmlMember writes a section documenting a member
// of a QML type.
func (d *document) generateDetailedQmlMember(n, rel *docmodel.Node) {
	switch v := n.Variant.(type) {
	case *docmodel.SharedComment:
		if v.PropertyGroup {
			d.startSection(d.memberRef(n), n.Name+" group")
			for _, m := range d.nodes(v.Collective) {
				qp, ok := m.Variant.(*docmodel.QmlProperty)
				if !ok {
					continue
				}
				d.w.Start("bridgehead")
				d.w.Attr("renderas", "sect2")
				d.w.Attr("xml:id", d.memberRef(m))
				d.w.Text(d.qmlPropertyTitle(m, qp))
				d.w.End() // bridgehead
				d.newLine()
				d.generateDocBookSynopsis(m)
			}
			break
		}

		var i int
		for _, m := range d.nodes(v.Collective) {
			qp, isProp := m.Variant.(*docmodel.QmlProperty)
			if !isProp && !(m.Function() != nil && m.IsQmlNode()) {
				continue
			}

			if i == 0 {
				d.w.Start("section")
				d.w.Attr("xml:id", d.memberRef(m))
				d.newLine()
				d.w.Start("title")
			} else {
				d.w.Start("bridgehead")
				d.w.Attr("renderas", "sect2")
				d.w.Attr("xml:id", d.memberRef(m))
			}
			if isProp {
				d.w.Text(d.qmlPropertyTitle(m, qp))
			} else {
				d.generateSynopsis(m, rel, detailsStyle)
			}
			d.w.End() // title or bridgehead
			d.newLine()

			d.generateDocBookSynopsis(m)
			i++
		}
		if i == 0 {
			// Nothing to document.
			return
		}

	case *docmodel.QmlProperty:
		d.startSection(d.memberRef(n), d.qmlPropertyTitle(n, v))
		d.generateDocBookSynopsis(n)

	default:
		d.startSectionBegin(d.memberRef(n))
		d.generateSynopsis(n, rel, detailsStyle)
		d.startSectionEnd()
		d.generateDocBookSynopsis(n)
	}

	d.generateStatus(n)
	d.generateBody(n)
	d.generateThreadSafeness(n)
	d.generateSince(n)
	d.generateAlsoList(n)
	d.endSection()
}
