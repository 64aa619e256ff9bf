package docbook

import (
	"slices"
	"strings"

	"go.abhg.dev/docbookgen/internal/docmodel"
)

func (d *document) startRequisite(desc string) {
	d.w.Start("varlistentry")
	d.newLine()
	d.w.TextElement("term", desc)
	d.newLine()
	d.w.Start("listitem")
	d.newLine()
	d.w.Start("para")
}

func (d *document) endRequisite() {
	d.w.End() // para
	d.newLine()
	d.w.End() // listitem
	d.newLine()
	d.w.End() // varlistentry
	d.newLine()
}

func (d *document) requisite(desc, value string) {
	d.startRequisite(desc)
	d.w.Text(value)
	d.endRequisite()
}

// generateRequisites lists what's needed to use a class or namespace
// and where it sits in the class hierarchy.
func (d *document) generateRequisites(n *docmodel.Node) {
	d.w.Start("variablelist")
	d.newLine()

	for _, include := range includesOf(n) {
		d.requisite("Header", include)
	}
	if n.Since != "" {
		d.requisite("Since", d.formatSince(n))
	}
	if qtVar := d.qtVariable(n); qtVar != "" {
		d.requisite("qmake", "QT += "+qtVar)
	}

	if c, ok := n.Variant.(*docmodel.Class); ok {
		if qml := d.db.Node(c.QmlElement); qml != nil && !n.IsInternal() {
			d.startRequisite("Instantiated By")
			d.simpleLinkOrText(d.fullDocumentLocation(qml), qml.Name)
			d.endRequisite()
		}

		if len(c.Bases) > 0 {
			d.startRequisite("Inherits")
			d.generateBaseClasses(n, c.Bases)
			d.endRequisite()
		}

		if len(c.Derived) > 0 {
			d.startRequisite("Inherited By")
			d.generateSortedNames(n, c.Derived)
			d.endRequisite()
		}
	}

	d.w.End() // variablelist
	d.newLine()
}

func includesOf(n *docmodel.Node) []string {
	switch v := n.Variant.(type) {
	case *docmodel.Class:
		return v.Includes
	case *docmodel.Namespace:
		return v.Includes
	default:
		return nil
	}
}

// qtVariable returns the qmake variable of the module of a class
// or namespace.
func (d *document) qtVariable(n *docmodel.Node) string {
	switch n.Kind() {
	case docmodel.ClassKind, docmodel.NamespaceKind:
	default:
		return ""
	}
	if n.Module == "" {
		return ""
	}
	cn := d.db.Collection(n.Module, docmodel.Module)
	if cn == nil {
		return ""
	}
	return cn.Variant.(*docmodel.Collection).QtVariable
}

// generateBaseClasses writes links to the documented bases of a class,
// noting non-public inheritance.
func (d *document) generateBaseClasses(n *docmodel.Node, bases []docmodel.RelatedClass) {
	for i, rc := range bases {
		base := d.db.Node(rc.Node)
		if base == nil {
			continue
		}
		d.generateFullName(base, n)
		switch rc.Access {
		case docmodel.Protected:
			d.w.Text(" (protected)")
		case docmodel.Private:
			d.w.Text(" (private)")
		}
		d.w.Text(comma(i, len(bases)))
	}
}

// generateSortedNames writes links to the public documented classes
// among related, sorted by name.
func (d *document) generateSortedNames(n *docmodel.Node, related []docmodel.RelatedClass) {
	byName := make(map[string]*docmodel.Node)
	for _, rc := range related {
		rcn := d.db.Node(rc.Node)
		if rcn == nil || rcn.Access != docmodel.Public || rcn.IsInternal() || !rcn.HasDoc() {
			continue
		}
		byName[strings.ToLower(d.db.PlainFullName(rcn, n))] = rcn
	}
	d.generateNameList(n, byName)
}

// generateSortedQmlNames writes links to the given QML subtypes of base,
// sorted by name.
func (d *document) generateSortedQmlNames(base *docmodel.Node, subs []*docmodel.Node) {
	byName := make(map[string]*docmodel.Node, len(subs))
	for _, sub := range subs {
		byName[strings.ToLower(d.db.PlainFullName(sub, base))] = sub
	}
	d.generateNameList(base, byName)
}

func (d *document) generateNameList(rel *docmodel.Node, byName map[string]*docmodel.Node) {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	slices.Sort(names)

	for i, name := range names {
		d.generateFullName(byName[name], rel)
		d.w.Text(comma(i, len(names)))
	}
}

// qmlImportVersion returns the version to import the module
// of a QML type with.
func (d *document) qmlImportVersion(n *docmodel.Node, qt *docmodel.QmlType) string {
	if cn := d.db.Collection(qt.LogicalModule, docmodel.QmlModule); cn != nil {
		return cn.Variant.(*docmodel.Collection).LogicalModuleVersion
	}
	return d.db.LogicalModuleVersion(n)
}

// qmlBase returns the first base of a QML type that isn't internal.
func (d *document) qmlBase(qt *docmodel.QmlType) *docmodel.Node {
	seen := make(map[docmodel.ID]struct{})
	for base := d.db.Node(qt.Base); base != nil; {
		if _, ok := seen[base.ID]; ok {
			return nil
		}
		seen[base.ID] = struct{}{}

		if !base.IsInternal() {
			return base
		}
		bqt, ok := base.Variant.(*docmodel.QmlType)
		if !ok {
			return nil
		}
		base = d.db.Node(bqt.Base)
	}
	return nil
}

// generateQmlRequisites lists the import statement of a QML type
// and the types it's related to.
func (d *document) generateQmlRequisites(n *docmodel.Node) {
	qt, ok := n.Variant.(*docmodel.QmlType)
	if !ok {
		return
	}

	d.w.Start("variablelist")
	d.newLine()

	d.requisite("Import Statement", "import "+qt.LogicalModule+" "+d.qmlImportVersion(n, qt))
	if n.Since != "" {
		d.requisite("Since:", d.formatSince(n))
	}

	if subs := d.db.QmlSubtypes(n); len(subs) > 0 {
		d.startRequisite("Inherited By:")
		d.generateSortedQmlNames(n, subs)
		d.endRequisite()
	}

	if base := d.qmlBase(qt); base != nil {
		d.startRequisite("Inherits:")
		d.simpleLinkOrText(d.linkForNode(base, n), base.Name)
		d.endRequisite()
	}

	if cn := d.db.Node(qt.Class); cn != nil && !cn.IsInternal() {
		d.startRequisite("Instantiates:")
		d.simpleLinkOrText(d.fullDocumentLocation(cn), cn.Name)
		d.endRequisite()
	}

	d.w.End() // variablelist
	d.newLine()
}
