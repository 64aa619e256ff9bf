package docbook

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.abhg.dev/docbookgen/internal/docmodel"
)

// listType selects how entries of a compact list link to their pages.
type listType int

const (
	genericList  listType = iota // link to the entry
	obsoleteList                 // link to the page of the entry
)

// generateGeneratedList renders the list named by the selector
// of a GeneratedList atom.
func (d *document) generateGeneratedList(selector string, rel *docmodel.Node) {
	switch selector {
	case "annotatedclasses":
		d.generateAnnotatedList(rel, d.db.CppClasses(), selector)
		return
	case "attributions":
		d.generateAnnotatedList(rel, d.db.Attributions(), selector)
		return
	case "namespaces":
		d.generateAnnotatedList(rel, d.db.Namespaces(), selector)
		return
	case "annotatedexamples":
		d.generateAnnotatedLists(rel, d.db.Examples(), selector)
		return
	case "annotatedattributions":
		d.generateAnnotatedLists(rel, d.db.Attributions(), selector)
		return
	case "classes":
		d.generateCompactList(genericList, rel, d.db.CppClasses(), "", selector)
		return
	case "qmlbasictypes":
		d.generateCompactList(genericList, rel, d.db.QmlBasicTypes(), "", selector)
		return
	case "qmltypes":
		d.generateCompactList(genericList, rel, d.db.QmlTypes(), "", selector)
		return
	case "classhierarchy":
		d.generateClassHierarchy(rel, d.db.CppClasses())
		return
	case "functionindex":
		d.generateFunctionIndex(rel)
		return
	case "legalese":
		d.generateLegaleseList(rel)
		return
	case "overviews", "cpp-modules", "qml-modules", "related":
		d.generateList(rel, selector)
		return
	}

	switch {
	case strings.Contains(selector, "classes "):
		_, prefix, _ := strings.Cut(selector, "classes")
		d.generateCompactList(genericList, rel, d.db.CppClasses(), strings.TrimSpace(prefix), selector)

	case strings.Contains(selector, "bymodule"):
		_, moduleName, _ := strings.Cut(selector, "bymodule")
		typ := collectionTypeFromSelector(selector)
		cn := d.db.Collection(strings.TrimSpace(moduleName), typ)
		if cn == nil {
			break
		}
		members := d.db.Members(cn)
		if typ == docmodel.Module {
			members = slices.DeleteFunc(members, func(n *docmodel.Node) bool {
				return n.Kind() != docmodel.ClassKind
			})
		}
		if len(members) > 0 {
			d.generateAnnotatedList(rel, members, selector)
		}

	case strings.HasPrefix(selector, "examplefiles"), strings.HasPrefix(selector, "exampleimages"):
		// Example pages list their files on their own.
		if rel != nil && rel.Kind() == docmodel.ExampleKind {
			d.g.debugf("%v: file list %q is generated with the example", rel.Name, selector)
		}

	case strings.HasPrefix(selector, "obsolete"):
		typ := genericList
		if strings.HasSuffix(selector, "members") {
			typ = obsoleteList
		}
		var prefix string
		if strings.Contains(selector, "cpp") {
			prefix = "Q"
		}

		var nodes []*docmodel.Node
		switch selector {
		case "obsoleteclasses":
			nodes = d.db.ObsoleteClasses()
		case "obsoleteqmltypes":
			nodes = d.db.ObsoleteQmlTypes()
		case "obsoletecppmembers":
			nodes = d.db.ClassesWithObsoleteMembers()
		default:
			nodes = d.db.QmlTypesWithObsoleteMembers()
		}
		d.generateCompactList(typ, rel, nodes, prefix, selector)
	}
}

func collectionTypeFromSelector(selector string) docmodel.CollectionType {
	switch {
	case strings.HasPrefix(selector, "qml"):
		return docmodel.QmlModule
	case strings.HasPrefix(selector, "groups"):
		return docmodel.Group
	default:
		return docmodel.Module
	}
}

// generateList renders an annotated list of collections of a kind,
// or of the members of the collection rel.
func (d *document) generateList(rel *docmodel.Node, selector string) {
	var typ docmodel.CollectionType
	switch selector {
	case "overviews":
		typ = docmodel.Group
	case "cpp-modules":
		typ = docmodel.Module
	case "qml-modules":
		typ = docmodel.QmlModule
	default:
		if rel != nil && rel.IsCollection() {
			d.generateAnnotatedList(rel, d.db.Members(rel), selector)
		}
		return
	}
	d.generateAnnotatedList(rel, d.db.Collections(typ), selector)
}

// generateAnnotatedList lists nodes along with their briefs.
func (d *document) generateAnnotatedList(rel *docmodel.Node, nodes []*docmodel.Node, selector string) {
	if len(nodes) == 0 {
		return
	}

	d.w.Start("variablelist")
	d.w.Attr("role", selector)
	d.newLine()

	for _, n := range nodes {
		d.w.Start("varlistentry")
		d.newLine()
		d.w.Start("term")
		d.generateFullName(n, rel)
		d.w.End() // term
		d.newLine()

		d.w.Start("listitem")
		d.newLine()
		d.w.TextElement("para", n.Doc.Brief.PlainText())
		d.newLine()
		d.w.End() // listitem
		d.newLine()
		d.w.End() // varlistentry
		d.newLine()
	}

	d.w.End() // variablelist
	d.newLine()
}

// generateAnnotatedLists is like generateAnnotatedList,
// but places nodes from different modules in different sections.
func (d *document) generateAnnotatedLists(rel *docmodel.Node, nodes []*docmodel.Node, selector string) {
	var (
		modules []string
		byModule = make(map[string][]*docmodel.Node)
	)
	for _, n := range nodes {
		if _, ok := byModule[n.Module]; !ok {
			modules = append(modules, n.Module)
		}
		byModule[n.Module] = append(byModule[n.Module], n)
	}
	slices.Sort(modules)

	for _, name := range modules {
		if name != "" {
			d.startSection(d.sectionID(strings.ToLower(name)), name)
		}
		d.generateAnnotatedList(rel, byModule[name], selector)
		if name != "" {
			d.endSection()
		}
	}
}

// _numBuckets is the number of buckets of a compact list:
// one per digit, one per letter, and one for everything else.
const _numBuckets = 37

type compactEntry struct {
	node *docmodel.Node
	key  string
}

// generateCompactList renders nodes alphabetically in buckets
// keyed by the first letter of their name,
// ignoring the given common prefix.
func (d *document) generateCompactList(typ listType, rel *docmodel.Node, nodes []*docmodel.Node, commonPrefix string, selector string) {
	if len(nodes) == 0 {
		return
	}

	var (
		buckets [_numBuckets][]compactEntry
		names   [_numBuckets]string
	)
	for _, n := range nodes {
		name := lastPiece(d.db.PlainFullName(n, nil))
		if commonPrefix != "" && len(name) >= len(commonPrefix) &&
			strings.EqualFold(name[:len(commonPrefix)], commonPrefix) {
			name = name[len(commonPrefix):]
		}
		key := strings.ToLower(name)

		nr := _numBuckets - 1
		if key != "" {
			switch c := key[0]; {
			case c >= '0' && c <= '9':
				nr = int(c - '0')
			case c >= 'a' && c <= 'z':
				nr = 10 + int(c-'a')
			}
			if names[nr] == "" {
				r, _ := utf8.DecodeRuneInString(key)
				names[nr] = string(unicode.ToUpper(r))
			}
		}
		buckets[nr] = append(buckets[nr], compactEntry{node: n, key: key})
	}

	d.numTableRows = 0
	for nr, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		slices.SortStableFunc(bucket, func(a, b compactEntry) int {
			return cmp.Compare(a.key, b.key)
		})

		d.w.Start("variablelist")
		d.w.Attr("role", selector)
		d.newLine()
		d.w.Start("varlistentry")
		d.newLine()
		d.w.Start("term")
		d.w.Start("emphasis")
		d.w.Attr("role", "bold")
		d.w.Text(names[nr])
		d.w.End() // emphasis
		d.w.End() // term
		d.newLine()

		d.w.Start("listitem")
		d.newLine()
		for i, e := range bucket {
			d.w.Start("para")
			d.compactListEntry(typ, rel, bucket, i, e.node)
			d.w.End() // para
			d.newLine()
		}
		d.w.End() // listitem
		d.newLine()
		d.w.End() // varlistentry
		d.newLine()
		d.w.End() // variablelist
		d.newLine()
	}
}

func (d *document) compactListEntry(typ listType, rel *docmodel.Node, bucket []compactEntry, i int, n *docmodel.Node) {
	href := d.fullDocumentLocation(n)
	if typ == obsoleteList {
		href = d.documentPath(n)
	}

	var pieces []string
	if n.Kind() == docmodel.QmlTypeKind {
		name := n.Name
		// QML types with the same name from different modules
		// are told apart by their module.
		for j, other := range bucket {
			if j != i && other.node.Kind() == docmodel.QmlTypeKind && other.node.Name == name {
				name += ": " + n.Module
				break
			}
		}
		pieces = []string{name}
	} else {
		pieces = strings.Split(d.db.FullName(n, rel), "::")
	}

	d.w.Start("link")
	d.w.Attr("xlink:href", href)
	d.w.Attr("type", targetType(n))
	d.w.Text(pieces[len(pieces)-1])
	d.w.End() // link

	if len(pieces) > 1 {
		if parent := d.db.Parent(n); parent != nil {
			d.w.Text(" (")
			d.generateFullName(parent, rel)
			d.w.Text(")")
		}
	}
}

func lastPiece(name string) string {
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		return name[idx+2:]
	}
	return name
}

// generateClassHierarchy renders the inheritance trees of the given classes
// as nested lists, starting at the classes without a base.
func (d *document) generateClassHierarchy(rel *docmodel.Node, classes []*docmodel.Node) {
	var roots []*docmodel.Node
	for _, n := range classes {
		if c, ok := n.Variant.(*docmodel.Class); ok && len(c.Bases) == 0 {
			roots = append(roots, n)
		}
	}
	if len(roots) == 0 {
		return
	}

	d.classHierarchyLevel(rel, roots, make(map[docmodel.ID]struct{}))
}

// classHierarchyLevel renders one level of the class hierarchy.
// ancestors holds the classes of the enclosing levels.
func (d *document) classHierarchyLevel(rel *docmodel.Node, nodes []*docmodel.Node, ancestors map[docmodel.ID]struct{}) {
	slices.SortStableFunc(nodes, func(a, b *docmodel.Node) int {
		return cmp.Compare(a.Name, b.Name)
	})

	d.w.Start("itemizedlist")
	d.newLine()
	for _, n := range nodes {
		ancestors[n.ID] = struct{}{}

		d.w.Start("listitem")
		d.newLine()
		d.w.Start("para")
		d.generateFullName(n, rel)
		d.w.End() // para
		d.newLine()

		// Sublists go inside the item of their base.
		if derived := d.derivedClasses(n, ancestors); len(derived) > 0 {
			d.classHierarchyLevel(rel, derived, ancestors)
		}
		delete(ancestors, n.ID)

		d.w.End() // listitem
		d.newLine()
	}
	d.w.End() // itemizedlist
	d.newLine()
}

// derivedClasses returns the documented public classes derived from n,
// skipping those that would form a cycle.
func (d *document) derivedClasses(n *docmodel.Node, ancestors map[docmodel.ID]struct{}) []*docmodel.Node {
	c, ok := n.Variant.(*docmodel.Class)
	if !ok {
		return nil
	}

	var derived []*docmodel.Node
	for _, rc := range c.Derived {
		if rc.Node == docmodel.None || rc.Access == docmodel.Private {
			continue
		}
		dn := d.db.Node(rc.Node)
		if dn == nil || dn.IsInternal() || !dn.HasDoc() {
			continue
		}
		if _, seen := ancestors[dn.ID]; seen {
			continue
		}
		derived = append(derived, dn)
	}
	return derived
}

// generateFunctionIndex lists all member functions by name
// along with the classes that declare them.
func (d *document) generateFunctionIndex(rel *docmodel.Node) {
	d.w.Start("simplelist")
	d.w.Attr("role", "functionIndex")
	d.newLine()
	for c := 'a'; c <= 'z'; c++ {
		d.w.Start("member")
		d.w.Attr("xlink:href", "#"+string(c))
		d.w.Text(strings.ToUpper(string(c)))
		d.w.End() // member
		d.newLine()
	}
	d.w.End() // simplelist
	d.newLine()

	nextLetter := byte('a')

	d.w.Start("itemizedlist")
	d.newLine()
	for _, entry := range d.db.FunctionIndex() {
		d.w.Start("listitem")
		d.newLine()
		d.w.Start("para")
		d.w.Text(entry.Name + ": ")

		if entry.Name != "" {
			for cur := entry.Name[0]; cur >= 'a' && cur <= 'z' && cur >= nextLetter; nextLetter++ {
				d.writeAnchor(string(nextLetter))
			}
		}

		for _, fn := range entry.Functions {
			if parent := d.db.Parent(fn); parent != nil {
				d.w.Text(" ")
				d.generateFullName(parent, rel)
			}
		}

		d.w.End() // para
		d.newLine()
		d.w.End() // listitem
		d.newLine()
	}
	d.w.End() // itemizedlist
	d.newLine()
}

// generateLegaleseList renders each license text
// followed by the entities it applies to.
func (d *document) generateLegaleseList(rel *docmodel.Node) {
	for _, l := range d.db.LegaleseTexts() {
		d.generateText(l.Text, rel)

		d.w.Start("itemizedlist")
		d.newLine()
		for _, n := range l.Nodes {
			d.w.Start("listitem")
			d.newLine()
			d.w.Start("para")
			d.generateFullName(n, rel)
			d.w.End() // para
			d.newLine()
			d.w.End() // listitem
			d.newLine()
		}
		d.w.End() // itemizedlist
		d.newLine()
	}
}
