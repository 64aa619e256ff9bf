// Package docmodel holds the semantic model of the documentation:
// an arena of documented entities addressed by stable IDs,
// and the queries that generators run against it.
//
// Build a tree with [NewTree] and [Tree.Add],
// then call [Tree.Finish] before handing it to a generator.
package docmodel

import (
	"cmp"
	"slices"
	"strings"

	"go.abhg.dev/docbookgen/internal/atom"
)

// Tree is the arena holding all nodes of a documentation set.
type Tree struct {
	// OutputSubdirs places pages in one subdirectory per module.
	OutputSubdirs bool

	// FileExtension is the extension of generated files,
	// without the leading dot. Defaults to "xml".
	FileExtension string

	nodes []*Node // nodes[0] is unused

	// Built by Finish.
	byName    map[string][]ID
	byTitle   map[string]ID
	byTarget  map[string]ID
	subtypes  map[ID][]ID
	finished  bool
	legaleses []Legalese
}

// NewTree builds an empty tree with a single root namespace.
func NewTree() *Tree {
	t := &Tree{nodes: []*Node{nil}}
	t.nodes = append(t.nodes, &Node{ID: 1, Variant: &Namespace{}})
	return t
}

// Root returns the unnamed global namespace.
func (t *Tree) Root() *Node { return t.nodes[1] }

// Add inserts a node under the given parent and returns its ID.
// A parent of None places the node under the root.
func (t *Tree) Add(parent ID, n *Node) ID {
	if parent == None {
		parent = t.Root().ID
	}

	n.ID = ID(len(t.nodes))
	n.Parent = parent
	t.nodes = append(t.nodes, n)

	p := t.nodes[parent]
	p.Children = append(p.Children, n.ID)
	t.finished = false
	return n.ID
}

// Len reports the number of nodes in the tree, including the root.
func (t *Tree) Len() int { return len(t.nodes) - 1 }

// Node returns the node with the given ID,
// or nil if there is no such node.
func (t *Tree) Node(id ID) *Node {
	if id <= None || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Parent returns the parent of n, or nil for the root.
func (t *Tree) Parent(n *Node) *Node {
	if n == nil {
		return nil
	}
	return t.Node(n.Parent)
}

// Children returns the children of n in declaration order.
func (t *Tree) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, id := range n.Children {
		if c := t.Node(id); c != nil {
			children = append(children, c)
		}
	}
	return children
}

// Nodes returns all nodes except the root, in insertion order.
func (t *Tree) Nodes() []*Node {
	return t.nodes[2:]
}

// Finish computes derived relationships and indexes.
// It must be called after the last node is added.
func (t *Tree) Finish() {
	t.byName = make(map[string][]ID)
	t.byTitle = make(map[string]ID)
	t.byTarget = make(map[string]ID)
	t.subtypes = make(map[ID][]ID)
	t.legaleses = nil

	for _, n := range t.Nodes() {
		if c, ok := n.Variant.(*Class); ok {
			c.Derived = nil
		}
	}

	legalese := make(map[string]int)
	for _, n := range t.Nodes() {
		t.byName[n.Name] = append(t.byName[n.Name], n.ID)
		if full := t.PlainFullName(n, nil); full != n.Name {
			t.byName[full] = append(t.byName[full], n.ID)
		}
		if fn := n.Function(); fn != nil {
			full := strings.TrimSuffix(t.PlainFullName(n, nil), "()")
			t.byName[full] = append(t.byName[full], n.ID)
		}
		if title := t.Title(n); title != n.Name {
			if _, ok := t.byTitle[title]; !ok {
				t.byTitle[title] = n.ID
			}
		}
		for _, target := range n.Targets {
			if _, ok := t.byTarget[target]; !ok {
				t.byTarget[target] = n.ID
			}
		}

		switch v := n.Variant.(type) {
		case *Class:
			for _, base := range v.Bases {
				b := t.Node(base.Node)
				if b == nil {
					continue
				}
				if bc, ok := b.Variant.(*Class); ok {
					bc.Derived = append(bc.Derived, RelatedClass{Node: n.ID, Access: base.Access})
				}
			}
		case *QmlType:
			if v.Base != None {
				t.subtypes[v.Base] = append(t.subtypes[v.Base], n.ID)
			}
		}

		if !n.Doc.Legalese.IsEmpty() {
			key := n.Doc.Legalese.PlainText()
			idx, ok := legalese[key]
			if !ok {
				idx = len(t.legaleses)
				legalese[key] = idx
				t.legaleses = append(t.legaleses, Legalese{Text: n.Doc.Legalese})
			}
			t.legaleses[idx].Nodes = append(t.legaleses[idx].Nodes, n)
		}
	}

	slices.SortStableFunc(t.legaleses, func(a, b Legalese) int {
		return strings.Compare(a.Text.PlainText(), b.Text.PlainText())
	})
	t.finished = true
}

func (t *Tree) ensureFinished() {
	if !t.finished {
		t.Finish()
	}
}

// sortByFullName sorts nodes by their qualified names.
func (t *Tree) sortByFullName(nodes []*Node) []*Node {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return cmp.Compare(t.PlainFullName(a, nil), t.PlainFullName(b, nil))
	})
	return nodes
}

func (t *Tree) collect(keep func(*Node) bool) []*Node {
	var nodes []*Node
	for _, n := range t.Nodes() {
		if keep(n) {
			nodes = append(nodes, n)
		}
	}
	return t.sortByFullName(nodes)
}

func isListed(n *Node) bool {
	return !n.IsPrivate() && !n.IsInternal() && n.URL == ""
}

func isKind[V Variant](n *Node) bool {
	_, ok := n.Variant.(V)
	return ok
}

// CppClasses returns all public, non-obsolete classes,
// sorted by qualified name.
func (t *Tree) CppClasses() []*Node {
	return t.collect(func(n *Node) bool {
		return isKind[*Class](n) && isListed(n) && !n.IsObsolete()
	})
}

// ObsoleteClasses returns all public obsolete classes.
func (t *Tree) ObsoleteClasses() []*Node {
	return t.collect(func(n *Node) bool {
		return isKind[*Class](n) && isListed(n) && n.IsObsolete()
	})
}

// ClassesWithObsoleteMembers returns all classes
// that have at least one obsolete public member.
func (t *Tree) ClassesWithObsoleteMembers() []*Node {
	return t.collect(func(n *Node) bool {
		return isKind[*Class](n) && isListed(n) && t.hasObsoleteMembers(n)
	})
}

// Namespaces returns all documented public namespaces.
func (t *Tree) Namespaces() []*Node {
	return t.collect(func(n *Node) bool {
		return isKind[*Namespace](n) && n.ID != t.Root().ID && isListed(n) && n.HasDoc()
	})
}

// QmlTypes returns all public, non-obsolete QML types.
func (t *Tree) QmlTypes() []*Node {
	return t.collect(func(n *Node) bool {
		return isKind[*QmlType](n) && isListed(n) && !n.IsObsolete()
	})
}

// ObsoleteQmlTypes returns all obsolete QML types.
func (t *Tree) ObsoleteQmlTypes() []*Node {
	return t.collect(func(n *Node) bool {
		return isKind[*QmlType](n) && isListed(n) && n.IsObsolete()
	})
}

// QmlTypesWithObsoleteMembers returns all QML types
// that have at least one obsolete member.
func (t *Tree) QmlTypesWithObsoleteMembers() []*Node {
	return t.collect(func(n *Node) bool {
		return isKind[*QmlType](n) && isListed(n) && t.hasObsoleteMembers(n)
	})
}

// QmlBasicTypes returns all public QML basic types.
func (t *Tree) QmlBasicTypes() []*Node {
	return t.collect(func(n *Node) bool {
		return isKind[*QmlBasicType](n) && isListed(n)
	})
}

// Examples returns all examples sorted by title.
func (t *Tree) Examples() []*Node {
	nodes := t.collect(func(n *Node) bool {
		return isKind[*Example](n) && isListed(n)
	})
	return t.sortByTitle(nodes)
}

// Attributions returns all attribution pages sorted by title.
func (t *Tree) Attributions() []*Node {
	nodes := t.collect(func(n *Node) bool {
		p, ok := n.Variant.(*Page)
		return ok && p.Attribution && isListed(n)
	})
	return t.sortByTitle(nodes)
}

func (t *Tree) sortByTitle(nodes []*Node) []*Node {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return cmp.Compare(t.Title(a), t.Title(b))
	})
	return nodes
}

func (t *Tree) hasObsoleteMembers(n *Node) bool {
	for _, c := range t.Children(n) {
		if c.IsObsolete() && !c.IsPrivate() {
			return true
		}
	}
	return false
}

// Collection returns the collection with the given name and type,
// or nil if there isn't one.
func (t *Tree) Collection(name string, typ CollectionType) *Node {
	for _, n := range t.Nodes() {
		if c, ok := n.Variant.(*Collection); ok && c.Type == typ && n.Name == name {
			return n
		}
	}
	return nil
}

// Collections returns all collections of the given type sorted by name.
func (t *Tree) Collections(typ CollectionType) []*Node {
	var nodes []*Node
	for _, n := range t.Nodes() {
		if c, ok := n.Variant.(*Collection); ok && c.Type == typ {
			nodes = append(nodes, n)
		}
	}
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return nodes
}

// Members returns the members of a collection in declaration order,
// or nil if n isn't a collection.
func (t *Tree) Members(n *Node) []*Node {
	c, ok := n.Variant.(*Collection)
	if !ok {
		return nil
	}
	members := make([]*Node, 0, len(c.Members))
	for _, id := range c.Members {
		if m := t.Node(id); m != nil {
			members = append(members, m)
		}
	}
	return members
}

// QmlSubtypes returns the QML types that directly inherit from n,
// sorted by name.
func (t *Tree) QmlSubtypes(n *Node) []*Node {
	t.ensureFinished()
	var nodes []*Node
	for _, id := range t.subtypes[n.ID] {
		nodes = append(nodes, t.Node(id))
	}
	return t.sortByFullName(nodes)
}

// FunctionIndexEntry lists all functions that share a name.
type FunctionIndexEntry struct {
	Name      string
	Functions []*Node
}

// FunctionIndex returns all public documented member functions
// grouped by name, sorted by name.
// Functions in a group are sorted by the qualified name of their parent.
func (t *Tree) FunctionIndex() []FunctionIndexEntry {
	byName := make(map[string][]*Node)
	for _, n := range t.Nodes() {
		fn := n.Function()
		if fn == nil || !isListed(n) || n.IsObsolete() || fn.Meta.IsMacro() {
			continue
		}
		parent := t.Parent(n)
		if parent == nil || parent.ID == t.Root().ID || !parent.IsAggregate() {
			continue
		}
		byName[n.Name] = append(byName[n.Name], n)
	}

	entries := make([]FunctionIndexEntry, 0, len(byName))
	for name, fns := range byName {
		slices.SortStableFunc(fns, func(a, b *Node) int {
			return cmp.Compare(t.PlainFullName(t.Parent(a), nil), t.PlainFullName(t.Parent(b), nil))
		})
		fns = slices.CompactFunc(fns, func(a, b *Node) bool {
			return a.Parent == b.Parent
		})
		entries = append(entries, FunctionIndexEntry{Name: name, Functions: fns})
	}
	slices.SortFunc(entries, func(a, b FunctionIndexEntry) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return entries
}

// Legalese is a license text and the nodes that carry it.
type Legalese struct {
	Text  atom.Text
	Nodes []*Node
}

// LegaleseTexts returns the distinct license texts in the tree.
func (t *Tree) LegaleseTexts() []Legalese {
	t.ensureFinished()
	return t.legaleses
}
