package docmodel

import "strings"

// ResolveLink finds the node a link text refers to,
// searching the scopes enclosing relative first.
//
// If the text matched a target defined inside a node's documentation,
// the target is returned alongside the node.
func (t *Tree) ResolveLink(text string, relative *Node) (n *Node, target string) {
	t.ensureFinished()
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ""
	}

	if id, ok := t.byTarget[text]; ok {
		return t.Node(id), text
	}
	if id, ok := t.byTitle[text]; ok {
		return t.Node(id), ""
	}
	if n := t.findByName(text, relative, nil); n != nil {
		return n, ""
	}
	if trimmed := strings.TrimSuffix(text, "()"); trimmed != text {
		return t.findByName(trimmed, relative, nil), ""
	}
	return nil, ""
}

// FindNodeForTarget finds a page, a titled node, or a target by name.
func (t *Tree) FindNodeForTarget(target string, relative *Node) *Node {
	t.ensureFinished()
	if n := t.findByName(target, relative, (*Node).IsPageNode); n != nil {
		return n
	}
	if id, ok := t.byTitle[target]; ok {
		return t.Node(id)
	}
	if id, ok := t.byTarget[target]; ok {
		return t.Node(id)
	}
	return nil
}

// FindTypeNode finds a type (class, enum, typedef, namespace, or QML type)
// by name, searching the scopes enclosing relative first.
func (t *Tree) FindTypeNode(name string, relative *Node) *Node {
	t.ensureFinished()
	return t.findByName(name, relative, isTypeNode)
}

// FindClass finds a C++ class by its qualified name.
func (t *Tree) FindClass(name string) *Node {
	t.ensureFinished()
	return t.findByName(name, nil, func(n *Node) bool {
		_, ok := n.Variant.(*Class)
		return ok
	})
}

func isTypeNode(n *Node) bool {
	switch n.Variant.(type) {
	case *Class, *Enum, *Typedef, *Namespace, *QmlType, *QmlBasicType:
		return true
	default:
		return false
	}
}

func (t *Tree) findByName(name string, relative *Node, keep func(*Node) bool) *Node {
	match := func(key string) *Node {
		for _, id := range t.byName[key] {
			n := t.Node(id)
			if keep == nil || keep(n) {
				return n
			}
		}
		return nil
	}

	for scope := relative; scope != nil && scope.ID != t.Root().ID; scope = t.Parent(scope) {
		if !scope.IsAggregate() {
			continue
		}
		if n := match(t.PlainFullName(scope, nil) + "::" + name); n != nil {
			return n
		}
	}
	return match(name)
}
