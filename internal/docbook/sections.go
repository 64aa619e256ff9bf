package docbook

import (
	"fmt"
	"slices"

	"go.abhg.dev/docbookgen/internal/docmodel"
)

// section is a category of members documented on a page.
type section struct {
	title    string
	members  []*docmodel.Node
	obsolete []*docmodel.Node
}

func (s *section) add(n *docmodel.Node) {
	if n.IsObsolete() {
		s.obsolete = append(s.obsolete, n)
	} else {
		s.members = append(s.members, n)
	}
}

func (s *section) isEmpty() bool { return len(s.members) == 0 }

// sectionSet holds the categories of a page in the order they're shown.
type sectionSet []*section

func newSectionSet(titles ...string) sectionSet {
	ss := make(sectionSet, len(titles))
	for i, title := range titles {
		ss[i] = &section{title: title}
	}
	return ss
}

func (ss sectionSet) get(title string) *section {
	for _, s := range ss {
		if s.title == title {
			return s
		}
	}
	panic(fmt.Sprintf("unknown section %q", title))
}

func (ss sectionSet) hasObsolete() bool {
	return slices.ContainsFunc(ss, func(s *section) bool {
		return len(s.obsolete) > 0
	})
}

// Section titles.
const (
	_memberTypes        = "Member Type Documentation"
	_properties         = "Property Documentation"
	_memberFunctions    = "Member Function Documentation"
	_memberVariables    = "Member Variable Documentation"
	_relatedNonMembers  = "Related Non-Members"
	_macros             = "Macro Documentation"
	_namespaces         = "Namespaces"
	_classes            = "Classes"
	_types              = "Type Documentation"
	_variables          = "Variable Documentation"
	_functions          = "Function Documentation"
	_attachedProperties = "Attached Property Documentation"
	_signals            = "Signal Documentation"
	_signalHandlers     = "Signal Handler Documentation"
	_attachedSignals    = "Attached Signal Documentation"
	_methods            = "Method Documentation"
	_attachedMethods    = "Attached Method Documentation"
)

// documentedMembers returns the children of n that are documented
// on its page, in declaration order.
//
// Members that share a comment are represented by the shared comment.
func (d *document) documentedMembers(n *docmodel.Node) []*docmodel.Node {
	var members []*docmodel.Node
	for _, c := range d.db.Children(n) {
		switch {
		case c.IsPrivate():
		case c.IsInternal() && !d.g.Config.ShowInternal:
		case c.IsSharingComment():
		case c.URL != "":
		default:
			members = append(members, c)
		}
	}
	return members
}

// representative returns the node that decides the category of n.
// Shared comments are categorized by their first member.
func (d *document) representative(n *docmodel.Node) *docmodel.Node {
	sc, ok := n.Variant.(*docmodel.SharedComment)
	if !ok || sc.PropertyGroup {
		return n
	}
	for _, id := range sc.Collective {
		if m := d.db.Node(id); m != nil {
			return m
		}
	}
	return nil
}

// cppClassSections categorizes the members of a C++ class.
func (d *document) cppClassSections(n *docmodel.Node) sectionSet {
	ss := newSectionSet(_memberTypes, _properties, _memberFunctions,
		_memberVariables, _relatedNonMembers, _macros)

	for _, m := range d.documentedMembers(n) {
		rep := d.representative(m)
		if rep == nil {
			continue
		}

		var title string
		switch v := rep.Variant.(type) {
		case *docmodel.Enum, *docmodel.Typedef:
			title = _memberTypes
		case *docmodel.Property:
			title = _properties
		case *docmodel.Variable:
			title = _memberVariables
		case *docmodel.Function:
			switch {
			case v.Meta.IsMacro():
				title = _macros
			case v.RelatedNonMember:
				title = _relatedNonMembers
			default:
				title = _memberFunctions
			}
		default:
			// Nested classes have pages of their own.
			continue
		}
		ss.get(title).add(m)
	}

	return ss
}

// namespaceSections categorizes the members of a namespace
// or of a proxy for a class documented elsewhere.
func (d *document) namespaceSections(n *docmodel.Node) sectionSet {
	ss := newSectionSet(_namespaces, _classes, _types, _variables, _functions, _macros)

	for _, m := range d.documentedMembers(n) {
		rep := d.representative(m)
		if rep == nil {
			continue
		}

		var title string
		switch v := rep.Variant.(type) {
		case *docmodel.Namespace:
			title = _namespaces
		case *docmodel.Class:
			title = _classes
		case *docmodel.Enum, *docmodel.Typedef:
			title = _types
		case *docmodel.Variable:
			title = _variables
		case *docmodel.Function:
			if v.Meta.IsMacro() {
				title = _macros
			} else {
				title = _functions
			}
		default:
			continue
		}
		ss.get(title).add(m)
	}

	return ss
}

// qmlTypeSections categorizes the members of a QML type.
func (d *document) qmlTypeSections(n *docmodel.Node) sectionSet {
	ss := newSectionSet(_properties, _attachedProperties, _signals,
		_signalHandlers, _attachedSignals, _methods, _attachedMethods)

	for _, m := range d.documentedMembers(n) {
		rep := d.representative(m)
		if rep == nil {
			continue
		}

		var title string
		switch v := rep.Variant.(type) {
		case *docmodel.SharedComment:
			// Property groups.
			title = _properties
		case *docmodel.QmlProperty:
			if v.Attached {
				title = _attachedProperties
			} else {
				title = _properties
			}
		case *docmodel.Function:
			switch v.Meta {
			case docmodel.QmlSignal:
				title = _signals
				if v.Attached {
					title = _attachedSignals
				}
			case docmodel.QmlSignalHandler:
				title = _signalHandlers
			case docmodel.QmlMethod:
				title = _methods
				if v.Attached {
					title = _attachedMethods
				}
			default:
				continue
			}
		default:
			continue
		}
		ss.get(title).add(m)
	}

	return ss
}
