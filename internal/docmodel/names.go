package docmodel

import (
	"path"
	"strconv"
	"strings"
)

// PlainName returns the name of the node,
// with "()" appended for functions.
func (t *Tree) PlainName(n *Node) string {
	if fn := n.Function(); fn != nil && fn.Meta != MacroWithoutParams {
		return n.Name + "()"
	}
	return n.Name
}

// PlainFullName returns the qualified name of the node
// relative to the given node.
// The root namespace is never part of the name.
func (t *Tree) PlainFullName(n *Node, relative *Node) string {
	if n.Name == "" {
		return "global"
	}

	var parts []string
	for cur := n; cur != nil; {
		parts = append(parts, t.PlainName(cur))
		parent := t.Parent(cur)
		if parent == nil || parent == relative || parent.Name == "" || parent.IsCollection() {
			break
		}
		cur = parent
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "::")
}

// FullName returns the title of pages and groups,
// and the qualified name of everything else.
func (t *Tree) FullName(n *Node, relative *Node) string {
	switch n.Variant.(type) {
	case *Page, *Example, *Collection:
		if title := t.Title(n); title != "" {
			return title
		}
	}
	return t.PlainFullName(n, relative)
}

// Title returns the title of the node.
// Entities without a title use their name.
func (t *Tree) Title(n *Node) string {
	var title string
	switch v := n.Variant.(type) {
	case *Page:
		title = v.Title
	case *Example:
		title = v.Title
	case *Collection:
		title = v.Title
	}
	if title == "" {
		return n.Name
	}
	return title
}

// FullTitle returns the title of the node as shown at the top of its page.
func (t *Tree) FullTitle(n *Node) string {
	switch n.Variant.(type) {
	case *Page, *Example, *Collection:
		return t.Title(n)
	default:
		return t.PlainFullName(n, nil)
	}
}

// Subtitle returns the subtitle of pages, or an empty string.
func (t *Tree) Subtitle(n *Node) string {
	switch v := n.Variant.(type) {
	case *Page:
		return v.Subtitle
	case *Example:
		return v.Subtitle
	case *Collection:
		return v.Subtitle
	}
	return ""
}

// Signature returns the signature of a function,
// optionally with default values and without the return type.
// Other nodes return their plain name.
func (t *Tree) Signature(n *Node, values, noReturnType bool) string {
	fn := n.Function()
	if fn == nil {
		return t.PlainName(n)
	}

	var sb strings.Builder
	if !noReturnType && fn.ReturnType != "" {
		sb.WriteString(fn.ReturnType)
		sb.WriteByte(' ')
	}
	sb.WriteString(n.Name)
	if fn.Meta != MacroWithoutParams {
		sb.WriteByte('(')
		for i, p := range fn.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(ParameterSignature(p, values))
		}
		sb.WriteByte(')')
		if fn.Meta.IsMacro() {
			return sb.String()
		}
	}
	if fn.Const {
		sb.WriteString(" const")
	}
	switch {
	case fn.Ref:
		sb.WriteString(" &")
	case fn.RefRef:
		sb.WriteString(" &&")
	}
	return sb.String()
}

// ParameterSignature formats a single parameter as "type name".
func ParameterSignature(p Parameter, values bool) string {
	s := p.Type
	if p.Name != "" {
		if s != "" && !strings.HasSuffix(s, "*") && !strings.HasSuffix(s, "&") && !strings.HasSuffix(s, " ") {
			s += " "
		}
		s += p.Name
	}
	if values && p.Default != "" {
		s += " = " + p.Default
	}
	return s
}

// ThreadSafety returns the effective thread safety of the node.
// Nodes without an explicit level inherit the level of their parent.
func (t *Tree) ThreadSafety(n *Node) ThreadSafety {
	for cur := n; cur != nil; cur = t.Parent(cur) {
		if cur.ThreadSafety != UnspecifiedThreadSafety {
			return cur.ThreadSafety
		}
	}
	return UnspecifiedThreadSafety
}

// LogicalModuleVersion returns the version of the QML module
// that provides the given QML type.
func (t *Tree) LogicalModuleVersion(n *Node) string {
	qt, ok := n.Variant.(*QmlType)
	if !ok {
		return ""
	}
	if m := t.Collection(qt.LogicalModule, QmlModule); m != nil {
		return m.Variant.(*Collection).LogicalModuleVersion
	}
	return ""
}

// CleanRef turns an arbitrary string into a valid XML ID.
func CleanRef(ref string) string {
	if ref == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(ref) + 20)
	for i, c := range ref {
		if i == 0 {
			switch {
			case isAlnum(c):
				sb.WriteRune(c)
			case c == '~':
				sb.WriteString("dtor.")
			case c == '_':
				sb.WriteString("underscore.")
			default:
				sb.WriteByte('A')
			}
			continue
		}

		switch {
		case isAlnum(c), c == '-', c == '_', c == ':', c == '.', c == '#':
			sb.WriteRune(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			sb.WriteByte('-')
		case c == '!':
			sb.WriteString("-not")
		case c == '&':
			sb.WriteString("-and")
		case c == '<':
			sb.WriteString("-lt")
		case c == '=':
			sb.WriteString("-eq")
		case c == '>':
			sb.WriteString("-gt")
		default:
			sb.WriteByte('-')
			sb.WriteString(strconv.FormatInt(int64(c), 16))
		}
	}
	return sb.String()
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Anchor returns the anchor of a member inside the page of its parent.
// Nodes with pages of their own have no anchor.
func (t *Tree) Anchor(n *Node) string {
	var ref string
	switch v := n.Variant.(type) {
	case *Enum:
		ref = n.Name + "-enum"
	case *Typedef:
		if e := t.Node(v.AssociatedEnum); e != nil {
			return t.Anchor(e)
		}
		ref = n.Name + "-typedef"
	case *Function:
		switch v.Meta {
		case QmlSignal:
			ref = n.Name + "-signal"
		case QmlSignalHandler:
			ref = n.Name + "-signal-handler"
		case QmlMethod:
			ref = n.Name + "-method"
			if v.OverloadNumber != 0 {
				ref += "-" + strconv.Itoa(v.OverloadNumber)
			}
		default:
			if len(v.AssociatedProperties) == 1 && !n.HasDoc() {
				if p := t.Node(v.AssociatedProperties[0]); p != nil {
					return t.Anchor(p)
				}
			}
			ref = n.Name
			if v.OverloadNumber != 0 {
				ref += "-" + strconv.Itoa(v.OverloadNumber)
			}
		}
	case *QmlProperty:
		if v.Attached {
			ref = n.Name + "-attached-prop"
		} else {
			ref = n.Name + "-prop"
		}
	case *Property:
		ref = n.Name + "-prop"
	case *Variable:
		ref = n.Name + "-var"
	case *SharedComment:
		if v.PropertyGroup {
			ref = n.Name + "-prop"
		} else if len(v.Collective) > 0 {
			if first := t.Node(v.Collective[0]); first != nil {
				return t.Anchor(first)
			}
		}
	}
	return CleanRef(ref)
}

// pageNode returns the node whose page documents n.
func (t *Tree) pageNode(n *Node) *Node {
	for cur := n; cur != nil; cur = t.Parent(cur) {
		if cur.IsPageNode() && cur.ID != t.Root().ID {
			return cur
		}
	}
	return n
}

// FileName returns the name of the file that documents n,
// without any directory.
func (t *Tree) FileName(n *Node) string {
	ext := t.FileExtension
	if ext == "" {
		ext = "xml"
	}
	return t.fileBase(t.pageNode(n)) + "." + ext
}

// OutputDir returns the directory, relative to the output root,
// that holds the page of n.
func (t *Tree) OutputDir(n *Node) string {
	if !t.OutputSubdirs {
		return ""
	}
	return strings.ToLower(t.pageNode(n).Module)
}

// Path returns the path of the file that documents n,
// relative to the output root.
func (t *Tree) Path(n *Node) string {
	return path.Join(t.OutputDir(n), t.FileName(n))
}

// ExampleFileName returns the name of the page generated
// for a file of an example.
func (t *Tree) ExampleFileName(example *Node, file string) string {
	ext := t.FileExtension
	if ext == "" {
		ext = "xml"
	}
	base := strings.TrimSuffix(t.fileBase(example), "-example")
	return base + "-" + canonicalFileBase(file) + "." + ext
}

func (t *Tree) fileBase(n *Node) string {
	switch v := n.Variant.(type) {
	case *QmlType:
		prefix := "qml-"
		if v.JavaScript {
			prefix = "js-"
		}
		base := prefix
		if v.LogicalModule != "" {
			base += canonicalFileBase(v.LogicalModule) + "-"
		}
		return base + canonicalFileBase(n.Name)
	case *QmlBasicType:
		if v.JavaScript {
			return "js-" + canonicalFileBase(n.Name)
		}
		return "qml-" + canonicalFileBase(n.Name)
	case *Page:
		return canonicalFileBase(strings.TrimSuffix(n.Name, path.Ext(n.Name)))
	case *Example:
		return canonicalFileBase(n.Name) + "-example"
	case *Collection:
		switch {
		case v.Generic:
			return canonicalFileBase(n.Name)
		case v.Type == Module:
			return canonicalFileBase(n.Name) + "-module"
		case v.Type == QmlModule:
			return canonicalFileBase(n.Name) + "-qmlmodule"
		default:
			return canonicalFileBase(n.Name)
		}
	case *Proxy:
		return canonicalFileBase(t.PlainFullName(n, nil)) + "-proxy"
	default:
		return canonicalFileBase(t.PlainFullName(n, nil))
	}
}

// canonicalFileBase lowercases s and replaces everything
// that doesn't belong in a file name with dashes.
func canonicalFileBase(s string) string {
	s = strings.ReplaceAll(s, "::", "-")
	var sb strings.Builder
	dash := false
	for _, c := range strings.ToLower(s) {
		if isAlnum(c) || c == '_' {
			sb.WriteRune(c)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
