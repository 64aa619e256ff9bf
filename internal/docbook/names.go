package docbook

import (
	"path"
	"strings"
	"unicode"

	"go.abhg.dev/docbookgen/internal/docmodel"
	"go.abhg.dev/docbookgen/internal/relative"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// canonicalTitle turns a title into a reference suitable for xml:id:
// lower-case ASCII letters and digits, with runs of anything else
// collapsed into a single dash.
// Accents are stripped before that so that "Café" becomes "cafe".
func canonicalTitle(title string) string {
	if folded, _, err := transform.String(_accentFolder(), title); err == nil {
		title = folded
	}

	var sb strings.Builder
	sb.Grow(len(title))
	dash, begun := false, false
	lastAlnum := 0
	for _, r := range title {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			dash, begun = false, true
			lastAlnum = sb.Len()
		} else if !dash {
			if begun {
				sb.WriteByte('-')
			}
			dash = true
		}
	}
	return sb.String()[:lastAlnum]
}

// _accentFolder builds a transformer that decomposes characters
// and drops the combining marks.
// Transformers are stateful so each call gets its own.
func _accentFolder() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// registerRef registers a reference in the current document
// and returns a version of it that is unique within the document.
// Registering the same reference twice returns the same result.
func (d *document) registerRef(ref string) string {
	clean := docmodel.CleanRef(ref)
	for {
		key := strings.ToLower(clean)
		prev, ok := d.refs[key]
		if !ok {
			d.refs[key] = ref
			return clean
		}
		if prev == ref {
			return clean
		}
		clean += "x"
	}
}

// newID returns an identifier based on id
// that no other element of the document uses.
// Unlike registerRef, every call claims a new identifier.
func (d *document) newID(id string) string {
	if id == "" {
		return id
	}
	for {
		key := strings.ToLower(id)
		if _, ok := d.refs[key]; !ok {
			// No reference compares equal to this value,
			// so registerRef won't hand out the same identifier.
			d.refs[key] = "\x00" + id
			return id
		}
		id += "x"
	}
}

// sectionID returns a new identifier for a section
// that the generator itself adds to the document.
func (d *document) sectionID(ref string) string {
	return d.newID(docmodel.CleanRef(ref))
}

// documentPath returns the path of the document that holds n,
// relative to the current document.
func (d *document) documentPath(n *docmodel.Node) string {
	return relative.Path(d.dir, path.Join(d.db.OutputDir(n), d.db.FileName(n)))
}

// fullDocumentLocation returns a link to n from the current document,
// including the anchor of n if it's a member of a page.
func (d *document) fullDocumentLocation(n *docmodel.Node) string {
	if n == nil {
		return ""
	}
	if n.URL != "" {
		return n.URL
	}
	if n.IsPrivate() {
		return ""
	}

	loc := d.documentPath(n)
	if !n.IsPageNode() || isPropertyGroup(n) {
		if anchor := d.db.Anchor(n); anchor != "" {
			loc += "#" + anchor
		}
	}
	return loc
}

// linkForNode is like fullDocumentLocation,
// but returns an empty string if n is the same member as relative.
func (d *document) linkForNode(n, rel *docmodel.Node) string {
	if n == nil || n.IsPrivate() {
		return ""
	}
	if n.URL != "" {
		return n.URL
	}
	if rel != nil && n == rel && (!n.IsPageNode() || isPropertyGroup(n)) {
		return ""
	}
	return d.fullDocumentLocation(n)
}

func isPropertyGroup(n *docmodel.Node) bool {
	sc, ok := n.Variant.(*docmodel.SharedComment)
	return ok && sc.PropertyGroup
}

var _urlSchemes = []string{"file:", "http:", "https:", "ftp:", "mailto:"}

// getLink resolves the target of a Link or NavLink atom.
// URLs are used verbatim and have no node.
func (d *document) getLink(s string, rel *docmodel.Node) (string, *docmodel.Node) {
	for _, scheme := range _urlSchemes {
		if strings.HasPrefix(s, scheme) {
			return s, nil
		}
	}
	return d.getAutoLink(s, rel)
}

// getAutoLink resolves the name of an entity,
// optionally followed by "#target", into a link.
func (d *document) getAutoLink(s string, rel *docmodel.Node) (string, *docmodel.Node) {
	name, ref, hasRef := strings.Cut(s, "#")
	name = strings.TrimSpace(name)

	var (
		n      *docmodel.Node
		target string
	)
	if name == "" {
		n = rel
	} else {
		n, target = d.db.ResolveLink(name, rel)
	}
	if n == nil {
		return "", nil
	}

	if hasRef {
		target = ref
	}
	if target != "" {
		return d.documentPath(n) + "#" + canonicalTitle(target), n
	}
	return d.linkForNode(n, rel), n
}

// hOffset is the level of the sections of the page documenting n.
func hOffset(n *docmodel.Node) int {
	if n == nil {
		return 3
	}
	switch n.Kind() {
	case docmodel.ClassKind, docmodel.NamespaceKind, docmodel.ModuleKind:
		return 2
	case docmodel.QmlModuleKind, docmodel.QmlBasicTypeKind, docmodel.QmlTypeKind,
		docmodel.PageKind, docmodel.ExampleKind, docmodel.GroupKind:
		return 1
	default:
		return 3
	}
}

// typeString describes the kind of n in prose: "This <typeString> is ...".
func typeString(n *docmodel.Node) string {
	switch n.Kind() {
	case docmodel.NamespaceKind:
		return "namespace"
	case docmodel.ClassKind:
		return "class"
	case docmodel.QmlTypeKind, docmodel.QmlBasicTypeKind:
		return "type"
	case docmodel.EnumKind:
		return "enum"
	case docmodel.TypedefKind:
		return "typedef"
	case docmodel.FunctionKind:
		fn := n.Function()
		switch {
		case fn.Meta == docmodel.Signal:
			return "signal"
		case fn.Meta == docmodel.Slot:
			return "slot"
		case fn.Meta.IsMacro():
			return "macro"
		case fn.Meta == docmodel.QmlSignal:
			return "signal"
		case fn.Meta == docmodel.QmlSignalHandler:
			return "signal handler"
		case fn.Meta == docmodel.QmlMethod:
			return "method"
		}
		return "function"
	case docmodel.PropertyKind, docmodel.QmlPropertyKind:
		return "property"
	case docmodel.VariableKind:
		return "variable"
	case docmodel.ModuleKind, docmodel.QmlModuleKind:
		return "module"
	case docmodel.SharedCommentKind:
		if isPropertyGroup(n) {
			return "property group"
		}
		return "reference"
	default:
		return "documentation"
	}
}

// targetType is the value of the type attribute of links to n.
func targetType(n *docmodel.Node) string {
	if n == nil {
		return "external"
	}
	switch n.Kind() {
	case docmodel.NamespaceKind:
		return "namespace"
	case docmodel.ClassKind:
		return "class"
	case docmodel.PageKind, docmodel.ExampleKind:
		return "page"
	case docmodel.EnumKind:
		return "enum"
	case docmodel.TypedefKind:
		return "typedef"
	case docmodel.PropertyKind:
		return "property"
	case docmodel.FunctionKind:
		return "function"
	case docmodel.VariableKind:
		return "variable"
	case docmodel.ModuleKind:
		return "module"
	default:
		return ""
	}
}

// formatSince formats the version that n was introduced in.
// A bare version number is qualified with the project name.
func (d *document) formatSince(n *docmodel.Node) string {
	if strings.ContainsRune(n.Since, ' ') {
		return n.Since
	}
	if project := d.g.Config.Project; project != "" {
		return project + " " + n.Since
	}
	return n.Since
}

// comma returns the separator to place after the item at index i
// of a list of n items: "", " and ", ", " or ", and ".
func comma(i, n int) string {
	switch {
	case i == n-1:
		return ""
	case n == 2:
		return " and "
	case i < n-2:
		return ", "
	default:
		return ", and "
	}
}

// generateFullName writes a link to n named by its full name
// relative to rel.
func (d *document) generateFullName(n, rel *docmodel.Node) {
	d.w.Start("link")
	d.w.Attr("xlink:href", d.fullDocumentLocation(n))
	d.w.Attr("xlink:role", targetType(n))
	d.w.Text(d.db.FullName(n, rel))
	d.w.End()
}

// generateFullNameAs writes a link to actual with the given text.
// If actual is nil, the link goes to apparent.
func (d *document) generateFullNameAs(apparent *docmodel.Node, text string, actual *docmodel.Node) {
	if actual == nil {
		actual = apparent
	}
	d.w.Start("link")
	d.w.Attr("xlink:href", d.fullDocumentLocation(actual))
	d.w.Attr("type", targetType(actual))
	d.w.Text(text)
	d.w.End()
}
