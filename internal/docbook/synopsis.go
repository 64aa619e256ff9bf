package docbook

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.abhg.dev/docbookgen/internal/docmodel"
)

// synopsisStyle selects how much of a member's signature
// generateSynopsis writes.
type synopsisStyle int

const (
	// summaryStyle is used in member lists.
	summaryStyle synopsisStyle = iota

	// detailsStyle is used in the titles of member documentation.
	detailsStyle

	// allMembersStyle is used in lists of all members of a class.
	allMembersStyle

	// accessorsStyle is used in lists of property access functions.
	accessorsStyle
)

// _maxEnumValues is the number of values of an enum
// shown in its summary before eliding the rest.
const _maxEnumValues = 6

// generateSynopsis writes the signature of n in the given style.
func (d *document) generateSynopsis(n, rel *docmodel.Node, style synopsisStyle) {
	generateExtra := style != allMembersStyle
	generateType := style != detailsStyle
	generateNameLink := style != detailsStyle

	if generateExtra {
		d.synopsisExtra(n, style)
	}

	if style == detailsStyle {
		if parent := d.db.Parent(n); parent != nil && parent.Name != "" && d.qualifiedInDetails(n) {
			d.w.Text(taggedName(parent) + "::")
		}
	}

	switch v := n.Variant.(type) {
	case *docmodel.Namespace:
		d.w.Text("namespace ")
		d.generateSynopsisName(n, rel, generateNameLink)

	case *docmodel.Class:
		d.w.Text("class ")
		d.generateSynopsisName(n, rel, generateNameLink)

	case *docmodel.Function:
		d.functionSynopsis(n, v, rel, style, generateExtra, generateType, generateNameLink)

	case *docmodel.Enum:
		d.w.Text("enum ")
		d.generateSynopsisName(n, rel, generateNameLink)
		if style == summaryStyle {
			d.w.Text(enumSummary(n, v))
		}

	case *docmodel.Typedef:
		if v.AssociatedEnum != docmodel.None {
			d.w.Text("flags ")
		} else {
			d.w.Text("typedef ")
		}
		d.generateSynopsisName(n, rel, generateNameLink)

	case *docmodel.Property:
		d.generateSynopsisName(n, rel, generateNameLink)
		d.w.Text(" : ")
		d.typified(v.DataType, rel, false, generateType)

	case *docmodel.Variable:
		if style == allMembersStyle {
			d.generateSynopsisName(n, rel, generateNameLink)
			d.w.Text(" : ")
			d.typified(v.DataType(), rel, false, generateType)
		} else {
			d.typified(v.LeftType, rel, false, generateType)
			d.w.Text(" ")
			d.generateSynopsisName(n, rel, generateNameLink)
			d.w.Text(v.RightType)
		}

	default:
		d.generateSynopsisName(n, rel, generateNameLink)
	}
}

// qualifiedInDetails reports whether the detailed title of n
// is qualified with the name of its parent.
func (d *document) qualifiedInDetails(n *docmodel.Node) bool {
	if fn := n.Function(); fn != nil && fn.RelatedNonMember {
		return false
	}
	switch n.Kind() {
	case docmodel.ProxyKind, docmodel.PropertyKind:
		return false
	}
	return !n.IsQmlNode()
}

// synopsisExtra writes the bracketed qualifiers of a function
// or the status of a member before its signature.
func (d *document) synopsisExtra(n *docmodel.Node, style synopsisStyle) {
	if fn := n.Function(); fn != nil && style != summaryStyle && style != accessorsStyle {
		var bracketed []string
		if fn.Static {
			bracketed = append(bracketed, "static")
		} else if fn.Virtual != docmodel.NonVirtual {
			if fn.Final {
				bracketed = append(bracketed, "final")
			}
			if fn.Override {
				bracketed = append(bracketed, "override")
			}
			if fn.Virtual == docmodel.PureVirtual {
				bracketed = append(bracketed, "pure")
			}
			bracketed = append(bracketed, "virtual")
		}

		switch n.Access {
		case docmodel.Protected:
			bracketed = append(bracketed, "protected")
		case docmodel.Private:
			bracketed = append(bracketed, "private")
		}

		switch fn.Meta {
		case docmodel.Signal:
			bracketed = append(bracketed, "signal")
		case docmodel.Slot:
			bracketed = append(bracketed, "slot")
		}

		if len(bracketed) > 0 {
			d.w.Text("[" + strings.Join(bracketed, " ") + "] ")
		}
	}

	if style == summaryStyle {
		switch n.Status {
		case docmodel.Preliminary, docmodel.Deprecated, docmodel.Obsolete:
			d.w.Text("(" + n.Status.String() + ") ")
		}
	}
}

func (d *document) functionSynopsis(
	n *docmodel.Node,
	fn *docmodel.Function,
	rel *docmodel.Node,
	style synopsisStyle,
	generateExtra, generateType, generateNameLink bool,
) {
	if (style == summaryStyle || style == accessorsStyle) && fn.Virtual != docmodel.NonVirtual {
		d.w.Text("virtual ")
	}

	if style != allMembersStyle && fn.ReturnType != "" {
		d.typified(fn.ReturnType, rel, true, generateType)
	}
	d.generateSynopsisName(n, rel, generateNameLink)

	if fn.Meta != docmodel.MacroWithoutParams {
		d.w.Text("(")
		for i, p := range fn.Params {
			if i > 0 {
				d.w.Text(", ")
			}
			d.generateParameter(p, rel, generateExtra, generateType)
		}
		d.w.Text(")")
	}
	if fn.Const {
		d.w.Text(" const")
	}

	var suffix string
	switch style {
	case summaryStyle, accessorsStyle:
		if fn.Final {
			suffix += " final"
		}
		if fn.Override {
			suffix += " override"
		}
		if fn.Virtual == docmodel.PureVirtual {
			suffix += " = 0"
		}
		suffix += refQualifier(fn)

	case allMembersStyle:
		if fn.ReturnType != "" && fn.ReturnType != "void" {
			d.w.Text(" : ")
			d.typified(fn.ReturnType, rel, false, generateType)
		}

	default:
		suffix = refQualifier(fn)
	}
	if suffix != "" {
		d.w.Text(suffix)
	}
}

func refQualifier(fn *docmodel.Function) string {
	switch {
	case fn.Ref:
		return " &"
	case fn.RefRef:
		return " &&"
	default:
		return ""
	}
}

// enumSummary lists the documented values of an enum in braces,
// eliding values past the first few.
func enumSummary(n *docmodel.Node, e *docmodel.Enum) string {
	items := slices.Clone(n.Doc.EnumItemNames)
	if len(items) == 0 {
		for _, it := range e.Items {
			items = append(items, it.Name)
		}
	}
	items = slices.DeleteFunc(items, func(name string) bool {
		return slices.Contains(n.Doc.OmitEnumItemNames, name)
	})

	if len(items) > _maxEnumValues {
		last := items[len(items)-1]
		items = append(items[:_maxEnumValues-1:_maxEnumValues-1], "…", last)
	}

	s := " { " + strings.Join(items, ", ")
	if len(items) > 0 {
		s += " "
	}
	return s + "}"
}

// taggedName is the name of n as shown in signatures.
func taggedName(n *docmodel.Node) string {
	if n.Kind() == docmodel.QmlTypeKind {
		return strings.TrimPrefix(n.Name, "QML:")
	}
	return n.Name
}

// generateSynopsisName writes the name of n in a signature,
// in bold and linked to its documentation if requested.
func (d *document) generateSynopsisName(n, rel *docmodel.Node, link bool) {
	name := taggedName(n)
	if !link {
		d.w.Text(name)
		return
	}

	d.w.Start("emphasis")
	d.w.Attr("role", "bold")
	d.simpleLinkOrText(d.linkForNode(n, rel), name)
	d.w.End() // emphasis
}

// _paramSubscript matches parameter names like "x_1" or "a_n"
// whose number renders as a subscript.
var _paramSubscript = regexp.MustCompile(`([a-z]+)_([0-9]+|n)`)

// generateParameter writes a single function parameter.
func (d *document) generateParameter(p docmodel.Parameter, rel *docmodel.Node, generateExtra, generateType bool) {
	name := p.Name
	if name != "" {
		d.typified(p.Type, rel, true, generateType)
	} else {
		name = p.Type
	}

	if generateExtra || p.Name == "" {
		d.w.Start("emphasis")
		if m := _paramSubscript.FindStringSubmatchIndex(name); m != nil {
			d.w.Text(name[:m[3]])
			d.w.TextElement("sub", name[m[4]:m[5]])
			d.w.Text(name[m[1]:])
		} else {
			d.w.Text(name)
		}
		d.w.End() // emphasis
	}

	if generateExtra && p.Default != "" {
		d.w.Text(" = " + p.Default)
	}
}

func isTypeWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		unicode.IsDigit(r) || r == '_' || r == ':'
}

// typified writes a type expression,
// wrapping the names of types in type elements
// that link to their documentation.
func (d *document) typified(s string, rel *docmodel.Node, trailingSpace, generateType bool) {
	var pending strings.Builder
	flush := func() {
		if pending.Len() > 0 {
			d.w.Text(pending.String())
			pending.Reset()
		}
	}

	var word strings.Builder
	endWord := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		word.Reset()

		if !generateType || w == "const" {
			pending.WriteString(w)
			return
		}

		flush()
		d.w.Start("type")
		d.simpleLinkOrText(d.typeLink(w, rel), w)
		d.w.End() // type
	}

	for _, r := range s {
		if isTypeWordRune(r) {
			word.WriteRune(r)
			continue
		}
		endWord()
		pending.WriteRune(r)
	}
	endWord()

	if trailingSpace && s != "" && !strings.HasSuffix(s, "*") && !strings.HasSuffix(s, "&") {
		pending.WriteByte(' ')
	}
	flush()
}

// typeLink returns a link to the type with the given name.
// QML value types are only linked from QML documentation.
func (d *document) typeLink(name string, rel *docmodel.Node) string {
	n := d.db.FindTypeNode(name, rel)
	if n == nil {
		return ""
	}
	if n.Kind() == docmodel.QmlBasicTypeKind && (rel == nil || !rel.IsQmlNode()) {
		return ""
	}
	return d.linkForNode(n, rel)
}

// generateEnumValue writes the name of a value of the enum rel,
// qualified with the scopes enclosing the enum.
func (d *document) generateEnumValue(value string, rel *docmodel.Node) {
	if !isEnum(rel) {
		d.w.Text(value)
		return
	}

	var parents []*docmodel.Node
	for p := d.db.Parent(rel); p != nil; p = d.db.Parent(p) {
		grand := d.db.Parent(p)
		if grand == nil {
			break
		}
		parents = append(parents, p)
		if grand.Name == "" {
			break
		}
	}
	slices.Reverse(parents)

	d.w.Start("code")
	for _, p := range parents {
		d.generateSynopsisName(p, rel, true)
		d.w.Text("::")
	}
	d.w.Text(value)
	d.w.End() // code
}

// synopsisTag returns the DocBook element holding the synopsis of n.
func (d *document) synopsisTag(n *docmodel.Node) string {
	switch v := n.Variant.(type) {
	case *docmodel.Class, *docmodel.QmlType, *docmodel.QmlBasicType:
		return "classsynopsis"
	case *docmodel.Namespace:
		return "namespacesynopsis"
	case *docmodel.Page, *docmodel.Example, *docmodel.Collection:
		d.g.warn(d.location(), SynopsisNode, "unexpected document node %v in synopsis", n.Name)
		return ""
	case *docmodel.Enum:
		return "enumsynopsis"
	case *docmodel.Typedef:
		return "typedefsynopsis"
	case *docmodel.Function:
		switch {
		case v.Meta.IsConstructor():
			return "constructorsynopsis"
		case v.Meta == docmodel.Destructor:
			return "destructorsynopsis"
		default:
			return "methodsynopsis"
		}
	case *docmodel.Property, *docmodel.Variable, *docmodel.QmlProperty:
		return "fieldsynopsis"
	default:
		d.g.warn(d.location(), SynopsisNode, "unknown node tag %v", n.Kind())
		return "synopsis"
	}
}

func (d *document) synopsisInfo(role, value string) {
	d.w.Start("synopsisinfo")
	d.w.Attr("db:role", role)
	d.w.Text(value)
	d.w.End() // synopsisinfo
	d.newLine()
}

func (d *document) modifier(value string) {
	d.w.TextElement("modifier", value)
	d.newLine()
}

var _threadSafetyInfo = map[docmodel.ThreadSafety]string{
	docmodel.UnspecifiedThreadSafety: "unspecified",
	docmodel.NonReentrant:            "non-reentrant",
	docmodel.Reentrant:               "reentrant",
	docmodel.ThreadSafe:              "thread safe",
}

// generateDocBookSynopsis writes the metadata of n
// as a DocBook synopsis element.
//
// Synopses use DocBook extensions
// so they're left out of plain output.
func (d *document) generateDocBookSynopsis(n *docmodel.Node) {
	if n == nil || d.g.Config.Plain {
		return
	}
	switch n.Kind() {
	case docmodel.PageKind, docmodel.ExampleKind,
		docmodel.GroupKind, docmodel.ModuleKind, docmodel.QmlModuleKind:
		return
	}
	if isPropertyGroup(n) {
		return
	}

	tag := d.synopsisTag(n)
	if tag == "" {
		return
	}
	d.w.Start(tag)
	d.newLine()

	d.synopsisName(n)

	if !n.IsPageNode() || n.IsAggregate() {
		d.synopsisInfo("access", n.Access.String())
		if c, ok := n.Variant.(*docmodel.Class); ok && c.Abstract {
			d.synopsisInfo("abstract", "true")
		}
	}
	d.synopsisInfo("status", n.Status.String())

	if n.IsAggregate() {
		d.aggregateSynopsisInfo(n)
	}
	if qt, ok := n.Variant.(*docmodel.QmlType); ok {
		d.qmlTypeSynopsisInfo(n, qt)
	}

	d.synopsisInfo("threadsafeness", _threadSafetyInfo[d.threadSafety(n)])
	if n.Module != "" {
		d.synopsisInfo("module", n.Module)
	}
	switch n.Kind() {
	case docmodel.ClassKind, docmodel.QmlTypeKind:
		if len(n.Groups) > 0 {
			d.synopsisInfo("groups", strings.Join(n.Groups, ","))
		}
	}

	switch v := n.Variant.(type) {
	case *docmodel.Property:
		d.accessorSynopsisInfo("getter", v.Getters)
		d.accessorSynopsisInfo("setter", v.Setters)
		d.accessorSynopsisInfo("resetter", v.Resetters)
		d.accessorSynopsisInfo("notifier", v.Notifiers)

	case *docmodel.Enum:
		for _, it := range v.Items {
			d.w.Start("enumitem")
			d.newLine()
			d.w.TextElement("enumidentifier", it.Name)
			d.newLine()
			d.w.TextElement("enumvalue", it.Value)
			d.newLine()
			d.w.End() // enumitem
			d.newLine()
		}
	}

	d.w.End() // tag
	d.newLine()

	if e, ok := n.Variant.(*docmodel.Enum); ok {
		if flags := d.db.Node(e.Flags); flags != nil {
			d.w.Start("typedefsynopsis")
			d.newLine()
			d.w.TextElement("typedefname", d.db.PlainFullName(flags, nil))
			d.newLine()
			d.w.End() // typedefsynopsis
			d.newLine()
		}
	}
}

// synopsisName writes the name and signature of n in a synopsis.
func (d *document) synopsisName(n *docmodel.Node) {
	switch v := n.Variant.(type) {
	case *docmodel.Class, *docmodel.QmlType, *docmodel.QmlBasicType:
		d.w.Start("ooclass")
		d.w.TextElement("classname", d.db.PlainName(n))
		d.w.End() // ooclass
		d.newLine()

	case *docmodel.Namespace:
		d.w.TextElement("namespacename", d.db.PlainName(n))
		d.newLine()

	case *docmodel.Property:
		d.modifier("(Qt property)")
		d.w.TextElement("type", v.DataType)
		d.newLine()
		d.w.TextElement("varname", d.db.PlainName(n))
		d.newLine()

	case *docmodel.Variable:
		if v.Static {
			d.modifier("static")
		}
		d.w.TextElement("type", v.DataType())
		d.newLine()
		d.w.TextElement("varname", d.db.PlainName(n))
		d.newLine()

	case *docmodel.Enum:
		d.w.TextElement("enumname", d.db.PlainName(n))
		d.newLine()

	case *docmodel.Typedef:
		d.w.TextElement("typedefname", d.db.PlainName(n))
		d.newLine()

	case *docmodel.QmlProperty:
		name := n.Name
		if v.Attached {
			if parent := d.db.Parent(n); parent != nil {
				name = parent.Name + "." + name
			}
		}
		d.w.TextElement("type", v.DataType)
		d.newLine()
		d.w.TextElement("varname", name)
		d.newLine()
		if v.Attached {
			d.modifier("attached")
		}
		if !v.ReadOnly {
			d.modifier("writable")
		} else {
			d.modifier("[read-only]")
		}
		if v.Default {
			d.modifier("[default]")
		}

	case *docmodel.Function:
		d.functionSynopsisName(n, v)

	default:
		d.g.warn(d.location(), SynopsisNode, "unexpected node type in synopsis: %v", n.Kind())
	}
}

func (d *document) functionSynopsisName(n *docmodel.Node, fn *docmodel.Function) {
	if fn.Virtual != docmodel.NonVirtual {
		d.modifier("virtual")
	}
	if fn.Const {
		d.modifier("const")
	}
	if fn.Static {
		d.modifier("static")
	}

	if !fn.Meta.IsMacro() {
		switch fn.ReturnType {
		case "":
		case "void":
			d.w.Empty("void")
			d.newLine()
		default:
			d.w.TextElement("type", fn.ReturnType)
			d.newLine()
		}
	}
	d.w.TextElement("methodname", n.Name)
	d.newLine()

	if fn.Overload {
		d.modifier("overload")
	}
	if fn.Defaulted {
		d.modifier("default")
	}
	if fn.Final {
		d.modifier("final")
	}
	if fn.Override {
		d.modifier("override")
	}

	if !fn.Meta.IsMacro() && len(fn.Params) == 0 {
		d.w.Empty("void")
		d.newLine()
	}
	for _, p := range fn.Params {
		d.w.Start("methodparam")
		d.newLine()
		d.w.TextElement("type", p.Type)
		d.newLine()
		d.w.TextElement("parameter", p.Name)
		d.newLine()
		if p.Default != "" {
			d.w.TextElement("initializer", p.Default)
			d.newLine()
		}
		d.w.End() // methodparam
		d.newLine()
	}

	d.synopsisInfo("meta", fn.Meta.String())
	if fn.Overload {
		d.synopsisInfo("overload-number", strconv.Itoa(fn.OverloadNumber))
	}
	switch {
	case fn.Ref:
		d.synopsisInfo("refness", "1")
	case fn.RefRef:
		d.synopsisInfo("refness", "2")
	}

	if len(fn.AssociatedProperties) > 0 {
		var names []string
		for _, id := range fn.AssociatedProperties {
			if p := d.db.Node(id); p != nil {
				names = append(names, p.Name)
			}
		}
		slices.Sort(names)
		d.synopsisInfo("associated-property", strings.Join(names, ","))
	}

	signature := d.db.Signature(n, false, false)
	if fn.Final {
		signature += " final"
	}
	if fn.Override {
		signature += " override"
	}
	switch {
	case fn.Virtual == docmodel.PureVirtual:
		signature += " = 0"
	case fn.Defaulted:
		signature += " = default"
	}
	d.synopsisInfo("signature", signature)
}

func (d *document) aggregateSynopsisInfo(n *docmodel.Node) {
	for _, include := range includesOf(n) {
		d.synopsisInfo("headers", include)
	}
	if n.Since != "" {
		d.synopsisInfo("since", d.formatSince(n))
	}
	if qtVar := d.qtVariable(n); qtVar != "" {
		d.synopsisInfo("qmake", "QT += "+qtVar)
	}

	c, ok := n.Variant.(*docmodel.Class)
	if !ok {
		return
	}

	if qml := d.db.Node(c.QmlElement); qml != nil && !n.IsInternal() {
		d.w.Start("synopsisinfo")
		d.w.Attr("db:role", "instantiatedBy")
		d.simpleLinkOrText(d.linkForNode(qml, n), qml.Name)
		d.w.End() // synopsisinfo
		d.newLine()
	}

	if len(c.Bases) > 0 {
		d.w.Start("synopsisinfo")
		d.w.Attr("db:role", "inherits")
		d.generateBaseClasses(n, c.Bases)
		d.w.End() // synopsisinfo
		d.newLine()
	}

	if len(c.Derived) > 0 {
		d.w.Start("synopsisinfo")
		d.w.Attr("db:role", "inheritedBy")
		d.generateSortedNames(n, c.Derived)
		d.w.End() // synopsisinfo
		d.newLine()
	}
}

func (d *document) qmlTypeSynopsisInfo(n *docmodel.Node, qt *docmodel.QmlType) {
	d.synopsisInfo("import", "import "+qt.LogicalModule+" "+d.qmlImportVersion(n, qt))

	if subs := d.db.QmlSubtypes(n); len(subs) > 0 {
		d.w.Start("synopsisinfo")
		d.w.Attr("db:role", "inheritedBy")
		d.generateSortedQmlNames(n, subs)
		d.w.End() // synopsisinfo
		d.newLine()
	}

	if base := d.qmlBase(qt); base != nil {
		d.w.Start("synopsisinfo")
		d.w.Attr("db:role", "inherits")
		d.simpleLinkOrText(d.linkForNode(base, n), base.Name)
		d.w.End() // synopsisinfo
		d.newLine()
	}

	if cn := d.db.Node(qt.Class); cn != nil && !cn.IsInternal() {
		d.w.Start("synopsisinfo")
		d.w.Attr("db:role", "instantiates")
		d.simpleLinkOrText(d.linkForNode(cn, n), cn.Name)
		d.w.End() // synopsisinfo
		d.newLine()
	}
}

func (d *document) accessorSynopsisInfo(role string, ids []docmodel.ID) {
	for _, id := range ids {
		if fn := d.db.Node(id); fn != nil {
			d.synopsisInfo(role, fn.Name)
		}
	}
}
