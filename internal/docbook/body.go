package docbook

import (
	"net/url"
	"path"
	"slices"
	"strings"

	"go.abhg.dev/docbookgen/internal/docmodel"
)

// generateBody writes the documentation of n.
// Special member functions without documentation
// get a sentence describing them.
func (d *document) generateBody(n *docmodel.Node) {
	switch {
	case !n.HasDoc() && !n.IsSharingComment():
		if t := d.specialFunctionText(n); t != "" {
			d.w.TextElement("para", t)
			d.newLine()
		}

	case !n.IsSharingComment():
		if fn := n.Function(); fn != nil && fn.Overrides != docmodel.None {
			d.generateReimplementsClause(n, fn)
		}
		if !d.generateText(n.Doc.Body, n) && n.Doc.MarkedReimp {
			return
		}
	}

	d.generateRequiredLinks(n)
}

func (d *document) specialFunctionText(n *docmodel.Node) string {
	fn := n.Function()
	if fn == nil {
		return ""
	}

	var parentName string
	if parent := d.db.Parent(n); parent != nil {
		parentName = parent.Name
	}

	switch fn.Meta {
	case docmodel.Destructor:
		t := "Destroys the instance of " + parentName + "."
		if fn.Virtual != docmodel.NonVirtual {
			t += " The destructor is virtual."
		}
		return t
	case docmodel.Constructor:
		return "Default constructs an instance of " + parentName + "."
	case docmodel.CopyConstructor:
		return "Copy constructor."
	case docmodel.MoveConstructor:
		return "Move-copy constructor."
	case docmodel.CopyAssignment:
		return "Copy-assignment constructor."
	case docmodel.MoveAssignment:
		return "Move-assignment constructor."
	default:
		return ""
	}
}

// generateReimplementsClause links a member function of a class
// to the function or property it reimplements.
func (d *document) generateReimplementsClause(n *docmodel.Node, fn *docmodel.Function) {
	if parent := d.db.Parent(n); parent == nil || parent.Kind() != docmodel.ClassKind {
		return
	}
	overridden := d.db.Node(fn.Overrides)
	if overridden == nil || !overridden.HasDoc() {
		return
	}
	owner := d.db.Parent(overridden)
	if owner == nil {
		return
	}

	switch overridden.Kind() {
	case docmodel.FunctionKind:
		if overridden.IsPrivate() || owner.IsPrivate() {
			return
		}
		d.w.Start("para")
		d.w.Text("Reimplements: ")
		d.generateFullNameAs(owner, owner.Name+"::"+d.db.Signature(overridden, false, true), overridden)
		d.w.Text(".")
		d.w.End() // para
		d.newLine()

	case docmodel.PropertyKind:
		d.w.Start("para")
		d.w.Text("Reimplements an access function for property: ")
		d.generateFullNameAs(owner, owner.Name+"::"+overridden.Name, overridden)
		d.w.Text(".")
		d.w.End() // para
		d.newLine()
	}
}

// generateRequiredLinks links an example to its project
// or lists its files and images.
func (d *document) generateRequiredLinks(n *docmodel.Node) {
	ex, ok := n.Variant.(*docmodel.Example)
	if !ok {
		return
	}

	if urls := d.g.Config.ExampleURLs; urls != nil {
		if base, ok := urls.Lookup(n.Name); ok && base != "" {
			d.generateLinkToExample(n, base)
			return
		}
	}

	if !ex.NoAutoList {
		d.generateFileList(n, ex.Files, false)
		d.generateFileList(n, ex.Images, true)
	}
}

// _examplePlaceholder is replaced by the path of the example
// in example project URLs.
const _examplePlaceholder = `\1`

// generateLinkToExample links to the project of an example.
// The path to the example replaces a \1 placeholder in the base URL,
// or is appended to it if there isn't one.
func (d *document) generateLinkToExample(n *docmodel.Node, base string) {
	text := "Example project"
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		text += " @ " + u.Host
	}

	if !strings.Contains(base, _examplePlaceholder) {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		base += _examplePlaceholder
	}

	var parts []string
	for _, p := range []string{d.g.Config.ExamplesInstallPath, n.Name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	href := strings.ReplaceAll(base, _examplePlaceholder, strings.Join(parts, "/"))

	d.w.Start("para")
	d.simpleLink(href, text)
	d.w.End() // para
	d.newLine()
}

// generateFileList lists the files or images of an example.
// Each file gets a page of its own with its contents.
func (d *document) generateFileList(n *docmodel.Node, paths []string, images bool) {
	paths = slices.DeleteFunc(slices.Clone(paths), func(p string) bool { return p == "" })
	if len(paths) == 0 {
		return
	}
	slices.SortFunc(paths, comparePaths)

	tag := "Files:"
	if images {
		tag = "Images:"
	}
	d.w.TextElement("para", tag)
	d.newLine()

	d.w.Start("itemizedlist")
	d.newLine()
	for _, file := range paths {
		var href string
		if images {
			href = d.exampleImage(n, file)
		} else {
			href = d.db.ExampleFileName(n, file)
			d.fail(d.g.generateExampleFilePage(n, file))
		}

		d.w.Start("listitem")
		d.newLine()
		d.w.Start("para")
		d.simpleLink(href, file)
		d.w.End() // para
		d.newLine()
		d.w.End() // listitem
		d.newLine()
	}
	d.w.End() // itemizedlist
	d.newLine()
}

// exampleImage records an image used by an example
// and returns the path to link to it with.
func (d *document) exampleImage(n *docmodel.Node, file string) string {
	href := file
	if d.g.Images != nil {
		if p, ok := d.g.Images.ResolveImage(n, file); ok {
			href = p
		}
	}
	d.g.addImage(n, path.Base(file), href)
	return href
}

// comparePaths orders paths case-insensitively,
// falling back to a case-sensitive comparison for ties.
func comparePaths(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// generateAlsoList writes the "See also" list of n.
func (d *document) generateAlsoList(n *docmodel.Node) {
	if len(n.Doc.AlsoList) == 0 {
		return
	}

	d.w.Start("para")
	d.w.TextElement("emphasis", "See also ")
	d.newLine()
	d.w.Start("simplelist")
	d.w.Attr("type", "vert")
	d.w.Attr("role", "see-also")
	d.newLine()
	for _, text := range n.Doc.AlsoList {
		d.w.Start("member")
		d.generateText(text, n)
		d.w.End() // member
		d.newLine()
	}
	d.w.End() // simplelist
	d.newLine()
	d.w.End() // para
	d.newLine()
}

// generateMaintainerList lists the maintainers of n, if any.
func (d *document) generateMaintainerList(n *docmodel.Node) {
	maintainers := n.Doc.Metadata["maintainer"]
	if len(maintainers) == 0 {
		return
	}

	d.w.Start("para")
	d.w.TextElement("emphasis", "Maintained by: ")
	d.newLine()
	d.w.Start("simplelist")
	d.w.Attr("type", "vert")
	d.w.Attr("role", "maintainer")
	d.newLine()
	for _, m := range maintainers {
		d.w.TextElement("member", m)
		d.newLine()
	}
	d.w.End() // simplelist
	d.newLine()
	d.w.End() // para
	d.newLine()
}
