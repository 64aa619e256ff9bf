package docmodel

import (
	"fmt"

	"go.abhg.dev/docbookgen/internal/atom"
)

// ID identifies a node inside a [Tree].
// IDs are stable for the lifetime of the tree.
type ID int

// None is the ID of no node.
const None ID = 0

// Location is a position in the documentation sources.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	switch {
	case l.File == "":
		return "<unknown>"
	case l.Line > 0:
		return fmt.Sprintf("%v:%d", l.File, l.Line)
	default:
		return l.File
	}
}

// Doc is the parsed documentation attached to a node.
type Doc struct {
	Body     atom.Text
	Brief    atom.Text
	AlsoList []atom.Text

	// Legalese holds license text that must be reproduced
	// in the legalese listing.
	Legalese atom.Text

	// EnumItemNames lists the enum values described in the body.
	EnumItemNames []string
	// OmitEnumItemNames lists enum values that are documented as omitted.
	OmitEnumItemNames []string

	// Metadata maps metacommand names (e.g. "maintainer")
	// to their arguments.
	Metadata map[string][]string

	Location Location

	// MarkedReimp is set if the documentation explicitly
	// marks the function as a reimplementation.
	MarkedReimp bool
}

// IsEmpty reports whether the documentation has no text at all.
func (d *Doc) IsEmpty() bool {
	return d.Body.IsEmpty() && d.Brief.IsEmpty()
}

// NavLink is a navigation link between pages.
type NavLink struct {
	// Target names the linked node: a page name, title, or target.
	Target string
	// Text is the link text.
	Text string
}

// NavLinks are the previous, next, and start links of a page.
type NavLinks struct {
	Prev, Next, Start *NavLink
}

// IsEmpty reports whether there are no navigation links.
func (l NavLinks) IsEmpty() bool {
	return l.Prev == nil && l.Next == nil && l.Start == nil
}

// Node is a documented entity.
//
// Fields common to all entities live on the Node.
// Entity-specific data lives in Variant.
type Node struct {
	ID       ID
	Name     string
	Parent   ID
	Children []ID

	Access       Access
	Status       Status
	ThreadSafety ThreadSafety
	Since        string

	// Module is the physical module that declares this node.
	Module string
	// Groups lists the groups that this node is a member of.
	Groups []string

	Doc      Doc
	Location Location
	Nav      NavLinks

	// Targets are extra link targets defined inside the documentation.
	Targets []string

	// SharedComment is the shared-comment node
	// whose documentation this node uses, if any.
	SharedComment ID

	// URL is set for nodes documented elsewhere.
	// No page is generated for them.
	URL string

	Variant Variant
}

// Kind reports the kind of the node, derived from its variant.
func (n *Node) Kind() Kind {
	if n.Variant == nil {
		return UnknownKind
	}
	return n.Variant.kind()
}

// IsObsolete reports whether the node is obsolete.
func (n *Node) IsObsolete() bool { return n.Status == Obsolete }

// IsInternal reports whether the node is for internal use only.
func (n *Node) IsInternal() bool { return n.Status == Internal }

// IsPrivate reports whether the node has private access.
func (n *Node) IsPrivate() bool { return n.Access == Private }

// HasDoc reports whether the node has any documentation.
func (n *Node) HasDoc() bool { return !n.Doc.IsEmpty() }

// IsSharingComment reports whether the node shares its documentation
// with other nodes.
func (n *Node) IsSharingComment() bool { return n.SharedComment != None }

// IsAggregate reports whether the node groups members
// that are documented on the same page.
func (n *Node) IsAggregate() bool {
	switch n.Variant.(type) {
	case *Class, *Namespace, *QmlType, *QmlBasicType, *Proxy:
		return true
	default:
		return false
	}
}

// IsPageNode reports whether the node gets its own page.
func (n *Node) IsPageNode() bool {
	if n.IsAggregate() {
		return true
	}
	switch n.Variant.(type) {
	case *Page, *Example, *Collection:
		return true
	default:
		return false
	}
}

// IsCollection reports whether the node is a group or a module.
func (n *Node) IsCollection() bool {
	_, ok := n.Variant.(*Collection)
	return ok
}

// IsQmlNode reports whether the node belongs to the QML side
// of the documentation.
func (n *Node) IsQmlNode() bool {
	switch v := n.Variant.(type) {
	case *QmlType, *QmlBasicType, *QmlProperty:
		return true
	case *Function:
		return v.Meta == QmlSignal || v.Meta == QmlSignalHandler || v.Meta == QmlMethod
	case *Collection:
		return v.Type == QmlModule
	default:
		return false
	}
}

// Function returns the function variant of the node, or nil.
func (n *Node) Function() *Function {
	fn, _ := n.Variant.(*Function)
	return fn
}

// Kind classifies nodes.
type Kind int

// Node kinds.
const (
	UnknownKind Kind = iota
	ClassKind
	NamespaceKind
	FunctionKind
	EnumKind
	TypedefKind
	PropertyKind
	VariableKind
	QmlTypeKind
	QmlBasicTypeKind
	QmlPropertyKind
	PageKind
	ExampleKind
	GroupKind
	ModuleKind
	QmlModuleKind
	ProxyKind
	SharedCommentKind
)

var _kindNames = [...]string{
	UnknownKind:       "unknown",
	ClassKind:         "class",
	NamespaceKind:     "namespace",
	FunctionKind:      "function",
	EnumKind:          "enum",
	TypedefKind:       "typedef",
	PropertyKind:      "property",
	VariableKind:      "variable",
	QmlTypeKind:       "qmltype",
	QmlBasicTypeKind:  "qmlbasictype",
	QmlPropertyKind:   "qmlproperty",
	PageKind:          "page",
	ExampleKind:       "example",
	GroupKind:         "group",
	ModuleKind:        "module",
	QmlModuleKind:     "qmlmodule",
	ProxyKind:         "proxy",
	SharedCommentKind: "sharedcomment",
}

func (k Kind) String() string { return enumName(_kindNames[:], int(k), "Kind") }

// Variant holds the entity-specific data of a node.
//
// The set of variants is closed:
// only types in this package implement it.
type Variant interface {
	kind() Kind
}

// RelatedClass is a base or derived class of a class.
type RelatedClass struct {
	Node   ID
	Access Access
	// Signature is the name of the class as written in the source.
	// It is used when Node is None.
	Signature string
}

// Class is a C++ class, struct, or union.
type Class struct {
	Bases []RelatedClass
	// Derived is computed from the Bases of other classes.
	Derived []RelatedClass

	// Includes lists the headers to include to use this class.
	Includes []string

	// QmlElement is the QML type that instantiates this class.
	QmlElement ID

	Abstract bool
}

// Namespace is a C++ namespace.
type Namespace struct {
	Includes []string

	// DocNode is the namespace node that holds the full documentation
	// when this namespace is only partially declared in this module.
	DocNode ID
}

// Parameter is a function parameter.
type Parameter struct {
	Type    string
	Name    string
	Default string
}

// Function is a C++ function, a macro, or a QML method or signal.
type Function struct {
	Meta    FunctionMeta
	Virtual Virtualness

	Const     bool
	Static    bool
	Final     bool
	Override  bool
	Defaulted bool
	Ref       bool
	RefRef    bool
	Attached  bool

	Overload       bool
	OverloadNumber int

	ReturnType string
	Params     []Parameter

	// Overrides is the function or property this function reimplements.
	Overrides ID

	PrivateSignal    bool
	Invokable        bool
	RelatedNonMember bool

	// AssociatedProperties are the properties this function
	// is an accessor of.
	AssociatedProperties []ID

	// SignalHelper is example code that shows how to obtain a pointer
	// to an overloaded signal.
	SignalHelper string
}

// IsSignal reports whether the function is a C++ signal.
func (f *Function) IsSignal() bool { return f.Meta == Signal }

// EnumItem is a single value of an enum.
type EnumItem struct {
	Name  string
	Value string
}

// Enum is a C++ enum.
type Enum struct {
	Items []EnumItem

	// Flags is the QFlags typedef for this enum, if any.
	Flags ID
}

// ItemValue returns the value of the named item.
func (e *Enum) ItemValue(name string) (string, bool) {
	for _, it := range e.Items {
		if it.Name == name {
			return it.Value, true
		}
	}
	return "", false
}

// Typedef is a C++ typedef or type alias.
type Typedef struct {
	// AssociatedEnum is the enum whose flags this typedef holds.
	AssociatedEnum ID
}

// Property is a Qt property.
type Property struct {
	DataType string

	Getters   []ID
	Setters   []ID
	Resetters []ID
	Notifiers []ID
}

// Variable is a C++ variable.
type Variable struct {
	LeftType  string
	RightType string
	Static    bool
}

// DataType returns the full type of the variable.
func (v *Variable) DataType() string { return v.LeftType + v.RightType }

// QmlType is a QML or JavaScript type.
type QmlType struct {
	// LogicalModule is the name of the QML module that provides this type.
	LogicalModule string

	// Base is the QML type this type inherits from.
	Base ID

	// Class is the C++ class this type instantiates.
	Class ID

	JavaScript bool
}

// QmlBasicType is a QML value type.
type QmlBasicType struct {
	JavaScript bool
}

// QmlProperty is a property of a QML type.
type QmlProperty struct {
	DataType string
	Attached bool
	ReadOnly bool
	Default  bool
}

// Page is a free-standing documentation page.
type Page struct {
	Title    string
	Subtitle string

	// Attribution marks pages that credit third-party code.
	Attribution bool
	// NoAutoList suppresses the generated list of members.
	NoAutoList bool
}

// Example is an example project.
type Example struct {
	Title    string
	Subtitle string

	// Files are the source files of the example,
	// relative to the examples directory.
	Files []string
	// Images are the images of the example,
	// relative to the examples directory.
	Images []string

	// ProjectFile is the path of the project file,
	// relative to the examples directory.
	ProjectFile string

	// NoAutoList suppresses the lists of files and images.
	NoAutoList bool
}

// Collection is a group, a module, or a QML module.
type Collection struct {
	Type     CollectionType
	Title    string
	Subtitle string

	Members []ID

	// QtVariable is the qmake variable to use the module.
	QtVariable string
	// LogicalModuleVersion is the version of a QML module.
	LogicalModuleVersion string

	// Seen is set for collections that have documentation of their own.
	Seen bool
	// Generic marks a synthesized collection that holds entities
	// related to classes documented in a different module.
	Generic bool

	NoAutoList bool
}

// Proxy holds related non-members of a class documented in another module.
type Proxy struct{}

// SharedComment is a comment shared by several entities.
type SharedComment struct {
	// Collective lists the nodes documented by this comment.
	Collective []ID

	// PropertyGroup marks a QML property group.
	PropertyGroup bool
}

func (*Class) kind() Kind         { return ClassKind }
func (*Namespace) kind() Kind     { return NamespaceKind }
func (*Function) kind() Kind      { return FunctionKind }
func (*Enum) kind() Kind          { return EnumKind }
func (*Typedef) kind() Kind       { return TypedefKind }
func (*Property) kind() Kind      { return PropertyKind }
func (*Variable) kind() Kind      { return VariableKind }
func (*QmlType) kind() Kind       { return QmlTypeKind }
func (*QmlBasicType) kind() Kind  { return QmlBasicTypeKind }
func (*QmlProperty) kind() Kind   { return QmlPropertyKind }
func (*Page) kind() Kind          { return PageKind }
func (*Example) kind() Kind       { return ExampleKind }
func (*Proxy) kind() Kind         { return ProxyKind }
func (*SharedComment) kind() Kind { return SharedCommentKind }

func (c *Collection) kind() Kind {
	switch c.Type {
	case Module:
		return ModuleKind
	case QmlModule:
		return QmlModuleKind
	default:
		return GroupKind
	}
}
