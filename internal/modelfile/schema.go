package modelfile

import (
	"fmt"

	"go.abhg.dev/docbookgen/internal/atom"
	"go.abhg.dev/docbookgen/internal/docmodel"
	"gopkg.in/yaml.v3"
)

// file is the top-level document of a model file.
type file struct {
	Nodes []*nodeSpec `yaml:"nodes"`
}

// nodeSpec is a single entity in a model file.
//
// References to other entities use their keys.
// Exactly one of the variant fields must be set.
type nodeSpec struct {
	Key    string `yaml:"key"`
	Parent string `yaml:"parent,omitempty"`
	Name   string `yaml:"name"`

	Access       docmodel.Access       `yaml:"access,omitempty"`
	Status       docmodel.Status       `yaml:"status,omitempty"`
	ThreadSafety docmodel.ThreadSafety `yaml:"thread_safety,omitempty"`
	Since        string                `yaml:"since,omitempty"`
	Module       string                `yaml:"module,omitempty"`
	Groups       []string              `yaml:"groups,omitempty"`
	Location     locationSpec          `yaml:"location,omitempty"`
	Nav          navSpec               `yaml:"nav,omitempty"`
	Targets      []string              `yaml:"targets,omitempty"`
	URL          string                `yaml:"url,omitempty"`

	// SharedComment is the key of the shared comment
	// that documents this node.
	SharedComment string `yaml:"shared_comment,omitempty"`

	Doc docSpec `yaml:"doc,omitempty"`

	Class         *classSpec         `yaml:"class,omitempty"`
	Namespace     *namespaceSpec     `yaml:"namespace,omitempty"`
	Function      *functionSpec      `yaml:"function,omitempty"`
	Enum          *enumSpec          `yaml:"enum,omitempty"`
	Typedef       *typedefSpec       `yaml:"typedef,omitempty"`
	Property      *propertySpec      `yaml:"property,omitempty"`
	Variable      *variableSpec      `yaml:"variable,omitempty"`
	QmlType       *qmlTypeSpec       `yaml:"qml_type,omitempty"`
	QmlBasicType  *qmlBasicTypeSpec  `yaml:"qml_basic_type,omitempty"`
	QmlProperty   *qmlPropertySpec   `yaml:"qml_property,omitempty"`
	Page          *pageSpec          `yaml:"page,omitempty"`
	Example       *exampleSpec       `yaml:"example,omitempty"`
	Collection    *collectionSpec    `yaml:"collection,omitempty"`
	Proxy         *proxySpec         `yaml:"proxy,omitempty"`
	CommentShared *sharedCommentSpec `yaml:"shared,omitempty"`
}

type locationSpec struct {
	File string `yaml:"file"`
	Line int    `yaml:"line,omitempty"`
}

func (l locationSpec) build() docmodel.Location {
	return docmodel.Location{File: l.File, Line: l.Line}
}

type navLinkSpec struct {
	Target string `yaml:"target"`
	Text   string `yaml:"text"`
}

func (l *navLinkSpec) build() *docmodel.NavLink {
	if l == nil {
		return nil
	}
	return &docmodel.NavLink{Target: l.Target, Text: l.Text}
}

type navSpec struct {
	Prev  *navLinkSpec `yaml:"prev,omitempty"`
	Next  *navLinkSpec `yaml:"next,omitempty"`
	Start *navLinkSpec `yaml:"start,omitempty"`
}

type docSpec struct {
	Brief             text                `yaml:"brief,omitempty"`
	Body              text                `yaml:"body,omitempty"`
	Also              []text              `yaml:"also,omitempty"`
	Legalese          text                `yaml:"legalese,omitempty"`
	EnumItemNames     []string            `yaml:"enum_item_names,omitempty"`
	OmitEnumItemNames []string            `yaml:"omit_enum_item_names,omitempty"`
	Metadata          map[string][]string `yaml:"metadata,omitempty"`
	Location          locationSpec        `yaml:"location,omitempty"`
	MarkedReimp       bool                `yaml:"marked_reimp,omitempty"`
}

func (d *docSpec) build() docmodel.Doc {
	also := make([]atom.Text, len(d.Also))
	for i, t := range d.Also {
		also[i] = t.Text
	}
	return docmodel.Doc{
		Body:              d.Body.Text,
		Brief:             d.Brief.Text,
		AlsoList:          also,
		Legalese:          d.Legalese.Text,
		EnumItemNames:     d.EnumItemNames,
		OmitEnumItemNames: d.OmitEnumItemNames,
		Metadata:          d.Metadata,
		Location:          d.Location.build(),
		MarkedReimp:       d.MarkedReimp,
	}
}

// text is an atom stream written as a sequence of atoms.
// Each atom is a sequence holding the kind name and its payload strings:
//
//	- [ParaLeft]
//	- [String, "Hello, "]
//	- [Link, "QObject", "the base class"]
//	- [ParaRight]
type text struct{ atom.Text }

var _ yaml.Unmarshaler = (*text)(nil)

func (t *text) UnmarshalYAML(value *yaml.Node) error {
	var atoms [][]string
	if err := value.Decode(&atoms); err != nil {
		return err
	}

	var out atom.Text
	for i, a := range atoms {
		if len(a) == 0 {
			return fmt.Errorf("line %d: atom %d is empty", value.Line, i)
		}
		kind, err := atom.ParseKind(a[0])
		if err != nil {
			return fmt.Errorf("line %d: atom %d: %w", value.Line, i, err)
		}
		out.Append(kind, a[1:]...)
	}
	t.Text = out
	return nil
}

type relatedClassSpec struct {
	Node      string          `yaml:"node,omitempty"`
	Access    docmodel.Access `yaml:"access,omitempty"`
	Signature string          `yaml:"signature,omitempty"`
}

type classSpec struct {
	Bases      []relatedClassSpec `yaml:"bases,omitempty"`
	Includes   []string           `yaml:"includes,omitempty"`
	QmlElement string             `yaml:"qml_element,omitempty"`
	Abstract   bool               `yaml:"abstract,omitempty"`
}

type namespaceSpec struct {
	Includes []string `yaml:"includes,omitempty"`
	DocNode  string   `yaml:"doc_node,omitempty"`
}

type parameterSpec struct {
	Type    string `yaml:"type"`
	Name    string `yaml:"name,omitempty"`
	Default string `yaml:"default,omitempty"`
}

type functionSpec struct {
	Meta    docmodel.FunctionMeta `yaml:"meta,omitempty"`
	Virtual docmodel.Virtualness  `yaml:"virtual,omitempty"`

	Const     bool `yaml:"const,omitempty"`
	Static    bool `yaml:"static,omitempty"`
	Final     bool `yaml:"final,omitempty"`
	Override  bool `yaml:"override,omitempty"`
	Defaulted bool `yaml:"defaulted,omitempty"`
	Ref       bool `yaml:"ref,omitempty"`
	RefRef    bool `yaml:"refref,omitempty"`
	Attached  bool `yaml:"attached,omitempty"`

	Overload       bool `yaml:"overload,omitempty"`
	OverloadNumber int  `yaml:"overload_number,omitempty"`

	ReturnType string          `yaml:"return_type,omitempty"`
	Params     []parameterSpec `yaml:"params,omitempty"`
	Overrides  string          `yaml:"overrides,omitempty"`

	PrivateSignal        bool     `yaml:"private_signal,omitempty"`
	Invokable            bool     `yaml:"invokable,omitempty"`
	RelatedNonMember     bool     `yaml:"related_non_member,omitempty"`
	AssociatedProperties []string `yaml:"associated_properties,omitempty"`
	SignalHelper         string   `yaml:"signal_helper,omitempty"`
}

type enumItemSpec struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type enumSpec struct {
	Items []enumItemSpec `yaml:"items,omitempty"`
	Flags string         `yaml:"flags,omitempty"`
}

type typedefSpec struct {
	AssociatedEnum string `yaml:"associated_enum,omitempty"`
}

type propertySpec struct {
	DataType  string   `yaml:"data_type"`
	Getters   []string `yaml:"getters,omitempty"`
	Setters   []string `yaml:"setters,omitempty"`
	Resetters []string `yaml:"resetters,omitempty"`
	Notifiers []string `yaml:"notifiers,omitempty"`
}

type variableSpec struct {
	LeftType  string `yaml:"left_type"`
	RightType string `yaml:"right_type,omitempty"`
	Static    bool   `yaml:"static,omitempty"`
}

type qmlTypeSpec struct {
	LogicalModule string `yaml:"logical_module,omitempty"`
	Base          string `yaml:"base,omitempty"`
	Class         string `yaml:"class,omitempty"`
	JavaScript    bool   `yaml:"javascript,omitempty"`
}

type qmlBasicTypeSpec struct {
	JavaScript bool `yaml:"javascript,omitempty"`
}

type qmlPropertySpec struct {
	DataType string `yaml:"data_type"`
	Attached bool   `yaml:"attached,omitempty"`
	ReadOnly bool   `yaml:"read_only,omitempty"`
	Default  bool   `yaml:"default,omitempty"`
}

type pageSpec struct {
	Title       string `yaml:"title,omitempty"`
	Subtitle    string `yaml:"subtitle,omitempty"`
	Attribution bool   `yaml:"attribution,omitempty"`
	NoAutoList  bool   `yaml:"no_auto_list,omitempty"`
}

type exampleSpec struct {
	Title       string   `yaml:"title,omitempty"`
	Subtitle    string   `yaml:"subtitle,omitempty"`
	Files       []string `yaml:"files,omitempty"`
	Images      []string `yaml:"images,omitempty"`
	ProjectFile string   `yaml:"project_file,omitempty"`
	NoAutoList  bool     `yaml:"no_auto_list,omitempty"`
}

type collectionSpec struct {
	Type                 docmodel.CollectionType `yaml:"type,omitempty"`
	Title                string                  `yaml:"title,omitempty"`
	Subtitle             string                  `yaml:"subtitle,omitempty"`
	Members              []string                `yaml:"members,omitempty"`
	QtVariable           string                  `yaml:"qt_variable,omitempty"`
	LogicalModuleVersion string                  `yaml:"logical_module_version,omitempty"`
	Seen                 bool                    `yaml:"seen,omitempty"`
	Generic              bool                    `yaml:"generic,omitempty"`
	NoAutoList           bool                    `yaml:"no_auto_list,omitempty"`
}

type proxySpec struct{}

type sharedCommentSpec struct {
	Collective    []string `yaml:"collective,omitempty"`
	PropertyGroup bool     `yaml:"property_group,omitempty"`
}
