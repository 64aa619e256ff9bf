// Package modelfile loads a documentation model from a YAML file.
//
// A model file lists entities under a top-level nodes key.
// Every entity has a unique key that other entities use to refer to it.
// An entity's parent must be listed before the entity itself,
// but all other references may point forward.
//
//	nodes:
//	  - key: QObject
//	    name: QObject
//	    module: QtCore
//	    class:
//	      includes: [QObject]
//	    doc:
//	      brief: [[String, "The base class of all Qt objects."]]
//	  - key: QObject::deleteLater
//	    parent: QObject
//	    name: deleteLater
//	    function:
//	      meta: slot
//	      return_type: void
package modelfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"braces.dev/errtrace"
	"go.abhg.dev/docbookgen/internal/docmodel"
	"go.abhg.dev/docbookgen/internal/errdefer"
	"gopkg.in/yaml.v3"
)

// LoadFile loads the model file at the given path.
func LoadFile(path string) (_ *docmodel.Tree, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	tree, err := Load(f)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%v: %w", path, err))
	}
	return tree, nil
}

// Load decodes a model file from r into a finished tree.
//
// Unknown fields and dangling references are errors.
func Load(r io.Reader) (*docmodel.Tree, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return docmodel.NewTree(), nil
		}
		return nil, errtrace.Wrap(fmt.Errorf("decode: %w", err))
	}

	b := builder{
		tree: docmodel.NewTree(),
		ids:  make(map[string]docmodel.ID, len(f.Nodes)),
	}
	if err := b.build(f.Nodes); err != nil {
		return nil, errtrace.Wrap(err)
	}
	b.tree.Finish()
	return b.tree, nil
}

type builder struct {
	tree *docmodel.Tree
	ids  map[string]docmodel.ID // key -> ID
}

// build adds all nodes to the tree in two passes:
// the first creates the nodes and the second resolves references.
func (b *builder) build(specs []*nodeSpec) error {
	for i, spec := range specs {
		if spec == nil {
			return fmt.Errorf("node %d: empty entry", i)
		}
		if err := b.add(spec); err != nil {
			return fmt.Errorf("node %d (%q): %w", i, spec.Key, err)
		}
	}

	var errs []error
	for _, spec := range specs {
		if err := b.link(spec); err != nil {
			errs = append(errs, fmt.Errorf("node %q: %w", spec.Key, err))
		}
	}
	return errors.Join(errs...)
}

func (b *builder) add(spec *nodeSpec) error {
	if spec.Key == "" {
		return errors.New("key is required")
	}
	if _, ok := b.ids[spec.Key]; ok {
		return errors.New("duplicate key")
	}

	var parent docmodel.ID
	if spec.Parent != "" {
		id, ok := b.ids[spec.Parent]
		if !ok {
			return fmt.Errorf("parent %q must be listed before its children", spec.Parent)
		}
		parent = id
	}

	variant, err := spec.variant()
	if err != nil {
		return err
	}

	n := &docmodel.Node{
		Name:         spec.Name,
		Access:       spec.Access,
		Status:       spec.Status,
		ThreadSafety: spec.ThreadSafety,
		Since:        spec.Since,
		Module:       spec.Module,
		Groups:       spec.Groups,
		Doc:          spec.Doc.build(),
		Location:     spec.Location.build(),
		Nav: docmodel.NavLinks{
			Prev:  spec.Nav.Prev.build(),
			Next:  spec.Nav.Next.build(),
			Start: spec.Nav.Start.build(),
		},
		Targets: spec.Targets,
		URL:     spec.URL,
		Variant: variant,
	}
	b.ids[spec.Key] = b.tree.Add(parent, n)
	return nil
}

// variant builds the variant of the node without references.
// References are filled in by link.
func (spec *nodeSpec) variant() (docmodel.Variant, error) {
	var (
		variants []docmodel.Variant
		names    []string
	)
	set := func(name string, ok bool, v docmodel.Variant) {
		if ok {
			variants = append(variants, v)
			names = append(names, name)
		}
	}

	if c := spec.Class; c != nil {
		set("class", true, &docmodel.Class{
			Includes: c.Includes,
			Abstract: c.Abstract,
		})
	}
	if ns := spec.Namespace; ns != nil {
		set("namespace", true, &docmodel.Namespace{Includes: ns.Includes})
	}
	if fn := spec.Function; fn != nil {
		params := make([]docmodel.Parameter, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = docmodel.Parameter{Type: p.Type, Name: p.Name, Default: p.Default}
		}
		set("function", true, &docmodel.Function{
			Meta:             fn.Meta,
			Virtual:          fn.Virtual,
			Const:            fn.Const,
			Static:           fn.Static,
			Final:            fn.Final,
			Override:         fn.Override,
			Defaulted:        fn.Defaulted,
			Ref:              fn.Ref,
			RefRef:           fn.RefRef,
			Attached:         fn.Attached,
			Overload:         fn.Overload,
			OverloadNumber:   fn.OverloadNumber,
			ReturnType:       fn.ReturnType,
			Params:           params,
			PrivateSignal:    fn.PrivateSignal,
			Invokable:        fn.Invokable,
			RelatedNonMember: fn.RelatedNonMember,
			SignalHelper:     fn.SignalHelper,
		})
	}
	if e := spec.Enum; e != nil {
		items := make([]docmodel.EnumItem, len(e.Items))
		for i, it := range e.Items {
			items[i] = docmodel.EnumItem{Name: it.Name, Value: it.Value}
		}
		set("enum", true, &docmodel.Enum{Items: items})
	}
	set("typedef", spec.Typedef != nil, &docmodel.Typedef{})
	if p := spec.Property; p != nil {
		set("property", true, &docmodel.Property{DataType: p.DataType})
	}
	if v := spec.Variable; v != nil {
		set("variable", true, &docmodel.Variable{
			LeftType:  v.LeftType,
			RightType: v.RightType,
			Static:    v.Static,
		})
	}
	if qt := spec.QmlType; qt != nil {
		set("qml_type", true, &docmodel.QmlType{
			LogicalModule: qt.LogicalModule,
			JavaScript:    qt.JavaScript,
		})
	}
	if bt := spec.QmlBasicType; bt != nil {
		set("qml_basic_type", true, &docmodel.QmlBasicType{JavaScript: bt.JavaScript})
	}
	if qp := spec.QmlProperty; qp != nil {
		set("qml_property", true, &docmodel.QmlProperty{
			DataType: qp.DataType,
			Attached: qp.Attached,
			ReadOnly: qp.ReadOnly,
			Default:  qp.Default,
		})
	}
	if p := spec.Page; p != nil {
		set("page", true, &docmodel.Page{
			Title:       p.Title,
			Subtitle:    p.Subtitle,
			Attribution: p.Attribution,
			NoAutoList:  p.NoAutoList,
		})
	}
	if ex := spec.Example; ex != nil {
		set("example", true, &docmodel.Example{
			Title:       ex.Title,
			Subtitle:    ex.Subtitle,
			Files:       ex.Files,
			Images:      ex.Images,
			ProjectFile: ex.ProjectFile,
			NoAutoList:  ex.NoAutoList,
		})
	}
	if c := spec.Collection; c != nil {
		set("collection", true, &docmodel.Collection{
			Type:                 c.Type,
			Title:                c.Title,
			Subtitle:             c.Subtitle,
			QtVariable:           c.QtVariable,
			LogicalModuleVersion: c.LogicalModuleVersion,
			Seen:                 c.Seen,
			Generic:              c.Generic,
			NoAutoList:           c.NoAutoList,
		})
	}
	set("proxy", spec.Proxy != nil, &docmodel.Proxy{})
	if sc := spec.CommentShared; sc != nil {
		set("shared", true, &docmodel.SharedComment{PropertyGroup: sc.PropertyGroup})
	}

	switch len(variants) {
	case 0:
		return nil, errors.New("no entity kind set")
	case 1:
		return variants[0], nil
	default:
		return nil, fmt.Errorf("more than one entity kind set: %q", names)
	}
}

// link resolves the references of a node that was added earlier.
func (b *builder) link(spec *nodeSpec) error {
	n := b.tree.Node(b.ids[spec.Key])

	var errs []error
	ref := func(field, key string) docmodel.ID {
		if key == "" {
			return docmodel.None
		}
		id, ok := b.ids[key]
		if !ok {
			errs = append(errs, fmt.Errorf("%v: unknown key %q", field, key))
		}
		return id
	}
	refs := func(field string, keys []string) []docmodel.ID {
		if len(keys) == 0 {
			return nil
		}
		ids := make([]docmodel.ID, 0, len(keys))
		for _, key := range keys {
			if id := ref(field, key); id != docmodel.None {
				ids = append(ids, id)
			}
		}
		return ids
	}

	n.SharedComment = ref("shared_comment", spec.SharedComment)

	switch v := n.Variant.(type) {
	case *docmodel.Class:
		for _, base := range spec.Class.Bases {
			v.Bases = append(v.Bases, docmodel.RelatedClass{
				Node:      ref("bases", base.Node),
				Access:    base.Access,
				Signature: base.Signature,
			})
		}
		v.QmlElement = ref("qml_element", spec.Class.QmlElement)
	case *docmodel.Namespace:
		v.DocNode = ref("doc_node", spec.Namespace.DocNode)
	case *docmodel.Function:
		v.Overrides = ref("overrides", spec.Function.Overrides)
		v.AssociatedProperties = refs("associated_properties", spec.Function.AssociatedProperties)
	case *docmodel.Enum:
		v.Flags = ref("flags", spec.Enum.Flags)
	case *docmodel.Typedef:
		v.AssociatedEnum = ref("associated_enum", spec.Typedef.AssociatedEnum)
	case *docmodel.Property:
		v.Getters = refs("getters", spec.Property.Getters)
		v.Setters = refs("setters", spec.Property.Setters)
		v.Resetters = refs("resetters", spec.Property.Resetters)
		v.Notifiers = refs("notifiers", spec.Property.Notifiers)
	case *docmodel.QmlType:
		v.Base = ref("base", spec.QmlType.Base)
		v.Class = ref("class", spec.QmlType.Class)
	case *docmodel.Collection:
		v.Members = refs("members", spec.Collection.Members)
	case *docmodel.SharedComment:
		v.Collective = refs("collective", spec.CommentShared.Collective)
	}

	return errors.Join(errs...)
}
