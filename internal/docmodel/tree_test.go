package docmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/docbookgen/internal/atom"
)

// sampleTree builds a small tree:
//
//	QtCore (module)
//	QObject (class)
//	QString (class, inherits QObject)
//	  QString::arg()       overload 0
//	  QString::arg()       overload 1
//	  QString::SplitBehavior (enum)
//	  QString::size (property)
//	QtQuick (qml module)
//	Item (qml type)
//	Rectangle (qml type, inherits Item)
type sampleTree struct {
	*Tree

	object, str, arg, arg2, enum, size, item, rect *Node
}

func newSampleTree(t *testing.T) *sampleTree {
	t.Helper()

	tree := NewTree()
	add := func(parent ID, n *Node) *Node {
		tree.Add(parent, n)
		return n
	}

	add(None, &Node{Name: "QtCore", Variant: &Collection{Type: Module, Title: "Qt Core"}})
	object := add(None, &Node{
		Name:    "QObject",
		Module:  "QtCore",
		Doc:     Doc{Brief: atom.NewText(atom.New(atom.String, "The base object"))},
		Variant: &Class{},
	})
	str := add(None, &Node{
		Name:    "QString",
		Module:  "QtCore",
		Targets: []string{"string formatting"},
		Doc:     Doc{Legalese: atom.NewText(atom.New(atom.String, "MIT"))},
		Variant: &Class{
			Bases: []RelatedClass{{Node: object.ID, Access: Public}},
		},
	})
	arg := add(str.ID, &Node{Name: "arg", Variant: &Function{
		ReturnType: "QString",
		Const:      true,
		Params:     []Parameter{{Type: "int", Name: "a"}, {Type: "int", Name: "fieldWidth", Default: "0"}},
	}})
	arg2 := add(str.ID, &Node{Name: "arg", Variant: &Function{
		ReturnType:     "QString",
		OverloadNumber: 1,
		Params:         []Parameter{{Type: "const QString &", Name: "a"}},
	}})
	enum := add(str.ID, &Node{Name: "SplitBehavior", Variant: &Enum{
		Items: []EnumItem{{Name: "KeepEmptyParts", Value: "0"}},
	}})
	size := add(str.ID, &Node{Name: "size", Variant: &Property{DataType: "int"}})

	add(None, &Node{Name: "QtQuick", Variant: &Collection{Type: QmlModule, LogicalModuleVersion: "2.15"}})
	item := add(None, &Node{Name: "Item", Variant: &QmlType{LogicalModule: "QtQuick"}})
	rect := add(None, &Node{Name: "Rectangle", Variant: &QmlType{LogicalModule: "QtQuick", Base: item.ID}})

	tree.Finish()
	return &sampleTree{
		Tree:   tree,
		object: object,
		str:    str,
		arg:    arg,
		arg2:   arg2,
		enum:   enum,
		size:   size,
		item:   item,
		rect:   rect,
	}
}

func TestTree_Add(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	id := tree.Add(None, &Node{Name: "Foo", Variant: &Class{}})
	child := tree.Add(id, &Node{Name: "bar", Variant: &Function{}})

	foo := tree.Node(id)
	require.NotNil(t, foo)
	assert.Equal(t, tree.Root().ID, foo.Parent)
	assert.Equal(t, []ID{child}, foo.Children)
	assert.Equal(t, foo, tree.Parent(tree.Node(child)))
	assert.Nil(t, tree.Node(None))
	assert.Nil(t, tree.Node(ID(100)))
	assert.Equal(t, 3, tree.Len())
}

func TestTree_Names(t *testing.T) {
	t.Parallel()

	tree := newSampleTree(t)

	assert.Equal(t, "arg()", tree.PlainName(tree.arg))
	assert.Equal(t, "QString::arg()", tree.PlainFullName(tree.arg, nil))
	assert.Equal(t, "arg()", tree.PlainFullName(tree.arg, tree.str))
	assert.Equal(t, "QString", tree.FullName(tree.str, nil))
	assert.Equal(t, "global", tree.PlainFullName(tree.Root(), nil))

	module := tree.Collection("QtCore", Module)
	require.NotNil(t, module)
	assert.Equal(t, "Qt Core", tree.FullName(module, nil))
	assert.Equal(t, "Qt Core", tree.FullTitle(module))
	assert.Equal(t, "QString", tree.FullTitle(tree.str))
}

func TestTree_Signature(t *testing.T) {
	t.Parallel()

	tree := newSampleTree(t)

	tests := []struct {
		desc         string
		node         *Node
		values       bool
		noReturnType bool
		want         string
	}{
		{
			desc: "full",
			node: tree.arg,
			want: "QString arg(int a, int fieldWidth) const",
		},
		{
			desc:   "values",
			node:   tree.arg,
			values: true,
			want:   "QString arg(int a, int fieldWidth = 0) const",
		},
		{
			desc:         "no return type",
			node:         tree.arg2,
			noReturnType: true,
			want:         "arg(const QString &a)",
		},
		{
			desc: "not a function",
			node: tree.size,
			want: "size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tree.Signature(tt.node, tt.values, tt.noReturnType))
		})
	}
}

func TestTree_Derived(t *testing.T) {
	t.Parallel()

	tree := newSampleTree(t)
	obj := tree.object.Variant.(*Class)
	require.Len(t, obj.Derived, 1)
	assert.Equal(t, tree.str.ID, obj.Derived[0].Node)

	// Finish is idempotent.
	tree.Finish()
	assert.Len(t, obj.Derived, 1)
}

func TestTree_Lists(t *testing.T) {
	t.Parallel()

	tree := newSampleTree(t)

	assert.Equal(t, []*Node{tree.object, tree.str}, tree.CppClasses())
	assert.Equal(t, []*Node{tree.item, tree.rect}, tree.QmlTypes())
	assert.Equal(t, []*Node{tree.rect}, tree.QmlSubtypes(tree.item))
	assert.Empty(t, tree.ObsoleteClasses())

	idx := tree.FunctionIndex()
	require.Len(t, idx, 1)
	assert.Equal(t, "arg", idx[0].Name)
	assert.Equal(t, []*Node{tree.arg}, idx[0].Functions)

	legalese := tree.LegaleseTexts()
	require.Len(t, legalese, 1)
	assert.Equal(t, "MIT", legalese[0].Text.PlainText())
	assert.Equal(t, []*Node{tree.str}, legalese[0].Nodes)

	assert.Equal(t, "2.15", tree.LogicalModuleVersion(tree.rect))
}

func TestTree_Obsolete(t *testing.T) {
	t.Parallel()

	tree := newSampleTree(t)
	tree.arg2.Status = Obsolete
	old := tree.Node(tree.Add(None, &Node{Name: "QOld", Status: Obsolete, Variant: &Class{}}))
	tree.Finish()

	assert.Equal(t, []*Node{old}, tree.ObsoleteClasses())
	assert.Equal(t, []*Node{tree.str}, tree.ClassesWithObsoleteMembers())
	assert.NotContains(t, tree.CppClasses(), old)
}

func TestTree_Anchor(t *testing.T) {
	t.Parallel()

	tree := newSampleTree(t)

	assert.Equal(t, "arg", tree.Anchor(tree.arg))
	assert.Equal(t, "arg-1", tree.Anchor(tree.arg2))
	assert.Equal(t, "SplitBehavior-enum", tree.Anchor(tree.enum))
	assert.Equal(t, "size-prop", tree.Anchor(tree.size))
	assert.Empty(t, tree.Anchor(tree.str))
}

func TestTree_FileName(t *testing.T) {
	t.Parallel()

	tree := newSampleTree(t)

	assert.Equal(t, "qstring.xml", tree.FileName(tree.str))
	assert.Equal(t, "qstring.xml", tree.FileName(tree.arg))
	assert.Equal(t, "qml-qtquick-rectangle.xml", tree.FileName(tree.rect))
	assert.Equal(t, "qtcore-module.xml", tree.FileName(tree.Collection("QtCore", Module)))
	assert.Equal(t, "qtquick-qmlmodule.xml", tree.FileName(tree.Collection("QtQuick", QmlModule)))
	assert.Equal(t, "", tree.OutputDir(tree.str))
	assert.Equal(t, "qstring.xml", tree.Path(tree.str))

	tree.OutputSubdirs = true
	assert.Equal(t, "qtcore", tree.OutputDir(tree.arg))
	assert.Equal(t, "qtcore/qstring.xml", tree.Path(tree.arg))

	ex := tree.Node(tree.Add(None, &Node{Name: "widgets/analogclock", Variant: &Example{}}))
	assert.Equal(t, "widgets-analogclock-example.xml", tree.FileName(ex))
	assert.Equal(t, "widgets-analogclock-main-cpp.xml", tree.ExampleFileName(ex, "main.cpp"))

	page := tree.Node(tree.Add(None, &Node{Name: "overview.html", Variant: &Page{Title: "Overview"}}))
	assert.Equal(t, "overview.xml", tree.FileName(page))
}

func TestTree_ResolveLink(t *testing.T) {
	t.Parallel()

	tree := newSampleTree(t)

	tests := []struct {
		desc       string
		give       string
		relative   *Node
		want       *Node
		wantTarget string
	}{
		{desc: "class", give: "QString", want: tree.str},
		{desc: "qualified function", give: "QString::arg()", want: tree.arg},
		{desc: "member in scope", give: "size", relative: tree.arg, want: tree.size},
		{desc: "function in scope", give: "arg()", relative: tree.size, want: tree.arg},
		{desc: "target", give: "string formatting", want: tree.str, wantTarget: "string formatting"},
		{desc: "title", give: "Qt Core", want: tree.Collection("QtCore", Module)},
		{desc: "unknown", give: "QWidget"},
		{desc: "empty", give: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, target := tree.ResolveLink(tt.give, tt.relative)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}

func TestTree_FindTypeNode(t *testing.T) {
	t.Parallel()

	tree := newSampleTree(t)

	assert.Equal(t, tree.enum, tree.FindTypeNode("SplitBehavior", tree.arg))
	assert.Equal(t, tree.enum, tree.FindTypeNode("QString::SplitBehavior", nil))
	assert.Nil(t, tree.FindTypeNode("arg", tree.str), "functions are not types")
	assert.Equal(t, tree.object, tree.FindClass("QObject"))
}

func TestTree_ThreadSafety(t *testing.T) {
	t.Parallel()

	tree := newSampleTree(t)
	tree.str.ThreadSafety = Reentrant
	tree.arg2.ThreadSafety = ThreadSafe

	assert.Equal(t, Reentrant, tree.ThreadSafety(tree.arg))
	assert.Equal(t, ThreadSafe, tree.ThreadSafety(tree.arg2))
	assert.Equal(t, UnspecifiedThreadSafety, tree.ThreadSafety(tree.object))
}

func TestCleanRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want string
	}{
		{"", ""},
		{"details", "details"},
		{"~QString", "dtor.QString"},
		{"_private", "underscore.private"},
		{"operator==", "operator-eq-eq"},
		{"operator<<", "operator-lt-lt"},
		{"a b", "a-b"},
		{"-x", "Ax"},
		{"a+b", "a-2bb"},
		{"QString::arg", "QString::arg"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, CleanRef(tt.give))
		})
	}
}

func TestEnums_UnmarshalText(t *testing.T) {
	t.Parallel()

	var s Status
	require.NoError(t, s.UnmarshalText([]byte("obsolete")))
	assert.Equal(t, Obsolete, s)

	var ts ThreadSafety
	require.NoError(t, ts.UnmarshalText([]byte("thread-safe")))
	assert.Equal(t, ThreadSafe, ts)

	var a Access
	err := a.UnmarshalText([]byte("friend"))
	assert.ErrorContains(t, err, `unknown access "friend"`)

	assert.Equal(t, "Status(42)", Status(42).String())
}
