package docbook

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.abhg.dev/docbookgen/internal/docmodel"
)

func TestCanonicalTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want string
	}{
		{give: "", want: ""},
		{give: "Thread Affinity", want: "thread-affinity"},
		{give: "  Leading spaces", want: "leading-spaces"},
		{give: "Qt 6.8!", want: "qt-6-8"},
		{give: "Signals & Slots", want: "signals-slots"},
		{give: "Café Society", want: "cafe-society"},
		{give: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, canonicalTitle(tt.give))
		})
	}
}

func TestComma(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		n    int
		want []string
	}{
		{desc: "one", n: 1, want: []string{""}},
		{desc: "two", n: 2, want: []string{" and ", ""}},
		{desc: "three", n: 3, want: []string{", ", ", and ", ""}},
		{desc: "four", n: 4, want: []string{", ", ", ", ", and ", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got := make([]string, tt.n)
			for i := range tt.n {
				got[i] = comma(i, tt.n)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegisterRef(t *testing.T) {
	t.Parallel()

	f := newTextFixture(t)
	d := f.generator(t).newDocument(io.Discard, f.object, "")

	assert.Equal(t, "details", d.registerRef("details"))
	assert.Equal(t, "details", d.registerRef("details"), "same reference")
	assert.Equal(t, "Detailsx", d.registerRef("Details"), "case-insensitive clash")
	assert.Equal(t, "dtor.QObject", d.registerRef("~QObject"))
	assert.Equal(t, "operator-eq-eq", d.registerRef("operator=="))
}

func TestHOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give *docmodel.Node
		want int
	}{
		{desc: "nil", want: 3},
		{desc: "class", give: &docmodel.Node{Variant: &docmodel.Class{}}, want: 2},
		{desc: "page", give: &docmodel.Node{Variant: &docmodel.Page{}}, want: 1},
		{desc: "function", give: &docmodel.Node{Variant: &docmodel.Function{}}, want: 3},
		{
			desc: "module",
			give: &docmodel.Node{Variant: &docmodel.Collection{Type: docmodel.Module}},
			want: 2,
		},
		{
			desc: "group",
			give: &docmodel.Node{Variant: &docmodel.Collection{Type: docmodel.Group}},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, hOffset(tt.give))
		})
	}
}

func TestTypeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give docmodel.Variant
		want string
	}{
		{desc: "class", give: &docmodel.Class{}, want: "class"},
		{desc: "slot", give: &docmodel.Function{Meta: docmodel.Slot}, want: "slot"},
		{desc: "macro", give: &docmodel.Function{Meta: docmodel.MacroWithParams}, want: "macro"},
		{desc: "qml method", give: &docmodel.Function{Meta: docmodel.QmlMethod}, want: "method"},
		{desc: "qml type", give: &docmodel.QmlType{}, want: "type"},
		{desc: "property group", give: &docmodel.SharedComment{PropertyGroup: true}, want: "property group"},
		{desc: "page", give: &docmodel.Page{}, want: "documentation"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, typeString(&docmodel.Node{Variant: tt.give}))
		})
	}
}
