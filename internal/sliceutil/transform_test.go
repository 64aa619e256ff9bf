package sliceutil

import (
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string
		fn   func(string) string
		want []string
	}{
		{
			desc: "empty",
			fn:   path.Clean,
		},
		{
			desc: "image directories",
			give: []string{"doc/images/", "./snippets//images"},
			fn:   path.Clean,
			want: []string{"doc/images", "snippets/images"},
		},
		{
			desc: "module directories",
			give: []string{"QtCore", "QtGui"},
			fn:   strings.ToLower,
			want: []string{"qtcore", "qtgui"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got := Transform(tt.give, tt.fn)
			assert.Equal(t, tt.want, got)
		})
	}
}
