package relative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		src  string
		dst  string
		want string
	}{
		{
			desc: "same directory",
			src:  "",
			dst:  "qobject.xml",
			want: "qobject.xml",
		},
		{
			desc: "into module directory",
			src:  "",
			dst:  "qtcore/qobject.xml",
			want: "qtcore/qobject.xml",
		},
		{
			desc: "out of module directory",
			src:  "qtcore",
			dst:  "overview.xml",
			want: "../overview.xml",
		},
		{
			desc: "between module directories",
			src:  "qtcore",
			dst:  "qtwidgets/qwidget.xml",
			want: "../qtwidgets/qwidget.xml",
		},
		{
			desc: "within module directory",
			src:  "qtcore",
			dst:  "qtcore/qstring.xml",
			want: "qstring.xml",
		},
		{
			desc: "images from nested directory",
			src:  "qtquick/controls",
			dst:  "images/logo.png",
			want: "../../images/logo.png",
		},
		{
			desc: "absolute",
			src:  "/out/qtcore",
			dst:  "/out/images/logo.png",
			want: "../images/logo.png",
		},
		{
			desc: "trailing slash src",
			src:  "qtcore/",
			dst:  "qtgui/qimage.xml",
			want: "../qtgui/qimage.xml",
		},
		{
			desc: "root",
			src:  "qtquick/controls",
			dst:  "",
			want: "../..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Path(tt.src, tt.dst))
		})
	}
}

func TestPath_mixed(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		Path("/out", "qobject.xml")
	})
}
