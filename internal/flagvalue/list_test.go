package flagvalue

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc       string
		give       []string
		want       []String
		wantString string
	}{
		{
			desc: "not passed",
			give: []string{"-plain"},
		},
		{
			desc:       "separate value",
			give:       []string{"-image-dir", "doc/images"},
			want:       []String{"doc/images"},
			wantString: "doc/images",
		},
		{
			desc:       "joined value",
			give:       []string{"-image-dir=doc/images"},
			want:       []String{"doc/images"},
			wantString: "doc/images",
		},
		{
			desc:       "repeated in order",
			give:       []string{"-image-dir", "doc/images", "-plain", "-image-dir=examples/images"},
			want:       []String{"doc/images", "examples/images"},
			wantString: "doc/images, examples/images",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
			var got []String
			list := ListOf(&got)
			fset.Var(list, "image-dir", "")
			_ = fset.Bool("plain", false, "")
			require.NoError(t, fset.Parse(tt.give))

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, list.Get(), "Get")
			assert.Equal(t, tt.wantString, list.String(), "String")
		})
	}
}

// moduleName is a flag value that rejects empty names.
type moduleName string

var _ flag.Getter = (*moduleName)(nil)

func (m *moduleName) Get() any       { return string(*m) }
func (m *moduleName) String() string { return string(*m) }

func (m *moduleName) Set(s string) error {
	if s == "" {
		return errors.New("module name is empty")
	}
	*m = moduleName(s)
	return nil
}

func TestList_error(t *testing.T) {
	t.Parallel()

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var got []moduleName
	fset.Var(ListOf(&got), "module", "")

	err := fset.Parse([]string{"-module=QtCore", "-module=", "-module", "QtGui"})
	assert.ErrorContains(t, err, `"": module name is empty`)
	assert.Equal(t, []moduleName{"QtCore"}, got, "parsing stops at the bad value")
}
