package flagvalue

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDebug(t *testing.T, args ...string) *FileSwitch {
	t.Helper()

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	var debug FileSwitch
	fset.Var(&debug, "debug", "")
	require.NoError(t, fset.Parse(args))
	return &debug
}

func TestFileSwitch_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc     string
		give     []string
		want     string
		wantBool bool
	}{
		{desc: "not passed"},
		{
			desc:     "without value",
			give:     []string{"-debug"},
			want:     "-",
			wantBool: true,
		},
		{
			desc:     "with file",
			give:     []string{"-debug=debug.log"},
			want:     "debug.log",
			wantBool: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			debug := parseDebug(t, tt.give...)
			assert.Equal(t, tt.want, debug.Get())
			assert.Equal(t, tt.want, debug.String())
			assert.Equal(t, tt.wantBool, debug.Bool())
		})
	}
}

func TestFileSwitch_Create(t *testing.T) {
	t.Parallel()

	t.Run("discarded", func(t *testing.T) {
		t.Parallel()

		w, done, err := parseDebug(t).Create(new(bytes.Buffer))
		require.NoError(t, err)
		assert.True(t, w == io.Discard, "want io.Discard, got %v", w)
		require.NoError(t, done())
	})

	t.Run("stderr", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		w, done, err := parseDebug(t, "-debug").Create(&stderr)
		require.NoError(t, err)
		_, err = io.WriteString(w, "generating qobject.xml\n")
		require.NoError(t, err)
		require.NoError(t, done())

		assert.Equal(t, "generating qobject.xml\n", stderr.String())
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "debug.log")
		var stderr bytes.Buffer
		w, done, err := parseDebug(t, "-debug="+path).Create(&stderr)
		require.NoError(t, err)
		_, err = io.WriteString(w, "generating qobject.xml\n")
		require.NoError(t, err)
		require.NoError(t, done())

		body, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "generating qobject.xml\n", string(body))
		assert.Empty(t, stderr.String())
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "logs", "debug.log")
		_, _, err := parseDebug(t, "-debug="+path).Create(new(bytes.Buffer))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
