package errdefer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClose(t *testing.T) {
	t.Parallel()

	errWrite := errors.New("write qobject.xml: disk full")
	errClose := errors.New("close qobject.xml: bad file descriptor")

	tests := []struct {
		desc     string
		give     error // error already returned by the function
		closeErr error
		want     []error
	}{
		{desc: "success"},
		{
			desc: "earlier error kept",
			give: errWrite,
			want: []error{errWrite},
		},
		{
			desc:     "close fails",
			closeErr: errClose,
			want:     []error{errClose},
		},
		{
			desc:     "both fail",
			give:     errWrite,
			closeErr: errClose,
			want:     []error{errWrite, errClose},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			c := &closer{err: tt.closeErr}
			err := tt.give
			Close(&err, c)

			assert.True(t, c.closed, "Close must always be called")
			if len(tt.want) == 0 {
				require.NoError(t, err)
				return
			}
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

type closer struct {
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}
