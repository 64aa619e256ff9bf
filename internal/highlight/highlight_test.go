package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want string
	}{
		{desc: "c++ source", give: "widgets/main.cpp", want: "cpp"},
		{desc: "qml", give: "quick/main.qml", want: "qml"},
		{desc: "javascript", give: "quick/logic.js", want: "js"},
		{desc: "unknown", give: "data/blob.zzz", want: PlainText},
		{desc: "no extension", give: "LICENSE.unknown-thing", want: PlainText},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Language(tt.give))
		})
	}
}

func TestLexer_unknown(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Lexer("noextension"))
}
