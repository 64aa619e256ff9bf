package docbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		give    string
		want    []attr
		wantErr error
	}{
		{
			desc: "empty",
			want: []attr{{"valign", "top"}},
		},
		{
			desc: "single",
			give: `bgcolor="#ffffff"`,
			want: []attr{{"bgcolor", "#ffffff"}},
		},
		{
			desc: "multiple",
			give: `bgcolor="#ffffff" valign="middle"`,
			want: []attr{
				{"bgcolor", "#ffffff"},
				{"valign", "middle"},
			},
		},
		{
			desc:    "odd quotes",
			give:    `bgcolor="#ffffff" valign="`,
			want:    []attr{{"bgcolor", "#ffffff"}},
			wantErr: errOddQuotes,
		},
		{
			desc:    "space in name",
			give:    `a b="1" valign="middle"`,
			want:    []attr{{"valign", "middle"}},
			wantErr: errBadAttrName,
		},
		{
			desc:    "missing name",
			give:    `="1"`,
			want:    []attr{},
			wantErr: errBadAttrName,
		},
		{
			desc: "hyphenated name",
			give: `data-row="2"`,
			want: []attr{{"data-row", "2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, err := parseRowAttrs(tt.give)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCellAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		give    []string
		want    []attr
		wantErr string
	}{
		{desc: "empty"},
		{
			desc: "key value",
			give: []string{"align=center"},
			want: []attr{{"align", "center"}},
		},
		{
			desc: "unit span",
			give: []string{"1,1"},
		},
		{
			desc: "column span",
			give: []string{"2,1"},
			want: []attr{{"colspan", "2"}},
		},
		{
			desc: "both spans",
			give: []string{"3,2", "align=left"},
			want: []attr{
				{"colspan", "3"},
				{"rowspan", "2"},
				{"align", "left"},
			},
		},
		{
			desc:    "bad name",
			give:    []string{"1st=x", "align=right"},
			want:    []attr{{"align", "right"}},
			wantErr: `invalid attribute name: "1st"`,
		},
		{
			desc:    "bad span",
			give:    []string{"wide", "1,2"},
			want:    []attr{{"rowspan", "2"}},
			wantErr: `bad cell span "wide"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, err := parseCellAttrs(tt.give)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc      string
		give      []string
		wantWidth string
		wantStyle string
	}{
		{desc: "default", wantStyle: "generic"},
		{
			desc:      "borderless",
			give:      []string{"borderless"},
			wantStyle: "borderless",
		},
		{
			desc:      "width and style",
			give:      []string{"80%", "borderless"},
			wantWidth: "80%",
			wantStyle: "borderless",
		},
		{
			desc:      "extra payloads ignored",
			give:      []string{"generic", "50%", "borderless"},
			wantWidth: "50%",
			wantStyle: "generic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			width, style := tableStyle(tt.give)
			assert.Equal(t, tt.wantWidth, width)
			assert.Equal(t, tt.wantStyle, style)
		})
	}
}
