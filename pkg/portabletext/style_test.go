package portabletext

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Style
		wantErr bool
	}{
		{"h1", "h1", StyleH1, false},
		{"h6", "h6", StyleH6, false},
		{"normal", "normal", StyleNormal, false},
		{"blockquote", "blockquote", StyleBlockquote, false},
		{"uppercase rejected", "H1", 0, true},
		{"unknown", "h7", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyle(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnknownStyle))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestStyles(t *testing.T) {
	styles := Styles()
	assert.Len(t, styles, 8)
	assert.Equal(t, StyleH1, styles[0])
	assert.Equal(t, StyleBlockquote, styles[len(styles)-1])
}

func TestStyle_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]Style{"style": StyleBlockquote})
	require.NoError(t, err)
	assert.JSONEq(t, `{"style":"blockquote"}`, string(data))

	var decoded struct {
		Style Style `json:"style"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"style":"h4"}`), &decoded))
	assert.Equal(t, StyleH4, decoded.Style)

	err = json.Unmarshal([]byte(`{"style":"title"}`), &decoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown style "title"`)

	_, err = json.Marshal(Style(42))
	require.Error(t, err)
}

func TestStyle_StringOutOfRange(t *testing.T) {
	assert.Equal(t, "Style(-1)", Style(-1).String())
	assert.Equal(t, "Style(8)", Style(8).String())
}

func TestStyle_UsableAsMapKey(t *testing.T) {
	counts := map[Style]int{}
	for _, s := range []Style{StyleH1, StyleH1, StyleNormal} {
		counts[s]++
	}
	assert.Equal(t, 2, counts[StyleH1])
	assert.Equal(t, 1, counts[StyleNormal])
}
